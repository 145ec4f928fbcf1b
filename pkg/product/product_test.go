package product

import (
	"testing"

	"github.com/sebaraj/mcis-engine/pkg/graph"
)

func triangle() *graph.Graph {
	g := graph.New()
	_ = g.AddNodeSet([]string{"A", "B", "C"})
	_ = g.AddEdge("A", "B", 0)
	_ = g.AddEdge("B", "C", 0)
	_ = g.AddEdge("C", "A", 0)
	return g
}

func TestSizeMatchesBuild(t *testing.T) {
	g1, g2 := triangle(), triangle()
	if got, want := Size([]*graph.Graph{g1, g2}), 9; got != want {
		t.Fatalf("Size() = %d, want %d", got, want)
	}
	pg := Build([]*graph.Graph{g1, g2})
	if len(pg.Nodes) != 9 {
		t.Fatalf("Build produced %d nodes, want 9", len(pg.Nodes))
	}
}

func TestAreAdjacentDiagonalAlwaysAgrees(t *testing.T) {
	g1, g2 := triangle(), triangle()
	graphs := []*graph.Graph{g1, g2}

	p := Node{IDs: []string{"A", "A"}}
	q := Node{IDs: []string{"B", "B"}}
	if !AreAdjacent(p, q, graphs) {
		t.Fatal("diagonal tuples over identical graphs must always agree and be adjacent")
	}
}

func TestAreAdjacentDisagreement(t *testing.T) {
	g1 := graph.New()
	_ = g1.AddNodeSet([]string{"A", "B"})
	_ = g1.AddEdge("A", "B", 0)

	g2 := graph.New()
	_ = g2.AddNodeSet([]string{"A", "B"})
	// no edge in g2

	p := Node{IDs: []string{"A", "A"}}
	q := Node{IDs: []string{"B", "B"}}
	if AreAdjacent(p, q, []*graph.Graph{g1, g2}) {
		t.Fatal("tuples must not be adjacent when the graphs disagree on edge presence")
	}
}

func TestNodeKeyAndName(t *testing.T) {
	n := Node{IDs: []string{"A", "B"}}
	if n.Name() != "A_B" {
		t.Fatalf("Name() = %q, want A_B", n.Name())
	}
	other := Node{IDs: []string{"A", "B"}}
	if n.Key() != other.Key() {
		t.Fatal("identical tuples must produce identical keys")
	}
}

func TestNodeLessLexicographic(t *testing.T) {
	a := Node{IDs: []string{"A", "A"}}
	b := Node{IDs: []string{"A", "B"}}
	if !a.Less(b) {
		t.Fatal("expected (A,A) < (A,B)")
	}
	if b.Less(a) {
		t.Fatal("Less must be antisymmetric")
	}
}

func TestDiagonalCliqueInBuild(t *testing.T) {
	g1, g2 := triangle(), triangle()
	pg := Build([]*graph.Graph{g1, g2})

	for _, id := range []string{"A", "B", "C"} {
		key := (Node{IDs: []string{id, id}}).Key()
		if _, ok := pg.NodeByKey(key); !ok {
			t.Fatalf("expected diagonal tuple %s to be present in the product graph", key)
		}
	}

	// Every pair of distinct diagonal tuples must be adjacent, since the
	// two input graphs are identical.
	ids := []string{"A", "B", "C"}
	for _, x := range ids {
		for _, y := range ids {
			if x == y {
				continue
			}
			kx := (Node{IDs: []string{x, x}}).Key()
			ky := (Node{IDs: []string{y, y}}).Key()
			if !pg.Adjacency[kx][ky] {
				t.Fatalf("expected diagonal tuples %s and %s to be adjacent", kx, ky)
			}
		}
	}
}
