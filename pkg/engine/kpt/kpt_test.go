package kpt

import (
	"testing"

	"github.com/sebaraj/mcis-engine/pkg/engine"
	"github.com/sebaraj/mcis-engine/pkg/graph"
	"github.com/sebaraj/mcis-engine/pkg/product"
)

func abEdge() *graph.Graph {
	g := graph.New()
	_ = g.AddNodeSet([]string{"A", "B"})
	_ = g.AddEdge("A", "B", 0)
	return g
}

func abNoEdge() *graph.Graph {
	g := graph.New()
	_ = g.AddNodeSet([]string{"A", "B"})
	return g
}

// g1 = g2 = A->B. A->B reachability in either input graph is already
// enough to put (A,A) and (B,B) in conflict under the literal reachability
// rule, so the result must never contain both.
func TestFindReachableDiagonalsNeverBothMatch(t *testing.T) {
	e := New()
	results, err := e.Find([]*graph.Graph{abEdge(), abEdge()}, nil, engine.Defaults())
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("KPT must return exactly one result graph, got %d", len(results))
	}
	assertNoBothAABB(t, results[0])
}

// g1 = A->B, g2 = {A,B} (no edges). A->B reachability in g1 alone is
// enough to put (A,A) and (B,B) in conflict, regardless of g2.
func TestFindConflictingHyperedgesExcludesBoth(t *testing.T) {
	e := New()
	results, err := e.Find([]*graph.Graph{abEdge(), abNoEdge()}, nil, engine.Defaults())
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("KPT must return exactly one result graph, got %d", len(results))
	}
	assertNoBothAABB(t, results[0])
}

func assertNoBothAABB(t *testing.T, g *graph.Graph) {
	t.Helper()
	hasAA, hasBB := false, false
	for _, n := range g.NodeIDs() {
		if n == "A_A" {
			hasAA = true
		}
		if n == "B_B" {
			hasBB = true
		}
	}
	if hasAA && hasBB {
		t.Fatal("(A,A) and (B,B) conflict via A->B reachability and must not both appear")
	}
}

func TestFindEmptyGraph(t *testing.T) {
	e := New()
	_, err := e.Find([]*graph.Graph{graph.New(), abEdge()}, nil, engine.Defaults())
	if err == nil {
		t.Fatal("expected an error for an empty input graph")
	}
}

func TestConflictReflexiveAndSymmetric(t *testing.T) {
	g1, g2 := abEdge(), abEdge()
	reach := newReachIndex([]*graph.Graph{g1, g2})
	m := &matcher{reach: reach, n: 2, epsilon: 1e-9, alpha: 4}

	p := product.Node{IDs: []string{"A", "A"}}
	q := product.Node{IDs: []string{"B", "B"}}

	if !m.conflict(p, p) {
		t.Fatal("conflict must be reflexive: conflict(p, p) == true")
	}
	if m.conflict(p, q) != m.conflict(q, p) {
		t.Fatal("conflict must be symmetric")
	}
}

func TestBFSReachability(t *testing.T) {
	g := graph.New()
	_ = g.AddNodeSet([]string{"A", "B", "C"})
	_ = g.AddEdge("A", "B", 0)
	_ = g.AddEdge("B", "C", 0)

	idx := newReachIndex([]*graph.Graph{g})
	if !idx.reachable(0, "A", "C") {
		t.Fatal("expected A to reach C transitively via B")
	}
	if idx.reachable(0, "C", "A") {
		t.Fatal("C must not reach A: edges are directed")
	}
	if !idx.reachable(0, "A", "A") {
		t.Fatal("a node must be trivially reachable from itself")
	}
}
