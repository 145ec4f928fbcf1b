package graph

import (
	"errors"
	"testing"

	"github.com/sebaraj/mcis-engine/pkg/mcerr"
)

func TestAddNodeAndEdge(t *testing.T) {
	g := New()
	if err := g.AddNode("A"); err != nil {
		t.Fatalf("AddNode: %v", err)
	}
	if err := g.AddNode("B"); err != nil {
		t.Fatalf("AddNode: %v", err)
	}
	if err := g.AddEdge("A", "B", 3); err != nil {
		t.Fatalf("AddEdge: %v", err)
	}

	a, _ := g.Node("A")
	b, _ := g.Node("B")
	if !a.ContainsEdge(b) {
		t.Fatal("expected A to have an edge to B")
	}
	if w, ok := a.EdgeWeight(b); !ok || w != 3 {
		t.Fatalf("expected weight 3, got %d (ok=%v)", w, ok)
	}
	if !b.CheckParent("A") {
		t.Fatal("expected B to report A as a parent")
	}
	if !g.IsWeighted() {
		t.Fatal("expected graph to be weighted after a nonzero-weight edge")
	}
}

func TestAddNodeDuplicate(t *testing.T) {
	g := New()
	_ = g.AddNode("A")
	if err := g.AddNode("A"); !errors.Is(err, mcerr.ErrNodeAlreadyExists) {
		t.Fatalf("expected ErrNodeAlreadyExists, got %v", err)
	}
}

func TestAddEdgeSelfLoop(t *testing.T) {
	g := New()
	_ = g.AddNode("A")
	if err := g.AddEdge("A", "A", 0); !errors.Is(err, mcerr.ErrSelfLoop) {
		t.Fatalf("expected ErrSelfLoop, got %v", err)
	}
}

func TestAddNodeSetIsAtomic(t *testing.T) {
	g := New()
	_ = g.AddNode("A")

	err := g.AddNodeSet([]string{"B", "A", "C"})
	if !errors.Is(err, mcerr.ErrNodeAlreadyExists) {
		t.Fatalf("expected ErrNodeAlreadyExists, got %v", err)
	}
	if _, ok := g.Node("B"); ok {
		t.Fatal("AddNodeSet must not partially apply: B should not have been added")
	}
}

func TestAddEdgeSetIsBestEffort(t *testing.T) {
	g := New()
	_ = g.AddNodeSet([]string{"A", "B"})

	err := g.AddEdgeSet("A", []string{"B", "missing"}, []int{1, 1})
	var be *mcerr.BulkError
	if !errors.As(err, &be) {
		t.Fatalf("expected a *BulkError, got %v", err)
	}
	if len(be.Failed) != 1 {
		t.Fatalf("expected exactly one failure, got %d", len(be.Failed))
	}

	a, _ := g.Node("A")
	b, _ := g.Node("B")
	if !a.ContainsEdge(b) {
		t.Fatal("the edge that could succeed should have been kept")
	}
}

func TestIsDAGDetectsCycle(t *testing.T) {
	g := New()
	_ = g.AddNodeSet([]string{"A", "B", "C"})
	_ = g.AddEdge("A", "B", 0)
	_ = g.AddEdge("B", "C", 0)

	if !g.IsDAG() {
		t.Fatal("expected acyclic graph to report IsDAG() == true")
	}

	_ = g.AddEdge("C", "A", 0)
	if g.IsDAG() {
		t.Fatal("expected cycle to be detected after adding C->A")
	}
}

func TestIsDAGMemoization(t *testing.T) {
	g := New()
	_ = g.AddNodeSet([]string{"A", "B"})
	_ = g.AddEdge("A", "B", 0)

	v1 := g.Version()
	_ = g.IsDAG()
	if g.Version() != v1 {
		t.Fatal("IsDAG must not itself bump the version")
	}

	_ = g.AddEdge("B", "A", 0)
	if g.Version() == v1 {
		t.Fatal("mutating the graph should bump the version")
	}
	if g.IsDAG() {
		t.Fatal("memoized result must be invalidated by the mutation")
	}
}

func TestGetSubgraphWithTag(t *testing.T) {
	g := New()
	_ = g.AddNodeSet([]string{"A", "B", "C"})
	_ = g.SetNodeTag("A", "mvm")
	_ = g.SetNodeTag("B", "mvm")
	_ = g.SetNodeTag("C", "fft")
	_ = g.AddEdge("A", "B", 0)
	_ = g.AddEdge("B", "C", 0)

	sub := g.GetSubgraphWithTag("mvm")
	if sub.NumNodes() != 2 {
		t.Fatalf("expected 2 nodes in the mvm subgraph, got %d", sub.NumNodes())
	}
	a, _ := sub.Node("A")
	b, _ := sub.Node("B")
	if !a.ContainsEdge(b) {
		t.Fatal("expected the induced A->B edge to survive tag filtering")
	}
	if _, ok := sub.Node("C"); ok {
		t.Fatal("C has a different tag and must not appear in the subgraph")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	g := New()
	_ = g.AddNodeSet([]string{"A", "B"})
	_ = g.AddEdge("A", "B", 5)

	clone := g.Clone()
	if !g.Equal(clone) {
		t.Fatal("clone should be structurally equal to the original")
	}

	_ = clone.RemoveEdge("A", "B")
	if g.Equal(clone) {
		t.Fatal("mutating the clone must not affect the original")
	}
	a, _ := g.Node("A")
	b, _ := g.Node("B")
	if !a.ContainsEdge(b) {
		t.Fatal("original graph's edge must survive clone mutation")
	}
}

func TestRemoveNodesBulk(t *testing.T) {
	g := New()
	_ = g.AddNodeSet([]string{"A", "B", "C"})

	removed := g.RemoveNodesBulk([]string{"A", "Z", "B"})
	if removed != 2 {
		t.Fatalf("expected 2 nodes removed, got %d", removed)
	}
	if g.NumNodes() != 1 {
		t.Fatalf("expected 1 node remaining, got %d", g.NumNodes())
	}
}
