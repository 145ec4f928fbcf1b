package cli

import (
	"testing"

	"github.com/sebaraj/mcis-engine/pkg/engine"
	"github.com/sebaraj/mcis-engine/pkg/graph"
)

func TestParseAlgorithm(t *testing.T) {
	if got, ok := parseAlgorithm("kpt"); !ok || got != engine.KPT {
		t.Fatalf("parseAlgorithm(kpt) = (%v, %v)", got, ok)
	}
	if got, ok := parseAlgorithm("bron-kerbosch"); !ok || got != engine.BronKerboschSerial {
		t.Fatalf("parseAlgorithm(bron-kerbosch) = (%v, %v)", got, ok)
	}
	if _, ok := parseAlgorithm("nonsense"); ok {
		t.Fatal("expected parseAlgorithm to reject an unknown name")
	}
}

func TestLoadGraphsRequiresAtLeastOnePath(t *testing.T) {
	if _, err := loadGraphs(nil); err == nil {
		t.Fatal("expected an error for an empty path list")
	}
}

func TestPickResultSingleResultShortCircuits(t *testing.T) {
	g := graph.New()
	_ = g.AddNode("A")
	got, err := pickResult([]*graph.Graph{g}, true)
	if err != nil {
		t.Fatalf("pickResult: %v", err)
	}
	if got != g {
		t.Fatal("expected the sole result to be returned unchanged")
	}
}

func TestPickResultNonInteractivePicksDeterministicFirst(t *testing.T) {
	g1 := graph.New()
	_ = g1.AddNodeSet([]string{"B"})
	g2 := graph.New()
	_ = g2.AddNodeSet([]string{"A"})

	got, err := pickResult([]*graph.Graph{g1, g2}, false)
	if err != nil {
		t.Fatalf("pickResult: %v", err)
	}
	if got != g2 {
		t.Fatal("expected the lexicographically-first result (by node IDs) to be chosen")
	}
}
