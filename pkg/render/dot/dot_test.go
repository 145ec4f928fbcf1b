package dot

import (
	"strings"
	"testing"

	"github.com/sebaraj/mcis-engine/pkg/graph"
)

func TestToDOTIncludesNodesTagsAndEdges(t *testing.T) {
	g := graph.New()
	_ = g.AddNodeSet([]string{"A", "B"})
	_ = g.SetNodeTag("A", "mvm")
	_ = g.AddEdge("A", "B", 5)

	out := ToDOT(g)
	if !strings.HasPrefix(out, "digraph MCIS {") {
		t.Fatalf("expected a digraph header, got %q", out)
	}
	if !strings.Contains(out, `"A"`) || !strings.Contains(out, `"B"`) {
		t.Fatalf("expected both node IDs to appear, got %q", out)
	}
	if !strings.Contains(out, "[mvm]") {
		t.Fatalf("expected A's tag to appear in its label, got %q", out)
	}
	if !strings.Contains(out, `"A" -> "B"`) {
		t.Fatalf("expected the A->B edge to appear, got %q", out)
	}
	if !strings.Contains(out, `label="5"`) {
		t.Fatalf("expected the edge weight 5 to appear as a label, got %q", out)
	}
}

func TestToDOTOmitsLabelForZeroWeightEdge(t *testing.T) {
	g := graph.New()
	_ = g.AddNodeSet([]string{"A", "B"})
	_ = g.AddEdge("A", "B", 0)

	out := ToDOT(g)
	if strings.Contains(out, "label=") && strings.Contains(out, `"A" -> "B" [label`) {
		t.Fatalf("expected no edge label for a zero-weight edge, got %q", out)
	}
}
