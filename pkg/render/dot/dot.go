// Package dot renders MCIS result graphs (and their inputs) as Graphviz
// DOT, in-process, via goccy/go-graphviz. It exists purely as the external
// pretty-printer spec.md §6 describes: nothing under pkg/graph, pkg/engine,
// or pkg/dispatch imports this package.
package dot

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/sebaraj/mcis-engine/pkg/graph"
)

// ToDOT returns a Graphviz DOT digraph for g. Nodes are labeled by ID; a
// tagged node additionally shows its tag. Edges are labeled with their
// weight when nonzero.
func ToDOT(g *graph.Graph) string {
	var buf bytes.Buffer
	buf.WriteString("digraph MCIS {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [fontname=\"SF Mono, Menlo, monospace\", fontsize=12, style=filled, fillcolor=white, shape=box];\n\n")

	for _, id := range g.NodeIDs() {
		n, _ := g.Node(id)
		label := id
		if tag := n.Tag(); tag != "" {
			label = fmt.Sprintf("%s\\n[%s]", id, tag)
		}
		fmt.Fprintf(&buf, "  %q [label=%q];\n", id, label)
	}
	buf.WriteString("\n")

	for _, id := range g.NodeIDs() {
		n, _ := g.Node(id)
		for _, childID := range n.ChildIDs() {
			child, _ := g.Node(childID)
			w, _ := n.EdgeWeight(child)
			if w != 0 {
				fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", id, childID, fmt.Sprintf("%d", w))
			} else {
				fmt.Fprintf(&buf, "  %q -> %q;\n", id, childID)
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders g as a Graphviz DOT digraph, then converts it to an
// SVG document via go-graphviz's in-process WebAssembly build of
// Graphviz. Errors are wrapped
// with fmt.Errorf's %w for errors.Is/errors.As compatibility.
func RenderSVG(g *graph.Graph) ([]byte, error) {
	src := ToDOT(g)

	gv, err := graphviz.New(context.Background())
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	parsed, err := graphviz.ParseBytes([]byte(src))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer parsed.Close()

	var buf bytes.Buffer
	if err := gv.Render(context.Background(), parsed, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
