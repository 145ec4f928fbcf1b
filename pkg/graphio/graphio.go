// Package graphio loads and saves the CLI's graph file format: a small
// JSON document listing nodes (id, optional tag) and directed edges (from,
// to, optional weight). The MCIS core itself has no file format — this
// exists purely so the CLI and daemon have something to read requests
// from.
package graphio

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sebaraj/mcis-engine/pkg/graph"
)

// Document is the on-disk shape of one graph.
type Document struct {
	Nodes []NodeSpec `json:"nodes"`
	Edges []EdgeSpec `json:"edges"`
}

// NodeSpec describes one node.
type NodeSpec struct {
	ID  string `json:"id"`
	Tag string `json:"tag,omitempty"`
}

// EdgeSpec describes one directed edge.
type EdgeSpec struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Weight int    `json:"weight,omitempty"`
}

// Load reads path as a Document and builds the corresponding *graph.Graph.
func Load(path string) (*graph.Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return Build(doc)
}

// Build converts a Document into a *graph.Graph, failing on the first
// GraphError the underlying Graph operations report (duplicate node,
// missing endpoint, self-loop, conflicting edge weight).
func Build(doc Document) (*graph.Graph, error) {
	g := graph.New()
	for _, n := range doc.Nodes {
		if err := g.AddNode(n.ID); err != nil {
			return nil, fmt.Errorf("add node %q: %w", n.ID, err)
		}
		if n.Tag != "" {
			if err := g.SetNodeTag(n.ID, n.Tag); err != nil {
				return nil, fmt.Errorf("tag node %q: %w", n.ID, err)
			}
		}
	}
	for _, e := range doc.Edges {
		if err := g.AddEdge(e.From, e.To, e.Weight); err != nil {
			return nil, fmt.Errorf("add edge %s->%s: %w", e.From, e.To, err)
		}
	}
	return g, nil
}

// Dump converts a *graph.Graph back into a Document, for writing results
// out as JSON.
func Dump(g *graph.Graph) Document {
	doc := Document{}
	for _, id := range g.NodeIDs() {
		n, _ := g.Node(id)
		doc.Nodes = append(doc.Nodes, NodeSpec{ID: id, Tag: n.Tag()})
		for _, childID := range n.ChildIDs() {
			child, _ := g.Node(childID)
			w, _ := n.EdgeWeight(child)
			doc.Edges = append(doc.Edges, EdgeSpec{From: id, To: childID, Weight: w})
		}
	}
	return doc
}

// Save writes g to path as an indented JSON Document.
func Save(path string, g *graph.Graph) error {
	data, err := json.MarshalIndent(Dump(g), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
