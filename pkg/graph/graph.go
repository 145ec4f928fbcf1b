// Package graph implements the in-memory graph model the MCIS engine
// operates on: directed, node-tagged, weighted graphs with bidirectional
// parent/child adjacency, memoized acyclicity, and a monotonic version
// counter for cache invalidation.
package graph

import (
	"sort"

	"github.com/sebaraj/mcis-engine/pkg/mcerr"
)

type dagCache struct {
	valid  bool
	result bool
}

// Graph is a directed graph of uniquely-identified, owned Nodes. Every
// mutator bumps Version and invalidates the memoized IsDAG result. Graph
// is not safe for concurrent mutation; concurrent read-only access from
// multiple goroutines is safe as long as nothing mutates concurrently.
//
// The zero value is not usable; construct with New.
type Graph struct {
	nodes map[string]*Node

	nonzeroWeightEdges int
	version            int
	cache              dagCache
}

// New returns an empty Graph.
func New() *Graph {
	return &Graph{nodes: make(map[string]*Node)}
}

// Version returns the graph's monotonically increasing mutation counter.
func (g *Graph) Version() int { return g.version }

// IsWeighted reports whether any edge currently in the graph has a
// nonzero weight.
func (g *Graph) IsWeighted() bool { return g.nonzeroWeightEdges > 0 }

func (g *Graph) bumpVersion() {
	g.version++
	g.cache.valid = false
}

// AddNode adds a node with the given ID. It fails with
// mcerr.ErrNodeAlreadyExists if id is already present.
func (g *Graph) AddNode(id string) error {
	if _, exists := g.nodes[id]; exists {
		return mcerr.ErrNodeAlreadyExists
	}
	g.nodes[id] = newNode(id)
	g.bumpVersion()
	return nil
}

// AddNodeSet adds every ID in ids. The operation is atomic: if any ID is
// already present, no node is added and mcerr.ErrNodeAlreadyExists is
// returned (per spec.md §4.2; contrast with AddEdgeSet, which is
// best-effort — see DESIGN.md / SPEC_FULL.md for the rationale).
func (g *Graph) AddNodeSet(ids []string) error {
	for _, id := range ids {
		if _, exists := g.nodes[id]; exists {
			return mcerr.ErrNodeAlreadyExists
		}
	}
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			return mcerr.ErrNodeAlreadyExists
		}
		seen[id] = true
	}
	for _, id := range ids {
		g.nodes[id] = newNode(id)
	}
	g.bumpVersion()
	return nil
}

// RemoveNode removes the node with the given ID, detaching every edge
// incident to it from its neighbours. Fails with
// mcerr.ErrNodeDoesNotExist if id is absent.
func (g *Graph) RemoveNode(id string) error {
	n, ok := g.nodes[id]
	if !ok {
		return mcerr.ErrNodeDoesNotExist
	}
	g.detachAndCountWeights(n)
	delete(g.nodes, id)
	g.bumpVersion()
	return nil
}

// detachAndCountWeights detaches n from the graph and decrements the
// nonzero-weight edge counter for every edge removed.
func (g *Graph) detachAndCountWeights(n *Node) {
	for _, w := range n.children {
		if w != 0 {
			g.nonzeroWeightEdges--
		}
	}
	for _, w := range n.parents {
		if w != 0 {
			g.nonzeroWeightEdges--
		}
	}
	n.detach()
}

// RemoveNodesBulk removes every node in ids that exists, detaching its
// edges, and returns the count of nodes actually removed. Unlike
// RemoveNode, this bulk form is not atomic: missing IDs are simply
// skipped, mirroring the original's bulk-removal semantics.
func (g *Graph) RemoveNodesBulk(ids []string) int {
	removed := 0
	for _, id := range ids {
		n, ok := g.nodes[id]
		if !ok {
			continue
		}
		g.detachAndCountWeights(n)
		delete(g.nodes, id)
		removed++
	}
	if removed > 0 {
		g.bumpVersion()
	}
	return removed
}

// AddEdge adds a directed edge from fromID to toID with the given weight.
// Fails with mcerr.ErrNodeDoesNotExist if either endpoint is absent, with
// mcerr.ErrSelfLoop if fromID == toID, or with mcerr.ErrEdgeAlreadyExists
// if the edge already exists with a different weight.
func (g *Graph) AddEdge(fromID, toID string, weight int) error {
	from, ok := g.nodes[fromID]
	if !ok {
		return mcerr.ErrNodeDoesNotExist
	}
	to, ok := g.nodes[toID]
	if !ok {
		return mcerr.ErrNodeDoesNotExist
	}
	if from == to {
		return mcerr.ErrSelfLoop
	}
	_, existed := from.EdgeWeight(to)
	if err := from.addEdge(to, weight); err != nil {
		return err
	}
	if weight != 0 && !existed {
		g.nonzeroWeightEdges++
	}
	g.bumpVersion()
	return nil
}

// AddEdgeSet adds directed edges from fromID to every ID in toIDs. If
// weights is shorter than toIDs, or empty, missing weights default to 0.
// Unlike AddNodeSet, this is best-effort: every edge is attempted, and a
// *mcerr.BulkError wrapping mcerr.ErrBulkPartialFailure is returned if any
// failed, while edges that succeeded remain in the graph (this mirrors
// the original C++ add_edge_set's per-edge accumulation — see
// SPEC_FULL.md).
func (g *Graph) AddEdgeSet(fromID string, toIDs []string, weights []int) error {
	failed := map[string]error{}
	for i, toID := range toIDs {
		weight := 0
		if i < len(weights) {
			weight = weights[i]
		}
		if err := g.AddEdge(fromID, toID, weight); err != nil {
			failed[fromID+"->"+toID] = err
		}
	}
	if len(failed) > 0 {
		return &mcerr.BulkError{Failed: failed}
	}
	return nil
}

// RemoveEdge removes the directed edge from fromID to toID. Fails with
// mcerr.ErrNodeDoesNotExist if either endpoint is absent, or
// mcerr.ErrEdgeDoesNotExist if the edge itself is absent.
func (g *Graph) RemoveEdge(fromID, toID string) error {
	from, ok := g.nodes[fromID]
	if !ok {
		return mcerr.ErrNodeDoesNotExist
	}
	to, ok := g.nodes[toID]
	if !ok {
		return mcerr.ErrNodeDoesNotExist
	}
	w, existed := from.EdgeWeight(to)
	if !existed {
		return mcerr.ErrEdgeDoesNotExist
	}
	if err := from.removeEdge(to); err != nil {
		return err
	}
	if w != 0 {
		g.nonzeroWeightEdges--
	}
	g.bumpVersion()
	return nil
}

// ChangeEdgeWeight overwrites the weight of the edge from fromID to toID.
// Fails with mcerr.ErrNodeDoesNotExist if either endpoint is absent, or
// mcerr.ErrEdgeDoesNotExist if the edge itself is absent.
func (g *Graph) ChangeEdgeWeight(fromID, toID string, weight int) error {
	from, ok := g.nodes[fromID]
	if !ok {
		return mcerr.ErrNodeDoesNotExist
	}
	to, ok := g.nodes[toID]
	if !ok {
		return mcerr.ErrNodeDoesNotExist
	}
	oldWeight, existed := from.EdgeWeight(to)
	if !existed {
		return mcerr.ErrEdgeDoesNotExist
	}
	if err := from.changeEdgeWeight(to, weight); err != nil {
		return err
	}
	if oldWeight != 0 {
		g.nonzeroWeightEdges--
	}
	if weight != 0 {
		g.nonzeroWeightEdges++
	}
	g.bumpVersion()
	return nil
}

// SetNodeTag sets the tag of the node with the given ID. Fails with
// mcerr.ErrNodeDoesNotExist if id is absent.
func (g *Graph) SetNodeTag(id, tag string) error {
	n, ok := g.nodes[id]
	if !ok {
		return mcerr.ErrNodeDoesNotExist
	}
	n.SetTag(tag)
	g.bumpVersion()
	return nil
}

// Node returns the node with the given ID and true, or nil and false if
// absent.
func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// NumNodes returns the number of nodes in the graph.
func (g *Graph) NumNodes() int { return len(g.nodes) }

// Nodes returns the graph's node map. The map itself is returned
// directly (not a copy); callers must not mutate it outside the Graph's
// own methods.
func (g *Graph) Nodes() map[string]*Node { return g.nodes }

// NodeIDs returns every node ID in the graph, sorted lexicographically,
// for deterministic iteration.
func (g *Graph) NodeIDs() []string {
	ids := make([]string, 0, len(g.nodes))
	for id := range g.nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ReserveNodes is a capacity hint with no semantic effect; Go's built-in
// maps do not expose a resizable reserve, so this is a documented no-op
// kept for API parity with the original.
func (g *Graph) ReserveNodes(n int) {}

// GetSubgraphWithTag returns a new Graph containing exactly the nodes of
// g whose tag equals tag, together with the induced edge set: an edge
// (u, v) is retained iff both u and v are retained and the edge existed
// in g. Result nodes keep their original tag; the source graph is
// unmodified.
func (g *Graph) GetSubgraphWithTag(tag string) *Graph {
	sub := New()
	for id, n := range g.nodes {
		if n.tag == tag {
			_ = sub.AddNode(id)
			sub.nodes[id].SetTag(tag)
		}
	}
	for id, n := range g.nodes {
		if n.tag != tag {
			continue
		}
		for child, w := range n.children {
			if child.tag == tag {
				_ = sub.AddEdge(id, child.id, w)
			}
		}
	}
	return sub
}

// IsDAG reports whether the graph is currently acyclic, using depth-first
// search with white/grey/black coloring: the first edge discovered into a
// grey (in-progress) node proves a cycle. The result is memoized until
// the next mutation bumps the version.
//
// Complexity is O(|V|+|E|).
func (g *Graph) IsDAG() bool {
	if g.cache.valid {
		return g.cache.result
	}

	const (
		white = iota
		gray
		black
	)
	color := make(map[string]int, len(g.nodes))
	hasCycle := false

	var dfs func(id string)
	dfs = func(id string) {
		color[id] = gray
		for child := range g.nodes[id].children {
			switch color[child.id] {
			case white:
				dfs(child.id)
				if hasCycle {
					return
				}
			case gray:
				hasCycle = true
				return
			}
		}
		color[id] = black
	}

	for id := range g.nodes {
		if color[id] == white {
			dfs(id)
			if hasCycle {
				break
			}
		}
	}

	g.cache = dagCache{valid: true, result: !hasCycle}
	return !hasCycle
}

// Clone deep-copies the graph: every Node is recreated and every edge is
// rewired to point at the clone's own nodes, so the clone shares no
// pointers with g.
func (g *Graph) Clone() *Graph {
	clone := New()
	for id, n := range g.nodes {
		_ = clone.AddNode(id)
		clone.nodes[id].SetTag(n.tag)
	}
	for id, n := range g.nodes {
		for child, w := range n.children {
			_ = clone.AddEdge(id, child.id, w)
		}
	}
	return clone
}

// Equal reports whether g and other have the same node set, and every
// node compares Equal (same ID, same child set by neighbour ID and
// weight).
func (g *Graph) Equal(other *Graph) bool {
	if other == nil || len(g.nodes) != len(other.nodes) {
		return false
	}
	for id, n := range g.nodes {
		on, ok := other.nodes[id]
		if !ok || !n.Equal(on) {
			return false
		}
	}
	return true
}
