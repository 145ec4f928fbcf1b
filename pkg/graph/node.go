package graph

import (
	"sort"

	"github.com/sebaraj/mcis-engine/pkg/mcerr"
)

// Node is a vertex in a directed, weighted, node-tagged graph. A Node is
// owned by exactly one Graph; its children/parents maps reference sibling
// Nodes owned by the same Graph directly (Go's garbage collector removes
// the dangling-pointer risk that a C-family implementation would need a
// generational handle to avoid).
//
// The zero value is not usable; construct with newNode.
type Node struct {
	id  string
	tag string

	children map[*Node]int
	parents  map[*Node]int
}

func newNode(id string) *Node {
	return &Node{
		id:       id,
		children: make(map[*Node]int),
		parents:  make(map[*Node]int),
	}
}

// ID returns the node's immutable identifier.
func (n *Node) ID() string { return n.id }

// Tag returns the node's current grouping tag. An empty string means
// "untagged".
func (n *Node) Tag() string { return n.tag }

// SetTag sets the node's tag directly. Exported for callers holding a
// *Node from Graph.Node; Graph.SetNodeTag is the normal entry point since
// it also bumps the graph's version.
func (n *Node) SetTag(tag string) { n.tag = tag }

// NumParents returns the number of incoming edges. It is always exactly
// len of the parent set, computed on demand rather than tracked as a
// separate counter, so the num_parents = |parents| invariant cannot drift.
func (n *Node) NumParents() int { return len(n.parents) }

// NumChildren returns the number of outgoing edges, computed the same way
// as NumParents.
func (n *Node) NumChildren() int { return len(n.children) }

// IsSource reports whether the node has no incoming edges.
func (n *Node) IsSource() bool { return len(n.parents) == 0 }

// IsSink reports whether the node has no outgoing edges.
func (n *Node) IsSink() bool { return len(n.children) == 0 }

// ContainsEdge reports whether n has a direct outgoing edge to neighbor.
func (n *Node) ContainsEdge(neighbor *Node) bool {
	_, ok := n.children[neighbor]
	return ok
}

// CheckParent reports whether the node identified by parentID is a parent
// of n.
func (n *Node) CheckParent(parentID string) bool {
	for p := range n.parents {
		if p.id == parentID {
			return true
		}
	}
	return false
}

// EdgeWeight returns the weight of the outgoing edge to neighbor and
// whether that edge exists.
func (n *Node) EdgeWeight(neighbor *Node) (int, bool) {
	w, ok := n.children[neighbor]
	return w, ok
}

// addEdge adds a directed edge from n to neighbor with the given weight.
// It fails with mcerr.ErrSelfLoop when neighbor is n, and with
// mcerr.ErrEdgeAlreadyExists when the edge exists with a different weight
// than requested. Re-adding an edge with the weight it already has
// succeeds idempotently. On success both n.children and neighbor.parents
// are updated so the mirror invariant holds.
func (n *Node) addEdge(neighbor *Node, weight int) error {
	if neighbor == n {
		return mcerr.ErrSelfLoop
	}
	if existing, ok := n.children[neighbor]; ok {
		if existing == weight {
			return nil
		}
		return mcerr.ErrEdgeAlreadyExists
	}
	n.children[neighbor] = weight
	neighbor.parents[n] = weight
	return nil
}

// removeEdge removes the directed edge from n to neighbor, failing with
// mcerr.ErrEdgeDoesNotExist if it is absent.
func (n *Node) removeEdge(neighbor *Node) error {
	if _, ok := n.children[neighbor]; !ok {
		return mcerr.ErrEdgeDoesNotExist
	}
	delete(n.children, neighbor)
	delete(neighbor.parents, n)
	return nil
}

// changeEdgeWeight overwrites the weight of the edge from n to neighbor in
// both mirror maps, failing with mcerr.ErrEdgeDoesNotExist if the edge is
// absent.
func (n *Node) changeEdgeWeight(neighbor *Node, weight int) error {
	if _, ok := n.children[neighbor]; !ok {
		return mcerr.ErrEdgeDoesNotExist
	}
	n.children[neighbor] = weight
	neighbor.parents[n] = weight
	return nil
}

// detach removes every edge incident to n, in both directions, leaving n
// isolated. It is used by Graph.RemoveNode before the node is dropped from
// the node map.
func (n *Node) detach() {
	for child := range n.children {
		delete(child.parents, n)
	}
	for parent := range n.parents {
		delete(parent.children, n)
	}
	n.children = make(map[*Node]int)
	n.parents = make(map[*Node]int)
}

// Equal reports structural equality: same ID and the same child set
// compared by neighbour ID and weight. Parent-set equality follows from
// the mirror invariant and is not checked separately.
func (n *Node) Equal(other *Node) bool {
	if other == nil || n.id != other.id || len(n.children) != len(other.children) {
		return false
	}
	otherByID := make(map[string]int, len(other.children))
	for c, w := range other.children {
		otherByID[c.id] = w
	}
	for c, w := range n.children {
		ow, ok := otherByID[c.id]
		if !ok || ow != w {
			return false
		}
	}
	return true
}

// ChildIDs returns the IDs of n's children sorted lexicographically; used
// for deterministic iteration (printing, DOT export, reachability BFS).
func (n *Node) ChildIDs() []string {
	ids := make([]string, 0, len(n.children))
	for c := range n.children {
		ids = append(ids, c.id)
	}
	sort.Strings(ids)
	return ids
}
