// Package product builds the N-wise tensor product graph used by the
// Bron–Kerbosch MCIS engine: its nodes are tuples of node IDs, one per
// input graph, and two tuples are adjacent when every input graph agrees
// on whether the corresponding pair of coordinates is connected.
package product

import (
	"sort"
	"strings"

	"github.com/sebaraj/mcis-engine/pkg/graph"
)

// Node is an ordered N-tuple (id1, ..., idN), one ID per input graph.
// Equality and ordering are lexicographic over the tuple, matching the
// original's ProductNode::operator< over its node_ids vector.
type Node struct {
	IDs []string
}

// Key returns a string uniquely identifying the tuple, suitable for use
// as a map key (Node itself is not comparable since it holds a slice).
func (n Node) Key() string { return strings.Join(n.IDs, "\x00") }

// Name returns the canonical `_`-joined result-node name for this tuple,
// e.g. ["A", "B"] -> "A_B".
func (n Node) Name() string { return strings.Join(n.IDs, "_") }

// Less implements the tuple's lexicographic order.
func (n Node) Less(other Node) bool {
	for i := 0; i < len(n.IDs) && i < len(other.IDs); i++ {
		if n.IDs[i] != other.IDs[i] {
			return n.IDs[i] < other.IDs[i]
		}
	}
	return len(n.IDs) < len(other.IDs)
}

// Graph is the tensor product of N input graphs: Nodes is every tuple of
// the Cartesian product (including tuples with no adjacent tuple — see
// Build), and Adjacency maps each Node's key to the set of Nodes it is adjacent
// to, symmetric by construction.
type Graph struct {
	Nodes     []Node
	Adjacency map[string]map[string]bool
	byKey     map[string]Node
}

// Degree returns the number of nodes adjacent to the node with the given
// key.
func (pg *Graph) Degree(key string) int { return len(pg.Adjacency[key]) }

// NodeByKey returns the Node for a given key and whether it was found.
func (pg *Graph) NodeByKey(key string) (Node, bool) {
	n, ok := pg.byKey[key]
	return n, ok
}

// Size returns |V(Build(graphs))| without materializing any tuples: the
// product of each input graph's node count. Callers use this to apply
// the size gate (spec.md §4.3) before paying the cost of Build, whose
// adjacency computation is O(size^2 * N).
func Size(graphs []*graph.Graph) int {
	size := 1
	for _, g := range graphs {
		size *= g.NumNodes()
	}
	return size
}

// Build constructs the tensor product of the given graphs.
//
// Node enumeration is the Cartesian product of the input graphs' node-ID
// sets, with a deterministic (lexicographically sorted per coordinate)
// iteration order so that repeated invocations on identical inputs visit
// nodes in the same sequence.
//
// Two tuples p, q are adjacent iff, for every graph index i, the
// existence of an edge between p[i] and q[i] (checked in either
// direction — are_product_nodes_adjacent treats the underlying edge as
// undirected) agrees across all N graphs: either all of them have that
// edge, or none of them do. This mirrors spec.md §4.3 exactly, including
// its documented asymmetry with the directed, every-graph-must-agree rule
// used later during result extraction.
func Build(graphs []*graph.Graph) *Graph {
	tuples := Enumerate(graphs)

	pg := &Graph{
		Nodes:     tuples,
		Adjacency: make(map[string]map[string]bool, len(tuples)),
		byKey:     make(map[string]Node, len(tuples)),
	}
	for _, t := range tuples {
		pg.byKey[t.Key()] = t
		pg.Adjacency[t.Key()] = make(map[string]bool)
	}

	for i, p := range tuples {
		for j := i + 1; j < len(tuples); j++ {
			q := tuples[j]
			if AreAdjacent(p, q, graphs) {
				pg.Adjacency[p.Key()][q.Key()] = true
				pg.Adjacency[q.Key()][p.Key()] = true
			}
		}
	}
	return pg
}

// Enumerate returns the Cartesian product of the input graphs' node-ID
// sets as Nodes, in deterministic (lexicographically sorted per
// coordinate) order. KPT's hyperedge universe is exactly this set — "same
// shape as a ProductNode" per spec.md §3 — so it reuses Enumerate directly
// rather than building a ProductGraph's adjacency, which it has no use
// for.
func Enumerate(graphs []*graph.Graph) []Node {
	idSets := make([][]string, len(graphs))
	for i, g := range graphs {
		idSets[i] = g.NodeIDs()
	}
	var tuples []Node
	enumerate(idSets, nil, &tuples)
	return tuples
}

func enumerate(idSets [][]string, prefix []string, out *[]Node) {
	if len(prefix) == len(idSets) {
		*out = append(*out, Node{IDs: append([]string(nil), prefix...)})
		return
	}
	depth := len(prefix)
	for _, id := range idSets[depth] {
		enumerate(idSets, append(prefix, id), out)
	}
}

// AreAdjacent implements the product-graph adjacency predicate described
// above. When either p or q references an ID missing from its graph, the
// result is false.
func AreAdjacent(p, q Node, graphs []*graph.Graph) bool {
	if len(p.IDs) != len(graphs) || len(q.IDs) != len(graphs) {
		return false
	}
	var agree *bool
	for i, g := range graphs {
		pn, ok1 := g.Node(p.IDs[i])
		qn, ok2 := g.Node(q.IDs[i])
		if !ok1 || !ok2 {
			return false
		}
		edge := pn.ContainsEdge(qn) || qn.ContainsEdge(pn)
		if agree == nil {
			agree = new(bool)
			*agree = edge
		} else if *agree != edge {
			return false
		}
	}
	return agree != nil && true
}

// SortedKeys returns the node keys of pg, sorted using Node.Less for a
// deterministic iteration order independent of map iteration.
func (pg *Graph) SortedKeys() []string {
	keys := make([]Node, 0, len(pg.Nodes))
	keys = append(keys, pg.Nodes...)
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })
	out := make([]string, len(keys))
	for i, n := range keys {
		out[i] = n.Key()
	}
	return out
}
