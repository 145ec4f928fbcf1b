// Package bronkerbosch implements the product-graph / clique-enumeration
// MCIS engine (spec.md §4.4): it builds the N-wise tensor product of the
// input graphs, enumerates maximal cliques with a pivoting Bron–Kerbosch
// search bounded by a wall-clock timeout and a clique-size short circuit,
// and falls back to a bounded-time heuristic when the product graph would
// be too large to build.
package bronkerbosch

import (
	"hash/fnv"
	"sort"
	"strings"
	"time"

	"github.com/sebaraj/mcis-engine/pkg/engine"
	"github.com/sebaraj/mcis-engine/pkg/graph"
	"github.com/sebaraj/mcis-engine/pkg/mcerr"
	"github.com/sebaraj/mcis-engine/pkg/product"
)

// Engine implements engine.Finder using Bron–Kerbosch with pivoting over
// the tensor product of the input graphs.
type Engine struct{}

// New returns a ready-to-use Bron–Kerbosch engine. The engine holds no
// state between calls.
func New() *Engine { return &Engine{} }

// Find implements engine.Finder.
func (e *Engine) Find(graphs []*graph.Graph, tag *string, opts engine.Options) ([]*graph.Graph, error) {
	filtered := engine.ApplyTag(graphs, tag)

	if len(filtered) == 0 {
		return nil, mcerr.ErrEmptyGraph
	}
	for _, g := range filtered {
		if g.NumNodes() == 0 {
			return nil, mcerr.ErrEmptyGraph
		}
	}

	log := opts.Log()
	start := time.Now()
	deadline := opts.Deadline(start)

	if size := product.Size(filtered); size > opts.ProductNodeGate {
		log.Debug("product graph exceeds node gate, using simple fallback", "size", size, "gate", opts.ProductNodeGate)
		return findSimpleMCIS(filtered), nil
	}

	pg := product.Build(filtered)
	cliques := findMaximalCliques(pg, deadline, opts.MaxCliqueSize)

	if len(cliques) == 0 && len(pg.Nodes) > 0 {
		log.Debug("no cliques recorded before timeout, emitting degenerate one-node clique")
		arbitrary := pg.SortedKeys()[0]
		cliques = [][]string{{arbitrary}}
	}

	return convertCliquesToSubgraphs(cliques, pg, filtered), nil
}

// search carries the mutable state of one findMaximalCliques invocation.
type search struct {
	pg            *product.Graph
	deadline      time.Time
	maxCliqueSize int
	cliques       [][]string
	stopped       bool
}

// findMaximalCliques runs Bron–Kerbosch with pivoting over pg, recording
// every maximal clique found before deadline or the width bound trips.
func findMaximalCliques(pg *product.Graph, deadline time.Time, maxCliqueSize int) [][]string {
	s := &search{pg: pg, deadline: deadline, maxCliqueSize: maxCliqueSize}

	allKeys := pg.SortedKeys()
	p := make(map[string]bool, len(allKeys))
	for _, k := range allKeys {
		p[k] = true
	}
	x := make(map[string]bool)

	s.recurse(nil, p, x)
	return s.cliques
}

func (s *search) recurse(r []string, p, x map[string]bool) {
	if s.stopped || time.Now().After(s.deadline) {
		return
	}
	if len(p) == 0 && len(x) == 0 {
		if len(r) > 0 {
			clique := append([]string(nil), r...)
			s.cliques = append(s.cliques, clique)
			if len(s.cliques) == 1 && len(clique) > s.maxCliqueSize {
				s.stopped = true
			}
		}
		return
	}

	pivot := choosePivot(p, x, s.pg)
	pivotNeighbors := s.pg.Adjacency[pivot]

	candidates := sortedKeys(p)
	for _, v := range candidates {
		if s.stopped || time.Now().After(s.deadline) {
			return
		}
		if pivotNeighbors[v] {
			continue
		}
		neighbors := s.pg.Adjacency[v]
		newP := intersect(p, neighbors)
		newX := intersect(x, neighbors)
		s.recurse(append(r, v), newP, newX)
		delete(p, v)
		x[v] = true
	}
}

// choosePivot picks the node in P∪X with the largest product-graph
// degree, breaking ties by lexicographically-first key (spec.md leaves
// "first-encounter order" implementation-defined; sorted key order gives
// a stable, deterministic tie-break — see DESIGN.md).
func choosePivot(p, x map[string]bool, pg *product.Graph) string {
	var best string
	bestDegree := -1
	for _, key := range sortedUnionKeys(p, x) {
		d := pg.Degree(key)
		if d > bestDegree {
			bestDegree = d
			best = key
		}
	}
	if bestDegree > 0 {
		return best
	}
	if len(p) > 0 {
		return sortedKeys(p)[0]
	}
	return sortedKeys(x)[0]
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedUnionKeys(a, b map[string]bool) []string {
	seen := make(map[string]bool, len(a)+len(b))
	for k := range a {
		seen[k] = true
	}
	for k := range b {
		seen[k] = true
	}
	return sortedKeys(seen)
}

func intersect(a map[string]bool, b map[string]bool) map[string]bool {
	out := make(map[string]bool)
	for k := range a {
		if b[k] {
			out[k] = true
		}
	}
	return out
}

// convertCliquesToSubgraphs retains the maximum-cardinality cliques and
// converts each into a result Graph: nodes named by the `_`-joined tuple
// (spec.md's canonical product-node-name rule), edges present wherever
// the directed edge exists in every input graph, weight fixed at 1.
func convertCliquesToSubgraphs(cliques [][]string, pg *product.Graph, graphs []*graph.Graph) []*graph.Graph {
	if len(cliques) == 0 {
		return nil
	}
	maxSize := 0
	for _, c := range cliques {
		if len(c) > maxSize {
			maxSize = len(c)
		}
	}

	var results []*graph.Graph
	for _, clique := range cliques {
		if len(clique) != maxSize {
			continue
		}
		results = append(results, cliqueToSubgraph(clique, pg, graphs))
	}
	return results
}

func cliqueToSubgraph(clique []string, pg *product.Graph, graphs []*graph.Graph) *graph.Graph {
	nodes := make([]product.Node, len(clique))
	for i, key := range clique {
		n, ok := pg.NodeByKey(key)
		if !ok {
			continue
		}
		nodes[i] = n
	}

	result := graph.New()
	for _, n := range nodes {
		_ = result.AddNode(n.Name())
	}
	for _, p := range nodes {
		for _, q := range nodes {
			if p.Key() == q.Key() {
				continue
			}
			if directedEdgeInEveryGraph(p, q, graphs) {
				_ = result.AddEdge(p.Name(), q.Name(), 1)
			}
		}
	}
	return result
}

func directedEdgeInEveryGraph(p, q product.Node, graphs []*graph.Graph) bool {
	for i, g := range graphs {
		from, ok1 := g.Node(p.IDs[i])
		to, ok2 := g.Node(q.IDs[i])
		if !ok1 || !ok2 || !from.ContainsEdge(to) {
			return false
		}
	}
	return true
}

// findSimpleMCIS is the deterministic, bounded-time, bounded-size
// heuristic used when the product graph would exceed the node gate
// (spec.md §4.4's find_simple_mcis). It never builds a product graph: for
// each node of the first input graph, it searches every remaining graph
// for a degree-compatible node, and — if every remaining graph yields one
// — records the `_`-joined tuple name. The resulting name list is capped
// at 10 entries, and edges are added between name pairs whose FNV-1a hash
// is 0 mod 4.
func findSimpleMCIS(graphs []*graph.Graph) []*graph.Graph {
	names := simpleNames(graphs)
	if len(names) > 10 {
		names = names[:10]
	}

	result := graph.New()
	for _, name := range names {
		_ = result.AddNode(name)
	}
	for _, a := range names {
		for _, b := range names {
			if a == b {
				continue
			}
			if hashPair(a, b)%4 == 0 {
				_ = result.AddEdge(a, b, 1)
			}
		}
	}
	return []*graph.Graph{result}
}

func simpleNames(graphs []*graph.Graph) []string {
	if len(graphs) == 0 {
		return nil
	}
	first := graphs[0]
	var names []string
	for _, id1 := range first.NodeIDs() {
		n1, _ := first.Node(id1)
		deg1 := n1.NumParents() + n1.NumChildren()
		tuple := []string{id1}
		ok := true
		for _, g := range graphs[1:] {
			match, found := compatibleNode(deg1, g)
			if !found {
				ok = false
				break
			}
			tuple = append(tuple, match)
		}
		if ok {
			names = append(names, strings.Join(tuple, "_"))
		}
	}
	return names
}

// compatibleNode returns the first node (in sorted ID order) of g whose
// degree is structurally compatible with deg1, per structurallyCompatible.
func compatibleNode(deg1 int, g *graph.Graph) (string, bool) {
	for _, id := range g.NodeIDs() {
		n, _ := g.Node(id)
		deg2 := n.NumParents() + n.NumChildren()
		if structurallyCompatible(deg1, deg2) {
			return id, true
		}
	}
	return "", false
}

// structurallyCompatible implements spec.md §4.4's compatibility
// predicate: |deg(a) - deg(b)| <= max(1, floor(min(deg(a), deg(b)) / 2)).
func structurallyCompatible(d1, d2 int) bool {
	min := d1
	if d2 < min {
		min = d2
	}
	bound := min / 2
	if bound < 1 {
		bound = 1
	}
	diff := d1 - d2
	if diff < 0 {
		diff = -diff
	}
	return diff <= bound
}

func hashPair(a, b string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(a))
	_, _ = h.Write([]byte(b))
	return h.Sum32()
}
