// Package kpt implements the KPT hypergraph-matching MCIS engine
// (spec.md §4.5): a recursive local-ratio reduction over the N-partite
// hyperedge set, where conflict between two hyperedges is decided by
// directed reachability in the input graphs rather than direct adjacency.
package kpt

import (
	"sort"

	"github.com/sebaraj/mcis-engine/pkg/engine"
	"github.com/sebaraj/mcis-engine/pkg/graph"
	"github.com/sebaraj/mcis-engine/pkg/mcerr"
	"github.com/sebaraj/mcis-engine/pkg/product"
)

// Engine implements engine.Finder using kPCM_Match, the recursive
// local-ratio reduction over the hyperedge universe.
type Engine struct{}

// New returns a ready-to-use KPT engine. The engine holds no state
// between calls.
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

	hyperedges := product.Enumerate(filtered)
	weights := make(map[string]float64, len(hyperedges))
	for _, h := range hyperedges {
		weights[h.Key()] = 1
	}

	reach := newReachIndex(filtered)
	m := &matcher{
		byKey:   indexByKey(hyperedges),
		reach:   reach,
		n:       len(filtered),
		epsilon: opts.KPTEpsilon,
		alpha:   float64(opts.KPTAlphaMultiplier * len(filtered)),
	}

	matching := m.kPCMMatch(hyperedges, weights)
	return []*graph.Graph{assembleResult(matching)}, nil
}

func indexByKey(nodes []product.Node) map[string]product.Node {
	out := make(map[string]product.Node, len(nodes))
	for _, n := range nodes {
		out[n.Key()] = n
	}
	return out
}

// matcher carries the read-only context (conflict parameters, reachability
// index) shared across every recursive kPCMMatch call for one Find
// invocation.
type matcher struct {
	byKey   map[string]product.Node
	reach   *reachIndex
	n       int
	epsilon float64
	alpha   float64
}

// kPCMMatch implements the kPCM_Match skeleton of spec.md §4.5: base case,
// fractional relaxation, zero-value pruning, low-conflict selection,
// local-ratio reduction, and greedy augmentation.
func (m *matcher) kPCMMatch(f []product.Node, w map[string]float64) []product.Node {
	if len(f) == 0 {
		return nil
	}

	sum := 0.0
	for _, e := range f {
		sum += w[e.Key()]
	}
	if sum == 0 {
		return nil
	}

	x := make(map[string]float64, len(f))
	for _, e := range f {
		x[e.Key()] = w[e.Key()] / sum
	}

	nonzero := make([]product.Node, 0, len(f))
	for _, e := range f {
		if x[e.Key()] > m.epsilon {
			nonzero = append(nonzero, e)
		}
	}
	if len(nonzero) < len(f) {
		return m.kPCMMatch(nonzero, w)
	}

	ordered := sortedNodes(f)
	e := m.selectLowConflict(ordered, x)

	remaining := make([]product.Node, 0, len(f)-1)
	wPrime := make(map[string]float64, len(f)-1)
	for _, cand := range ordered {
		if cand.Key() == e.Key() {
			continue
		}
		remaining = append(remaining, cand)
		wHat := 0.0
		if m.conflict(e, cand) {
			wHat = minFloat(w[e.Key()], w[cand.Key()])
		}
		wPrime[cand.Key()] = w[cand.Key()] - wHat
	}

	mPrime := m.kPCMMatch(remaining, wPrime)

	for _, existing := range mPrime {
		if m.conflict(e, existing) {
			return mPrime
		}
	}
	return append(mPrime, e)
}

// selectLowConflict finds the first hyperedge (in deterministic order)
// whose total conflicting fractional weight does not exceed alpha, falling
// back to the first element of f when none qualifies.
func (m *matcher) selectLowConflict(f []product.Node, x map[string]float64) product.Node {
	for _, e := range f {
		conflictSum := 0.0
		for _, q := range f {
			if m.conflict(e, q) {
				conflictSum += x[q.Key()]
			}
		}
		if conflictSum <= m.alpha {
			return e
		}
	}
	return f[0]
}

// conflict implements spec.md §4.5's conflict predicate: identical
// hyperedges conflict, as do hyperedges with mutual reachability (in
// either direction) between their coordinates in any single graph.
func (m *matcher) conflict(p, q product.Node) bool {
	if p.Key() == q.Key() {
		return true
	}
	for i := 0; i < m.n; i++ {
		if m.reach.reachable(i, p.IDs[i], q.IDs[i]) || m.reach.reachable(i, q.IDs[i], p.IDs[i]) {
			return true
		}
	}
	return false
}

func sortedNodes(nodes []product.Node) []product.Node {
	out := append([]product.Node(nil), nodes...)
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

// assembleResult builds the single result graph spec.md §4.5 mandates: one
// untagged node per matched hyperedge, named by the `_`-joined tuple, and
// no edges.
func assembleResult(matching []product.Node) *graph.Graph {
	result := graph.New()
	for _, h := range sortedNodes(matching) {
		_ = result.AddNode(h.Name())
	}
	return result
}

// reachIndex memoizes per-graph, per-source BFS reachability sets so that
// repeated conflict() queries against the same source node only pay the
// O(|V|+|E|) traversal cost once (spec.md §4.5 explicitly permits this).
type reachIndex struct {
	graphs []*graph.Graph
	cache  []map[string]map[string]bool
}

func newReachIndex(graphs []*graph.Graph) *reachIndex {
	cache := make([]map[string]map[string]bool, len(graphs))
	for i := range graphs {
		cache[i] = make(map[string]map[string]bool)
	}
	return &reachIndex{graphs: graphs, cache: cache}
}

func (r *reachIndex) reachable(graphIndex int, fromID, toID string) bool {
	if fromID == toID {
		return true
	}
	set, ok := r.cache[graphIndex][fromID]
	if !ok {
		set = bfsReachable(r.graphs[graphIndex], fromID)
		r.cache[graphIndex][fromID] = set
	}
	return set[toID]
}

// bfsReachable returns the set of node IDs reachable from start by
// following directed edges, start excluded (callers treat start == target
// as trivially reachable separately). An unknown start returns an empty
// set.
func bfsReachable(g *graph.Graph, start string) map[string]bool {
	visited := map[string]bool{start: true}
	reached := make(map[string]bool)

	n, ok := g.Node(start)
	if !ok {
		return reached
	}

	queue := []string{start}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		cur := n
		if id != start {
			cur, _ = g.Node(id)
		}
		if cur == nil {
			continue
		}
		for _, childID := range cur.ChildIDs() {
			if visited[childID] {
				continue
			}
			visited[childID] = true
			reached[childID] = true
			queue = append(queue, childID)
		}
	}
	return reached
}
