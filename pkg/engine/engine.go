// Package engine defines the shared contract MCIS engines (Bron–Kerbosch,
// KPT) implement, and the tunables that parameterize them. Concrete
// engines live in the bronkerbosch and kpt subpackages; pkg/dispatch
// selects among them.
package engine

import (
	"time"

	charmlog "github.com/charmbracelet/log"

	"github.com/sebaraj/mcis-engine/pkg/graph"
)

// Finder is the capability interface every installable MCIS engine
// satisfies. It replaces the original's abstract MCISFinder base class
// with a small interface, per spec.md §9's design notes.
type Finder interface {
	// Find computes the MCIS across graphs, optionally restricted to
	// nodes sharing tag (nil means no filtering). It returns the result
	// graphs produced by the engine, or an error — most commonly
	// mcerr.ErrEmptyGraph.
	Find(graphs []*graph.Graph, tag *string, opts Options) ([]*graph.Graph, error)
}

// ApplyTag projects every graph through GetSubgraphWithTag(*tag) when tag
// is non-nil, otherwise it returns graphs unchanged. Both bundled engines
// call this themselves at the top of Find, so that calling an engine
// directly (bypassing pkg/dispatch) still honours the tag-projection rule
// of spec.md §4.6.
func ApplyTag(graphs []*graph.Graph, tag *string) []*graph.Graph {
	if tag == nil {
		return graphs
	}
	out := make([]*graph.Graph, len(graphs))
	for i, g := range graphs {
		out[i] = g.GetSubgraphWithTag(*tag)
	}
	return out
}

// Algorithm identifies an installable MCIS engine.
type Algorithm int

const (
	// BronKerboschSerial is the product-graph / clique-enumeration engine.
	BronKerboschSerial Algorithm = iota
	// KPT is the hypergraph local-ratio matching engine.
	KPT
)

// String renders the algorithm name for logs and CLI flags.
func (a Algorithm) String() string {
	switch a {
	case BronKerboschSerial:
		return "bron-kerbosch-serial"
	case KPT:
		return "kpt"
	default:
		return "unknown"
	}
}

// Options tunes engine behavior. Every field corresponds to one of the
// "magic numbers" spec.md's design notes call out as configuration
// rather than invariants; pkg/config loads these from an optional TOML
// file and falls back to Defaults.
type Options struct {
	// TimeoutMS bounds a single Bron–Kerbosch invocation's wall-clock
	// budget. Defaults to 5000.
	TimeoutMS int
	// MaxCliqueSize short-circuits Bron–Kerbosch once the first recorded
	// clique exceeds this size. Defaults to 10.
	MaxCliqueSize int
	// ProductNodeGate is the |ProductGraph.nodes| threshold past which
	// Bron–Kerbosch falls back to the simple heuristic instead of
	// building the full product graph. Defaults to 1000.
	ProductNodeGate int
	// KPTEpsilon is the zero-value pruning threshold for fractional
	// hyperedge weights. Defaults to 1e-9.
	KPTEpsilon float64
	// KPTAlphaMultiplier scales N (the number of input graphs) to produce
	// KPT's low-conflict selection bound alpha = KPTAlphaMultiplier * N.
	// Defaults to 2.
	KPTAlphaMultiplier int
	// Logger receives Bron–Kerbosch's debug-level events (product-graph
	// gate fallback, degenerate one-node clique when no clique was
	// recorded before the deadline). A nil Logger is replaced with one that
	// discards output.
	Logger *charmlog.Logger
}

// Defaults returns spec.md's documented default tunables.
func Defaults() Options {
	return Options{
		TimeoutMS:          5000,
		MaxCliqueSize:      10,
		ProductNodeGate:    1000,
		KPTEpsilon:         1e-9,
		KPTAlphaMultiplier: 2,
	}
}

// Deadline computes the wall-clock instant TimeoutMS milliseconds after
// start.
func (o Options) Deadline(start time.Time) time.Time {
	return start.Add(time.Duration(o.TimeoutMS) * time.Millisecond)
}

// Log returns o.Logger, or a logger that discards all output if nil, so
// callers never need a nil check.
func (o Options) Log() *charmlog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return charmlog.New(discard{})
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
