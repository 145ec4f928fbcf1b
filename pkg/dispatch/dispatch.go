// Package dispatch provides the Dispatcher: the single entry point that
// selects an installed MCIS engine, projects inputs by tag, and runs it.
// Callers normally go through a Dispatcher rather than invoking
// bronkerbosch or kpt engines directly.
package dispatch

import (
	"github.com/sebaraj/mcis-engine/pkg/engine"
	"github.com/sebaraj/mcis-engine/pkg/engine/bronkerbosch"
	"github.com/sebaraj/mcis-engine/pkg/engine/kpt"
	"github.com/sebaraj/mcis-engine/pkg/graph"
	"github.com/sebaraj/mcis-engine/pkg/mcerr"
)

// Dispatcher owns a fixed set of installed engines, keyed by
// engine.Algorithm, and the tunables passed to every invocation.
type Dispatcher struct {
	engines map[engine.Algorithm]engine.Finder
	opts    engine.Options
}

// New builds a Dispatcher with both bundled engines installed
// (BronKerboschSerial, KPT), using opts for every Run/RunMany call.
func New(opts engine.Options) *Dispatcher {
	return &Dispatcher{
		engines: map[engine.Algorithm]engine.Finder{
			engine.BronKerboschSerial: bronkerbosch.New(),
			engine.KPT:                kpt.New(),
		},
		opts: opts,
	}
}

// Install registers or replaces the engine backing algo. Present mainly so
// callers can swap in a test double or a caller-supplied engine variant
// for an already-enumerated Algorithm value.
func (d *Dispatcher) Install(algo engine.Algorithm, f engine.Finder) {
	d.engines[algo] = f
}

// Run selects the installed engine for algo and invokes it. If tag is
// non-nil, every input graph is first projected through
// GetSubgraphWithTag before being handed to the engine (the engine itself
// also guards this, so direct engine use remains correct — see
// engine.ApplyTag). Returns mcerr.ErrInvalidAlgorithm if no engine is
// installed for algo.
func (d *Dispatcher) Run(graphs []*graph.Graph, algo engine.Algorithm, tag *string) ([]*graph.Graph, error) {
	f, ok := d.engines[algo]
	if !ok {
		return nil, mcerr.ErrInvalidAlgorithm
	}
	return d.RunWith(graphs, f, tag)
}

// RunWith runs a caller-supplied engine instance against graphs, honouring
// the same tag-projection rule as Run.
func (d *Dispatcher) RunWith(graphs []*graph.Graph, f engine.Finder, tag *string) ([]*graph.Graph, error) {
	projected := engine.ApplyTag(graphs, tag)
	return f.Find(projected, nil, d.opts)
}

// RunMany applies Run once per algorithm in algos, in order, aggregating
// each algorithm's result graphs. It short-circuits and returns the first
// error encountered.
func (d *Dispatcher) RunMany(graphs []*graph.Graph, algos []engine.Algorithm, tag *string) ([][]*graph.Graph, error) {
	results := make([][]*graph.Graph, 0, len(algos))
	for _, algo := range algos {
		r, err := d.Run(graphs, algo, tag)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, nil
}
