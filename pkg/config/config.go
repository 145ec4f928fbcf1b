// Package config loads engine.Options from an optional TOML file, falling
// back to engine.Defaults for any field the file omits.
package config

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/sebaraj/mcis-engine/pkg/engine"
)

// fileOptions mirrors engine.Options but with every field a pointer, so
// Load can tell "absent from the file" apart from "explicitly zero".
type fileOptions struct {
	TimeoutMS          *int     `toml:"timeout_ms"`
	MaxCliqueSize      *int     `toml:"max_clique_size"`
	ProductNodeGate    *int     `toml:"product_node_gate"`
	KPTEpsilon         *float64 `toml:"kpt_epsilon"`
	KPTAlphaMultiplier *int     `toml:"kpt_alpha_multiplier"`
}

// Load reads a TOML tunables file at path and merges it over
// engine.Defaults. A missing file is not an error: Load returns the
// defaults unchanged.
func Load(path string) (engine.Options, error) {
	opts := engine.Defaults()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return opts, nil
	}
	if err != nil {
		return opts, err
	}

	var parsed fileOptions
	if err := toml.Unmarshal(data, &parsed); err != nil {
		return opts, err
	}

	if parsed.TimeoutMS != nil {
		opts.TimeoutMS = *parsed.TimeoutMS
	}
	if parsed.MaxCliqueSize != nil {
		opts.MaxCliqueSize = *parsed.MaxCliqueSize
	}
	if parsed.ProductNodeGate != nil {
		opts.ProductNodeGate = *parsed.ProductNodeGate
	}
	if parsed.KPTEpsilon != nil {
		opts.KPTEpsilon = *parsed.KPTEpsilon
	}
	if parsed.KPTAlphaMultiplier != nil {
		opts.KPTAlphaMultiplier = *parsed.KPTAlphaMultiplier
	}
	return opts, nil
}
