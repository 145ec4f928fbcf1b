package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sebaraj/mcis-engine/pkg/engine"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	opts, err := Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if opts != engine.Defaults() {
		t.Fatalf("expected defaults for a missing file, got %+v", opts)
	}
}

func TestLoadMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mcis.toml")
	contents := "timeout_ms = 9000\nkpt_epsilon = 0.01\n"
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	opts, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	defaults := engine.Defaults()
	if opts.TimeoutMS != 9000 {
		t.Fatalf("expected TimeoutMS=9000, got %d", opts.TimeoutMS)
	}
	if opts.KPTEpsilon != 0.01 {
		t.Fatalf("expected KPTEpsilon=0.01, got %v", opts.KPTEpsilon)
	}
	if opts.MaxCliqueSize != defaults.MaxCliqueSize {
		t.Fatalf("expected MaxCliqueSize to fall back to default %d, got %d", defaults.MaxCliqueSize, opts.MaxCliqueSize)
	}
	if opts.ProductNodeGate != defaults.ProductNodeGate {
		t.Fatalf("expected ProductNodeGate to fall back to default %d, got %d", defaults.ProductNodeGate, opts.ProductNodeGate)
	}
}

func TestLoadInvalidTOMLReturnsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("not = [valid"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for malformed TOML")
	}
}
