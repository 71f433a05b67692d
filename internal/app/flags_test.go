package app

import (
	"flag"
	"testing"

	"sandfall/internal/material"
)

func TestBindAndSimConfig(t *testing.T) {
	cfg := NewConfig()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg.Bind(fs)
	args := []string{"-scale", "4", "-seed", "9", "-set", "w=32", "-set", "brush_material=water", "-set", "demo=false"}
	if err := fs.Parse(args); err != nil {
		t.Fatalf("parse: %v", err)
	}
	sc, err := cfg.SimConfig()
	if err != nil {
		t.Fatalf("sim config: %v", err)
	}
	if sc.Scale != 4 || sc.Seed != 9 || sc.Width != 32 {
		t.Fatalf("unexpected config %+v", sc)
	}
	if sc.BrushMaterial != material.Water || sc.Demo {
		t.Fatalf("overrides not applied: %+v", sc)
	}
}

func TestSetRejectsMalformedPairs(t *testing.T) {
	var l KVList
	if err := l.Set("novalue"); err == nil {
		t.Fatal("expected an error for a pair without '='")
	}
	if err := l.Set("=1"); err == nil {
		t.Fatal("expected an error for an empty key")
	}
	if err := l.Set("w=1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := l.Map()["w"]; got != "1" {
		t.Fatalf("w = %q, want 1", got)
	}
}

func TestSimConfigReportsInvalidValues(t *testing.T) {
	cfg := NewConfig()
	cfg.Sets = KVList{"substeps=0"}
	if _, err := cfg.SimConfig(); err == nil {
		t.Fatal("expected substeps=0 to be rejected")
	}
}
