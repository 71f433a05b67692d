package app

import (
	"flag"
	"fmt"
	"strconv"
	"strings"

	"sandfall/internal/sim"
)

// Config represents the command-line parameters shared by the front-ends.
type Config struct {
	Scale int
	TPS   int
	Seed  int64
	Scene string
	// HUD is the width of the parameter panel in pixels; zero hides it.
	HUD  int
	Sets KVList
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	d := sim.DefaultConfig()
	return &Config{Scale: d.Scale, TPS: 60, Seed: d.Seed, Scene: d.Scene, HUD: 220}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.Scale, "scale", c.Scale, "display pixels per grid cell")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for demo strokes and scenes")
	fs.StringVar(&c.Scene, "scene", c.Scene, "starting scene")
	fs.IntVar(&c.HUD, "hud", c.HUD, "HUD panel width in pixels (0 hides it)")
	fs.Var(&c.Sets, "set", "simulation override in key=value form (repeatable)")
}

// SimConfig merges the flags and -set overrides into a simulation config.
// Explicit -set values win over the dedicated flags.
func (c *Config) SimConfig() (sim.Config, error) {
	m := map[string]string{
		"scale": strconv.Itoa(c.Scale),
		"seed":  strconv.FormatInt(c.Seed, 10),
		"scene": c.Scene,
	}
	for k, v := range c.Sets.Map() {
		m[k] = v
	}
	cfg, err := sim.FromMap(m)
	if err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// KVList collects repeated key=value flags.
type KVList []string

func (l *KVList) String() string {
	return strings.Join(*l, ",")
}

// Set appends one key=value pair.
func (l *KVList) Set(value string) error {
	if k, _, ok := strings.Cut(value, "="); !ok || k == "" {
		return fmt.Errorf("expected key=value, got %q", value)
	}
	*l = append(*l, value)
	return nil
}

// Map returns the pairs as a map; later pairs override earlier ones.
func (l KVList) Map() map[string]string {
	out := make(map[string]string, len(l))
	for _, kv := range l {
		k, v, _ := strings.Cut(kv, "=")
		out[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	return out
}
