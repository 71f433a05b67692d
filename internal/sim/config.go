package sim

import (
	"fmt"
	"strconv"

	"go.uber.org/multierr"

	"sandfall/internal/automaton"
	"sandfall/internal/jfa"
	"sandfall/internal/material"
	"sandfall/internal/scene"
)

// MaxSubsteps bounds the automaton updates run per presented tick.
const MaxSubsteps = 16

// Config controls the simulation dimensions and behaviour.
type Config struct {
	Width  int
	Height int
	// Scale is the number of display pixels per grid cell.
	Scale int

	Substeps  int
	JFAPasses int
	Workers   int

	Demo bool
	Seed int64

	BrushRadius   float32
	BrushMaterial material.Material

	Scene string

	Params automaton.Params
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Width:         160,
		Height:        90,
		Scale:         10,
		Substeps:      3,
		JFAPasses:     jfa.DefaultPasses,
		Workers:       0,
		Demo:          true,
		Seed:          1,
		BrushRadius:   1,
		BrushMaterial: material.Glitter,
		Scene:         "noise",
		Params:        automaton.DefaultParams(),
	}
}

// FromMap populates the config from a string map (flag-style key/value
// pairs). Values that fail to parse keep their default and are reported in
// the returned error; range checks are left to Validate.
func FromMap(cfg map[string]string) (Config, error) {
	c := DefaultConfig()
	var err error
	intKey := func(key string, dst *int) {
		if v, ok := cfg[key]; ok {
			parsed, perr := strconv.Atoi(v)
			if perr != nil {
				err = multierr.Append(err, fmt.Errorf("%s: %w", key, perr))
				return
			}
			*dst = parsed
		}
	}
	floatKey := func(key string, dst *float32) {
		if v, ok := cfg[key]; ok {
			parsed, perr := strconv.ParseFloat(v, 32)
			if perr != nil {
				err = multierr.Append(err, fmt.Errorf("%s: %w", key, perr))
				return
			}
			*dst = float32(parsed)
		}
	}

	intKey("w", &c.Width)
	intKey("h", &c.Height)
	intKey("scale", &c.Scale)
	intKey("substeps", &c.Substeps)
	intKey("jfa_passes", &c.JFAPasses)
	intKey("workers", &c.Workers)
	if v, ok := cfg["demo"]; ok {
		parsed, perr := strconv.ParseBool(v)
		if perr != nil {
			err = multierr.Append(err, fmt.Errorf("demo: %w", perr))
		} else {
			c.Demo = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		parsed, perr := strconv.ParseInt(v, 10, 64)
		if perr != nil {
			err = multierr.Append(err, fmt.Errorf("seed: %w", perr))
		} else {
			c.Seed = parsed
		}
	}
	floatKey("brush_radius", &c.BrushRadius)
	if v, ok := cfg["brush_material"]; ok {
		m, perr := material.Parse(v)
		if perr != nil {
			err = multierr.Append(err, fmt.Errorf("brush_material: %w", perr))
		} else {
			c.BrushMaterial = m
		}
	}
	if v, ok := cfg["scene"]; ok {
		c.Scene = v
	}

	p := &c.Params
	floatKey("smoke_rise", &p.SmokeRise)
	floatKey("smoke_dissipate", &p.SmokeDissipate)
	floatKey("granular_fall", &p.GranularFall)
	floatKey("granular_spread", &p.GranularSpread)
	floatKey("water_fall", &p.WaterFall)
	floatKey("water_diagonal", &p.WaterDiagonal)
	floatKey("water_lateral", &p.WaterLateral)
	floatKey("lava_fall", &p.LavaFall)
	floatKey("lava_diagonal", &p.LavaDiagonal)
	floatKey("lava_lateral", &p.LavaLateral)
	return c, err
}

// Validate reports every out-of-range field.
func (c Config) Validate() error {
	var err error
	if c.Width <= 0 || c.Height <= 0 {
		err = multierr.Append(err, fmt.Errorf("grid %dx%d must have positive area", c.Width, c.Height))
	}
	if c.Scale <= 0 {
		err = multierr.Append(err, fmt.Errorf("scale %d must be positive", c.Scale))
	}
	if c.Substeps < 1 || c.Substeps > MaxSubsteps {
		err = multierr.Append(err, fmt.Errorf("substeps %d outside [1, %d]", c.Substeps, MaxSubsteps))
	}
	if c.JFAPasses < 1 || c.JFAPasses > jfa.MaxPasses {
		err = multierr.Append(err, fmt.Errorf("%w: %d", jfa.ErrPassCount, c.JFAPasses))
	}
	if c.Workers < 0 {
		err = multierr.Append(err, fmt.Errorf("workers %d must not be negative", c.Workers))
	}
	if c.BrushRadius < automaton.MinRadius || c.BrushRadius > automaton.MaxRadius {
		err = multierr.Append(err, fmt.Errorf("brush_radius %g outside [%g, %g]", c.BrushRadius, automaton.MinRadius, automaton.MaxRadius))
	}
	if !c.BrushMaterial.Valid() {
		err = multierr.Append(err, fmt.Errorf("brush_material: %w: id %d", material.ErrUnknown, c.BrushMaterial))
	}
	if _, serr := scene.Lookup(c.Scene); serr != nil {
		err = multierr.Append(err, serr)
	}
	for _, p := range c.probabilities() {
		if p.value < 0 || p.value > 1 || p.value != p.value {
			err = multierr.Append(err, fmt.Errorf("%s %g outside [0, 1]", p.key, p.value))
		}
	}
	return err
}

type probability struct {
	key   string
	label string
	value float32
	ptr   *float32
}

// probabilities lists the rule probabilities in presentation order.
func (c *Config) probabilities() []probability {
	p := &c.Params
	return []probability{
		{"smoke_rise", "Smoke rise", p.SmokeRise, &p.SmokeRise},
		{"smoke_dissipate", "Smoke dissipate", p.SmokeDissipate, &p.SmokeDissipate},
		{"granular_fall", "Grain fall", p.GranularFall, &p.GranularFall},
		{"granular_spread", "Grain spread", p.GranularSpread, &p.GranularSpread},
		{"water_fall", "Water fall", p.WaterFall, &p.WaterFall},
		{"water_diagonal", "Water diagonal", p.WaterDiagonal, &p.WaterDiagonal},
		{"water_lateral", "Water lateral", p.WaterLateral, &p.WaterLateral},
		{"lava_fall", "Lava fall", p.LavaFall, &p.LavaFall},
		{"lava_diagonal", "Lava diagonal", p.LavaDiagonal, &p.LavaDiagonal},
		{"lava_lateral", "Lava lateral", p.LavaLateral, &p.LavaLateral},
	}
}
