package sim

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"sandfall/internal/automaton"
	"sandfall/internal/core"
	"sandfall/internal/jfa"
	"sandfall/internal/material"
)

func smallConfig() Config {
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = 24, 16
	cfg.Demo = false
	cfg.Workers = 2
	return cfg
}

func newSim(t *testing.T, cfg Config) *Simulation {
	t.Helper()
	s, err := New(cfg)
	require.NoError(t, err)
	return s
}

func TestDefaultConfigValid(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
}

func TestFromMap(t *testing.T) {
	cfg, err := FromMap(map[string]string{
		"w": "40", "h": "30", "substeps": "2", "demo": "false",
		"brush_material": "lava", "granular_spread": "0.4", "seed": "-7",
	})
	require.NoError(t, err)
	assert.Equal(t, 40, cfg.Width)
	assert.Equal(t, 30, cfg.Height)
	assert.Equal(t, 2, cfg.Substeps)
	assert.False(t, cfg.Demo)
	assert.Equal(t, material.Lava, cfg.BrushMaterial)
	assert.Equal(t, float32(0.4), cfg.Params.GranularSpread)
	assert.Equal(t, int64(-7), cfg.Seed)

	cfg, err = FromMap(map[string]string{"w": "wide", "lava_fall": "x", "h": "12"})
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 2)
	assert.Equal(t, DefaultConfig().Width, cfg.Width)
	assert.Equal(t, 12, cfg.Height)
}

func TestValidateReportsEveryField(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width = 0
	cfg.JFAPasses = 0
	cfg.BrushRadius = 9
	cfg.Params.WaterFall = 1.5
	cfg.Scene = "moon"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 5)
	assert.ErrorIs(t, err, jfa.ErrPassCount)
}

func TestFirstTickPopulatesAndLights(t *testing.T) {
	s := newSim(t, smallConfig())
	out, err := s.Tick(Input{})
	require.NoError(t, err)
	assert.True(t, out.Stepped)
	assert.True(t, out.Lit)
	assert.Equal(t, 3, out.Frame)
	hist := s.Histogram()
	assert.Positive(t, hist[material.Sand]+hist[material.Smoke])
}

func TestPausedTickIsIdle(t *testing.T) {
	s := newSim(t, smallConfig())
	_, err := s.Tick(Input{})
	require.NoError(t, err)
	s.SetPaused(true)
	before := s.Grid().Clone()

	out, err := s.Tick(Input{})
	require.NoError(t, err)
	assert.False(t, out.Stepped)
	assert.False(t, out.Lit)
	assert.True(t, before.Equal(s.Grid()))
	assert.Equal(t, 3, out.Frame)

	stroke := automaton.Brush{From: automaton.Vec2{X: 4, Y: 4}, To: automaton.Vec2{X: 6, Y: 4}, Active: true}
	out, err = s.Tick(Input{Brush: stroke})
	require.NoError(t, err)
	assert.True(t, out.Stepped, "an active brush advances a paused simulation")
	assert.True(t, out.Lit)
	assert.Positive(t, out.Stats.Brushed)
}

func TestTickRejectsBadBrush(t *testing.T) {
	s := newSim(t, smallConfig())
	stroke := automaton.Brush{From: automaton.Vec2{X: math32.NaN()}, Active: true}
	_, err := s.Tick(Input{Brush: stroke})
	require.ErrorIs(t, err, automaton.ErrInvalidBrush)
}

func TestResizeKeepsFloorAndRelights(t *testing.T) {
	s := newSim(t, smallConfig())
	_, err := s.Tick(Input{})
	require.NoError(t, err)
	g := s.Grid()
	bottom := g.At(0, g.H-1)

	require.NoError(t, s.ResizeToDisplay(401, 95))
	assert.Equal(t, 41, s.Size().W)
	assert.Equal(t, 10, s.Size().H)
	assert.Equal(t, bottom, s.Grid().At(0, s.Size().H-1))

	s.SetPaused(true)
	out, err := s.Tick(Input{})
	require.NoError(t, err)
	assert.False(t, out.Stepped)
	assert.True(t, out.Lit)
	assert.Equal(t, 41, out.Field.W)

	require.Error(t, s.Resize(0, 10))
}

func TestBrushControls(t *testing.T) {
	s := newSim(t, smallConfig())
	s.AdjustBrushRadius(3)
	assert.Equal(t, float32(2.5), s.BrushRadius())
	s.AdjustBrushRadius(100)
	assert.Equal(t, automaton.MaxRadius, s.BrushRadius())
	s.AdjustBrushRadius(-100)
	assert.Equal(t, automaton.MinRadius, s.BrushRadius())

	s.SelectMaterial(12)
	assert.Equal(t, material.Wall, s.BrushMaterial())
	s.SelectMaterial(-1)
	assert.Equal(t, material.Air, s.BrushMaterial())
}

func TestDemoPaintsThenStops(t *testing.T) {
	cfg := smallConfig()
	cfg.Demo = true
	cfg.Substeps = 1
	s := newSim(t, cfg)
	for i := 0; i <= demoStart; i++ {
		out, err := s.Tick(Input{})
		require.NoError(t, err)
		assert.Zero(t, out.Stats.Brushed, "tick %d", i)
	}
	out, err := s.Tick(Input{})
	require.NoError(t, err)
	assert.Positive(t, out.Stats.Brushed)
	assert.True(t, s.Demo())
	m := s.BrushMaterial()
	assert.True(t, m >= material.Water && m <= material.Stone, "demo picked %s", m)

	for s.tick < demoEnd {
		_, err := s.Tick(Input{})
		require.NoError(t, err)
	}
	_, err = s.Tick(Input{})
	require.NoError(t, err)
	assert.False(t, s.Demo())
}

func TestUserBrushStopsDemo(t *testing.T) {
	cfg := smallConfig()
	cfg.Demo = true
	s := newSim(t, cfg)
	_, err := s.Tick(Input{Brush: automaton.Brush{From: automaton.Vec2{X: 2, Y: 2}, To: automaton.Vec2{X: 2, Y: 2}, Active: true}})
	require.NoError(t, err)
	assert.False(t, s.Demo())
}

func TestVolcanoSceneReacts(t *testing.T) {
	cfg := smallConfig()
	cfg.Width, cfg.Height = 40, 30
	cfg.Scene = "volcano"
	s := newSim(t, cfg)
	assert.Positive(t, s.Histogram()[material.Lava])
	out, err := s.Tick(Input{})
	require.NoError(t, err)
	assert.Positive(t, out.Stats.Reactions)
}

func TestParameterSetters(t *testing.T) {
	s := newSim(t, smallConfig())
	require.True(t, s.SetFloatParameter("water_fall", 2))
	assert.Equal(t, float32(1), s.Config().Params.WaterFall)
	assert.Equal(t, float32(1), s.engine.Params.WaterFall)
	require.True(t, s.SetIntParameter("substeps", 0))
	assert.Equal(t, 1, s.Config().Substeps)
	assert.False(t, s.SetFloatParameter("gravity", 1))

	var tunable core.Tunable = s
	snap := tunable.Parameters()
	for _, c := range tunable.ParameterControls() {
		p, ok := snap.Lookup(c.Key)
		require.True(t, ok, "control %s missing from snapshot", c.Key)
		v, ok := p.Float()
		require.True(t, ok, "control %s has non-numeric value %q", c.Key, p.Value)
		assert.True(t, c.Allows(v), "control %s value %v outside [%v, %v]", c.Key, v, c.Min, c.Max)
	}
}

func TestResetRebuildsConfiguredScene(t *testing.T) {
	cfg := smallConfig()
	cfg.Scene = "volcano"
	s := newSim(t, cfg)
	want := s.Histogram()
	for i := 0; i < 5; i++ {
		_, err := s.Tick(Input{})
		require.NoError(t, err)
	}

	require.NoError(t, s.Reset())
	assert.Equal(t, want, s.Histogram())
	_, err := s.Tick(Input{})
	require.NoError(t, err)
	hist := s.Histogram()
	assert.Zero(t, hist[material.Sand], "noise fill replaced the scene")
	assert.Positive(t, hist[material.Stone])
}

func TestResetRepopulatesNoise(t *testing.T) {
	s := newSim(t, smallConfig())
	require.NoError(t, s.Reset())
	assert.Equal(t, 0, s.Frame())
	_, err := s.Tick(Input{})
	require.NoError(t, err)
	hist := s.Histogram()
	assert.Positive(t, hist[material.Sand]+hist[material.Smoke])
}
