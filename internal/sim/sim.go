// Package sim owns the simulation context: the grid buffers, the occlusion
// field, the frame counter and the interaction state that front-ends drive
// one tick at a time.
package sim

import (
	"fmt"

	"sandfall/internal/automaton"
	"sandfall/internal/core"
	"sandfall/internal/grid"
	"sandfall/internal/jfa"
	"sandfall/internal/material"
	"sandfall/internal/scene"
)

// Input is what a front-end hands the simulation each tick.
type Input struct {
	// Brush is the user's stroke in grid coordinates. Its Radius and
	// Material are ignored; the simulation's current selection is used.
	Brush automaton.Brush
	// Time is the wall-clock time in seconds.
	Time float32
}

// Output describes the state after a tick.
type Output struct {
	Grid  *grid.Grid
	Field *jfa.Field
	Stats automaton.Stats
	// Frame is the automaton frame index the next update will use.
	Frame int
	// Stepped is set when the automaton ran.
	Stepped bool
	// Lit is set when the occlusion field was regenerated.
	Lit bool
}

// Simulation is the explicit context that replaces global buffers.
type Simulation struct {
	cfg    Config
	engine *automaton.Engine
	grids  *grid.PingPong
	field  *jfa.Field

	tick    int
	paused  bool
	demo    bool
	resized bool

	brushRadius   float32
	brushMaterial material.Material

	last automaton.Stats
}

// New builds a simulation from cfg after validating it.
func New(cfg Config) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("sim config: %w", err)
	}
	grids, err := grid.NewPingPong(cfg.Width, cfg.Height)
	if err != nil {
		return nil, err
	}
	field, err := jfa.NewField(cfg.Width, cfg.Height, cfg.JFAPasses, cfg.Workers)
	if err != nil {
		return nil, err
	}
	s := &Simulation{
		cfg:    cfg,
		engine: automaton.NewEngine(cfg.Params, cfg.Workers),
		grids:  grids,
		field:  field,
	}
	if err := s.Reset(); err != nil {
		return nil, err
	}
	return s, nil
}

// Name identifies the simulation in window titles and HUDs.
func (s *Simulation) Name() string { return "sandfall" }

// Size returns the grid dimensions.
func (s *Simulation) Size() core.Size {
	w, h := s.grids.Size()
	return core.Size{W: w, H: h}
}

// Config returns the active configuration, including live parameter edits.
func (s *Simulation) Config() Config { return s.cfg }

// Grid returns the current grid. It is replaced by the next Tick.
func (s *Simulation) Grid() *grid.Grid { return s.grids.Front() }

// Field returns the occlusion field.
func (s *Simulation) Field() *jfa.Field { return s.field }

// Frame returns the automaton frame the next update will use.
func (s *Simulation) Frame() int { return s.tick * s.cfg.Substeps }


// Histogram counts the cells of each material in the current grid.
func (s *Simulation) Histogram() [material.Count]int { return s.grids.Front().Histogram() }

// Reset returns to frame zero. The noise scene is repopulated by the next
// tick; any other configured scene is rebuilt immediately.
func (s *Simulation) Reset() error {
	s.tick = 0
	s.demo = s.cfg.Demo
	s.paused = false
	s.resized = true
	s.brushRadius = s.cfg.BrushRadius
	s.brushMaterial = s.cfg.BrushMaterial
	s.last = automaton.Stats{}
	s.grids.Front().Fill(grid.Empty())
	if s.cfg.Scene == "noise" {
		return nil
	}
	return s.Load(s.cfg.Scene)
}

// Load paints a named scene into the current grid. The frame counter skips
// past frame zero so the scene is not overwritten by the initial fill.
func (s *Simulation) Load(name string) error {
	b, err := scene.Lookup(name)
	if err != nil {
		return err
	}
	b(s.grids.Front(), s.cfg.Seed)
	s.tick = max(s.tick, 1)
	s.resized = true
	return nil
}

// Paused reports whether the automaton is paused.
func (s *Simulation) Paused() bool { return s.paused }

// SetPaused pauses or resumes the automaton.
func (s *Simulation) SetPaused(p bool) { s.paused = p }

// TogglePause flips the pause state.
func (s *Simulation) TogglePause() { s.paused = !s.paused }

// Demo reports whether the automatic painter is still active.
func (s *Simulation) Demo() bool { return s.demo }


// BrushRadius returns the current brush radius.
func (s *Simulation) BrushRadius() float32 { return s.brushRadius }

// AdjustBrushRadius changes the radius by steps of automaton.RadiusStep.
func (s *Simulation) AdjustBrushRadius(steps int) {
	s.brushRadius = automaton.ClampRadius(s.brushRadius + float32(steps)*automaton.RadiusStep)
}

// BrushMaterial returns the selected brush material.
func (s *Simulation) BrushMaterial() material.Material { return s.brushMaterial }

// SelectMaterial sets the brush material, clamping ids to the defined set.
func (s *Simulation) SelectMaterial(id int) {
	id = max(0, min(material.Count-1, id))
	s.brushMaterial = material.Material(id)
}

// Resize changes the grid dimensions, keeping the overlapping region
// anchored to the bottom-left corner.
func (s *Simulation) Resize(w, h int) error {
	if cw, ch := s.grids.Size(); cw == w && ch == h {
		return nil
	}
	if err := s.grids.Resize(w, h); err != nil {
		return err
	}
	if err := s.field.Resize(w, h); err != nil {
		return err
	}
	s.cfg.Width, s.cfg.Height = w, h
	s.resized = true
	return nil
}

// ResizeToDisplay sizes the grid to cover a display of dw×dh pixels.
func (s *Simulation) ResizeToDisplay(dw, dh int) error {
	return s.Resize(GridSize(dw, s.cfg.Scale), GridSize(dh, s.cfg.Scale))
}

// GridSize returns the number of cells needed to cover n pixels at scale.
func GridSize(n, scale int) int {
	if scale <= 0 {
		scale = 1
	}
	return (n + scale - 1) / scale
}

// Tick advances the simulation. The automaton runs Substeps updates unless
// paused without an active brush; the occlusion field is regenerated
// whenever the automaton ran or the grid was resized.
func (s *Simulation) Tick(in Input) (Output, error) {
	brush := in.Brush
	if brush.Active {
		brush.Radius = s.brushRadius
		brush.Material = s.brushMaterial
		if err := brush.Validate(); err != nil {
			return Output{}, err
		}
		s.demo = false
	} else if s.demo && !s.paused {
		if b, ok := s.demoBrush(); ok {
			brush = b
		}
	}

	out := Output{}
	if !s.paused || brush.Active {
		var stats automaton.Stats
		for i := 0; i < s.cfg.Substeps; i++ {
			t := automaton.Tick{Frame: s.tick*s.cfg.Substeps + i, Time: in.Time, Brush: brush}
			st, err := s.engine.Step(s.grids.Front(), s.grids.Back(), t)
			if err != nil {
				return Output{}, err
			}
			s.grids.Swap()
			stats.Add(st)
		}
		s.tick++
		s.last = stats
		out.Stats = stats
		out.Stepped = true
	}

	if out.Stepped || s.resized {
		s.field.Generate(s.grids.Front())
		s.resized = false
		out.Lit = true
	}

	out.Grid = s.grids.Front()
	out.Field = s.field
	out.Frame = s.Frame()
	return out, nil
}

// Status summarises the interaction state for front-end status lines.
func (s *Simulation) Status() []string {
	state := "running"
	switch {
	case s.paused:
		state = "paused"
	case s.demo:
		state = "demo"
	}
	w, h := s.grids.Size()
	return []string{
		fmt.Sprintf("%dx%d frame %d %s", w, h, s.Frame(), state),
		fmt.Sprintf("brush %s r=%.1f", s.brushMaterial, s.brushRadius),
		fmt.Sprintf("react %d smoke-out %d paint %d", s.last.Reactions, s.last.Dissipated, s.last.Brushed),
	}
}
