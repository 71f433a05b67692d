// Package term is a terminal front-end. Each character cell shows two grid
// rows with an upper half block: the foreground is the upper row, the
// background the lower one.
package term

import (
	"errors"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"sandfall/internal/automaton"
	"sandfall/internal/core"
	"sandfall/internal/render"
	"sandfall/internal/sim"
)

// statusRows is the number of terminal rows reserved below the grid.
const statusRows = 1

// ErrTooSmall is returned when the screen has no room for the grid.
var ErrTooSmall = errors.New("terminal too small")

// Terminal drives a simulation from a tcell screen.
type Terminal struct {
	screen tcell.Screen
	sim    *sim.Simulation
	step   *core.FixedStep
	cue    *Cue
	start  time.Time

	buf      []byte
	showHeat bool

	prev    automaton.Vec2
	drawing bool
	pending bool
	stroke  automaton.Brush
	quit    bool
}

// New wraps an initialized screen. cue may be nil.
func New(screen tcell.Screen, s *sim.Simulation, tps int, cue *Cue) *Terminal {
	screen.EnableMouse()
	screen.HideCursor()
	return &Terminal{
		screen: screen,
		sim:    s,
		step:   core.NewFixedStep(tps),
		cue:    cue,
		start:  time.Now(),
	}
}

// Resize fits the grid to the screen.
func (t *Terminal) Resize() error {
	cols, rows := t.screen.Size()
	w, h := cols, (rows-statusRows)*2
	if w <= 0 || h <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrTooSmall, cols, rows)
	}
	return t.sim.Resize(w, h)
}

// Run processes events and ticks until the user quits.
func (t *Terminal) Run() error {
	if err := t.Resize(); err != nil {
		return err
	}
	events := make(chan tcell.Event, 64)
	done := make(chan struct{})
	defer close(done)
	go pump(t.screen, events, done)

	ticker := time.NewTicker(8 * time.Millisecond)
	defer ticker.Stop()
	for !t.quit {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if err := t.HandleEvent(ev); err != nil {
				return err
			}
		case <-ticker.C:
			if !t.step.ShouldStep() {
				continue
			}
			if err := t.Tick(); err != nil {
				return err
			}
			t.Draw()
		}
	}
	return nil
}

// pump forwards screen events until the screen is finalized or done closes.
func pump(screen tcell.Screen, events chan<- tcell.Event, done <-chan struct{}) {
	defer close(events)
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

// HandleEvent applies one input event.
func (t *Terminal) HandleEvent(ev tcell.Event) error {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		t.screen.Sync()
		// Keep the previous grid until the window grows again.
		if err := t.Resize(); err != nil && !errors.Is(err, ErrTooSmall) {
			return err
		}
	case *tcell.EventKey:
		return t.handleKey(ev)
	case *tcell.EventMouse:
		t.handleMouse(ev)
	}
	return nil
}

func (t *Terminal) handleKey(ev *tcell.EventKey) error {
	switch ev.Key() {
	case tcell.KeyCtrlC:
		t.quit = true
		return nil
	case tcell.KeyEscape:
		t.sim.TogglePause()
		return nil
	case tcell.KeyRune:
	default:
		return nil
	}
	switch r := ev.Rune(); {
	case r >= '0' && r <= '7':
		t.sim.SelectMaterial(int(r - '0'))
	case r == '+' || r == '=':
		t.sim.AdjustBrushRadius(1)
	case r == '-' || r == '_':
		t.sim.AdjustBrushRadius(-1)
	case r == ' ':
		t.sim.TogglePause()
	case r == 'r':
		return t.sim.Reset()
	case r == 'h':
		t.showHeat = !t.showHeat
	case r == 'q':
		t.quit = true
	}
	return nil
}

func (t *Terminal) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	p := automaton.Vec2{X: float32(x) + 0.5, Y: float32(2*y) + 1}
	if ev.Buttons()&tcell.Button1 == 0 {
		t.drawing = false
		return
	}
	if !t.drawing {
		t.prev = p
		t.drawing = true
	}
	t.stroke = automaton.Brush{From: t.prev, To: p, Active: true}
	t.prev = p
	t.pending = true
}

// Tick advances the simulation with the pending stroke.
func (t *Terminal) Tick() error {
	var brush automaton.Brush
	if t.drawing || t.pending {
		brush = t.stroke
		t.stroke.From = t.stroke.To
	}
	t.pending = false
	out, err := t.sim.Tick(sim.Input{Brush: brush, Time: float32(time.Since(t.start).Seconds())})
	if err != nil {
		return err
	}
	t.cue.Play(out.Stats.Reactions)
	return nil
}

// Draw paints the grid and status line.
func (t *Terminal) Draw() {
	g := t.sim.Grid()
	if n := 4 * t.sim.Size().Area(); len(t.buf) != n {
		t.buf = make([]byte, n)
	}
	if t.showHeat {
		render.Heat(t.buf, t.sim.Field(), 0)
	} else {
		render.Composite(t.buf, g, t.sim.Field(), 0)
	}
	for row := 0; row*2 < g.H; row++ {
		for x := 0; x < g.W; x++ {
			top := t.rgb(x, row*2, g.W)
			bottom := top
			if row*2+1 < g.H {
				bottom = t.rgb(x, row*2+1, g.W)
			}
			st := tcell.StyleDefault.Foreground(top).Background(bottom)
			t.screen.SetContent(x, row, '▀', nil, st)
		}
	}

	cols, rows := t.screen.Size()
	status := t.sim.Status()
	line := fmt.Sprintf("%s | %s | %s | [0-7] material [+/-] radius [space] pause [h] heat [q] quit", status[0], status[1], status[2])
	st := tcell.StyleDefault.Foreground(tcell.ColorSilver).Background(tcell.ColorBlack)
	for x := 0; x < cols; x++ {
		r := ' '
		if x < len(line) {
			r = rune(line[x])
		}
		t.screen.SetContent(x, rows-1, r, nil, st)
	}
	t.screen.Show()
}

func (t *Terminal) rgb(x, y, w int) tcell.Color {
	i := (y*w + x) * 4
	return tcell.NewRGBColor(int32(t.buf[i]), int32(t.buf[i+1]), int32(t.buf[i+2]))
}
