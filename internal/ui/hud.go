//go:build ebiten

package ui

import (
	"image"
	"image/color"
	"math"
	"strconv"

	"sandfall/internal/core"
	"sandfall/internal/material"
	"sandfall/internal/render"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

type statusProvider interface {
	Status() []string
}

type materialProvider interface {
	BrushMaterial() material.Material
}

// HUD renders the parameter panel to the right of the simulation view.
type HUD struct {
	sim        core.Sim
	width      int
	panel      *ebiten.Image
	lastHeight int
	snapshot   core.ParameterSnapshot
	status     []string

	controls     []hudControlState
	tunable      core.Tunable
	panelOffsetX int

	palette []color.RGBA
	pixel   *ebiten.Image
}

// NewHUD constructs a HUD for the provided simulation and panel width.
func NewHUD(sim core.Sim, width int) *HUD {
	if width <= 0 {
		return nil
	}
	h := &HUD{sim: sim, width: width, palette: render.Palette()}
	h.pixel = ebiten.NewImage(1, 1)
	h.pixel.Fill(color.White)
	if t, ok := sim.(core.Tunable); ok {
		h.tunable = t
		for _, ctrl := range t.ParameterControls() {
			h.controls = append(h.controls, hudControlState{control: ctrl, value: "--"})
		}
		h.layoutControls()
	}
	return h
}

// Width returns the panel width in pixels.
func (h *HUD) Width() int {
	if h == nil {
		return 0
	}
	return h.width
}

// Update refreshes the cached snapshot and handles clicks on the panel. It
// reports whether the cursor is over the panel so the caller can suppress
// painting.
func (h *HUD) Update(panelOffsetX int) bool {
	if h == nil {
		return false
	}
	h.panelOffsetX = panelOffsetX
	if h.tunable != nil {
		h.snapshot = h.tunable.Parameters()
	}
	if provider, ok := h.sim.(statusProvider); ok {
		h.status = provider.Status()
	}
	h.refreshControlValues()
	mx, _ := ebiten.CursorPosition()
	over := mx >= panelOffsetX
	if over && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		h.handleClick()
	}
	return over
}

// Draw paints the HUD panel at offsetX.
func (h *HUD) Draw(screen *ebiten.Image, offsetX int) {
	if h == nil {
		return
	}
	height := screen.Bounds().Dy()
	if height <= 0 {
		return
	}
	if h.panel == nil || h.lastHeight != height {
		h.panel = ebiten.NewImage(h.width, height)
		h.lastHeight = height
	}
	h.panel.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 255})
	h.drawStatus()
	h.drawControls()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func (h *HUD) drawStatus() {
	face := basicfont.Face7x13
	text.Draw(h.panel, "Sandfall", face, panelPadding, panelPadding+headerBaseline, textColor)
	y := panelPadding + headerBaseline + statusSpacing
	for _, line := range h.status {
		text.Draw(h.panel, line, face, panelPadding, y, dimColor)
		y += statusSpacing
	}
	if provider, ok := h.sim.(materialProvider); ok {
		sel := provider.BrushMaterial()
		for i, c := range h.palette {
			rect := image.Rect(panelPadding+i*(swatchSize+2), y-8, panelPadding+i*(swatchSize+2)+swatchSize, y-8+swatchSize)
			if material.Material(i) == sel {
				h.fillRect(rect.Inset(-2), textColor)
			}
			h.fillRect(rect, c)
		}
	}
}

func (h *HUD) refreshControlValues() {
	for i := range h.controls {
		state := &h.controls[i]
		state.hasValue = false
		state.value = "--"
		param, ok := h.snapshot.Lookup(state.control.Key)
		if !ok {
			continue
		}
		parsed, ok := param.Float()
		if !ok {
			continue
		}
		state.number = parsed
		state.hasValue = true
		if state.control.Type == core.ParamTypeInt {
			state.value = strconv.Itoa(int(parsed))
		} else {
			state.value = formatFloat(state.control, parsed)
		}
	}
}

func (h *HUD) handleClick() {
	mx, my := ebiten.CursorPosition()
	px := mx - h.panelOffsetX
	for i := range h.controls {
		state := &h.controls[i]
		if !state.hasValue {
			continue
		}
		if pointInRect(px, my, state.minusRect) {
			h.apply(state, -1)
			return
		}
		if pointInRect(px, my, state.plusRect) {
			h.apply(state, 1)
			return
		}
	}
}

func (h *HUD) apply(state *hudControlState, direction int) {
	target, ok := h.target(state, direction)
	if !ok {
		return
	}
	switch state.control.Type {
	case core.ParamTypeInt:
		h.tunable.SetIntParameter(state.control.Key, int(math.Round(target)))
	case core.ParamTypeFloat:
		h.tunable.SetFloatParameter(state.control.Key, target)
	}
}

// target returns the value one step away, or false at a bound.
func (h *HUD) target(state *hudControlState, direction int) (float64, bool) {
	step := state.control.Step
	if step <= 0 {
		step = 0.05
	}
	if h.tunable == nil {
		return 0, false
	}
	if state.control.Type != core.ParamTypeInt && state.control.Type != core.ParamTypeFloat {
		return 0, false
	}
	target := state.number + float64(direction)*step
	if !state.control.Allows(target) {
		return 0, false
	}
	return target, true
}

func (h *HUD) drawControls() {
	face := basicfont.Face7x13
	for i := range h.controls {
		state := &h.controls[i]
		labelY := state.top + labelBaseline
		text.Draw(h.panel, state.control.Label, face, panelPadding, labelY, textColor)
		valueColor := textColor
		if !state.hasValue {
			valueColor = dimColor
		}
		bounds := text.BoundString(face, state.value)
		valueX := state.minusRect.Min.X - buttonGap - bounds.Dx()
		text.Draw(h.panel, state.value, face, valueX, labelY, valueColor)

		_, minus := h.target(state, -1)
		_, plus := h.target(state, 1)
		h.drawButton(state.minusRect, "-", state.hasValue && minus)
		h.drawButton(state.plusRect, "+", state.hasValue && plus)
	}
}

func (h *HUD) fillRect(rect image.Rectangle, c color.RGBA) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(rect.Dx()), float64(rect.Dy()))
	op.GeoM.Translate(float64(rect.Min.X), float64(rect.Min.Y))
	op.ColorScale.ScaleWithColor(c)
	h.panel.DrawImage(h.pixel, op)
}

func (h *HUD) drawButton(rect image.Rectangle, label string, enabled bool) {
	bg := color.RGBA{R: 54, G: 56, B: 64, A: 255}
	fg := color.RGBA{R: 230, G: 230, B: 240, A: 255}
	if !enabled {
		bg = color.RGBA{R: 32, G: 34, B: 40, A: 255}
		fg = color.RGBA{R: 120, G: 120, B: 130, A: 255}
	}
	h.fillRect(rect, bg)

	face := basicfont.Face7x13
	bounds := text.BoundString(face, label)
	x := rect.Min.X + (rect.Dx()-bounds.Dx())/2
	y := rect.Min.Y + (rect.Dy()-bounds.Dy())/2 + bounds.Dy()
	text.Draw(h.panel, label, face, x, y, fg)
}

func (h *HUD) layoutControls() {
	for i := range h.controls {
		top := controlsTop + i*lineHeight
		buttonY := top + (lineHeight-buttonSize)/2
		plusRect := image.Rect(h.width-panelPadding-buttonSize, buttonY, h.width-panelPadding, buttonY+buttonSize)
		minusRect := image.Rect(plusRect.Min.X-buttonGap-buttonSize, buttonY, plusRect.Min.X-buttonGap, buttonY+buttonSize)
		h.controls[i].top = top
		h.controls[i].minusRect = minusRect
		h.controls[i].plusRect = plusRect
	}
}

func formatFloat(ctrl core.ParameterControl, value float64) string {
	precision := 1
	switch {
	case ctrl.Step < 0.01:
		precision = 3
	case ctrl.Step < 0.1:
		precision = 2
	}
	return strconv.FormatFloat(value, 'f', precision, 64)
}

func pointInRect(x, y int, rect image.Rectangle) bool {
	return image.Pt(x, y).In(rect)
}

type hudControlState struct {
	control  core.ParameterControl
	value    string
	number   float64
	hasValue bool

	top       int
	minusRect image.Rectangle
	plusRect  image.Rectangle
}

var (
	textColor = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	dimColor  = color.RGBA{R: 160, G: 160, B: 170, A: 255}
)

const (
	panelPadding   = 12
	lineHeight     = 30
	buttonSize     = 22
	buttonGap      = 6
	headerBaseline = 14
	labelBaseline  = 20
	statusSpacing  = 16
	swatchSize     = 18
	controlsTop    = panelPadding + headerBaseline + 5*statusSpacing + 8
)
