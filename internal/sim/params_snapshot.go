package sim

import (
	"strconv"

	"sandfall/internal/automaton"
	"sandfall/internal/core"
	"sandfall/internal/material"
)

func (s *Simulation) Parameters() core.ParameterSnapshot {
	w, h := s.grids.Size()
	rules := []core.Parameter{}
	for _, p := range s.cfg.probabilities() {
		rules = append(rules, floatParam(p.key, p.label, float64(p.value)))
	}
	groups := []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				intParam("w", "Width", w),
				intParam("h", "Height", h),
				intParam("scale", "Scale", s.cfg.Scale),
				int64Param("seed", "Seed", s.cfg.Seed),
				intParam("frame", "Frame", s.Frame()),
			},
		},
		{
			Name: "Brush",
			Params: []core.Parameter{
				floatParam("brush_radius", "Brush radius", float64(s.brushRadius)),
				intParam("brush_material", "Brush material", int(s.brushMaterial)),
			},
			Summary: s.brushMaterial.String(),
		},
		{
			Name: "Pipeline",
			Params: []core.Parameter{
				intParam("substeps", "Substeps", s.cfg.Substeps),
				intParam("jfa_passes", "JFA passes", s.cfg.JFAPasses),
				intParam("workers", "Workers", s.cfg.Workers),
				boolParam("demo", "Demo", s.demo),
				boolParam("paused", "Paused", s.paused),
			},
		},
		{
			Name:   "Rules",
			Params: rules,
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

// ParameterControls lists the values the HUD may adjust.
func (s *Simulation) ParameterControls() []core.ParameterControl {
	controls := []core.ParameterControl{
		{Key: "brush_material", Label: "Material", Type: core.ParamTypeInt, Step: 1, Min: 0, Max: float64(material.Count - 1)},
		{Key: "brush_radius", Label: "Brush radius", Type: core.ParamTypeFloat, Step: float64(automaton.RadiusStep), Min: float64(automaton.MinRadius), Max: float64(automaton.MaxRadius)},
		{Key: "substeps", Label: "Substeps", Type: core.ParamTypeInt, Step: 1, Min: 1, Max: MaxSubsteps},
	}
	for _, p := range s.cfg.probabilities() {
		step := 0.05
		if p.key == "smoke_dissipate" {
			step = 0.001
		}
		controls = append(controls, core.ParameterControl{
			Key: p.key, Label: p.label, Type: core.ParamTypeFloat,
			Step: step, Min: 0, Max: 1,
		})
	}
	return controls
}

// SetIntParameter updates an integer control, clamping to its range.
func (s *Simulation) SetIntParameter(key string, value int) bool {
	switch key {
	case "brush_material":
		s.SelectMaterial(value)
	case "substeps":
		s.cfg.Substeps = max(1, min(MaxSubsteps, value))
	default:
		return false
	}
	return true
}

// SetFloatParameter updates a float control, clamping to its range.
func (s *Simulation) SetFloatParameter(key string, value float64) bool {
	if key == "brush_radius" {
		s.brushRadius = automaton.ClampRadius(float32(value))
		return true
	}
	for _, p := range s.cfg.probabilities() {
		if p.key != key {
			continue
		}
		*p.ptr = float32(max(0, min(1, value)))
		s.engine.Params = s.cfg.Params
		return true
	}
	return false
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func int64Param(key, label string, value int64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.FormatInt(value, 10),
	}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeFloat,
		Value: strconv.FormatFloat(value, 'f', -1, 32),
	}
}

func boolParam(key, label string, value bool) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeBool,
		Value: strconv.FormatBool(value),
	}
}
