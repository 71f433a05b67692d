package core

import "strconv"

// ParamType enumerates supported parameter value kinds.
type ParamType string

const (
	ParamTypeInt   ParamType = "int"
	ParamTypeFloat ParamType = "float"
	ParamTypeBool  ParamType = "bool"
)

// Parameter is one read-only value reported by a simulation.
type Parameter struct {
	Key   string
	Label string
	Type  ParamType
	Value string
}

// Float parses Value as a number. Booleans read as 0 or 1.
func (p Parameter) Float() (float64, bool) {
	if p.Type == ParamTypeBool {
		b, err := strconv.ParseBool(p.Value)
		if err != nil {
			return 0, false
		}
		if b {
			return 1, true
		}
		return 0, true
	}
	v, err := strconv.ParseFloat(p.Value, 64)
	return v, err == nil
}

// ParameterGroup clusters related parameters for presentation purposes.
type ParameterGroup struct {
	Name    string
	Summary string
	Params  []Parameter
}

// ParameterSnapshot captures the current set of values exposed by a sim.
type ParameterSnapshot struct {
	Groups []ParameterGroup
}

// Lookup finds a parameter by key across all groups.
func (s ParameterSnapshot) Lookup(key string) (Parameter, bool) {
	for _, g := range s.Groups {
		for _, p := range g.Params {
			if p.Key == key {
				return p, true
			}
		}
	}
	return Parameter{}, false
}

// ParameterControl describes a value the HUD may step between Min and Max.
type ParameterControl struct {
	Key   string
	Label string
	Type  ParamType
	Step  float64
	Min   float64
	Max   float64
}

// Allows reports whether v lies within the control's range.
func (c ParameterControl) Allows(v float64) bool {
	const eps = 1e-9
	return v >= c.Min-eps && v <= c.Max+eps
}

// Clamp limits v to the control's range.
func (c ParameterControl) Clamp(v float64) float64 {
	return max(c.Min, min(c.Max, v))
}

// Tunable is a simulation whose controls can be listed and set.
type Tunable interface {
	Parameters() ParameterSnapshot
	ParameterControls() []ParameterControl
	SetIntParameter(key string, value int) bool
	SetFloatParameter(key string, value float64) bool
}
