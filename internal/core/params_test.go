package core

import "testing"

func TestParameterFloat(t *testing.T) {
	cases := []struct {
		p    Parameter
		want float64
		ok   bool
	}{
		{Parameter{Type: ParamTypeInt, Value: "12"}, 12, true},
		{Parameter{Type: ParamTypeFloat, Value: "0.25"}, 0.25, true},
		{Parameter{Type: ParamTypeBool, Value: "true"}, 1, true},
		{Parameter{Type: ParamTypeBool, Value: "false"}, 0, true},
		{Parameter{Type: ParamTypeFloat, Value: "--"}, 0, false},
		{Parameter{Type: ParamTypeBool, Value: "maybe"}, 0, false},
	}
	for _, tc := range cases {
		got, ok := tc.p.Float()
		if ok != tc.ok || got != tc.want {
			t.Fatalf("Float(%+v) = %v, %v; want %v, %v", tc.p, got, ok, tc.want, tc.ok)
		}
	}
}

func TestSnapshotLookup(t *testing.T) {
	snap := ParameterSnapshot{Groups: []ParameterGroup{
		{Name: "World", Params: []Parameter{{Key: "w", Value: "8"}}},
		{Name: "Rules", Params: []Parameter{{Key: "water_fall", Value: "0.9"}}},
	}}
	if p, ok := snap.Lookup("water_fall"); !ok || p.Value != "0.9" {
		t.Fatalf("Lookup(water_fall) = %+v, %v", p, ok)
	}
	if _, ok := snap.Lookup("lava_fall"); ok {
		t.Fatal("Lookup found a missing key")
	}
}

func TestControlBounds(t *testing.T) {
	c := ParameterControl{Min: 0, Max: 1}
	if !c.Allows(0) || !c.Allows(1) || c.Allows(1.01) || c.Allows(-0.5) {
		t.Fatal("Allows disagrees with [0, 1]")
	}
	if c.Clamp(2) != 1 || c.Clamp(-1) != 0 || c.Clamp(0.5) != 0.5 {
		t.Fatal("Clamp disagrees with [0, 1]")
	}
}

func TestSizeArea(t *testing.T) {
	if got := (Size{W: 16, H: 10}).Area(); got != 160 {
		t.Fatalf("Area() = %d, want 160", got)
	}
}
