package material

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	cases := []struct {
		in   string
		want Material
	}{
		{"air", Air},
		{"Smoke", Smoke},
		{" water ", Water},
		{"3", Lava},
		{"sand", Sand},
		{"5", Glitter},
		{"stone", Stone},
		{"7", Wall},
	}
	for _, tc := range cases {
		got, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("Parse(%q) returned error %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("Parse(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseRejectsUnknown(t *testing.T) {
	for _, in := range []string{"8", "-1", "mud", ""} {
		if _, err := Parse(in); !errors.Is(err, ErrUnknown) {
			t.Fatalf("Parse(%q) error = %v, want ErrUnknown", in, err)
		}
	}
}

func TestRankOrder(t *testing.T) {
	all := All()
	if len(all) != Count {
		t.Fatalf("All() returned %d materials, want %d", len(all), Count)
	}
	for i := 1; i < len(all); i++ {
		if all[i] <= all[i-1] {
			t.Fatalf("materials not in rank order at %d", i)
		}
	}
	if Material(8).Valid() {
		t.Fatal("id 8 must be invalid")
	}
	if Material(8).String() != "material(8)" {
		t.Fatalf("unexpected name for invalid id: %s", Material(8))
	}
}

func TestTransmissive(t *testing.T) {
	want := map[Material]bool{
		Air: true, Smoke: true, Water: true, Lava: true,
		Sand: false, Glitter: true, Stone: false, Wall: false,
	}
	for m, ok := range want {
		if m.Transmissive() != ok {
			t.Fatalf("%v.Transmissive() = %v, want %v", m, m.Transmissive(), ok)
		}
	}
}
