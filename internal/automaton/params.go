package automaton

// Params holds the probabilities that gate each rule of the update sequence.
// Every value is compared against one component of the block's random draw.
type Params struct {
	SmokeRise      float32
	SmokeDissipate float32

	GranularFall float32
	// GranularSpread shuffles grains sideways across the upper row when the
	// lower row is open. Zero disables it; 0.4 gives a looser pile.
	GranularSpread float32

	WaterFall     float32
	WaterDiagonal float32
	WaterLateral  float32

	LavaFall     float32
	LavaDiagonal float32
	LavaLateral  float32
}

// DefaultParams returns the standard rule probabilities.
func DefaultParams() Params {
	return Params{
		SmokeRise:      0.25,
		SmokeDissipate: 0.003,
		GranularFall:   0.9,
		GranularSpread: 0,
		WaterFall:      0.95,
		WaterDiagonal:  0.3,
		WaterLateral:   0.8,
		LavaFall:       0.8,
		LavaDiagonal:   0.2,
		LavaLateral:    0.6,
	}
}
