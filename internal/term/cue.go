package term

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate  = beep.SampleRate(44100)
	cueLength   = 60 * time.Millisecond
	cueInterval = 120 * time.Millisecond
)

// Cue plays a short hiss-like tone when lava meets water. Calls are rate
// limited so a large reaction front does not flood the speaker.
type Cue struct {
	mu       sync.Mutex
	enabled  bool
	lastPlay time.Time
}

// NewCue initializes the speaker. A Cue that failed to open the audio
// device is returned disabled together with the error.
func NewCue() (*Cue, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return &Cue{}, err
	}
	return &Cue{enabled: true}, nil
}

// Play sounds the cue for n reactions in the last tick.
func (c *Cue) Play(n int) {
	if c == nil || n <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.enabled || time.Since(c.lastPlay) < cueInterval {
		return
	}
	c.lastPlay = time.Now()
	tone, err := generators.SineTone(sampleRate, cuePitch(n))
	if err != nil {
		return
	}
	quiet := &effects.Volume{Streamer: tone, Base: 2, Volume: -3}
	speaker.Play(beep.Take(sampleRate.N(cueLength), quiet))
}

// Close releases the audio device.
func (c *Cue) Close() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.enabled {
		speaker.Close()
		c.enabled = false
	}
}

// cuePitch rises by an octave for every tenfold increase in reactions and
// stays below the Nyquist limit.
func cuePitch(n int) float64 {
	f := 330 * math.Pow(2, math.Log10(float64(max(n, 1))))
	return math.Min(f, float64(sampleRate)/4)
}
