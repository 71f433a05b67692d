package grid

// PingPong holds the two grid buffers the automaton alternates between. The
// front buffer is the last completed state; each tick reads it, writes the
// back buffer and then swaps the roles.
type PingPong struct {
	front *Grid
	back  *Grid
}

// NewPingPong allocates both buffers.
func NewPingPong(w, h int) (*PingPong, error) {
	front, err := New(w, h)
	if err != nil {
		return nil, err
	}
	back, err := New(w, h)
	if err != nil {
		return nil, err
	}
	return &PingPong{front: front, back: back}, nil
}

// Front returns the most recently completed grid.
func (p *PingPong) Front() *Grid { return p.front }

// Back returns the write target for the next tick.
func (p *PingPong) Back() *Grid { return p.back }

// Swap publishes the back buffer as the new front.
func (p *PingPong) Swap() { p.front, p.back = p.back, p.front }

// Size reports the buffer dimensions.
func (p *PingPong) Size() (int, int) { return p.front.W, p.front.H }

// Resize reallocates both buffers. The overlapping region of the front
// buffer is preserved; newly exposed cells start as air.
func (p *PingPong) Resize(w, h int) error {
	if w == p.front.W && h == p.front.H {
		return nil
	}
	next, err := NewPingPong(w, h)
	if err != nil {
		return err
	}
	next.front.CopyFrom(p.front)
	next.back.CopyFrom(p.front)
	*p = *next
	return nil
}
