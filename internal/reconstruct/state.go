package reconstruct

import "github.com/AnyUserName/qoiscope/internal/chunk"

// State is the per-pass decoder state: the previously emitted pixel and the
// color cache. A State belongs to exactly one pass.
type State struct {
	prev  chunk.Pixel
	cache Cache
}

// NewState returns the state every pass starts from: previous pixel
// (0,0,0,255) and an empty cache.
func NewState() State {
	return State{prev: chunk.Pixel{A: 255}}
}

// emit records p as the previous pixel, stores it in the cache and appends
// its channels to out.
func (s *State) emit(p chunk.Pixel, out []byte) []byte {
	s.cache.Store(p)
	s.prev = p
	return append(out, p.R, p.G, p.B, p.A)
}
