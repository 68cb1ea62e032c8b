package reconstruct

import (
	"fmt"
	"iter"

	"github.com/AnyUserName/qoiscope/internal/chunk"
)

// Buffer holds reconstructed pixels as interleaved RGBA bytes in decode order.
type Buffer struct {
	Pix []byte
}

// Pixels returns the number of pixels in the buffer.
func (b Buffer) Pixels() int {
	return len(b.Pix) / 4
}

// ChunkError reports the chunk a pass failed on.
type ChunkError struct {
	Ordinal int // zero-based position in the stream, discarded chunks included
	Chunk   chunk.Chunk
	Err     error
}

func (e *ChunkError) Error() string {
	return fmt.Sprintf("chunk %d (%s): %v", e.Ordinal, chunk.KindOf(e.Chunk), e.Err)
}

func (e *ChunkError) Unwrap() error { return e.Err }

// addWrapped adds a signed delta to an unsigned channel with 8-bit
// two's-complement wraparound.
func addWrapped(v uint8, d int8) uint8 {
	return uint8(int8(v) + d)
}

// Apply appends the pixels produced by c to out and advances the state.
func (s *State) Apply(c chunk.Chunk, out []byte) ([]byte, error) {
	switch c := c.(type) {
	case chunk.Literal:
		return s.emit(chunk.Pixel{R: c.R, G: c.G, B: c.B, A: c.A}, out), nil

	case chunk.LiteralRGB:
		return s.emit(chunk.Pixel{R: c.R, G: c.G, B: c.B, A: s.prev.A}, out), nil

	case chunk.Run:
		p := s.prev
		for i := 0; i < c.Length; i++ {
			out = append(out, p.R, p.G, p.B, p.A)
		}
		return out, nil

	case chunk.SmallDiff:
		return s.emit(s.offset(c.DR, c.DG, c.DB), out), nil

	case chunk.LumaDiff:
		dr := c.DRMinusDG + c.DG
		db := c.DBMinusDG + c.DG
		return s.emit(s.offset(dr, c.DG, db), out), nil

	case chunk.IndexRef:
		p, err := s.cache.Lookup(c.Index)
		if err != nil {
			return out, err
		}
		// Re-storing is a no-op while every slot holds a color hashing to it.
		return s.emit(p, out), nil
	}
	return out, fmt.Errorf("unsupported chunk %T", c)
}

func (s *State) offset(dr, dg, db int8) chunk.Pixel {
	return chunk.Pixel{
		R: addWrapped(s.prev.R, dr),
		G: addWrapped(s.prev.G, dg),
		B: addWrapped(s.prev.B, db),
		A: s.prev.A,
	}
}

// Reconstruct runs one pass over chunks from the default state until the
// sequence is exhausted.
func Reconstruct(chunks iter.Seq[chunk.Chunk]) (Buffer, error) {
	st := NewState()
	var out []byte
	ordinal := 0
	for c := range chunks {
		var err error
		out, err = st.Apply(c, out)
		if err != nil {
			return Buffer{}, &ChunkError{Ordinal: ordinal, Chunk: c, Err: err}
		}
		ordinal++
	}
	return Buffer{Pix: out}, nil
}
