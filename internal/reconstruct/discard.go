package reconstruct

import (
	"errors"
	"iter"

	"github.com/AnyUserName/qoiscope/internal/chunk"
)

// Discard drops the first k chunks of a sequence without interpreting them.
func Discard(chunks iter.Seq[chunk.Chunk], k int) iter.Seq[chunk.Chunk] {
	return func(yield func(chunk.Chunk) bool) {
		dropped := 0
		for c := range chunks {
			if dropped < k {
				dropped++
				continue
			}
			if !yield(c) {
				return
			}
		}
	}
}

// ReconstructFrom discards the first k chunks and reconstructs the rest from
// the default state. The result is not a faithful continuation of the
// stream: the discarded chunks never reach the cache or previous pixel.
func ReconstructFrom(chunks iter.Seq[chunk.Chunk], k int) (Buffer, error) {
	buf, err := Reconstruct(Discard(chunks, k))
	var ce *ChunkError
	if errors.As(err, &ce) && k > 0 {
		ce.Ordinal += k
	}
	return buf, err
}
