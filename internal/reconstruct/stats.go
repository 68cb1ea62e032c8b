package reconstruct

import (
	"iter"

	"github.com/AnyUserName/qoiscope/internal/chunk"
)

// KindStats aggregates the chunks of one variant.
type KindStats struct {
	Chunks int `json:"chunks"`
	Pixels int `json:"pixels"`
}

// Stats summarises a chunk sequence without reconstructing it.
type Stats struct {
	Chunks     int                      `json:"chunks"`
	Pixels     int                      `json:"pixels"`
	LongestRun int                      `json:"longest_run"`
	ByKind     map[chunk.Kind]KindStats `json:"-"`
}

// Collect walks chunks once and counts them per variant.
func Collect(chunks iter.Seq[chunk.Chunk]) Stats {
	s := Stats{ByKind: make(map[chunk.Kind]KindStats)}
	for c := range chunks {
		n := chunk.PixelCount(c)
		k := chunk.KindOf(c)

		ks := s.ByKind[k]
		ks.Chunks++
		ks.Pixels += n
		s.ByKind[k] = ks

		s.Chunks++
		s.Pixels += n
		if r, ok := c.(chunk.Run); ok && r.Length > s.LongestRun {
			s.LongestRun = r.Length
		}
	}
	return s
}

// KindNames returns ByKind keyed by variant name, for serialisation.
func (s Stats) KindNames() map[string]KindStats {
	out := make(map[string]KindStats, len(s.ByKind))
	for k, v := range s.ByKind {
		out[k.String()] = v
	}
	return out
}
