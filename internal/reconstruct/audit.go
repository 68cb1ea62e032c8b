package reconstruct

import (
	"iter"

	"github.com/AnyUserName/qoiscope/internal/chunk"
)

// Anomaly is an index reference to a slot whose color does not hash to it.
// Within one pass this only happens for slots nothing has been stored in yet.
type Anomaly struct {
	Ordinal int         `json:"ordinal"` // position among the audited chunks
	Pixel   int         `json:"pixel"`   // index of the pixel the reference produced
	Index   int         `json:"index"`
	Color   chunk.Pixel `json:"color"`
	Hash    uint8       `json:"hash"`
}

// Report is the outcome of an audit pass.
type Report struct {
	Chunks    int       `json:"chunks"`
	Pixels    int       `json:"pixels"`
	IndexRefs int       `json:"index_refs"`
	Anomalies []Anomaly `json:"anomalies"`
}

// Audit reconstructs chunks and records every index reference that reads a
// slot out of step with its hash.
func Audit(chunks iter.Seq[chunk.Chunk]) (Report, error) {
	var r Report
	st := NewState()
	var out []byte
	for c := range chunks {
		if ref, ok := c.(chunk.IndexRef); ok {
			r.IndexRefs++
			p, err := st.cache.Lookup(ref.Index)
			if err != nil {
				return r, &ChunkError{Ordinal: r.Chunks, Chunk: c, Err: err}
			}
			if h := Hash(p); int(h) != ref.Index {
				r.Anomalies = append(r.Anomalies, Anomaly{
					Ordinal: r.Chunks,
					Pixel:   len(out) / 4,
					Index:   ref.Index,
					Color:   p,
					Hash:    h,
				})
			}
		}
		var err error
		out, err = st.Apply(c, out)
		if err != nil {
			return r, &ChunkError{Ordinal: r.Chunks, Chunk: c, Err: err}
		}
		r.Chunks++
	}
	r.Pixels = len(out) / 4
	return r, nil
}
