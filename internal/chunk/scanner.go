package chunk

import "iter"

// QOI op tags.
const (
	tagRGB  byte = 0b11111110
	tagRGBA byte = 0b11111111

	opIndex byte = 0b00
	opDiff  byte = 0b01
	opLuma  byte = 0b10
	opRun   byte = 0b11

	payloadMask byte = 0b00111111
)

// Decode parses the chunk at the start of data and returns it together with
// the number of bytes it occupies. ok is false when data is empty or the
// chunk's payload is truncated.
func Decode(data []byte) (c Chunk, n int, ok bool) {
	if len(data) == 0 {
		return nil, 0, false
	}
	tag := data[0]
	switch {
	case tag == tagRGBA:
		if len(data) < 5 {
			return nil, 0, false
		}
		return Literal{R: data[1], G: data[2], B: data[3], A: data[4]}, 5, true

	case tag == tagRGB:
		if len(data) < 4 {
			return nil, 0, false
		}
		return LiteralRGB{R: data[1], G: data[2], B: data[3]}, 4, true

	case tag>>6 == opIndex:
		return IndexRef{Index: int(tag & payloadMask)}, 1, true

	case tag>>6 == opDiff:
		return SmallDiff{
			DR: int8((tag>>4)&0b11) - 2,
			DG: int8((tag>>2)&0b11) - 2,
			DB: int8(tag&0b11) - 2,
		}, 1, true

	case tag>>6 == opLuma:
		if len(data) < 2 {
			return nil, 0, false
		}
		rb := data[1]
		return LumaDiff{
			DRMinusDG: int8(rb>>4) - 8,
			DG:        int8(tag&payloadMask) - 32,
			DBMinusDG: int8(rb&0x0f) - 8,
		}, 2, true
	}

	// opRun; 0xFE and 0xFF were taken above.
	return Run{Length: int(tag&payloadMask) + 1}, 1, true
}

// Scan returns a lazy sequence of the chunks in data. Each range over the
// sequence decodes again from the first byte. A truncated trailing chunk
// ends the sequence.
func Scan(data []byte) iter.Seq[Chunk] {
	return func(yield func(Chunk) bool) {
		for _, c := range ScanWithOffsets(data) {
			if !yield(c) {
				return
			}
		}
	}
}

// ScanWithOffsets is like Scan but also yields the byte offset of each chunk.
func ScanWithOffsets(data []byte) iter.Seq2[int, Chunk] {
	return func(yield func(int, Chunk) bool) {
		off := 0
		for off < len(data) {
			c, n, ok := Decode(data[off:])
			if !ok {
				return
			}
			if !yield(off, c) {
				return
			}
			off += n
		}
	}
}

// Slice returns a sequence over an in-memory list of chunks.
func Slice(chunks []Chunk) iter.Seq[Chunk] {
	return func(yield func(Chunk) bool) {
		for _, c := range chunks {
			if !yield(c) {
				return
			}
		}
	}
}
