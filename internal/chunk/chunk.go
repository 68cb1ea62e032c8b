package chunk

// Pixel is one RGBA color with 8-bit channels.
type Pixel struct {
	R uint8
	G uint8
	B uint8
	A uint8
}

// Chunk is one decoded unit of a QOI stream. The set of implementations is
// closed: Literal, LiteralRGB, Run, SmallDiff, LumaDiff and IndexRef.
type Chunk interface {
	isChunk()
}

// Literal sets the next pixel to an exact RGBA value.
type Literal struct {
	R, G, B, A uint8
}

// LiteralRGB sets the next pixel's color channels; alpha is carried over.
type LiteralRGB struct {
	R, G, B uint8
}

// Run repeats the previous pixel Length times.
type Run struct {
	Length int
}

// SmallDiff offsets each color channel of the previous pixel by -2..1.
type SmallDiff struct {
	DR, DG, DB int8
}

// LumaDiff offsets green by DG (-32..31) and red/blue by DG plus a
// -8..7 correction.
type LumaDiff struct {
	DRMinusDG int8
	DG        int8
	DBMinusDG int8
}

// IndexRef re-emits the color cache slot Index.
type IndexRef struct {
	Index int
}

func (Literal) isChunk()    {}
func (LiteralRGB) isChunk() {}
func (Run) isChunk()        {}
func (SmallDiff) isChunk()  {}
func (LumaDiff) isChunk()   {}
func (IndexRef) isChunk()   {}

// Kind identifies a chunk variant.
type Kind int

const (
	KindUnknown Kind = iota
	KindLiteral
	KindLiteralRGB
	KindRun
	KindSmallDiff
	KindLumaDiff
	KindIndexRef
)

// Kinds lists every known variant in display order.
var Kinds = []Kind{KindLiteral, KindLiteralRGB, KindRun, KindSmallDiff, KindLumaDiff, KindIndexRef}

func (k Kind) String() string {
	switch k {
	case KindLiteral:
		return "rgba"
	case KindLiteralRGB:
		return "rgb"
	case KindRun:
		return "run"
	case KindSmallDiff:
		return "diff"
	case KindLumaDiff:
		return "luma"
	case KindIndexRef:
		return "index"
	}
	return "unknown"
}

// KindOf reports the variant of c.
func KindOf(c Chunk) Kind {
	switch c.(type) {
	case Literal:
		return KindLiteral
	case LiteralRGB:
		return KindLiteralRGB
	case Run:
		return KindRun
	case SmallDiff:
		return KindSmallDiff
	case LumaDiff:
		return KindLumaDiff
	case IndexRef:
		return KindIndexRef
	}
	return KindUnknown
}

// PixelCount returns how many pixels c produces. Runs with a non-positive
// length produce none.
func PixelCount(c Chunk) int {
	if r, ok := c.(Run); ok {
		if r.Length < 0 {
			return 0
		}
		return r.Length
	}
	if KindOf(c) == KindUnknown {
		return 0
	}
	return 1
}
