package reconstruct

import (
	"errors"
	"fmt"

	"github.com/AnyUserName/qoiscope/internal/chunk"
)

// CacheSize is the number of slots in the color cache.
const CacheSize = 64

// ErrIndexOutOfRange is returned when a cache slot outside 0..63 is referenced.
var ErrIndexOutOfRange = errors.New("cache index out of range")

// Hash maps a color to its cache slot.
func Hash(p chunk.Pixel) uint8 {
	return uint8((uint(p.R)*3 + uint(p.G)*5 + uint(p.B)*7 + uint(p.A)*11) % CacheSize)
}

// Cache is the direct-mapped table of recently seen colors. Colliding colors
// evict each other. The zero value has every slot set to (0,0,0,0).
type Cache [CacheSize]chunk.Pixel

// Lookup returns the color in slot idx.
func (c *Cache) Lookup(idx int) (chunk.Pixel, error) {
	if idx < 0 || idx >= CacheSize {
		return chunk.Pixel{}, fmt.Errorf("%w: %d", ErrIndexOutOfRange, idx)
	}
	return c[idx], nil
}

// Store writes p into the slot its hash selects.
func (c *Cache) Store(p chunk.Pixel) {
	c[Hash(p)] = p
}
