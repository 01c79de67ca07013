package bitmap

import (
	"errors"
	"fmt"
)

// MaxCapacity is the hard ceiling on bitmap capacity: 32 bytes of backing
// storage, 256 bits. Requesting more is a deployment configuration error.
const MaxCapacity = 256

// ErrInvalidCapacity is returned by [New] when the requested capacity is not
// one of the supported widths.
var ErrInvalidCapacity = errors.New("bitmap: invalid capacity")

// Map is a fixed-capacity bit vector. Bit b set means the role with id b is
// held. The zero bits of a fresh Map make "absent principal" and "principal
// with no roles" observationally identical at the store layer.
//
// A Map is not safe for concurrent mutation; the store layer clones on read
// and reinserts after mutation, so no Map is ever shared across operations.
type Map struct {
	bits []byte
}

// New creates a zeroed Map with the given capacity in bits. Capacity must be
// 32, 64, 128, or 256.
func New(capacity int) (*Map, error) {
	switch capacity {
	case 32, 64, 128, 256:
		return &Map{bits: make([]byte, capacity/8)}, nil
	default:
		return nil, fmt.Errorf("%w: %d (want 32, 64, 128, or 256)", ErrInvalidCapacity, capacity)
	}
}

// Capacity returns the number of addressable bits.
func (m *Map) Capacity() int {
	return len(m.bits) * 8
}

// Set changes bit to 1 and returns the receiver for chaining.
// Panics if bit is outside [0, capacity).
func (m *Map) Set(bit int) *Map {
	m.check(bit)
	m.bits[bit/8] |= 1 << (bit % 8)
	return m
}

// Clear changes bit to 0 and returns the receiver for chaining. Clearing an
// already-clear bit is a no-op. Panics if bit is outside [0, capacity).
func (m *Map) Clear(bit int) *Map {
	m.check(bit)
	m.bits[bit/8] &^= 1 << (bit % 8)
	return m
}

// Has reports whether bit is 1. Panics if bit is outside [0, capacity).
func (m *Map) Has(bit int) bool {
	m.check(bit)
	return m.bits[bit/8]&(1<<(bit%8)) != 0
}

// Ones returns every set bit index in ascending order. Empty slice for an
// all-zero map.
func (m *Map) Ones() []int {
	ones := make([]int, 0)
	for i, b := range m.bits {
		if b == 0 {
			continue
		}
		for off := 0; off < 8; off++ {
			if b&(1<<off) != 0 {
				ones = append(ones, i*8+off)
			}
		}
	}
	return ones
}

// Clone returns an independent copy of the map.
func (m *Map) Clone() *Map {
	bits := make([]byte, len(m.bits))
	copy(bits, m.bits)
	return &Map{bits: bits}
}

// IsZero reports whether no bit is set.
func (m *Map) IsZero() bool {
	for _, b := range m.bits {
		if b != 0 {
			return false
		}
	}
	return true
}

func (m *Map) check(bit int) {
	if bit < 0 || bit >= m.Capacity() {
		panic(fmt.Sprintf("bitmap: bit %d out of range [0, %d)", bit, m.Capacity()))
	}
}
