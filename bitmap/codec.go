package bitmap

import "errors"

// ErrInvalidSize is returned by [Decode] when the payload length does not
// match a supported capacity.
var ErrInvalidSize = errors.New("bitmap: invalid encoded size")

// Encode serializes the map to its wire form: the raw backing bytes,
// least-significant bit of byte 0 is bit 0. The encoded length identifies
// the capacity (4, 8, 16, or 32 bytes).
func Encode(m *Map) []byte {
	out := make([]byte, len(m.bits))
	copy(out, m.bits)
	return out
}

// Decode reconstructs a map from its wire form. The payload length selects
// the capacity; any other length is rejected.
func Decode(data []byte) (*Map, error) {
	switch len(data) {
	case 4, 8, 16, 32:
		bits := make([]byte, len(data))
		copy(bits, data)
		return &Map{bits: bits}, nil
	default:
		return nil, ErrInvalidSize
	}
}
