// Package bitmap provides the fixed-capacity bit vector used by goAccess to
// encode a principal's role membership, plus the codec used by the store
// layer to persist it.
//
// # Capacities
//
// Supported capacities: 32, 64, 128, and 256 bits (byte-backed, so capacity
// is always 8N with N at most 32 bytes). The capacity is selected at store
// construction time and is immutable thereafter. Every bit index passed to
// [Map.Set], [Map.Clear], or [Map.Has] must be in [0, capacity); violating
// that is a caller contract bug and panics rather than returning an error.
//
// # Architecture boundaries
//
// This package is a pure in-memory data structure with no I/O. It provides
// the codec (Encode/Decode) used by the internal role store.
//
// # What this package must NOT do
//
//   - Access Redis, databases, or the network.
//   - Import goAccess or any of its sub-packages.
//   - Resize a Map after construction.
package bitmap
