// Package stores contains the associative-store layer that is intentionally
// private to goAccess: the get/put Backend abstraction over the host's
// key-value state, its Redis and in-memory implementations, and the RoleStore
// that maps principals to encoded role bitmaps.
//
// # What this package must NOT do
//
//   - Make authorization decisions (that is the Store's job).
//   - Export types that appear in the public goAccess API.
//   - Be imported by any package outside the goAccess module.
package stores
