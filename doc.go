// Package goAccess provides a compact role-based access-control store:
// each principal holds a bounded set of role bits, and mutation of those
// bits is gated behind an admin check on the same store.
//
// Roles are bit positions in a fixed-capacity bitmap (32, 64, 128, or 256
// bits per deployment). Role 0 is reserved as the default admin role: a
// principal holding admin-bit 0 may grant or revoke any role, while a
// principal holding admin-bit r may administer role r only. The store is
// created through [Builder.Build] with a bootstrap admin principal that
// receives admin-bit 0; without it the store would be unadministerable.
//
// # Architecture boundaries
//
// goAccess is the public surface. It exposes [Store], [Builder], [Config],
// and value types (AuditEvent, MetricsSnapshot). The associative-store
// layer — the Redis and in-memory backends and the bitmap persistence —
// lives under internal/ and is never exported. The bitmap/ sub-package is
// the pure data structure; middleware/ adapts Store checks to HTTP.
//
// # What this package must NOT do
//
//   - Authenticate callers. The host passes in an already-authenticated
//     caller identity; goAccess only answers "may this principal do this".
//   - Expose Redis clients or encoding details in its public API.
//   - Verify signatures or issue tokens of any kind.
//
// # Concurrency contract
//
// Store methods are safe to call from multiple goroutines after Build, but
// grant/revoke is a read-modify-write over the backend: the surrounding
// execution environment is expected to serialize mutations for a given
// principal, as in a transactional state machine. Within one serialized
// call sequence, a grant followed by a role check observes the grant.
package goAccess
