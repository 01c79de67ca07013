// Package middleware exposes HTTP middleware adapters that gate request
// handling on role membership held in a goAccess.Store.
//
// # Guards
//
//   - [RequireRole] — rejects requests whose principal does not hold a role.
//   - [RequireAdmin] — rejects requests whose principal may not administer a role.
//
// Each guard resolves the calling principal through a host-supplied
// [PrincipalFunc], asks the store, and injects the principal into the request
// context on success.
//
// # Architecture boundaries
//
// This package translates HTTP semantics into Store calls. It does NOT
// authenticate — deciding who the principal is belongs to the host (session
// cookie, mTLS, reverse-proxy header), expressed as a PrincipalFunc.
//
// # What this package must NOT do
//
//   - Establish identity (delegates to the host's PrincipalFunc).
//   - Access Redis (Store handles I/O).
//   - Make authorization decisions beyond pass/reject from the Store.
package middleware
