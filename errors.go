package goAccess

import "errors"

var (
	// ErrCallerIsNotAdmin is returned by grant/revoke operations when the
	// caller holds neither the admin bit for the target role nor the
	// default admin bit. The sole recoverable authorization error.
	ErrCallerIsNotAdmin = errors.New("caller is not admin")
	// ErrPrincipalEmpty is returned when a caller or target principal is the
	// empty string.
	ErrPrincipalEmpty = errors.New("principal is empty")
	// ErrStoreUnavailable is returned when the backing key-value store
	// cannot be reached. The in-memory backend never returns it.
	ErrStoreUnavailable = errors.New("role store unavailable")
	// ErrStoreNotReady is returned when a Store method is called on a nil or
	// unbuilt store.
	ErrStoreNotReady = errors.New("store not initialized")
)
