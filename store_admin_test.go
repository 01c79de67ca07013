package goAccess

import (
	"context"
	"testing"
)

func TestGrantAdminRequiresDefaultAdmin(t *testing.T) {
	store := newTestStore(t, 32)
	ctx := context.Background()

	mustGrantAdmin(t, store, "admin", "moderator", 4)

	// A role-specific admin cannot mint further admins, even for its own
	// role.
	if err := store.GrantAdmin(ctx, "moderator", "carol", 4); err != ErrCallerIsNotAdmin {
		t.Fatalf("GrantAdmin by role admin: err = %v, want ErrCallerIsNotAdmin", err)
	}
	if err := store.RevokeAdmin(ctx, "moderator", "moderator", 4); err != ErrCallerIsNotAdmin {
		t.Fatalf("RevokeAdmin by role admin: err = %v, want ErrCallerIsNotAdmin", err)
	}

	adminRoles, err := store.AdminRolesOf(ctx, "carol")
	if err != nil {
		t.Fatalf("AdminRolesOf failed: %v", err)
	}
	if len(adminRoles) != 0 {
		t.Fatalf("denied GrantAdmin changed state: AdminRolesOf(carol) = %v", adminRoles)
	}
}

func TestRevokeAdminRemovesAuthority(t *testing.T) {
	store := newTestStore(t, 32)
	ctx := context.Background()

	mustGrantAdmin(t, store, "admin", "moderator", 4)
	mustGrant(t, store, "moderator", "bob", 4)

	if err := store.RevokeAdmin(ctx, "admin", "moderator", 4); err != nil {
		t.Fatalf("RevokeAdmin failed: %v", err)
	}

	if err := store.Grant(ctx, "moderator", "carol", 4); err != ErrCallerIsNotAdmin {
		t.Fatalf("grant after admin revocation: err = %v, want ErrCallerIsNotAdmin", err)
	}
	// Roles granted while the authority held stay granted.
	if !mustHasRole(t, store, "bob", 4) {
		t.Fatal("revoking the admin bit disturbed an existing grant")
	}
}

func TestRevokeAdminUnheldBitIsNoOp(t *testing.T) {
	store := newTestStore(t, 32)

	if err := store.RevokeAdmin(context.Background(), "admin", "ghost", 9); err != nil {
		t.Fatalf("RevokeAdmin on unknown target: err = %v, want nil", err)
	}
}

func TestAdminContractViolationsPanic(t *testing.T) {
	store := newTestStore(t, 32)
	ctx := context.Background()

	cases := []struct {
		name string
		fn   func()
	}{
		// Bit 0 is only ever assigned at bootstrap.
		{"grant admin bit 0", func() { _ = store.GrantAdmin(ctx, "admin", "bob", 0) }},
		{"revoke admin bit 0", func() { _ = store.RevokeAdmin(ctx, "admin", "admin", 0) }},
		{"grant admin at capacity", func() { _ = store.GrantAdmin(ctx, "admin", "bob", 32) }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Fatal("expected panic, got none")
				}
			}()
			tc.fn()
		})
	}
}

func TestAdminMayAdministerSelf(t *testing.T) {
	store := newTestStore(t, 32)

	if err := store.GrantAdmin(context.Background(), "admin", "admin", 1); err != nil {
		t.Fatalf("GrantAdmin failed: %v", err)
	}
	if !mustIsAdminFor(t, store, "admin", 1) {
		t.Fatal("admin bit 1 not set")
	}
}
