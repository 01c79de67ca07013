package goAccess

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestRedis(t *testing.T) redis.UniversalClient {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return client
}

func TestBuildRequiresBootstrapAdmin(t *testing.T) {
	if _, err := New().Build(); err == nil {
		t.Fatal("Build without bootstrap admin succeeded")
	}
}

func TestBuildRejectsInvalidCapacity(t *testing.T) {
	for _, capacity := range []int{0, -1, 16, 33, 100} {
		cfg := DefaultConfig()
		cfg.Capacity = capacity

		_, err := New().WithConfig(cfg).WithBootstrapAdmin("admin").Build()
		if err == nil {
			t.Fatalf("Build accepted capacity %d", capacity)
		}
	}
}

func TestBuildRejectsCapacityAboveCeiling(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Capacity = 512

	_, err := New().WithConfig(cfg).WithBootstrapAdmin("admin").Build()
	if err == nil {
		t.Fatal("Build accepted capacity above the 256-bit ceiling")
	}
}

func TestBuilderSingleUse(t *testing.T) {
	b := New().WithBootstrapAdmin("admin")

	store, err := b.Build()
	if err != nil {
		t.Fatalf("first Build failed: %v", err)
	}
	defer store.Close()

	if _, err := b.Build(); err == nil {
		t.Fatal("second Build on the same builder succeeded")
	}
}

func TestBuildWithRedisBackend(t *testing.T) {
	client := newTestRedis(t)

	store, err := New().
		WithRedis(client).
		WithBootstrapAdmin("admin").
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	defer store.Close()

	mustGrant(t, store, "admin", "bob", 3)
	if !mustHasRole(t, store, "bob", 3) {
		t.Fatal("HasRole(bob, 3) false after Grant over redis")
	}
}

func TestBootstrapIsIdempotentAcrossRebuilds(t *testing.T) {
	client := newTestRedis(t)
	ctx := context.Background()

	first, err := New().WithRedis(client).WithBootstrapAdmin("admin").Build()
	if err != nil {
		t.Fatalf("first Build failed: %v", err)
	}
	mustGrant(t, first, "admin", "bob", 5)
	if err := first.GrantAdmin(ctx, "admin", "admin", 7); err != nil {
		t.Fatalf("GrantAdmin failed: %v", err)
	}
	first.Close()

	// Rebuilding over the same namespace must not erase existing state.
	second, err := New().WithRedis(client).WithBootstrapAdmin("admin").Build()
	if err != nil {
		t.Fatalf("second Build failed: %v", err)
	}
	defer second.Close()

	if !mustHasRole(t, second, "bob", 5) {
		t.Fatal("rebuild lost bob's role")
	}
	if !mustIsAdminFor(t, second, "admin", 7) {
		t.Fatal("rebuild lost admin bit 7")
	}
}

func TestBuildFailsWhenRedisUnavailable(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()
	mr.Close()

	_, err := New().WithRedis(client).WithBootstrapAdmin("admin").Build()
	if !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("Build against dead redis: err = %v, want ErrStoreUnavailable", err)
	}
}

func TestOperationsSurfaceStoreUnavailable(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	store, err := New().WithRedis(client).WithBootstrapAdmin("admin").Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	defer store.Close()

	mr.Close()
	ctx := context.Background()

	if err := store.Grant(ctx, "admin", "bob", 1); !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("Grant against dead redis: err = %v, want ErrStoreUnavailable", err)
	}
	if _, err := store.HasRole(ctx, "bob", 1); !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("HasRole against dead redis: err = %v, want ErrStoreUnavailable", err)
	}
	if _, err := store.RolesOf(ctx, "bob"); !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("RolesOf against dead redis: err = %v, want ErrStoreUnavailable", err)
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}

	cfg.Capacity = 300
	if err := cfg.Validate(); err == nil {
		t.Fatal("capacity above ceiling validated")
	}

	cfg = DefaultConfig()
	cfg.Audit.Enabled = true
	cfg.Audit.BufferSize = -1
	if err := cfg.Validate(); err == nil {
		t.Fatal("negative audit buffer validated")
	}
}

func TestWithConfigCopies(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Capacity = 64

	b := New().WithConfig(cfg).WithBootstrapAdmin("admin")
	cfg.Capacity = 17 // later mutation must not reach the builder

	store, err := b.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	defer store.Close()

	if store.Capacity() != 64 {
		t.Fatalf("Capacity() = %d, want 64", store.Capacity())
	}
}
