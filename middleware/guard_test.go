package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	goAccess "github.com/MrEthical07/goAccess"
)

func newGuardedStore(t *testing.T) *goAccess.Store {
	t.Helper()

	cfg := goAccess.DefaultConfig()
	cfg.Capacity = 32

	store, err := goAccess.New().
		WithConfig(cfg).
		WithBootstrapAdmin("admin").
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	t.Cleanup(store.Close)

	if err := store.Grant(context.Background(), "admin", "bob", 4); err != nil {
		t.Fatalf("Grant failed: %v", err)
	}

	return store
}

func doGuarded(t *testing.T, mw func(http.Handler) http.Handler, principal string) (*httptest.ResponseRecorder, string) {
	t.Helper()

	var seen string
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = PrincipalFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if principal != "" {
		req.Header.Set("X-Principal", principal)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	return rec, seen
}

func TestRequireRole(t *testing.T) {
	store := newGuardedStore(t)
	mw := RequireRole(store, HeaderPrincipal("X-Principal"), 4)

	rec, seen := doGuarded(t, mw, "bob")
	if rec.Code != http.StatusOK {
		t.Fatalf("role holder got %d", rec.Code)
	}
	if seen != "bob" {
		t.Fatalf("principal in context = %q, want bob", seen)
	}

	rec, _ = doGuarded(t, mw, "mallory")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("non-holder got %d, want 403", rec.Code)
	}

	rec, _ = doGuarded(t, mw, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("missing principal got %d, want 401", rec.Code)
	}
}

func TestRequireAdmin(t *testing.T) {
	store := newGuardedStore(t)
	mw := RequireAdmin(store, HeaderPrincipal("X-Principal"), 4)

	// The bootstrap admin administers every role through bit 0.
	rec, _ := doGuarded(t, mw, "admin")
	if rec.Code != http.StatusOK {
		t.Fatalf("default admin got %d", rec.Code)
	}

	// Holding the role is not administering it.
	rec, _ = doGuarded(t, mw, "bob")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("role holder got %d, want 403", rec.Code)
	}
}

func TestGuardNilStore(t *testing.T) {
	mw := RequireRole(nil, HeaderPrincipal("X-Principal"), 4)

	rec, _ := doGuarded(t, mw, "bob")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("nil store got %d, want 401", rec.Code)
	}
}
