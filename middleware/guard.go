package middleware

import (
	"context"
	"net/http"

	goAccess "github.com/MrEthical07/goAccess"
)

// PrincipalFunc resolves the calling principal from a request. Returning
// false rejects the request as unauthenticated.
type PrincipalFunc func(r *http.Request) (string, bool)

type principalContextKey struct{}

// PrincipalFromContext returns the principal injected by a guard.
func PrincipalFromContext(ctx context.Context) (string, bool) {
	principal, ok := ctx.Value(principalContextKey{}).(string)
	return principal, ok
}

// HeaderPrincipal resolves the principal from a trusted request header, for
// deployments behind an authenticating reverse proxy.
func HeaderPrincipal(header string) PrincipalFunc {
	return func(r *http.Request) (string, bool) {
		principal := r.Header.Get(header)
		return principal, principal != ""
	}
}

// RequireRole returns middleware that rejects requests whose principal does
// not hold role. Store errors map to 503, missing roles to 403, unresolved
// principals to 401.
func RequireRole(store *goAccess.Store, principal PrincipalFunc, role int) func(http.Handler) http.Handler {
	return guard(store, principal, role, (*goAccess.Store).HasRole)
}

// RequireAdmin returns middleware that rejects requests whose principal may
// not administer role. Status mapping is identical to [RequireRole].
func RequireAdmin(store *goAccess.Store, principal PrincipalFunc, role int) func(http.Handler) http.Handler {
	return guard(store, principal, role, (*goAccess.Store).IsAdminFor)
}

func guard(
	store *goAccess.Store,
	principal PrincipalFunc,
	role int,
	check func(*goAccess.Store, context.Context, string, int) (bool, error),
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if store == nil || principal == nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			who, ok := principal(r)
			if !ok {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			allowed, err := check(store, r.Context(), who, role)
			if err != nil {
				http.Error(w, "service unavailable", http.StatusServiceUnavailable)
				return
			}
			if !allowed {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}

			ctx := context.WithValue(r.Context(), principalContextKey{}, who)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
