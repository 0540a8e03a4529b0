package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/mpopescu/travel-planner/backend/internal/domain"
)

// identityKey is the context key under which the bound identity is stored.
// Unexported struct key prevents collisions with other packages.
type identityKey struct{}

// IdentityFromContext returns the identity bound by RequireAuth or
// OptionalAuth. Returns domain.Anonymous when no identity was bound.
func IdentityFromContext(ctx context.Context) domain.Identity {
	if id, ok := ctx.Value(identityKey{}).(domain.Identity); ok {
		return id
	}
	return domain.Anonymous
}

// withIdentity returns a copy of ctx carrying the given identity.
func withIdentity(ctx context.Context, id domain.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// RequireAuth returns middleware that fails closed: requests without a valid
// bearer token are rejected with 401 before reaching the handler. On success
// the verified identity is bound to the request context.
func RequireAuth(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				unauthenticated(w, "missing auth token")
				return
			}
			id, err := verifier.Verify(r.Context(), token)
			if err != nil {
				unauthenticated(w, "invalid token")
				return
			}
			next.ServeHTTP(w, r.WithContext(withIdentity(r.Context(), id)))
		})
	}
}

// OptionalAuth returns middleware that never fails: it binds the verified
// identity when a valid token is present and the anonymous identity
// otherwise. Handlers downstream decide what anonymous callers may see.
func OptionalAuth(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := domain.Anonymous
			if token, ok := bearerToken(r); ok {
				if verified, err := verifier.Verify(r.Context(), token); err == nil {
					id = verified
				}
			}
			next.ServeHTTP(w, r.WithContext(withIdentity(r.Context(), id)))
		})
	}
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header. The scheme comparison is case-insensitive per RFC 7235.
func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	return header[len(prefix):], true
}

// unauthenticated writes the 401 error envelope. The auth package cannot use
// the handler package's helpers without an import cycle, so it carries its
// own minimal writer for this single response shape.
func unauthenticated(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]string{"code": "unauthenticated", "message": message},
	})
}
