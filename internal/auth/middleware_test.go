package auth_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpopescu/travel-planner/backend/internal/auth"
	"github.com/mpopescu/travel-planner/backend/internal/domain"
)

// mockVerifier is a test double for auth.TokenVerifier.
type mockVerifier struct {
	verify func(ctx context.Context, token string) (domain.Identity, error)
}

func (m *mockVerifier) Verify(ctx context.Context, token string) (domain.Identity, error) {
	return m.verify(ctx, token)
}

var _ auth.TokenVerifier = (*mockVerifier)(nil)

// acceptAll returns a verifier that treats every token as belonging to subject.
func acceptAll(subject string) *mockVerifier {
	return &mockVerifier{verify: func(_ context.Context, _ string) (domain.Identity, error) {
		return domain.Identity{Subject: subject}, nil
	}}
}

// rejectAll returns a verifier that fails every token.
func rejectAll() *mockVerifier {
	return &mockVerifier{verify: func(_ context.Context, _ string) (domain.Identity, error) {
		return domain.Identity{}, fmt.Errorf("bad token: %w", domain.ErrUnauthenticated)
	}}
}

// echoSubject is a terminal handler that writes the bound identity's subject.
func echoSubject() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, auth.IdentityFromContext(r.Context()).Subject)
	})
}

// ---- RequireAuth -----------------------------------------------------------

func TestRequireAuth_NoHeader_401(t *testing.T) {
	h := auth.RequireAuth(acceptAll("alice"))(echoSubject())

	req := httptest.NewRequest(http.MethodPost, "/api/trips", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":{"code":"unauthenticated","message":"missing auth token"}}`, rec.Body.String())
}

func TestRequireAuth_NonBearerScheme_401(t *testing.T) {
	h := auth.RequireAuth(acceptAll("alice"))(echoSubject())

	req := httptest.NewRequest(http.MethodPost, "/api/trips", nil)
	req.Header.Set("Authorization", "Basic YWxpY2U6c2VjcmV0")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuth_InvalidToken_401(t *testing.T) {
	h := auth.RequireAuth(rejectAll())(echoSubject())

	req := httptest.NewRequest(http.MethodPost, "/api/trips", nil)
	req.Header.Set("Authorization", "Bearer expired")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuth_ValidToken_BindsIdentity(t *testing.T) {
	h := auth.RequireAuth(acceptAll("alice"))(echoSubject())

	req := httptest.NewRequest(http.MethodPost, "/api/trips", nil)
	req.Header.Set("Authorization", "Bearer good")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alice", rec.Body.String())
}

// ---- OptionalAuth ----------------------------------------------------------

func TestOptionalAuth_NoHeader_PassesThroughAnonymous(t *testing.T) {
	h := auth.OptionalAuth(acceptAll("alice"))(echoSubject())

	req := httptest.NewRequest(http.MethodGet, "/api/trips", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestOptionalAuth_InvalidToken_PassesThroughAnonymous(t *testing.T) {
	h := auth.OptionalAuth(rejectAll())(echoSubject())

	req := httptest.NewRequest(http.MethodGet, "/api/trips", nil)
	req.Header.Set("Authorization", "Bearer expired")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestOptionalAuth_ValidToken_BindsIdentity(t *testing.T) {
	h := auth.OptionalAuth(acceptAll("alice"))(echoSubject())

	req := httptest.NewRequest(http.MethodGet, "/api/trips", nil)
	req.Header.Set("Authorization", "Bearer good")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alice", rec.Body.String())
}

func TestIdentityFromContext_UnsetContext_Anonymous(t *testing.T) {
	id := auth.IdentityFromContext(context.Background())
	assert.Equal(t, domain.Anonymous, id)
	assert.False(t, id.Present())
}
