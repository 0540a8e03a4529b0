// Package auth verifies bearer tokens and binds the resulting identity to
// the request context. Token verification itself is delegated to Google's
// hosted validator; this package only adapts it behind a small interface so
// handler and middleware tests can substitute a fake.
package auth

import (
	"context"
	"fmt"

	"google.golang.org/api/idtoken"

	"github.com/mpopescu/travel-planner/backend/internal/domain"
)

// TokenVerifier validates a raw bearer token and yields the stable identity
// it was issued to. Implementations must return an error wrapping
// domain.ErrUnauthenticated for any token that fails verification.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (domain.Identity, error)
}

// googleVerifier validates Google-issued ID tokens against an expected
// audience using google.golang.org/api/idtoken. Validation fetches and
// caches the issuer's public certificates internally.
type googleVerifier struct {
	audience string
}

// NewGoogleVerifier returns a TokenVerifier for Google ID tokens.
// audience is the expected aud claim; pass the client application's ID.
func NewGoogleVerifier(audience string) TokenVerifier {
	return &googleVerifier{audience: audience}
}

// Verify validates the token signature, expiry, and audience, and returns
// the subject claim as the identity.
func (v *googleVerifier) Verify(ctx context.Context, token string) (domain.Identity, error) {
	payload, err := idtoken.Validate(ctx, token, v.audience)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("auth: invalid token (%v): %w", err, domain.ErrUnauthenticated)
	}
	if payload.Subject == "" {
		return domain.Identity{}, fmt.Errorf("auth: token has no subject: %w", domain.ErrUnauthenticated)
	}
	return domain.Identity{Subject: payload.Subject}, nil
}
