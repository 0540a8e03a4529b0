// Package policy contains the access decisions for trips and their
// activities. Ownership is the only write-authorization primitive: there are
// no roles, groups, or shared-access lists. Read access adds a single
// per-trip public flag.
//
// The functions are pure so they can be tested without any HTTP or store
// wiring; handlers and services call them after resolving the resource.
package policy

import (
	"fmt"

	"github.com/mpopescu/travel-planner/backend/internal/domain"
)

// CanRead reports whether identity may read the trip (and, by inheritance,
// its activities). Public trips are readable by anyone, including the
// anonymous identity; private trips only by their owner.
func CanRead(trip domain.Trip, identity domain.Identity) bool {
	if trip.Public {
		return true
	}
	return identity.Present() && identity.Subject == trip.CreatedBy
}

// RequireOwner checks that identity holds write rights on the trip.
// Returns domain.ErrUnauthenticated for the anonymous identity and
// domain.ErrForbidden for any authenticated identity other than the owner.
func RequireOwner(trip domain.Trip, identity domain.Identity) error {
	if !identity.Present() {
		return fmt.Errorf("policy.RequireOwner: %w", domain.ErrUnauthenticated)
	}
	if identity.Subject != trip.CreatedBy {
		return fmt.Errorf("policy.RequireOwner: %w", domain.ErrForbidden)
	}
	return nil
}
