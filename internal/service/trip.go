// Package service contains the business logic for the Travel Planner API.
// Services validate inputs, enforce the ownership policy, and orchestrate
// repo calls. No store queries live here — services depend on repo
// interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mpopescu/travel-planner/backend/internal/domain"
	"github.com/mpopescu/travel-planner/backend/internal/policy"
	"github.com/mpopescu/travel-planner/backend/internal/repo"
)

// TripService implements business logic for Trip operations.
// It holds the activity repo as well because deleting a trip must cascade
// to its child activities.
type TripService struct {
	trips      repo.TripRepo
	activities repo.ActivityRepo
}

// NewTripService constructs a TripService backed by the provided repos.
func NewTripService(trips repo.TripRepo, activities repo.ActivityRepo) *TripService {
	return &TripService{trips: trips, activities: activities}
}

// List returns the trips visible to the given identity: the caller's own
// trips when authenticated, all public trips otherwise. Filtering happens
// here, server-side, never in the client.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TripService) List(ctx context.Context, identity domain.Identity) ([]domain.Trip, error) {
	var (
		trips []domain.Trip
		err   error
	)
	if identity.Present() {
		trips, err = s.trips.ListByOwner(ctx, identity.Subject)
	} else {
		trips, err = s.trips.ListPublic(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("service.TripService.List: %w", err)
	}
	if trips == nil {
		return []domain.Trip{}, nil
	}
	return trips, nil
}

// Create validates and persists a new trip owned by the calling identity.
// New trips are private unless the caller asks for public visibility.
// Returns domain.ErrValidation if input violates field rules.
func (s *TripService) Create(ctx context.Context, identity domain.Identity, trip domain.Trip) (domain.Trip, error) {
	if !identity.Present() {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", domain.ErrUnauthenticated)
	}
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, err
	}

	now := time.Now().UTC()
	trip = normalizeTrip(trip)
	trip.CreatedBy = identity.Subject
	trip.CreatedAt = now
	trip.UpdatedAt = now

	created, err := s.trips.Create(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	return created, nil
}

// Update re-validates all fields and merges them into the existing trip.
// Owner identity and creation timestamp are immutable; only the owner may
// update. Returns domain.ErrNotFound if the trip does not exist (checked
// before ownership), domain.ErrForbidden for a non-owner.
func (s *TripService) Update(ctx context.Context, identity domain.Identity, trip domain.Trip) (domain.Trip, error) {
	existing, err := s.trips.GetByID(ctx, trip.ID)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	if err := policy.RequireOwner(existing, identity); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, err
	}

	trip = normalizeTrip(trip)
	merged := existing
	merged.Country = trip.Country
	merged.Date = trip.Date
	merged.Budget = trip.Budget
	merged.Public = trip.Public
	merged.UpdatedAt = time.Now().UTC()

	if err := s.trips.Update(ctx, merged); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	return merged, nil
}

// Delete removes a trip and all of its activities. Children are removed
// first as one atomic batch; the trip document is deleted only after that
// batch commits, so a mid-cascade failure leaves trip and children intact
// and the whole operation safe to retry.
// Returns domain.ErrNotFound if the trip does not exist, domain.ErrForbidden
// for a non-owner.
func (s *TripService) Delete(ctx context.Context, identity domain.Identity, id string) error {
	existing, err := s.trips.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	if err := policy.RequireOwner(existing, identity); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}

	if err := s.activities.DeleteAllByTripID(ctx, id); err != nil {
		return fmt.Errorf("service.TripService.Delete: cascade: %w", err)
	}
	if err := s.trips.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	return nil
}

// normalizeTrip trims string fields before persisting.
func normalizeTrip(trip domain.Trip) domain.Trip {
	trip.Country = strings.TrimSpace(trip.Country)
	trip.Date = strings.TrimSpace(trip.Date)
	return trip
}
