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

// ActivityService implements business logic for Activity operations.
// It holds the trip repo as well because every activity operation is
// authorized against the parent trip: reads inherit the trip's visibility,
// writes require the trip's owner.
type ActivityService struct {
	trips      repo.TripRepo
	activities repo.ActivityRepo
}

// NewActivityService constructs an ActivityService backed by the provided repos.
func NewActivityService(trips repo.TripRepo, activities repo.ActivityRepo) *ActivityService {
	return &ActivityService{trips: trips, activities: activities}
}

// ListByTrip returns the trip's activities, newest first.
// Returns domain.ErrNotFound if the parent trip does not exist and
// domain.ErrForbidden if the trip is not readable by the identity.
// Always returns a non-nil slice so callers can safely range over it.
func (s *ActivityService) ListByTrip(ctx context.Context, identity domain.Identity, tripID string) ([]domain.Activity, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ActivityService.ListByTrip: %w", err)
	}
	if !policy.CanRead(trip, identity) {
		return nil, fmt.Errorf("service.ActivityService.ListByTrip: %w", domain.ErrForbidden)
	}

	activities, err := s.activities.ListByTripID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ActivityService.ListByTrip: %w", err)
	}
	if activities == nil {
		return []domain.Activity{}, nil
	}
	return activities, nil
}

// Create validates and persists a new activity under the parent trip.
// Only the trip's owner may create activities; the creating identity is
// recorded on the document for audit, not authorization.
func (s *ActivityService) Create(ctx context.Context, identity domain.Identity, activity domain.Activity) (domain.Activity, error) {
	if err := s.requireTripOwner(ctx, identity, activity.TripID); err != nil {
		return domain.Activity{}, fmt.Errorf("service.ActivityService.Create: %w", err)
	}
	if err := validateActivity(activity); err != nil {
		return domain.Activity{}, err
	}

	now := time.Now().UTC()
	activity = normalizeActivity(activity)
	activity.CreatedBy = identity.Subject
	activity.CreatedAt = now
	activity.UpdatedAt = now

	created, err := s.activities.Create(ctx, activity)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("service.ActivityService.Create: %w", err)
	}
	return created, nil
}

// Update re-validates all fields and merges them into the existing activity.
// Requires the parent trip's owner; returns domain.ErrNotFound if either the
// trip or the activity does not exist.
func (s *ActivityService) Update(ctx context.Context, identity domain.Identity, activity domain.Activity) (domain.Activity, error) {
	if err := s.requireTripOwner(ctx, identity, activity.TripID); err != nil {
		return domain.Activity{}, fmt.Errorf("service.ActivityService.Update: %w", err)
	}
	if err := validateActivity(activity); err != nil {
		return domain.Activity{}, err
	}

	existing, err := s.activities.GetByID(ctx, activity.TripID, activity.ID)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("service.ActivityService.Update: %w", err)
	}

	activity = normalizeActivity(activity)
	merged := existing
	merged.Name = activity.Name
	merged.Place = activity.Place
	merged.Price = activity.Price
	merged.UpdatedAt = time.Now().UTC()

	if err := s.activities.Update(ctx, merged); err != nil {
		return domain.Activity{}, fmt.Errorf("service.ActivityService.Update: %w", err)
	}
	return merged, nil
}

// Delete removes a single activity. Requires the parent trip's owner;
// returns domain.ErrNotFound if either the trip or the activity is absent.
func (s *ActivityService) Delete(ctx context.Context, identity domain.Identity, tripID, id string) error {
	if err := s.requireTripOwner(ctx, identity, tripID); err != nil {
		return fmt.Errorf("service.ActivityService.Delete: %w", err)
	}
	if _, err := s.activities.GetByID(ctx, tripID, id); err != nil {
		return fmt.Errorf("service.ActivityService.Delete: %w", err)
	}
	if err := s.activities.Delete(ctx, tripID, id); err != nil {
		return fmt.Errorf("service.ActivityService.Delete: %w", err)
	}
	return nil
}

// requireTripOwner resolves the parent trip and checks write rights on it.
// The not-found check runs before the ownership check so callers get 404,
// not 403, for a missing trip.
func (s *ActivityService) requireTripOwner(ctx context.Context, identity domain.Identity, tripID string) error {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return err
	}
	return policy.RequireOwner(trip, identity)
}

// normalizeActivity trims string fields before persisting.
func normalizeActivity(activity domain.Activity) domain.Activity {
	activity.Name = strings.TrimSpace(activity.Name)
	activity.Place = strings.TrimSpace(activity.Place)
	return activity
}
