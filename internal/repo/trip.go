// Package repo contains all document-store access for the Travel Planner API.
// Each resource has its own file with an interface and a Firestore
// implementation. No business logic lives here — only queries and type
// mapping. Trips live in the top-level "trips" collection; activities in an
// "activities" subcollection under each trip document.
package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/mpopescu/travel-planner/backend/internal/domain"
)

const (
	tripsCollection      = "trips"
	activitiesCollection = "activities"
)

// TripRepo defines the persistence operations for Trips.
// The service layer depends on this interface, not the concrete Firestore
// implementation, which allows the service to be unit-tested with a mock.
type TripRepo interface {
	// Create persists a new trip and returns it with the store-assigned ID.
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// GetByID retrieves a single trip by its document ID.
	// Returns domain.ErrNotFound if no trip with that ID exists.
	GetByID(ctx context.Context, id string) (domain.Trip, error)

	// ListByOwner returns all trips created by the given identity subject.
	ListByOwner(ctx context.Context, owner string) ([]domain.Trip, error)

	// ListPublic returns all trips with the public visibility flag set.
	ListPublic(ctx context.Context) ([]domain.Trip, error)

	// Update overwrites an existing trip document with the given record.
	// Callers must have confirmed the document exists.
	Update(ctx context.Context, trip domain.Trip) error

	// Delete removes the trip document. Child activities are NOT touched;
	// callers must delete them first via ActivityRepo.DeleteAllByTripID.
	Delete(ctx context.Context, id string) error
}

// fsTripRepo is the Firestore implementation of TripRepo.
type fsTripRepo struct {
	client *firestore.Client
}

// NewTripRepo constructs a TripRepo backed by the provided Firestore client.
func NewTripRepo(client *firestore.Client) TripRepo {
	return &fsTripRepo{client: client}
}

func (r *fsTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	ref, _, err := r.client.Collection(tripsCollection).Add(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", err)
	}
	trip.ID = ref.ID
	return trip, nil
}

func (r *fsTripRepo) GetByID(ctx context.Context, id string) (domain.Trip, error) {
	snap, err := r.client.Collection(tripsCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", domain.ErrNotFound)
		}
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	return snapToTrip(snap)
}

func (r *fsTripRepo) ListByOwner(ctx context.Context, owner string) ([]domain.Trip, error) {
	q := r.client.Collection(tripsCollection).Where("createdBy", "==", owner)
	trips, err := collectTrips(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.ListByOwner: %w", err)
	}
	return trips, nil
}

func (r *fsTripRepo) ListPublic(ctx context.Context) ([]domain.Trip, error) {
	q := r.client.Collection(tripsCollection).Where("public", "==", true)
	trips, err := collectTrips(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.ListPublic: %w", err)
	}
	return trips, nil
}

func (r *fsTripRepo) Update(ctx context.Context, trip domain.Trip) error {
	_, err := r.client.Collection(tripsCollection).Doc(trip.ID).Set(ctx, trip)
	if err != nil {
		return fmt.Errorf("repo.TripRepo.Update: %w", err)
	}
	return nil
}

func (r *fsTripRepo) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection(tripsCollection).Doc(id).Delete(ctx)
	if err != nil {
		return fmt.Errorf("repo.TripRepo.Delete: %w", err)
	}
	return nil
}

// collectTrips drains a query into a slice, mapping each snapshot.
func collectTrips(ctx context.Context, q firestore.Query) ([]domain.Trip, error) {
	iter := q.Documents(ctx)
	defer iter.Stop()

	var trips []domain.Trip
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		t, err := snapToTrip(snap)
		if err != nil {
			return nil, err
		}
		trips = append(trips, t)
	}
	return trips, nil
}

// snapToTrip maps a document snapshot into a domain.Trip, restoring the
// document ID which Firestore keeps out of the field data.
func snapToTrip(snap *firestore.DocumentSnapshot) (domain.Trip, error) {
	var t domain.Trip
	if err := snap.DataTo(&t); err != nil {
		return domain.Trip{}, fmt.Errorf("decode trip %s: %w", snap.Ref.ID, err)
	}
	t.ID = snap.Ref.ID
	return t, nil
}
