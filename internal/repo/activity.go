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

// ActivityRepo defines the persistence operations for Activities.
// All operations are scoped to a parent trip; an activity document only
// exists inside its trip's subcollection.
type ActivityRepo interface {
	// Create persists a new activity under its parent trip and returns it
	// with the store-assigned ID.
	Create(ctx context.Context, activity domain.Activity) (domain.Activity, error)

	// GetByID retrieves a single activity by ID under the given trip.
	// Returns domain.ErrNotFound if it does not exist.
	GetByID(ctx context.Context, tripID, id string) (domain.Activity, error)

	// ListByTripID returns all activities of a trip ordered by creation
	// time, newest first.
	ListByTripID(ctx context.Context, tripID string) ([]domain.Activity, error)

	// Update overwrites an existing activity document with the given record.
	// Callers must have confirmed the document exists.
	Update(ctx context.Context, activity domain.Activity) error

	// Delete removes a single activity document.
	Delete(ctx context.Context, tripID, id string) error

	// DeleteAllByTripID removes every activity of a trip as one atomic
	// batch: either all children are deleted or none are. Callers rely on
	// this boundary to keep a failed cascade delete retryable.
	DeleteAllByTripID(ctx context.Context, tripID string) error
}

// fsActivityRepo is the Firestore implementation of ActivityRepo.
type fsActivityRepo struct {
	client *firestore.Client
}

// NewActivityRepo constructs an ActivityRepo backed by the provided client.
func NewActivityRepo(client *firestore.Client) ActivityRepo {
	return &fsActivityRepo{client: client}
}

// col returns the activities subcollection of the given trip document.
func (r *fsActivityRepo) col(tripID string) *firestore.CollectionRef {
	return r.client.Collection(tripsCollection).Doc(tripID).Collection(activitiesCollection)
}

func (r *fsActivityRepo) Create(ctx context.Context, activity domain.Activity) (domain.Activity, error) {
	ref, _, err := r.col(activity.TripID).Add(ctx, activity)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("repo.ActivityRepo.Create: %w", err)
	}
	activity.ID = ref.ID
	return activity, nil
}

func (r *fsActivityRepo) GetByID(ctx context.Context, tripID, id string) (domain.Activity, error) {
	snap, err := r.col(tripID).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return domain.Activity{}, fmt.Errorf("repo.ActivityRepo.GetByID: %w", domain.ErrNotFound)
		}
		return domain.Activity{}, fmt.Errorf("repo.ActivityRepo.GetByID: %w", err)
	}
	return snapToActivity(snap, tripID)
}

func (r *fsActivityRepo) ListByTripID(ctx context.Context, tripID string) ([]domain.Activity, error) {
	iter := r.col(tripID).OrderBy("createdAt", firestore.Desc).Documents(ctx)
	defer iter.Stop()

	var activities []domain.Activity
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("repo.ActivityRepo.ListByTripID: %w", err)
		}
		a, err := snapToActivity(snap, tripID)
		if err != nil {
			return nil, fmt.Errorf("repo.ActivityRepo.ListByTripID: %w", err)
		}
		activities = append(activities, a)
	}
	return activities, nil
}

func (r *fsActivityRepo) Update(ctx context.Context, activity domain.Activity) error {
	_, err := r.col(activity.TripID).Doc(activity.ID).Set(ctx, activity)
	if err != nil {
		return fmt.Errorf("repo.ActivityRepo.Update: %w", err)
	}
	return nil
}

func (r *fsActivityRepo) Delete(ctx context.Context, tripID, id string) error {
	_, err := r.col(tripID).Doc(id).Delete(ctx)
	if err != nil {
		return fmt.Errorf("repo.ActivityRepo.Delete: %w", err)
	}
	return nil
}

// DeleteAllByTripID enumerates the trip's activities and deletes them in a
// single WriteBatch commit. A WriteBatch (unlike BulkWriter) applies
// atomically, which is what makes the trip cascade delete all-or-nothing.
// Batches cap at 500 writes; personal-scale trips stay far below that.
func (r *fsActivityRepo) DeleteAllByTripID(ctx context.Context, tripID string) error {
	iter := r.col(tripID).Documents(ctx)
	defer iter.Stop()

	batch := r.client.Batch()
	n := 0
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return fmt.Errorf("repo.ActivityRepo.DeleteAllByTripID: %w", err)
		}
		batch.Delete(snap.Ref)
		n++
	}
	if n == 0 {
		return nil
	}
	if _, err := batch.Commit(ctx); err != nil {
		return fmt.Errorf("repo.ActivityRepo.DeleteAllByTripID: commit: %w", err)
	}
	return nil
}

// snapToActivity maps a document snapshot into a domain.Activity, restoring
// the IDs that Firestore keeps in the document path rather than the fields.
func snapToActivity(snap *firestore.DocumentSnapshot, tripID string) (domain.Activity, error) {
	var a domain.Activity
	if err := snap.DataTo(&a); err != nil {
		return domain.Activity{}, fmt.Errorf("decode activity %s: %w", snap.Ref.ID, err)
	}
	a.ID = snap.Ref.ID
	a.TripID = tripID
	return a, nil
}
