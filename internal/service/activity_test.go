package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpopescu/travel-planner/backend/internal/domain"
	"github.com/mpopescu/travel-planner/backend/internal/service"
)

// ---- helpers ---------------------------------------------------------------

func validActivity(tripID string) domain.Activity {
	return domain.Activity{
		TripID: tripID,
		Name:   "Colosseum tour",
		Place:  "Rome",
		Price:  25,
	}
}

func storedActivity(tripID string) domain.Activity {
	a := validActivity(tripID)
	a.ID = uuid.NewString()
	a.CreatedBy = "alice"
	a.CreatedAt = time.Now().UTC().Add(-time.Hour)
	a.UpdatedAt = a.CreatedAt
	return a
}

// tripOwnedBy returns a trip repo whose GetByID always yields a private trip
// owned by the given subject.
func tripOwnedBy(owner string) *mockTripRepo {
	return &mockTripRepo{
		getByID: func(_ context.Context, id string) (domain.Trip, error) {
			t := storedTrip(owner)
			t.ID = id
			return t, nil
		},
	}
}

func tripMissing() *mockTripRepo {
	return &mockTripRepo{
		getByID: func(_ context.Context, _ string) (domain.Trip, error) {
			return domain.Trip{}, domain.ErrNotFound
		},
	}
}

// ---- ListByTrip ------------------------------------------------------------

func TestActivityService_ListByTrip_OwnerReadsPrivateTrip(t *testing.T) {
	existing := storedActivity("trip-1")
	activities := &mockActivityRepo{
		listByTripID: func(_ context.Context, tripID string) ([]domain.Activity, error) {
			require.Equal(t, "trip-1", tripID)
			return []domain.Activity{existing}, nil
		},
	}
	svc := service.NewActivityService(tripOwnedBy("alice"), activities)

	got, err := svc.ListByTrip(context.Background(), alice, "trip-1")

	require.NoError(t, err)
	assert.Equal(t, []domain.Activity{existing}, got)
}

func TestActivityService_ListByTrip_AnonymousOnPrivateTrip_Forbidden(t *testing.T) {
	svc := service.NewActivityService(tripOwnedBy("alice"), &mockActivityRepo{})

	_, err := svc.ListByTrip(context.Background(), domain.Anonymous, "trip-1")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrForbidden))
}

func TestActivityService_ListByTrip_AnonymousOnPublicTrip_Allowed(t *testing.T) {
	trips := &mockTripRepo{
		getByID: func(_ context.Context, id string) (domain.Trip, error) {
			tr := storedTrip("alice")
			tr.ID = id
			tr.Public = true
			return tr, nil
		},
	}
	activities := &mockActivityRepo{
		listByTripID: func(_ context.Context, _ string) ([]domain.Activity, error) { return nil, nil },
	}
	svc := service.NewActivityService(trips, activities)

	got, err := svc.ListByTrip(context.Background(), domain.Anonymous, "trip-1")

	require.NoError(t, err)
	require.NotNil(t, got, "empty list must still be a non-nil slice")
	assert.Empty(t, got)
}

func TestActivityService_ListByTrip_MissingTrip_NotFound(t *testing.T) {
	svc := service.NewActivityService(tripMissing(), &mockActivityRepo{})

	_, err := svc.ListByTrip(context.Background(), alice, "missing")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

// ---- Create ----------------------------------------------------------------

func TestActivityService_Create_StampsCreatorAndTimestamps(t *testing.T) {
	activities := &mockActivityRepo{
		create: func(_ context.Context, a domain.Activity) (domain.Activity, error) {
			a.ID = uuid.NewString()
			return a, nil
		},
	}
	svc := service.NewActivityService(tripOwnedBy("alice"), activities)

	got, err := svc.Create(context.Background(), alice, validActivity("trip-1"))

	require.NoError(t, err)
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, "alice", got.CreatedBy)
	assert.False(t, got.CreatedAt.IsZero())
	assert.Equal(t, got.CreatedAt, got.UpdatedAt)
}

func TestActivityService_Create_NonOwner_Forbidden(t *testing.T) {
	created := false
	activities := &mockActivityRepo{
		create: func(_ context.Context, a domain.Activity) (domain.Activity, error) {
			created = true
			return a, nil
		},
	}
	svc := service.NewActivityService(tripOwnedBy("alice"), activities)

	_, err := svc.Create(context.Background(), domain.Identity{Subject: "bob"}, validActivity("trip-1"))

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrForbidden))
	assert.False(t, created)
}

func TestActivityService_Create_MissingTrip_NotFound(t *testing.T) {
	svc := service.NewActivityService(tripMissing(), &mockActivityRepo{})

	_, err := svc.Create(context.Background(), alice, validActivity("missing"))

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestActivityService_Create_InvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.Activity)
	}{
		{"empty name", func(a *domain.Activity) { a.Name = "" }},
		{"whitespace name", func(a *domain.Activity) { a.Name = "   " }},
		{"empty place", func(a *domain.Activity) { a.Place = "" }},
		{"negative price", func(a *domain.Activity) { a.Price = -0.5 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := service.NewActivityService(tripOwnedBy("alice"), &mockActivityRepo{})

			activity := validActivity("trip-1")
			tt.mutate(&activity)
			_, err := svc.Create(context.Background(), alice, activity)

			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrValidation))
		})
	}
}

// ---- Update ----------------------------------------------------------------

func TestActivityService_Update_MergesFields(t *testing.T) {
	existing := storedActivity("trip-1")
	var persisted domain.Activity
	activities := &mockActivityRepo{
		getByID: func(_ context.Context, tripID, id string) (domain.Activity, error) {
			require.Equal(t, existing.ID, id)
			return existing, nil
		},
		update: func(_ context.Context, a domain.Activity) error {
			persisted = a
			return nil
		},
	}
	svc := service.NewActivityService(tripOwnedBy("alice"), activities)

	update := validActivity("trip-1")
	update.ID = existing.ID
	update.Name = "  Vatican tour  "
	update.Price = 30

	got, err := svc.Update(context.Background(), alice, update)

	require.NoError(t, err)
	assert.Equal(t, "Vatican tour", got.Name, "name is trimmed before persisting")
	assert.Equal(t, 30.0, got.Price)
	assert.Equal(t, existing.CreatedAt, got.CreatedAt)
	assert.True(t, got.UpdatedAt.After(existing.UpdatedAt))
	assert.Equal(t, got, persisted)
}

func TestActivityService_Update_MissingActivity_NotFound(t *testing.T) {
	activities := &mockActivityRepo{
		getByID: func(_ context.Context, _, _ string) (domain.Activity, error) {
			return domain.Activity{}, domain.ErrNotFound
		},
	}
	svc := service.NewActivityService(tripOwnedBy("alice"), activities)

	update := validActivity("trip-1")
	update.ID = "missing"
	_, err := svc.Update(context.Background(), alice, update)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestActivityService_Update_NonOwner_Forbidden(t *testing.T) {
	svc := service.NewActivityService(tripOwnedBy("alice"), &mockActivityRepo{})

	update := validActivity("trip-1")
	update.ID = "a1"
	_, err := svc.Update(context.Background(), domain.Identity{Subject: "bob"}, update)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrForbidden))
}

// ---- Delete ----------------------------------------------------------------

func TestActivityService_Delete_Owner(t *testing.T) {
	existing := storedActivity("trip-1")
	deleted := false
	activities := &mockActivityRepo{
		getByID: func(_ context.Context, _, _ string) (domain.Activity, error) { return existing, nil },
		delete: func(_ context.Context, tripID, id string) error {
			require.Equal(t, "trip-1", tripID)
			require.Equal(t, existing.ID, id)
			deleted = true
			return nil
		},
	}
	svc := service.NewActivityService(tripOwnedBy("alice"), activities)

	err := svc.Delete(context.Background(), alice, "trip-1", existing.ID)

	require.NoError(t, err)
	assert.True(t, deleted)
}

func TestActivityService_Delete_MissingActivity_NotFound(t *testing.T) {
	activities := &mockActivityRepo{
		getByID: func(_ context.Context, _, _ string) (domain.Activity, error) {
			return domain.Activity{}, domain.ErrNotFound
		},
	}
	svc := service.NewActivityService(tripOwnedBy("alice"), activities)

	err := svc.Delete(context.Background(), alice, "trip-1", "missing")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestActivityService_Delete_NonOwner_Forbidden(t *testing.T) {
	svc := service.NewActivityService(tripOwnedBy("alice"), &mockActivityRepo{})

	err := svc.Delete(context.Background(), domain.Identity{Subject: "bob"}, "trip-1", "a1")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrForbidden))
}
