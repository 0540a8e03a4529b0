package client

import (
	"context"
	"net/http"
	"sync"

	"github.com/mpopescu/travel-planner/backend/internal/domain"
)

// TripPayload is the mutable field set sent on trip create and update.
type TripPayload struct {
	Country string  `json:"country"`
	Date    string  `json:"date"`
	Budget  float64 `json:"budget"`
	Public  bool    `json:"public"`
}

// ActivityPayload is the mutable field set sent on activity create and update.
type ActivityPayload struct {
	Name  string  `json:"name"`
	Place string  `json:"place"`
	Price float64 `json:"price"`
}

// TripStore mirrors the server's trips and activities in memory.
// Writes reconcile the local lists with the server's response: creates
// prepend, updates merge by ID, deletes filter. Fetches replace the local
// state wholesale, which is how the store resynchronizes after drift.
//
// All methods are safe for concurrent use, though the intended usage is one
// outstanding request per user action.
type TripStore struct {
	client *Client

	mu               sync.Mutex
	trips            []domain.Trip
	selectedTripID   string
	activitiesByTrip map[string][]domain.Activity
}

// NewTripStore constructs an empty store backed by the given API client.
func NewTripStore(c *Client) *TripStore {
	return &TripStore{
		client:           c,
		activitiesByTrip: make(map[string][]domain.Activity),
	}
}

// Trips returns a copy of the locally mirrored trip list.
func (s *TripStore) Trips() []domain.Trip {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Trip, len(s.trips))
	copy(out, s.trips)
	return out
}

// Activities returns a copy of the locally mirrored activities of a trip.
func (s *TripStore) Activities(tripID string) []domain.Activity {
	s.mu.Lock()
	defer s.mu.Unlock()
	cached := s.activitiesByTrip[tripID]
	out := make([]domain.Activity, len(cached))
	copy(out, cached)
	return out
}

// SelectTrip marks a trip as the currently selected one.
func (s *TripStore) SelectTrip(tripID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedTripID = tripID
}

// SelectedTrip returns the currently selected trip, if any.
func (s *TripStore) SelectedTrip() (domain.Trip, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.trips {
		if t.ID == s.selectedTripID {
			return t, true
		}
	}
	return domain.Trip{}, false
}

// FetchTrips replaces the local trip list with the server's view.
// The first trip becomes selected when nothing is selected yet.
func (s *TripStore) FetchTrips(ctx context.Context) error {
	var trips []domain.Trip
	if err := s.client.do(ctx, http.MethodGet, "/api/trips", nil, &trips); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.trips = trips
	if s.selectedTripID == "" && len(trips) > 0 {
		s.selectedTripID = trips[0].ID
	}
	return nil
}

// CreateTrip creates a trip on the server, prepends it locally, and selects it.
func (s *TripStore) CreateTrip(ctx context.Context, payload TripPayload) (domain.Trip, error) {
	var created domain.Trip
	if err := s.client.do(ctx, http.MethodPost, "/api/trips", payload, &created); err != nil {
		return domain.Trip{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.trips = append([]domain.Trip{created}, s.trips...)
	s.selectedTripID = created.ID
	return created, nil
}

// UpdateTrip updates a trip on the server and merges the response into the
// local list.
func (s *TripStore) UpdateTrip(ctx context.Context, tripID string, payload TripPayload) (domain.Trip, error) {
	var updated domain.Trip
	if err := s.client.do(ctx, http.MethodPut, "/api/trips/"+tripID, payload, &updated); err != nil {
		return domain.Trip{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.trips {
		if t.ID == tripID {
			s.trips[i] = updated
			break
		}
	}
	return updated, nil
}

// DeleteTrip deletes a trip on the server, drops it and its cached
// activities locally, and moves the selection to the first remaining trip.
func (s *TripStore) DeleteTrip(ctx context.Context, tripID string) error {
	if err := s.client.do(ctx, http.MethodDelete, "/api/trips/"+tripID, nil, nil); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	remaining := s.trips[:0]
	for _, t := range s.trips {
		if t.ID != tripID {
			remaining = append(remaining, t)
		}
	}
	s.trips = remaining
	delete(s.activitiesByTrip, tripID)
	if s.selectedTripID == tripID {
		s.selectedTripID = ""
		if len(s.trips) > 0 {
			s.selectedTripID = s.trips[0].ID
		}
	}
	return nil
}

// FetchActivities replaces the locally mirrored activities of a trip.
func (s *TripStore) FetchActivities(ctx context.Context, tripID string) error {
	var activities []domain.Activity
	if err := s.client.do(ctx, http.MethodGet, "/api/trips/"+tripID+"/activities", nil, &activities); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.activitiesByTrip[tripID] = activities
	return nil
}

// CreateActivity creates an activity on the server and prepends it locally,
// matching the server's newest-first ordering.
func (s *TripStore) CreateActivity(ctx context.Context, tripID string, payload ActivityPayload) (domain.Activity, error) {
	var created domain.Activity
	if err := s.client.do(ctx, http.MethodPost, "/api/trips/"+tripID+"/activities", payload, &created); err != nil {
		return domain.Activity{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.activitiesByTrip[tripID] = append([]domain.Activity{created}, s.activitiesByTrip[tripID]...)
	return created, nil
}

// UpdateActivity updates an activity on the server and merges the response
// into the local list.
func (s *TripStore) UpdateActivity(ctx context.Context, tripID, activityID string, payload ActivityPayload) (domain.Activity, error) {
	var updated domain.Activity
	if err := s.client.do(ctx, http.MethodPut, "/api/trips/"+tripID+"/activities/"+activityID, payload, &updated); err != nil {
		return domain.Activity{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	cached := s.activitiesByTrip[tripID]
	for i, a := range cached {
		if a.ID == activityID {
			cached[i] = updated
			break
		}
	}
	return updated, nil
}

// DeleteActivity deletes an activity on the server and filters it locally.
func (s *TripStore) DeleteActivity(ctx context.Context, tripID, activityID string) error {
	if err := s.client.do(ctx, http.MethodDelete, "/api/trips/"+tripID+"/activities/"+activityID, nil, nil); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	cached := s.activitiesByTrip[tripID]
	remaining := cached[:0]
	for _, a := range cached {
		if a.ID != activityID {
			remaining = append(remaining, a)
		}
	}
	s.activitiesByTrip[tripID] = remaining
	return nil
}
