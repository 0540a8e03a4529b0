package handler

import (
	"encoding/json"
	"math"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mpopescu/travel-planner/backend/internal/auth"
	"github.com/mpopescu/travel-planner/backend/internal/domain"
)

// tripRequest is the JSON body for trip create and update.
// Pointer fields distinguish "absent" from zero values: a missing budget is
// a validation failure, a budget of 0 is valid.
type tripRequest struct {
	Country *string  `json:"country"`
	Date    *string  `json:"date"`
	Budget  *float64 `json:"budget"`
	Public  *bool    `json:"public"`
}

// toDomain maps the request body to a domain.Trip. Absent strings become
// empty (rejected as required by the service); an absent budget becomes NaN
// so it fails the finite-number check with the same message a malformed
// number would. Absent public defaults to private.
func (b tripRequest) toDomain() domain.Trip {
	t := domain.Trip{Budget: math.NaN()}
	if b.Country != nil {
		t.Country = *b.Country
	}
	if b.Date != nil {
		t.Date = *b.Date
	}
	if b.Budget != nil {
		t.Budget = *b.Budget
	}
	if b.Public != nil {
		t.Public = *b.Public
	}
	return t
}

// ListTrips handles GET /api/trips.
// Runs under optional auth: authenticated callers get their own trips,
// anonymous callers get the public ones. The service does the filtering.
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	identity := auth.IdentityFromContext(r.Context())

	trips, err := s.trips.List(r.Context(), identity)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, trips)
}

// CreateTrip handles POST /api/trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var body tripRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	created, err := s.trips.Create(r.Context(), auth.IdentityFromContext(r.Context()), body.toDomain())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// UpdateTrip handles PUT /api/trips/{tripID}.
// PUT carries the full mutable field set (country, date, budget, public);
// owner and creation timestamp are never touched.
func (s *Server) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	var body tripRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	trip := body.toDomain()
	trip.ID = chi.URLParam(r, "tripID")

	updated, err := s.trips.Update(r.Context(), auth.IdentityFromContext(r.Context()), trip)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DeleteTrip handles DELETE /api/trips/{tripID}.
// Cascades to the trip's activities; responds 204 with no body.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "tripID")

	if err := s.trips.Delete(r.Context(), auth.IdentityFromContext(r.Context()), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
