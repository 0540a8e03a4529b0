package handler

import (
	"encoding/json"
	"math"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mpopescu/travel-planner/backend/internal/auth"
	"github.com/mpopescu/travel-planner/backend/internal/domain"
)

// activityRequest is the JSON body for activity create and update.
type activityRequest struct {
	Name  *string  `json:"name"`
	Place *string  `json:"place"`
	Price *float64 `json:"price"`
}

// toDomain maps the request body to a domain.Activity scoped to tripID.
// An absent price becomes NaN so the service rejects it like any
// non-finite number.
func (b activityRequest) toDomain(tripID string) domain.Activity {
	a := domain.Activity{TripID: tripID, Price: math.NaN()}
	if b.Name != nil {
		a.Name = *b.Name
	}
	if b.Place != nil {
		a.Place = *b.Place
	}
	if b.Price != nil {
		a.Price = *b.Price
	}
	return a
}

// ListActivities handles GET /api/trips/{tripID}/activities.
// Runs under optional auth; read access inherits the parent trip's
// visibility. Activities come back newest first.
func (s *Server) ListActivities(w http.ResponseWriter, r *http.Request) {
	tripID := chi.URLParam(r, "tripID")
	identity := auth.IdentityFromContext(r.Context())

	activities, err := s.activities.ListByTrip(r.Context(), identity, tripID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, activities)
}

// CreateActivity handles POST /api/trips/{tripID}/activities.
func (s *Server) CreateActivity(w http.ResponseWriter, r *http.Request) {
	var body activityRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	activity := body.toDomain(chi.URLParam(r, "tripID"))
	created, err := s.activities.Create(r.Context(), auth.IdentityFromContext(r.Context()), activity)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// UpdateActivity handles PUT /api/trips/{tripID}/activities/{activityID}.
// Price is a required field on update: an absent price is rejected rather
// than treated as zero.
func (s *Server) UpdateActivity(w http.ResponseWriter, r *http.Request) {
	var body activityRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}
	if body.Price == nil {
		badRequest(w, "price is required")
		return
	}

	activity := body.toDomain(chi.URLParam(r, "tripID"))
	activity.ID = chi.URLParam(r, "activityID")

	updated, err := s.activities.Update(r.Context(), auth.IdentityFromContext(r.Context()), activity)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// messageResponse is the body returned by activity delete.
type messageResponse struct {
	Message string `json:"message"`
}

// DeleteActivity handles DELETE /api/trips/{tripID}/activities/{activityID}.
// Unlike trip delete, this endpoint confirms with a 200 message body.
func (s *Server) DeleteActivity(w http.ResponseWriter, r *http.Request) {
	tripID := chi.URLParam(r, "tripID")
	id := chi.URLParam(r, "activityID")

	if err := s.activities.Delete(r.Context(), auth.IdentityFromContext(r.Context()), tripID, id); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "activity deleted"})
}
