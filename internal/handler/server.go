// Package handler implements the HTTP handlers for the Travel Planner API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (health.go, trip.go, activity.go) but all share the same Server
// struct so they can access its dependencies.
package handler

import (
	"context"

	"github.com/go-chi/chi/v5"

	"github.com/mpopescu/travel-planner/backend/internal/auth"
	"github.com/mpopescu/travel-planner/backend/internal/domain"
)

// TripServicer defines the business operations the trip handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the store or service layer.
type TripServicer interface {
	List(ctx context.Context, identity domain.Identity) ([]domain.Trip, error)
	Create(ctx context.Context, identity domain.Identity, trip domain.Trip) (domain.Trip, error)
	Update(ctx context.Context, identity domain.Identity, trip domain.Trip) (domain.Trip, error)
	Delete(ctx context.Context, identity domain.Identity, id string) error
}

// ActivityServicer defines the business operations the activity handlers
// depend on.
type ActivityServicer interface {
	ListByTrip(ctx context.Context, identity domain.Identity, tripID string) ([]domain.Activity, error)
	Create(ctx context.Context, identity domain.Identity, activity domain.Activity) (domain.Activity, error)
	Update(ctx context.Context, identity domain.Identity, activity domain.Activity) (domain.Activity, error)
	Delete(ctx context.Context, identity domain.Identity, tripID, id string) error
}

// Server holds the handler dependencies for all API endpoints.
type Server struct {
	trips      TripServicer
	activities ActivityServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(trips TripServicer, activities ActivityServicer) *Server {
	return &Server{trips: trips, activities: activities}
}

// Routes builds the API router. Write endpoints sit behind the mandatory
// auth gate; list endpoints behind the optional one, so anonymous callers
// reach the handlers with the anonymous identity bound.
func (s *Server) Routes(verifier auth.TokenVerifier) chi.Router {
	r := chi.NewRouter()

	r.Get("/health", s.GetHealth)

	r.Route("/api/trips", func(r chi.Router) {
		r.With(auth.OptionalAuth(verifier)).Get("/", s.ListTrips)
		r.With(auth.RequireAuth(verifier)).Post("/", s.CreateTrip)

		r.Route("/{tripID}", func(r chi.Router) {
			r.With(auth.RequireAuth(verifier)).Put("/", s.UpdateTrip)
			r.With(auth.RequireAuth(verifier)).Delete("/", s.DeleteTrip)

			r.Route("/activities", func(r chi.Router) {
				r.With(auth.OptionalAuth(verifier)).Get("/", s.ListActivities)
				r.With(auth.RequireAuth(verifier)).Post("/", s.CreateActivity)
				r.With(auth.RequireAuth(verifier)).Put("/{activityID}", s.UpdateActivity)
				r.With(auth.RequireAuth(verifier)).Delete("/{activityID}", s.DeleteActivity)
			})
		})
	})

	return r
}
