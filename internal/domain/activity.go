package domain

import "time"

// Activity is a planned item nested under exactly one Trip.
// Activities carry no owner of their own: authorization is always decided
// against the parent trip, and read access inherits the trip's visibility.
type Activity struct {
	ID        string    `json:"id" firestore:"-"`
	TripID    string    `json:"-" firestore:"-"` // parent document path component, not a stored field
	Name      string    `json:"name" firestore:"name"`
	Place     string    `json:"place" firestore:"place"`
	Price     float64   `json:"price" firestore:"price"`
	CreatedBy string    `json:"createdBy" firestore:"createdBy"`
	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" firestore:"updatedAt"`
}
