// Package domain contains the core data types for the Travel Planner application.
// This package has zero external dependencies and is imported by every other
// internal package (repo, service, handler, policy).
package domain

import "time"

// Trip is the top-level planning record. It is owned by exactly one identity
// (CreatedBy) and contains zero or more Activities as children.
// The ID is assigned by the document store on creation.
type Trip struct {
	ID        string    `json:"id" firestore:"-"`
	Country   string    `json:"country" firestore:"country"`
	Date      string    `json:"date" firestore:"date"` // calendar date, YYYY-MM-DD
	Budget    float64   `json:"budget" firestore:"budget"`
	Public    bool      `json:"public" firestore:"public"` // false = visible to owner only
	CreatedBy string    `json:"createdBy" firestore:"createdBy"`
	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" firestore:"updatedAt"`
}
