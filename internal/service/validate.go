package service

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/mpopescu/travel-planner/backend/internal/domain"
)

// validateTrip enforces field rules common to trip Create and Update.
//   - Country must be a non-empty string after trimming.
//   - Date must be a strict YYYY-MM-DD calendar date (see validateCalendarDate).
//   - Budget must be a finite number >= 0.
func validateTrip(trip domain.Trip) error {
	if strings.TrimSpace(trip.Country) == "" {
		return fmt.Errorf("%w: country is required", domain.ErrValidation)
	}
	if err := validateCalendarDate(strings.TrimSpace(trip.Date)); err != nil {
		return err
	}
	if math.IsNaN(trip.Budget) || math.IsInf(trip.Budget, 0) || trip.Budget < 0 {
		return fmt.Errorf("%w: budget must be a number >= 0", domain.ErrValidation)
	}
	return nil
}

// validateActivity enforces field rules common to activity Create and Update.
//   - Name and Place must be non-empty strings after trimming.
//   - Price must be a finite number >= 0.
func validateActivity(activity domain.Activity) error {
	if strings.TrimSpace(activity.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if strings.TrimSpace(activity.Place) == "" {
		return fmt.Errorf("%w: place is required", domain.ErrValidation)
	}
	if math.IsNaN(activity.Price) || math.IsInf(activity.Price, 0) || activity.Price < 0 {
		return fmt.Errorf("%w: price must be a number >= 0", domain.ErrValidation)
	}
	return nil
}

// validateCalendarDate checks a strict YYYY-MM-DD calendar date:
// four-digit year no earlier than the current year, month 01-12, and a day
// valid for that month (leap years included).
func validateCalendarDate(date string) error {
	if len(date) != 10 || date[4] != '-' || date[7] != '-' {
		return fmt.Errorf("%w: date must be YYYY-MM-DD", domain.ErrValidation)
	}
	// Sscanf would tolerate sign characters inside the numeric fields, so
	// every non-dash position must be an ASCII digit.
	for i, c := range date {
		if i == 4 || i == 7 {
			continue
		}
		if c < '0' || c > '9' {
			return fmt.Errorf("%w: date must be YYYY-MM-DD", domain.ErrValidation)
		}
	}
	var year, month, day int
	if _, err := fmt.Sscanf(date, "%4d-%2d-%2d", &year, &month, &day); err != nil {
		return fmt.Errorf("%w: date must be YYYY-MM-DD", domain.ErrValidation)
	}

	currentYear := time.Now().Year()
	if year < currentYear {
		return fmt.Errorf("%w: year must be >= %d", domain.ErrValidation, currentYear)
	}
	if month < 1 || month > 12 {
		return fmt.Errorf("%w: month must be between 01 and 12", domain.ErrValidation)
	}
	// Day zero of the next month is the last day of this month.
	daysInMonth := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
	if day < 1 || day > daysInMonth {
		return fmt.Errorf("%w: invalid day for month", domain.ErrValidation)
	}
	return nil
}
