package models

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound marks lookups of rooms, bookings, users or reviews that
	// reference no existing row.
	ErrNotFound = errors.New("not found")

	// ErrForbidden marks operations attempted by a user who does not own
	// the target record.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidState marks operations that are illegal for the booking's
	// current status.
	ErrInvalidState = errors.New("invalid state")

	// ErrInvalidPeriod marks class period numbers outside 1..8.
	ErrInvalidPeriod = errors.New("invalid class period")
)

// ConflictError reports a slot that was already taken when a booking was
// requested. Nothing is written when it is returned.
type ConflictError struct {
	RoomNumber string
	Date       string
	TimeRange  string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("Room %s is already booked on %s at %s", e.RoomNumber, e.Date, e.TimeRange)
}
