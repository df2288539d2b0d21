package usecase

import "errors"

var (
	// ErrEventNotFound is returned when a referenced event does not exist.
	ErrEventNotFound = errors.New("event not found")
	// ErrBookingNotFound is returned when a booking does not exist or
	// does not belong to the requesting user.
	ErrBookingNotFound = errors.New("booking not found")
	// ErrNotPending is returned for a status transition attempted on a
	// booking that is no longer pending.
	ErrNotPending = errors.New("booking is not pending")
)
