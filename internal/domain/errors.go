package domain

import "errors"

// Engine error taxonomy. Everything the engine rejects on purpose is one of
// these sentinels so the transport layer can translate them without parsing
// message strings. Infrastructure failures are wrapped database errors and
// surface generically.
var (
	ErrNotFound         = errors.New("record not found")
	ErrUnauthorized     = errors.New("not authorized to perform this operation")
	ErrInvalidDateRange = errors.New("invalid rental date range")

	// Availability conflicts are expected business outcomes.
	ErrCarUnavailable = errors.New("car is not available for the requested dates")

	// State machine guards.
	ErrRentalNotStarted     = errors.New("rental has not started yet")
	ErrRentalNotActive      = errors.New("rental has already been returned")
	ErrRentalStillActive    = errors.New("rental is still active")
	ErrCarHasActiveRental   = errors.New("car has an active rental")
	ErrMaintenanceNotOpen   = errors.New("maintenance record is already completed")
	ErrIllegalCarTransition = errors.New("illegal car status transition")

	// Referential integrity surfaced as a domain message.
	ErrRecordInUse = errors.New("record is in use by another record")
)
