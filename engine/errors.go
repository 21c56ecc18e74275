package engine

import "errors"

// Programmer-error class failures. These fail loudly at the call site and are
// never coerced into a silent drop.
var (
	// ErrInvalidAmount is returned for a zero or negative award amount
	ErrInvalidAmount = errors.New("engine: award amount must be positive")

	// ErrUnknownCategory is returned when no milestone ladder is configured
	// for the requested activity category
	ErrUnknownCategory = errors.New("engine: no milestone ladder configured for category")

	// ErrUnknownStreakType is returned when no streak ladder is configured
	// for the requested streak type
	ErrUnknownStreakType = errors.New("engine: no streak ladder configured for type")
)
