// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios: a business
// trying to unlock a lead another business already owns is a different
// response than a business with an empty credit balance, even though both
// surface from the same Unlock call.
package repository

import "errors"

// ErrEmailExists is returned when registration hits the unique email
// constraint. Handlers should translate this into an HTTP 409 response.
var ErrEmailExists = errors.New("email already exists")

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own. Handlers should translate this into an
// HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when a mutation cannot proceed because of
// conflicting state. Handlers should translate this into an HTTP 409.
var ErrConflict = errors.New("conflict")

// ErrInsufficientCredits is returned when a business attempts to unlock
// a lead with a zero (or somehow negative) credit balance. The lead is
// left untouched. Handlers translate this into HTTP 402.
var ErrInsufficientCredits = errors.New("insufficient lead credits")

// ErrAlreadyUnlocked is returned when a lead has already been unlocked
// by a different business. Unlocks are monotonic: the first business to
// spend a credit owns the lead permanently. Handlers translate this
// into HTTP 409.
var ErrAlreadyUnlocked = errors.New("lead already unlocked by another business")
