package domain

import "errors"

// ErrNotFound is returned by store and service functions when the requested
// resource does not exist (unknown id, unknown invite code, missing invitation).
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing required field, end date before start date).
var ErrValidation = errors.New("validation error")

// ErrConflict is returned when an operation would violate a uniqueness or
// exclusivity rule: an email already registered, a user already a trip
// member, or two trips with overlapping date ranges. The wrapped message
// carries the conflicting detail (e.g. the other trip's name) for display.
var ErrConflict = errors.New("conflict")

// ErrUnauthorized is returned when the acting user is not allowed to perform
// the operation: accepting someone else's invitation, removing a member
// without being the trip admin, or an admin trying to leave their own trip.
var ErrUnauthorized = errors.New("not authorized")

// ErrInvalidCredentials is the single error returned for any failed login.
// It deliberately does not distinguish "no such user" from "wrong password".
var ErrInvalidCredentials = errors.New("invalid email or password")
