package domain

import "errors"

var (
	// ErrInvalidArgument marks malformed input: non-finite or out-of-range
	// coordinates, negative radii, unknown levels, routes with fewer than
	// two points. Wrap it with context; test with errors.Is.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidCredentials is returned when an email/password pair does not match.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrNotFound is returned when a lookup or update matches nothing.
	ErrNotFound = errors.New("not found")

	// ErrEmailExists is returned when registering an email already in use.
	ErrEmailExists = errors.New("email already exists")

	// ErrBelowThreshold marks a flood report whose level is too low to alert on.
	ErrBelowThreshold = errors.New("report below alert threshold")
)
