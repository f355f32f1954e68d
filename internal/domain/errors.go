package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by services and repositories. Transport maps each to a
// static response; anything else is treated as a store failure.
var (
	// ErrNotFound is returned when the referenced event, attendee or user does not exist.
	ErrNotFound = errors.New("not found")
	// ErrForbidden is returned when the caller does not own the resource it is mutating.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidInput is returned when the request is invalid (bad answer, password mismatch, etc.).
	ErrInvalidInput = errors.New("invalid input")
	// ErrDuplicateUser is returned on sign-up when the username or email is taken.
	ErrDuplicateUser = fmt.Errorf("%w: username or email is already taken", ErrInvalidInput)
	// ErrInvalidCredentials is returned when login fails.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
