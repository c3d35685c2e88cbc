package store

import "errors"

var (
	// ErrUserNotFound is returned when a user cannot be found by ID or email.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserExists is returned when creating a user whose ID is taken.
	ErrUserExists = errors.New("user already exists")
	// ErrEmailExists is returned when an email is already in use.
	ErrEmailExists = errors.New("email already in use")
	// ErrInvalidEntryID is returned for non-positive entry ids.
	ErrInvalidEntryID = errors.New("invalid entry id")
)
