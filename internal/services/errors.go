package services

import "errors"

var (
	// ErrMissingField is returned when a required input is empty or absent.
	ErrMissingField = errors.New("missing required field")
	// ErrInvalidField is returned when an input is present but unusable.
	ErrInvalidField = errors.New("invalid field")
	// ErrAlreadyExists is returned when registering an email that is taken.
	ErrAlreadyExists = errors.New("already exists")
	// ErrInvalidCredentials covers both an unknown email and a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUnauthorized is returned by Resolve for any token that does not verify.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotFound is returned when a looked-up record does not exist.
	ErrNotFound = errors.New("not found")
)
