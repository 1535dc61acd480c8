package app

import "errors"

var (
	// ErrNoSelection is returned when an operation needs a selected address book.
	ErrNoSelection = errors.New("no address book selected")

	// ErrMissingBinding is returned when a controller is built without one of
	// its collaborators.
	ErrMissingBinding = errors.New("missing binding")

	// ErrMissingCredential is returned when no refresh token is stored for a username.
	ErrMissingCredential = errors.New("missing credential")
)
