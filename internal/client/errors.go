package client

import "errors"

var (
	// ErrUnknownCommand is returned when the first argument does not match
	// any known subcommand.
	ErrUnknownCommand = errors.New("unknown command")

	// ErrUsage is returned when a subcommand is invoked with the wrong
	// number of arguments.
	ErrUsage = errors.New("usage error")

	// ErrNotLoggedIn is returned when an authenticated command runs without
	// a stored session token.
	ErrNotLoggedIn = errors.New("not logged in: run login first")
)
