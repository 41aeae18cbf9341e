package common

import "errors"

var (
	// ErrInvalidArgument is returned when a caller supplies a value that would produce a
	// degenerate transform, such as a non-positive radius or near plane.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidState is returned when an operation is attempted from a state that should be
	// unreachable, such as an unknown camera interaction.
	ErrInvalidState = errors.New("invalid state")
)
