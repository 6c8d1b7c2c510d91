package scrim

import "errors"

var (
	// ErrValidation wraps every rejected request. Nothing has been written when it is returned.
	ErrValidation      = errors.New("invalid match")
	ErrMatchNotFound   = errors.New("match not found")
	ErrMatchNotCreated = errors.New("failed to create match")
)
