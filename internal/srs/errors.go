package srs

import "errors"

var (
	// ErrInvalidOutcome reports a malformed review outcome.
	ErrInvalidOutcome = errors.New("srs: invalid outcome")
	// ErrInvalidState reports a chunk state that cannot be scheduled.
	ErrInvalidState = errors.New("srs: invalid chunk state")
)
