package tetris

import "errors"

var (
	// ErrInvalidConfig is returned by NewSession for unusable settings.
	ErrInvalidConfig = errors.New("tetris: invalid configuration")

	// ErrInvariantViolation marks a programming defect, such as committing a
	// piece that overlaps the stack. It is never returned for rejected moves.
	ErrInvariantViolation = errors.New("tetris: invariant violation")
)
