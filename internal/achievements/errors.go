package achievements

import "errors"

var (
	// ErrNotFound is returned for lookups of unknown achievement keys.
	ErrNotFound = errors.New("achievement not found")

	// ErrInvalidSnapshot is returned when progress input is malformed
	// (negative counts). The engine rejects rather than clamps.
	ErrInvalidSnapshot = errors.New("invalid progress snapshot")
)
