package contract

import "errors"

var (
	// ErrValidation marks caller-contract violations, the only error class
	// the engine surfaces to its host.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound is returned by directory implementations when no pharmacy
	// matches the caller.
	ErrNotFound = errors.New("pharmacy not found")

	// ErrDirectoryUnavailable wraps directory transport failures. The engine
	// recovers from it locally and proceeds as a new lead.
	ErrDirectoryUnavailable = errors.New("directory unavailable")

	// ErrSessionNotActive is returned when a message arrives for a session
	// that was never started or is already completed.
	ErrSessionNotActive = errors.New("session is not active")
)
