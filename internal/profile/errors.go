package profile

import "errors"

// Profile errors.
var (
	// ErrShiftLevelsFixed indicates a shift level added after a key profile.
	ErrShiftLevelsFixed = errors.New("shift levels must precede key profiles")

	// ErrDuplicateKey indicates a second profile for the same key.
	ErrDuplicateKey = errors.New("a profile for the key is already defined")
)
