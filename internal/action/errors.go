package action

import "errors"

// Action errors.
var (
	// ErrNoKeyCombinations indicates a simple action without any key
	// combination to inject.
	ErrNoKeyCombinations = errors.New("simple action has no key combinations")

	// ErrInvalidDelay indicates a negative repeat delay.
	ErrInvalidDelay = errors.New("repeat delay must not be negative")

	// ErrInvalidKey indicates a key combination whose key code is unknown.
	ErrInvalidKey = errors.New("invalid key code")
)
