package key

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Parse errors
var (
	ErrEmptySpec   = errors.New("empty key specification")
	ErrInvalidSpec = errors.New("invalid key specification")
	ErrOutOfRange  = errors.New("key code out of range")
)

// Parse parses a key specification into a Code.
//
// Supported formats:
//   - evdev names: "KEY_A", "key_a", "BTN_TRIGGER", "BTN_SOUTH"
//   - short key names: "A", "F1", "LeftShift" (KEY_ prefix implied)
//   - numbers: "30", "0x1e"
func Parse(spec string) (Code, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return 0, ErrEmptySpec
	}

	if code, ok := FromName(spec); ok {
		return code, nil
	}

	upper := strings.ToUpper(spec)
	if !strings.HasPrefix(upper, "KEY_") && !strings.HasPrefix(upper, "BTN_") {
		if code, ok := FromName("KEY_" + upper); ok {
			return code, nil
		}
	}

	if spec[0] >= '0' && spec[0] <= '9' {
		n, err := strconv.ParseUint(spec, 0, 16)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidSpec, spec)
		}
		code := Code(n)
		if !code.IsValid() {
			return 0, fmt.Errorf("%w: %d", ErrOutOfRange, n)
		}
		return code, nil
	}

	return 0, fmt.Errorf("%w: unknown key %q", ErrInvalidSpec, spec)
}

// MustParse parses a key specification and panics on error.
// Use only for known-valid specs in initialization code.
func MustParse(spec string) Code {
	code, err := Parse(spec)
	if err != nil {
		panic("invalid key specification: " + spec + ": " + err.Error())
	}
	return code
}
