package parser

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Attrs holds the attributes of a start tag by local name.
type Attrs map[string]string

// Get returns the value of an attribute.
func (a Attrs) Get(name string) (string, bool) {
	v, ok := a[name]
	return v, ok
}

// ParseInt parses an integer attribute value: "0x" followed by hex
// digits, "0" followed by octal digits, or a decimal number.
func ParseInt(s string) (int, error) {
	var (
		v   int64
		err error
	)
	switch {
	case strings.HasPrefix(s, "0x"):
		v, err = strconv.ParseInt(s[2:], 16, 0)
	case strings.HasPrefix(s, "0") && len(s) > 1:
		v, err = strconv.ParseInt(s[1:], 8, 0)
	default:
		v, err = strconv.ParseInt(s, 10, 0)
	}
	if err != nil {
		return 0, fmt.Errorf("%q is not an integer", s)
	}
	return int(v), nil
}

// ParseHex parses a 16-bit hexadecimal attribute value with an optional
// "0x" prefix.
func ParseHex(s string) (uint16, error) {
	digits := strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	v, err := strconv.ParseUint(digits, 16, 16)
	if err != nil {
		return 0, fmt.Errorf("%q is not a 16-bit hexadecimal number", s)
	}
	return uint16(v), nil
}

// ParseBool parses a boolean attribute value: yes, true, no or false in
// any case.
func ParseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true":
		return true, nil
	case "no", "false":
		return false, nil
	default:
		return false, fmt.Errorf("%q is not a boolean", s)
	}
}

// ParseFloat parses a finite floating-point attribute value.
func ParseFloat(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, fmt.Errorf("%q is not a floating-point number", s)
	}
	return v, nil
}
