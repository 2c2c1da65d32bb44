// Package shift implements the modal dimensions of a profile.
//
// A shift control is an input whose value selects a mode, a shift state is
// a set of shift-control value constraints, and a shift level is an ordered
// set of distinct shift states. Levels are ordered within a profile and
// earlier levels partition the handler tree first.
package shift

import (
	"cmp"
	"fmt"

	"github.com/dshills/joyprog/internal/input/key"
)

// ControlType is the variant tag of a Control.
type ControlType uint8

const (
	// TypeKey is a key or button control with expected value 0 or 1.
	TypeKey ControlType = iota + 1
)

// String returns the name of the control type.
func (t ControlType) String() string {
	switch t {
	case TypeKey:
		return "key"
	default:
		return fmt.Sprintf("ControlType(%d)", t)
	}
}

// Control is a shift control: a constraint on the value of one input.
type Control struct {
	Type  ControlType
	Code  key.Code
	Value int
}

// KeyControl returns a key shift control expecting the given value.
func KeyControl(code key.Code, value int) Control {
	return Control{Type: TypeKey, Code: code, Value: value}
}

// IsDefault returns true if the control expects the default (zero) value.
func (c Control) IsDefault() bool {
	return c.Value == 0
}

// Conflicts returns true if c and other constrain the same input to
// different values.
func (c Control) Conflicts(other Control) bool {
	return c.Type == other.Type && c.Code == other.Code && c.Value != other.Value
}

// String returns a description like "KEY_LEFTSHIFT=1".
func (c Control) String() string {
	return fmt.Sprintf("%s=%d", c.Code, c.Value)
}

// CompareControls is the total order over controls: by type, then code,
// then value.
func CompareControls(a, b Control) int {
	if x := cmp.Compare(a.Type, b.Type); x != 0 {
		return x
	}
	if x := cmp.Compare(a.Code, b.Code); x != 0 {
		return x
	}
	return cmp.Compare(a.Value, b.Value)
}
