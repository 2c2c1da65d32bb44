package action

import (
	"fmt"
	"strconv"

	"github.com/dshills/joyprog/internal/daemon"
)

// DefaultMouseMoveDelay is the delay in milliseconds between two steps of
// a mouse movement when the profile does not set one.
const DefaultMouseMoveDelay = 20

// Direction is the axis a mouse movement acts on.
type Direction uint8

const (
	// DirectionHorizontal moves the pointer along the X axis.
	DirectionHorizontal Direction = iota + 1
	// DirectionVertical moves the pointer along the Y axis.
	DirectionVertical
	// DirectionWheel turns the scroll wheel.
	DirectionWheel
)

// String returns the name used for the direction in profile documents.
func (d Direction) String() string {
	switch d {
	case DirectionHorizontal:
		return "horizontal"
	case DirectionVertical:
		return "vertical"
	case DirectionWheel:
		return "wheel"
	default:
		return fmt.Sprintf("Direction(%d)", d)
	}
}

// Axis returns the relative axis code of the direction.
func (d Direction) Axis() int {
	switch d {
	case DirectionVertical:
		return daemon.RelY
	case DirectionWheel:
		return daemon.RelWheel
	default:
		return daemon.RelX
	}
}

// DirectionFromName returns the direction for a profile document name.
func DirectionFromName(name string) (Direction, bool) {
	switch name {
	case "horizontal":
		return DirectionHorizontal, true
	case "vertical":
		return DirectionVertical, true
	case "wheel":
		return DirectionWheel, true
	default:
		return 0, false
	}
}

// MouseMove moves along one axis while the control is held. The distance
// moved at step n is a + b*n + c*n*n, rounded down.
type MouseMove struct {
	Direction   Direction
	A, B, C     float64
	RepeatDelay int
}

// NewMouseMove creates a mouse movement. A non-positive repeatDelay
// selects DefaultMouseMoveDelay.
func NewMouseMove(dir Direction, a, b, c float64, repeatDelay int) *MouseMove {
	if repeatDelay <= 0 {
		repeatDelay = DefaultMouseMoveDelay
	}
	return &MouseMove{Direction: dir, A: a, B: b, C: c, RepeatDelay: repeatDelay}
}

// Kind implements Action.
func (m *MouseMove) Kind() Kind {
	return KindMouseMove
}

// LuaCode implements Action.
func (m *MouseMove) LuaCode() []string {
	return []string{
		"local _jsprog_step = 0",
		"while true do",
		fmt.Sprintf("  %s(%d, math.floor(%s + %s*_jsprog_step + %s*_jsprog_step*_jsprog_step))",
			daemon.FnMoveRel, m.Direction.Axis(),
			FormatFloat(m.A), FormatFloat(m.B), FormatFloat(m.C)),
		fmt.Sprintf("  %s(%d)", daemon.FnDelay, m.RepeatDelay),
		"  _jsprog_step = _jsprog_step + 1",
		"end",
	}
}

// NeedsCancelOnRelease implements Action. A movement runs until the
// control is released.
func (m *MouseMove) NeedsCancelOnRelease() bool {
	return true
}

// String returns a description like "mouseMove horizontal a=1 b=0.5 c=0 every 20ms".
func (m *MouseMove) String() string {
	return fmt.Sprintf("%s %s a=%s b=%s c=%s every %dms",
		KindMouseMove, m.Direction,
		FormatFloat(m.A), FormatFloat(m.B), FormatFloat(m.C), m.RepeatDelay)
}

// FormatFloat formats a coefficient in its shortest exact form.
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
