// Package action implements the leaf actions of a handler tree.
//
// An action is what a control does once every shift level has been
// resolved. Each action emits its own Lua fragment against the daemon's
// scripting surface and reports whether that fragment starts a background
// effect which must be cancelled when the control is released.
package action

import (
	"fmt"
	"strings"
)

// Kind identifies the type of an action.
type Kind uint8

const (
	// KindSimple injects one or more key combinations.
	KindSimple Kind = iota + 1
	// KindMouseMove moves the pointer or wheel continuously.
	KindMouseMove
)

// String returns the name used for the kind in profile documents.
func (k Kind) String() string {
	switch k {
	case KindSimple:
		return "simple"
	case KindMouseMove:
		return "mouseMove"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// KindFromName returns the kind for a profile document name.
func KindFromName(name string) (Kind, bool) {
	switch name {
	case "simple":
		return KindSimple, true
	case "mouseMove":
		return KindMouseMove, true
	default:
		return 0, false
	}
}

// Action is a leaf of a handler tree.
type Action interface {
	// Kind returns the type of the action.
	Kind() Kind

	// LuaCode returns the lines of the action's script fragment, without
	// indentation relative to the enclosing block.
	LuaCode() []string

	// NeedsCancelOnRelease returns true if the fragment keeps running
	// after the control event has been handled.
	NeedsCancelOnRelease() bool
}

// Indent prefixes every line with the given indentation.
func Indent(lines []string, indent string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		if line == "" {
			out[i] = line
			continue
		}
		out[i] = indent + line
	}
	return out
}

// Describe returns a one-line description of an action.
func Describe(a Action) string {
	if s, ok := a.(fmt.Stringer); ok {
		return s.String()
	}
	return a.Kind().String()
}

func joinNonEmpty(parts ...string) string {
	var b strings.Builder
	for _, p := range parts {
		if p == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(p)
	}
	return b.String()
}
