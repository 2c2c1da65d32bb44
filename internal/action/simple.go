package action

import (
	"fmt"
	"strings"

	"github.com/dshills/joyprog/internal/daemon"
	"github.com/dshills/joyprog/internal/input/key"
)

// KeyCombination is a key pressed together with a set of modifiers.
type KeyCombination struct {
	Code      key.Code
	Modifiers key.Modifier
}

// String returns a description like "LeftShift+KEY_A".
func (kc KeyCombination) String() string {
	if kc.Modifiers.IsEmpty() {
		return kc.Code.String()
	}
	return kc.Modifiers.String() + "+" + kc.Code.String()
}

// luaCode presses the modifiers, taps the key and releases the modifiers
// in reverse order.
func (kc KeyCombination) luaCode() []string {
	mods := kc.Modifiers.Codes()
	lines := make([]string, 0, 2*len(mods)+2)
	for _, code := range mods {
		lines = append(lines, fmt.Sprintf("%s(%d)", daemon.FnPressKey, code))
	}
	lines = append(lines,
		fmt.Sprintf("%s(%d)", daemon.FnPressKey, kc.Code),
		fmt.Sprintf("%s(%d)", daemon.FnReleaseKey, kc.Code))
	for i := len(mods) - 1; i >= 0; i-- {
		lines = append(lines, fmt.Sprintf("%s(%d)", daemon.FnReleaseKey, mods[i]))
	}
	return lines
}

// Simple is an action that injects a sequence of key combinations once, or
// repeatedly while the control is held if a repeat delay is set.
type Simple struct {
	// RepeatDelay is the delay in milliseconds between repetitions.
	// Zero means the combinations are injected only once.
	RepeatDelay int

	combinations []KeyCombination
}

// NewSimple creates a simple action.
func NewSimple(repeatDelay int) *Simple {
	return &Simple{RepeatDelay: repeatDelay}
}

// Kind implements Action.
func (s *Simple) Kind() Kind {
	return KindSimple
}

// AddKeyCombination appends a key combination.
func (s *Simple) AddKeyCombination(code key.Code, mods key.Modifier) {
	s.combinations = append(s.combinations, KeyCombination{Code: code, Modifiers: mods})
}

// KeyCombinations returns the key combinations in order.
func (s *Simple) KeyCombinations() []KeyCombination {
	return s.combinations
}

// Repeats returns true if the combinations are repeated while held.
func (s *Simple) Repeats() bool {
	return s.RepeatDelay > 0
}

// Validate checks that the action can be compiled.
func (s *Simple) Validate() error {
	if s.RepeatDelay < 0 {
		return ErrInvalidDelay
	}
	if len(s.combinations) == 0 {
		return ErrNoKeyCombinations
	}
	for _, kc := range s.combinations {
		if !kc.Code.IsValid() {
			return fmt.Errorf("%w: %d", ErrInvalidKey, kc.Code)
		}
	}
	return nil
}

// LuaCode implements Action.
func (s *Simple) LuaCode() []string {
	var body []string
	for _, kc := range s.combinations {
		body = append(body, kc.luaCode()...)
	}
	if !s.Repeats() {
		return body
	}

	lines := make([]string, 0, len(body)+3)
	lines = append(lines, "while true do")
	lines = append(lines, Indent(body, "  ")...)
	lines = append(lines, fmt.Sprintf("  %s(%d)", daemon.FnDelay, s.RepeatDelay))
	lines = append(lines, "end")
	return lines
}

// NeedsCancelOnRelease implements Action. Only a repeating action keeps
// running after the press has been handled.
func (s *Simple) NeedsCancelOnRelease() bool {
	return s.Repeats()
}

// String returns a description like "simple KEY_A, LeftShift+KEY_B every 100ms".
func (s *Simple) String() string {
	parts := make([]string, len(s.combinations))
	for i, kc := range s.combinations {
		parts[i] = kc.String()
	}
	repeat := ""
	if s.Repeats() {
		repeat = fmt.Sprintf("every %dms", s.RepeatDelay)
	}
	return joinNonEmpty(KindSimple.String(), strings.Join(parts, ", "), repeat)
}
