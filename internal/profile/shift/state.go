package shift

import (
	"slices"
	"strings"
)

// State is a shift state: a set of controls kept sorted by CompareControls.
//
// An empty state stands for "no other state of the level": it is equal to
// any state whose controls all expect their default value.
type State struct {
	controls []Control
}

// NewState returns a shift state holding the given controls.
func NewState(controls ...Control) *State {
	s := &State{}
	for _, c := range controls {
		s.Add(c)
	}
	return s
}

// Add inserts a control, keeping the list sorted.
func (s *State) Add(c Control) {
	i, _ := slices.BinarySearchFunc(s.controls, c, CompareControls)
	s.controls = slices.Insert(s.controls, i, c)
}

// Controls returns the sorted controls. The slice must not be modified.
func (s *State) Controls() []Control {
	return s.controls
}

// NumControls returns the number of controls.
func (s *State) NumControls() int {
	return len(s.controls)
}

// IsEmpty returns true if the state has no controls.
func (s *State) IsEmpty() bool {
	return len(s.controls) == 0
}

// AllDefault returns true if every control expects its default value.
// It is true for the empty state.
func (s *State) AllDefault() bool {
	for _, c := range s.controls {
		if !c.IsDefault() {
			return false
		}
	}
	return true
}

// Valid returns true if no two controls of the state conflict.
func (s *State) Valid() bool {
	for i := 0; i < len(s.controls)-1; i++ {
		for j := i + 1; j < len(s.controls); j++ {
			if s.controls[i].Conflicts(s.controls[j]) {
				return false
			}
		}
	}
	return true
}

// String returns a description like "{KEY_A=1, BTN_PINKIE=0}".
func (s *State) String() string {
	parts := make([]string, len(s.controls))
	for i, c := range s.controls {
		parts[i] = c.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Compare orders two states.
//
// Two non-empty states compare by the number of controls, then by their
// sorted controls. An empty state compares equal to a state whose controls
// all expect their default value and less than any other state. The
// resulting equality is not transitive: {} equals {A=0} and {B=0}, which
// differ from each other.
func Compare(a, b *State) int {
	switch {
	case !a.IsEmpty() && !b.IsEmpty():
		if len(a.controls) != len(b.controls) {
			if len(a.controls) < len(b.controls) {
				return -1
			}
			return 1
		}
		return slices.CompareFunc(a.controls, b.controls, CompareControls)
	case a.IsEmpty():
		if b.AllDefault() {
			return 0
		}
		return -1
	default:
		return -Compare(b, a)
	}
}

// Equal returns true if Compare(a, b) == 0.
func Equal(a, b *State) bool {
	return Compare(a, b) == 0
}
