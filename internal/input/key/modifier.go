package key

import "strings"

// Modifier is a set of keyboard modifier keys held down around a key
// press. Left and right variants are distinct since they are distinct
// evdev codes.
type Modifier uint8

const (
	// ModNone indicates no modifiers.
	ModNone Modifier = 0

	// ModLeftShift indicates the left Shift key.
	ModLeftShift Modifier = 1 << (iota - 1)

	// ModRightShift indicates the right Shift key.
	ModRightShift

	// ModLeftCtrl indicates the left Control key.
	ModLeftCtrl

	// ModRightCtrl indicates the right Control key.
	ModRightCtrl

	// ModLeftAlt indicates the left Alt key.
	ModLeftAlt

	// ModRightAlt indicates the right Alt key (AltGr).
	ModRightAlt
)

// modifierOrder is the press order of modifiers. Releases happen in reverse.
var modifierOrder = []struct {
	mod  Modifier
	code Code
	attr string
}{
	{ModLeftShift, KeyLeftShift, "leftShift"},
	{ModRightShift, KeyRightShift, "rightShift"},
	{ModLeftCtrl, KeyLeftCtrl, "leftControl"},
	{ModRightCtrl, KeyRightCtrl, "rightControl"},
	{ModLeftAlt, KeyLeftAlt, "leftAlt"},
	{ModRightAlt, KeyRightAlt, "rightAlt"},
}

// Has returns true if m contains the specified modifier.
func (m Modifier) Has(mod Modifier) bool {
	return m&mod != 0
}

// With returns a new Modifier with the specified modifier added.
func (m Modifier) With(mod Modifier) Modifier {
	return m | mod
}

// Without returns a new Modifier with the specified modifier removed.
func (m Modifier) Without(mod Modifier) Modifier {
	return m &^ mod
}

// IsEmpty returns true if no modifiers are set.
func (m Modifier) IsEmpty() bool {
	return m == ModNone
}

// Codes returns the key codes of the modifiers in press order.
func (m Modifier) Codes() []Code {
	var codes []Code
	for _, o := range modifierOrder {
		if m.Has(o.mod) {
			codes = append(codes, o.code)
		}
	}
	return codes
}

// String returns a human-readable representation like "LeftShift+RightAlt".
func (m Modifier) String() string {
	if m == ModNone {
		return ""
	}

	var parts []string
	for _, o := range modifierOrder {
		if m.Has(o.mod) {
			parts = append(parts, strings.ToUpper(o.attr[:1])+o.attr[1:])
		}
	}
	return strings.Join(parts, "+")
}

// Modifiers returns every single modifier in press order.
func Modifiers() []Modifier {
	mods := make([]Modifier, len(modifierOrder))
	for i, o := range modifierOrder {
		mods[i] = o.mod
	}
	return mods
}

// AttrName returns the profile attribute name of a single modifier,
// such as "leftShift". It returns the empty string for combined or empty
// sets.
func (m Modifier) AttrName() string {
	for _, o := range modifierOrder {
		if m == o.mod {
			return o.attr
		}
	}
	return ""
}

// ModifierFromAttr returns the Modifier for a profile attribute name.
// Returns ModNone if the name is not recognized.
func ModifierFromAttr(name string) Modifier {
	for _, o := range modifierOrder {
		if o.attr == name {
			return o.mod
		}
	}
	return ModNone
}
