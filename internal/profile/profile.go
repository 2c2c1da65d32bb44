// Package profile implements joystick control profiles.
//
// A Profile binds a device identity to an ordered list of shift levels and
// one handler tree per key or button. Profiles are built by the parser in
// internal/profile/parser, then only read: they are written back as
// authoring documents with WriteXML and compiled into daemon payloads with
// WriteDaemonXML.
package profile

import (
	"fmt"

	"github.com/dshills/joyprog/internal/device"
	"github.com/dshills/joyprog/internal/input/key"
	"github.com/dshills/joyprog/internal/profile/handler"
	"github.com/dshills/joyprog/internal/profile/shift"
)

// Profile is a control profile for a joystick.
type Profile struct {
	Name     string
	AutoLoad bool
	Identity device.Identity

	levels []*shift.Level
	keys   []*handler.KeyProfile
	byCode map[key.Code]*handler.KeyProfile
}

// New creates a profile without shift levels or keys.
func New(name string, identity device.Identity, autoLoad bool) *Profile {
	return &Profile{
		Name:     name,
		AutoLoad: autoLoad,
		Identity: identity,
		byCode:   make(map[key.Code]*handler.KeyProfile),
	}
}

// HasControlProfiles returns true if a key profile has been added.
func (p *Profile) HasControlProfiles() bool {
	return len(p.keys) > 0
}

// AddShiftLevel appends a shift level. Levels are fixed once the first key
// profile has been added.
func (p *Profile) AddShiftLevel(l *shift.Level) error {
	if p.HasControlProfiles() {
		return ErrShiftLevelsFixed
	}
	p.levels = append(p.levels, l)
	return nil
}

// NumShiftLevels returns the number of shift levels.
func (p *Profile) NumShiftLevels() int {
	return len(p.levels)
}

// ShiftLevel returns the shift level at index i.
func (p *Profile) ShiftLevel(i int) *shift.Level {
	return p.levels[i]
}

// ShiftLevels returns the shift levels in order. The slice must not be
// modified.
func (p *Profile) ShiftLevels() []*shift.Level {
	return p.levels
}

// AddKeyProfile adds the handler tree of a key. A key can be added only
// once.
func (p *Profile) AddKeyProfile(kp *handler.KeyProfile) error {
	if _, ok := p.byCode[kp.Code]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateKey, kp.Code)
	}
	p.byCode[kp.Code] = kp
	p.keys = append(p.keys, kp)
	return nil
}

// FindKeyProfile returns the key profile for code, or nil.
func (p *Profile) FindKeyProfile(code key.Code) *handler.KeyProfile {
	return p.byCode[code]
}

// KeyProfiles returns the key profiles in the order they were added. The
// slice must not be modified.
func (p *Profile) KeyProfiles() []*handler.KeyProfile {
	return p.keys
}

// Match returns the match score of the profile for a concrete device
// identity. Zero means the profile does not apply to the device.
func (p *Profile) Match(dev device.Identity) int {
	return p.Identity.Match(dev)
}

// String returns the name and identity of the profile.
func (p *Profile) String() string {
	return fmt.Sprintf("%s (%s)", p.Name, p.Identity)
}
