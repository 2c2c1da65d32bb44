package parser

import (
	"strings"

	"github.com/dshills/joyprog/internal/action"
	"github.com/dshills/joyprog/internal/device"
	"github.com/dshills/joyprog/internal/input/key"
	"github.com/dshills/joyprog/internal/profile/handler"
	"github.com/dshills/joyprog/internal/profile/shift"
)

// tag is an element of the profile grammar.
type tag uint8

const (
	tagNone tag = iota
	tagJoystickProfile
	tagIdentity
	tagInputID
	tagName
	tagPhys
	tagUniq
	tagShiftLevels
	tagShiftLevel
	tagShiftState
	tagKeys
	tagKey
	tagShift
	tagAction
	tagKeyCombination
)

var tagNames = map[string]tag{
	"joystickProfile": tagJoystickProfile,
	"identity":        tagIdentity,
	"inputID":         tagInputID,
	"name":            tagName,
	"phys":            tagPhys,
	"uniq":            tagUniq,
	"shiftLevels":     tagShiftLevels,
	"shiftLevel":      tagShiftLevel,
	"shiftState":      tagShiftState,
	"keys":            tagKeys,
	"key":             tagKey,
	"shift":           tagShift,
	"action":          tagAction,
	"keyCombination":  tagKeyCombination,
}

// parents lists the elements each element may appear in.
var parents = map[tag][]tag{
	tagJoystickProfile: {tagNone},
	tagIdentity:        {tagJoystickProfile},
	tagInputID:         {tagIdentity},
	tagName:            {tagIdentity},
	tagPhys:            {tagIdentity},
	tagUniq:            {tagIdentity},
	tagShiftLevels:     {tagJoystickProfile},
	tagShiftLevel:      {tagShiftLevels},
	tagShiftState:      {tagShiftLevel},
	tagKeys:            {tagJoystickProfile},
	tagKey:             {tagKeys, tagShiftState},
	tagShift:           {tagKey, tagShift},
	tagAction:          {tagKey, tagShift},
	tagKeyCombination:  {tagAction},
}

func (t tag) String() string {
	if t == tagNone {
		return "the document"
	}
	for name, v := range tagNames {
		if v == t {
			return name
		}
	}
	return "?"
}

func allowedIn(t, parent tag) bool {
	for _, p := range parents[t] {
		if p == parent {
			return true
		}
	}
	return false
}

func parentList(t tag) string {
	names := make([]string, len(parents[t]))
	for i, p := range parents[t] {
		names[i] = "'" + p.String() + "'"
	}
	return strings.Join(names, " or ")
}

// builder is the entity under construction for an open element.
type builder interface {
	element() tag
}

// textCollector is a builder of an element holding text.
type textCollector interface {
	builder
	appendText(s string)
	text() string
}

type rootBuilder struct {
	name     string
	autoLoad bool
}

type identityBuilder struct {
	inputID *device.InputID
	name    *string
	phys    *string
	uniq    *string
}

// passBuilder is the builder of a container element without state of its
// own.
type passBuilder struct {
	tag tag
}

type textBuilder struct {
	tag tag
	buf strings.Builder
}

type levelBuilder struct {
	level *shift.Level
}

type stateBuilder struct {
	state *shift.State
}

// controlBuilder is a key element inside a shift state.
type controlBuilder struct{}

type keyBuilder struct {
	kp *handler.KeyProfile
}

type shiftBuilder struct {
	h *handler.ShiftHandler
}

type actionBuilder struct {
	act    action.Action
	simple *action.Simple
}

type comboBuilder struct {
	mods key.Modifier
	buf  strings.Builder
}

func (*rootBuilder) element() tag     { return tagJoystickProfile }
func (*identityBuilder) element() tag { return tagIdentity }
func (b *passBuilder) element() tag   { return b.tag }
func (b *textBuilder) element() tag   { return b.tag }
func (*levelBuilder) element() tag    { return tagShiftLevel }
func (*stateBuilder) element() tag    { return tagShiftState }
func (*controlBuilder) element() tag  { return tagKey }
func (*keyBuilder) element() tag      { return tagKey }
func (*shiftBuilder) element() tag    { return tagShift }
func (*actionBuilder) element() tag   { return tagAction }
func (*comboBuilder) element() tag    { return tagKeyCombination }

func (b *textBuilder) appendText(s string) { b.buf.WriteString(s) }
func (b *textBuilder) text() string        { return strings.TrimSpace(b.buf.String()) }

func (b *comboBuilder) appendText(s string) { b.buf.WriteString(s) }
func (b *comboBuilder) text() string        { return strings.TrimSpace(b.buf.String()) }
