// Package parser reads profile documents.
//
// A document is consumed as a stream of start tag, end tag and text
// events. The parser keeps a stack of the open elements, each with a typed
// builder for the entity it describes, checks every element against the
// parents the grammar allows for it, and validates each entity when its
// element closes: shift states are checked for conflicts and uniqueness,
// handler trees for contiguity and completeness. The first violation ends
// the parse with a *ParseError and no profile.
package parser

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dshills/joyprog/internal/action"
	"github.com/dshills/joyprog/internal/device"
	"github.com/dshills/joyprog/internal/input/key"
	"github.com/dshills/joyprog/internal/profile"
	"github.com/dshills/joyprog/internal/profile/handler"
	"github.com/dshills/joyprog/internal/profile/shift"
)

// Parser builds one profile from the events of one document.
type Parser struct {
	document string
	pos      Position
	stack    []builder
	rootSeen bool
	identity bool
	prof     *profile.Profile
}

// New creates a parser for the named document.
func New(document string) *Parser {
	return &Parser{document: document}
}

// ParseFile parses the profile document at path.
func ParseFile(path string) (*profile.Profile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ParseReader(path, f)
}

// ParseReader parses a profile document read from r. The document name
// is used in error messages.
func ParseReader(document string, r io.Reader) (*profile.Profile, error) {
	return New(document).Parse(NewXMLSource(r))
}

// Parse consumes the events of src and returns the profile they describe.
func (p *Parser) Parse(src Source) (*profile.Profile, error) {
	for {
		ev, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, p.syntaxError(err)
		}

		p.pos = ev.Pos()
		switch ev := ev.(type) {
		case StartTag:
			err = p.start(ev)
		case EndTag:
			err = p.end(ev)
		case Text:
			err = p.text(ev)
		}
		if err != nil {
			return nil, err
		}
	}

	if len(p.stack) > 0 {
		return nil, p.fail(ErrSyntax, "unexpected end of document inside '%s'", p.top().element())
	}
	if p.prof == nil {
		return nil, p.fail(ErrInvalidProfile, "the document contains no profile")
	}
	return p.prof, nil
}

func (p *Parser) fail(kind error, format string, args ...any) *ParseError {
	return &ParseError{
		Document: p.document,
		Line:     p.pos.Line,
		Column:   p.pos.Column,
		Message:  fmt.Sprintf(format, args...),
		Err:      kind,
	}
}

func (p *Parser) syntaxError(err error) *ParseError {
	pe := &ParseError{
		Document: p.document,
		Line:     p.pos.Line,
		Message:  err.Error(),
		Err:      fmt.Errorf("%w: %w", ErrSyntax, err),
	}
	if pos, ok := syntaxPosition(err); ok {
		pe.Line = pos.Line
	}
	return pe
}

func (p *Parser) top() builder {
	if len(p.stack) == 0 {
		return nil
	}
	return p.stack[len(p.stack)-1]
}

func (p *Parser) topTag() tag {
	if b := p.top(); b != nil {
		return b.element()
	}
	return tagNone
}

func (p *Parser) push(b builder) {
	p.stack = append(p.stack, b)
}

// tree returns the handler tree the next shift or action element belongs
// to, with the index of the shift level of its children.
func (p *Parser) tree() (*handler.Tree, int) {
	depth := 0
	var tree *handler.Tree
	for i := len(p.stack) - 1; i >= 0; i-- {
		switch b := p.stack[i].(type) {
		case *shiftBuilder:
			if tree == nil {
				tree = &b.h.Tree
			}
			depth++
		case *keyBuilder:
			if tree == nil {
				tree = &b.kp.Tree
			}
			return tree, depth
		}
	}
	return nil, 0
}

// expectedStates returns the number of states a handler tree must cover
// at the given shift level, or 0 below the last level.
func (p *Parser) expectedStates(depth int) int {
	if depth < p.prof.NumShiftLevels() {
		return p.prof.ShiftLevel(depth).NumStates()
	}
	return 0
}

func (p *Parser) start(ev StartTag) error {
	t, ok := tagNames[ev.Name]
	if !ok {
		return p.fail(ErrUnknownElement, "unknown element '%s'", ev.Name)
	}
	if parent := p.topTag(); !allowedIn(t, parent) {
		if t == tagJoystickProfile {
			return p.fail(ErrMisplacedElement, "'joystickProfile' should be the top-level element")
		}
		return p.fail(ErrMisplacedElement, "element '%s' should appear within %s, not in %s",
			ev.Name, parentList(t), parent)
	}

	var (
		b   builder
		err error
	)
	switch t {
	case tagJoystickProfile:
		b, err = p.startJoystickProfile(ev.Attrs)
	case tagIdentity:
		b, err = p.startIdentity()
	case tagInputID:
		b, err = p.startInputID(ev.Attrs)
	case tagName, tagPhys, tagUniq:
		b = &textBuilder{tag: t}
	case tagShiftLevels:
		b, err = p.startShiftLevels()
	case tagShiftLevel:
		b = &levelBuilder{level: shift.NewLevel()}
	case tagShiftState:
		b = &stateBuilder{state: shift.NewState()}
	case tagKeys:
		b, err = p.startKeys()
	case tagKey:
		b, err = p.startKey(ev.Attrs)
	case tagShift:
		b, err = p.startShift(ev.Attrs)
	case tagAction:
		b, err = p.startAction(ev.Attrs)
	case tagKeyCombination:
		b, err = p.startKeyCombination(ev.Attrs)
	}
	if err != nil {
		return err
	}
	p.push(b)
	return nil
}

func (p *Parser) end(ev EndTag) error {
	b := p.top()
	if b == nil {
		return p.fail(ErrSyntax, "unexpected end of element '%s'", ev.Name)
	}
	if t, ok := tagNames[ev.Name]; !ok || t != b.element() {
		return p.fail(ErrMisplacedElement, "unexpected end of element '%s' inside '%s'", ev.Name, b.element())
	}
	p.stack = p.stack[:len(p.stack)-1]

	switch b := b.(type) {
	case *rootBuilder:
		if p.prof == nil {
			return p.fail(ErrInvalidProfile, "the profile has no identity")
		}
	case *identityBuilder:
		return p.endIdentity(b)
	case *textBuilder:
		return p.endText(b)
	case *levelBuilder:
		return p.endShiftLevel(b)
	case *stateBuilder:
		return p.endShiftState(b)
	case *keyBuilder:
		return p.endKey(b)
	case *shiftBuilder:
		return p.endShift(b)
	case *actionBuilder:
		return p.endAction(b)
	case *comboBuilder:
		return p.endKeyCombination(b)
	}
	return nil
}

func (p *Parser) text(ev Text) error {
	if c, ok := p.top().(textCollector); ok {
		c.appendText(ev.Content)
		return nil
	}
	if strings.TrimSpace(ev.Content) != "" {
		return p.fail(ErrUnexpectedText, "unexpected text in %s", p.topTag())
	}
	return nil
}

// Attribute access.

func (p *Parser) attr(attrs Attrs, name string) (string, error) {
	v, ok := attrs.Get(name)
	if !ok {
		return "", p.fail(ErrMissingAttribute, "expected attribute '%s'", name)
	}
	return v, nil
}

func (p *Parser) intAttr(attrs Attrs, name string) (int, error) {
	v, err := p.attr(attrs, name)
	if err != nil {
		return 0, err
	}
	n, err := ParseInt(v)
	if err != nil {
		return 0, p.fail(ErrInvalidAttribute, "value of attribute '%s' should be an integer: %v", name, err)
	}
	return n, nil
}

func (p *Parser) optIntAttr(attrs Attrs, name string, def int) (int, error) {
	if _, ok := attrs.Get(name); !ok {
		return def, nil
	}
	return p.intAttr(attrs, name)
}

func (p *Parser) hexAttr(attrs Attrs, name string) (uint16, error) {
	v, err := p.attr(attrs, name)
	if err != nil {
		return 0, err
	}
	n, err := ParseHex(v)
	if err != nil {
		return 0, p.fail(ErrInvalidAttribute, "value of attribute '%s' should be a hexadecimal number: %v", name, err)
	}
	return n, nil
}

func (p *Parser) optBoolAttr(attrs Attrs, name string) (bool, error) {
	v, ok := attrs.Get(name)
	if !ok {
		return false, nil
	}
	b, err := ParseBool(v)
	if err != nil {
		return false, p.fail(ErrInvalidAttribute, "value of attribute '%s' should be a boolean: %v", name, err)
	}
	return b, nil
}

func (p *Parser) optFloatAttr(attrs Attrs, name string) (float64, error) {
	v, ok := attrs.Get(name)
	if !ok {
		return 0, nil
	}
	f, err := ParseFloat(v)
	if err != nil {
		return 0, p.fail(ErrInvalidAttribute, "value of attribute '%s' should be a floating-point number: %v", name, err)
	}
	return f, nil
}

// Profile and identity.

func (p *Parser) startJoystickProfile(attrs Attrs) (builder, error) {
	if p.rootSeen {
		return nil, p.fail(ErrMisplacedElement, "there should be only one 'joystickProfile' element")
	}
	p.rootSeen = true

	name, err := p.attr(attrs, "name")
	if err != nil {
		return nil, err
	}
	if name == "" {
		return nil, p.fail(ErrInvalidAttribute, "the profile's name should not be empty")
	}
	autoLoad, err := p.optBoolAttr(attrs, "autoLoad")
	if err != nil {
		return nil, err
	}
	return &rootBuilder{name: name, autoLoad: autoLoad}, nil
}

func (p *Parser) startIdentity() (builder, error) {
	if p.identity {
		return nil, p.fail(ErrInvalidProfile, "there should be only one identity")
	}
	p.identity = true
	return &identityBuilder{}, nil
}

func (p *Parser) startInputID(attrs Attrs) (builder, error) {
	ib := p.top().(*identityBuilder)
	if ib.inputID != nil {
		return nil, p.fail(ErrInvalidProfile, "the identity has more than one input ID")
	}

	busName, err := p.attr(attrs, "busType")
	if err != nil {
		return nil, err
	}
	bus, ok := device.BusTypeFromName(busName)
	if !ok {
		return nil, p.fail(ErrInvalidAttribute, "invalid bus type '%s'", busName)
	}

	id := device.InputID{BusType: bus}
	for _, f := range []struct {
		name string
		dst  *uint16
	}{
		{"vendor", &id.Vendor},
		{"product", &id.Product},
		{"version", &id.Version},
	} {
		if *f.dst, err = p.hexAttr(attrs, f.name); err != nil {
			return nil, err
		}
	}

	ib.inputID = &id
	return &passBuilder{tag: tagInputID}, nil
}

func (p *Parser) endText(b *textBuilder) error {
	ib := p.top().(*identityBuilder)
	text := b.text()

	var dst **string
	switch b.tag {
	case tagName:
		dst = &ib.name
	case tagPhys:
		dst = &ib.phys
	case tagUniq:
		dst = &ib.uniq
	}
	if *dst != nil {
		return p.fail(ErrInvalidProfile, "the identity has more than one '%s'", b.tag)
	}
	if b.tag == tagUniq && text == "" {
		// An empty uniq does not bind the profile to a device.
		return nil
	}
	*dst = &text
	return nil
}

func (p *Parser) endIdentity(b *identityBuilder) error {
	switch {
	case b.inputID == nil:
		return p.fail(ErrInvalidProfile, "the input ID is missing from the identity")
	case b.name == nil:
		return p.fail(ErrInvalidProfile, "the name is missing from the identity")
	case b.phys == nil:
		return p.fail(ErrInvalidProfile, "the physical location is missing from the identity")
	}

	identity := device.Identity{
		InputID: *b.inputID,
		Name:    *b.name,
		Phys:    *b.phys,
		Uniq:    b.uniq,
	}
	root := p.stack[0].(*rootBuilder)
	p.prof = profile.New(root.name, identity, root.autoLoad)
	return nil
}

// Shift levels.

func (p *Parser) startShiftLevels() (builder, error) {
	if p.prof == nil {
		return nil, p.fail(ErrInvalidProfile, "the shift levels should be specified after the identity")
	}
	if p.prof.HasControlProfiles() {
		return nil, p.fail(ErrInvalidProfile, "the shift levels should be specified before any key profiles")
	}
	return &passBuilder{tag: tagShiftLevels}, nil
}

func (p *Parser) endShiftState(b *stateBuilder) error {
	if !b.state.Valid() {
		return p.fail(ErrInvalidProfile, "the shift state %s has conflicting controls", b.state)
	}
	lb := p.top().(*levelBuilder)
	if !lb.level.Add(b.state) {
		return p.fail(ErrInvalidProfile, "the shift state %s is not unique on the level", b.state)
	}
	return nil
}

func (p *Parser) endShiftLevel(b *levelBuilder) error {
	if b.level.NumStates() < shift.MinStates {
		return p.fail(ErrInvalidProfile, "a shift level should have at least %d states", shift.MinStates)
	}
	if err := p.prof.AddShiftLevel(b.level); err != nil {
		return p.fail(ErrInvalidProfile, "%v", err)
	}
	return nil
}

// Keys and handler trees.

func (p *Parser) startKeys() (builder, error) {
	if p.prof == nil {
		return nil, p.fail(ErrInvalidProfile, "keys should be specified after the identity")
	}
	return &passBuilder{tag: tagKeys}, nil
}

func (p *Parser) keyCode(attrs Attrs) (key.Code, error) {
	var code key.Code
	if _, ok := attrs.Get("code"); ok {
		n, err := p.intAttr(attrs, "code")
		if err != nil {
			return 0, err
		}
		if n < 0 || !key.Code(n).IsValid() {
			return 0, p.fail(ErrInvalidAttribute, "key code %d is out of range", n)
		}
		code = key.Code(n)
	} else if name, ok := attrs.Get("name"); ok {
		c, err := key.Parse(name)
		if err != nil {
			return 0, p.fail(ErrInvalidAttribute, "invalid key name '%s'", name)
		}
		code = c
	} else {
		return 0, p.fail(ErrMissingAttribute, "either a valid code or name is expected")
	}
	return code, nil
}

func (p *Parser) startKey(attrs Attrs) (builder, error) {
	code, err := p.keyCode(attrs)
	if err != nil {
		return nil, err
	}

	if sb, ok := p.top().(*stateBuilder); ok {
		value, err := p.intAttr(attrs, "value")
		if err != nil {
			return nil, err
		}
		if value < 0 || value > 1 {
			return nil, p.fail(ErrInvalidAttribute, "the value should be 0 or 1 for a key")
		}
		sb.state.Add(shift.KeyControl(code, value))
		return &controlBuilder{}, nil
	}

	if p.prof.FindKeyProfile(code) != nil {
		return nil, p.fail(ErrInvalidProfile, "a profile for the key %s is already defined", code)
	}
	return &keyBuilder{kp: handler.NewKeyProfile(code)}, nil
}

func (p *Parser) endKey(b *keyBuilder) error {
	if !b.kp.IsComplete(p.expectedStates(0)) {
		return p.fail(ErrInvalidProfile, "the key profile of %s is missing either child shift level states or an action", b.kp.Code)
	}
	if err := p.prof.AddKeyProfile(b.kp); err != nil {
		return p.fail(ErrInvalidProfile, "%v", err)
	}
	return nil
}

func (p *Parser) startShift(attrs Attrs) (builder, error) {
	tree, depth := p.tree()
	if tree == nil {
		return nil, p.fail(ErrMisplacedElement, "shift handlers are valid only in key profiles")
	}
	if depth >= p.prof.NumShiftLevels() {
		return nil, p.fail(ErrInvalidProfile, "too many shift handler levels")
	}

	from, err := p.intAttr(attrs, "fromState")
	if err != nil {
		return nil, err
	}
	to, err := p.intAttr(attrs, "toState")
	if err != nil {
		return nil, err
	}

	h, err := handler.NewShiftHandler(from, to)
	if err != nil {
		return nil, p.fail(ErrInvalidProfile, "the to-state should not be less than the from-state")
	}
	if tree.HasLeaf() {
		return nil, p.fail(ErrInvalidProfile, "a shift handler cannot follow an action")
	}
	if tree.LastState()+1 != from {
		return nil, p.fail(ErrInvalidProfile, "shift handler states are not contiguous: expected from-state %d, got %d",
			tree.LastState()+1, from)
	}
	if numStates := p.prof.ShiftLevel(depth).NumStates(); to >= numStates {
		return nil, p.fail(ErrInvalidProfile, "the to-state %d is too large for a level of %d states", to, numStates)
	}
	return &shiftBuilder{h: h}, nil
}

func (p *Parser) endShift(b *shiftBuilder) error {
	tree, depth := p.tree()
	if !b.h.IsComplete(p.expectedStates(depth + 1)) {
		return p.fail(ErrInvalidProfile, "shift handler is missing either child shift level states or an action")
	}
	if err := tree.AddChild(handler.Branch(b.h)); err != nil {
		return p.fail(ErrInvalidProfile, "%v", err)
	}
	return nil
}

// Actions.

func (p *Parser) startAction(attrs Attrs) (builder, error) {
	tree, depth := p.tree()
	if tree == nil {
		return nil, p.fail(ErrMisplacedElement, "actions are valid only in key profiles")
	}
	if depth != p.prof.NumShiftLevels() {
		return nil, p.fail(ErrInvalidProfile, "missing shift handler levels")
	}
	if tree.NumChildren() > 0 {
		return nil, p.fail(ErrInvalidProfile, "a shift handler or a key profile can have only one action")
	}

	typeName, err := p.attr(attrs, "type")
	if err != nil {
		return nil, err
	}
	kind, ok := action.KindFromName(typeName)
	if !ok {
		return nil, p.fail(ErrInvalidAttribute, "invalid action type '%s'", typeName)
	}

	delay, err := p.optIntAttr(attrs, "repeatDelay", 0)
	if err != nil {
		return nil, err
	}
	if delay < 0 {
		return nil, p.fail(ErrInvalidAttribute, "the repeat delay should not be negative")
	}

	switch kind {
	case action.KindSimple:
		s := action.NewSimple(delay)
		return &actionBuilder{act: s, simple: s}, nil
	default:
		dirName, err := p.attr(attrs, "direction")
		if err != nil {
			return nil, err
		}
		dir, ok := action.DirectionFromName(dirName)
		if !ok {
			return nil, p.fail(ErrInvalidAttribute, "invalid direction '%s'", dirName)
		}
		var coeffs [3]float64
		for i, name := range []string{"a", "b", "c"} {
			if coeffs[i], err = p.optFloatAttr(attrs, name); err != nil {
				return nil, err
			}
		}
		return &actionBuilder{act: action.NewMouseMove(dir, coeffs[0], coeffs[1], coeffs[2], delay)}, nil
	}
}

func (p *Parser) endAction(b *actionBuilder) error {
	if b.simple != nil {
		if err := b.simple.Validate(); err != nil {
			return p.fail(ErrInvalidProfile, "%v", err)
		}
	}
	tree, _ := p.tree()
	if err := tree.AddChild(handler.Leaf(b.act)); err != nil {
		return p.fail(ErrInvalidProfile, "%v", err)
	}
	return nil
}

func (p *Parser) startKeyCombination(attrs Attrs) (builder, error) {
	ab := p.top().(*actionBuilder)
	if ab.simple == nil {
		return nil, p.fail(ErrMisplacedElement, "a key combination is valid only for a simple action")
	}

	var mods key.Modifier
	for _, m := range key.Modifiers() {
		set, err := p.optBoolAttr(attrs, m.AttrName())
		if err != nil {
			return nil, err
		}
		if set {
			mods = mods.With(m)
		}
	}
	return &comboBuilder{mods: mods}, nil
}

func (p *Parser) endKeyCombination(b *comboBuilder) error {
	name := b.text()
	code, err := key.Parse(name)
	if err != nil {
		return p.fail(ErrInvalidProfile, "no valid code given for the key combination: '%s'", name)
	}
	ab := p.top().(*actionBuilder)
	ab.simple.AddKeyCombination(code, b.mods)
	return nil
}
