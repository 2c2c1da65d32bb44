package profile

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dshills/joyprog/internal/action"
	"github.com/dshills/joyprog/internal/input/key"
	"github.com/dshills/joyprog/internal/profile/codegen"
	"github.com/dshills/joyprog/internal/profile/handler"
	"github.com/dshills/joyprog/internal/profile/shift"
)

// DaemonIndent indents the compiled code inside the key elements of a
// daemon payload.
const DaemonIndent = "    "

// tokenWriter emits XML tokens and keeps the first error.
type tokenWriter struct {
	enc *xml.Encoder
	err error
}

func newTokenWriter(w io.Writer) *tokenWriter {
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	return &tokenWriter{enc: enc}
}

func (w *tokenWriter) token(t xml.Token) {
	if w.err == nil {
		w.err = w.enc.EncodeToken(t)
	}
}

func (w *tokenWriter) start(name string, attrs ...xml.Attr) {
	w.token(xml.StartElement{Name: xml.Name{Local: name}, Attr: attrs})
}

func (w *tokenWriter) end(name string) {
	w.token(xml.EndElement{Name: xml.Name{Local: name}})
}

func (w *tokenWriter) empty(name string, attrs ...xml.Attr) {
	w.start(name, attrs...)
	w.end(name)
}

func (w *tokenWriter) text(name, content string, attrs ...xml.Attr) {
	w.start(name, attrs...)
	w.token(xml.CharData(content))
	w.end(name)
}

func (w *tokenWriter) close() error {
	if w.err != nil {
		return w.err
	}
	return w.enc.Close()
}

func attr(name, value string) xml.Attr {
	return xml.Attr{Name: xml.Name{Local: name}, Value: value}
}

func boolAttr(name string, v bool) xml.Attr {
	if v {
		return attr(name, "yes")
	}
	return attr(name, "no")
}

func hexAttr(name string, v uint16) xml.Attr {
	return attr(name, fmt.Sprintf("%04x", v))
}

// keyAttr refers to a key by name, or by code if it has none.
func keyAttr(code key.Code) xml.Attr {
	if name := code.Name(); name != "" {
		return attr("name", name)
	}
	return attr("code", strconv.Itoa(int(code)))
}

// keyText names a key in element text, falling back to its code.
func keyText(code key.Code) string {
	if name := code.Name(); name != "" {
		return name
	}
	return strconv.Itoa(int(code))
}

// WriteXML writes the profile as an authoring document.
func (p *Profile) WriteXML(out io.Writer) error {
	if _, err := io.WriteString(out, xml.Header); err != nil {
		return err
	}

	w := newTokenWriter(out)
	w.start("joystickProfile", attr("name", p.Name), boolAttr("autoLoad", p.AutoLoad))

	id := p.Identity
	w.start("identity")
	w.empty("inputID",
		attr("busType", id.InputID.BusType.String()),
		hexAttr("vendor", id.InputID.Vendor),
		hexAttr("product", id.InputID.Product),
		hexAttr("version", id.InputID.Version))
	w.text("name", id.Name)
	w.text("phys", id.Phys)
	if id.HasUniq() {
		w.text("uniq", *id.Uniq)
	}
	w.end("identity")

	if len(p.levels) > 0 {
		w.start("shiftLevels")
		for _, l := range p.levels {
			writeLevel(w, l)
		}
		w.end("shiftLevels")
	}

	if len(p.keys) > 0 {
		w.start("keys")
		for _, kp := range p.keys {
			w.start("key", keyAttr(kp.Code))
			writeChildren(w, &kp.Tree)
			w.end("key")
		}
		w.end("keys")
	}

	w.end("joystickProfile")
	if err := w.close(); err != nil {
		return fmt.Errorf("write profile %q: %w", p.Name, err)
	}
	_, err := io.WriteString(out, "\n")
	return err
}

func writeLevel(w *tokenWriter, l *shift.Level) {
	w.start("shiftLevel")
	for _, s := range l.States() {
		w.start("shiftState")
		for _, c := range s.Controls() {
			w.empty("key", keyAttr(c.Code), attr("value", strconv.Itoa(c.Value)))
		}
		w.end("shiftState")
	}
	w.end("shiftLevel")
}

func writeChildren(w *tokenWriter, t *handler.Tree) {
	for _, c := range t.Children() {
		if c.IsLeaf() {
			writeAction(w, c.Leaf())
			continue
		}
		h := c.Branch()
		w.start("shift",
			attr("fromState", strconv.Itoa(h.From)),
			attr("toState", strconv.Itoa(h.To)))
		writeChildren(w, &h.Tree)
		w.end("shift")
	}
}

func writeAction(w *tokenWriter, a action.Action) {
	switch a := a.(type) {
	case *action.Simple:
		attrs := []xml.Attr{attr("type", a.Kind().String())}
		if a.Repeats() {
			attrs = append(attrs, attr("repeatDelay", strconv.Itoa(a.RepeatDelay)))
		}
		w.start("action", attrs...)
		for _, kc := range a.KeyCombinations() {
			var mods []xml.Attr
			for _, m := range key.Modifiers() {
				if kc.Modifiers.Has(m) {
					mods = append(mods, boolAttr(m.AttrName(), true))
				}
			}
			w.text("keyCombination", keyText(kc.Code), mods...)
		}
		w.end("action")
	case *action.MouseMove:
		w.empty("action",
			attr("type", a.Kind().String()),
			attr("direction", a.Direction.String()),
			attr("a", action.FormatFloat(a.A)),
			attr("b", action.FormatFloat(a.B)),
			attr("c", action.FormatFloat(a.C)),
			attr("repeatDelay", strconv.Itoa(a.RepeatDelay)))
	default:
		if w.err == nil {
			w.err = fmt.Errorf("unsupported action kind %s", a.Kind())
		}
	}
}

// LuaCode compiles the code run by the daemon for one key.
func (p *Profile) LuaCode(kp *handler.KeyProfile) ([]string, error) {
	return codegen.KeyProfile(kp, p.levels)
}

// WriteDaemonXML writes the payload document loaded by the daemon: a
// prologue, the compiled code of every key in the order the keys were
// added, and an epilogue.
func (p *Profile) WriteDaemonXML(out io.Writer) error {
	blocks := make([]string, len(p.keys))
	for i, kp := range p.keys {
		lines, err := p.LuaCode(kp)
		if err != nil {
			return fmt.Errorf("compile profile %q: %w", p.Name, err)
		}
		blocks[i] = "\n" + strings.Join(action.Indent(lines, DaemonIndent), "\n") + "\n"
	}

	if _, err := io.WriteString(out, xml.Header); err != nil {
		return err
	}

	w := newTokenWriter(out)
	w.start("jsprogProfile")
	w.empty("prologue")
	for i, kp := range p.keys {
		w.text("key", blocks[i],
			attr("code", strconv.Itoa(int(kp.Code))),
			attr("name", kp.Code.String()))
	}
	w.empty("epilogue")
	w.end("jsprogProfile")
	if err := w.close(); err != nil {
		return fmt.Errorf("write daemon profile %q: %w", p.Name, err)
	}
	_, err := io.WriteString(out, "\n")
	return err
}
