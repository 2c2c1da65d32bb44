package parser

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
)

// Position is a location in a document. Line and Column are 1-based.
type Position struct {
	Line   int
	Column int
}

// Event is an item of the event stream driving the parser: a StartTag,
// an EndTag or a Text.
type Event interface {
	Pos() Position
}

// StartTag opens an element.
type StartTag struct {
	Name  string
	Attrs Attrs
	At    Position
}

// EndTag closes an element.
type EndTag struct {
	Name string
	At   Position
}

// Text is character data between tags.
type Text struct {
	Content string
	At      Position
}

// Pos implements Event.
func (e StartTag) Pos() Position { return e.At }

// Pos implements Event.
func (e EndTag) Pos() Position { return e.At }

// Pos implements Event.
func (e Text) Pos() Position { return e.At }

// Source produces the events of one document. Next returns io.EOF after
// the last event.
type Source interface {
	Next() (Event, error)
}

// xmlSource turns the tokens of an XML decoder into events. Comments,
// processing instructions and directives are dropped.
type xmlSource struct {
	dec *xml.Decoder
}

// NewXMLSource returns a Source reading an XML document from r.
func NewXMLSource(r io.Reader) Source {
	return &xmlSource{dec: xml.NewDecoder(r)}
}

func (s *xmlSource) Next() (Event, error) {
	for {
		line, col := s.dec.InputPos()
		at := Position{Line: line, Column: col}

		tok, err := s.dec.Token()
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			attrs := make(Attrs, len(t.Attr))
			for _, a := range t.Attr {
				attrs[a.Name.Local] = a.Value
			}
			return StartTag{Name: t.Name.Local, Attrs: attrs, At: at}, nil
		case xml.EndElement:
			return EndTag{Name: t.Name.Local, At: at}, nil
		case xml.CharData:
			return Text{Content: string(bytes.Clone(t)), At: at}, nil
		}
	}
}

// syntaxPosition returns the position of a decoder error, if it has one.
func syntaxPosition(err error) (Position, bool) {
	var se *xml.SyntaxError
	if errors.As(err, &se) {
		return Position{Line: se.Line}, true
	}
	return Position{}, false
}
