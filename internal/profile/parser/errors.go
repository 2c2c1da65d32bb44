package parser

import (
	"errors"
	"fmt"
)

// Categories of parse failures, matched with errors.Is against a
// *ParseError.
var (
	// ErrSyntax indicates a document that is not well-formed XML.
	ErrSyntax = errors.New("malformed document")

	// ErrUnknownElement indicates an element the grammar does not define.
	ErrUnknownElement = errors.New("unknown element")

	// ErrMisplacedElement indicates an element inside the wrong parent.
	ErrMisplacedElement = errors.New("misplaced element")

	// ErrUnexpectedText indicates character data where none is allowed.
	ErrUnexpectedText = errors.New("unexpected text")

	// ErrMissingAttribute indicates a required attribute is absent.
	ErrMissingAttribute = errors.New("missing attribute")

	// ErrInvalidAttribute indicates an attribute with a malformed value.
	ErrInvalidAttribute = errors.New("invalid attribute")

	// ErrInvalidProfile indicates content violating a profile rule.
	ErrInvalidProfile = errors.New("invalid profile")
)

// ParseError is the failure of parsing a profile document. The first
// failure aborts the parse.
type ParseError struct {
	// Document names the document, usually its path.
	Document string
	// Line is the line where the failure was detected (if available).
	Line int
	// Column is the column where the failure was detected (if available).
	Column int
	// Message describes the failure.
	Message string
	// Err is the category of the failure or the underlying error.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Line > 0 && e.Column > 0 {
		return fmt.Sprintf("%s:%d:%d: %s", e.Document, e.Line, e.Column, e.Message)
	}
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", e.Document, e.Line, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Document, e.Message)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}
