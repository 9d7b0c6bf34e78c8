package svgmin

import (
	"bytes"
	"fmt"

	"github.com/tdewolff/parse/v2"
)

// ErrorKind is the category of an Error.
type ErrorKind int

// Error kinds.
const (
	MalformedMarkup ErrorKind = iota + 1
	InvalidPathData
)

func (k ErrorKind) String() string {
	switch k {
	case MalformedMarkup:
		return "malformed markup"
	case InvalidPathData:
		return "invalid path data"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Error is returned for input that cannot be minified. Offset is the byte offset into the input, Line and Column are 1-based.
type Error struct {
	Kind    ErrorKind
	Message string
	Offset  int
	Line    int
	Column  int
	Context string
}

// Sentinel errors to be used with errors.Is.
var (
	ErrMalformedMarkup = &Error{Kind: MalformedMarkup, Message: "malformed markup"}
	ErrInvalidPathData = &Error{Kind: InvalidPathData, Message: "invalid path data"}
)

// NewError returns a positioned error at offset in b.
func NewError(kind ErrorKind, b []byte, offset int, message string, a ...interface{}) *Error {
	if offset < 0 {
		offset = 0
	} else if len(b) < offset {
		offset = len(b)
	}
	return FromParseError(kind, parse.NewError(bytes.NewReader(b), offset, message, a...), offset)
}

// FromParseError converts a lexer error.
func FromParseError(kind ErrorKind, err *parse.Error, offset int) *Error {
	line, col, context := err.Position()
	return &Error{
		Kind:    kind,
		Message: err.Message,
		Offset:  offset,
		Line:    line,
		Column:  col,
		Context: context,
	}
}

func (e *Error) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("%v: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%v: %s on line %d and column %d\n%s", e.Kind, e.Message, e.Line, e.Column, e.Context)
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}
