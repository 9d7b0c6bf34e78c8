package svgmin

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/tdewolff/test"
)

func TestError(t *testing.T) {
	err := NewError(MalformedMarkup, []byte("buffer"), 3, "unexpected %s", "token")
	test.T(t, err.Offset, 3)
	test.T(t, err.Line, 1)
	test.T(t, err.Column, 4)
	test.T(t, err.Message, "unexpected token")
	test.That(t, strings.HasPrefix(err.Error(), "malformed markup: unexpected token on line 1 and column 4"), err.Error())

	test.That(t, errors.Is(err, ErrMalformedMarkup))
	test.That(t, !errors.Is(err, ErrInvalidPathData))
	test.That(t, errors.Is(fmt.Errorf("wrapped: %w", err), ErrMalformedMarkup))

	err = NewError(InvalidPathData, []byte("M0 0"), 100, "out of range")
	test.T(t, err.Offset, 4)
	test.That(t, errors.Is(err, ErrInvalidPathData))
}

func TestErrorKind(t *testing.T) {
	test.T(t, MalformedMarkup.String(), "malformed markup")
	test.T(t, InvalidPathData.String(), "invalid path data")
	test.T(t, ErrorKind(9).String(), "ErrorKind(9)")
}
