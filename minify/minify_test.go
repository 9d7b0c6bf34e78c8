package minify

import (
	"errors"
	"testing"

	"github.com/tdewolff/svgmin"
	"github.com/tdewolff/svgmin/svg"
	"github.com/tdewolff/test"
)

func TestMinify(t *testing.T) {
	out, err := Minify(`<svg xmlns="http://www.w3.org/2000/svg" width="200" height="100"><path d="M 0,0 L 10, 0 z" style="color: #00ff00;"/></svg>`)
	test.Error(t, err)
	test.String(t, out, `<svg xmlns="http://www.w3.org/2000/svg" height="100" width="200"><path d="M0 0H10z" style="color:#0f0"/></svg>`)

	b, err := Bytes([]byte(`<rect fill-opacity="1" fill="#ff0000"/>`))
	test.Error(t, err)
	test.String(t, string(b), `<rect fill="red"/>`)
}

func TestMinifyWithOptions(t *testing.T) {
	o := svg.DefaultOptions
	o.Precision = 1
	out, err := MinifyWithOptions(`<path d="M 10.125 20.125 L 10.125 30.125"/>`, o)
	test.Error(t, err)
	test.String(t, out, `<path d="M10.1 20.1v10"/>`)
	test.T(t, Default.Precision, 2, "default options must not change")
}

func TestMinifyError(t *testing.T) {
	out, err := Minify(`<svg><g></svg>`)
	test.That(t, errors.Is(err, svgmin.ErrMalformedMarkup), err)
	test.String(t, out, "")

	var perr *svgmin.Error
	test.That(t, errors.As(err, &perr))
	test.T(t, perr.Line, 1)

	_, err = Bytes([]byte(`text`))
	test.That(t, errors.Is(err, svgmin.ErrMalformedMarkup), err)
}
