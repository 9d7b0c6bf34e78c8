// Package svg minifies SVG documents by running a sequence of passes over the document tree.
package svg

import (
	"bytes"
	"io"

	"github.com/tdewolff/svgmin/xml"
)

// maxRuns bounds the number of times the passes are repeated until the output no longer changes.
const maxRuns = 8

// DefaultMinifier is the default minifier.
var DefaultMinifier = &Minifier{Options: DefaultOptions}

// Minifier is an SVG minifier.
type Minifier struct {
	Options
}

// Minify minifies an SVG document. The passes are repeated on the reparsed output while it still changes, since removing an element may expose more that can be removed. Errors are of type *svgmin.Error, no output is returned on error.
func Minify(b []byte, o *Options) ([]byte, error) {
	popts := xml.ParseOptions{KeepUnknownEntities: o.KeepUnknownEntities}
	out := b
	for i := 0; i < maxRuns; i++ {
		d, err := xml.Parse(out, popts)
		if err != nil {
			return nil, err
		} else if err := Run(d, o); err != nil {
			return nil, err
		}
		prev := out
		out = xml.Bytes(d)
		if bytes.Equal(out, prev) {
			break
		}
	}
	return out, nil
}

// Minify minifies SVG data, it reads from r and writes to w.
func (m *Minifier) Minify(w io.Writer, r io.Reader) error {
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	out, err := Minify(b, &m.Options)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}
