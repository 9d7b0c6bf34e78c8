// Package minify provides string and byte slice helpers around the default SVG minifier.
package minify

import (
	"bytes"

	"github.com/tdewolff/svgmin/svg"
)

// Default is the SVG minifier using the default options.
var Default = &svg.Minifier{Options: svg.DefaultOptions}

// Minify minifies an SVG document using the default options.
func Minify(s string) (string, error) {
	return MinifyWithOptions(s, Default.Options)
}

// MinifyWithOptions minifies an SVG document using the given options.
func MinifyWithOptions(s string, o svg.Options) (string, error) {
	out, err := svg.Minify([]byte(s), &o)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Bytes minifies an SVG document using the default options, it streams through the default minifier.
func Bytes(b []byte) ([]byte, error) {
	w := &bytes.Buffer{}
	if err := Default.Minify(w, bytes.NewReader(b)); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}
