package main

import (
	"io/fs"

	"github.com/gabriel-vasile/mimetype"
)

const svgMimetype = "image/svg+xml"

// sniffSVG returns true if the content of the file looks like an SVG document.
func sniffSVG(fsys fs.FS, filename string) bool {
	f, err := fsys.Open(filename)
	if err != nil {
		return false
	}
	defer f.Close()

	mime, err := mimetype.DetectReader(f)
	return err == nil && mime.Is(svgMimetype)
}
