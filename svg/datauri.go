package svg

import (
	"bytes"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/svgmin"
	"github.com/tdewolff/svgmin/tree"
)

var svgMimeBytes = []byte("image/svg+xml")

// minifyDataURIs minifies SVG images embedded as data URIs in references. Payloads that fail to parse are left untouched.
func minifyDataURIs(d *tree.Document, o *Options) error {
	if !o.MinifyDataURIs {
		return nil
	}
	d.Walk(d.Root(), func(id tree.NodeID) bool {
		if d.Kind(id) != tree.ElementNode {
			return true
		}
		attrs := append([]tree.Attr{}, d.Attrs(id)...)
		for i, attr := range attrs {
			if attr.Raw || attr.Name.Local != "href" || attr.Name.Space != "" && attr.Name.Space != "xlink" || !strings.HasPrefix(attr.Val, "data:image/svg+xml") {
				continue
			}
			mediatype, data, err := parse.DataURI([]byte(attr.Val))
			if err != nil || !bytes.HasPrefix(mediatype, svgMimeBytes) {
				continue
			}
			out, err := Minify(data, o)
			if err != nil {
				continue
			}
			if uri := svgmin.DataURI(mediatype, out); len(uri) < len(attr.Val) {
				attrs[i].Val = string(uri)
			}
		}
		d.SetAttrs(id, attrs)
		return true
	})
	return nil
}
