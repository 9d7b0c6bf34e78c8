package svg

import (
	"github.com/tdewolff/svgmin/style"
	"github.com/tdewolff/svgmin/tree"
)

// minifyStyles minifies style attributes and style sheets. Declarations equal to their default are dropped when RemoveDefaultAttrs is set.
func minifyStyles(d *tree.Document, o *Options) error {
	if !o.MinifyStyles {
		return nil
	}
	u := scanUsage(d)
	value := func(prop, val string) string {
		return minifyValue(o, prop, val)
	}
	d.Walk(d.Root(), func(id tree.NodeID) bool {
		if d.Kind(id) != tree.ElementNode {
			return true
		} else if d.Is(id, "style") && isSVG(d, id) {
			minifySheetElement(d, id, value)
			return false
		}

		for _, attr := range d.Attrs(id) {
			if attr.Name != (tree.Name{Local: "style"}) || attr.Raw {
				continue
			}
			m := style.Minifier{Value: value}
			if o.RemoveDefaultAttrs {
				m.IsDefault = func(prop, val string) bool {
					return !d.HasAttr(id, prop) && isDefaultProperty(d, id, prop, val, u)
				}
			}
			if s := m.Minify(attr.Val); s == "" {
				d.RemoveAttr(id, "style")
			} else {
				d.SetAttr(id, "style", s)
			}
			break
		}
		return true
	})
	return nil
}

// minifySheetElement replaces the content of a style element by the compacted style sheet, or removes the element when the sheet is empty.
func minifySheetElement(d *tree.Document, id tree.NodeID, value func(prop, val string) string) {
	if typ, ok := d.Attr(id, "type"); ok && typ != "" && typ != "text/css" {
		return
	}
	for _, child := range d.Children(id) {
		if kind := d.Kind(child); kind != tree.TextNode && kind != tree.CDATANode {
			return
		}
	}
	sheet, err := style.MinifySheet(d.Text(id), value)
	if err != nil {
		return
	} else if sheet == "" {
		if !d.HasAttr(id, "id") {
			d.Remove(id)
		}
		return
	}
	setContent(d, id, sheet)
}

// setContent replaces the children of an element by a single CDATA section, which is serialized as text when that is shorter.
func setContent(d *tree.Document, id tree.NodeID, s string) {
	for _, child := range append([]tree.NodeID{}, d.Children(id)...) {
		d.Remove(child)
	}
	d.AppendChild(id, d.NewNode(tree.CDATANode, tree.Name{}, s))
}
