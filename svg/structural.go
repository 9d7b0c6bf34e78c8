package svg

import (
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/svgmin/tree"
)

// isSVG returns true for elements in the SVG namespace, or unprefixed elements when no default namespace is declared.
func isSVG(d *tree.Document, id tree.NodeID) bool {
	name := d.Name(id)
	uri, ok := d.LookupNamespace(id, name.Space)
	if !ok {
		return name.Space == ""
	}
	return uri == svgNamespace
}

func isWhitespaceText(d *tree.Document, id tree.NodeID) bool {
	return d.Kind(id) == tree.TextNode && parse.IsAllWhitespace([]byte(d.Data(id)))
}

////////////////////////////////////////////////////////////////

// removeDeclarations drops the XML declaration and the DOCTYPE, entities have been resolved by the parser.
func removeDeclarations(d *tree.Document, o *Options) error {
	for _, id := range append([]tree.NodeID{}, d.Children(d.Root())...) {
		if kind := d.Kind(id); kind == tree.DeclNode || kind == tree.DoctypeNode {
			d.Remove(id)
		}
	}
	return nil
}

// removeComments removes all comments except those starting with an exclamation mark, which usually hold a license.
func removeComments(d *tree.Document, o *Options) error {
	if !o.RemoveComments {
		return nil
	}
	d.WalkPost(d.Root(), func(id tree.NodeID) {
		if d.Kind(id) == tree.CommentNode && !strings.HasPrefix(d.Data(id), "!") {
			d.Remove(id)
		}
	})
	return nil
}

func removeMetadata(d *tree.Document, o *Options) error {
	if !o.RemoveMetadata {
		return nil
	}
	d.Walk(d.Root(), func(id tree.NodeID) bool {
		if d.Kind(id) != tree.ElementNode {
			return true
		}
		if local := d.Name(id).Local; (local == "metadata" || local == "title" || local == "desc") && isSVG(d, id) && id != d.DocumentElement() {
			d.Remove(id)
			return false
		}
		return true
	})
	return nil
}

////////////////////////////////////////////////////////////////

// removeEditorNamespaces removes elements and attributes of editor vocabularies and then all namespace declarations that are no longer used.
func removeEditorNamespaces(d *tree.Document, o *Options) error {
	if !o.RemoveEditorNamespaces {
		return nil
	}
	u := scanUsage(d)
	keepDataName := u.scripted || u.sheetMentions("data-name")

	// namespaces are resolved before anything is removed
	var elems []tree.NodeID
	drops := map[tree.NodeID]map[tree.Name]bool{}
	d.Walk(d.Root(), func(id tree.NodeID) bool {
		if d.Kind(id) != tree.ElementNode {
			return true
		}
		if space := d.Name(id).Space; space != "" && id != d.DocumentElement() {
			if uri, ok := d.LookupNamespace(id, space); ok && editorNamespaces[uri] {
				elems = append(elems, id)
				return false
			}
		}
		drop := map[tree.Name]bool{}
		for _, attr := range d.Attrs(id) {
			if attr.Name.Space == "xmlns" {
				drop[attr.Name] = editorNamespaces[attr.Val]
			} else if attr.Name.Space != "" {
				uri, ok := d.LookupNamespace(id, attr.Name.Space)
				drop[attr.Name] = ok && editorNamespaces[uri]
			} else if attr.Name.Local == "data-name" {
				drop[attr.Name] = !keepDataName
			}
		}
		drops[id] = drop
		return true
	})
	for _, id := range elems {
		d.Remove(id)
	}
	for id, drop := range drops {
		d.FilterAttrs(id, func(attr tree.Attr) bool {
			return !drop[attr.Name]
		})
	}

	d.Walk(d.Root(), func(id tree.NodeID) bool {
		if d.Kind(id) != tree.ElementNode {
			return true
		}
		unused := map[string]bool{}
		for _, attr := range d.Attrs(id) {
			if attr.Name.Space == "xmlns" && !prefixUsed(d, id, attr.Name.Local) {
				unused[attr.Name.Local] = true
			}
		}
		d.FilterAttrs(id, func(attr tree.Attr) bool {
			return attr.Name.Space != "xmlns" || !unused[attr.Name.Local]
		})
		return true
	})
	return nil
}

// prefixUsed returns true if the prefix is used by an element or attribute name in the subtree of id, or if any value or text in it mentions the prefix, since those might be qualified names as well.
func prefixUsed(d *tree.Document, id tree.NodeID, prefix string) bool {
	qualified := prefix + ":"
	used := false
	d.Walk(id, func(n tree.NodeID) bool {
		if used {
			return false
		}
		switch d.Kind(n) {
		case tree.ElementNode:
			if d.Name(n).Space == prefix {
				used = true
			}
			for _, attr := range d.Attrs(n) {
				if attr.Name.Space == prefix || attr.Name.Space != "xmlns" && strings.Contains(attr.Val, qualified) {
					used = true
				}
			}
		case tree.TextNode, tree.CDATANode, tree.ProcInstNode:
			if strings.Contains(d.Data(n), qualified) {
				used = true
			}
		}
		return !used
	})
	return used
}

////////////////////////////////////////////////////////////////

// collapseGroups replaces groups without rendering attributes by their single child element, innermost first.
func collapseGroups(d *tree.Document, o *Options) error {
	if !o.CollapseGroups {
		return nil
	}
	u := scanUsage(d)
	if u.groupSelectors() {
		return nil
	}
	d.WalkPost(d.Root(), func(id tree.NodeID) {
		if !d.Is(id, "g") {
			return
		}
		if parent := d.Parent(id); parent == tree.Nil || d.Kind(parent) == tree.ElementNode && d.Is(parent, "switch") {
			return
		}
		for _, attr := range d.Attrs(id) {
			if attr.Name != (tree.Name{Local: "id"}) || u.referenced(attr.Val) {
				return
			}
		}

		child := tree.Nil
		for _, c := range d.Children(id) {
			if d.Kind(c) == tree.ElementNode && child == tree.Nil {
				child = c
			} else if !isWhitespaceText(d, c) {
				return
			}
		}
		if child == tree.Nil {
			return
		}
		if local := d.Name(child).Local; animations[local] || local == "title" || local == "desc" || local == "metadata" {
			return
		}
		d.Remove(child)
		d.Replace(id, child)
	})
	return nil
}

////////////////////////////////////////////////////////////////

// removeHiddenEmpty removes elements that do not render, bottom-up so that emptied containers are removed as well.
func removeHiddenEmpty(d *tree.Document, o *Options) error {
	if !o.RemoveHiddenEmpty {
		return nil
	}
	u := scanUsage(d)
	if u.scripted || u.animated {
		return nil
	}
	root := d.DocumentElement()
	d.WalkPost(d.Root(), func(id tree.NodeID) {
		if id == root || d.Kind(id) != tree.ElementNode || !isSVG(d, id) {
			return
		}
		if (isHidden(d, id, u) || isZeroArea(d, id, u) || isEmptyContainer(d, id)) && !holdsReferencedID(d, id, u) {
			d.Remove(id)
		}
	})
	return nil
}

func holdsReferencedID(d *tree.Document, id tree.NodeID, u *usage) bool {
	held := false
	d.Walk(id, func(n tree.NodeID) bool {
		if d.Kind(n) == tree.ElementNode {
			if val, ok := d.Attr(n, "id"); ok && u.referenced(val) {
				held = true
			}
		}
		return !held
	})
	return held
}

func isHidden(d *tree.Document, id tree.NodeID, u *usage) bool {
	local := d.Name(id).Local
	if !graphics[local] {
		return false
	}
	if !u.sheetMentionsProperty("display") {
		if val, ok := propertyValue(d, id, "display"); ok && val == "none" {
			return true
		}
	}
	if !u.sheetMentionsProperty("opacity") && !insideClipPath(d, id) {
		if val, ok := propertyValue(d, id, "opacity"); ok && val != "" {
			if f, ok := parseNumber(val); ok && f == 0.0 {
				return true
			}
		}
	}
	if local != "text" && local != "use" && !u.sheetMentionsProperty("visibility") {
		if val, ok := propertyValue(d, id, "visibility"); ok && (val == "hidden" || val == "collapse") {
			visible := false
			for _, child := range d.Children(id) {
				d.Walk(child, func(n tree.NodeID) bool {
					if d.Kind(n) == tree.ElementNode {
						if val, ok := propertyValue(d, n, "visibility"); !ok || val != "" {
							visible = true
						}
					}
					return !visible
				})
			}
			return !visible
		}
	}
	return false
}

func insideClipPath(d *tree.Document, id tree.NodeID) bool {
	for _, a := range d.Ancestors(id) {
		if d.Is(a, "clipPath") {
			return true
		}
	}
	return false
}

// isZeroArea returns true for shapes that are explicitly disabled by a zero size or have no path data.
func isZeroArea(d *tree.Document, id tree.NodeID, u *usage) bool {
	var props []string
	switch d.Name(id).Local {
	case "rect":
		props = []string{"width", "height"}
	case "circle":
		props = []string{"r"}
	case "ellipse":
		props = []string{"rx", "ry"}
	case "path":
		if u.sheetMentionsProperty("d") {
			return false
		}
		val, _ := d.Attr(id, "d")
		return parse.IsAllWhitespace([]byte(val))
	case "polyline", "polygon":
		val, _ := d.Attr(id, "points")
		return parse.IsAllWhitespace([]byte(val))
	default:
		return false
	}
	for _, prop := range props {
		if u.sheetMentionsProperty(prop) {
			return false
		}
	}
	for _, prop := range props {
		if val, ok := propertyValue(d, id, prop); ok && val != "" {
			if f, _, ok := parseLength(val); ok && f == 0.0 {
				return true
			}
		}
	}
	return false
}

// isEmptyContainer returns true for containers without content, except when a filter could still render something.
func isEmptyContainer(d *tree.Document, id tree.NodeID) bool {
	local := d.Name(id).Local
	if !containers[local] || d.HasAttr(id, "filter") {
		return false
	} else if (local == "linearGradient" || local == "radialGradient" || local == "pattern") && (d.HasAttr(id, "href") || d.HasAttr(id, "xlink:href")) {
		return false
	}
	if val, ok := propertyValue(d, id, "filter"); !ok || val != "" {
		return false
	}
	for _, child := range d.Children(id) {
		if !isWhitespaceText(d, child) {
			return false
		}
	}
	return true
}
