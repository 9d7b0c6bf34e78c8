package svg

import (
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/svgmin/tree"
)

// collapseWhitespace removes whitespace between elements and collapses whitespace runs in rendered text.
func collapseWhitespace(d *tree.Document, o *Options) error {
	if !o.CollapseWhitespace {
		return nil
	}
	collapseChildren(d, d.Root(), false)
	return nil
}

func collapseChildren(d *tree.Document, id tree.NodeID, inText bool) {
	mergeText(d, id)
	children := append([]tree.NodeID{}, d.Children(id)...)
	for _, child := range children {
		switch d.Kind(child) {
		case tree.TextNode, tree.CDATANode:
			data := d.Data(child)
			if !inText && parse.IsAllWhitespace([]byte(data)) {
				d.Remove(child)
			} else {
				d.SetData(child, collapseRuns(data))
			}
		case tree.ElementNode:
			local := d.Name(child).Local
			if space, _ := d.Attr(child, "xml:space"); space == "preserve" || preserved[local] {
				continue
			}
			collapseChildren(d, child, inText || textContent[local] && local != "a")
		}
	}
}

// mergeText joins adjacent text and CDATA children, which are left behind by removed comments and elements.
func mergeText(d *tree.Document, id tree.NodeID) {
	prev := tree.Nil
	for _, child := range append([]tree.NodeID{}, d.Children(id)...) {
		if kind := d.Kind(child); kind != tree.TextNode && kind != tree.CDATANode {
			prev = tree.Nil
		} else if prev == tree.Nil {
			prev = child
		} else {
			d.SetData(prev, d.Data(prev)+d.Data(child))
			d.Remove(child)
		}
	}
}

// collapseRuns replaces a whitespace run by a single space, or by a single newline when the run has only newlines. Renderers either drop newlines or treat them as spaces, so both are kept apart.
func collapseRuns(s string) string {
	sb := strings.Builder{}
	sb.Grow(len(s))
	for i := 0; i < len(s); {
		if !parse.IsWhitespace(s[i]) {
			sb.WriteByte(s[i])
			i++
			continue
		}
		newlines := true
		j := i
		for ; j < len(s) && parse.IsWhitespace(s[j]); j++ {
			if !parse.IsNewline(s[j]) {
				newlines = false
			}
		}
		if newlines {
			sb.WriteByte('\n')
		} else {
			sb.WriteByte(' ')
		}
		i = j
	}
	return sb.String()
}
