package svg

import (
	"sort"

	"github.com/tdewolff/svgmin/tree"
)

func attrRank(n tree.Name) int {
	if n.Space == "" && n.Local == "xmlns" {
		return 0
	} else if n.Space == "xmlns" {
		return 1
	}
	return 2
}

// sortAttrs orders attributes with the default namespace first, then the prefixed namespace declarations and then all others by qualified name.
func sortAttrs(d *tree.Document, o *Options) error {
	if !o.SortAttrs {
		return nil
	}
	d.Walk(d.Root(), func(id tree.NodeID) bool {
		if d.Kind(id) != tree.ElementNode || len(d.Attrs(id)) < 2 {
			return true
		}
		attrs := append([]tree.Attr{}, d.Attrs(id)...)
		sort.SliceStable(attrs, func(i, j int) bool {
			ri, rj := attrRank(attrs[i].Name), attrRank(attrs[j].Name)
			if ri != rj {
				return ri < rj
			}
			return attrs[i].Name.String() < attrs[j].Name.String()
		})
		d.SetAttrs(id, attrs)
		return true
	})
	return nil
}
