package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tdewolff/test"
)

func build() (*Document, NodeID, NodeID, NodeID) {
	d := New()
	svg := d.NewElement(Name{"", "svg"})
	d.SetAttr(svg, "xmlns", "http://www.w3.org/2000/svg")
	d.SetAttr(svg, "xmlns:xlink", "http://www.w3.org/1999/xlink")
	d.AppendChild(d.Root(), svg)
	g := d.NewElement(Name{"", "g"})
	d.AppendChild(svg, g)
	rect := d.NewElement(Name{"", "rect"})
	d.SetAttr(rect, "width", "1")
	d.AppendChild(g, rect)
	return d, svg, g, rect
}

func TestParseName(t *testing.T) {
	test.T(t, ParseName("svg"), Name{"", "svg"})
	test.T(t, ParseName("xlink:href"), Name{"xlink", "href"})
	test.T(t, ParseName(":x"), Name{"", ":x"})
	test.T(t, ParseName("x:"), Name{"", "x:"})
	test.T(t, Name{"xlink", "href"}.String(), "xlink:href")
	test.That(t, Name{"", "xmlns"}.IsNamespaceDecl())
	test.That(t, Name{"xmlns", "xlink"}.IsNamespaceDecl())
	test.That(t, !Name{"xlink", "href"}.IsNamespaceDecl())
}

func TestStructure(t *testing.T) {
	d, svg, g, rect := build()
	test.T(t, d.DocumentElement(), svg)
	test.T(t, d.Parent(rect), g)
	test.T(t, d.Ancestors(rect), []NodeID{g, svg})
	test.That(t, d.Is(g, "g"))
	require.NoError(t, d.Check())

	// replace the group by its child
	d.Replace(g, rect)
	test.T(t, d.Children(svg), []NodeID{rect})
	test.T(t, d.Parent(rect), svg)
	test.T(t, d.Parent(g), Nil)
	test.That(t, !d.Attached(g))
	require.NoError(t, d.Check())

	text := d.NewNode(TextNode, Name{}, "x")
	d.InsertBefore(svg, text, rect)
	test.T(t, d.Children(svg), []NodeID{text, rect})
	test.T(t, d.Elements(svg), []NodeID{rect})

	d.Remove(text)
	test.T(t, d.Children(svg), []NodeID{rect})
	test.T(t, d.Parent(text), Nil)
	require.NoError(t, d.Check())
}

func TestAttachTwice(t *testing.T) {
	d, svg, _, rect := build()
	assert.Panics(t, func() { d.AppendChild(svg, rect) })
	assert.Panics(t, func() { d.NewNode(ElementNode, Name{}, "") })
}

func TestAttrs(t *testing.T) {
	d, svg, _, rect := build()
	val, ok := d.Attr(rect, "width")
	test.That(t, ok)
	test.String(t, val, "1")

	d.SetAttr(rect, "width", "2")
	d.SetAttr(rect, "height", "3")
	test.T(t, d.Attrs(rect), []Attr{{Name{"", "width"}, "2", false}, {Name{"", "height"}, "3", false}})

	test.That(t, d.HasAttr(svg, "xmlns:xlink"))
	test.That(t, !d.HasAttr(svg, "xlink"))
	test.That(t, d.RemoveAttr(rect, "width"))
	test.That(t, !d.RemoveAttr(rect, "width"))

	d.FilterAttrs(svg, func(attr Attr) bool { return !attr.Name.IsNamespaceDecl() })
	test.T(t, len(d.Attrs(svg)), 0)
}

func TestWalk(t *testing.T) {
	d, svg, g, rect := build()
	var order []NodeID
	d.Walk(d.Root(), func(id NodeID) bool {
		order = append(order, id)
		return true
	})
	test.T(t, order, []NodeID{d.Root(), svg, g, rect})

	order = order[:0]
	d.Walk(d.Root(), func(id NodeID) bool {
		order = append(order, id)
		return id != g
	})
	test.T(t, order, []NodeID{d.Root(), svg, g})

	order = order[:0]
	d.WalkPost(d.Root(), func(id NodeID) {
		order = append(order, id)
		if id == g {
			d.Remove(g)
		}
	})
	test.T(t, order, []NodeID{rect, g, svg, d.Root()})
	test.T(t, len(d.Children(svg)), 0)
}

func TestWalkRemove(t *testing.T) {
	d := New()
	svg := d.NewElement(Name{"", "svg"})
	d.AppendChild(d.Root(), svg)
	for _, s := range []string{"a", "b", "c"} {
		d.AppendChild(svg, d.NewNode(CommentNode, Name{}, s))
	}

	var seen []string
	d.Walk(svg, func(id NodeID) bool {
		if d.Kind(id) == CommentNode {
			seen = append(seen, d.Data(id))
			d.Remove(id)
		}
		return true
	})
	test.T(t, seen, []string{"a", "b", "c"})
	test.T(t, len(d.Children(svg)), 0)
}

func TestNamespaces(t *testing.T) {
	d, svg, g, rect := build()
	d.SetAttr(g, "xmlns:xlink", "urn:other")

	uri, ok := d.LookupNamespace(rect, "xlink")
	test.That(t, ok)
	test.String(t, uri, "urn:other")
	uri, _ = d.LookupNamespace(svg, "xlink")
	test.String(t, uri, "http://www.w3.org/1999/xlink")
	uri, _ = d.LookupNamespace(rect, "")
	test.String(t, uri, "http://www.w3.org/2000/svg")
	_, ok = d.LookupNamespace(rect, "inkscape")
	test.That(t, !ok)

	ns := d.Namespaces()
	test.T(t, ns, map[string]string{
		"":      "http://www.w3.org/2000/svg",
		"xlink": "http://www.w3.org/1999/xlink",
		"xml":   "http://www.w3.org/XML/1998/namespace",
	})
}

func TestText(t *testing.T) {
	d := New()
	text := d.NewElement(Name{"", "text"})
	d.AppendChild(d.Root(), text)
	d.AppendChild(text, d.NewNode(TextNode, Name{}, "a"))
	tspan := d.NewElement(Name{"", "tspan"})
	d.AppendChild(text, tspan)
	d.AppendChild(tspan, d.NewNode(CDATANode, Name{}, "b"))
	test.String(t, d.Text(text), "ab")
}

func TestCheck(t *testing.T) {
	d, _, _, rect := build()
	d.SetAttrs(rect, []Attr{{Name: Name{"", "x"}}, {Name: Name{"", "x"}}})
	test.That(t, d.Check() != nil)
}
