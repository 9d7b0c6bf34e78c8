// Package tree is the document model of an SVG file: an arena of nodes addressed by NodeID.
package tree

import (
	"fmt"
	"strings"
)

// NodeID addresses a node in a Document.
type NodeID int32

// Nil is the invalid node.
const Nil NodeID = -1

// Kind is the type of a node.
type Kind uint8

// Node kinds.
const (
	DocumentNode Kind = iota
	ElementNode
	TextNode
	CDATANode
	CommentNode
	DeclNode
	DoctypeNode
	ProcInstNode
	EntityNode
)

func (k Kind) String() string {
	switch k {
	case DocumentNode:
		return "Document"
	case ElementNode:
		return "Element"
	case TextNode:
		return "Text"
	case CDATANode:
		return "CDATA"
	case CommentNode:
		return "Comment"
	case DeclNode:
		return "Decl"
	case DoctypeNode:
		return "Doctype"
	case ProcInstNode:
		return "ProcInst"
	case EntityNode:
		return "Entity"
	}
	return fmt.Sprintf("Invalid(%d)", int(k))
}

// Name is a qualified name, Space is the namespace prefix.
type Name struct {
	Space, Local string
}

// ParseName splits a qualified name at its colon.
func ParseName(s string) Name {
	if i := strings.IndexByte(s, ':'); 0 < i && i+1 < len(s) {
		return Name{s[:i], s[i+1:]}
	}
	return Name{"", s}
}

func (n Name) String() string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}

// IsNamespaceDecl is true for xmlns and xmlns:prefix.
func (n Name) IsNamespaceDecl() bool {
	return n.Space == "" && n.Local == "xmlns" || n.Space == "xmlns"
}

// Attr is an attribute of an element. Raw values contain verbatim entity references and must not be escaped or modified.
type Attr struct {
	Name Name
	Val  string
	Raw  bool
}

type node struct {
	kind     Kind
	name     Name
	attrs    []Attr
	data     string
	parent   NodeID
	children []NodeID
}

// Document is a single rooted tree. Node 0 is the document node, its children are the top-level nodes.
type Document struct {
	nodes []node
}

// New returns an empty document.
func New() *Document {
	d := &Document{}
	d.nodes = append(d.nodes, node{kind: DocumentNode, parent: Nil})
	return d
}

// Root returns the document node.
func (d *Document) Root() NodeID {
	return 0
}

// DocumentElement returns the top-level element, or Nil.
func (d *Document) DocumentElement() NodeID {
	for _, child := range d.nodes[0].children {
		if d.nodes[child].kind == ElementNode {
			return child
		}
	}
	return Nil
}

// NewElement creates a detached element.
func (d *Document) NewElement(name Name) NodeID {
	return d.newNode(node{kind: ElementNode, name: name})
}

// NewNode creates a detached node of a non-element kind. For processing instructions name holds the target.
func (d *Document) NewNode(kind Kind, name Name, data string) NodeID {
	if kind == ElementNode || kind == DocumentNode {
		panic("tree: NewNode of kind " + kind.String())
	}
	return d.newNode(node{kind: kind, name: name, data: data})
}

func (d *Document) newNode(n node) NodeID {
	n.parent = Nil
	d.nodes = append(d.nodes, n)
	return NodeID(len(d.nodes) - 1)
}

// Len returns the number of nodes ever allocated.
func (d *Document) Len() int {
	return len(d.nodes)
}

////////////////////////////////////////////////////////////////

func (d *Document) Kind(id NodeID) Kind {
	return d.nodes[id].kind
}

func (d *Document) Name(id NodeID) Name {
	return d.nodes[id].name
}

func (d *Document) SetName(id NodeID, name Name) {
	d.nodes[id].name = name
}

// Data returns the content of a text, CDATA, comment, doctype, processing instruction or entity node.
func (d *Document) Data(id NodeID) string {
	return d.nodes[id].data
}

func (d *Document) SetData(id NodeID, data string) {
	d.nodes[id].data = data
}

func (d *Document) Parent(id NodeID) NodeID {
	return d.nodes[id].parent
}

// Children returns the children of a node. The slice must not be modified and is invalidated by structural changes.
func (d *Document) Children(id NodeID) []NodeID {
	return d.nodes[id].children
}

// Is returns true for an element with the given unprefixed or svg-prefixed local name.
func (d *Document) Is(id NodeID, local string) bool {
	n := &d.nodes[id]
	return n.kind == ElementNode && n.name.Local == local && (n.name.Space == "" || n.name.Space == "svg")
}

// Elements returns the element children of a node.
func (d *Document) Elements(id NodeID) []NodeID {
	var elems []NodeID
	for _, child := range d.nodes[id].children {
		if d.nodes[child].kind == ElementNode {
			elems = append(elems, child)
		}
	}
	return elems
}

// Ancestors returns the element ancestors of a node, nearest first.
func (d *Document) Ancestors(id NodeID) []NodeID {
	var ids []NodeID
	for p := d.nodes[id].parent; p != Nil && d.nodes[p].kind == ElementNode; p = d.nodes[p].parent {
		ids = append(ids, p)
	}
	return ids
}

// Attached returns true if the node is reachable from the document node.
func (d *Document) Attached(id NodeID) bool {
	for ; id != Nil; id = d.nodes[id].parent {
		if id == 0 {
			return true
		}
	}
	return false
}

////////////////////////////////////////////////////////////////

// AppendChild attaches a detached child as the last child of parent.
func (d *Document) AppendChild(parent, child NodeID) {
	d.mustBeDetached(child)
	d.nodes[child].parent = parent
	d.nodes[parent].children = append(d.nodes[parent].children, child)
}

// InsertBefore attaches a detached child in front of ref, which must be a child of parent.
func (d *Document) InsertBefore(parent, child, ref NodeID) {
	d.mustBeDetached(child)
	i := d.index(parent, ref)
	children := d.nodes[parent].children
	children = append(children, Nil)
	copy(children[i+1:], children[i:])
	children[i] = child
	d.nodes[parent].children = children
	d.nodes[child].parent = parent
}

// Remove detaches a node and its subtree from its parent.
func (d *Document) Remove(id NodeID) {
	parent := d.nodes[id].parent
	if parent == Nil {
		return
	}
	i := d.index(parent, id)
	children := d.nodes[parent].children
	copy(children[i:], children[i+1:])
	d.nodes[parent].children = children[:len(children)-1]
	d.nodes[id].parent = Nil
}

// Replace puts the detached node new in the place of old and detaches old.
func (d *Document) Replace(old, new NodeID) {
	parent := d.nodes[old].parent
	if parent == Nil {
		panic("tree: Replace of a detached node")
	}
	if d.nodes[new].parent != Nil {
		d.Remove(new)
	}
	i := d.index(parent, old)
	d.nodes[parent].children[i] = new
	d.nodes[new].parent = parent
	d.nodes[old].parent = Nil
}

func (d *Document) mustBeDetached(id NodeID) {
	if d.nodes[id].parent != Nil || id == 0 {
		panic(fmt.Sprintf("tree: node %d is already attached", id))
	}
}

func (d *Document) index(parent, child NodeID) int {
	for i, c := range d.nodes[parent].children {
		if c == child {
			return i
		}
	}
	panic(fmt.Sprintf("tree: node %d is not a child of %d", child, parent))
}

////////////////////////////////////////////////////////////////

// Attrs returns the attributes of an element in document order. The slice must not be modified.
func (d *Document) Attrs(id NodeID) []Attr {
	return d.nodes[id].attrs
}

// SetAttrs replaces all attributes.
func (d *Document) SetAttrs(id NodeID, attrs []Attr) {
	d.nodes[id].attrs = attrs
}

// Attr returns the value of an attribute given by its qualified name.
func (d *Document) Attr(id NodeID, name string) (string, bool) {
	for _, attr := range d.nodes[id].attrs {
		if attrIs(attr.Name, name) {
			return attr.Val, true
		}
	}
	return "", false
}

func (d *Document) HasAttr(id NodeID, name string) bool {
	_, ok := d.Attr(id, name)
	return ok
}

// SetAttr sets an attribute value, appending the attribute if it does not exist.
func (d *Document) SetAttr(id NodeID, name, val string) {
	attrs := d.nodes[id].attrs
	for i := range attrs {
		if attrIs(attrs[i].Name, name) {
			attrs[i].Val = val
			attrs[i].Raw = false
			return
		}
	}
	d.nodes[id].attrs = append(attrs, Attr{Name: ParseName(name), Val: val})
}

// RemoveAttr removes an attribute and returns whether it existed.
func (d *Document) RemoveAttr(id NodeID, name string) bool {
	attrs := d.nodes[id].attrs
	for i := range attrs {
		if attrIs(attrs[i].Name, name) {
			d.nodes[id].attrs = append(attrs[:i], attrs[i+1:]...)
			return true
		}
	}
	return false
}

// FilterAttrs keeps the attributes for which keep returns true.
func (d *Document) FilterAttrs(id NodeID, keep func(Attr) bool) {
	attrs := d.nodes[id].attrs[:0]
	for _, attr := range d.nodes[id].attrs {
		if keep(attr) {
			attrs = append(attrs, attr)
		}
	}
	d.nodes[id].attrs = attrs
}

func attrIs(n Name, name string) bool {
	if n.Space == "" {
		return n.Local == name
	}
	return len(name) == len(n.Space)+1+len(n.Local) && name[len(n.Space)] == ':' && strings.HasPrefix(name, n.Space) && strings.HasSuffix(name, n.Local)
}

////////////////////////////////////////////////////////////////

// Walk visits the subtree of id in pre-order. Returning false from fn skips the children of that node.
func (d *Document) Walk(id NodeID, fn func(NodeID) bool) {
	if !fn(id) {
		return
	}
	for i := 0; i < len(d.nodes[id].children); i++ {
		child := d.nodes[id].children[i]
		d.Walk(child, fn)
		if i < len(d.nodes[id].children) && d.nodes[id].children[i] != child {
			i-- // child was detached or replaced
		}
	}
}

// WalkPost visits the subtree of id in post-order, children may be removed or replaced by fn.
func (d *Document) WalkPost(id NodeID, fn func(NodeID)) {
	children := append([]NodeID{}, d.nodes[id].children...)
	for _, child := range children {
		if d.nodes[child].parent == id {
			d.WalkPost(child, fn)
		}
	}
	fn(id)
}

// Text returns the concatenated text and CDATA content of a subtree.
func (d *Document) Text(id NodeID) string {
	sb := strings.Builder{}
	d.Walk(id, func(n NodeID) bool {
		if k := d.nodes[n].kind; k == TextNode || k == CDATANode {
			sb.WriteString(d.nodes[n].data)
		}
		return true
	})
	return sb.String()
}

////////////////////////////////////////////////////////////////

// LookupNamespace resolves a prefix in the scope of an element, the empty prefix resolves the default namespace.
func (d *Document) LookupNamespace(id NodeID, prefix string) (string, bool) {
	switch prefix {
	case "xml":
		return "http://www.w3.org/XML/1998/namespace", true
	case "xmlns":
		return "http://www.w3.org/2000/xmlns/", true
	}
	for ; id != Nil; id = d.nodes[id].parent {
		if d.nodes[id].kind != ElementNode {
			continue
		}
		for _, attr := range d.nodes[id].attrs {
			if prefix == "" && attr.Name.Space == "" && attr.Name.Local == "xmlns" || prefix != "" && attr.Name.Space == "xmlns" && attr.Name.Local == prefix {
				return attr.Val, true
			}
		}
	}
	return "", false
}

// Namespaces returns the namespace table: every prefix declared in the attached tree mapped to its URI, plus the implicit xml prefix. A prefix bound to different URIs maps to the first declaration in document order.
func (d *Document) Namespaces() map[string]string {
	ns := map[string]string{"xml": "http://www.w3.org/XML/1998/namespace"}
	d.Walk(0, func(id NodeID) bool {
		for _, attr := range d.nodes[id].attrs {
			if attr.Name.IsNamespaceDecl() {
				prefix := ""
				if attr.Name.Space == "xmlns" {
					prefix = attr.Name.Local
				}
				if _, ok := ns[prefix]; !ok {
					ns[prefix] = attr.Val
				}
			}
		}
		return true
	})
	return ns
}

////////////////////////////////////////////////////////////////

// Check validates the structural invariants of the attached tree.
func (d *Document) Check() error {
	seen := make([]bool, len(d.nodes))
	var check func(NodeID) error
	check = func(id NodeID) error {
		if seen[id] {
			return fmt.Errorf("node %d is reachable twice", id)
		}
		seen[id] = true
		n := &d.nodes[id]
		if id != 0 && n.kind == DocumentNode {
			return fmt.Errorf("node %d is a nested document", id)
		}
		if n.kind != ElementNode && n.kind != DocumentNode && 0 < len(n.children) {
			return fmt.Errorf("%v node %d has children", n.kind, id)
		}
		if n.kind == ElementNode && n.name.Local == "" {
			return fmt.Errorf("element %d has no name", id)
		}
		for i, attr := range n.attrs {
			for _, prev := range n.attrs[:i] {
				if prev.Name == attr.Name {
					return fmt.Errorf("element %d has duplicate attribute %v", id, attr.Name)
				}
			}
		}
		for _, child := range n.children {
			if d.nodes[child].parent != id {
				return fmt.Errorf("node %d has parent %d instead of %d", child, d.nodes[child].parent, id)
			}
			if err := check(child); err != nil {
				return err
			}
		}
		return nil
	}
	return check(0)
}
