package xml

import (
	"bytes"
	"io"

	"github.com/tdewolff/svgmin/tree"
)

var (
	cdataStartBytes = []byte("<![CDATA[")
	cdataEndBytes   = []byte("]]>")
)

// Render writes the document in its shortest form: childless elements are self-closed, attribute values use double quotes and only the necessary characters are escaped. It panics when the tree is not well-formed.
func Render(w io.Writer, d *tree.Document) error {
	_, err := w.Write(AppendDocument(nil, d))
	return err
}

// Bytes returns the serialized document.
func Bytes(d *tree.Document) []byte {
	return AppendDocument(nil, d)
}

// AppendDocument appends the serialized document to dst.
func AppendDocument(dst []byte, d *tree.Document) []byte {
	if err := d.Check(); err != nil {
		panic("xml: " + err.Error())
	}
	for _, child := range d.Children(d.Root()) {
		dst = appendNode(dst, d, child)
	}
	return dst
}

func appendNode(dst []byte, d *tree.Document, id tree.NodeID) []byte {
	switch d.Kind(id) {
	case tree.ElementNode:
		name := d.Name(id).String()
		dst = append(dst, '<')
		dst = append(dst, name...)
		dst = appendAttrs(dst, d.Attrs(id))
		children := d.Children(id)
		if len(children) == 0 {
			return append(dst, '/', '>')
		}
		dst = append(dst, '>')
		for _, child := range children {
			dst = appendNode(dst, d, child)
		}
		dst = append(dst, '<', '/')
		dst = append(dst, name...)
		return append(dst, '>')
	case tree.TextNode:
		return appendEscapedText(dst, d.Data(id))
	case tree.CDATANode:
		return appendCDATA(dst, d.Data(id))
	case tree.CommentNode:
		dst = append(dst, "<!--"...)
		dst = append(dst, d.Data(id)...)
		return append(dst, "-->"...)
	case tree.DeclNode:
		dst = append(dst, "<?"...)
		dst = append(dst, d.Name(id).Local...)
		dst = appendAttrs(dst, d.Attrs(id))
		return append(dst, "?>"...)
	case tree.ProcInstNode:
		dst = append(dst, "<?"...)
		dst = append(dst, d.Name(id).Local...)
		if data := d.Data(id); data != "" {
			dst = append(dst, ' ')
			dst = append(dst, data...)
		}
		return append(dst, "?>"...)
	case tree.DoctypeNode:
		dst = append(dst, "<!DOCTYPE "...)
		dst = append(dst, d.Data(id)...)
		return append(dst, '>')
	case tree.EntityNode:
		dst = append(dst, '&')
		dst = append(dst, d.Data(id)...)
		return append(dst, ';')
	}
	panic("xml: cannot render node of kind " + d.Kind(id).String())
}

func appendAttrs(dst []byte, attrs []tree.Attr) []byte {
	for _, attr := range attrs {
		dst = append(dst, ' ')
		dst = append(dst, attr.Name.String()...)
		dst = append(dst, '=', '"')
		if attr.Raw {
			dst = append(dst, attr.Val...)
		} else {
			dst = appendEscapedAttr(dst, attr.Val)
		}
		dst = append(dst, '"')
	}
	return dst
}

// appendEscapedAttr escapes an attribute value to be enclosed in double quotes. Whitespace other than spaces is escaped since parsers normalize it to spaces.
func appendEscapedAttr(dst []byte, s string) []byte {
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '&':
			dst = append(dst, "&amp;"...)
		case '<':
			dst = append(dst, "&lt;"...)
		case '"':
			dst = append(dst, "&#34;"...)
		case '\t':
			dst = append(dst, "&#9;"...)
		case '\n':
			dst = append(dst, "&#10;"...)
		case '\r':
			dst = append(dst, "&#13;"...)
		default:
			dst = append(dst, c)
		}
	}
	return dst
}

// appendEscapedText escapes character data, the > is only escaped when it closes a ]]> sequence.
func appendEscapedText(dst []byte, s string) []byte {
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '&':
			dst = append(dst, "&amp;"...)
		case '<':
			dst = append(dst, "&lt;"...)
		case '>':
			if 2 <= i && s[i-1] == ']' && s[i-2] == ']' {
				dst = append(dst, "&gt;"...)
			} else {
				dst = append(dst, '>')
			}
		case '\r':
			dst = append(dst, "&#13;"...)
		default:
			dst = append(dst, c)
		}
	}
	return dst
}

// appendCDATA writes character data as a CDATA section or as escaped text, whichever is shorter.
func appendCDATA(dst []byte, s string) []byte {
	textLen := len(s)
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '&':
			textLen += len("&amp;") - 1
		case '<':
			textLen += len("&lt;") - 1
		case '>':
			if 2 <= i && s[i-1] == ']' && s[i-2] == ']' {
				textLen += len("&gt;") - 1
			}
		case '\r':
			textLen += len("&#13;") - 1
		}
	}
	if textLen <= len(s)+len(cdataStartBytes)+len(cdataEndBytes) || bytes.Contains([]byte(s), cdataEndBytes) {
		return appendEscapedText(dst, s)
	}
	dst = append(dst, cdataStartBytes...)
	dst = append(dst, s...)
	return append(dst, cdataEndBytes...)
}
