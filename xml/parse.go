package xml

import (
	"bytes"
	"io"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/xml"
	"github.com/tdewolff/svgmin"
	"github.com/tdewolff/svgmin/tree"
	"golang.org/x/net/html/charset"
)

// ParseOptions configures the parser.
type ParseOptions struct {
	// KeepUnknownEntities keeps references to undeclared entities verbatim instead of failing.
	KeepUnknownEntities bool
}

var (
	utf8BOM        = []byte{0xEF, 0xBB, 0xBF}
	encodingRegexp = regexp.MustCompile(`^\s*<\?xml[^>]*?\sencoding\s*=\s*["']([A-Za-z0-9._:-]+)["']`)
	entityRegexp   = regexp.MustCompile(`<!ENTITY\s+([A-Za-z_:][\w.:-]*)\s+(?:"([^"]*)"|'([^']*)')\s*>`)
)

var predefinedEntities = map[string]string{
	"lt":   "<",
	"gt":   ">",
	"amp":  "&",
	"quot": `"`,
	"apos": "'",
}

type parser struct {
	src []byte
	in  *parse.Input
	l   *xml.Lexer
	o   ParseOptions
	doc *tree.Document

	stack    []tree.NodeID // open elements
	starts   []int         // offsets of the open start tags
	cur      tree.NodeID   // element or processing instruction whose start tag is being read
	curStart int
	piData   []byte
	entities map[string]string
}

// Parse parses an SVG document into a tree. Errors are of kind svgmin.MalformedMarkup and carry the position in b.
func Parse(b []byte, o ParseOptions) (*tree.Document, error) {
	b, err := decodeCharset(b)
	if err != nil {
		return nil, err
	}

	if bytes.IndexByte(b, '\r') != -1 {
		b = bytes.ReplaceAll(b, []byte("\r\n"), []byte("\n"))
		b = bytes.ReplaceAll(b, []byte("\r"), []byte("\n"))
	}

	// the input appends a NULL byte when there is capacity left, force a copy instead of writing into the caller's array
	in := parse.NewInputBytes(b[:len(b):len(b)])
	p := &parser{
		src: b,
		in:  in,
		l:   xml.NewLexer(in),
		o:   o,
		doc: tree.New(),
		cur: tree.Nil,
	}
	if err := p.parse(); err != nil {
		return nil, err
	}
	return p.doc, nil
}

// decodeCharset strips a byte order mark and transcodes documents that are not UTF-8.
func decodeCharset(b []byte) ([]byte, error) {
	label := ""
	if bytes.HasPrefix(b, utf8BOM) {
		return b[len(utf8BOM):], nil
	} else if bytes.HasPrefix(b, []byte{0xFE, 0xFF}) {
		label = "utf-16be"
	} else if bytes.HasPrefix(b, []byte{0xFF, 0xFE}) {
		label = "utf-16le"
	} else {
		head := b
		if 1024 < len(head) {
			head = head[:1024]
		}
		if m := encodingRegexp.FindSubmatch(head); m != nil {
			label = strings.ToLower(string(m[1]))
		}
	}
	switch label {
	case "", "utf-8", "utf8", "us-ascii", "ascii":
		return b, nil
	}

	r, err := charset.NewReaderLabel(label, bytes.NewReader(b))
	if err != nil {
		return nil, svgmin.NewError(svgmin.MalformedMarkup, b, 0, "unsupported encoding %s", label)
	}
	decoded, err := io.ReadAll(r)
	if err != nil {
		return nil, svgmin.NewError(svgmin.MalformedMarkup, b, 0, "cannot decode %s: %v", label, err)
	}
	return bytes.TrimPrefix(decoded, utf8BOM), nil
}

func (p *parser) errorf(offset int, message string, a ...interface{}) error {
	return svgmin.NewError(svgmin.MalformedMarkup, p.src, offset, message, a...)
}

func (p *parser) parent() tree.NodeID {
	if len(p.stack) == 0 {
		return p.doc.Root()
	}
	return p.stack[len(p.stack)-1]
}

func (p *parser) parse() error {
	for {
		offset := p.in.Offset()
		tt, data := p.l.Next()
		if tt != xml.ErrorToken {
			if err := p.checkChars(data, offset); err != nil {
				return err
			}
		}
		switch tt {
		case xml.ErrorToken:
			if err := p.l.Err(); err != io.EOF {
				if perr, ok := err.(*parse.Error); ok {
					return svgmin.FromParseError(svgmin.MalformedMarkup, perr, p.in.Offset())
				}
				return p.errorf(p.in.Offset(), "%v", err)
			}
			if p.cur != tree.Nil {
				return p.errorf(p.curStart, "unterminated tag")
			} else if 0 < len(p.stack) {
				top := p.stack[len(p.stack)-1]
				return p.errorf(p.starts[len(p.starts)-1], "unclosed element <%v>", p.doc.Name(top))
			} else if p.doc.DocumentElement() == tree.Nil {
				return p.errorf(offset, "missing root element")
			}
			return nil
		case xml.CommentToken:
			if !bytes.HasSuffix(data, []byte("-->")) {
				return p.errorf(offset, "unterminated comment")
			}
			p.doc.AppendChild(p.parent(), p.doc.NewNode(tree.CommentNode, tree.Name{}, string(p.l.Text())))
		case xml.CDATAToken:
			if !bytes.HasSuffix(data, cdataEndBytes) {
				return p.errorf(offset, "unterminated CDATA section")
			} else if len(p.stack) == 0 {
				return p.errorf(offset, "character data outside of root element")
			}
			p.doc.AppendChild(p.parent(), p.doc.NewNode(tree.CDATANode, tree.Name{}, string(p.l.Text())))
		case xml.DOCTYPEToken:
			if !bytes.HasSuffix(data, []byte(">")) {
				return p.errorf(offset, "unterminated DOCTYPE")
			} else if len(p.stack) != 0 || p.doc.DocumentElement() != tree.Nil {
				return p.errorf(offset, "DOCTYPE after root element")
			}
			text := p.l.Text()
			p.entities = parseEntityDecls(text)
			p.doc.AppendChild(p.doc.Root(), p.doc.NewNode(tree.DoctypeNode, tree.Name{}, string(parse.TrimWhitespace(text))))
		case xml.StartTagPIToken:
			if p.cur != tree.Nil {
				return p.errorf(p.curStart, "unterminated tag")
			}
			target := string(p.l.Text())
			if !isName(target) {
				return p.errorf(offset, "invalid processing instruction target %q", target)
			}
			if strings.EqualFold(target, "xml") {
				p.cur = p.doc.NewNode(tree.DeclNode, tree.Name{Local: target}, "")
			} else {
				p.cur = p.doc.NewNode(tree.ProcInstNode, tree.Name{Local: target}, "")
			}
			p.curStart = offset
			p.piData = p.piData[:0]
		case xml.StartTagToken:
			if p.cur != tree.Nil {
				return p.errorf(p.curStart, "unterminated tag")
			}
			name := string(p.l.Text())
			if !isName(name) {
				return p.errorf(offset, "invalid tag name %q", name)
			} else if len(p.stack) == 0 && p.doc.DocumentElement() != tree.Nil {
				return p.errorf(offset, "multiple root elements")
			}
			p.cur = p.doc.NewElement(tree.ParseName(name))
			p.curStart = offset
			p.doc.AppendChild(p.parent(), p.cur)
		case xml.AttributeToken:
			if p.cur == tree.Nil {
				return p.errorf(offset, "attribute outside of tag")
			}
			if k := p.doc.Kind(p.cur); k == tree.DeclNode || k == tree.ProcInstNode {
				p.piData = append(p.piData, data...)
				if k == tree.DeclNode {
					if err := p.attribute(data, offset); err != nil {
						return err
					}
				}
				break
			}
			if err := p.attribute(data, offset); err != nil {
				return err
			}
		case xml.StartTagCloseToken:
			if p.cur == tree.Nil || p.doc.Kind(p.cur) != tree.ElementNode {
				return p.errorf(offset, "unexpected '>'")
			}
			p.stack = append(p.stack, p.cur)
			p.starts = append(p.starts, p.curStart)
			p.cur = tree.Nil
		case xml.StartTagCloseVoidToken:
			if p.cur == tree.Nil || p.doc.Kind(p.cur) != tree.ElementNode {
				return p.errorf(offset, "unexpected '/>'")
			}
			p.cur = tree.Nil
		case xml.StartTagClosePIToken:
			if p.cur == tree.Nil || p.doc.Kind(p.cur) == tree.ElementNode {
				return p.errorf(offset, "unexpected '?>'")
			}
			if p.doc.Kind(p.cur) == tree.ProcInstNode {
				p.doc.SetData(p.cur, string(parse.TrimWhitespace(p.piData)))
			}
			p.doc.AppendChild(p.parent(), p.cur)
			p.cur = tree.Nil
		case xml.EndTagToken:
			if p.cur != tree.Nil {
				return p.errorf(p.curStart, "unterminated tag")
			}
			name := string(parse.TrimWhitespace(p.l.Text()))
			if len(p.stack) == 0 {
				return p.errorf(offset, "unexpected end tag </%s>", name)
			}
			top := p.stack[len(p.stack)-1]
			if expected := p.doc.Name(top).String(); name != expected {
				return p.errorf(offset, "mismatched end tag </%s>, expected </%s>", name, expected)
			}
			p.stack = p.stack[:len(p.stack)-1]
			p.starts = p.starts[:len(p.starts)-1]
		case xml.TextToken:
			if p.cur != tree.Nil {
				return p.errorf(p.curStart, "unterminated tag")
			} else if len(p.stack) == 0 {
				if !parse.IsAllWhitespace(data) {
					return p.errorf(offset, "text outside of root element")
				}
				break
			}
			if err := p.text(data, offset); err != nil {
				return err
			}
		}
	}
}

func (p *parser) attribute(data []byte, offset int) error {
	name := string(p.l.Text())
	val := p.l.AttrVal()
	if !isName(name) {
		return p.errorf(offset, "invalid attribute name %q", name)
	} else if len(val) == 0 {
		return p.errorf(offset, "attribute %s has no value", name)
	}
	valOffset := offset + bytes.LastIndex(data, val)
	if 2 <= len(val) && (val[0] == '"' || val[0] == '\'') && val[len(val)-1] == val[0] {
		val = val[1 : len(val)-1]
		valOffset++
	} else if val[0] == '"' || val[0] == '\'' {
		return p.errorf(offset, "unterminated attribute value")
	}

	attr := tree.Attr{Name: tree.ParseName(name)}
	for _, prev := range p.doc.Attrs(p.cur) {
		if prev.Name == attr.Name {
			return p.errorf(offset, "duplicate attribute %s", name)
		}
	}

	segs, err := p.unescape(val, valOffset)
	if err != nil {
		return err
	}
	if len(segs) == 1 && !segs[0].entity {
		attr.Val = segs[0].s
	} else if len(segs) != 0 {
		attr.Raw = true
		raw := []byte{}
		for _, seg := range segs {
			if seg.entity {
				raw = append(append(append(raw, '&'), seg.s...), ';')
			} else {
				raw = appendEscapedAttr(raw, seg.s)
			}
		}
		attr.Val = string(raw)
	}
	attrs := append(p.doc.Attrs(p.cur), attr)
	p.doc.SetAttrs(p.cur, attrs)
	return nil
}

func (p *parser) text(data []byte, offset int) error {
	segs, err := p.unescape(data, offset)
	if err != nil {
		return err
	}
	for _, seg := range segs {
		if seg.entity {
			p.doc.AppendChild(p.parent(), p.doc.NewNode(tree.EntityNode, tree.Name{}, seg.s))
		} else {
			p.doc.AppendChild(p.parent(), p.doc.NewNode(tree.TextNode, tree.Name{}, seg.s))
		}
	}
	return nil
}

// segment is either decoded text or the name of an unresolved entity.
type segment struct {
	s      string
	entity bool
}

// unescape resolves character and entity references.
func (p *parser) unescape(b []byte, offset int) ([]segment, error) {
	if bytes.IndexByte(b, '&') == -1 {
		return []segment{{s: string(b)}}, nil
	}

	var segs []segment
	sb := strings.Builder{}
	for i := 0; i < len(b); i++ {
		if b[i] != '&' {
			sb.WriteByte(b[i])
			continue
		}
		end := bytes.IndexByte(b[i:], ';')
		if end == -1 {
			return nil, p.errorf(offset+i, "unescaped '&'")
		}
		ref := b[i+1 : i+end]
		if 0 < len(ref) && ref[0] == '#' {
			r, ok := charRef(ref[1:])
			if !ok {
				return nil, p.errorf(offset+i, "invalid character reference &%s;", ref)
			}
			sb.WriteRune(r)
		} else if !isName(string(ref)) {
			return nil, p.errorf(offset+i, "unescaped '&'")
		} else if s, ok := predefinedEntities[string(ref)]; ok {
			sb.WriteString(s)
		} else if s, ok := p.entities[string(ref)]; ok {
			sb.WriteString(s)
		} else if p.o.KeepUnknownEntities {
			if 0 < sb.Len() {
				segs = append(segs, segment{s: sb.String()})
				sb.Reset()
			}
			segs = append(segs, segment{s: string(ref), entity: true})
		} else {
			return nil, p.errorf(offset+i, "undefined entity &%s;", ref)
		}
		i += end
	}
	if 0 < sb.Len() || len(segs) == 0 {
		segs = append(segs, segment{s: sb.String()})
	}
	return segs, nil
}

// charRef decodes the part after &# of a character reference.
func charRef(ref []byte) (rune, bool) {
	base := 10
	if 0 < len(ref) && ref[0] == 'x' {
		base = 16
		ref = ref[1:]
	}
	if len(ref) == 0 || 8 < len(ref) {
		return 0, false
	}
	n, err := strconv.ParseUint(string(ref), base, 32)
	if err != nil || !isChar(rune(n)) {
		return 0, false
	}
	return rune(n), true
}

// checkChars rejects invalid UTF-8 and code points that are not XML characters.
func (p *parser) checkChars(b []byte, offset int) error {
	for i := 0; i < len(b); {
		if c := b[i]; c < utf8.RuneSelf {
			if c < 0x20 && c != '\t' && c != '\n' && c != '\r' {
				return p.errorf(offset+i, "invalid character %#x", c)
			}
			i++
			continue
		}
		r, n := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && n == 1 {
			return p.errorf(offset+i, "invalid UTF-8")
		} else if !isChar(r) {
			return p.errorf(offset+i, "invalid character %U", r)
		}
		i += n
	}
	return nil
}

// isChar is true for code points allowed in XML 1.0 documents.
func isChar(r rune) bool {
	return r == 0x9 || r == 0xA || r == 0xD || 0x20 <= r && r <= 0xD7FF || 0xE000 <= r && r <= 0xFFFD || 0x10000 <= r && r <= 0x10FFFF
}

// parseEntityDecls returns the internal entities declared in a DOCTYPE. Replacement texts only resolve character references and predefined entities.
func parseEntityDecls(doctype []byte) map[string]string {
	entities := map[string]string{}
	for _, m := range entityRegexp.FindAllSubmatch(doctype, -1) {
		val := m[2]
		if val == nil {
			val = m[3]
		}
		name := string(m[1])
		if _, ok := entities[name]; ok {
			continue // first declaration is binding
		}
		entities[name] = string(replaceEntities(val))
	}
	return entities
}

func replaceEntities(b []byte) []byte {
	if bytes.IndexByte(b, '&') == -1 {
		return b
	}
	var out []byte
	for i := 0; i < len(b); i++ {
		if b[i] == '&' {
			if end := bytes.IndexByte(b[i:], ';'); end != -1 {
				ref := b[i+1 : i+end]
				if 0 < len(ref) && ref[0] == '#' {
					if r, ok := charRef(ref[1:]); ok {
						out = append(out, string(r)...)
						i += end
						continue
					}
				} else if s, ok := predefinedEntities[string(ref)]; ok {
					out = append(out, s...)
					i += end
					continue
				}
			}
		}
		out = append(out, b[i])
	}
	return out
}

func isNameStart(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || c == '_' || c == ':' || 0x80 <= c
}

func isName(s string) bool {
	if len(s) == 0 || !isNameStart(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		c := s[i]
		if !isNameStart(c) && !('0' <= c && c <= '9') && c != '-' && c != '.' {
			return false
		}
	}
	return true
}
