package svg

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/svgmin"
	"github.com/tdewolff/svgmin/color"
	"github.com/tdewolff/svgmin/pathdata"
	"github.com/tdewolff/svgmin/style"
	"github.com/tdewolff/svgmin/tree"
)

// parseLength parses a number with an optional unit or percentage.
func parseLength(val string) (float64, string, bool) {
	b := parse.TrimWhitespace([]byte(val))
	n, u := parse.Dimension(b)
	if n == 0 || n+u != len(b) {
		return 0.0, "", false
	}
	f, err := strconv.ParseFloat(string(b[:n]), 64)
	if err != nil {
		return 0.0, "", false
	}
	return f, string(b[n:]), true
}

// parseNumber parses a number or a percentage as a fraction.
func parseNumber(val string) (float64, bool) {
	f, unit, ok := parseLength(val)
	if !ok || unit != "" && unit != "%" {
		return 0.0, false
	} else if unit == "%" {
		f /= 100.0
	}
	return f, true
}

// propertyValue returns the value of a presentation property, the style attribute takes precedence over the attribute. It returns false when the style attribute cannot be parsed.
func propertyValue(d *tree.Document, id tree.NodeID, name string) (string, bool) {
	if s, ok := d.Attr(id, "style"); ok {
		decls, err := style.Parse(s)
		if err != nil {
			return "", false
		}
		for i := len(decls) - 1; 0 <= i; i-- {
			if decls[i].Property == name {
				return strings.TrimSpace(decls[i].Value), true
			}
		}
	}
	val, _ := d.Attr(id, name)
	return strings.TrimSpace(val), true
}

func isZero(num []byte) bool {
	return len(num) == 1 && num[0] == '0'
}

// minifyLength minifies a number with an optional unit, rounded to prec decimals. A non-zero value is never rounded to zero. The px unit is only dropped in attributes, where user units equal pixels.
func minifyLength(val string, prec int, dropPx bool) string {
	b := parse.TrimWhitespace([]byte(val))
	n, u := parse.Dimension(b)
	if n == 0 || n+u != len(b) {
		return val
	}
	num := svgmin.Decimal(b[:n], prec)
	if isZero(num) {
		if exact := svgmin.Number(b[:n]); !isZero(exact) {
			num = exact
		}
	}
	unit := b[n:]
	if isZero(num) || dropPx && bytes.EqualFold(unit, []byte("px")) {
		unit = nil
	}
	return string(num) + string(unit)
}

// minifyList minifies a whitespace or comma separated list of lengths, it returns val if any item is not a length.
func minifyList(val string, prec int, dropPx bool) string {
	items := strings.FieldsFunc(val, func(r rune) bool {
		return r == ',' || r < 0x80 && parse.IsWhitespace(byte(r))
	})
	if len(items) == 0 {
		return val
	}
	sb := strings.Builder{}
	for i, item := range items {
		if _, _, ok := parseLength(item); !ok {
			return val
		}
		if i != 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(minifyLength(item, prec, dropPx))
	}
	return sb.String()
}

// minifyTransform minifies the numbers of a transform list without rounding, since errors would be magnified by the transformation. It returns val if it cannot be parsed.
func minifyTransform(val string) string {
	b := []byte(val)
	out := make([]byte, 0, len(b))
	i := 0
	skip := func() {
		for i < len(b) && (parse.IsWhitespace(b[i]) || b[i] == ',') {
			i++
		}
	}
	for {
		skip()
		if i == len(b) {
			break
		}
		start := i
		for i < len(b) && ('a' <= b[i] && b[i] <= 'z' || 'A' <= b[i] && b[i] <= 'Z') {
			i++
		}
		if start == i {
			return val
		}
		out = append(out, b[start:i]...)
		for i < len(b) && parse.IsWhitespace(b[i]) {
			i++
		}
		if i == len(b) || b[i] != '(' {
			return val
		}
		i++
		out = append(out, '(')
		first := true
		for {
			skip()
			if i == len(b) {
				return val
			} else if b[i] == ')' {
				i++
				break
			}
			n := parse.Number(b[i:])
			if n == 0 {
				return val
			}
			num := svgmin.Number(b[i : i+n])
			if !first && num[0] != '-' {
				out = append(out, ' ')
			}
			out = append(out, num...)
			first = false
			i += n
		}
		out = append(out, ')')
	}
	return string(out)
}

func isTextElement(local string) bool {
	return local == "text" || local == "tspan" || local == "altGlyph"
}

// minifyNumbers minifies lengths, coordinates, number lists, opacities and transforms in attributes.
func minifyNumbers(d *tree.Document, o *Options) error {
	if !o.MinifyNumbers {
		return nil
	}
	d.Walk(d.Root(), func(id tree.NodeID) bool {
		if d.Kind(id) != tree.ElementNode || !isSVG(d, id) {
			return true
		}
		local := d.Name(id).Local
		attrs := append([]tree.Attr{}, d.Attrs(id)...)
		for i, attr := range attrs {
			if attr.Raw || attr.Name.Space != "" {
				continue
			}
			name := attr.Name.Local
			if textListAttrs[name] && isTextElement(local) {
				attrs[i].Val = minifyList(attr.Val, o.Precision, true)
			} else if name == "viewBox" {
				attrs[i].Val = minifyList(attr.Val, -1, true)
			} else if listAttrs[name] {
				attrs[i].Val = minifyList(attr.Val, o.Precision, true)
			} else if lengthAttrs[name] || opacityAttrs[name] {
				attrs[i].Val = minifyLength(attr.Val, o.Precision, true)
			} else if transformAttrs[name] {
				attrs[i].Val = minifyTransform(attr.Val)
			}
		}
		d.SetAttrs(id, attrs)
		return true
	})
	return nil
}

////////////////////////////////////////////////////////////////

// minifyPaths minifies path data and point lists. Invalid path data is left untouched unless StrictPathData is set.
func minifyPaths(d *tree.Document, o *Options) error {
	if !o.MinifyPaths {
		return nil
	}
	m := &pathdata.Minifier{Precision: o.Precision}
	var err error
	d.Walk(d.Root(), func(id tree.NodeID) bool {
		if err != nil {
			return false
		} else if d.Kind(id) != tree.ElementNode || !isSVG(d, id) {
			return true
		}
		local := d.Name(id).Local
		attrs := append([]tree.Attr{}, d.Attrs(id)...)
		for i, attr := range attrs {
			if attr.Raw || attr.Name.Space != "" {
				continue
			}
			name := attr.Name.Local
			if name == "d" && (local == "path" || local == "glyph" || local == "missing-glyph") || name == "path" && (local == "animateMotion" || local == "textPath") {
				out, perr := m.Minify([]byte(attr.Val))
				if perr != nil {
					if o.StrictPathData {
						err = perr
						return false
					}
					continue
				}
				attrs[i].Val = string(out)
			} else if name == "points" && (local == "polyline" || local == "polygon") {
				if out, ok := pathdata.MinifyPoints([]byte(attr.Val), o.Precision); ok {
					attrs[i].Val = string(out)
				}
			}
		}
		d.SetAttrs(id, attrs)
		return true
	})
	return err
}

////////////////////////////////////////////////////////////////

func minifyColors(d *tree.Document, o *Options) error {
	if !o.MinifyColors {
		return nil
	}
	d.Walk(d.Root(), func(id tree.NodeID) bool {
		if d.Kind(id) != tree.ElementNode || !isSVG(d, id) {
			return true
		}
		attrs := append([]tree.Attr{}, d.Attrs(id)...)
		for i, attr := range attrs {
			if !attr.Raw && attr.Name.Space == "" && colorAttrs[attr.Name.Local] {
				attrs[i].Val = color.Shorten(attr.Val)
			}
		}
		d.SetAttrs(id, attrs)
		return true
	})
	return nil
}

// minifyValue minifies a property value in a style declaration, units are kept since CSS requires them.
func minifyValue(o *Options, prop, val string) string {
	if o.MinifyColors && colorAttrs[prop] {
		return color.Shorten(val)
	} else if o.MinifyNumbers {
		if listAttrs[prop] {
			return minifyList(val, o.Precision, false)
		} else if lengthAttrs[prop] || opacityAttrs[prop] {
			return minifyLength(val, o.Precision, false)
		}
	}
	return val
}
