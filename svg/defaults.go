package svg

import (
	"strings"

	"github.com/tdewolff/svgmin/color"
	"github.com/tdewolff/svgmin/tree"
)

// removeDefaults removes attributes that equal their initial value.
func removeDefaults(d *tree.Document, o *Options) error {
	if !o.RemoveDefaultAttrs {
		return nil
	}
	u := scanUsage(d)
	d.Walk(d.Root(), func(id tree.NodeID) bool {
		if d.Kind(id) != tree.ElementNode || !isSVG(d, id) {
			return true
		}
		local := d.Name(id).Local
		drop := map[string]bool{}
		for _, attr := range d.Attrs(id) {
			if attr.Raw || attr.Name.Space != "" {
				continue
			}
			name := attr.Name.Local
			if local == "svg" && (name == "version" || name == "baseProfile") {
				drop[name] = true
			} else if isDefaultAttr(d, id, name, attr.Val, u) {
				drop[name] = true
			}
		}
		d.FilterAttrs(id, func(attr tree.Attr) bool {
			return attr.Raw || attr.Name.Space != "" || !drop[attr.Name.Local]
		})
		return true
	})
	return nil
}

func isDefaultAttr(d *tree.Document, id tree.NodeID, name, val string, u *usage) bool {
	local := d.Name(id).Local
	if local == "rect" && (name == "rx" || name == "ry") {
		other := "ry"
		if name == "ry" {
			other = "rx"
		}
		if f, _, ok := parseLength(val); !ok || f != 0.0 || u.sheetMentionsProperty(name) || u.sheetMentionsProperty(other) {
			return false
		}
		if val2, ok := d.Attr(id, other); ok {
			f, _, ok := parseLength(val2)
			return ok && f == 0.0
		}
		return true
	}
	if def, ok := elementDefaults[local][name]; ok {
		if hrefInherited[local] && (d.HasAttr(id, "href") || d.HasAttr(id, "xlink:href")) {
			return false
		}
		return !u.sheetMentionsProperty(name) && equalValues(name, val, def)
	}
	return isDefaultProperty(d, id, name, val, u)
}

// isDefaultProperty returns true if removing the presentation property does not change its computed value. Inherited properties must not be overridden by an ancestor, and elements that can be instantiated elsewhere through a reference keep them.
func isDefaultProperty(d *tree.Document, id tree.NodeID, name, val string, u *usage) bool {
	prop, ok := properties[name]
	if !ok || u.sheetMentionsProperty(name) || !equalValues(name, val, prop.initial) {
		return false
	} else if !prop.inherited {
		return true
	}

	if d.HasAttr(id, "id") {
		return false
	}
	ancestors := d.Ancestors(id)
	for _, a := range ancestors {
		if templates[d.Name(a).Local] || d.HasAttr(a, "id") {
			return false
		}
	}
	for _, a := range ancestors {
		v, ok := propertyValue(d, a, name)
		if !ok {
			return false
		} else if v != "" {
			return equalValues(name, v, prop.initial)
		}
	}
	return true
}

// equalValues compares values semantically: numbers and lengths by value, colors by their RGBA value and keywords literally.
func equalValues(name, a, b string) bool {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	if a == b {
		return true
	} else if a == "inherit" || b == "inherit" {
		return false
	}

	if opacityAttrs[name] {
		fa, oka := parseNumber(a)
		fb, okb := parseNumber(b)
		return oka && okb && fa == fb
	} else if name == "font-weight" {
		return fontWeight(a) != "" && fontWeight(a) == fontWeight(b)
	}

	fa, ua, oka := parseLength(a)
	fb, ub, okb := parseLength(b)
	if oka && okb {
		if fa == 0.0 && fb == 0.0 {
			return true
		}
		return fa == fb && normalizeUnit(ua) == normalizeUnit(ub)
	} else if oka || okb {
		return false
	}

	if ca, ok := color.Parse(a); ok {
		cb, ok := color.Parse(b)
		return ok && ca.Equal(cb)
	}
	return false
}

func normalizeUnit(unit string) string {
	if strings.EqualFold(unit, "px") {
		return ""
	}
	return strings.ToLower(unit)
}

func fontWeight(s string) string {
	switch s {
	case "normal", "400":
		return "400"
	case "bold", "700":
		return "700"
	}
	return ""
}
