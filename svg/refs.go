package svg

import (
	"strings"

	"github.com/tdewolff/svgmin/style"
	"github.com/tdewolff/svgmin/tree"
)

var idrefsAttrs = map[string]bool{
	"aria-activedescendant": true,
	"aria-controls":         true,
	"aria-describedby":      true,
	"aria-details":          true,
	"aria-errormessage":     true,
	"aria-flowto":           true,
	"aria-labelledby":       true,
	"aria-owns":             true,
}

// usage holds the document-wide facts that passes consult before removing anything.
type usage struct {
	ids      map[string]bool
	scripted bool
	animated bool
	sheet    string // concatenated style sheets
}

// scanUsage collects the referenced ids of the attached tree. A script element or an event handler attribute makes every id referenced.
func scanUsage(d *tree.Document) *usage {
	u := &usage{ids: map[string]bool{}}
	sb := strings.Builder{}
	d.Walk(d.Root(), func(id tree.NodeID) bool {
		if d.Kind(id) != tree.ElementNode {
			return true
		}
		if d.Is(id, "script") {
			u.scripted = true
		} else if animations[d.Name(id).Local] {
			u.animated = true
		} else if d.Is(id, "style") {
			text := d.Text(id)
			sb.WriteString(text)
			sb.WriteByte('\n')
			u.addSheetRefs(text)
		}
		for _, attr := range d.Attrs(id) {
			u.addAttrRefs(attr)
		}
		return true
	})
	u.sheet = sb.String()
	return u
}

func (u *usage) addAttrRefs(attr tree.Attr) {
	name := attr.Name.Local
	if attr.Name.Space == "" && strings.HasPrefix(name, "on") {
		u.scripted = true
	}
	if name == "href" && (attr.Name.Space == "" || attr.Name.Space == "xlink") {
		if strings.HasPrefix(attr.Val, "#") {
			u.ids[attr.Val[1:]] = true
		}
	} else if attr.Name.Space == "" && (name == "begin" || name == "end") {
		for _, item := range strings.Split(attr.Val, ";") {
			item = strings.TrimSpace(item)
			if i := strings.IndexByte(item, '.'); 0 < i {
				u.ids[item[:i]] = true
			}
		}
	} else if attr.Name.Space == "" && idrefsAttrs[name] {
		for _, ref := range strings.Fields(attr.Val) {
			u.ids[ref] = true
		}
	}
	u.addURLRefs(attr.Val)
}

// addURLRefs adds the fragments of all url(#id) references in s.
func (u *usage) addURLRefs(s string) {
	for {
		i := strings.Index(s, "url(")
		if i == -1 {
			return
		}
		s = s[i+4:]
		end := strings.IndexByte(s, ')')
		if end == -1 {
			return
		}
		ref := strings.Trim(strings.TrimSpace(s[:end]), `"'`)
		if strings.HasPrefix(ref, "#") {
			u.ids[ref[1:]] = true
		}
		s = s[end+1:]
	}
}

// addSheetRefs adds every #name in a style sheet, this includes hexadecimal colors which only makes the scan more conservative.
func (u *usage) addSheetRefs(s string) {
	u.addURLRefs(s)
	for i := 0; i < len(s); i++ {
		if s[i] != '#' {
			continue
		}
		j := i + 1
		for j < len(s) && isIdentChar(s[j]) {
			j++
		}
		if i+1 < j {
			u.ids[s[i+1:j]] = true
		}
		i = j - 1
	}
}

func isIdentChar(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9' || c == '-' || c == '_' || 0x80 <= c || c == '\\'
}

// referenced returns true if the element id may be the target of a reference.
func (u *usage) referenced(id string) bool {
	return u.scripted || u.ids[id]
}

// sheetMentions returns true if a style sheet contains any of the words, in which case it might override the attribute.
func (u *usage) sheetMentions(words ...string) bool {
	for _, word := range words {
		if strings.Contains(u.sheet, word) {
			return true
		}
	}
	return false
}

// sheetMentionsProperty returns true if a style sheet might declare the property.
func (u *usage) sheetMentionsProperty(prop string) bool {
	s := u.sheet
	for {
		i := strings.Index(s, prop)
		if i == -1 {
			return false
		}
		j := i + len(prop)
		for j < len(s) && (s[j] == ' ' || s[j] == '\t' || s[j] == '\n' || s[j] == '\r') {
			j++
		}
		if (i == 0 || !isIdentChar(s[i-1])) && j < len(s) && s[j] == ':' {
			return true
		}
		s = s[i+len(prop):]
	}
}

// groupSelectors returns true if a style sheet has a selector that may stop matching when a group is replaced by its child. A sheet that does not parse counts as having one.
func (u *usage) groupSelectors() bool {
	if strings.TrimSpace(u.sheet) == "" {
		return false
	}
	rules, err := style.Rules(u.sheet)
	if err != nil {
		return true
	}
	for _, rule := range rules {
		for _, sel := range rule.Selectors {
			if structuralSelector(sel) {
				return true
			}
		}
	}
	return false
}

// structuralSelector is true for selectors with combinators other than descendant, pseudo-classes, universal selectors or a g type selector.
func structuralSelector(sel string) bool {
	if strings.ContainsAny(sel, ">+~*:") {
		return true
	}
	for i := 0; i < len(sel); i++ {
		if sel[i] != 'g' || i+1 < len(sel) && isIdentChar(sel[i+1]) {
			continue
		} else if i == 0 || !isIdentChar(sel[i-1]) && sel[i-1] != '.' && sel[i-1] != '#' {
			return true
		}
	}
	return false
}
