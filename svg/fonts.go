package svg

import (
	"strings"

	"github.com/tdewolff/svgmin/style"
	"github.com/tdewolff/svgmin/tree"
)

// TextChars returns the characters of all text that is rendered by text, tspan and textPath elements. It can be used to subset the fonts that a document embeds.
func TextChars(d *tree.Document) map[rune]bool {
	chars := map[rune]bool{}
	d.Walk(d.Root(), func(id tree.NodeID) bool {
		if d.Is(id, "text") || d.Is(id, "tspan") || d.Is(id, "textPath") {
			for _, child := range d.Children(id) {
				if kind := d.Kind(child); kind == tree.TextNode || kind == tree.CDATANode {
					for _, r := range d.Data(child) {
						chars[r] = true
					}
				}
			}
		}
		return true
	})
	return chars
}

// FontFace is an @font-face rule of a style sheet.
type FontFace struct {
	Family string
	URL    string
	Weight string
	Style  string
}

// FontFaces returns the @font-face rules of all style elements. Style sheets that cannot be parsed are skipped.
func FontFaces(d *tree.Document) []FontFace {
	var faces []FontFace
	d.Walk(d.Root(), func(id tree.NodeID) bool {
		if !d.Is(id, "style") {
			return true
		}
		rules, err := style.Rules(d.Text(id))
		if err != nil {
			return false
		}
		for _, rule := range rules {
			if !strings.EqualFold(rule.Name, "@font-face") {
				continue
			}
			face := FontFace{}
			for _, decl := range rule.Declarations {
				val := strings.TrimSpace(decl.Value)
				switch strings.ToLower(strings.TrimSpace(decl.Property)) {
				case "font-family":
					face.Family = unquote(val)
				case "src":
					face.URL = firstURL(val)
				case "font-weight":
					face.Weight = val
				case "font-style":
					face.Style = val
				}
			}
			if face.Family != "" && face.URL != "" {
				faces = append(faces, face)
			}
		}
		return false
	})
	return faces
}

func unquote(s string) string {
	if 2 <= len(s) && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}

// firstURL returns the location of the first url() function in s.
func firstURL(s string) string {
	i := strings.Index(s, "url(")
	if i == -1 {
		return ""
	}
	s = s[i+4:]
	j := strings.IndexByte(s, ')')
	if j == -1 {
		return ""
	}
	return unquote(strings.TrimSpace(s[:j]))
}

// ReplaceFontURL replaces url(old) references in style elements by url('new'), whether quoted or not. It returns the number of replaced references.
func ReplaceFontURL(d *tree.Document, old, new string) int {
	n := 0
	d.Walk(d.Root(), func(id tree.NodeID) bool {
		if !d.Is(id, "style") {
			return true
		}
		sheet := d.Text(id)
		count := 0
		for _, pattern := range []string{"url('" + old + "')", `url("` + old + `")`, "url(" + old + ")"} {
			count += strings.Count(sheet, pattern)
			sheet = strings.ReplaceAll(sheet, pattern, "url('"+new+"')")
		}
		if 0 < count {
			setContent(d, id, sheet)
			n += count
		}
		return false
	})
	return n
}
