// Package style parses and minifies inline CSS declaration blocks as found in style attributes, and compacts style sheets.
package style

import (
	"io"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// Decl is a single declaration.
type Decl struct {
	Property  string
	Value     string
	Important bool
}

func (d Decl) String() string {
	if d.Important {
		return d.Property + ":" + d.Value + "!important"
	}
	return d.Property + ":" + d.Value
}

// Parse parses a declaration block. Property names are lower-cased except for custom properties, whitespace within values is reduced to single spaces.
func Parse(s string) ([]Decl, error) {
	p := css.NewParser(parse.NewInputString(s), true)
	var decls []Decl
	for {
		gt, _, data := p.Next()
		switch gt {
		case css.ErrorGrammar:
			if err := p.Err(); err != io.EOF {
				return nil, err
			}
			return decls, nil
		case css.CommentGrammar:
			continue
		case css.DeclarationGrammar:
			vals := p.Values()
			important := false
			if n := len(vals); 2 <= n && vals[n-2].TokenType == css.DelimToken && vals[n-2].Data[0] == '!' && vals[n-1].TokenType == css.IdentToken && strings.EqualFold(string(vals[n-1].Data), "important") {
				important = true
				vals = vals[:n-2]
				for 0 < len(vals) && vals[len(vals)-1].TokenType == css.WhitespaceToken {
					vals = vals[:len(vals)-1]
				}
			}
			sb := strings.Builder{}
			for _, val := range vals {
				sb.Write(val.Data)
			}
			decls = append(decls, Decl{string(data), sb.String(), important})
		case css.CustomPropertyGrammar:
			value := ""
			if vals := p.Values(); 0 < len(vals) {
				value = strings.TrimSpace(string(vals[0].Data))
			}
			decls = append(decls, Decl{Property: string(data), Value: value})
		default:
			return nil, parse.NewError(strings.NewReader(s), p.Offset(), "unexpected %s in declaration block", gt)
		}
	}
}

// Dedupe removes declarations that are overridden by a later declaration of the same property. An important declaration is not overridden by a later normal one.
func Dedupe(decls []Decl) []Decl {
	index := make(map[string]int, len(decls))
	out := make([]Decl, 0, len(decls))
	for _, decl := range decls {
		if i, ok := index[decl.Property]; ok {
			if out[i].Important && !decl.Important {
				continue
			}
			out = append(out[:i], out[i+1:]...)
			for prop, j := range index {
				if i < j {
					index[prop] = j - 1
				}
			}
		}
		index[decl.Property] = len(out)
		out = append(out, decl)
	}
	return out
}

// Format serializes declarations without whitespace or a trailing semicolon.
func Format(decls []Decl) string {
	sb := strings.Builder{}
	for i, decl := range decls {
		if i != 0 {
			sb.WriteByte(';')
		}
		sb.WriteString(decl.String())
	}
	return sb.String()
}

// Minifier minifies declaration blocks. Value, if set, minifies a property value. IsDefault, if set, reports whether a declaration can be dropped because it equals the initial or inherited value.
type Minifier struct {
	Value     func(prop, val string) string
	IsDefault func(prop, val string) bool
}

// Minify returns the minified declaration block, or s unchanged when it cannot be parsed.
func (m Minifier) Minify(s string) string {
	decls, err := Parse(s)
	if err != nil {
		return s
	}
	decls = Dedupe(decls)
	out := decls[:0]
	for _, decl := range decls {
		if m.Value != nil && !strings.HasPrefix(decl.Property, "--") {
			decl.Value = m.Value(decl.Property, decl.Value)
		}
		if !decl.Important && m.IsDefault != nil && m.IsDefault(decl.Property, decl.Value) {
			continue
		}
		out = append(out, decl)
	}
	if t := Format(out); len(t) <= len(s) {
		return t
	}
	return s
}
