package style

import (
	"strings"

	douceur "github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
)

// MinifySheet compacts a style sheet: comments and insignificant whitespace are removed, rules without declarations are dropped and values are passed through value if set. On error s is returned unchanged.
func MinifySheet(s string, value func(prop, val string) string) (string, error) {
	sheet, err := parser.Parse(s)
	if err != nil {
		return s, err
	}
	sb := strings.Builder{}
	writeRules(&sb, sheet.Rules, value)
	if t := sb.String(); len(t) <= len(s) {
		return t, nil
	}
	return s, nil
}

// Rules returns all qualified rules of a style sheet, including those nested in at-rules.
func Rules(s string) ([]*douceur.Rule, error) {
	sheet, err := parser.Parse(s)
	if err != nil {
		return nil, err
	}
	var rules []*douceur.Rule
	var collect func([]*douceur.Rule)
	collect = func(rs []*douceur.Rule) {
		for _, rule := range rs {
			rules = append(rules, rule)
			collect(rule.Rules)
		}
	}
	collect(sheet.Rules)
	return rules, nil
}

func writeRules(sb *strings.Builder, rules []*douceur.Rule, value func(prop, val string) string) {
	for _, rule := range rules {
		if rule.Kind == douceur.QualifiedRule {
			if len(rule.Declarations) == 0 {
				continue
			}
			sb.WriteString(collapseSelector(rule.Prelude))
			writeDecls(sb, rule.Declarations, value)
		} else if rule.EmbedsRules() {
			inner := strings.Builder{}
			writeRules(&inner, rule.Rules, value)
			if inner.Len() == 0 {
				continue
			}
			writeAtRuleName(sb, rule)
			sb.WriteByte('{')
			sb.WriteString(inner.String())
			sb.WriteByte('}')
		} else if 0 < len(rule.Declarations) {
			writeAtRuleName(sb, rule)
			writeDecls(sb, rule.Declarations, value)
		} else if rule.Prelude != "" {
			writeAtRuleName(sb, rule)
			sb.WriteByte(';')
		}
	}
}

func writeAtRuleName(sb *strings.Builder, rule *douceur.Rule) {
	sb.WriteString(rule.Name)
	if prelude := collapseSpace(rule.Prelude); prelude != "" {
		if prelude[0] != '"' && prelude[0] != '\'' && prelude[0] != '(' {
			sb.WriteByte(' ')
		}
		sb.WriteString(prelude)
	}
}

func writeDecls(sb *strings.Builder, decls []*douceur.Declaration, value func(prop, val string) string) {
	ds := make([]Decl, 0, len(decls))
	for _, decl := range decls {
		prop := strings.TrimSpace(decl.Property)
		if !strings.HasPrefix(prop, "--") {
			prop = strings.ToLower(prop)
		}
		val := collapseSpace(decl.Value)
		if value != nil && !strings.HasPrefix(prop, "--") {
			val = value(prop, val)
		}
		ds = append(ds, Decl{prop, val, decl.Important})
	}
	sb.WriteByte('{')
	sb.WriteString(Format(Dedupe(ds)))
	sb.WriteByte('}')
}

// collapseSpace replaces whitespace runs outside of strings by a single space and trims the ends.
func collapseSpace(s string) string {
	sb := strings.Builder{}
	var quote byte
	space := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if quote == 0 && (c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f') {
			space = true
			continue
		}
		if space && 0 < sb.Len() {
			sb.WriteByte(' ')
		}
		space = false
		if quote == 0 && (c == '"' || c == '\'') {
			quote = c
		} else if c == quote && s[i-1] != '\\' {
			quote = 0
		}
		sb.WriteByte(c)
	}
	return sb.String()
}

// collapseSelector also removes the spaces around selector list separators and combinators outside of parentheses and brackets.
func collapseSelector(s string) string {
	s = collapseSpace(s)
	sb := strings.Builder{}
	var quote byte
	level := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if quote != 0 {
			if c == quote && s[i-1] != '\\' {
				quote = 0
			}
			sb.WriteByte(c)
			continue
		}
		switch c {
		case '"', '\'':
			quote = c
		case '(', '[':
			level++
		case ')', ']':
			level--
		case ' ':
			if level == 0 && (i+1 < len(s) && isCombinator(s[i+1]) || 0 < i && isCombinator(s[i-1])) {
				continue
			}
		}
		sb.WriteByte(c)
	}
	return sb.String()
}

func isCombinator(c byte) bool {
	return c == ',' || c == '>' || c == '+' || c == '~'
}
