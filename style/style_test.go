package style

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tdewolff/test"
)

func TestParse(t *testing.T) {
	decls, err := Parse(" FILL : red ; stroke-width:  1px  2px;opacity:.5 !important;--My-Var: a  b ")
	require.NoError(t, err)
	test.T(t, decls, []Decl{
		{"fill", "red", false},
		{"stroke-width", "1px 2px", false},
		{"opacity", ".5", true},
		{"--My-Var", "a  b", false},
	})

	decls, err = Parse("")
	require.NoError(t, err)
	test.T(t, len(decls), 0)

	_, err = Parse("fill:red;}")
	test.That(t, err != nil)
}

func TestMinify(t *testing.T) {
	var styleTests = []struct {
		style    string
		expected string
	}{
		{"fill: red; stroke: blue;", "fill:red;stroke:blue"},
		{"fill:red;fill:blue", "fill:blue"},
		{"fill:red!important;fill:blue", "fill:red!important"},
		{"fill:red;fill:blue !important", "fill:blue!important"},
		{"font-size:10px;font:12px serif;font-size:14px", "font:12px serif;font-size:14px"},
		{"unknown-prop : some  value", "unknown-prop:some value"},
		{"fill:red;}", "fill:red;}"},
		{"", ""},
	}

	m := Minifier{}
	for _, tt := range styleTests {
		t.Run(tt.style, func(t *testing.T) {
			test.String(t, m.Minify(tt.style), tt.expected)
		})
	}
}

func TestMinifyHooks(t *testing.T) {
	m := Minifier{
		Value: func(prop, val string) string {
			if prop == "fill" && val == "#ff0000" {
				return "red"
			}
			return val
		},
		IsDefault: func(prop, val string) bool {
			return prop == "fill-opacity" && val == "1"
		},
	}
	test.String(t, m.Minify("fill-opacity:1;fill:#ff0000"), "fill:red")
	test.String(t, m.Minify("fill-opacity:1!important"), "fill-opacity:1!important")
	test.String(t, m.Minify("--fill:#ff0000"), "--fill:#ff0000")
}

func TestMinifySheet(t *testing.T) {
	var sheetTests = []struct {
		sheet    string
		expected string
	}{
		{".a { fill : red ; }", ".a{fill:red}"},
		{"/* comment */ .a , .b > .c { fill: red; fill: blue }", ".a,.b>.c{fill:blue}"},
		{".a {} .b { stroke: none }", ".b{stroke:none}"},
		{"@media screen and (min-width: 100px) { .a { fill: red } }", "@media screen and (min-width: 100px){.a{fill:red}}"},
		{"@media print { .a {} }", ""},
		{"@import url(a.css);", "@import url(a.css);"},
		{"@font-face { font-family: 'A  B'; src: url(a.woff) }", "@font-face{font-family:'A  B';src:url(a.woff)}"},
		{"text:nth-child(2n + 1) { fill: red }", "text:nth-child(2n + 1){fill:red}"},
		{"[title=\"a  b\"] { fill: red }", "[title=\"a  b\"]{fill:red}"},
	}

	value := func(prop, val string) string {
		return val
	}
	for _, tt := range sheetTests {
		t.Run(tt.sheet, func(t *testing.T) {
			out, err := MinifySheet(tt.sheet, value)
			require.NoError(t, err)
			test.String(t, out, tt.expected)
		})
	}
}

func TestRules(t *testing.T) {
	rules, err := Rules("@font-face { font-family: A; src: url(a.woff) } @media print { .a { fill: red } }")
	require.NoError(t, err)
	names := []string{}
	for _, rule := range rules {
		if rule.Name != "" {
			names = append(names, rule.Name)
		} else {
			names = append(names, strings.TrimSpace(rule.Prelude))
		}
	}
	test.T(t, names, []string{"@font-face", "@media", ".a"})
}

func FuzzMinify(f *testing.F) {
	f.Add("fill:red;stroke:blue")
	f.Fuzz(func(t *testing.T, s string) {
		m := Minifier{}
		out := m.Minify(s)
		test.String(t, m.Minify(out), out)
	})
}
