// Package color parses and shortens SVG and CSS color values.
package color

import (
	"math"
	"strconv"
	"strings"

	"github.com/tdewolff/svgmin"
)

// PreferHexOnTie selects the hexadecimal notation when a color keyword is exactly as long.
const PreferHexOnTie = true

// Color is an sRGB color with channels in [0,255] and alpha in [0,1].
type Color struct {
	R, G, B float64
	A       float64
}

var shortestNames = map[[3]uint8]string{}

func init() {
	for name, rgb := range names {
		if prev, ok := shortestNames[rgb]; !ok || len(name) < len(prev) || len(name) == len(prev) && name < prev {
			shortestNames[rgb] = name
		}
	}
}

// Equal returns true if both colors render identically.
func (c Color) Equal(o Color) bool {
	if c.A == 0 && o.A == 0 {
		return true
	}
	return math.Abs(c.R-o.R) < svgmin.Epsilon && math.Abs(c.G-o.G) < svgmin.Epsilon && math.Abs(c.B-o.B) < svgmin.Epsilon && math.Abs(c.A-o.A) < svgmin.Epsilon
}

// Parse parses a hexadecimal color, an rgb() or rgba() function, a color keyword or transparent. Keywords such as currentColor or none and paint servers are not colors.
func Parse(s string) (Color, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) == 0 {
		return Color{}, false
	} else if s[0] == '#' {
		return parseHex(s[1:])
	} else if strings.HasPrefix(s, "rgb(") || strings.HasPrefix(s, "rgba(") {
		return parseFunc(s)
	} else if s == "transparent" {
		return Color{}, true
	} else if rgb, ok := names[s]; ok {
		return Color{float64(rgb[0]), float64(rgb[1]), float64(rgb[2]), 1.0}, true
	}
	return Color{}, false
}

func hexValue(c byte) (uint8, bool) {
	if '0' <= c && c <= '9' {
		return c - '0', true
	} else if 'a' <= c && c <= 'f' {
		return c - 'a' + 10, true
	}
	return 0, false
}

func parseHex(s string) (Color, bool) {
	var v [4]float64
	v[3] = 255.0
	switch len(s) {
	case 3, 4:
		for i := 0; i < len(s); i++ {
			h, ok := hexValue(s[i])
			if !ok {
				return Color{}, false
			}
			v[i] = float64(h * 17)
		}
	case 6, 8:
		for i := 0; i < len(s); i += 2 {
			h1, ok1 := hexValue(s[i])
			h2, ok2 := hexValue(s[i+1])
			if !ok1 || !ok2 {
				return Color{}, false
			}
			v[i/2] = float64(h1<<4 | h2)
		}
	default:
		return Color{}, false
	}
	return Color{v[0], v[1], v[2], v[3] / 255.0}, true
}

func parseFunc(s string) (Color, bool) {
	if s[len(s)-1] != ')' {
		return Color{}, false
	}
	s = s[strings.IndexByte(s, '(')+1 : len(s)-1]

	var alpha string
	if i := strings.IndexByte(s, '/'); i != -1 {
		alpha = strings.TrimSpace(s[i+1:])
		s = s[:i]
		if strings.IndexByte(s, ',') != -1 {
			return Color{}, false
		}
	}
	var args []string
	if strings.IndexByte(s, ',') != -1 {
		args = strings.Split(s, ",")
		for i := range args {
			args[i] = strings.TrimSpace(args[i])
		}
	} else {
		args = strings.Fields(s)
	}
	if len(args) == 4 && alpha == "" {
		alpha = args[3]
		args = args[:3]
	}
	if len(args) != 3 {
		return Color{}, false
	}

	var v [3]float64
	for i, arg := range args {
		f, ok := parseChannel(arg, 255.0)
		if !ok {
			return Color{}, false
		}
		v[i] = f
	}
	c := Color{v[0], v[1], v[2], 1.0}
	if alpha != "" {
		a, ok := parseChannel(alpha, 1.0)
		if !ok {
			return Color{}, false
		}
		c.A = a
	}
	return c, true
}

// parseChannel parses a number or percentage of max, values outside [0,max] are rejected.
func parseChannel(s string, max float64) (float64, bool) {
	percentage := strings.HasSuffix(s, "%")
	if percentage {
		s = s[:len(s)-1]
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0.0, false
	}
	if percentage {
		f = f / 100.0 * max
	}
	if f < 0.0 || max < f {
		return 0.0, false
	}
	return f, true
}

func isByte(f float64) bool {
	return math.Abs(f-math.Round(f)) < 1e-9
}

const hexDigits = "0123456789abcdef"

func appendHex(dst []byte, v uint8) []byte {
	return append(dst, hexDigits[v>>4], hexDigits[v&15])
}

// Format returns the shortest notation of a color.
func Format(c Color) string {
	alpha := c.A * 255.0
	if !isByte(c.R) || !isByte(c.G) || !isByte(c.B) || !isByte(alpha) {
		b := []byte("rgb(")
		if c.A != 1.0 {
			b = []byte("rgba(")
		}
		b = svgmin.AppendFloat(b, c.R, -1)
		b = append(b, ',')
		b = svgmin.AppendFloat(b, c.G, -1)
		b = append(b, ',')
		b = svgmin.AppendFloat(b, c.B, -1)
		if c.A != 1.0 {
			b = append(b, ',')
			b = svgmin.AppendFloat(b, c.A, -1)
		}
		return string(append(b, ')'))
	}

	rgba := [4]uint8{uint8(math.Round(c.R)), uint8(math.Round(c.G)), uint8(math.Round(c.B)), uint8(math.Round(alpha))}
	n := 3
	if rgba[3] != 255 {
		n = 4
	}
	short := true
	for _, v := range rgba[:n] {
		if v>>4 != v&15 {
			short = false
		}
	}
	b := make([]byte, 1, 9)
	b[0] = '#'
	for _, v := range rgba[:n] {
		if short {
			b = append(b, hexDigits[v&15])
		} else {
			b = appendHex(b, v)
		}
	}

	if n == 3 {
		if name, ok := shortestNames[[3]uint8{rgba[0], rgba[1], rgba[2]}]; ok {
			if len(name) < len(b) || !PreferHexOnTie && len(name) == len(b) {
				return name
			}
		}
	}
	return string(b)
}

// Shorten returns the shortest notation of a color value, or s itself when it is not a color or is already shorter.
func Shorten(s string) string {
	c, ok := Parse(s)
	if !ok {
		return s
	}
	if t := Format(c); len(t) <= len(s) {
		return t
	}
	return s
}
