package pathdata

import (
	"strconv"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/svgmin"
)

// argument layouts per command: x and y are positional, r is an arc radius, n a plain number and f a flag
var layouts = map[byte]string{
	'M': "xy",
	'L': "xy",
	'T': "xy",
	'H': "x",
	'V': "y",
	'C': "xyxyxy",
	'S': "xyxy",
	'Q': "xyxy",
	'A': "rrnffxy",
}

type separator struct {
	prevDigit bool
	prevDot   bool // previous number contains a dot or exponent
}

func (s *separator) appendNum(dst, num []byte) []byte {
	if s.prevDigit && ('0' <= num[0] && num[0] <= '9' || num[0] == '.' && !s.prevDot) {
		dst = append(dst, ' ')
	}
	s.prevDigit = true
	s.prevDot = false
	for _, c := range num {
		if c == '.' || c == 'e' {
			s.prevDot = true
			break
		}
	}
	return append(dst, num...)
}

// Minifier minifies path data. Precision is the number of decimals kept for coordinates, a negative value keeps all of them.
type Minifier struct {
	Precision int

	prec int
	sep  separator
	abs  []byte
	rel  []byte
	num  []byte
}

// Minify returns the shortest encoding of the path data in b. On error b is returned unchanged together with an error of kind svgmin.InvalidPathData.
func (m *Minifier) Minify(b []byte) ([]byte, error) {
	p, err := Parse(b)
	if err != nil {
		return b, err
	}
	return m.AppendPath(nil, p), nil
}

// AppendPath appends the minified path to dst.
func (m *Minifier) AppendPath(dst []byte, p Path) []byte {
	m.prec = maxDecimals(p)
	if 0 <= m.Precision && m.Precision < m.prec {
		m.prec = m.Precision
	}
	m.sep = separator{}

	// true current point, true subpath start, their snapped counterparts
	var cx, cy, sx, sy float64
	var ox, oy, osx, osy float64
	var repeat byte // letter that may be omitted for the next command
	var vals [7]float64
	for _, cmd := range p {
		if cmd.Cmd == 'Z' {
			dst = append(dst, 'z')
			m.sep.prevDigit = false
			cx, cy, ox, oy = sx, sy, osx, osy
			repeat = 0
			continue
		}

		// absolute coordinates
		args := cmd.Args
		dx, dy := 0.0, 0.0
		if cmd.Rel {
			dx, dy = cx, cy
		}
		layout := layouts[cmd.Cmd]
		for i, kind := range []byte(layout) {
			switch kind {
			case 'x':
				vals[i] = args[i] + dx
			case 'y':
				vals[i] = args[i] + dy
			default:
				vals[i] = args[i]
			}
		}

		// new current point
		switch cmd.Cmd {
		case 'H':
			cx = vals[0]
		case 'V':
			cy = vals[0]
		default:
			cx, cy = vals[len(layout)-2], vals[len(layout)-1]
		}

		// snap positional arguments to the precision grid
		for i, kind := range []byte(layout) {
			if kind == 'x' || kind == 'y' {
				vals[i] = svgmin.Round(vals[i], m.prec)
			}
		}

		letter := cmd.Cmd
		nx, ny := ox, oy
		switch letter {
		case 'H':
			nx = vals[0]
		case 'V':
			ny = vals[0]
		case 'L':
			nx, ny = vals[0], vals[1]
			if ny == oy {
				letter = 'H'
				layout = "x"
			} else if nx == ox {
				letter = 'V'
				layout = "y"
				vals[0] = ny
			}
		default:
			nx, ny = vals[len(layout)-2], vals[len(layout)-1]
		}

		absSep, relSep := m.sep, m.sep
		m.abs = m.appendCommand(m.abs[:0], &absSep, letter, repeat, layout, vals[:len(layout)], 0.0, 0.0)
		m.rel = m.appendCommand(m.rel[:0], &relSep, letter+('a'-'A'), repeat, layout, vals[:len(layout)], ox, oy)
		chosen := letter
		if len(m.rel) < len(m.abs) {
			dst = append(dst, m.rel...)
			m.sep = relSep
			chosen = letter + ('a' - 'A')
		} else {
			dst = append(dst, m.abs...)
			m.sep = absSep
		}

		repeat = chosen
		if chosen == 'M' {
			repeat = 'L'
		} else if chosen == 'm' {
			repeat = 'l'
		}
		if letter == 'M' {
			sx, sy = cx, cy
			osx, osy = nx, ny
		}
		ox, oy = nx, ny
	}
	return dst
}

func (m *Minifier) appendCommand(dst []byte, sep *separator, letter, repeat byte, layout string, vals []float64, ox, oy float64) []byte {
	if letter != repeat {
		dst = append(dst, letter)
		sep.prevDigit = false
	}
	for i, kind := range []byte(layout) {
		switch kind {
		case 'x':
			m.num = svgmin.AppendFloat(m.num[:0], vals[i]-ox, m.prec)
		case 'y':
			m.num = svgmin.AppendFloat(m.num[:0], vals[i]-oy, m.prec)
		case 'f':
			m.num = append(m.num[:0], '0')
			if vals[i] != 0 {
				m.num[0] = '1'
			}
		case 'r':
			m.num = svgmin.AppendFloat(m.num[:0], vals[i], m.prec)
			if vals[i] != 0 && len(m.num) == 1 && m.num[0] == '0' {
				// radii must not collapse to a straight line
				m.num = svgmin.AppendFloat(m.num[:0], vals[i], -1)
			}
		default:
			m.num = svgmin.AppendFloat(m.num[:0], vals[i], m.prec)
		}
		dst = sep.appendNum(dst, m.num)
	}
	return dst
}

func maxDecimals(p Path) int {
	n := 0
	for _, cmd := range p {
		for _, arg := range cmd.Args {
			if dec := svgmin.FloatDecimals(arg); n < dec {
				n = dec
			}
		}
	}
	if svgmin.MaxDecimals < n {
		n = svgmin.MaxDecimals
	}
	return n
}

// MinifyPoints minifies a list of coordinate pairs as used by the points attribute. It returns b unchanged and false if it is not an even list of numbers.
func MinifyPoints(b []byte, prec int) ([]byte, bool) {
	var dst []byte
	var num []byte
	count := 0
	i := skipSeparators(b, 0)
	for i < len(b) {
		n := parse.Number(b[i:])
		if n == 0 {
			return b, false
		}
		f, err := strconv.ParseFloat(string(b[i:i+n]), 64)
		if err != nil {
			return b, false
		}
		num = svgmin.AppendFloat(num[:0], f, prec)
		if 0 < count && num[0] != '-' {
			dst = append(dst, ' ')
		}
		dst = append(dst, num...)
		count++
		i = skipSeparators(b, i+n)
	}
	if count%2 != 0 {
		return b, false
	}
	return dst, true
}
