package svgmin

import (
	"math"
	"strconv"
)

// Epsilon is the closest number to zero that is not considered to be zero.
var Epsilon = 0.00001

// RoundingMode selects how a number exactly halfway between two representable values is rounded.
type RoundingMode int

// Rounding modes.
const (
	HalfEven RoundingMode = iota
	HalfAwayFromZero
)

// Rounding is the rounding mode used when numbers are rounded to a precision.
const Rounding = HalfEven

// MaxDecimals caps the number of decimals that are kept for lossless output.
const MaxDecimals = 15

var zeroBytes = []byte("0")

// decimal is a number in scientific form: the value is 0.dig × 10^pt, negated when neg is set.
type decimal struct {
	neg bool
	dig []byte
	pt  int
}

// parseDecimal reads a number with an optional sign, fraction and exponent. It returns false if num is not exactly a number.
func parseDecimal(num []byte, buf []byte) (decimal, bool) {
	d := decimal{dig: buf[:0]}
	i := 0
	if i < len(num) && (num[i] == '+' || num[i] == '-') {
		d.neg = num[i] == '-'
		i++
	}
	digits := 0
	for ; i < len(num) && '0' <= num[i] && num[i] <= '9'; i++ {
		if num[i] != '0' || 0 < len(d.dig) {
			d.dig = append(d.dig, num[i])
		}
		if 0 < len(d.dig) {
			d.pt++
		}
		digits++
	}
	if i < len(num) && num[i] == '.' {
		i++
		for ; i < len(num) && '0' <= num[i] && num[i] <= '9'; i++ {
			if num[i] != '0' || 0 < len(d.dig) {
				d.dig = append(d.dig, num[i])
			} else {
				d.pt--
			}
			digits++
		}
	}
	if digits == 0 {
		return d, false
	}
	if i < len(num) && (num[i] == 'e' || num[i] == 'E') {
		i++
		neg := false
		if i < len(num) && (num[i] == '+' || num[i] == '-') {
			neg = num[i] == '-'
			i++
		}
		if i == len(num) {
			return d, false
		}
		exp := 0
		for ; i < len(num) && '0' <= num[i] && num[i] <= '9'; i++ {
			if exp < 100000 {
				exp = exp*10 + int(num[i]-'0')
			}
		}
		if neg {
			exp = -exp
		}
		d.pt += exp
	}
	if i != len(num) {
		return d, false
	}
	d.trim()
	return d, true
}

func floatDecimal(f float64, buf []byte) decimal {
	d := decimal{neg: f < 0}
	if f == 0 {
		d.dig = buf[:0]
		return d
	}
	// format as d.ddddde±xx
	b := strconv.AppendFloat(buf[:0], math.Abs(f), 'e', -1, 64)
	e := len(b) - 1
	for b[e] != 'e' {
		e--
	}
	exp, _ := strconv.Atoi(string(b[e+1:]))
	if e == 1 {
		d.dig = b[:1]
	} else {
		d.dig = append(b[:1], b[2:e]...)
	}
	d.pt = exp + 1
	d.trim()
	return d
}

func (d *decimal) trim() {
	for 0 < len(d.dig) && d.dig[len(d.dig)-1] == '0' {
		d.dig = d.dig[:len(d.dig)-1]
	}
	for 0 < len(d.dig) && d.dig[0] == '0' {
		d.dig = d.dig[1:]
		d.pt--
	}
	if len(d.dig) == 0 {
		d.neg = false
		d.pt = 0
	}
}

// round rounds to prec decimals, a negative prec keeps all digits.
func (d *decimal) round(prec int) {
	if prec < 0 {
		return
	}
	k := d.pt + prec // number of digits to keep
	if len(d.dig) <= k {
		return
	} else if k < 0 {
		d.dig = d.dig[:0]
		d.trim()
		return
	}

	up := false
	if d.dig[k] > '5' {
		up = true
	} else if d.dig[k] == '5' {
		for _, c := range d.dig[k+1:] {
			if c != '0' {
				up = true
				break
			}
		}
		if !up {
			if Rounding == HalfAwayFromZero {
				up = true
			} else if 0 < k {
				up = (d.dig[k-1]-'0')%2 == 1
			}
		}
	}

	d.dig = d.dig[:k]
	if up {
		i := k - 1
		for ; 0 <= i; i-- {
			if d.dig[i] != '9' {
				d.dig[i]++
				break
			}
			d.dig[i] = '0'
		}
		if i < 0 {
			d.dig = append(d.dig, 0)
			copy(d.dig[1:], d.dig)
			d.dig[0] = '1'
			d.pt++
		}
	}
	d.trim()
}

func (d decimal) decimals() int {
	if n := len(d.dig) - d.pt; 0 < n {
		return n
	}
	return 0
}

// appendTo writes the shortest of the plain and exponent notations.
func (d decimal) appendTo(dst []byte) []byte {
	if len(d.dig) == 0 {
		return append(dst, '0')
	}
	if d.neg {
		dst = append(dst, '-')
	}

	n := len(d.dig)
	plainLen := n
	if d.pt <= 0 {
		plainLen = 1 + -d.pt + n
	} else if n < d.pt {
		plainLen = d.pt
	} else if d.pt < n {
		plainLen = n + 1
	}
	exp := d.pt - n
	expLen := n + 1 + lenInt(exp)
	if expLen < plainLen {
		dst = append(dst, d.dig...)
		dst = append(dst, 'e')
		return strconv.AppendInt(dst, int64(exp), 10)
	}

	if d.pt <= 0 {
		dst = append(dst, '.')
		for i := 0; i < -d.pt; i++ {
			dst = append(dst, '0')
		}
		return append(dst, d.dig...)
	} else if n <= d.pt {
		dst = append(dst, d.dig...)
		for i := n; i < d.pt; i++ {
			dst = append(dst, '0')
		}
		return dst
	}
	dst = append(dst, d.dig[:d.pt]...)
	dst = append(dst, '.')
	return append(dst, d.dig[d.pt:]...)
}

func lenInt(i int) int {
	n := 1
	if i < 0 {
		n++
		i = -i
	}
	for 10 <= i {
		i /= 10
		n++
	}
	return n
}

////////////////////////////////////////////////////////////////

// Number minifies a number (see parse.Number) without changing its value. It returns num unchanged if it is not a number.
func Number(num []byte) []byte {
	return Decimal(num, -1)
}

// Decimal minifies a number and rounds it to prec decimals, a negative prec keeps all digits. Leading and trailing zeros are removed and the exponent notation is used when shorter. It returns num unchanged if it is not a number.
func Decimal(num []byte, prec int) []byte {
	var buf [32]byte
	d, ok := parseDecimal(num, buf[:])
	if !ok {
		return num
	}
	d.round(prec)
	return d.appendTo(nil)
}

// AppendFloat appends the minified representation of f rounded to prec decimals.
func AppendFloat(dst []byte, f float64, prec int) []byte {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return append(dst, zeroBytes...)
	}
	var buf [32]byte
	d := floatDecimal(f, buf[:])
	d.round(prec)
	return d.appendTo(dst)
}

// Round rounds f to prec decimals on its shortest decimal representation, so that 10.125 rounds to 10.12 for prec 2 in half-even mode.
func Round(f float64, prec int) float64 {
	if prec < 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return f
	}
	var buf [32]byte
	d := floatDecimal(f, buf[:])
	d.round(prec)
	r, _ := strconv.ParseFloat(string(d.appendTo(buf[:0:0])), 64)
	return r
}

// Decimals returns the number of decimals of a number, it returns 0 if num is not a number.
func Decimals(num []byte) int {
	var buf [32]byte
	d, ok := parseDecimal(num, buf[:])
	if !ok {
		return 0
	}
	return d.decimals()
}

// FloatDecimals returns the number of decimals in the shortest representation of f.
func FloatDecimals(f float64) int {
	var buf [32]byte
	d := floatDecimal(f, buf[:])
	return d.decimals()
}
