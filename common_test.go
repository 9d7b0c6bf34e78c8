package svgmin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tdewolff/parse/v2"
)

func assertDecimal(t *testing.T, x string, prec int, e string) {
	assert.Equal(t, e, string(Decimal([]byte(x), prec)), "numbers must match in "+x)
}

func TestNumber(t *testing.T) {
	var tests = []struct {
		number   string
		expected string
	}{
		{"0", "0"},
		{".0", "0"},
		{"-0", "0"},
		{"1.0", "1"},
		{"0.1", ".1"},
		{"+1", "1"},
		{"-1", "-1"},
		{"-0.1", "-.1"},
		{"100", "100"},
		{"1000", "1e3"},
		{"0.001", ".001"},
		{"0.0001", "1e-4"},
		{"100e1", "1e3"},
		{"1.1e+1", "11"},
		{"0.252", ".252"},
		{"1.252", "1.252"},
		{"-1.252", "-1.252"},
		{"0.075", ".075"},
		{".000100009", "100009e-9"},
		{".0001000009", ".0001000009"},
		{"5.", "5"},
		{"abc", "abc"},
		{"1e", "1e"},
		{"1.2.3", "1.2.3"},
	}
	for _, tt := range tests {
		t.Run(tt.number, func(t *testing.T) {
			assert.Equal(t, tt.expected, string(Number([]byte(tt.number))))
		})
	}
}

func TestDecimal(t *testing.T) {
	assertDecimal(t, "10.125", 2, "10.12")
	assertDecimal(t, "10.135", 2, "10.14")
	assertDecimal(t, "10.125", 1, "10.1")
	assertDecimal(t, "20.125", 1, "20.1")
	assertDecimal(t, "0.05", 1, "0")
	assertDecimal(t, "0.15", 1, ".2")
	assertDecimal(t, "0.25", 1, ".2")
	assertDecimal(t, "9.96", 1, "10")
	assertDecimal(t, "-0.004", 2, "0")
	assertDecimal(t, "1234.5", 0, "1234")
	assertDecimal(t, "1235.5", 0, "1236")
	assertDecimal(t, "0.0051", 2, ".01")
	assertDecimal(t, "0.005", 2, "0")
	assertDecimal(t, "0.015", 2, ".02")
	assertDecimal(t, "99.999", 2, "100")
	assertDecimal(t, "1e-7", 2, "0")
	assertDecimal(t, "1.23456", -1, "1.23456")
}

func TestAppendFloat(t *testing.T) {
	a, b := 0.1, 0.2 // summed at run time, constants fold to exactly .3
	var tests = []struct {
		f        float64
		prec     int
		expected string
	}{
		{10.125, 1, "10.1"},
		{a + b, 2, ".3"},
		{a + b, -1, ".30000000000000004"},
		{0.1 + 0.2, -1, ".3"},
		{-0.0001, 2, "0"},
		{-0.5, 2, "-.5"},
		{1e21, -1, "1e21"},
		{3, -1, "3"},
		{30.1 - 20.1, 1, "10"},
		{0, 2, "0"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, string(AppendFloat(nil, tt.f, tt.prec)))
	}
	assert.Equal(t, "x=5", string(AppendFloat([]byte("x="), 5.0, 2)))
}

func TestRound(t *testing.T) {
	assert.Equal(t, 10.12, Round(10.125, 2))
	assert.Equal(t, 2.68, Round(2.675, 2))
	assert.Equal(t, 0.0, Round(0.004, 2))
	assert.Equal(t, 1.5, Round(1.5, -1))
	assert.Equal(t, 20.0, Round(19.99, 1))
}

func TestDecimals(t *testing.T) {
	assert.Equal(t, 2, Decimals([]byte("1.250")))
	assert.Equal(t, 3, Decimals([]byte("1e-3")))
	assert.Equal(t, 0, Decimals([]byte("100")))
	assert.Equal(t, 0, Decimals([]byte("x")))
	assert.Equal(t, 1, FloatDecimals(20.1))
	assert.Equal(t, 0, FloatDecimals(1e6))
}

func FuzzDecimal(f *testing.F) {
	f.Add([]byte("10.125"), 2)
	f.Add([]byte("-0.00050"), 3)
	f.Add([]byte("1e-5"), 1)
	f.Fuzz(func(t *testing.T, num []byte, prec int) {
		if prec < -1 || 20 < prec || parse.Number(num) != len(num) {
			return
		}
		out := Decimal(parse.Copy(num), prec)
		if len(num) < len(out) {
			t.Fatalf("%q lengthened to %q", num, out)
		}
	})
}
