package pathdata

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tdewolff/svgmin"
	"github.com/tdewolff/test"
)

func TestParse(t *testing.T) {
	p, err := Parse([]byte("M10,20 30 40 l5-5h1v.5C1 2 3 4 5 6s1 2 3 4Q1 2 3 4t1 2a5 5 30 1 0 10 10Z"))
	require.NoError(t, err)
	test.T(t, p, Path{
		{'M', false, []float64{10, 20}},
		{'L', false, []float64{30, 40}},
		{'L', true, []float64{5, -5}},
		{'H', true, []float64{1}},
		{'V', true, []float64{.5}},
		{'C', false, []float64{1, 2, 3, 4, 5, 6}},
		{'S', true, []float64{1, 2, 3, 4}},
		{'Q', false, []float64{1, 2, 3, 4}},
		{'T', true, []float64{1, 2}},
		{'A', true, []float64{5, 5, 30, 1, 0, 10, 10}},
		{'Z', false, nil},
	})

	p, err = Parse([]byte("m0 0a5 5 0 1110 10"))
	require.NoError(t, err)
	test.T(t, p[1].Args, []float64{5, 5, 0, 1, 1, 10, 10})

	p, err = Parse([]byte(" \n "))
	require.NoError(t, err)
	test.T(t, len(p), 0)
}

func TestParseErrors(t *testing.T) {
	var errorTests = []struct {
		path   string
		offset int
	}{
		{"L10 10", 0},
		{"10 10", 0},
		{"M10", 3},
		{"M10 10L", 6},
		{"M0 0X5", 4},
		{"M0 0A1 1 0 2 0 5 5", 11},
		{"M0 0z1", 5},
		{"M0 0L1 2 3", 10},
		{"M0 0L1 2 #", 9},
	}

	for _, tt := range errorTests {
		t.Run(tt.path, func(t *testing.T) {
			_, err := Parse([]byte(tt.path))
			require.Error(t, err)
			test.That(t, errors.Is(err, svgmin.ErrInvalidPathData))
			var perr *svgmin.Error
			require.True(t, errors.As(err, &perr))
			test.T(t, perr.Offset, tt.offset)
		})
	}
}

func TestMinify(t *testing.T) {
	var pathDataTests = []struct {
		pathData string
		expected string
	}{
		{"M10 10 20 10", "M10 10H20"},
		{"M10 10 10 20", "M10 10V20"},
		{"M50 50 100 100", "M50 50l50 50"},
		{"m50 50 40 40m50 50", "M50 50 90 90m50 50"},
		{"M10 10zM15 15", "M10 10zm5 5"},
		{"M50 50H55V55", "M50 50h5v5"},
		{"M10 10L11 10 11 11", "M10 10h1v1"},
		{"M10 10l1 0 0 1", "M10 10h1v1"},
		{"M10 10L11 11 0 0", "M10 10l1 1L0 0"},
		{"M246.614 51.028L246.614-5.665 189.922-5.665", "M246.614 51.028V-5.665H189.922"},
		{"M100,200 C100,100 250,100 250,200 S400,300 400,200", "M100 200c0-100 150-100 150 0s150 100 150 0"},
		{"M200,300 Q400,50 600,300 T1000,300", "M200 300q200-250 400 0t400 0"},
		{"M300,200 h-150 a150,150 0 1,0 150,-150 z", "M300 200H150A150 150 0 1 0 300 50z"},
		{"M100 100 L 300 100 L 200 100 z", "M100 100H300 200z"},
		{"M100 -100M200 300z", "M100-100M200 300z"},
		{"M0.5 0.6 M -100 0.5z", "M.5.6M-100 .5z"},
		{"M01.0 0.6 z", "M1 .6z"},
		{"M.1.0.0.2Z", "M.1 0 0 .2z"},
		{"m10 10 20 20 30 30", "M10 10 30 30 60 60"},
		{"M0 0a5 5 0 1110 10", "M0 0A5 5 0 1 1 10 10"},
		{"M-0 -0", "M0 0"},
		{"M1e3 0", "M1e3 0"},
		{"M0 0zl5 5", "M0 0zL5 5"},
		{"", ""},
		{" ", ""},
	}

	m := &Minifier{Precision: -1}
	for _, tt := range pathDataTests {
		t.Run(tt.pathData, func(t *testing.T) {
			out, err := m.Minify([]byte(tt.pathData))
			require.NoError(t, err)
			test.String(t, string(out), tt.expected)
		})
	}
}

func TestMinifyPrecision(t *testing.T) {
	var pathDataTests = []struct {
		pathData  string
		precision int
		expected  string
	}{
		{"M 10.125 20.125 L 10.125 30.125", 1, "M10.1 20.1v10"},
		{"M10.125 0 20.135 0", 2, "M10.12 0H20.14"},
		{"M0.001 0.004 5.555 6.666", 2, "M0 0 5.56 6.67"},
		{"M0 0A0.001 0.001 0 0 1 10 0", 2, "M0 0A.001.001 0 0 1 10 0"},
		{"m0.1 0.1 0.1 0.1 0.1 0.1 0.1 0.1", 0, "M0 0H0 0 0"},
		{"M1.23456 0", 10, "M1.23456 0"},
	}

	for _, tt := range pathDataTests {
		t.Run(fmt.Sprint(tt.pathData, "/", tt.precision), func(t *testing.T) {
			m := &Minifier{Precision: tt.precision}
			out, err := m.Minify([]byte(tt.pathData))
			require.NoError(t, err)
			test.String(t, string(out), tt.expected)
		})
	}
}

func TestMinifyError(t *testing.T) {
	m := &Minifier{Precision: 2}
	in := []byte("M0 0L5")
	out, err := m.Minify(in)
	test.That(t, errors.Is(err, svgmin.ErrInvalidPathData))
	test.T(t, out, in)
}

func TestMinifyPoints(t *testing.T) {
	var pointsTests = []struct {
		points   string
		expected string
		ok       bool
	}{
		{"10,20 30,40", "10 20 30 40", true},
		{"0.50, -1.0  2e2,0", ".5-1 200 0", true},
		{"1.005 2.015", "1 2.02", true},
		{"", "", true},
		{"1 2 3", "1 2 3", false},
		{"1 x", "1 x", false},
	}

	for _, tt := range pointsTests {
		t.Run(tt.points, func(t *testing.T) {
			out, ok := MinifyPoints([]byte(tt.points), 2)
			test.T(t, ok, tt.ok)
			test.String(t, string(out), tt.expected)
		})
	}
}

// absolute returns the absolute end points of all commands.
func absolute(p Path) [][2]float64 {
	var pts [][2]float64
	var cx, cy, sx, sy float64
	for _, cmd := range p {
		dx, dy := 0.0, 0.0
		if cmd.Rel {
			dx, dy = cx, cy
		}
		switch cmd.Cmd {
		case 'Z':
			cx, cy = sx, sy
		case 'H':
			cx = cmd.Args[0] + dx
		case 'V':
			cy = cmd.Args[0] + dy
		default:
			n := len(cmd.Args)
			cx, cy = cmd.Args[n-2]+dx, cmd.Args[n-1]+dy
		}
		if cmd.Cmd == 'M' {
			sx, sy = cx, cy
		}
		pts = append(pts, [2]float64{cx, cy})
	}
	return pts
}

func TestMinifyProperties(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	letters := []byte("MLHVCSQTAZmlhvcsqtaz")
	coord := func() float64 {
		return math.Round((r.Float64()*200-100)*1e4) / 1e4
	}
	for i := 0; i < 200; i++ {
		var in []byte
		in = append(in, 'M')
		in = append(in, fmt.Sprintf("%v %v", coord(), coord())...)
		for j := 0; j < 10; j++ {
			c := letters[r.Intn(len(letters))]
			in = append(in, c)
			for k := 0; k < Arity(c); k++ {
				if c == 'A' || c == 'a' {
					if k == 3 || k == 4 {
						in = append(in, " 1 "...)
						continue
					} else if k < 2 {
						in = append(in, fmt.Sprintf(" %v ", math.Abs(coord())+1)...)
						continue
					}
				}
				in = append(in, fmt.Sprintf(" %v ", coord())...)
			}
		}

		for _, prec := range []int{0, 1, 2, 3, -1} {
			m := &Minifier{Precision: prec}
			out, err := m.Minify(in)
			require.NoError(t, err, string(in))

			again, err := m.Minify(out)
			require.NoError(t, err)
			assert.Equal(t, string(out), string(again), "must be idempotent for "+string(in))

			orig, _ := Parse(in)
			min, err := Parse(out)
			require.NoError(t, err)
			a, b := absolute(orig), absolute(min)
			require.Equal(t, len(a), len(b))
			bound := 1e-9
			if 0 <= prec {
				bound += 0.5 * math.Pow10(-prec)
			}
			for k := range a {
				if bound < math.Abs(a[k][0]-b[k][0]) || bound < math.Abs(a[k][1]-b[k][1]) {
					t.Fatalf("point %d of %s moved from %v to %v in %s", k, in, a[k], b[k], out)
				}
			}
		}
	}
}

func FuzzMinify(f *testing.F) {
	f.Add([]byte("M10 10L20 20z"))
	f.Add([]byte("m0 0a5 5 0 1110 10"))
	f.Fuzz(func(t *testing.T, b []byte) {
		m := &Minifier{Precision: 2}
		out, err := m.Minify(b)
		if err != nil {
			return
		}
		if _, err := Parse(out); err != nil {
			t.Fatalf("minified %q to invalid %q: %v", b, out, err)
		}
	})
}

func BenchmarkMinify(b *testing.B) {
	m := &Minifier{Precision: 3}
	r := []byte("M8.64,223.948c0,0,143.468,3.431,185.777-181.808c2.673-11.702-1.23-20.154,1.316-33.146h16.287c0,0-3.14,17.248,1.095,30.848c21.392,68.692-4.179,242.343-204.227,196.59L8.64,223.948z")
	for i := 0; i < b.N; i++ {
		m.Minify(r)
	}
}
