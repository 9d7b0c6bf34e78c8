package benchmarks

import (
	"runtime"
	"sort"
	"testing"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/buffer"
	"github.com/tdewolff/svgmin/color"
	"github.com/tdewolff/svgmin/minify"
	"github.com/tdewolff/svgmin/pathdata"
	"github.com/tdewolff/svgmin/svg"
	"github.com/tdewolff/svgmin/xml"
)

func sampleNames() []string {
	names := make([]string, 0, len(samples))
	for name := range samples {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func BenchmarkSVG(b *testing.B) {
	m := minify.Default
	for _, name := range sampleNames() {
		in := samples[name]
		b.Run(name, func(b *testing.B) {
			out := make([]byte, 0, len(in))
			b.SetBytes(int64(len(in)))
			for i := 0; i < b.N; i++ {
				b.StopTimer()
				runtime.GC()
				r := buffer.NewReader(parse.Copy(in))
				w := buffer.NewWriter(out[:0])
				b.StartTimer()

				if err := m.Minify(w, r); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkPasses(b *testing.B) {
	in := samples["editor"]
	for _, pass := range svg.Passes {
		b.Run(pass.Name(), func(b *testing.B) {
			b.SetBytes(int64(len(in)))
			for i := 0; i < b.N; i++ {
				b.StopTimer()
				d, err := xml.Parse(in, xml.ParseOptions{})
				if err != nil {
					b.Fatal(err)
				}
				b.StartTimer()

				if err := pass.Transform(d, &svg.DefaultOptions); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkParse(b *testing.B) {
	for _, name := range sampleNames() {
		in := samples[name]
		b.Run(name, func(b *testing.B) {
			b.SetBytes(int64(len(in)))
			for i := 0; i < b.N; i++ {
				if _, err := xml.Parse(in, xml.ParseOptions{}); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkPathData(b *testing.B) {
	var samples = []string{
		"M 10.125 20.125 L 10.125 30.125",
		"M0,0C10.5,20.25,30.75,40.125,50,60S70.5,80.25,90,100Q110,120,130,140T150,160A25,25,0,1,0,200,200Z",
		"m 125.96094,101.57812 c -4.40625,0 -8.50781,1.32813 -11.92188,3.60938 l -3.35937,-3.35938 -2.82813,2.82813 3.35938,3.35937 z",
	}
	for _, sample := range samples {
		in := []byte(sample)
		b.Run(sample, func(b *testing.B) {
			m := pathdata.Minifier{Precision: 2}
			b.SetBytes(int64(len(in)))
			for i := 0; i < b.N; i++ {
				if _, err := m.Minify(in); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkColor(b *testing.B) {
	var samples = []string{"#FFFFFF", "#ff0000", "rgb(255,0,0)", "rgba(0,0,0,0.5)", "black", "hsl(0,0%,0%)"}
	for _, sample := range samples {
		b.Run(sample, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				color.Shorten(sample)
			}
		})
	}
}
