package benchmarks

import (
	"fmt"
	"math/rand"
	"strings"
)

// samples are generated documents that resemble the output of common editors.
var samples = map[string][]byte{
	"icons":  []byte(icons(200)),
	"editor": []byte(editor(100)),
	"paths":  []byte(paths(500)),
}

func icons(n int) string {
	sb := strings.Builder{}
	sb.WriteString(`<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" viewBox="0 0 240 240"><defs>`)
	for i := 0; i < n; i++ {
		fmt.Fprintf(&sb, `<symbol id="icon-%d" viewBox="0 0 24 24"><g fill="none" stroke="#000000" stroke-width="2.000"><path d="M 12.000 2.000 L 2.000 7.000 L 12.000 12.000 L 22.000 7.000 Z"/><circle cx="12" cy="12" r="3.00"/></g></symbol>`, i)
	}
	sb.WriteString(`</defs>`)
	for i := 0; i < n; i++ {
		fmt.Fprintf(&sb, "\n  <use xlink:href=\"#icon-%d\" x=\"%d\" y=\"%d\" width=\"24px\" height=\"24px\"/>", i, 24*(i%10), 24*(i/10))
	}
	sb.WriteString("\n</svg>")
	return sb.String()
}

func editor(n int) string {
	sb := strings.Builder{}
	sb.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\" standalone=\"no\"?>\n<!-- Created with Inkscape (http://www.inkscape.org/) -->\n")
	sb.WriteString(`<svg xmlns="http://www.w3.org/2000/svg" xmlns:inkscape="http://www.inkscape.org/namespaces/inkscape" xmlns:sodipodi="http://sodipodi.sourceforge.net/DTD/sodipodi-0.dtd" version="1.1" width="210mm" height="297mm" viewBox="0 0 210 297" inkscape:version="1.3">`)
	sb.WriteString("\n  <sodipodi:namedview id=\"namedview1\" pagecolor=\"#ffffff\" inkscape:zoom=\"0.5\"/>\n  <metadata><rdf:RDF xmlns:rdf=\"http://www.w3.org/1999/02/22-rdf-syntax-ns#\"/></metadata>\n")
	for i := 0; i < n; i++ {
		fmt.Fprintf(&sb, "  <g inkscape:label=\"Layer %d\" inkscape:groupmode=\"layer\" id=\"layer%d\">\n", i, i)
		fmt.Fprintf(&sb, "    <rect style=\"fill:#ff0000;fill-opacity:1;stroke:none;stroke-width:0.26458332\" id=\"rect%d\" width=\"%.6f\" height=\"%.6f\" x=\"%.6f\" y=\"0\" />\n", i, 10.5+float64(i), 20.25, float64(i)*1.125)
		sb.WriteString("  </g>\n")
	}
	sb.WriteString("</svg>\n")
	return sb.String()
}

func paths(n int) string {
	rnd := rand.New(rand.NewSource(0))
	sb := strings.Builder{}
	sb.WriteString(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 1000 1000">`)
	for i := 0; i < n; i++ {
		x, y := rnd.Float64()*1000, rnd.Float64()*1000
		fmt.Fprintf(&sb, `<path fill="rgb(%d,%d,%d)" d="M %.5f,%.5f`, rnd.Intn(256), rnd.Intn(256), rnd.Intn(256), x, y)
		for j := 0; j < 10; j++ {
			x += rnd.Float64()*20 - 10
			y += rnd.Float64()*20 - 10
			fmt.Fprintf(&sb, " L %.5f,%.5f", x, y)
		}
		sb.WriteString(` Z"/>`)
	}
	sb.WriteString(`</svg>`)
	return sb.String()
}
