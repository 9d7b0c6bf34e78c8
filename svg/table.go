package svg

// editorNamespaces are the namespace URIs of editor vocabularies that carry no rendering information.
var editorNamespaces = map[string]bool{
	"http://www.inkscape.org/namespaces/inkscape":               true,
	"http://sodipodi.sourceforge.net/DTD/sodipodi-0.dtd":        true,
	"http://inkscape.sourceforge.net/DTD/sodipodi-0.dtd":        true,
	"http://ns.adobe.com/AdobeIllustrator/10.0/":                true,
	"http://ns.adobe.com/AdobeSVGViewerExtensions/3.0/":         true,
	"http://ns.adobe.com/Extensibility/1.0/":                    true,
	"http://ns.adobe.com/Flows/1.0/":                            true,
	"http://ns.adobe.com/ImageReplacement/1.0/":                 true,
	"http://ns.adobe.com/GenericCustomNamespace/1.0/":           true,
	"http://ns.adobe.com/XPath/1.0/":                            true,
	"http://ns.adobe.com/SaveForWeb/1.0/":                       true,
	"http://www.bohemiancoding.com/sketch/ns":                   true,
	"http://www.serif.com/":                                     true,
	"http://schemas.microsoft.com/visio/2003/SVGExtensions/":    true,
	"http://vectornator.io":                                     true,
	"http://www.figma.com/figma/ns":                             true,
	"http://ns.adobe.com/AdobeIllustrator/10.0/Graphs/":         true,
	"http://ns.adobe.com/Variables/1.0/":                        true,
	"http://ns.adobe.com/SaveForWeb/1.0/Optimization/Settings/": true,
}

const svgNamespace = "http://www.w3.org/2000/svg"

// containers are elements whose only content is other elements.
var containers = map[string]bool{
	"a":              true,
	"clipPath":       true,
	"defs":           true,
	"g":              true,
	"linearGradient": true,
	"marker":         true,
	"mask":           true,
	"pattern":        true,
	"radialGradient": true,
	"svg":            true,
	"switch":         true,
	"symbol":         true,
}

// textContent are elements whose text children are rendered.
var textContent = map[string]bool{
	"text":     true,
	"tspan":    true,
	"textPath": true,
	"tref":     true,
	"altGlyph": true,
	"a":        true,
}

// preserved are elements whose text content is never collapsed.
var preserved = map[string]bool{
	"script":        true,
	"style":         true,
	"title":         true,
	"desc":          true,
	"foreignObject": true,
}

// graphics are rendered elements that may be hidden.
var graphics = map[string]bool{
	"circle":   true,
	"ellipse":  true,
	"g":        true,
	"image":    true,
	"line":     true,
	"path":     true,
	"polygon":  true,
	"polyline": true,
	"rect":     true,
	"text":     true,
	"use":      true,
	"svg":      true,
	"a":        true,
	"switch":   true,
}

// animations are elements that change attributes over time.
var animations = map[string]bool{
	"animate":          true,
	"animateColor":     true,
	"animateMotion":    true,
	"animateTransform": true,
	"set":              true,
}

// templates are elements whose children are only rendered through a reference.
var templates = map[string]bool{
	"clipPath": true,
	"defs":     true,
	"marker":   true,
	"mask":     true,
	"pattern":  true,
	"symbol":   true,
}

var colorAttrs = map[string]bool{
	"fill":           true,
	"stroke":         true,
	"stop-color":     true,
	"flood-color":    true,
	"lighting-color": true,
	"color":          true,
	"solid-color":    true,
}

// lengthAttrs are attributes holding a single length or coordinate.
var lengthAttrs = map[string]bool{
	"x":                 true,
	"y":                 true,
	"x1":                true,
	"y1":                true,
	"x2":                true,
	"y2":                true,
	"cx":                true,
	"cy":                true,
	"r":                 true,
	"rx":                true,
	"ry":                true,
	"fx":                true,
	"fy":                true,
	"fr":                true,
	"width":             true,
	"height":            true,
	"refX":              true,
	"refY":              true,
	"markerWidth":       true,
	"markerHeight":      true,
	"stroke-width":      true,
	"stroke-dashoffset": true,
	"stroke-miterlimit": true,
	"font-size":         true,
	"letter-spacing":    true,
	"word-spacing":      true,
	"textLength":        true,
	"startOffset":       true,
	"offset":            true,
	"pathLength":        true,
	"stdDeviation":      true,
	"dx":                true,
	"dy":                true,
}

// listAttrs are attributes holding a list of numbers or lengths.
var listAttrs = map[string]bool{
	"viewBox":          true,
	"stroke-dasharray": true,
}

// textListAttrs are coordinate lists on text elements, elsewhere these attributes are single lengths.
var textListAttrs = map[string]bool{
	"x":      true,
	"y":      true,
	"dx":     true,
	"dy":     true,
	"rotate": true,
}

// opacityAttrs hold an alpha value in [0,1].
var opacityAttrs = map[string]bool{
	"opacity":        true,
	"fill-opacity":   true,
	"stroke-opacity": true,
	"stop-opacity":   true,
	"flood-opacity":  true,
}

var transformAttrs = map[string]bool{
	"transform":         true,
	"gradientTransform": true,
	"patternTransform":  true,
}

// property is a presentation property with its initial value.
type property struct {
	initial   string
	inherited bool
}

// properties are presentation properties that may also appear as attributes.
var properties = map[string]property{
	"alignment-baseline":          {"auto", false},
	"baseline-shift":              {"baseline", false},
	"clip-path":                   {"none", false},
	"clip-rule":                   {"nonzero", true},
	"color-interpolation":         {"sRGB", true},
	"color-interpolation-filters": {"linearRGB", true},
	"direction":                   {"ltr", true},
	"display":                     {"inline", false},
	"dominant-baseline":           {"auto", false},
	"fill":                        {"black", true},
	"fill-opacity":                {"1", true},
	"fill-rule":                   {"nonzero", true},
	"filter":                      {"none", false},
	"flood-color":                 {"black", false},
	"flood-opacity":               {"1", false},
	"font-size-adjust":            {"none", true},
	"font-stretch":                {"normal", true},
	"font-style":                  {"normal", true},
	"font-variant":                {"normal", true},
	"font-weight":                 {"normal", true},
	"image-rendering":             {"auto", true},
	"letter-spacing":              {"normal", true},
	"lighting-color":              {"white", false},
	"marker-end":                  {"none", true},
	"marker-mid":                  {"none", true},
	"marker-start":                {"none", true},
	"mask":                        {"none", false},
	"opacity":                     {"1", false},
	"paint-order":                 {"normal", true},
	"pointer-events":              {"visiblePainted", true},
	"shape-rendering":             {"auto", true},
	"stop-color":                  {"black", false},
	"stop-opacity":                {"1", false},
	"stroke":                      {"none", true},
	"stroke-dasharray":            {"none", true},
	"stroke-dashoffset":           {"0", true},
	"stroke-linecap":              {"butt", true},
	"stroke-linejoin":             {"miter", true},
	"stroke-miterlimit":           {"4", true},
	"stroke-opacity":              {"1", true},
	"stroke-width":                {"1", true},
	"text-anchor":                 {"start", true},
	"text-decoration":             {"none", false},
	"text-rendering":              {"auto", true},
	"unicode-bidi":                {"normal", false},
	"vector-effect":               {"none", false},
	"visibility":                  {"visible", true},
	"word-spacing":                {"normal", true},
	"writing-mode":                {"lr-tb", true},
}

// elementDefaults are the initial values of element geometry attributes.
var elementDefaults = map[string]map[string]string{
	"svg": {
		"x":                   "0",
		"y":                   "0",
		"preserveAspectRatio": "xMidYMid meet",
		"zoomAndPan":          "magnify",
	},
	"rect": {
		"x": "0",
		"y": "0",
	},
	"circle": {
		"cx": "0",
		"cy": "0",
	},
	"ellipse": {
		"cx": "0",
		"cy": "0",
	},
	"line": {
		"x1": "0",
		"y1": "0",
		"x2": "0",
		"y2": "0",
	},
	"linearGradient": {
		"x1":            "0",
		"y1":            "0",
		"x2":            "100%",
		"y2":            "0",
		"gradientUnits": "objectBoundingBox",
		"spreadMethod":  "pad",
	},
	"radialGradient": {
		"cx":            "50%",
		"cy":            "50%",
		"r":             "50%",
		"fr":            "0",
		"gradientUnits": "objectBoundingBox",
		"spreadMethod":  "pad",
	},
	"pattern": {
		"x":                   "0",
		"y":                   "0",
		"patternUnits":        "objectBoundingBox",
		"patternContentUnits": "userSpaceOnUse",
	},
	"marker": {
		"refX":         "0",
		"refY":         "0",
		"markerUnits":  "strokeWidth",
		"markerWidth":  "3",
		"markerHeight": "3",
		"orient":       "0",
	},
	"clipPath": {
		"clipPathUnits": "userSpaceOnUse",
	},
	"mask": {
		"maskUnits":        "objectBoundingBox",
		"maskContentUnits": "userSpaceOnUse",
	},
	"filter": {
		"filterUnits":    "objectBoundingBox",
		"primitiveUnits": "userSpaceOnUse",
	},
	"image": {
		"x":                   "0",
		"y":                   "0",
		"preserveAspectRatio": "xMidYMid meet",
	},
	"use": {
		"x": "0",
		"y": "0",
	},
	"text": {
		"lengthAdjust": "spacing",
	},
	"textPath": {
		"startOffset": "0",
		"method":      "align",
		"spacing":     "exact",
	},
	"stop": {
		"offset": "0",
	},
}

// hrefInherited are elements that inherit attributes from the element they reference.
var hrefInherited = map[string]bool{
	"linearGradient": true,
	"radialGradient": true,
	"pattern":        true,
	"filter":         true,
}
