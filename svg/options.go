package svg

// Options controls which passes run and the precision of numbers. The zero value disables every optional pass, use DefaultOptions as a starting point.
type Options struct {
	// Precision is the number of decimals kept for coordinates and lengths, -1 keeps all of them.
	Precision int `toml:"precision" yaml:"precision"`

	RemoveComments         bool `toml:"remove-comments" yaml:"remove-comments"`
	RemoveMetadata         bool `toml:"remove-metadata" yaml:"remove-metadata"`
	RemoveEditorNamespaces bool `toml:"remove-editor-namespaces" yaml:"remove-editor-namespaces"`
	CollapseGroups         bool `toml:"collapse-groups" yaml:"collapse-groups"`
	RemoveHiddenEmpty      bool `toml:"remove-hidden-empty" yaml:"remove-hidden-empty"`
	MinifyPaths            bool `toml:"minify-paths" yaml:"minify-paths"`
	MinifyColors           bool `toml:"minify-colors" yaml:"minify-colors"`
	MinifyStyles           bool `toml:"minify-styles" yaml:"minify-styles"`
	RemoveDefaultAttrs     bool `toml:"remove-default-attrs" yaml:"remove-default-attrs"`
	SortAttrs              bool `toml:"sort-attrs" yaml:"sort-attrs"`
	CollapseWhitespace     bool `toml:"collapse-whitespace" yaml:"collapse-whitespace"`
	MinifyNumbers          bool `toml:"minify-numbers" yaml:"minify-numbers"`
	MinifyDataURIs         bool `toml:"minify-data-uris" yaml:"minify-data-uris"`

	// StrictPathData returns an error for invalid path data instead of leaving it untouched.
	StrictPathData bool `toml:"strict-path-data" yaml:"strict-path-data"`
	// KeepUnknownEntities passes undeclared entity references through instead of rejecting the document.
	KeepUnknownEntities bool `toml:"keep-unknown-entities" yaml:"keep-unknown-entities"`
}

// DefaultOptions enables all passes with a precision of two decimals.
var DefaultOptions = Options{
	Precision:              2,
	RemoveComments:         true,
	RemoveMetadata:         true,
	RemoveEditorNamespaces: true,
	CollapseGroups:         true,
	RemoveHiddenEmpty:      true,
	MinifyPaths:            true,
	MinifyColors:           true,
	MinifyStyles:           true,
	RemoveDefaultAttrs:     true,
	SortAttrs:              true,
	CollapseWhitespace:     true,
	MinifyNumbers:          true,
	MinifyDataURIs:         true,
}
