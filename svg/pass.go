package svg

import (
	"github.com/tdewolff/svgmin/tree"
)

// Pass is a single transformation of the document tree. A pass checks its own toggle in the options.
type Pass interface {
	Name() string
	Transform(d *tree.Document, o *Options) error
}

type passFunc struct {
	name string
	fn   func(*tree.Document, *Options) error
}

func (p passFunc) Name() string {
	return p.name
}

func (p passFunc) Transform(d *tree.Document, o *Options) error {
	return p.fn(d, o)
}

// Passes are run in order: structural passes remove subtrees before the attribute and value passes run.
var Passes []Pass

func init() {
	// data-uris minifies nested documents with Minify, which runs Passes
	Passes = []Pass{
		passFunc{"declarations", removeDeclarations},
		passFunc{"comments", removeComments},
		passFunc{"whitespace", collapseWhitespace},
		passFunc{"metadata", removeMetadata},
		passFunc{"editor-namespaces", removeEditorNamespaces},
		passFunc{"collapse-groups", collapseGroups},
		passFunc{"hidden-empty", removeHiddenEmpty},
		passFunc{"numbers", minifyNumbers},
		passFunc{"paths", minifyPaths},
		passFunc{"colors", minifyColors},
		passFunc{"styles", minifyStyles},
		passFunc{"data-uris", minifyDataURIs},
		passFunc{"defaults", removeDefaults},
		passFunc{"sort-attrs", sortAttrs},
	}
}

// Run runs all passes once over the document.
func Run(d *tree.Document, o *Options) error {
	for _, pass := range Passes {
		if err := pass.Transform(d, o); err != nil {
			return err
		}
	}
	return nil
}

// Lookup returns the pass with the given name.
func Lookup(name string) (Pass, bool) {
	for _, pass := range Passes {
		if pass.Name() == name {
			return pass, true
		}
	}
	return nil, false
}
