package main

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/tdewolff/svgmin/svg"
	"github.com/tdewolff/test"
)

func TestReadWriteDocument(t *testing.T) {
	tmp := t.TempDir()
	filename := filepath.Join(tmp, "nested", "dir", "a.svg")
	test.Error(t, writeDocument(filename, []byte("<svg/>")))

	b, err := readDocument(filename)
	test.Error(t, err)
	test.String(t, string(b), "<svg/>")

	test.Error(t, writeDocument(filename, []byte("<g/>")))
	b, err = readDocument(filename)
	test.Error(t, err)
	test.String(t, string(b), "<g/>")

	_, err = readDocument(filepath.Join(tmp, "missing.svg"))
	test.That(t, errors.Is(err, fs.ErrNotExist), err)
}

func TestBackupRestore(t *testing.T) {
	tmp := t.TempDir()
	filename := filepath.Join(tmp, "a.svg")
	test.Error(t, writeDocument(filename, []byte("original")))
	test.That(t, sameFile(filename, filename))
	test.That(t, !sameFile(filename, filepath.Join(tmp, "b.svg")))

	bak, err := backup(filename)
	test.Error(t, err)
	test.String(t, bak, filename+".bak")
	_, err = os.Stat(filename)
	test.That(t, os.IsNotExist(err))

	test.Error(t, writeDocument(filename, []byte("partial")))
	test.Error(t, restore(bak, filename))
	b, err := readDocument(filename)
	test.Error(t, err)
	test.String(t, string(b), "original")
	_, err = os.Stat(bak)
	test.That(t, os.IsNotExist(err))
}

func TestMinifyTask(t *testing.T) {
	Error, Warning, Info = newLoggers(os.Stderr, true, 0)
	quiet = true
	m = &svg.Minifier{Options: svg.DefaultOptions}

	tmp := t.TempDir()
	filename := filepath.Join(tmp, "a.svg")
	test.Error(t, writeDocument(filename, []byte(`<svg><!-- c --><g><rect fill="#ff0000"/></g></svg>`)))
	test.That(t, minify(Task{root: tmp, src: filename, dst: filename}))

	b, err := readDocument(filename)
	test.Error(t, err)
	test.String(t, string(b), `<svg><rect fill="red"/></svg>`)
	_, err = os.Stat(filename + ".bak")
	test.That(t, os.IsNotExist(err))

	// invalid documents are copied unchanged
	test.Error(t, writeDocument(filename, []byte(`<svg><g></svg>`)))
	test.That(t, !minify(Task{root: tmp, src: filename, dst: filename}))
	b, err = readDocument(filename)
	test.Error(t, err)
	test.String(t, string(b), `<svg><g></svg>`)
}
