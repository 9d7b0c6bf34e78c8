package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/matryer/try"
)

// retries is the number of attempts for opening and renaming files that may be locked by an editor that is still saving.
const retries = 5

// isDir returns true if the path ends in a separator or is an existing directory that is not a symlink.
func isDir(path string) bool {
	if 0 < len(path) && path[len(path)-1] == os.PathSeparator {
		return true
	}
	info, err := os.Lstat(path)
	return err == nil && info.Mode().IsDir() && info.Mode()&os.ModeSymlink == 0
}

// sameFile returns true if both paths exist and point to the same file, which may differ in case on Windows.
func sameFile(a, b string) bool {
	ia, err := os.Stat(a)
	if err != nil {
		return false
	}
	ib, err := os.Stat(b)
	return err == nil && os.SameFile(ia, ib)
}

// readDocument reads the whole document from a file, or from stdin if filename is empty.
func readDocument(filename string) ([]byte, error) {
	if filename == "" {
		return io.ReadAll(os.Stdin)
	}

	var f *os.File
	err := try.Do(func(attempt int) (bool, error) {
		var ferr error
		f, ferr = os.Open(filename)
		return attempt < retries, ferr
	})
	if err != nil {
		return nil, fmt.Errorf("open input file %q: %w", filename, err)
	}
	defer f.Close()

	b, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read input file %q: %w", filename, err)
	}
	return b, nil
}

// writeDocument writes the document to a file, creating its directory, or to stdout if filename is empty.
func writeDocument(filename string, b []byte) error {
	if filename == "" {
		_, err := os.Stdout.Write(b)
		return err
	}

	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0777); err != nil {
		return fmt.Errorf("creating directory %q: %w", dir, err)
	}

	var f *os.File
	err := try.Do(func(attempt int) (bool, error) {
		var ferr error
		f, ferr = os.OpenFile(filename, os.O_WRONLY|os.O_TRUNC|os.O_CREATE, 0666)
		return attempt < retries, ferr
	})
	if err != nil {
		return fmt.Errorf("open output file %q: %w", filename, err)
	}
	if _, err := f.Write(b); err != nil {
		f.Close()
		return fmt.Errorf("write output file %q: %w", filename, err)
	}
	return f.Close()
}

// backup moves a file that is about to be overwritten aside and returns its new name.
func backup(filename string) (string, error) {
	bak := filename + ".bak"
	err := try.Do(func(attempt int) (bool, error) {
		return attempt < retries, os.Rename(filename, bak)
	})
	return bak, err
}

// restore moves a backup back into place after a failed write.
func restore(bak, filename string) error {
	if err := os.Remove(filename); err != nil && !os.IsNotExist(err) {
		return err
	}
	return os.Rename(bak, filename)
}

// createSymlink replaces output by a symlink to input.
func createSymlink(input, output string) error {
	if _, err := os.Lstat(output); err == nil {
		if err = os.Remove(output); err != nil {
			return err
		}
	}
	if err := os.MkdirAll(filepath.Dir(output), 0777); err != nil {
		return err
	}
	return os.Symlink(input, output)
}
