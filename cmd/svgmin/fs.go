package main

import (
	"io/fs"
	"os"
	"path/filepath"
)

// NewFS returns the file system of the working directory. Unlike os.DirFS it accepts absolute and parent paths, since inputs are given on the command line.
func NewFS() fs.FS {
	return dirFS("")
}

type dirFS string

func (dir dirFS) Open(name string) (fs.File, error) {
	return os.Open(filepath.Join(string(dir), name))
}

func (dir dirFS) Stat(name string) (fs.FileInfo, error) {
	return os.Stat(filepath.Join(string(dir), name))
}
