package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/tdewolff/svgmin/svg"
	"gopkg.in/yaml.v3"
)

// loadConfig decodes a TOML or YAML configuration file onto o, keys that are not set keep their value. Unknown keys are an error.
func loadConfig(filename string, o *svg.Options) error {
	b, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".toml":
		err = toml.NewDecoder(bytes.NewReader(b)).DisallowUnknownFields().Decode(o)
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(b))
		dec.KnownFields(true)
		if err = dec.Decode(o); errors.Is(err, io.EOF) {
			err = nil // empty file
		}
	default:
		return fmt.Errorf("config %s: unknown format, use .toml, .yaml or .yml", filename)
	}
	if err != nil {
		return fmt.Errorf("config %s: %w", filename, err)
	}
	return nil
}
