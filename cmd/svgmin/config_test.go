package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tdewolff/svgmin/svg"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	var tests = []struct {
		filename string
		content  string
	}{
		{"svgmin.toml", "precision = 3\nremove-comments = false\n"},
		{"svgmin.yaml", "precision: 3\nremove-comments: false\n"},
		{"svgmin.yml", "precision: 3\nremove-comments: false\n"},
	}
	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			filename := filepath.Join(dir, tt.filename)
			require.NoError(t, os.WriteFile(filename, []byte(tt.content), 0644))

			o := svg.DefaultOptions
			require.NoError(t, loadConfig(filename, &o))
			expected := svg.DefaultOptions
			expected.Precision = 3
			expected.RemoveComments = false
			assert.Equal(t, expected, o)
		})
	}
}

func TestLoadConfigErrors(t *testing.T) {
	dir := t.TempDir()
	o := svg.DefaultOptions

	assert.Error(t, loadConfig(filepath.Join(dir, "missing.toml"), &o))

	filename := filepath.Join(dir, "svgmin.json")
	require.NoError(t, os.WriteFile(filename, []byte("{}"), 0644))
	assert.Error(t, loadConfig(filename, &o))

	filename = filepath.Join(dir, "unknown.toml")
	require.NoError(t, os.WriteFile(filename, []byte("precission = 3\n"), 0644))
	assert.Error(t, loadConfig(filename, &o))

	filename = filepath.Join(dir, "unknown.yaml")
	require.NoError(t, os.WriteFile(filename, []byte("precission: 3\n"), 0644))
	assert.Error(t, loadConfig(filename, &o))

	filename = filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(filename, nil, 0644))
	assert.NoError(t, loadConfig(filename, &o))
	assert.Equal(t, svg.DefaultOptions, o)
}
