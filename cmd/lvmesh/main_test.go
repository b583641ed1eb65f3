package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ring = "0 0\n10 0\n10 10\n0 10\n\n4 4\n4 6\n6 6\n6 4\n"

func TestRun_TextStdin(t *testing.T) {
	dir := t.TempDir()
	obj := filepath.Join(dir, "ring.obj")
	png := filepath.Join(dir, "ring.png")

	var out, errOut bytes.Buffer
	code := run([]string{"--no-color", "--obj", obj, "--png", png}, strings.NewReader(ring), &out, &errOut)
	require.Equal(t, 0, code, errOut.String())
	assert.Contains(t, out.String(), "Meshed 1 faces")
	assert.Contains(t, out.String(), "area 96")
	assert.FileExists(t, obj)
	assert.FileExists(t, png)
}

func TestRun_YAMLFaces(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "faces.yaml")
	require.NoError(t, os.WriteFile(in, []byte(`
spacing: 0.5
faces:
  - points: [[0, 0], [1, 0], [1, 1], [0, 1]]
    loops: [{indices: [0, 1, 2, 3]}]
  - points: [[0, 0], [1, 0], [2, 0]]
    loops: [{indices: [0, 1, 2]}]
`), 0o644))
	obj := filepath.Join(dir, "out.obj")

	var out, errOut bytes.Buffer
	code := run([]string{in, "--no-color", "--workers", "2", "--obj", obj}, nil, &out, &errOut)
	assert.Equal(t, 1, code)
	assert.Contains(t, out.String(), "face 0: ")
	assert.Contains(t, out.String(), "degenerate triangle")
	assert.FileExists(t, filepath.Join(dir, "out-0.obj"))
	assert.NoFileExists(t, filepath.Join(dir, "out-1.obj"))
}

func TestRun_BadInput(t *testing.T) {
	var out, errOut bytes.Buffer
	assert.Equal(t, 2, run([]string{"--no-color"}, strings.NewReader("0 zero\n"), &out, &errOut))
	assert.Contains(t, errOut.String(), "line 1")

	assert.Equal(t, 2, run([]string{"--workers", "many"}, nil, &out, &errOut))
}

func TestOutPath(t *testing.T) {
	assert.Equal(t, "a.png", outPath("a.png", 1, 0))
	assert.Equal(t, "dir/a-3.png", outPath("dir/a.png", 5, 3))
}
