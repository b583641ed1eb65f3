package render_test

import (
	"bytes"
	"image/png"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvmesh/delaun"
	"github.com/katalvlaran/lvmesh/geom"
	"github.com/katalvlaran/lvmesh/mesher"
	"github.com/katalvlaran/lvmesh/render"
)

func rectResult(t *testing.T, w, h float64) *delaun.Result {
	t.Helper()
	res, err := mesher.Mesh(mesher.Face{
		Points: []geom.Point{geom.Pt(0, 0), geom.Pt(w, 0), geom.Pt(w, h), geom.Pt(0, h)},
		Loops:  []mesher.Loop{{Indices: []int{0, 1, 2, 3}}},
	})
	require.NoError(t, err)
	return res
}

func TestDraw_Size(t *testing.T) {
	img, err := render.Draw(rectResult(t, 4, 2), render.WithSize(200), render.WithPadding(10))
	require.NoError(t, err)
	assert.Equal(t, 220, img.Bounds().Dx())
	assert.Equal(t, 120, img.Bounds().Dy())

	// The centre of the rectangle is filled, the padding corner is background.
	r, g, _, _ := img.At(110, 60).RGBA()
	assert.Zero(t, r)
	assert.NotZero(t, g)
	_, g, _, _ = img.At(2, 2).RGBA()
	assert.Zero(t, g)
}

func TestEncodePNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, render.EncodePNG(&buf, rectResult(t, 1, 1), render.WithVertices(true), render.WithSize(64)))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 64+32, img.Bounds().Dx())
}

func TestSavePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mesh.png")
	require.NoError(t, render.SavePNG(path, rectResult(t, 3, 1), render.WithConstraints(false)))
	assert.FileExists(t, path)
}

func TestDraw_Errors(t *testing.T) {
	_, err := render.Draw(&delaun.Result{})
	assert.ErrorIs(t, err, render.ErrEmptyResult)

	res := rectResult(t, 1, 1)
	_, err = render.Draw(res, render.WithSize(0))
	assert.ErrorIs(t, err, render.ErrOptionViolation)
	_, err = render.Draw(res, render.WithPadding(-1))
	assert.ErrorIs(t, err, render.ErrOptionViolation)
	_, err = render.Draw(res, render.WithLineWidth(0))
	assert.ErrorIs(t, err, render.ErrOptionViolation)
}
