package delaun_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvmesh/delaun"
	"github.com/katalvlaran/lvmesh/geom"
)

// loopPairs turns a closed loop of point positions into consecutive pairs of
// vertex indices.
func loopPairs(verts []int, loop []int) [][2]int {
	out := make([][2]int, 0, len(loop))
	for i := range loop {
		out = append(out, [2]int{verts[loop[i]], verts[loop[(i+1)%len(loop)]]})
	}
	return out
}

// build seeds, inserts every point, enforces every loop and finalizes.
func build(t *testing.T, pts []geom.Point, loops [][]int, opts ...delaun.Option) (*delaun.Triangulator, *delaun.Result) {
	t.Helper()
	tr := delaun.New(opts...)
	require.NoError(t, tr.Seed(geom.BoxOf(pts...)))
	verts, err := tr.InsertPoints(pts)
	require.NoError(t, err)
	for _, loop := range loops {
		require.NoError(t, tr.InsertConstraints(loopPairs(verts, loop)))
	}
	res, err := tr.Finalize()
	require.NoError(t, err)
	return tr, res
}

func unitSquare() []geom.Point {
	return []geom.Point{geom.Pt(0, 0), geom.Pt(1, 0), geom.Pt(1, 1), geom.Pt(0, 1)}
}

// ringWithHole is a 10x10 square with a 2x2 square hole in the middle.
func ringWithHole() ([]geom.Point, [][]int) {
	pts := []geom.Point{
		geom.Pt(0, 0), geom.Pt(10, 0), geom.Pt(10, 10), geom.Pt(0, 10),
		geom.Pt(4, 4), geom.Pt(6, 4), geom.Pt(6, 6), geom.Pt(4, 6),
	}
	return pts, [][]int{{0, 1, 2, 3}, {4, 5, 6, 7}}
}

// onSegment reports whether p lies on [a,b] within tol.
func onSegment(p, a, b geom.Point, tol float64) bool {
	return geom.DistanceToSegment(p, a, b) <= tol
}
