package delaun

import (
	"sort"

	"github.com/samber/lo"

	"github.com/katalvlaran/lvmesh/geom"
	"github.com/katalvlaran/lvmesh/mesh"
)

// Result is the output of a triangulation.
//
// Vertices is indexed by mesh vertex index, deleted vertices included, so
// every index in Triangles and Constraints is a valid position. Triangles are
// counter-clockwise. Constraints lists the Fixed edges that survived, i.e.
// the input constraints subdivided at intersection vertices. Segments holds
// the constraint pairs as they were enforced, in call order.
type Result struct {
	Vertices    []mesh.Vertex
	Triangles   [][3]int
	Constraints [][2]int
	Segments    [][2]int
	Stats       Stats
	Tolerance   float64
	Cancelled   bool
}

// Point returns the coordinates of vertex v.
func (r *Result) Point(v int) geom.Point { return r.Vertices[v].Point }

// TriangleArea returns the (positive) area of triangle i.
func (r *Result) TriangleArea(i int) float64 {
	t := r.Triangles[i]
	return geom.SignedArea(r.Point(t[0]), r.Point(t[1]), r.Point(t[2]))
}

// Centroid returns the centroid of triangle i.
func (r *Result) Centroid(i int) geom.Point {
	t := r.Triangles[i]
	return geom.Centroid(r.Point(t[0]), r.Point(t[1]), r.Point(t[2]))
}

// Area returns the total area covered by the triangles.
func (r *Result) Area() float64 {
	return lo.SumBy(lo.Range(len(r.Triangles)), r.TriangleArea)
}

// UsedVertices returns the indices referenced by at least one triangle,
// ascending.
func (r *Result) UsedVertices() []int {
	used := lo.Uniq(lo.Flatten(lo.Map(r.Triangles, func(t [3]int, _ int) []int { return t[:] })))
	sort.Ints(used)
	return used
}

// Flatten packs the mesh the way GPU-style consumers expect it: coords holds
// x, y pairs of the used vertices, indices holds three entries per triangle
// into that compacted list.
func (r *Result) Flatten() (coords []float64, indices []uint32) {
	used := r.UsedVertices()
	remap := make(map[int]uint32, len(used))
	coords = make([]float64, 0, 2*len(used))
	for i, v := range used {
		remap[v] = uint32(i)
		p := r.Point(v)
		coords = append(coords, p.X, p.Y)
	}
	indices = make([]uint32, 0, 3*len(r.Triangles))
	for _, t := range r.Triangles {
		indices = append(indices, remap[t[0]], remap[t[1]], remap[t[2]])
	}
	return coords, indices
}
