// File: spatial.go
// Role: R-tree backed vertex lookup: dedup on insert, circle and nearest queries.
// Determinism:
//   - VerticesInCircle returns indices in ascending order.
//   - NearestVertex breaks distance ties by the smaller index.

package mesh

import (
	"math"
	"sort"

	"github.com/dhconnelly/rtreego"

	"github.com/katalvlaran/lvmesh/geom"
)

const (
	indexMinChildren = 8
	indexMaxChildren = 32

	nearestCandidates = 4
)

// vertexItem is the R-tree entry of one vertex. rtreego rectangles need a
// positive extent to intersect anything, so each point is stored as a tiny
// square of half-width halfSide.
type vertexItem struct {
	index int
	rect  rtreego.Rect
}

// Bounds implements rtreego.Spatial.
func (it *vertexItem) Bounds() rtreego.Rect { return it.rect }

func (ds *DataStructure) halfSide() float64 { return ds.tol * 0.5 }

func (ds *DataStructure) indexVertex(v int, p geom.Point) {
	ds.index.Insert(&vertexItem{
		index: v,
		rect:  rtreego.Point{p.X, p.Y}.ToRect(ds.halfSide()),
	})
}

// VerticesInCircle returns the live vertices whose distance to center is at
// most radius, in ascending index order.
// Complexity: O(log V + k) expected.
func (ds *DataStructure) VerticesInCircle(center geom.Point, radius float64) []int {
	if radius < 0 || ds.index.Size() == 0 {
		return nil
	}
	query := rtreego.Point{center.X, center.Y}.ToRect(radius + ds.halfSide())
	hits := ds.index.SearchIntersect(query, ds.liveFilter)
	out := make([]int, 0, len(hits))
	for _, h := range hits {
		v := h.(*vertexItem).index
		if ds.vertices[v].Point.Dist(center) <= radius {
			out = append(out, v)
		}
	}
	sort.Ints(out)

	return out
}

// NearestVertex returns the live vertex closest to p.
// ok is false when the structure holds no live vertex.
// Complexity: O(log V) expected.
func (ds *DataStructure) NearestVertex(p geom.Point) (int, bool) {
	if ds.index.Size() == 0 {
		return -1, false
	}
	// The tree ranks by distance to the entry square, so a few candidates are
	// re-ranked by exact point distance.
	hits := ds.index.NearestNeighbors(nearestCandidates, rtreego.Point{p.X, p.Y}, ds.liveFilter)
	best, bestDist := -1, math.Inf(1)
	for _, h := range hits {
		v := h.(*vertexItem).index
		d := ds.vertices[v].Point.Dist(p)
		if d < bestDist || (d == bestDist && v < best) {
			best, bestDist = v, d
		}
	}

	return best, best >= 0
}

// liveFilter refuses deleted vertices during R-tree searches.
func (ds *DataStructure) liveFilter(_ []rtreego.Spatial, obj rtreego.Spatial) (refuse, abort bool) {
	return ds.vertices[obj.(*vertexItem).index].Movability == Deleted, false
}

// findVertex returns the smallest live vertex index within tol of p.
func (ds *DataStructure) findVertex(p geom.Point, tol float64) (int, bool) {
	hits := ds.VerticesInCircle(p, tol)
	if len(hits) == 0 {
		return -1, false
	}
	return hits[0], true
}
