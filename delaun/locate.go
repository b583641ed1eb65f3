package delaun

import (
	"fmt"

	"github.com/katalvlaran/lvmesh/geom"
	"github.com/katalvlaran/lvmesh/mesh"
)

// Locate returns a live triangle containing p (boundary included).
//
// The walk starts at the cached last hit and repeatedly crosses the first
// edge that p lies strictly Right of; the edge tried first rotates every
// step so the walk cannot cycle around a vertex. If the walk runs longer
// than the triangle count it falls back to a linear scan.
//
// Errors: ErrInvalidInputGeometry when p is outside the super triangle,
// ErrDegeneratePredicate on non-finite input, ErrBadState before Seed.
// Complexity: O(√n) expected, O(n) worst case.
func (tr *Triangulator) Locate(p geom.Point) (int, error) {
	if tr.ds == nil {
		return mesh.NoTriangle, fmt.Errorf("%w: Locate in %s", ErrBadState, tr.state)
	}
	if !p.Finite() {
		return mesh.NoTriangle, ErrDegeneratePredicate
	}

	t := tr.lastHit
	if !tr.ds.IsLiveTriangle(t) {
		var ok bool
		if t, ok = tr.ds.AnyTriangle(); !ok {
			return mesh.NoTriangle, fmt.Errorf("%w: no triangles", ErrInvalidInputGeometry)
		}
	}

	limit := tr.ds.TriangleCount() + 3
	for step := 0; step < limit; step++ {
		tri, _ := tr.ds.Triangle(t)
		next := mesh.NoTriangle
		for k := 0; k < 3; k++ {
			i := (k + step) % 3
			a, b := tr.ds.Point(tri.Nodes[i]), tr.ds.Point(tri.Nodes[(i+1)%3])
			o, err := geom.Classify(p, a, b, tr.tol)
			if err != nil {
				return mesh.NoTriangle, err
			}
			if o != geom.Right {
				continue
			}
			next = tr.ds.Neighbour(t, tri.Edges[i])
			if next == mesh.NoTriangle {
				return mesh.NoTriangle, fmt.Errorf("%w: point %v outside the seed", ErrInvalidInputGeometry, p)
			}
			break
		}
		if next == mesh.NoTriangle {
			tr.lastHit = t
			return t, nil
		}
		t = next
	}

	return tr.scan(p)
}

// scan is the linear fallback of Locate.
func (tr *Triangulator) scan(p geom.Point) (int, error) {
	for t := range tr.ds.Triangles() {
		if tr.contains(t, p) {
			tr.lastHit = t
			return t, nil
		}
	}
	return mesh.NoTriangle, fmt.Errorf("%w: point %v outside the seed", ErrInvalidInputGeometry, p)
}

// contains reports whether p is inside or on the boundary of triangle t.
func (tr *Triangulator) contains(t int, p geom.Point) bool {
	tri, _ := tr.ds.Triangle(t)
	for i := 0; i < 3; i++ {
		a, b := tr.ds.Point(tri.Nodes[i]), tr.ds.Point(tri.Nodes[(i+1)%3])
		if o, err := geom.Classify(p, a, b, tr.tol); err != nil || o == geom.Right {
			return false
		}
	}
	return true
}
