package mesher

import (
	"fmt"
	"math"

	"github.com/samber/lo"

	"github.com/katalvlaran/lvmesh/geom"
)

// Validate checks a face before meshing and returns its loops with
// consecutive repeated indices (including a repeated closing index) removed.
//
// Steps:
//  1. Points and loops are non-empty; every index is in range.
//  2. Every loop has at least three distinct indices.
//  3. Every loop encloses area: a zero-area three-vertex loop is a
//     degenerate triangle (ErrDegenerateTriangle), any other zero-area
//     loop is ErrInvalidInputGeometry.
//  4. No two non-adjacent boundary segments touch or cross, within tol.
func Validate(face Face, tol float64) ([][]int, error) {
	// 1) Shape
	if len(face.Points) == 0 || len(face.Loops) == 0 {
		return nil, ErrEmptyFace
	}
	for i, p := range append(face.Points[:len(face.Points):len(face.Points)], face.Interior...) {
		if !p.Finite() {
			return nil, fmt.Errorf("%w: point %d is not finite", ErrInvalidInputGeometry, i)
		}
	}
	loops := make([][]int, 0, len(face.Loops))
	for l, loop := range face.Loops {
		if loop.Deflection < 0 || math.IsNaN(loop.Deflection) {
			return nil, fmt.Errorf("%w: loop %d deflection %g", ErrInvalidInputGeometry, l, loop.Deflection)
		}
		for _, i := range loop.Indices {
			if i < 0 || i >= len(face.Points) {
				return nil, fmt.Errorf("%w: loop %d index %d", ErrLoopIndex, l, i)
			}
		}
		idx := compact(loop.Indices)

		// 2) Distinct vertices
		if len(lo.Uniq(idx)) < 3 {
			return nil, fmt.Errorf("%w: loop %d has fewer than three distinct points", ErrInvalidInputGeometry, l)
		}

		// 3) Area
		poly := lo.Map(idx, func(i, _ int) geom.Point { return face.Points[i] })
		if len(poly) == 3 && geom.Degenerate(poly[0], poly[1], poly[2], tol) {
			return nil, fmt.Errorf("%w: loop %d", ErrDegenerateTriangle, l)
		}
		if math.Abs(geom.PolygonArea(poly)) <= tol*perimeter(poly) {
			return nil, fmt.Errorf("%w: loop %d encloses no area", ErrInvalidInputGeometry, l)
		}
		loops = append(loops, idx)
	}

	// 4) Crossings
	segs, err := newSegmentIndex(face, loops, tol)
	if err != nil {
		return nil, err
	}
	for _, s := range segs.segs {
		for _, o := range segs.tree.SearchIntersect(s.rect) {
			t := o.(*segment)
			if t == s || adjacent(s, t) {
				continue
			}
			if geom.SegmentDistance(s.a, s.b, t.a, t.b) <= tol {
				return nil, fmt.Errorf("%w: segments %d-%d and %d-%d meet", ErrInvalidInputGeometry, s.i, s.j, t.i, t.j)
			}
		}
	}

	return loops, nil
}

// compact drops consecutive repeats, treating the loop as cyclic.
func compact(idx []int) []int {
	out := make([]int, 0, len(idx))
	for _, i := range idx {
		if len(out) > 0 && out[len(out)-1] == i {
			continue
		}
		out = append(out, i)
	}
	for len(out) > 1 && out[0] == out[len(out)-1] {
		out = out[:len(out)-1]
	}
	return out
}

func perimeter(poly []geom.Point) float64 {
	return lo.SumBy(lo.Range(len(poly)), func(i int) float64 {
		return poly[i].Dist(poly[(i+1)%len(poly)])
	})
}

// adjacent reports whether two segments of the same loop share an endpoint.
func adjacent(s, t *segment) bool {
	return s.loop == t.loop && (s.i == t.j || s.j == t.i || s.i == t.i || s.j == t.j)
}
