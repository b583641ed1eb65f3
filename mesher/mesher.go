package mesher

import (
	"errors"
	"fmt"
	"sort"

	"github.com/katalvlaran/lvmesh/delaun"
	"github.com/katalvlaran/lvmesh/geom"
)

// Mesh triangulates one face.
//
// Steps:
//  1. Validate the face (see Validate).
//  2. Pick the tolerance: the option value or geom.DefaultTolerance of the
//     bounding box of every point.
//  3. Gather the points to insert: face points, interior points, then the
//     refinement points when Spacing > 0. A vertex's Sources hold positions
//     in that concatenation, so sources below len(face.Points) name face
//     points.
//  4. Insert them sorted by (X, Y) for walk locality.
//  5. Enforce every loop segment as a constraint and finalize.
//
// On cancellation the partial result is returned with an error wrapping
// ErrCancelled.
func Mesh(face Face, opts ...Option) (*delaun.Result, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	// 2) Tolerance (needed by validation)
	all := make([]geom.Point, 0, len(face.Points)+len(face.Interior))
	all = append(all, face.Points...)
	all = append(all, face.Interior...)
	box := geom.BoxOf(all...)
	tol := o.Tolerance
	if tol <= 0 {
		tol = geom.DefaultTolerance(box)
	}

	// 1) Validate
	loops, err := Validate(face, tol)
	if err != nil {
		return nil, err
	}

	// 3) Refinement
	if o.Spacing > 0 {
		segs, err := newSegmentIndex(face, loops, o.Spacing/2)
		if err != nil {
			return nil, err
		}
		all = append(all, refine(face, loops, segs, box, o.Spacing)...)
	}

	// 4) Seed and insert in (X, Y) order
	tr := delaun.New(append([]delaun.Option{
		delaun.WithContext(o.Ctx),
		delaun.WithTolerance(tol),
	}, o.Triangulator...)...)
	if err = tr.Seed(box); err != nil {
		return nil, err
	}
	verts, err := tr.InsertOrdered(all, sortedOrder(all))
	if err != nil {
		return partial(tr, err)
	}

	// 5) Constraints
	for l, loop := range loops {
		pairs := make([][2]int, 0, len(loop))
		for k := range loop {
			a, b := verts[loop[k]], verts[loop[(k+1)%len(loop)]]
			if a < 0 || b < 0 {
				return nil, fmt.Errorf("%w: loop %d point dropped as degenerate", ErrInvalidInputGeometry, l)
			}
			if a != b {
				pairs = append(pairs, [2]int{a, b})
			}
		}
		if err = tr.InsertConstraints(pairs); err != nil {
			return partial(tr, fmt.Errorf("loop %d: %w", l, err))
		}
	}

	res, err := tr.Finalize()
	if err != nil {
		return partial(tr, err)
	}
	return res, nil
}

// partial returns the current triangulation alongside a cancellation error;
// any other error is returned without a result.
func partial(tr *delaun.Triangulator, err error) (*delaun.Result, error) {
	if errors.Is(err, ErrCancelled) {
		return tr.PartialResult(), err
	}
	return nil, err
}

// sortedOrder returns the positions of pts sorted by (X, Y), ties by position.
func sortedOrder(pts []geom.Point) []int {
	order := make([]int, len(pts))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		pa, pb := pts[order[a]], pts[order[b]]
		if pa.X != pb.X {
			return pa.X < pb.X
		}
		return pa.Y < pb.Y
	})
	return order
}
