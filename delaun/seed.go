package delaun

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lvmesh/geom"
	"github.com/katalvlaran/lvmesh/mesh"
)

// Seed builds the super triangle enclosing box and moves Empty → Seeded.
//
// Steps:
//  1. Surface option errors; require the Empty state and a non-empty box.
//  2. Fix the tolerance (option value or geom.DefaultTolerance(box)).
//  3. Place an equilateral triangle centred on the box with circumradius
//     SuperScale · max(width, height, tol), vertices at 90°, 210°, 330°.
//
// Every later point must lie inside this triangle.
func (tr *Triangulator) Seed(box geom.Box) error {
	// 1) Preconditions
	if tr.opts.err != nil {
		return tr.opts.err
	}
	if tr.state != Empty {
		return fmt.Errorf("%w: Seed in %s", ErrBadState, tr.state)
	}
	if box.Empty() || !box.Min.Finite() || !box.Max.Finite() {
		return fmt.Errorf("%w: empty or non-finite seed box", ErrInvalidInputGeometry)
	}

	// 2) Tolerance
	tr.tol = tr.opts.Tolerance
	if tr.tol <= 0 {
		tr.tol = geom.DefaultTolerance(box)
	}
	tr.ds = mesh.NewDataStructure(mesh.WithTolerance(tr.tol))

	// 3) Super triangle
	size := math.Max(math.Max(box.Width(), box.Height()), tr.tol)
	r := tr.opts.SuperScale * size
	c := box.Center()
	for i, deg := range [3]float64{90, 210, 330} {
		rad := deg * math.Pi / 180
		tr.super[i] = tr.ds.AddVertex(geom.Pt(c.X+r*math.Cos(rad), c.Y+r*math.Sin(rad)), tr.tol)
	}
	var es [3]int
	for i := range es {
		e, err := tr.ds.AddEdge(tr.super[i], tr.super[(i+1)%3], mesh.Free)
		if err != nil {
			return err
		}
		es[i] = e
	}
	t, err := tr.ds.AddTriangle(es[0], es[1], es[2])
	if err != nil {
		return err
	}
	tr.lastHit = t
	tr.state = Seeded

	return nil
}
