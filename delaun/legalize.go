package delaun

import (
	"fmt"

	"github.com/katalvlaran/lvmesh/geom"
	"github.com/katalvlaran/lvmesh/mesh"
)

// legalizeBudget bounds the stack pops of one legalize run, per live edge.
const legalizeBudget = 64

// quad is an interior edge with its two triangles: edge (a,b), apex c in t1
// and apex d in t2.
type quad struct {
	e, t1, t2  int
	a, b, c, d int
}

func (tr *Triangulator) push(es ...int) { tr.stack = append(tr.stack, es...) }

// legalize drains the edge stack, flipping every edge that fails the local
// Delaunay test. It returns the number of flips.
//
// Fixed and Deleted edges are never flipped. OnCircle and Indeterminate
// never flip, so cocircular sets keep the diagonal they were built with.
func (tr *Triangulator) legalize() (int, error) {
	flips := 0
	budget := tr.budget * (tr.ds.EdgeCount() + len(tr.stack))
	for pops := 0; len(tr.stack) > 0; pops++ {
		if pops > budget {
			tr.stack = tr.stack[:0]
			return flips, fmt.Errorf("%w: legalization did not settle after %d steps", ErrDegeneratePredicate, pops)
		}
		e := tr.stack[len(tr.stack)-1]
		tr.stack = tr.stack[:len(tr.stack)-1]

		q, ok := tr.quadOf(e)
		if !ok || !tr.illegal(q) {
			continue
		}
		if err := tr.flip(q); err != nil {
			return flips, err
		}
		flips++
	}
	return flips, nil
}

// quadOf returns the quad around a live Free edge bounded by two triangles.
func (tr *Triangulator) quadOf(e int) (quad, bool) {
	edge, err := tr.ds.Edge(e)
	if err != nil || edge.Movability != mesh.Free {
		return quad{}, false
	}
	t1, t2 := edge.Triangles[0], edge.Triangles[1]
	if t1 == mesh.NoTriangle || t2 == mesh.NoTriangle {
		return quad{}, false
	}
	tri1, _ := tr.ds.Triangle(t1)
	tri2, _ := tr.ds.Triangle(t2)
	return quad{
		e: e, t1: t1, t2: t2,
		a: edge.First, b: edge.Last,
		c: tri1.Opposite(tri1.EdgeSlot(e)),
		d: tri2.Opposite(tri2.EdgeSlot(e)),
	}, true
}

// illegal reports whether q should be flipped: d is strictly inside the
// circumcircle of (a,b,c) and q is flippable.
func (tr *Triangulator) illegal(q quad) bool {
	pa, pb := tr.ds.Point(q.a), tr.ds.Point(q.b)
	pc, pd := tr.ds.Point(q.c), tr.ds.Point(q.d)

	state, err := geom.InCircle(pd, pa, pb, pc, tr.tol)
	if err != nil {
		_ = tr.skip(pd, err)
		return false
	}
	return state == geom.Inside && tr.flippable(q)
}

// flippable reports whether diagonal (a,b) of q can be replaced by (c,d):
// the quad is strictly convex, both new triangles are proper, and (c,d) is
// not already an edge.
func (tr *Triangulator) flippable(q quad) bool {
	pa, pb := tr.ds.Point(q.a), tr.ds.Point(q.b)
	pc, pd := tr.ds.Point(q.c), tr.ds.Point(q.d)

	// Convexity: a and b strictly on opposite sides of c→d.
	oa, errA := geom.Classify(pa, pc, pd, tr.tol)
	ob, errB := geom.Classify(pb, pc, pd, tr.tol)
	if errA != nil || errB != nil || oa == geom.OnLine || ob == geom.OnLine || oa == ob {
		return false
	}
	if geom.Degenerate(pc, pd, pa, tr.tol) || geom.Degenerate(pc, pd, pb, tr.tol) {
		return false
	}
	_, exists := tr.ds.FindEdge(q.c, q.d)
	return !exists
}

// flip replaces diagonal (a,b) of q with (c,d), keeping the edge index, and
// pushes the four outer edges.
func (tr *Triangulator) flip(q quad) error {
	ds := tr.ds
	ebc, _ := ds.FindEdge(q.b, q.c)
	eca, _ := ds.FindEdge(q.c, q.a)
	ead, _ := ds.FindEdge(q.a, q.d)
	edb, _ := ds.FindEdge(q.d, q.b)

	if err := ds.RemoveTriangle(q.t1); err != nil {
		return err
	}
	if err := ds.RemoveTriangle(q.t2); err != nil {
		return err
	}
	if err := ds.SubstituteEdge(q.e, mesh.Edge{First: q.c, Last: q.d, Movability: mesh.Free}); err != nil {
		return fmt.Errorf("delaun: flip edge %d: %w", q.e, err)
	}
	n1, err := ds.AddTriangle(q.e, eca, ead)
	if err != nil {
		return fmt.Errorf("delaun: flip edge %d: %w", q.e, err)
	}
	if _, err = ds.AddTriangle(q.e, ebc, edb); err != nil {
		return fmt.Errorf("delaun: flip edge %d: %w", q.e, err)
	}
	tr.lastHit = n1
	tr.push(ebc, eca, ead, edb)
	tr.stats.Flips++
	tr.opts.OnFlip(q.e)

	return nil
}

// LegalizeAll re-checks every Free edge and flips the illegal ones until
// none is left. It returns the number of flips; on a Delaunay mesh that is 0.
func (tr *Triangulator) LegalizeAll() (int, error) {
	if err := tr.mutable(); err != nil {
		return 0, err
	}
	for e := range tr.ds.Edges() {
		tr.push(e)
	}
	return tr.legalize()
}

// Violations returns the Free interior edges whose quad fails the local
// Delaunay test, in ascending order. Fixed edges are exempt.
func (tr *Triangulator) Violations() []int {
	if tr.ds == nil {
		return nil
	}
	var out []int
	for e := range tr.ds.Edges() {
		q, ok := tr.quadOf(e)
		if !ok {
			continue
		}
		pa, pb := tr.ds.Point(q.a), tr.ds.Point(q.b)
		state, err := geom.InCircle(tr.ds.Point(q.d), pa, pb, tr.ds.Point(q.c), tr.tol)
		if err == nil && state == geom.Inside {
			out = append(out, e)
		}
	}
	return out
}
