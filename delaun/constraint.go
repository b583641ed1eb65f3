package delaun

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/lvmesh/geom"
	"github.com/katalvlaran/lvmesh/mesh"
)

// InsertConstraint forces the segment between vertices a and b into the mesh
// as a chain of Fixed edges, each within tolerance of a→b.
//
// Steps (walking from cur = a until cur = b):
//  1. If edge (cur,b) exists, mark it Fixed and stop.
//  2. Scan the triangles around cur. A neighbour within tolerance of a→b and
//     ahead of cur is re-used: (cur,w) is marked Fixed, cur = w.
//  3. Otherwise find the triangle (cur,u,v) whose edge uv the segment
//     crosses. A Fixed uv means two constraints cross:
//     ErrInvalidInputGeometry.
//  4. Split uv at the intersection X, mark (cur,X) Fixed, legalize, and
//     continue from X. When X cannot become a proper vertex (too close to u,
//     v or another vertex, or the split would leave slivers), the pierced
//     edges are flipped out of the way instead.
//
// A segment that flips cannot recover fails with ErrDegeneratePredicate and
// is counted in Stats.Skipped; the Fixed edges made so far stay on a→b.
// The walk is bounded by the size of the structure. The first successful
// call moves the triangulator to Constrained.
func (tr *Triangulator) InsertConstraint(a, b int) error {
	if err := tr.mutable(); err != nil {
		return err
	}
	if !tr.inputVertex(a) || !tr.inputVertex(b) {
		return fmt.Errorf("%w: constraint %d→%d names an unknown vertex", ErrInvalidInputGeometry, a, b)
	}
	if a == b {
		return fmt.Errorf("%w: constraint %d→%d has zero length", ErrInvalidInputGeometry, a, b)
	}

	s := segment{a: a, b: b, pa: tr.ds.Point(a), pb: tr.ds.Point(b)}
	limit := tr.ds.VertexCount() + tr.ds.EdgeCount() + 8
	cur := a
	for step := 0; cur != b; step++ {
		if step > limit {
			return fmt.Errorf("%w: constraint %d→%d did not close", ErrInvalidInputGeometry, a, b)
		}
		// 1) Direct edge
		if _, ok := tr.ds.FindEdge(cur, b); ok {
			if err := tr.fix(cur, b); err != nil {
				return err
			}
			break
		}
		next, err := tr.advance(s, cur)
		if err != nil {
			return fmt.Errorf("constraint %d→%d: %w", a, b, err)
		}
		cur = next
	}

	tr.constraints = append(tr.constraints, [2]int{a, b})
	tr.state = Constrained
	tr.stats.Constraints++
	tr.opts.OnConstraint(a, b)

	return nil
}

// InsertConstraints enforces every pair in order, polling the context before
// each. It stops at the first error.
func (tr *Triangulator) InsertConstraints(pairs [][2]int) error {
	for _, pr := range pairs {
		if err := tr.cancelled(); err != nil {
			return err
		}
		if err := tr.InsertConstraint(pr[0], pr[1]); err != nil {
			return err
		}
	}
	return nil
}

// inputVertex reports whether v is a live, non-super vertex.
func (tr *Triangulator) inputVertex(v int) bool {
	vx, err := tr.ds.Vertex(v)
	return err == nil && vx.Movability != mesh.Deleted && !tr.IsSuper(v)
}

// segment is the constraint being enforced.
type segment struct {
	a, b   int
	pa, pb geom.Point
}

// supports reports whether p lies within tolerance of s and strictly ahead
// of from along it, before s.b.
func (tr *Triangulator) supports(s segment, from, p geom.Point) bool {
	o, err := geom.Classify(p, s.pa, s.pb, tr.tol)
	if err != nil || o != geom.OnLine {
		return false
	}
	dir := s.pb.Sub(s.pa)
	return p.Sub(from).Dot(dir) > 0 && s.pb.Sub(p).Dot(dir) > 0
}

// advance performs one step of the constraint walk from cur toward s.b and
// returns the next vertex of the chain; edge (cur, next) is Fixed on return.
func (tr *Triangulator) advance(s segment, cur int) (int, error) {
	ds := tr.ds
	pc := ds.Point(cur)

	// 2) Nearest neighbour on the segment
	next, best := -1, 0.0
	for _, t := range ds.TrianglesAround(cur) {
		tri, _ := ds.Triangle(t)
		for _, w := range tri.Nodes {
			pw := ds.Point(w)
			if w == cur || !tr.supports(s, pc, pw) {
				continue
			}
			if d := pc.Dist(pw); next < 0 || d < best {
				next, best = w, d
			}
		}
	}
	if next >= 0 {
		return next, tr.fix(cur, next)
	}

	// 3) Crossing
	t, uv, u, v, err := tr.facing(cur, s.pb)
	if err != nil {
		return -1, err
	}

	// 4) Split or recover
	return tr.cross(s, t, uv, cur, u, v)
}

// facing finds the triangle (cur,u,v) around cur whose edge uv the segment
// from cur toward end crosses: u strictly right of it, v strictly left.
// A Fixed uv means two constraints cross: ErrInvalidInputGeometry.
func (tr *Triangulator) facing(cur int, end geom.Point) (t, uv, u, v int, err error) {
	ds := tr.ds
	pc := ds.Point(cur)
	for _, t = range ds.TrianglesAround(cur) {
		tri, _ := ds.Triangle(t)
		i := 0
		for tri.Nodes[i] != cur {
			i++
		}
		u, v = tri.Nodes[(i+1)%3], tri.Nodes[(i+2)%3]
		ou, err := geom.Classify(ds.Point(u), pc, end, 0)
		if err != nil {
			return -1, -1, -1, -1, err
		}
		ov, err := geom.Classify(ds.Point(v), pc, end, 0)
		if err != nil {
			return -1, -1, -1, -1, err
		}
		if ou != geom.Right || ov != geom.Left {
			continue
		}
		uv, _ = ds.FindEdge(u, v)
		if edge, _ := ds.Edge(uv); edge.IsConstraint() {
			return -1, -1, -1, -1, fmt.Errorf("%w: crosses constraint edge %d", ErrInvalidInputGeometry, uv)
		}
		return t, uv, u, v, nil
	}

	return -1, -1, -1, -1, fmt.Errorf("%w: no triangle around vertex %d faces the target", ErrInvalidInputGeometry, cur)
}

// cross handles the segment cur→s.b crossing edge uv of triangle t. The edge
// is split at the intersection X when X can be a vertex of its own;
// otherwise the segment is recovered by flipping (see recover).
func (tr *Triangulator) cross(s segment, t, uv, cur, u, v int) (int, error) {
	ds := tr.ds
	pc := ds.Point(cur)
	pu, pv := ds.Point(u), ds.Point(v)

	x, ok := geom.SegmentIntersection(pc, s.pb, pu, pv)
	if !ok || len(ds.VerticesInCircle(x, tr.tol)) > 0 {
		return tr.recover(s, t, uv, cur, u, v)
	}

	tri, _ := ds.Triangle(t)
	w, err := tr.splitEdge(t, tri.EdgeSlot(uv), x)
	if errors.Is(err, ErrDegenerateTriangle) {
		return tr.recover(s, t, uv, cur, u, v)
	}
	if err != nil {
		return -1, err
	}
	tr.stats.Steiner++
	if err = tr.fix(cur, w); err != nil {
		return -1, err
	}
	if _, err = tr.legalize(); err != nil {
		return -1, err
	}

	return w, nil
}

// recoverRounds bounds how often recover re-walks the corridor toward its
// target after the flip queue drains without producing the edge.
const recoverRounds = 3

// recover makes the segment from cur to the next vertex on it an edge by
// flipping the Free edges it pierces, starting with uv of triangle t.
//
// Steps:
//  1. Walk the corridor of triangles pierced by cur→s.b, collecting crossed
//     edges until the walk reaches s.b or a vertex supporting s (the target).
//  2. Cycle through the queue: edges that no longer cross cur→target are
//     dropped, flippable ones are flipped (and re-queued if the new diagonal
//     still crosses), the rest wait for their neighbours to change.
//  3. If (cur, target) is still missing, re-walk the corridor along
//     cur→target and repeat.
//  4. Fix (cur, target) and legalize the flipped region.
//
// A full pass in which nothing can be flipped ends the attempt with
// ErrDegeneratePredicate, counted as skipped.
func (tr *Triangulator) recover(s segment, t, uv, cur, u, v int) (int, error) {
	ds := tr.ds
	pc := ds.Point(cur)
	queue, target, err := tr.corridor(t, uv, cur, s.pb, u, v, func(w int) bool {
		return w == s.b || tr.supports(s, pc, ds.Point(w))
	})
	if err != nil {
		return -1, err
	}
	pt := ds.Point(target)

	// crosses reports whether edge e still pierces the open segment cur→target.
	crosses := func(e int) bool {
		edge, err := ds.Edge(e)
		if err != nil || edge.Has(cur) || edge.Has(target) {
			return false
		}
		pp, pq := ds.Point(edge.First), ds.Point(edge.Last)
		op, err1 := geom.Classify(pp, pc, pt, 0)
		oq, err2 := geom.Classify(pq, pc, pt, 0)
		if err1 != nil || err2 != nil || op == geom.OnLine || oq == geom.OnLine || op == oq {
			return false
		}
		oc, err1 := geom.Classify(pc, pp, pq, 0)
		ot, err2 := geom.Classify(pt, pp, pq, 0)
		return err1 == nil && err2 == nil && oc != geom.OnLine && ot != geom.OnLine && oc != ot
	}
	fail := func(reason string) (int, error) {
		_, _ = tr.legalize()
		return -1, tr.skip(pt, fmt.Errorf("%w: segment %d→%d %s", ErrDegeneratePredicate, cur, target, reason))
	}

	for round := 0; ; round++ {
		limit := legalizeBudget * (len(queue) + 1) * (len(queue) + 1)
		stall := 0
		for steps := 0; len(queue) > 0; steps++ {
			if steps > limit || stall > len(queue) {
				return fail("cannot be recovered by flips")
			}
			e := queue[0]
			queue = queue[1:]
			if !crosses(e) {
				tr.push(e)
				continue
			}
			q, ok := tr.quadOf(e)
			if !ok || !tr.flippable(q) {
				queue = append(queue, e)
				stall++
				continue
			}
			stall = 0
			if err = tr.flip(q); err != nil {
				return -1, err
			}
			if crosses(e) {
				queue = append(queue, e)
			} else {
				tr.push(e)
			}
		}

		if _, ok := ds.FindEdge(cur, target); ok {
			break
		}
		if round+1 >= recoverRounds {
			return fail("missing after flips")
		}
		if t, uv, u, v, err = tr.facing(cur, pt); err != nil {
			return -1, err
		}
		if queue, _, err = tr.corridor(t, uv, cur, pt, u, v, func(w int) bool { return w == target }); err != nil {
			return -1, err
		}
	}

	if err = tr.fix(cur, target); err != nil {
		return -1, err
	}
	if _, err = tr.legalize(); err != nil {
		return -1, err
	}

	return target, nil
}

// corridor collects the edges pierced by the segment from cur toward end,
// starting with uv of triangle t (u right of the segment, v left). It stops
// at the first apex w for which stop(w) holds, or that lies exactly on the
// segment, and returns that vertex.
func (tr *Triangulator) corridor(t, uv, cur int, end geom.Point, u, v int, stop func(w int) bool) ([]int, int, error) {
	ds := tr.ds
	pc := ds.Point(cur)
	edges := []int{uv}
	e := uv

	for step := 0; step <= ds.TriangleCount(); step++ {
		n := ds.Neighbour(t, e)
		if n == mesh.NoTriangle {
			return nil, -1, fmt.Errorf("%w: segment from vertex %d leaves the mesh", ErrInvalidInputGeometry, cur)
		}
		ntri, _ := ds.Triangle(n)
		w := ntri.Opposite(ntri.EdgeSlot(e))
		if stop(w) {
			return edges, w, nil
		}
		o, err := geom.Classify(ds.Point(w), pc, end, 0)
		if err != nil {
			return nil, -1, err
		}
		switch o {
		case geom.Right:
			u = w
		case geom.Left:
			v = w
		default:
			return edges, w, nil
		}
		e, _ = ds.FindEdge(u, v)
		if edge, _ := ds.Edge(e); edge.IsConstraint() {
			return nil, -1, fmt.Errorf("%w: crosses constraint edge %d", ErrInvalidInputGeometry, e)
		}
		edges = append(edges, e)
		t = n
	}

	return nil, -1, fmt.Errorf("%w: corridor from vertex %d did not close", ErrInvalidInputGeometry, cur)
}

// fix marks the existing edge (a,b) and both its endpoints Fixed.
func (tr *Triangulator) fix(a, b int) error {
	e, ok := tr.ds.FindEdge(a, b)
	if !ok {
		return fmt.Errorf("delaun: edge %d-%d missing from the constraint chain", a, b)
	}
	_ = tr.ds.SetVertexMovability(a, mesh.Fixed)
	_ = tr.ds.SetVertexMovability(b, mesh.Fixed)
	return tr.ds.SetEdgeMovability(e, mesh.Fixed)
}
