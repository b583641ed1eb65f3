package delaun

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/lvmesh/geom"
	"github.com/katalvlaran/lvmesh/mesh"
)

// InsertPoint adds p to the triangulation and restores the Delaunay property.
// sources are attached to the vertex as caller back-references.
//
// Steps:
//  1. A point within tolerance of an existing vertex returns that vertex;
//     sources are appended and the mesh is unchanged.
//  2. Locate the containing triangle by walking from the last hit.
//  3. On the interior: split 1→3. On exactly one edge: split 2→4, the two
//     halves inheriting the edge movability.
//  4. Legalize the edges opposite the new vertex with Lawson flips.
//
// Errors:
//   - ErrBadState before Seed or after Finalize.
//   - ErrInvalidInputGeometry when p is outside the super triangle.
//   - ErrDegenerateTriangle when any triangle of the split would be a
//     sliver (p is too close to an edge line it is not on, or to two edges).
//     Nothing is changed.
//   - ErrDegeneratePredicate on NaN/Inf coordinates. Nothing is changed.
//   - ErrDegeneratePredicate when legalization after the split does not
//     settle. The vertex is in the mesh and is returned with the error;
//     the mesh is valid but may hold non-Delaunay edges.
//
// Degenerate outcomes are counted in Stats.Skipped and reported to OnSkip.
//
// Complexity: O(√n) expected for location plus O(deg) flips.
func (tr *Triangulator) InsertPoint(p geom.Point, sources ...int) (int, error) {
	if err := tr.mutable(); err != nil {
		return -1, err
	}
	if !p.Finite() {
		return -1, tr.skip(p, ErrDegeneratePredicate)
	}

	// 1) Dedup
	if hits := tr.ds.VerticesInCircle(p, tr.tol); len(hits) > 0 {
		v := hits[0]
		if tr.IsSuper(v) {
			return -1, fmt.Errorf("%w: point %v on a super vertex", ErrInvalidInputGeometry, p)
		}
		_ = tr.ds.AttachSource(v, sources...)
		tr.stats.Duplicates++
		return v, nil
	}

	// 2) Locate
	t, err := tr.Locate(p)
	if err != nil {
		return -1, err
	}

	// 3) Split
	tri, _ := tr.ds.Triangle(t)
	slot, onLine := -1, 0
	for i := 0; i < 3; i++ {
		a, b := tr.ds.Point(tri.Nodes[i]), tr.ds.Point(tri.Nodes[(i+1)%3])
		o, err := geom.Classify(p, a, b, tr.tol)
		if err != nil {
			return -1, tr.skip(p, err)
		}
		if o == geom.OnLine {
			slot = i
			onLine++
		}
	}
	var v int
	switch onLine {
	case 0:
		v, err = tr.splitTriangle(t, p)
	case 1:
		v, err = tr.splitEdge(t, slot, p)
		if err == nil {
			tr.stats.EdgeSplits++
		}
	default:
		err = ErrDegenerateTriangle
	}
	if err != nil {
		if errors.Is(err, ErrDegenerateTriangle) {
			return -1, tr.skip(p, err)
		}
		return -1, err
	}
	_ = tr.ds.AttachSource(v, sources...)
	if tr.state == Seeded {
		tr.state = Refining
	}
	tr.stats.Points++

	// 4) Legalize
	_, err = tr.legalize()
	tr.opts.OnInsert(v, p)
	if err != nil {
		return v, tr.skip(p, err)
	}

	return v, nil
}

// skip counts a degenerate outcome at p, reports it to OnSkip and returns err.
func (tr *Triangulator) skip(p geom.Point, err error) error {
	tr.stats.Skipped++
	tr.opts.OnSkip(p, err)
	return err
}

// InsertPoints inserts every point in order; point i gets source i.
// See InsertOrdered.
func (tr *Triangulator) InsertPoints(points []geom.Point) ([]int, error) {
	order := make([]int, len(points))
	for i := range order {
		order[i] = i
	}
	return tr.InsertOrdered(points, order)
}

// InsertOrdered inserts points[order[0]], points[order[1]], ... and attaches
// the original position as source. It returns the vertex of each input
// point by original position; skipped points map to -1.
//
// Degenerate points (ErrDegenerateTriangle, ErrDegeneratePredicate) are
// absorbed; InsertPoint has already counted them in Stats. A point whose
// vertex went in before legalization gave up keeps that vertex. Any other
// error aborts. The context is polled
// before every insertion; on cancellation ErrCancelled is returned together
// with the vertices inserted so far, and the structure is consistent.
func (tr *Triangulator) InsertOrdered(points []geom.Point, order []int) ([]int, error) {
	out := make([]int, len(points))
	for i := range out {
		out[i] = -1
	}
	for _, i := range order {
		if i < 0 || i >= len(points) {
			return out, fmt.Errorf("%w: order index %d out of range", ErrInvalidInputGeometry, i)
		}
		if err := tr.cancelled(); err != nil {
			return out, err
		}
		v, err := tr.InsertPoint(points[i], i)
		switch {
		case err == nil:
			out[i] = v
		case errors.Is(err, ErrDegenerateTriangle), errors.Is(err, ErrDegeneratePredicate):
			if v >= 0 {
				out[i] = v
			}
		default:
			return out, err
		}
	}
	return out, nil
}

// splitTriangle inserts p strictly inside t, replacing it with three
// triangles fanned around the new vertex.
func (tr *Triangulator) splitTriangle(t int, p geom.Point) (int, error) {
	ds := tr.ds
	tri, _ := ds.Triangle(t)
	for i := 0; i < 3; i++ {
		a, b := ds.Point(tri.Nodes[i]), ds.Point(tri.Nodes[(i+1)%3])
		if geom.Degenerate(a, b, p, tr.tol) {
			return -1, ErrDegenerateTriangle
		}
	}

	v := ds.AddVertex(p, tr.tol)
	if err := ds.RemoveTriangle(t); err != nil {
		return -1, err
	}
	var spokes [3]int
	for i, n := range tri.Nodes {
		e, err := ds.AddEdge(v, n, mesh.Free)
		if err != nil {
			return -1, err
		}
		spokes[i] = e
	}
	for i := 0; i < 3; i++ {
		nt, err := ds.AddTriangle(tri.Edges[i], spokes[(i+1)%3], spokes[i])
		if err != nil {
			return -1, fmt.Errorf("delaun: split triangle %d: %w", t, err)
		}
		tr.lastHit = nt
		tr.push(tri.Edges[i])
	}

	return v, nil
}

// splitEdge inserts p on edge slot of t. The edge is halved in place (the
// first half keeps its index) and each adjacent triangle is split in two.
func (tr *Triangulator) splitEdge(t, slot int, p geom.Point) (int, error) {
	ds := tr.ds
	tri, _ := ds.Triangle(t)
	e := tri.Edges[slot]
	edge, _ := ds.Edge(e)
	a, b := tri.Nodes[slot], tri.Nodes[(slot+1)%3]

	sides := []int{t}
	if n := ds.Neighbour(t, e); n != mesh.NoTriangle {
		sides = append(sides, n)
	}
	apex := make([]int, len(sides))
	pa, pb := ds.Point(a), ds.Point(b)
	for i, s := range sides {
		st, _ := ds.Triangle(s)
		apex[i] = st.Opposite(st.EdgeSlot(e))
		pc := ds.Point(apex[i])
		if geom.Degenerate(pa, p, pc, tr.tol) || geom.Degenerate(p, pb, pc, tr.tol) {
			return -1, ErrDegenerateTriangle
		}
	}

	v := ds.AddVertex(p, tr.tol)
	for _, s := range sides {
		if err := ds.RemoveTriangle(s); err != nil {
			return -1, err
		}
	}
	if err := ds.SubstituteEdge(e, mesh.Edge{First: a, Last: v, Movability: edge.Movability}); err != nil {
		return -1, err
	}
	eb, err := ds.AddEdge(v, b, edge.Movability)
	if err != nil {
		return -1, err
	}
	for _, c := range apex {
		ec, err := ds.AddEdge(v, c, mesh.Free)
		if err != nil {
			return -1, err
		}
		eac, _ := ds.FindEdge(a, c)
		ebc, _ := ds.FindEdge(b, c)
		if _, err = ds.AddTriangle(e, ec, eac); err != nil {
			return -1, fmt.Errorf("delaun: split edge %d: %w", e, err)
		}
		nt, err := ds.AddTriangle(eb, ebc, ec)
		if err != nil {
			return -1, fmt.Errorf("delaun: split edge %d: %w", e, err)
		}
		tr.lastHit = nt
		tr.push(eac, ebc)
	}

	return v, nil
}
