// File: methods_triangles.go
// Role: Triangle lifecycle & queries: AddTriangle/Triangle/RemoveTriangle/
//       Triangles/TriangleCount/TrianglesAround/AnyTriangle.
// Determinism:
//   - AddTriangle normalises node order to CCW starting at the smallest
//     vertex index, so equal input yields equal records.

package mesh

import (
	"iter"

	"github.com/katalvlaran/lvmesh/geom"
)

// AddTriangle creates the triangle bounded by edges e1, e2, e3.
//
// Steps:
//  1. Validate the edges are live and pairwise distinct.
//  2. Check they close a loop over exactly three distinct vertices
//     (ErrBrokenLoop otherwise).
//  3. Reject near-collinear vertices with ErrDegenerateTriangle.
//  4. Orient the nodes counter-clockwise and align Edges[i] with
//     (Nodes[i], Nodes[i+1]).
//  5. Check no edge already bounds two triangles (ErrEdgeOverloaded).
//  6. Store the triangle and attach it to its edges.
//
// Nothing is mutated when an error is returned.
// Complexity: O(1).
func (ds *DataStructure) AddTriangle(e1, e2, e3 int) (int, error) {
	// 1) Validation
	es := [3]int{e1, e2, e3}
	for _, e := range es {
		if !ds.liveEdge(e) {
			return -1, ErrEdgeNotFound
		}
	}
	if e1 == e2 || e2 == e3 || e1 == e3 {
		return -1, ErrBrokenLoop
	}

	// 2) Loop closure: a, b from e1, c the far end of e2
	a, b := ds.edges[e1].First, ds.edges[e1].Last
	var c int
	switch {
	case ds.edges[e2].Has(b):
		c = ds.edges[e2].Other(b)
	case ds.edges[e2].Has(a):
		a, b = b, a
		c = ds.edges[e2].Other(b)
	default:
		return -1, ErrBrokenLoop
	}
	if c == a || c == b || !ds.edges[e3].Has(c) || !ds.edges[e3].Has(a) {
		return -1, ErrBrokenLoop
	}

	// 3) Geometry
	pa, pb, pc := ds.Point(a), ds.Point(b), ds.Point(c)
	if geom.Degenerate(pa, pb, pc, ds.tol) {
		return -1, ErrDegenerateTriangle
	}

	// 4) Orientation: nodes (a,b,c) with edges (e1,e2,e3) walk the loop
	nodes := [3]int{a, b, c}
	edges := [3]int{e1, e2, e3}
	if geom.SignedArea(pa, pb, pc) < 0 {
		nodes = [3]int{a, c, b}
		edges = [3]int{e3, e2, e1}
	}
	nodes, edges = rotateToMin(nodes, edges)

	// 5) Capacity
	for _, e := range edges {
		if ds.edges[e].Triangles[0] != NoTriangle && ds.edges[e].Triangles[1] != NoTriangle {
			return -1, ErrEdgeOverloaded
		}
	}

	// 6) Store
	t := len(ds.triangles)
	ds.triangles = append(ds.triangles, Triangle{Nodes: nodes, Edges: edges, Movability: Free})
	for _, e := range edges {
		ds.attach(e, t)
	}
	ds.liveTriangles++

	return t, nil
}

// rotateToMin rotates the cyclic node/edge order so Nodes[0] is the
// smallest vertex index.
func rotateToMin(nodes, edges [3]int) ([3]int, [3]int) {
	k := 0
	for i := 1; i < 3; i++ {
		if nodes[i] < nodes[k] {
			k = i
		}
	}
	return [3]int{nodes[k], nodes[(k+1)%3], nodes[(k+2)%3]},
		[3]int{edges[k], edges[(k+1)%3], edges[(k+2)%3]}
}

// Triangle returns a copy of triangle t. Deleted triangles are still readable.
func (ds *DataStructure) Triangle(t int) (Triangle, error) {
	if t < 0 || t >= len(ds.triangles) {
		return Triangle{}, ErrTriangleNotFound
	}
	return ds.triangles[t], nil
}

// RemoveTriangle tombstones t and detaches it from its edges. The edges stay.
// Complexity: O(1).
func (ds *DataStructure) RemoveTriangle(t int) error {
	if !ds.liveTriangle(t) {
		return ErrTriangleNotFound
	}
	for _, e := range ds.triangles[t].Edges {
		ds.detach(e, t)
	}
	ds.triangles[t].Movability = Deleted
	ds.liveTriangles--

	return nil
}

// IsLiveTriangle reports whether t names a live triangle.
func (ds *DataStructure) IsLiveTriangle(t int) bool { return ds.liveTriangle(t) }

// Triangles yields the live triangles in ascending index order.
func (ds *DataStructure) Triangles() iter.Seq[int] {
	return func(yield func(int) bool) {
		for t := range ds.triangles {
			if ds.triangles[t].Movability == Deleted {
				continue
			}
			if !yield(t) {
				return
			}
		}
	}
}

// TriangleCount returns the number of live triangles.
func (ds *DataStructure) TriangleCount() int { return ds.liveTriangles }

// AnyTriangle returns the live triangle with the largest index, which is the
// most recently created one. ok is false for an empty structure.
// Complexity: O(T) worst case, O(1) while few triangles are deleted at the tail.
func (ds *DataStructure) AnyTriangle() (int, bool) {
	for t := len(ds.triangles) - 1; t >= 0; t-- {
		if ds.triangles[t].Movability != Deleted {
			return t, true
		}
	}
	return NoTriangle, false
}

// TrianglesAround returns the live triangles incident to vertex v, each once,
// in the order their edges were attached.
func (ds *DataStructure) TrianglesAround(v int) []int {
	if v < 0 || v >= len(ds.links) {
		return nil
	}
	seen := make(map[int]struct{}, 8)
	out := make([]int, 0, 8)
	for _, e := range ds.links[v] {
		for _, t := range ds.edges[e].Triangles {
			if t == NoTriangle {
				continue
			}
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			out = append(out, t)
		}
	}
	return out
}

func (ds *DataStructure) liveTriangle(t int) bool {
	return t >= 0 && t < len(ds.triangles) && ds.triangles[t].Movability != Deleted
}
