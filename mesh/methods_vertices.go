// File: methods_vertices.go
// Role: Vertex lifecycle & queries: AddVertex/Vertex/AttachSource/
//       SetVertexMovability/MarkVertexDeleted/VertexCount/EdgesOf.
// Determinism:
//   - AddVertex resolves merges to the smallest (first-inserted) index.
//   - EdgesOf yields edges in attachment order.

package mesh

import (
	"iter"

	"github.com/katalvlaran/lvmesh/geom"
)

// AddVertex returns the index of the vertex at p.
//
// Steps:
//  1. Query the spatial index for live vertices within tol of p.
//  2. On a hit, return the first-inserted one; coordinates are not averaged.
//  3. Otherwise append a new Free vertex and index it.
//
// A non-positive tol falls back to the structure tolerance.
// Complexity: O(log V) expected.
func (ds *DataStructure) AddVertex(p geom.Point, tol float64) int {
	if tol <= 0 {
		tol = ds.tol
	}
	// 1-2) Merge with an existing vertex
	if v, ok := ds.findVertex(p, tol); ok {
		return v
	}

	// 3) Allocate
	v := len(ds.vertices)
	ds.vertices = append(ds.vertices, Vertex{Point: p, Movability: Free})
	ds.links = append(ds.links, nil)
	ds.indexVertex(v, p)

	return v
}

// Vertex returns a copy of vertex v. Deleted vertices are still readable.
func (ds *DataStructure) Vertex(v int) (Vertex, error) {
	if v < 0 || v >= len(ds.vertices) {
		return Vertex{}, ErrVertexNotFound
	}
	return ds.vertices[v], nil
}

// Point returns the coordinates of vertex v; it panics on a bad index.
// Use it in hot paths where v is known to be valid.
func (ds *DataStructure) Point(v int) geom.Point {
	return ds.vertices[v].Point
}

// AttachSource appends caller back-references to vertex v.
func (ds *DataStructure) AttachSource(v int, sources ...int) error {
	if !ds.liveVertex(v) {
		return ErrVertexNotFound
	}
	ds.vertices[v].Sources = append(ds.vertices[v].Sources, sources...)
	return nil
}

// SetVertexMovability raises the movability of v to m (Free < Fixed).
// A Fixed vertex is never lowered back to Free.
func (ds *DataStructure) SetVertexMovability(v int, m Movability) error {
	if !ds.liveVertex(v) {
		return ErrVertexNotFound
	}
	if m == Deleted {
		return ds.MarkVertexDeleted(v)
	}
	if m > ds.vertices[v].Movability {
		ds.vertices[v].Movability = m
	}
	return nil
}

// MarkVertexDeleted tombstones v. Its index is never reissued and it stops
// matching spatial queries. Incident edges are left untouched.
func (ds *DataStructure) MarkVertexDeleted(v int) error {
	if v < 0 || v >= len(ds.vertices) {
		return ErrVertexNotFound
	}
	ds.vertices[v].Movability = Deleted
	return nil
}

// VertexCount returns the number of vertex indices ever issued.
func (ds *DataStructure) VertexCount() int { return len(ds.vertices) }

// Vertices returns a copy of every vertex record, deleted ones included, so
// that positions match vertex indices.
// Complexity: O(V).
func (ds *DataStructure) Vertices() []Vertex {
	out := make([]Vertex, len(ds.vertices))
	copy(out, ds.vertices)
	for i := range out {
		out[i].Sources = append([]int(nil), out[i].Sources...)
	}
	return out
}

// EdgesOf yields the live edges incident to v.
//
// The sequence is lazy and finite. It reads the incidence list as it stands
// when iteration starts; after any mutation call EdgesOf again.
func (ds *DataStructure) EdgesOf(v int) iter.Seq[int] {
	return func(yield func(int) bool) {
		if v < 0 || v >= len(ds.links) {
			return
		}
		for _, e := range ds.links[v] {
			if !yield(e) {
				return
			}
		}
	}
}

// Degree returns the number of live edges incident to v.
func (ds *DataStructure) Degree(v int) int {
	if v < 0 || v >= len(ds.links) {
		return 0
	}
	return len(ds.links[v])
}

func (ds *DataStructure) liveVertex(v int) bool {
	return v >= 0 && v < len(ds.vertices) && ds.vertices[v].Movability != Deleted
}

func (ds *DataStructure) link(v, e int) {
	ds.links[v] = append(ds.links[v], e)
}

func (ds *DataStructure) unlink(v, e int) {
	l := ds.links[v]
	for i, x := range l {
		if x == e {
			ds.links[v] = append(l[:i], l[i+1:]...)
			return
		}
	}
}
