// File: methods_edges.go
// Role: Edge lifecycle & queries: AddEdge/FindEdge/Edge/SubstituteEdge/
//       SetEdgeMovability/RemoveEdge/TrianglesOf/Edges/EdgeCount.
// Determinism:
//   - Edges() yields live edges in ascending index order.
//   - AddEdge is idempotent per unordered vertex pair.

package mesh

import "iter"

// AddEdge returns the edge joining v1 and v2, creating it when absent.
//
// Steps:
//  1. Validate both endpoints and reject v1 == v2.
//  2. Look the unordered pair up; on a hit keep the more restrictive
//     movability (Fixed wins over Free) and return the existing index.
//  3. Otherwise append a new edge with no adjacent triangles and link it to
//     both endpoints.
//
// Complexity: O(1) amortized.
func (ds *DataStructure) AddEdge(v1, v2 int, m Movability) (int, error) {
	// 1) Validation
	if !ds.liveVertex(v1) || !ds.liveVertex(v2) {
		return -1, ErrVertexNotFound
	}
	if v1 == v2 {
		return -1, ErrLoopEdge
	}
	if m == Deleted {
		m = Free
	}

	// 2) Dedup by unordered pair
	if e, ok := ds.pairs[keyOf(v1, v2)]; ok {
		if m > ds.edges[e].Movability {
			ds.edges[e].Movability = m
		}
		return e, nil
	}

	// 3) Allocate
	e := len(ds.edges)
	ds.edges = append(ds.edges, Edge{
		First:      v1,
		Last:       v2,
		Movability: m,
		Triangles:  [2]int{NoTriangle, NoTriangle},
	})
	ds.pairs[keyOf(v1, v2)] = e
	ds.link(v1, e)
	ds.link(v2, e)
	ds.liveEdges++

	return e, nil
}

// FindEdge returns the live edge joining v1 and v2.
// Complexity: O(1).
func (ds *DataStructure) FindEdge(v1, v2 int) (int, bool) {
	e, ok := ds.pairs[keyOf(v1, v2)]
	return e, ok
}

// Edge returns a copy of edge e. Deleted edges are still readable.
func (ds *DataStructure) Edge(e int) (Edge, error) {
	if e < 0 || e >= len(ds.edges) {
		return Edge{}, ErrEdgeNotFound
	}
	return ds.edges[e], nil
}

// SetEdgeMovability raises the movability of e to m (Free < Fixed).
func (ds *DataStructure) SetEdgeMovability(e int, m Movability) error {
	if !ds.liveEdge(e) {
		return ErrEdgeNotFound
	}
	if m == Deleted {
		return ds.RemoveEdge(e)
	}
	if m > ds.edges[e].Movability {
		ds.edges[e].Movability = m
	}
	return nil
}

// SubstituteEdge replaces the endpoints and movability of edge old with those
// of ne, keeping the index. This is the diagonal swap of an edge flip.
//
// The old edge must not bound any triangle (remove them first) and the new
// vertex pair must not already be joined by another edge. Triangle slots of
// ne are ignored; the substituted edge starts with none.
//
// Complexity: O(deg) for the incidence list updates.
func (ds *DataStructure) SubstituteEdge(old int, ne Edge) error {
	if !ds.liveEdge(old) {
		return ErrEdgeNotFound
	}
	if !ds.liveVertex(ne.First) || !ds.liveVertex(ne.Last) {
		return ErrVertexNotFound
	}
	if ne.First == ne.Last {
		return ErrLoopEdge
	}
	cur := ds.edges[old]
	if cur.Triangles[0] != NoTriangle || cur.Triangles[1] != NoTriangle {
		return ErrEdgeInUse
	}
	if e, ok := ds.pairs[keyOf(ne.First, ne.Last)]; ok && e != old {
		return ErrEdgeInUse
	}
	if ne.Movability == Deleted {
		ne.Movability = Free
	}

	delete(ds.pairs, keyOf(cur.First, cur.Last))
	ds.unlink(cur.First, old)
	ds.unlink(cur.Last, old)

	ds.edges[old] = Edge{
		First:      ne.First,
		Last:       ne.Last,
		Movability: ne.Movability,
		Triangles:  [2]int{NoTriangle, NoTriangle},
	}
	ds.pairs[keyOf(ne.First, ne.Last)] = old
	ds.link(ne.First, old)
	ds.link(ne.Last, old)

	return nil
}

// RemoveEdge tombstones e. It fails with ErrEdgeInUse while e bounds a triangle.
func (ds *DataStructure) RemoveEdge(e int) error {
	if !ds.liveEdge(e) {
		return ErrEdgeNotFound
	}
	cur := ds.edges[e]
	if cur.Triangles[0] != NoTriangle || cur.Triangles[1] != NoTriangle {
		return ErrEdgeInUse
	}
	delete(ds.pairs, keyOf(cur.First, cur.Last))
	ds.unlink(cur.First, e)
	ds.unlink(cur.Last, e)
	ds.edges[e].Movability = Deleted
	ds.liveEdges--

	return nil
}

// TrianglesOf returns the 0, 1, or 2 live triangles bounded by e.
func (ds *DataStructure) TrianglesOf(e int) []int {
	if !ds.liveEdge(e) {
		return nil
	}
	out := make([]int, 0, 2)
	for _, t := range ds.edges[e].Triangles {
		if t != NoTriangle {
			out = append(out, t)
		}
	}
	return out
}

// Neighbour returns the triangle across e from t, or NoTriangle.
func (ds *DataStructure) Neighbour(t, e int) int {
	if !ds.liveEdge(e) {
		return NoTriangle
	}
	tr := ds.edges[e].Triangles
	switch t {
	case tr[0]:
		return tr[1]
	case tr[1]:
		return tr[0]
	}
	return NoTriangle
}

// Edges yields the live edges in ascending index order.
func (ds *DataStructure) Edges() iter.Seq[int] {
	return func(yield func(int) bool) {
		for e := range ds.edges {
			if ds.edges[e].Movability == Deleted {
				continue
			}
			if !yield(e) {
				return
			}
		}
	}
}

// EdgeCount returns the number of live edges.
func (ds *DataStructure) EdgeCount() int { return ds.liveEdges }

func (ds *DataStructure) liveEdge(e int) bool {
	return e >= 0 && e < len(ds.edges) && ds.edges[e].Movability != Deleted
}

// attach records t in the first free triangle slot of e.
func (ds *DataStructure) attach(e, t int) {
	if ds.edges[e].Triangles[0] == NoTriangle {
		ds.edges[e].Triangles[0] = t
		return
	}
	ds.edges[e].Triangles[1] = t
}

// detach clears t from the triangle slots of e.
func (ds *DataStructure) detach(e, t int) {
	for i, x := range ds.edges[e].Triangles {
		if x == t {
			ds.edges[e].Triangles[i] = NoTriangle
		}
	}
}
