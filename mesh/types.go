// Package mesh defines the Vertex, Edge, and Triangle records of a planar
// triangulation and the DataStructure arena that owns them.
//
// This file declares the record types, the Movability tag, DataStructure,
// its Option type, sentinel errors, and the NewDataStructure constructor.
//
// Errors:
//
//	ErrVertexNotFound     - index does not name a live vertex.
//	ErrEdgeNotFound       - index does not name a live edge.
//	ErrTriangleNotFound   - index does not name a live triangle.
//	ErrDegenerateTriangle - collinear or repeated vertices within tolerance.
//	ErrBrokenLoop         - three edges do not close a loop.
//	ErrEdgeOverloaded     - edge already bounds two triangles.
//	ErrEdgeInUse          - edge still bounds a triangle.
//	ErrLoopEdge           - edge endpoints coincide.
package mesh

import (
	"errors"

	"github.com/dhconnelly/rtreego"

	"github.com/katalvlaran/lvmesh/geom"
)

// Sentinel errors for mesh operations.
var (
	// ErrVertexNotFound indicates an operation referenced a missing or deleted vertex.
	ErrVertexNotFound = errors.New("mesh: vertex not found")

	// ErrEdgeNotFound indicates an operation referenced a missing or deleted edge.
	ErrEdgeNotFound = errors.New("mesh: edge not found")

	// ErrTriangleNotFound indicates an operation referenced a missing or deleted triangle.
	ErrTriangleNotFound = errors.New("mesh: triangle not found")

	// ErrDegenerateTriangle indicates collinear or duplicate triangle vertices.
	ErrDegenerateTriangle = errors.New("mesh: degenerate triangle")

	// ErrBrokenLoop indicates three edges that do not form a closed loop.
	ErrBrokenLoop = errors.New("mesh: edges do not form a closed loop")

	// ErrEdgeOverloaded indicates a third triangle was attached to an edge.
	ErrEdgeOverloaded = errors.New("mesh: edge already bounds two triangles")

	// ErrEdgeInUse indicates removal of an edge that still bounds a triangle.
	ErrEdgeInUse = errors.New("mesh: edge still bounds a triangle")

	// ErrLoopEdge indicates an edge whose two endpoints are the same vertex.
	ErrLoopEdge = errors.New("mesh: edge endpoints coincide")
)

// Movability tags every record. The more restrictive tag wins on merge:
// Free < Fixed. Deleted records keep their index but take no part in queries.
type Movability uint8

const (
	// Free records may be flipped or moved by the triangulator.
	Free Movability = iota
	// Fixed records come from constraints and are never flipped.
	Fixed
	// Deleted records are tombstones; their indices are never reissued.
	Deleted
)

func (m Movability) String() string {
	switch m {
	case Free:
		return "Free"
	case Fixed:
		return "Fixed"
	case Deleted:
		return "Deleted"
	default:
		return "Unknown"
	}
}

// NoTriangle marks an empty slot in Edge.Triangles.
const NoTriangle = -1

// Vertex is a mesh node.
//
// Sources holds caller-supplied back-references (for example indices into an
// input point list); several inputs may collapse into one vertex.
type Vertex struct {
	Point      geom.Point
	Sources    []int
	Movability Movability
}

// Edge joins First and Last. Triangles holds up to two adjacent triangle
// indices, NoTriangle for an empty slot.
type Edge struct {
	First, Last int
	Movability  Movability
	Triangles   [2]int
}

// Other returns the endpoint of e that is not v.
func (e Edge) Other(v int) int {
	if e.First == v {
		return e.Last
	}
	return e.First
}

// Has reports whether v is an endpoint of e.
func (e Edge) Has(v int) bool { return e.First == v || e.Last == v }

// IsConstraint reports whether e is a boundary/constraint edge.
func (e Edge) IsConstraint() bool { return e.Movability == Fixed }

// Triangle stores its nodes in counter-clockwise order; Edges[i] joins
// Nodes[i] and Nodes[(i+1)%3].
type Triangle struct {
	Nodes      [3]int
	Edges      [3]int
	Movability Movability
}

// Opposite returns the node of t that is not an endpoint of edge slot i.
func (t Triangle) Opposite(i int) int { return t.Nodes[(i+2)%3] }

// EdgeSlot returns the slot of edge e in t, or -1.
func (t Triangle) EdgeSlot(e int) int {
	for i, ei := range t.Edges {
		if ei == e {
			return i
		}
	}
	return -1
}

// Option configures a DataStructure before use.
type Option func(ds *DataStructure)

// WithTolerance sets the tolerance used by AddTriangle's degeneracy check
// and as the default AddVertex merge radius. Non-positive values are ignored.
func WithTolerance(tol float64) Option {
	return func(ds *DataStructure) {
		if tol > 0 {
			ds.tol = tol
		}
	}
}

// WithCapacity preallocates room for n vertices (and the matching edges and
// triangles of a planar triangulation).
func WithCapacity(n int) Option {
	return func(ds *DataStructure) {
		if n > 0 {
			ds.vertices = make([]Vertex, 0, n)
			ds.links = make([][]int, 0, n)
			ds.edges = make([]Edge, 0, 3*n)
			ds.triangles = make([]Triangle, 0, 2*n)
		}
	}
}

// edgeKey is the unordered vertex pair of an edge, smaller index first.
type edgeKey [2]int

func keyOf(a, b int) edgeKey {
	if a > b {
		a, b = b, a
	}
	return edgeKey{a, b}
}

// DataStructure is the arena of a planar triangulation: vertices, edges, and
// triangles addressed by stable integer indices.
//
// It is not safe for concurrent mutation. Independent instances share nothing
// and may be used from different goroutines.
type DataStructure struct {
	tol float64

	// Storage; indices are positions and are never reused.
	vertices  []Vertex
	edges     []Edge
	triangles []Triangle

	// links[v] lists the live edges incident to vertex v.
	links [][]int

	// pairs maps an unordered vertex pair to its live edge.
	pairs map[edgeKey]int

	// index is the R-tree over vertex points.
	index *rtreego.Rtree

	liveEdges     int
	liveTriangles int
}

// DefaultTolerance is used when no WithTolerance option is given.
const DefaultTolerance = geom.MinTolerance * 1e3

// NewDataStructure creates an empty DataStructure.
// Complexity: O(1).
func NewDataStructure(opts ...Option) *DataStructure {
	ds := &DataStructure{
		tol:   DefaultTolerance,
		pairs: make(map[edgeKey]int),
		index: rtreego.NewTree(2, indexMinChildren, indexMaxChildren),
	}
	for _, opt := range opts {
		opt(ds)
	}

	return ds
}

// Tolerance returns the configured tolerance.
func (ds *DataStructure) Tolerance() float64 { return ds.tol }
