// Package mesh is the index-addressed storage behind the lvmesh triangulator.
//
// A DataStructure owns three arenas (vertices, edges, triangles). Every record
// is addressed by its position, and positions are never reused: removal only
// marks a record Deleted, so indices held by callers stay valid for the life
// of the structure.
//
// Adjacency:
//
//   - links[v] lists the live edges incident to v (EdgesOf, Degree).
//   - Edge.Triangles holds the 0, 1, or 2 triangles bounded by an edge (TrianglesOf).
//   - Triangle.Edges[i] joins Nodes[i] and Nodes[(i+1)%3]; nodes are CCW.
//   - An unordered-pair map gives O(1) FindEdge and edge dedup.
//
// Spatial index:
//
// Vertices are kept in an R-tree (github.com/dhconnelly/rtreego). AddVertex
// uses it to merge points closer than the tolerance into the first-inserted
// vertex; VerticesInCircle and NearestVertex expose it for circle and
// proximity queries.
//
// Movability:
//
//	Free    - may be flipped by the triangulator
//	Fixed   - constraint or boundary record; never flipped
//	Deleted - tombstone
//
// When AddEdge meets an existing pair with a different tag, the more
// restrictive tag wins.
//
// Flip support:
//
// RemoveTriangle and SubstituteEdge are the two primitives of an edge flip:
// remove both triangles, substitute the shared diagonal in place (keeping its
// index), and add the two new triangles.
//
// Concurrency: a DataStructure is not safe for concurrent mutation.
package mesh
