// Package lvmesh is a constrained planar Delaunay mesher: give it boundary
// loops and loose points, get back a conforming triangle mesh that respects
// every boundary segment.
//
// 🚀 What is lvmesh?
//
//	A pure-Go, single-threaded-per-face triangulation core with:
//		• Robust predicates: orientation and in-circle with a tolerance band
//		• Incremental Delaunay: walk location, 1→3 and 2→4 splits, Lawson flips
//		• Constraints: segment recovery with Steiner vertices at crossings
//		• Region trimming: holes and concave outlines by constraint parity
//		• Face meshing: validation, refinement, parallel batches
//		• I/O: polygon text, YAML faces, OBJ export, PNG debug rendering
//
// ✨ Why choose lvmesh?
//
//   - Stable indices: a vertex index never changes once issued
//   - Deterministic: same input order, same mesh
//   - Observable: hooks (OnInsert, OnFlip, OnConstraint, OnSkip) and Stats
//   - Cancellable: a context is polled between insertions
//
// Under the hood, everything is organized under these subpackages:
//
//	geom/       points, boxes, tolerance-aware predicates, segment helpers
//	mesh/       vertex/edge/triangle store with adjacency and an R-tree index
//	delaun/     the Triangulator state machine: seed, insert, constrain, finalize
//	mesher/     face validation, refinement and the MeshAll worker pool
//	meshio/     readers for polygon text and YAML faces, OBJ writer
//	render/     PNG rendering with fogleman/gg
//	cmd/lvmesh  command-line front end
//
// Quick start:
//
//	face := mesher.Face{
//		Points: []geom.Point{geom.Pt(0, 0), geom.Pt(10, 0), geom.Pt(10, 10), geom.Pt(0, 10)},
//		Loops:  []mesher.Loop{{Indices: []int{0, 1, 2, 3}}},
//	}
//	res, err := mesher.Mesh(face, mesher.WithSpacing(1))
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(len(res.Triangles), res.Area())
//
// See the examples/ directory for a complete scenario.
package lvmesh
