// Package delaun implements incremental constrained Delaunay triangulation
// over a mesh.DataStructure.
//
// What:
//
//	A Triangulator walks through five states:
//
//	  Empty → Seeded → Refining → Constrained → Finalized
//
//	Seed       - super triangle around the input box.
//	InsertPoint- locate, split 1→3 (or 2→4 on an edge), Lawson legalization.
//	InsertConstraint - walk the segment, split crossed edges at their
//	             intersection, mark the sub-edges Fixed.
//	Finalize   - parity flood from the super triangle; keep odd depth.
//
// Why:
//
//   - Incremental insertion keeps every intermediate mesh valid, so a
//     cancelled run still yields a consistent (partial) triangulation.
//   - Constraint edges are never flipped; holes are carved by parity, so any
//     number of loops is supported without orientation bookkeeping.
//
// Tolerance & tie-breaks:
//
//	One tolerance governs vertex dedup, Classify and InCircle. A flip happens
//	only when the opposite vertex is Inside the circumcircle by more than the
//	tolerance: OnCircle and Indeterminate keep the current diagonal, so four
//	cocircular points keep whichever diagonal the first split produced.
//
// Failure kinds:
//
//	ErrInvalidInputGeometry - aborts the call (crossing constraints, point
//	                          outside the seed, unknown constraint vertex).
//	ErrDegenerateTriangle   - a split would make a sliver; the point is
//	                          skipped and the mesh is unchanged.
//	ErrDegeneratePredicate  - NaN/Inf input, legalization that does not
//	                          settle (the vertex stays), or a constraint
//	                          that flips cannot recover. Counted as skipped.
//	ErrCancelled            - the context is done; polled only between
//	                          insertions and between constraints.
//	ErrBadState             - call not allowed in the current state.
//
// Observability:
//
//	Hooks OnInsert, OnFlip, OnConstraint and OnSkip run synchronously; Stats
//	counts points, duplicates, flips, splits, Steiner vertices and removals.
//
// Complexity:
//
//	Expected O(n^1.5) for n random points (O(√n) walks plus O(1) amortised
//	flips per insertion); memory O(n).
//
// Concurrency:
//
//	A Triangulator is not safe for concurrent use. Run independent faces in
//	independent Triangulators (see package mesher).
package delaun
