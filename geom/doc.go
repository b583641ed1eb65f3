// Package geom provides the planar primitives and tolerance-aware predicates
// used by the lvmesh triangulation packages.
//
// What:
//
//   - Point: a 2D double-precision coordinate with vector arithmetic.
//   - Box: an axis-aligned bounding box used for seeding and default tolerances.
//   - Classify: orientation of a point relative to a directed segment.
//   - InCircle: position of a point relative to a triangle's circumcircle.
//   - Segment and polygon helpers: intersections, distances, areas, even-odd containment.
//
// Tolerance:
//
// A single length tolerance governs every predicate. Classify reports OnLine
// when the point is within tol of the supporting line; InCircle reports OnCircle
// when the point is within tol of the circle. DefaultTolerance derives a value
// from the bounding box diagonal:
//
//	tol = max(diag · 1e-7, 1e-12)
//
// Degenerate input:
//
// Near-collinear triangles have no stable circumcircle. InCircle reports
// Indeterminate for them, and callers treat that exactly like OnCircle (no flip).
// NaN or infinite coordinates make both predicates return ErrDegeneratePredicate.
//
// Complexity: every predicate is O(1); polygon helpers are O(n).
package geom
