// Package meshio reads faces for the mesher and writes meshes out.
//
// Input formats:
//
//   - Plain text polygons: one "x y" pair per line, a blank line between
//     polygons. The first polygon is the outer boundary, every later one is a
//     hole. Lines starting with '#' are comments. ReadPolygons parses it and
//     FaceFromPolygons turns the polygons into a mesher.Face.
//
//   - YAML documents holding one or more faces with explicit loops, interior
//     points and optional tolerance/spacing defaults (ReadFacesYAML).
//
// Output: WriteOBJ emits a Wavefront OBJ file with z = 0, one face per
// triangle and one line element per surviving constraint segment.
//
// Parse errors carry the offending line (or face/point position) and wrap
// ErrSyntax, so callers can test them with errors.Is.
package meshio
