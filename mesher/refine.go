package mesher

import (
	"math"

	"github.com/samber/lo"

	"github.com/katalvlaran/lvmesh/geom"
)

// maxRefinePoints caps the lattice so a tiny spacing cannot exhaust memory.
const maxRefinePoints = 1 << 20

// refine returns the extra points for spacing h:
//   - interior points splitting every boundary segment longer than h into
//     equal pieces no longer than h;
//   - lattice points with step h inside the region (even-odd over all
//     loops) and at least h/2 away from every boundary segment.
func refine(face Face, loops [][]int, segs *segmentIndex, box geom.Box, h float64) []geom.Point {
	var out []geom.Point

	// Boundary subdivision
	for _, s := range segs.segs {
		n := int(math.Ceil(s.a.Dist(s.b) / h))
		for k := 1; k < n; k++ {
			out = append(out, s.a.Lerp(s.b, float64(k)/float64(n)))
		}
	}

	// Lattice, anchored at the box corner and offset by half a step
	polys := lo.Map(loops, func(loop []int, _ int) []geom.Point {
		return lo.Map(loop, func(i, _ int) geom.Point { return face.Points[i] })
	})
	nx := int(box.Width()/h) + 1
	ny := int(box.Height()/h) + 1
	if nx*ny > maxRefinePoints {
		return out
	}
	for iy := 0; iy < ny; iy++ {
		for ix := 0; ix < nx; ix++ {
			p := geom.Pt(box.Min.X+(float64(ix)+0.5)*h, box.Min.Y+(float64(iy)+0.5)*h)
			if !inRegion(p, polys) {
				continue
			}
			if segs.clearance(p, h/2) < h/2 {
				continue
			}
			out = append(out, p)
		}
	}
	return out
}

// inRegion applies the even-odd rule over every loop.
func inRegion(p geom.Point, polys [][]geom.Point) bool {
	return lo.CountBy(polys, func(poly []geom.Point) bool { return geom.PointInPolygon(p, poly) })%2 == 1
}
