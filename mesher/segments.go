package mesher

import (
	"math"

	"github.com/dhconnelly/rtreego"

	"github.com/katalvlaran/lvmesh/geom"
)

// segment is one boundary segment between point indices i and j.
type segment struct {
	loop, i, j int
	a, b       geom.Point
	rect       rtreego.Rect
}

// Bounds implements rtreego.Spatial.
func (s *segment) Bounds() rtreego.Rect { return s.rect }

// segmentIndex is an R-tree over boundary segments, used for the crossing
// check and for refinement clearance.
type segmentIndex struct {
	tree *rtreego.Rtree
	segs []*segment
}

func newSegmentIndex(face Face, loops [][]int, pad float64) (*segmentIndex, error) {
	idx := &segmentIndex{tree: rtreego.NewTree(2, 4, 16)}
	for l, loop := range loops {
		for k := range loop {
			i, j := loop[k], loop[(k+1)%len(loop)]
			a, b := face.Points[i], face.Points[j]
			r, err := boxRect(geom.BoxOf(a, b), pad)
			if err != nil {
				return nil, err
			}
			s := &segment{loop: l, i: i, j: j, a: a, b: b, rect: r}
			idx.segs = append(idx.segs, s)
			idx.tree.Insert(s)
		}
	}
	return idx, nil
}

// near returns the segments whose padded box meets the square of half-side
// r around p.
func (idx *segmentIndex) near(p geom.Point, r float64) []*segment {
	hits := idx.tree.SearchIntersect(rtreego.Point{p.X, p.Y}.ToRect(r))
	out := make([]*segment, len(hits))
	for k, h := range hits {
		out[k] = h.(*segment)
	}
	return out
}

// clearance returns the distance from p to the nearest segment within r,
// or +Inf when none is that close.
func (idx *segmentIndex) clearance(p geom.Point, r float64) float64 {
	best := math.Inf(1)
	for _, s := range idx.near(p, r) {
		best = math.Min(best, geom.DistanceToSegment(p, s.a, s.b))
	}
	return best
}

// boxRect converts b, padded by pad on every side, to an rtreego.Rect.
func boxRect(b geom.Box, pad float64) (rtreego.Rect, error) {
	pad = math.Max(pad, geom.MinTolerance)
	return rtreego.NewRectFromPoints(
		rtreego.Point{b.Min.X - pad, b.Min.Y - pad},
		rtreego.Point{b.Max.X + pad, b.Max.Y + pad},
	)
}
