package geom

import "math"

// DistanceToSegment returns the distance from p to the closed segment [a,b].
func DistanceToSegment(p, a, b Point) float64 {
	ab := b.Sub(a)
	l2 := ab.Len2()
	if l2 == 0 {
		return p.Dist(a)
	}
	t := p.Sub(a).Dot(ab) / l2
	t = math.Max(0, math.Min(1, t))
	return p.Dist(a.Lerp(b, t))
}

// SegmentIntersection returns the intersection point of the lines through
// [a,b] and [c,d] when it lies on both closed segments. Parallel segments
// report ok == false.
func SegmentIntersection(a, b, c, d Point) (x Point, ok bool) {
	r := b.Sub(a)
	s := d.Sub(c)
	den := r.Cross(s)
	if den == 0 || math.IsNaN(den) {
		return Point{}, false
	}
	qp := c.Sub(a)
	t := qp.Cross(s) / den
	u := qp.Cross(r) / den
	if t < 0 || t > 1 || u < 0 || u > 1 {
		return Point{}, false
	}
	return a.Lerp(b, t), true
}

// SegmentsCross reports whether the interiors of [a,b] and [c,d] cross each
// other: every endpoint is strictly (beyond tol) on opposite sides of the
// other segment's supporting line.
func SegmentsCross(a, b, c, d Point, tol float64) bool {
	o1, e1 := Classify(c, a, b, tol)
	o2, e2 := Classify(d, a, b, tol)
	o3, e3 := Classify(a, c, d, tol)
	o4, e4 := Classify(b, c, d, tol)
	if e1 != nil || e2 != nil || e3 != nil || e4 != nil {
		return false
	}
	if o1 == OnLine || o2 == OnLine || o3 == OnLine || o4 == OnLine {
		return false
	}
	return o1 != o2 && o3 != o4
}

// SegmentDistance returns the smallest distance between the closed segments
// [a,b] and [c,d]; it is zero when they cross.
func SegmentDistance(a, b, c, d Point) float64 {
	if SegmentsCross(a, b, c, d, 0) {
		return 0
	}
	return math.Min(
		math.Min(DistanceToSegment(a, c, d), DistanceToSegment(b, c, d)),
		math.Min(DistanceToSegment(c, a, b), DistanceToSegment(d, a, b)),
	)
}

// PolygonArea returns the signed area of the closed polygon: positive when CCW.
func PolygonArea(poly []Point) float64 {
	var sum float64
	for i, p := range poly {
		q := poly[(i+1)%len(poly)]
		sum += p.Cross(q)
	}
	return 0.5 * sum
}

// PointInPolygon reports whether p is inside the closed polygon by the
// even-odd rule. Points exactly on the boundary may go either way.
func PointInPolygon(p Point, poly []Point) bool {
	inside := false
	for i, j := 0, len(poly)-1; i < len(poly); j, i = i, i+1 {
		a, b := poly[i], poly[j]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			x := a.X + (p.Y-a.Y)*(b.X-a.X)/(b.Y-a.Y)
			if p.X < x {
				inside = !inside
			}
		}
	}
	return inside
}

// Centroid returns the centroid of triangle (a,b,c).
func Centroid(a, b, c Point) Point {
	return Point{(a.X + b.X + c.X) / 3, (a.Y + b.Y + c.Y) / 3}
}
