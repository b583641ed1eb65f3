package geom

import "math"

// Orientation is the side of a directed segment a point lies on.
type Orientation int

const (
	// OnLine: the point is within tolerance of the supporting line.
	OnLine Orientation = iota
	// Left: counter-clockwise of a→b.
	Left
	// Right: clockwise of a→b.
	Right
)

func (o Orientation) String() string {
	switch o {
	case Left:
		return "Left"
	case Right:
		return "Right"
	default:
		return "OnLine"
	}
}

// CircleState is the position of a point relative to a circumcircle.
type CircleState int

const (
	// Outside: farther than tol from the circle, outside it.
	Outside CircleState = iota
	// Inside: farther than tol from the circle, inside it.
	Inside
	// OnCircle: within tol of the circle (cocircular).
	OnCircle
	// Indeterminate: the triangle is too thin to have a reliable circumcircle.
	Indeterminate
)

func (s CircleState) String() string {
	switch s {
	case Inside:
		return "Inside"
	case OnCircle:
		return "OnCircle"
	case Indeterminate:
		return "Indeterminate"
	default:
		return "Outside"
	}
}

// Classify returns the orientation of p relative to the directed segment a→b.
// The cross product (b-a)×(p-a) within tol·|b-a| of zero classifies as OnLine,
// i.e. p is OnLine when its distance to the supporting line is at most tol.
// A zero-length segment classifies every point as OnLine.
//
// Errors: ErrDegeneratePredicate on NaN/Inf input.
func Classify(p, a, b Point, tol float64) (Orientation, error) {
	ab := b.Sub(a)
	cross := ab.Cross(p.Sub(a))
	if math.IsNaN(cross) || math.IsInf(cross, 0) {
		return OnLine, ErrDegeneratePredicate
	}
	if math.Abs(cross) <= tol*ab.Len() {
		return OnLine, nil
	}
	if cross > 0 {
		return Left, nil
	}
	return Right, nil
}

// SignedArea returns the signed area of triangle (a,b,c): positive when CCW.
func SignedArea(a, b, c Point) float64 {
	return 0.5 * b.Sub(a).Cross(c.Sub(a))
}

// Degenerate reports whether triangle (a,b,c) is too thin to be kept:
// its smallest altitude (twice the area over the longest side) is at most tol.
// Triangles with a repeated vertex are always degenerate.
func Degenerate(a, b, c Point, tol float64) bool {
	longest := math.Max(a.Dist(b), math.Max(b.Dist(c), c.Dist(a)))
	if longest <= tol {
		return true
	}
	cross := b.Sub(a).Cross(c.Sub(a))
	if math.IsNaN(cross) {
		return true
	}
	return math.Abs(cross) <= tol*longest
}

// Circumcircle returns the centre and radius of the circle through a, b, c.
// ok is false for collinear input.
func Circumcircle(a, b, c Point) (center Point, radius float64, ok bool) {
	bx, by := b.X-a.X, b.Y-a.Y
	cx, cy := c.X-a.X, c.Y-a.Y
	d := 2 * (bx*cy - by*cx)
	if d == 0 {
		return Point{}, 0, false
	}
	b2 := bx*bx + by*by
	c2 := cx*cx + cy*cy
	ux := (cy*b2 - by*c2) / d
	uy := (bx*c2 - cx*b2) / d
	center = Point{a.X + ux, a.Y + uy}
	radius = math.Hypot(ux, uy)
	if math.IsNaN(radius) || math.IsInf(radius, 0) {
		return Point{}, 0, false
	}
	return center, radius, true
}

// InCircle classifies p against the circumcircle of triangle (a,b,c).
// The vertex order of the triangle does not matter.
//
// The test is the lifted 3x3 determinant with rows (x-px, y-py, (x-px)²+(y-py)²)
// for a, b, c, sign-corrected by the orientation of (a,b,c). Its magnitude is
// |r²-d²|·|orient| for the circumradius r and the distance d from p to the
// centre, and |orient|·2r equals |ab|·|bc|·|ca|. Comparing against
// tol·|ab|·|bc|·|ca| therefore treats p as OnCircle when it lies within
// about tol of the circle, without dividing by a near-zero orientation.
// Triangles that are Degenerate within tol yield Indeterminate; callers must
// not flip on Indeterminate.
//
// Errors: ErrDegeneratePredicate on NaN/Inf input or overflow.
func InCircle(p, a, b, c Point, tol float64) (CircleState, error) {
	if !p.Finite() || !a.Finite() || !b.Finite() || !c.Finite() {
		return Indeterminate, ErrDegeneratePredicate
	}
	if Degenerate(a, b, c, tol) {
		return Indeterminate, nil
	}

	adx, ady := a.X-p.X, a.Y-p.Y
	bdx, bdy := b.X-p.X, b.Y-p.Y
	cdx, cdy := c.X-p.X, c.Y-p.Y
	det := (adx*adx+ady*ady)*(bdx*cdy-cdx*bdy) +
		(bdx*bdx+bdy*bdy)*(cdx*ady-adx*cdy) +
		(cdx*cdx+cdy*cdy)*(adx*bdy-bdx*ady)
	if b.Sub(a).Cross(c.Sub(a)) < 0 {
		det = -det
	}
	band := tol * a.Dist(b) * b.Dist(c) * c.Dist(a)
	if math.IsNaN(det) || math.IsInf(det, 0) || math.IsInf(band, 0) {
		return Indeterminate, ErrDegeneratePredicate
	}

	switch {
	case det > band:
		return Inside, nil
	case det < -band:
		return Outside, nil
	default:
		return OnCircle, nil
	}
}
