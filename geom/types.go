package geom

import (
	"errors"
	"fmt"
	"math"
)

// ErrDegeneratePredicate indicates a predicate could not be evaluated because
// an input coordinate (or an intermediate value) is NaN or infinite.
var ErrDegeneratePredicate = errors.New("geom: degenerate predicate input")

const (
	// RelativeTolerance scales the bounding box diagonal into DefaultTolerance.
	RelativeTolerance = 1e-7

	// MinTolerance is the floor returned by DefaultTolerance.
	MinTolerance = 1e-12
)

// Point is a 2D coordinate. It doubles as a free vector.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Add returns p+q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p-q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Scale returns p·s.
func (p Point) Scale(s float64) Point { return Point{p.X * s, p.Y * s} }

// Dot returns the scalar product of p and q.
func (p Point) Dot(q Point) float64 { return p.X*q.X + p.Y*q.Y }

// Cross returns the z component of p×q.
func (p Point) Cross(q Point) float64 { return p.X*q.Y - p.Y*q.X }

// Len2 returns the squared length of p.
func (p Point) Len2() float64 { return p.X*p.X + p.Y*p.Y }

// Len returns the length of p.
func (p Point) Len() float64 { return math.Hypot(p.X, p.Y) }

// Dist returns the distance between p and q.
func (p Point) Dist(q Point) float64 { return math.Hypot(p.X-q.X, p.Y-q.Y) }

// Lerp returns p + (q-p)·t.
func (p Point) Lerp(q Point, t float64) Point {
	return Point{p.X + (q.X-p.X)*t, p.Y + (q.Y-p.Y)*t}
}

// Equal reports whether p and q are within tol of each other.
func (p Point) Equal(q Point, tol float64) bool {
	return p.Dist(q) <= tol
}

// Finite reports whether both coordinates are finite numbers.
func (p Point) Finite() bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}

func (p Point) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}

// Box is an axis-aligned bounding box. The zero Box is empty.
type Box struct {
	Min, Max Point
	valid    bool
}

// BoxOf returns the bounding box of pts.
func BoxOf(pts ...Point) Box {
	var b Box
	for _, p := range pts {
		b = b.Extend(p)
	}
	return b
}

// Extend returns the smallest box containing b and p.
func (b Box) Extend(p Point) Box {
	if !b.valid {
		return Box{Min: p, Max: p, valid: true}
	}
	b.Min.X = math.Min(b.Min.X, p.X)
	b.Min.Y = math.Min(b.Min.Y, p.Y)
	b.Max.X = math.Max(b.Max.X, p.X)
	b.Max.Y = math.Max(b.Max.Y, p.Y)
	return b
}

// Empty reports whether no point was ever added to b.
func (b Box) Empty() bool { return !b.valid }

// Width returns the X extent.
func (b Box) Width() float64 { return b.Max.X - b.Min.X }

// Height returns the Y extent.
func (b Box) Height() float64 { return b.Max.Y - b.Min.Y }

// Center returns the midpoint of the box.
func (b Box) Center() Point { return b.Min.Lerp(b.Max, 0.5) }

// Diagonal returns the length of the box diagonal.
func (b Box) Diagonal() float64 { return b.Min.Dist(b.Max) }

// Contains reports whether p lies inside b grown by tol.
func (b Box) Contains(p Point, tol float64) bool {
	return b.valid &&
		p.X >= b.Min.X-tol && p.X <= b.Max.X+tol &&
		p.Y >= b.Min.Y-tol && p.Y <= b.Max.Y+tol
}

// DefaultTolerance derives the predicate tolerance from the box diagonal.
func DefaultTolerance(b Box) float64 {
	if b.Empty() {
		return MinTolerance
	}
	return math.Max(b.Diagonal()*RelativeTolerance, MinTolerance)
}
