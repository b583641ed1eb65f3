// Package mesher drives a delaun.Triangulator over faces described as
// boundary loops: validation, point ordering, optional refinement, and a
// bounded worker pool for meshing independent faces in parallel.
package mesher

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/lvmesh/delaun"
	"github.com/katalvlaran/lvmesh/geom"
)

// Sentinel errors for face meshing.
var (
	// ErrEmptyFace is returned for a face without points or loops.
	ErrEmptyFace = errors.New("mesher: face has no points or loops")

	// ErrLoopIndex is returned when a loop references a missing point.
	ErrLoopIndex = errors.New("mesher: loop index out of range")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("mesher: invalid option supplied")

	// Re-exported triangulator errors.
	ErrInvalidInputGeometry = delaun.ErrInvalidInputGeometry
	ErrDegenerateTriangle   = delaun.ErrDegenerateTriangle
	ErrCancelled            = delaun.ErrCancelled
)

// Loop is a closed boundary polyline given as indices into Face.Points.
// The closing segment from the last index back to the first is implicit.
//
// Deflection is the chordal tolerance the caller used to sample the loop.
// It is carried for the caller's bookkeeping and must be non-negative.
type Loop struct {
	Indices    []int
	Deflection float64
}

// Face is one planar region: boundary loops over a point set plus optional
// interior points. Region membership is even-odd over all loops, so the
// first loop is normally the outer boundary and the rest are holes.
type Face struct {
	Points   []geom.Point
	Loops    []Loop
	Interior []geom.Point
}

// Option configures Mesh and MeshAll via functional arguments.
type Option func(*Options)

// Options holds meshing parameters.
type Options struct {
	// Ctx is polled between insertions and between constraints.
	Ctx context.Context

	// Tolerance; zero derives it from the face bounding box.
	Tolerance float64

	// Spacing, when > 0, subdivides boundary segments longer than Spacing
	// and adds lattice points with that step inside the region.
	Spacing float64

	// Triangulator holds extra options passed to delaun.New (hooks, scale).
	Triangulator []delaun.Option

	// internal error recorded during option parsing
	err error
}

// DefaultOptions returns Options with a background context, derived
// tolerance and no refinement.
func DefaultOptions() Options {
	return Options{Ctx: context.Background()}
}

// WithContext sets a custom context for cancellation.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithTolerance fixes the working tolerance (0 = derive from the box).
func WithTolerance(tol float64) Option {
	return func(o *Options) {
		if tol < 0 || tol != tol {
			o.err = fmt.Errorf("%w: tolerance must be non-negative (%g)", ErrOptionViolation, tol)
			return
		}
		o.Tolerance = tol
	}
}

// WithSpacing enables refinement with target edge length h (0 disables).
func WithSpacing(h float64) Option {
	return func(o *Options) {
		if h < 0 || h != h {
			o.err = fmt.Errorf("%w: spacing must be non-negative (%g)", ErrOptionViolation, h)
			return
		}
		o.Spacing = h
	}
}

// WithTriangulator appends options for the underlying delaun.Triangulator.
func WithTriangulator(opts ...delaun.Option) Option {
	return func(o *Options) {
		o.Triangulator = append(o.Triangulator, opts...)
	}
}

// FaceResult is the outcome of one face in MeshAll.
type FaceResult struct {
	Index  int
	Result *delaun.Result
	Err    error
}
