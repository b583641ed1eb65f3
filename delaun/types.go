// Package delaun provides tunable options, states, and error definitions
// for the incremental constrained Delaunay triangulator.
package delaun

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/lvmesh/geom"
	"github.com/katalvlaran/lvmesh/mesh"
)

// Sentinel errors for triangulation.
var (
	// ErrInvalidInputGeometry is returned for input the triangulator cannot
	// represent: points outside the seed, crossing constraints, unknown
	// constraint endpoints.
	ErrInvalidInputGeometry = errors.New("delaun: invalid input geometry")

	// ErrCancelled is returned when the context is done. It wraps ctx.Err().
	ErrCancelled = errors.New("delaun: cancelled")

	// ErrBadState is returned when an operation is not allowed in the
	// current State (for example any mutation after Finalize).
	ErrBadState = errors.New("delaun: operation not allowed in current state")

	// ErrOptionViolation is returned by Seed when an invalid Option was supplied.
	ErrOptionViolation = errors.New("delaun: invalid option supplied")

	// ErrDegeneratePredicate is geom.ErrDegeneratePredicate, re-exported.
	ErrDegeneratePredicate = geom.ErrDegeneratePredicate

	// ErrDegenerateTriangle is mesh.ErrDegenerateTriangle, re-exported.
	ErrDegenerateTriangle = mesh.ErrDegenerateTriangle
)

// State is the lifecycle stage of a Triangulator.
type State uint8

const (
	// Empty: constructed, not yet seeded.
	Empty State = iota
	// Seeded: super triangle in place, no input points yet.
	Seeded
	// Refining: input points are being inserted.
	Refining
	// Constrained: at least one constraint has been enforced.
	Constrained
	// Finalized: outside triangles removed; the triangulator is immutable.
	Finalized
)

func (s State) String() string {
	switch s {
	case Empty:
		return "Empty"
	case Seeded:
		return "Seeded"
	case Refining:
		return "Refining"
	case Constrained:
		return "Constrained"
	case Finalized:
		return "Finalized"
	default:
		return "Unknown"
	}
}

// DefaultSuperScale is the super triangle circumradius in units of the
// larger side of the seed box.
const DefaultSuperScale = 100.0

// Option configures a Triangulator via functional arguments.
// Invalid values are recorded and surfaced as ErrOptionViolation by Seed.
type Option func(*Options)

// Options holds parameters and callbacks of a Triangulator.
type Options struct {
	// Ctx is polled between point insertions and between constraints.
	Ctx context.Context

	// Tolerance governs dedup and every predicate. Zero means derive it from
	// the seed box with geom.DefaultTolerance.
	Tolerance float64

	// SuperScale sets the super triangle size (see DefaultSuperScale).
	SuperScale float64

	// OnInsert is called after a new vertex has been inserted and legalized.
	OnInsert func(v int, p geom.Point)

	// OnFlip is called after edge e has been flipped.
	OnFlip func(e int)

	// OnConstraint is called after the constraint a→b has been enforced.
	OnConstraint func(a, b int)

	// OnSkip is called when an insertion or flip is skipped because of a
	// degenerate configuration.
	OnSkip func(p geom.Point, err error)

	// internal error recorded during option parsing
	err error
}

// DefaultOptions returns Options with sane defaults:
//   - context.Background()
//   - tolerance derived from the seed box
//   - super scale DefaultSuperScale
//   - no-op hooks.
func DefaultOptions() Options {
	return Options{
		Ctx:          context.Background(),
		Tolerance:    0,
		SuperScale:   DefaultSuperScale,
		OnInsert:     func(int, geom.Point) {},
		OnFlip:       func(int) {},
		OnConstraint: func(int, int) {},
		OnSkip:       func(geom.Point, error) {},
	}
}

// WithContext sets a custom context for cancellation.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithTolerance fixes the tolerance instead of deriving it from the seed box.
//
//	tol > 0: use tol
//	tol == 0: derive from the box
//	tol < 0 or NaN: ErrOptionViolation
func WithTolerance(tol float64) Option {
	return func(o *Options) {
		if tol < 0 || tol != tol {
			o.err = fmt.Errorf("%w: tolerance must be non-negative (%g)", ErrOptionViolation, tol)
			return
		}
		o.Tolerance = tol
	}
}

// WithSuperScale sets the super triangle scale; it must be at least 2.
func WithSuperScale(scale float64) Option {
	return func(o *Options) {
		if !(scale >= 2) {
			o.err = fmt.Errorf("%w: super scale must be >= 2 (%g)", ErrOptionViolation, scale)
			return
		}
		o.SuperScale = scale
	}
}

// WithOnInsert registers a callback run after each new vertex.
func WithOnInsert(fn func(v int, p geom.Point)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnInsert = fn
		}
	}
}

// WithOnFlip registers a callback run after each edge flip.
func WithOnFlip(fn func(e int)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnFlip = fn
		}
	}
}

// WithOnConstraint registers a callback run after each enforced constraint.
func WithOnConstraint(fn func(a, b int)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnConstraint = fn
		}
	}
}

// WithOnSkip registers a callback run when degenerate work is skipped.
func WithOnSkip(fn func(p geom.Point, err error)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnSkip = fn
		}
	}
}

// Stats counts the work done by a Triangulator.
type Stats struct {
	Points      int // new vertices from InsertPoint
	Duplicates  int // InsertPoint calls merged into an existing vertex
	Skipped     int // degenerate insertions or flips absorbed
	Flips       int // Lawson edge flips
	EdgeSplits  int // insertions that landed on an edge (2→4 splits)
	Steiner     int // intersection vertices created by constraints
	Constraints int // constraints enforced
	Removed     int // triangles discarded by Finalize
}

// Triangulator builds a constrained Delaunay triangulation incrementally.
//
// Lifecycle: New → Seed → InsertPoint* → InsertConstraint* → Finalize.
// A Triangulator is single-threaded; independent instances share nothing.
type Triangulator struct {
	opts  Options
	state State
	tol   float64

	ds    *mesh.DataStructure
	super [3]int

	// lastHit caches the most recent triangle for walk location.
	lastHit int

	// stack holds edges waiting for the local Delaunay check.
	stack []int

	// budget is the legalization pop allowance per live edge.
	budget int

	// constraints records enforced input pairs in call order; see
	// Result.Segments.
	constraints [][2]int

	stats Stats
}

// New creates an Empty Triangulator. Call Seed before inserting.
func New(opts ...Option) *Triangulator {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Triangulator{
		opts:    o,
		state:   Empty,
		super:   [3]int{-1, -1, -1},
		lastHit: mesh.NoTriangle,
		budget:  legalizeBudget,
	}
}

// State returns the current lifecycle stage.
func (tr *Triangulator) State() State { return tr.state }

// Tolerance returns the working tolerance; zero before Seed.
func (tr *Triangulator) Tolerance() float64 { return tr.tol }

// Stats returns a copy of the work counters.
func (tr *Triangulator) Stats() Stats { return tr.stats }

// Structure exposes the underlying mesh for read-only inspection.
// It is nil before Seed. Mutating it directly voids every guarantee.
func (tr *Triangulator) Structure() *mesh.DataStructure { return tr.ds }

// IsSuper reports whether v is one of the three super triangle vertices.
func (tr *Triangulator) IsSuper(v int) bool {
	return v == tr.super[0] || v == tr.super[1] || v == tr.super[2]
}

// touchesSuper reports whether triangle t has a super vertex.
func (tr *Triangulator) touchesSuper(t mesh.Triangle) bool {
	return tr.IsSuper(t.Nodes[0]) || tr.IsSuper(t.Nodes[1]) || tr.IsSuper(t.Nodes[2])
}

// cancelled returns ErrCancelled wrapping ctx.Err() once the context is done.
func (tr *Triangulator) cancelled() error {
	if err := tr.opts.Ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrCancelled, err)
	}
	return nil
}

// mutable rejects calls outside the Seeded..Constrained window.
func (tr *Triangulator) mutable() error {
	switch tr.state {
	case Seeded, Refining, Constrained:
		return nil
	}
	return fmt.Errorf("%w: %s", ErrBadState, tr.state)
}
