package delaun_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/lvmesh/delaun"
	"github.com/katalvlaran/lvmesh/geom"
	"github.com/katalvlaran/lvmesh/mesh"
)

// ScenarioSuite covers the fixed boundary scenarios end to end.
type ScenarioSuite struct {
	suite.Suite
}

func TestScenarioSuite(t *testing.T) {
	suite.Run(t, new(ScenarioSuite))
}

func (s *ScenarioSuite) TestUnitSquare() {
	tr, res := build(s.T(), unitSquare(), [][]int{{0, 1, 2, 3}})

	s.Require().Len(res.Triangles, 2)
	s.InDelta(1.0, res.Area(), 1e-12)
	s.Len(res.Constraints, 4)
	s.Equal([][2]int{{3, 4}, {4, 5}, {5, 6}, {6, 3}}, res.Segments)
	s.Equal(delaun.Finalized, tr.State())

	// Both triangles share exactly one diagonal.
	shared := 0
	for _, a := range res.Triangles[0] {
		for _, b := range res.Triangles[1] {
			if a == b {
				shared++
			}
		}
	}
	s.Equal(2, shared)
	for i := range res.Triangles {
		s.Greater(res.TriangleArea(i), 0.0, "CCW triangle %d", i)
	}
}

func (s *ScenarioSuite) TestHole() {
	pts, loops := ringWithHole()
	_, res := build(s.T(), pts, loops)

	s.InDelta(96.0, res.Area(), 1e-9)
	for i := range res.Triangles {
		c := res.Centroid(i)
		inHole := c.X > 4 && c.X < 6 && c.Y > 4 && c.Y < 6
		s.False(inHole, "centroid %v inside the hole", c)
	}
	s.Len(res.Constraints, 8)
}

func (s *ScenarioSuite) TestHoleWithInteriorPoints() {
	pts, loops := ringWithHole()
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 200; i++ {
		p := geom.Pt(rng.Float64()*10, rng.Float64()*10)
		if p.X > 3.9 && p.X < 6.1 && p.Y > 3.9 && p.Y < 6.1 {
			continue
		}
		pts = append(pts, p)
	}
	tr, res := build(s.T(), pts, loops)

	s.InDelta(96.0, res.Area(), 1e-9)
	s.Empty(tr.Violations())
}

func (s *ScenarioSuite) TestCocircularStable() {
	run := func() (*delaun.Triangulator, *delaun.Result) {
		tr := delaun.New()
		s.Require().NoError(tr.Seed(geom.BoxOf(unitSquare()...)))
		_, err := tr.InsertPoints(unitSquare())
		s.Require().NoError(err)
		for i := 0; i < 3; i++ {
			flips, err := tr.LegalizeAll()
			s.Require().NoError(err)
			s.Zero(flips, "pass %d", i)
		}
		res, err := tr.Finalize()
		s.Require().NoError(err)
		return tr, res
	}
	_, a := run()
	_, b := run()
	s.Require().Len(a.Triangles, 2)
	s.Equal(a.Triangles, b.Triangles, "diagonal choice is deterministic")
	s.InDelta(1.0, a.Area(), 1e-12)
}

func (s *ScenarioSuite) TestSteinerVertex() {
	// The Delaunay diagonal is (2,3); the constraint 0→1 must cross it.
	pts := []geom.Point{geom.Pt(0, 0), geom.Pt(10, 0), geom.Pt(5, 1), geom.Pt(5, -1)}
	tr := delaun.New()
	s.Require().NoError(tr.Seed(geom.BoxOf(pts...)))
	verts, err := tr.InsertPoints(pts)
	s.Require().NoError(err)
	_, ok := tr.Structure().FindEdge(verts[2], verts[3])
	s.Require().True(ok)

	s.Require().NoError(tr.InsertConstraint(verts[0], verts[1]))
	s.Equal(1, tr.Stats().Steiner)

	res, err := tr.Finalize()
	s.Require().NoError(err)
	s.Len(res.Constraints, 2)
	for _, c := range res.Constraints {
		s.True(onSegment(res.Point(c[0]), pts[0], pts[1], res.Tolerance))
		s.True(onSegment(res.Point(c[1]), pts[0], pts[1], res.Tolerance))
	}
	// A lone segment encloses nothing.
	s.Empty(res.Triangles)
}

func TestInsertPoint_Idempotent(t *testing.T) {
	tr := delaun.New(delaun.WithTolerance(1e-6))
	require.NoError(t, tr.Seed(geom.BoxOf(geom.Pt(0, 0), geom.Pt(1, 1))))

	a, err := tr.InsertPoint(geom.Pt(0.3, 0.4), 7)
	require.NoError(t, err)
	before := tr.Structure().TriangleCount()

	b, err := tr.InsertPoint(geom.Pt(0.3, 0.4), 8)
	require.NoError(t, err)
	c, err := tr.InsertPoint(geom.Pt(0.3+4e-7, 0.4), 9)
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Equal(t, a, c)
	assert.Equal(t, before, tr.Structure().TriangleCount())
	v, _ := tr.Structure().Vertex(a)
	assert.Equal(t, []int{7, 8, 9}, v.Sources)
	assert.Equal(t, 2, tr.Stats().Duplicates)
}

func TestInsertPoint_OnEdge(t *testing.T) {
	tr := delaun.New()
	require.NoError(t, tr.Seed(geom.BoxOf(unitSquare()...)))
	verts, err := tr.InsertPoints(unitSquare())
	require.NoError(t, err)
	ds := tr.Structure()

	// Split the bottom hull edge: the halves must stay and a vertex appear.
	e, ok := ds.FindEdge(verts[0], verts[1])
	require.True(t, ok)
	v, err := tr.InsertPoint(geom.Pt(0.5, 0))
	require.NoError(t, err)
	assert.Equal(t, 1, tr.Stats().EdgeSplits)

	_, ok = ds.FindEdge(verts[0], v)
	assert.True(t, ok)
	_, ok = ds.FindEdge(v, verts[1])
	assert.True(t, ok)
	_, ok = ds.FindEdge(verts[0], verts[1])
	assert.False(t, ok)
	edge, _ := ds.Edge(e)
	assert.True(t, edge.Has(v), "first half keeps the index")
	assert.Empty(t, tr.Violations())
}

func TestDelaunayProperty_Random(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	pts := make([]geom.Point, 500)
	for i := range pts {
		pts[i] = geom.Pt(rng.Float64()*100, rng.Float64()*100)
	}
	tr := delaun.New()
	require.NoError(t, tr.Seed(geom.BoxOf(pts...)))
	verts, err := tr.InsertPoints(pts)
	require.NoError(t, err)
	assert.NotContains(t, verts, -1)
	assert.Empty(t, tr.Violations())

	flips, err := tr.LegalizeAll()
	require.NoError(t, err)
	assert.Zero(t, flips)

	// Manifold: every edge bounds one or two triangles.
	ds := tr.Structure()
	for e := range ds.Edges() {
		n := len(ds.TrianglesOf(e))
		assert.True(t, n == 1 || n == 2, "edge %d bounds %d triangles", e, n)
	}
	// Euler for a triangulated disc with V vertices, 3 of them on the hull.
	assert.Equal(t, 2*(len(pts)+3)-2-3, ds.TriangleCount())
}

func TestConstraint_RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	pts := []geom.Point{geom.Pt(0, 0), geom.Pt(100, 37)}
	for i := 0; i < 400; i++ {
		pts = append(pts, geom.Pt(rng.Float64()*100, rng.Float64()*37))
	}
	tr := delaun.New()
	require.NoError(t, tr.Seed(geom.BoxOf(pts...)))
	verts, err := tr.InsertPoints(pts)
	require.NoError(t, err)
	require.NoError(t, tr.InsertConstraint(verts[0], verts[1]))

	ds := tr.Structure()
	a, b := pts[0], pts[1]
	tol := 10 * tr.Tolerance()
	total := 0.0
	for e := range ds.Edges() {
		edge, _ := ds.Edge(e)
		if !edge.IsConstraint() {
			continue
		}
		pa, pb := ds.Point(edge.First), ds.Point(edge.Last)
		assert.True(t, onSegment(pa, a, b, tol) && onSegment(pb, a, b, tol), "edge %d off the segment", e)
		total += pa.Dist(pb)
	}
	assert.InDelta(t, a.Dist(b), total, tol, "chain covers the segment exactly once")

	// Non-constraint edges stay locally Delaunay.
	assert.Empty(t, tr.Violations())
}

func TestConstraint_ReusesVertexOnSegment(t *testing.T) {
	pts := []geom.Point{geom.Pt(0, 0), geom.Pt(1, 0), geom.Pt(2, 0), geom.Pt(1, 2), geom.Pt(1, -2)}
	tr := delaun.New()
	require.NoError(t, tr.Seed(geom.BoxOf(pts...)))
	verts, err := tr.InsertPoints(pts)
	require.NoError(t, err)

	require.NoError(t, tr.InsertConstraint(verts[0], verts[2]))
	assert.Zero(t, tr.Stats().Steiner)

	ds := tr.Structure()
	for _, pr := range [][2]int{{0, 1}, {1, 2}} {
		e, ok := ds.FindEdge(verts[pr[0]], verts[pr[1]])
		require.True(t, ok)
		edge, _ := ds.Edge(e)
		assert.Equal(t, mesh.Fixed, edge.Movability)
	}
}

// TestConstraint_StaysOnSegment clusters points within a hair of a long
// constraint, where splitting a pierced edge would leave slivers, and checks
// every Fixed edge lies on the segment and together they cover it.
func TestConstraint_StaysOnSegment(t *testing.T) {
	a, b := geom.Pt(-1, 1e-5), geom.Pt(11, -2e-5)
	for _, spread := range []float64{5e-5, 1e-3} {
		for seed := int64(0); seed < 300; seed++ {
			rng := rand.New(rand.NewSource(seed))
			pts := []geom.Point{a, b}
			for i := 0; i < 60; i++ {
				x := -1 + 12*rng.Float64()
				y := 2*rng.Float64() - 1
				if i%3 == 0 {
					y = a.Y + (b.Y-a.Y)*(x+1)/12 + spread*(2*rng.Float64()-1)
				}
				pts = append(pts, geom.Pt(x, y))
			}

			tr := delaun.New()
			require.NoError(t, tr.Seed(geom.BoxOf(pts...)))
			verts, err := tr.InsertPoints(pts)
			require.NoError(t, err)
			err = tr.InsertConstraint(verts[0], verts[1])
			if err != nil {
				require.ErrorIs(t, err, delaun.ErrDegeneratePredicate, "spread %g seed %d", spread, seed)
				assert.Positive(t, tr.Stats().Skipped)
			}

			tol := tr.Tolerance()
			ds := tr.Structure()
			covered := 0.0
			for e := range ds.Edges() {
				edge, _ := ds.Edge(e)
				if !edge.IsConstraint() {
					continue
				}
				for _, v := range [2]int{edge.First, edge.Last} {
					require.LessOrEqual(t, geom.DistanceToSegment(ds.Point(v), a, b), tol*(1+1e-6),
						"spread %g seed %d: vertex %d off the segment", spread, seed, v)
				}
				covered += ds.Point(edge.First).Dist(ds.Point(edge.Last))
			}
			if err == nil {
				assert.InDelta(t, a.Dist(b), covered, 1e-6, "spread %g seed %d", spread, seed)
			}
		}
	}
}

func TestConstraint_Crossing(t *testing.T) {
	tr := delaun.New()
	require.NoError(t, tr.Seed(geom.BoxOf(unitSquare()...)))
	verts, err := tr.InsertPoints(unitSquare())
	require.NoError(t, err)

	// Fix whichever diagonal exists, then ask for the other one.
	first, second := [2]int{verts[0], verts[2]}, [2]int{verts[1], verts[3]}
	if _, ok := tr.Structure().FindEdge(first[0], first[1]); !ok {
		first, second = second, first
	}
	require.NoError(t, tr.InsertConstraint(first[0], first[1]))
	err = tr.InsertConstraint(second[0], second[1])
	assert.ErrorIs(t, err, delaun.ErrInvalidInputGeometry)

	assert.ErrorIs(t, tr.InsertConstraint(verts[0], verts[0]), delaun.ErrInvalidInputGeometry)
	assert.ErrorIs(t, tr.InsertConstraint(verts[0], 999), delaun.ErrInvalidInputGeometry)
}

func TestInsertPoint_Degenerate(t *testing.T) {
	tr := delaun.New(delaun.WithTolerance(1e-3))
	require.NoError(t, tr.Seed(geom.BoxOf(geom.Pt(0, 0), geom.Pt(10, 5))))
	_, err := tr.InsertPoints([]geom.Point{geom.Pt(0, 0), geom.Pt(10, 0), geom.Pt(5, 5)})
	require.NoError(t, err)
	before := tr.Structure().TriangleCount()

	// Within tol of two edge lines but farther than tol from their vertex.
	_, err = tr.InsertPoint(geom.Pt(0.0012, 0.0008))
	assert.ErrorIs(t, err, delaun.ErrDegenerateTriangle)
	assert.Equal(t, before, tr.Structure().TriangleCount())
	assert.Equal(t, 1, tr.Stats().Skipped)

	_, err = tr.InsertPoint(geom.Pt(math.NaN(), 1))
	assert.ErrorIs(t, err, delaun.ErrDegeneratePredicate)
}

func TestCollinearInput_NoZeroAreaTriangles(t *testing.T) {
	pts := []geom.Point{geom.Pt(0, 0), geom.Pt(1, 0), geom.Pt(2, 0)}
	tr := delaun.New()
	require.NoError(t, tr.Seed(geom.BoxOf(pts...)))
	_, err := tr.InsertPoints(pts)
	require.NoError(t, err)
	res, err := tr.Finalize()
	require.NoError(t, err)
	assert.Empty(t, res.Triangles)
}

func TestInsertPoint_OutsideSeed(t *testing.T) {
	tr := delaun.New()
	require.NoError(t, tr.Seed(geom.BoxOf(unitSquare()...)))
	_, err := tr.InsertPoint(geom.Pt(1e6, 1e6))
	assert.ErrorIs(t, err, delaun.ErrInvalidInputGeometry)
}

func TestStateMachine(t *testing.T) {
	tr := delaun.New()
	assert.Equal(t, delaun.Empty, tr.State())
	_, err := tr.InsertPoint(geom.Pt(0, 0))
	assert.ErrorIs(t, err, delaun.ErrBadState)
	_, err = tr.Finalize()
	assert.ErrorIs(t, err, delaun.ErrBadState)

	require.NoError(t, tr.Seed(geom.BoxOf(unitSquare()...)))
	assert.Equal(t, delaun.Seeded, tr.State())
	assert.ErrorIs(t, tr.Seed(geom.BoxOf(unitSquare()...)), delaun.ErrBadState)

	verts, err := tr.InsertPoints(unitSquare())
	require.NoError(t, err)
	assert.Equal(t, delaun.Refining, tr.State())

	require.NoError(t, tr.InsertConstraint(verts[0], verts[1]))
	assert.Equal(t, delaun.Constrained, tr.State())

	_, err = tr.Finalize()
	require.NoError(t, err)
	assert.Equal(t, delaun.Finalized, tr.State())

	_, err = tr.InsertPoint(geom.Pt(0.5, 0.5))
	assert.ErrorIs(t, err, delaun.ErrBadState)
	assert.ErrorIs(t, tr.InsertConstraint(verts[1], verts[2]), delaun.ErrBadState)
	_, err = tr.LegalizeAll()
	assert.ErrorIs(t, err, delaun.ErrBadState)
	_, err = tr.Finalize()
	assert.ErrorIs(t, err, delaun.ErrBadState)
}

func TestOptions_Invalid(t *testing.T) {
	box := geom.BoxOf(unitSquare()...)
	assert.ErrorIs(t, delaun.New(delaun.WithTolerance(-1)).Seed(box), delaun.ErrOptionViolation)
	assert.ErrorIs(t, delaun.New(delaun.WithSuperScale(1)).Seed(box), delaun.ErrOptionViolation)
	assert.ErrorIs(t, delaun.New().Seed(geom.Box{}), delaun.ErrInvalidInputGeometry)
}

func TestHooks(t *testing.T) {
	var inserts, constraints, flips int
	pts, loops := ringWithHole()
	tr, res := build(t, pts, loops,
		delaun.WithOnInsert(func(int, geom.Point) { inserts++ }),
		delaun.WithOnConstraint(func(int, int) { constraints++ }),
		delaun.WithOnFlip(func(int) { flips++ }),
	)
	assert.Equal(t, len(pts), inserts)
	assert.Equal(t, 8, constraints)
	assert.Equal(t, tr.Stats().Flips, flips)
	assert.Equal(t, tr.Stats(), res.Stats)
	assert.Positive(t, res.Stats.Removed)
}

func TestResult_Flatten(t *testing.T) {
	_, res := build(t, unitSquare(), [][]int{{0, 1, 2, 3}})
	coords, indices := res.Flatten()
	assert.Len(t, coords, 8)
	assert.Len(t, indices, 6)
	for _, i := range indices {
		assert.Less(t, int(i), 4)
	}
	assert.Equal(t, []int{3, 4, 5, 6}, res.UsedVertices(), "super vertices take 0..2")
}
