package delaun_test

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/katalvlaran/lvmesh/delaun"
	"github.com/katalvlaran/lvmesh/geom"
)

func randomPoints(n int) []geom.Point {
	rng := rand.New(rand.NewSource(42))
	pts := make([]geom.Point, n)
	for i := range pts {
		pts[i] = geom.Pt(rng.Float64()*1000, rng.Float64()*1000)
	}
	return pts
}

// BenchmarkInsertPoints measures unconstrained incremental insertion.
func BenchmarkInsertPoints(b *testing.B) {
	for _, n := range []int{1_000, 10_000} {
		pts := randomPoints(n)
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				tr := delaun.New()
				_ = tr.Seed(geom.BoxOf(pts...))
				_, _ = tr.InsertPoints(pts)
			}
		})
	}
}

// BenchmarkConstrainedSquare measures a dense square with its boundary
// enforced and the outside trimmed.
func BenchmarkConstrainedSquare(b *testing.B) {
	pts := append([]geom.Point{
		geom.Pt(0, 0), geom.Pt(1000, 0), geom.Pt(1000, 1000), geom.Pt(0, 1000),
	}, randomPoints(2_000)...)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tr := delaun.New()
		_ = tr.Seed(geom.BoxOf(pts...))
		v, _ := tr.InsertPoints(pts)
		_ = tr.InsertConstraints(loopPairs(v, []int{0, 1, 2, 3}))
		_, _ = tr.Finalize()
	}
}
