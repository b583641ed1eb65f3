package mesher_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvmesh/geom"
	"github.com/katalvlaran/lvmesh/mesher"
)

// TestMeshAll_Order runs faces of different sizes on several workers and
// checks every result lands at its input position.
func TestMeshAll_Order(t *testing.T) {
	faces := make([]mesher.Face, 0, 12)
	for i := 1; i <= 12; i++ {
		faces = append(faces, squareFace(float64(i)))
	}
	faces = append(faces, mesher.Face{}) // a failing face in the middle of the batch

	out := mesher.MeshAll(context.Background(), faces, 4, mesher.WithSpacing(0.75))
	require.Len(t, out, len(faces))
	for i, fr := range out[:12] {
		assert.Equal(t, i, fr.Index)
		require.NoError(t, fr.Err, "face %d", i)
		side := float64(i + 1)
		assert.InDelta(t, side*side, fr.Result.Area(), 1e-9)
	}
	assert.ErrorIs(t, out[12].Err, mesher.ErrEmptyFace)
}

func TestMeshAll_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	out := mesher.MeshAll(ctx, []mesher.Face{squareFace(1), squareFace(2)}, 0)
	for _, fr := range out {
		assert.ErrorIs(t, fr.Err, mesher.ErrCancelled)
	}
}

func TestMeshAll_Empty(t *testing.T) {
	assert.Empty(t, mesher.MeshAll(context.Background(), nil, 3))
}

func BenchmarkMeshAll(b *testing.B) {
	faces := make([]mesher.Face, 16)
	for i := range faces {
		faces[i] = mesher.Face{
			Points: []geom.Point{geom.Pt(0, 0), geom.Pt(50, 0), geom.Pt(50, 50), geom.Pt(0, 50)},
			Loops:  []mesher.Loop{{Indices: []int{0, 1, 2, 3}}},
		}
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = mesher.MeshAll(context.Background(), faces, 0, mesher.WithSpacing(1))
	}
}
