package delaun_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvmesh/delaun"
	"github.com/katalvlaran/lvmesh/geom"
)

func TestCancel_BeforeInsert(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tr := delaun.New(delaun.WithContext(ctx))
	require.NoError(t, tr.Seed(geom.BoxOf(unitSquare()...)))
	verts, err := tr.InsertPoints(unitSquare())
	assert.ErrorIs(t, err, delaun.ErrCancelled)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []int{-1, -1, -1, -1}, verts)

	part := tr.PartialResult()
	assert.True(t, part.Cancelled)
	assert.Empty(t, part.Triangles)
}

func TestCancel_MidInsert(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pts := randomPoints(100)
	inserted := 0
	tr := delaun.New(
		delaun.WithContext(ctx),
		delaun.WithOnInsert(func(int, geom.Point) {
			inserted++
			if inserted == 10 {
				cancel()
			}
		}),
	)
	require.NoError(t, tr.Seed(geom.BoxOf(pts...)))
	verts, err := tr.InsertPoints(pts)
	require.ErrorIs(t, err, delaun.ErrCancelled)

	// Cancellation lands between insertions: exactly ten points made it.
	done := 0
	for _, v := range verts {
		if v >= 0 {
			done++
		}
	}
	assert.Equal(t, 10, done)
	assert.Empty(t, tr.Violations(), "the partial mesh is consistent")

	part := tr.PartialResult()
	assert.True(t, part.Cancelled)
	assert.NotEmpty(t, part.Triangles)

	// Constraints and Finalize honour the same context.
	assert.ErrorIs(t, tr.InsertConstraints([][2]int{{verts[0], verts[1]}}), delaun.ErrCancelled)
	_, err = tr.Finalize()
	assert.ErrorIs(t, err, delaun.ErrCancelled)
}
