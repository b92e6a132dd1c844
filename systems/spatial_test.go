package systems

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/swarmsketch/vmath"
)

func randomPositions(rng *rand.Rand, n int, w, h float64) []vmath.Vec2 {
	ps := make([]vmath.Vec2, n)
	for i := range ps {
		ps[i] = vmath.V(rng.Float64()*w, rng.Float64()*h)
	}
	return ps
}

func sortedIndices(ns []Neighbor) []int {
	out := make([]int, len(ns))
	for i, n := range ns {
		out[i] = n.Index
	}
	sort.Ints(out)
	return out
}

func TestNeighborsWithinExcludesSelf(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	positions := randomPositions(rng, 200, 300, 300)
	// an isolated coincident pair: each must see the other but never itself
	positions[10] = vmath.V(1000, 1000)
	positions[11] = vmath.V(1000, 1000)

	var buf []Neighbor
	for self := range positions {
		buf = NeighborsWithin(buf[:0], self, positions, 60)
		for _, n := range buf {
			require.NotEqual(t, self, n.Index, "query for %d returned itself", self)
			assert.Less(t, n.Dist, 60.0)
		}
	}

	buf = NeighborsWithin(buf[:0], 10, positions, 1)
	require.Len(t, buf, 1)
	assert.Equal(t, 11, buf[0].Index)
	assert.Equal(t, 0.0, buf[0].Dist)
}

func TestNeighborsWithinStrictRadius(t *testing.T) {
	positions := []vmath.Vec2{
		vmath.V(0, 0),
		vmath.V(50, 0),   // exactly on the radius: excluded
		vmath.V(49.9, 0), // inside
		vmath.V(0, 80),   // outside
	}
	got := NeighborsWithin(nil, 0, positions, 50)
	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].Index)
	assert.InDelta(t, 49.9, got[0].Dist, 1e-12)
}

func TestNeighborsWithinEmpty(t *testing.T) {
	positions := []vmath.Vec2{vmath.V(10, 10), vmath.V(500, 500)}
	assert.Empty(t, NeighborsWithin(nil, 0, positions, 50))

	single := []vmath.Vec2{vmath.V(1, 1)}
	assert.Empty(t, NeighborsWithin(nil, 0, single, 1000))
}

func TestSpatialGridMatchesScan(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	const w, h = 800.0, 600.0
	positions := randomPositions(rng, 500, w, h)
	// agents on the far edges exercise the clamped cells
	positions[0] = vmath.V(0, 0)
	positions[1] = vmath.V(w-1e-9, h-1e-9)

	for _, cellSize := range []float64{24, 50, 64, 1000} {
		grid := NewSpatialGrid(w, h, cellSize)
		grid.Rebuild(positions)
		scan := Scan{Positions: positions}

		for _, radius := range []float64{24, 50, 130} {
			var a, b []Neighbor
			for self := range positions {
				a = scan.NeighborsWithin(a[:0], self, radius)
				b = grid.NeighborsWithin(b[:0], self, radius)
				require.Equal(t, sortedIndices(a), sortedIndices(b),
					"cell=%v radius=%v self=%d", cellSize, radius, self)
			}
		}
	}
}

func TestSpatialGridRebuild(t *testing.T) {
	grid := NewSpatialGrid(100, 100, 10)
	grid.Rebuild([]vmath.Vec2{vmath.V(5, 5), vmath.V(8, 8)})
	assert.Len(t, grid.NeighborsWithin(nil, 0, 10), 1)

	grid.Rebuild([]vmath.Vec2{vmath.V(5, 5), vmath.V(95, 95)})
	assert.Empty(t, grid.NeighborsWithin(nil, 0, 10))
}

func TestWrap(t *testing.T) {
	tests := []struct {
		v, size, want float64
	}{
		{800.001, 800, 0.001},
		{800, 800, 0},
		{-0.001, 800, 799.999},
		{0, 800, 0},
		{399.5, 800, 399.5},
		{-1e-18, 800, 0},
		{1601, 800, 1},
	}
	for _, tt := range tests {
		got := Wrap(tt.v, tt.size)
		assert.InDelta(t, tt.want, got, 1e-9, "Wrap(%v, %v)", tt.v, tt.size)
		assert.GreaterOrEqual(t, got, 0.0)
		assert.Less(t, got, tt.size)
	}
}

func TestNormalizeHeading(t *testing.T) {
	for _, h := range []float64{-10, -twoPi, -0.1, 0, 1, twoPi, 3 * twoPi, 100} {
		got := NormalizeHeading(h)
		assert.GreaterOrEqual(t, got, 0.0)
		assert.Less(t, got, twoPi)
		assert.True(t, vmath.FromAngle(h).ApproxEqual(vmath.FromAngle(got), 1e-9))
	}
}
