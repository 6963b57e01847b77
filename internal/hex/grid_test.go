package hex

import (
	"math"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGridCounts(t *testing.T) {
	cases := map[int]int{0: 0, 1: 1, 2: 7, 3: 19, 4: 37}
	for radius, want := range cases {
		g, err := NewGrid(radius, 10)
		require.NoError(t, err)
		assert.Equal(t, want, g.Count(), "radius %d", radius)
		for _, h := range g.Cells() {
			assert.Less(t, h.DistanceTo(Zero), radius)
		}
	}
}

func TestNewGridRejectsBadInput(t *testing.T) {
	_, err := NewGrid(-1, 10)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = NewGrid(3, 0)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = NewGrid(3, math.Inf(1))
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = NewGrid(3, math.NaN())
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestGridCellAt(t *testing.T) {
	g, err := NewGrid(3, 20)
	require.NoError(t, err)

	target := Axial(1, -1)
	center, ok := g.Center(target)
	require.True(t, ok)

	got, ok := g.CellAt(center.Add(Point{X: 3, Y: -2}))
	require.True(t, ok)
	assert.Equal(t, target, got)

	_, ok = g.CellAt(Point{X: 500, Y: 500})
	assert.False(t, ok)
}

func TestGridWithin(t *testing.T) {
	g, err := NewGrid(4, 10)
	require.NoError(t, err)

	ring := g.Within(Zero, 1, 1)
	assert.Len(t, ring, 6)
	for _, h := range ring {
		assert.True(t, Zero.IsNeighbor(h))
	}

	disc := g.Within(Zero, 0, 2)
	require.Len(t, disc, 19)
	assert.Equal(t, Zero, disc[0])

	// Cells past the edge are clipped.
	edge := g.Within(Axial(3, 0), 0, 1)
	for _, h := range edge {
		assert.True(t, g.Contains(h))
	}
	assert.Len(t, edge, 4)

	assert.Nil(t, g.Within(Zero, 2, 1))
}

func TestIndex(t *testing.T) {
	x := NewIndex[uint64]()
	x.Add(1, Zero)
	x.Add(2, Zero)
	x.Add(2, Zero)
	x.Add(3, Axial(2, 0))
	assert.Equal(t, 3, x.Len())
	assert.True(t, x.Occupied(Zero))

	at := x.At(Zero)
	sort.Slice(at, func(i, j int) bool { return at[i] < at[j] })
	assert.Equal(t, []uint64{1, 2}, at)

	near := x.Within(Zero, 1)
	assert.ElementsMatch(t, []uint64{1, 2}, near)
	far := x.Within(Zero, 2)
	assert.ElementsMatch(t, []uint64{1, 2, 3}, far)

	x.Move(1, Zero, Axial(0, 1))
	assert.ElementsMatch(t, []uint64{2}, x.At(Zero))
	assert.ElementsMatch(t, []uint64{1}, x.At(Axial(0, 1)))

	x.Remove(2, Zero)
	assert.False(t, x.Occupied(Zero))
	assert.Equal(t, 2, x.Len())

	x.Clear()
	assert.Zero(t, x.Len())
	assert.Empty(t, x.Within(Zero, 5))
}
