package linalg

import (
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMultiplyLiteral(t *testing.T) {
	arena := NewArena(0)
	defer arena.Close()

	a, err := arena.FromRows([][]float64{
		{1, 2, 3},
		{4, 5, 6},
	})
	require.NoError(t, err)
	b, err := arena.FromRows([][]float64{
		{7, 8},
		{9, 10},
		{11, 12},
	})
	require.NoError(t, err)

	c, err := Multiply(a, b)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Rows())
	assert.Equal(t, 2, c.Cols())

	rows, err := c.RawRows()
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{58, 64}, {139, 154}}, rows)
}

func TestMultiplyDimensionMismatch(t *testing.T) {
	arena := NewArena(0)
	defer arena.Close()

	a, err := arena.AllocateDense(2, 3, nil)
	require.NoError(t, err)
	b, err := arena.AllocateDense(2, 3, nil)
	require.NoError(t, err)

	_, err = Multiply(a, b)
	assert.ErrorIs(t, err, ErrDimensionMismatch)
	assert.Equal(t, 2, arena.Live())
}

func TestMultiplyAssociative(t *testing.T) {
	arena := NewArena(0)
	defer arena.Close()
	rng := rand.New(rand.NewSource(11))

	a, err := arena.AllocateDense(3, 4, rng.Float64)
	require.NoError(t, err)
	b, err := arena.AllocateDense(4, 2, rng.Float64)
	require.NoError(t, err)
	c, err := arena.AllocateDense(2, 5, rng.Float64)
	require.NoError(t, err)

	ab, err := Multiply(a, b)
	require.NoError(t, err)
	left, err := Multiply(ab, c)
	require.NoError(t, err)

	bc, err := Multiply(b, c)
	require.NoError(t, err)
	right, err := Multiply(a, bc)
	require.NoError(t, err)

	l, err := left.RawRows()
	require.NoError(t, err)
	r, err := right.RawRows()
	require.NoError(t, err)
	for i := range l {
		assert.InDeltaSlice(t, l[i], r[i], 1e-12)
	}
}

func TestAllocateDenseFillsOncePerCell(t *testing.T) {
	arena := NewArena(0)
	defer arena.Close()

	calls := 0
	m, err := arena.AllocateDense(3, 2, func() float64 {
		calls++
		return float64(calls)
	})
	require.NoError(t, err)
	assert.Equal(t, 6, calls)

	v, err := m.At(2, 1)
	require.NoError(t, err)
	assert.Equal(t, 6.0, v)

	_, err = m.At(3, 0)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestAllocateDenseFailures(t *testing.T) {

	type test struct {
		capacity   int
		rows, cols int
	}

	tests := map[string]test{
		"zero rows":     {rows: 0, cols: 2},
		"negative cols": {rows: 2, cols: -1},
		"over capacity": {capacity: 4, rows: 2, cols: 3},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			arena := NewArena(tt.capacity)
			m, err := arena.AllocateDense(tt.rows, tt.cols, nil)
			assert.ErrorIs(t, err, ErrAllocation)
			assert.Nil(t, m)
			assert.Equal(t, 0, arena.Stats().LiveCells)
		})
	}
}

func TestCapacityIsReturnedOnRelease(t *testing.T) {
	arena := NewArena(6)
	m, err := arena.AllocateDense(2, 3, nil)
	require.NoError(t, err)

	_, err = arena.AllocateDense(1, 1, nil)
	assert.ErrorIs(t, err, ErrAllocation)

	require.NoError(t, arena.Release(m))
	again, err := arena.AllocateDense(3, 2, nil)
	require.NoError(t, err)
	require.NoError(t, arena.Release(again))
}

func TestReleaseBalanced(t *testing.T) {
	arena := NewArena(0)
	rng := rand.New(rand.NewSource(3))

	for i := 0; i < 100; i++ {
		m, err := arena.AllocateDense(1+i%5, 1+i%7, rng.Float64)
		require.NoError(t, err)
		require.NoError(t, arena.Release(m))
	}

	stats := arena.Stats()
	assert.Equal(t, 100, stats.Allocations)
	assert.Equal(t, 100, stats.Releases)
	assert.Equal(t, 0, stats.Live)
	assert.Equal(t, 0, stats.LiveCells)
}

func TestDoubleReleaseAndUseAfterRelease(t *testing.T) {
	arena := NewArena(0)
	m, err := arena.AllocateDense(2, 2, nil)
	require.NoError(t, err)
	other, err := arena.AllocateDense(2, 2, nil)
	require.NoError(t, err)

	require.NoError(t, arena.Release(m))
	assert.ErrorIs(t, arena.Release(m), ErrReleased)

	_, err = m.At(0, 0)
	assert.ErrorIs(t, err, ErrReleased)
	_, err = m.RawRows()
	assert.ErrorIs(t, err, ErrReleased)
	_, err = Multiply(m, other)
	assert.ErrorIs(t, err, ErrReleased)
	_, err = Multiply(other, m)
	assert.ErrorIs(t, err, ErrReleased)
	assert.Equal(t, 0, m.Rows())
	assert.Equal(t, "<released>", m.String())

	stats := arena.Stats()
	assert.Equal(t, 2, stats.Allocations)
	assert.Equal(t, 1, stats.Releases)
	assert.Equal(t, 1, stats.Live)
}

func TestReleaseForeignMatrix(t *testing.T) {
	a := NewArena(0)
	b := NewArena(0)
	m, err := a.AllocateDense(1, 1, nil)
	require.NoError(t, err)

	assert.ErrorIs(t, b.Release(m), ErrReleased)
	assert.Equal(t, 1, a.Live())
	require.NoError(t, a.Release(m))
}

func TestScopedAlwaysReleases(t *testing.T) {
	arena := NewArena(0)

	err := arena.Scoped(2, 2, func() float64 { return 1 }, func(m *Matrix) error {
		v, err := m.At(1, 1)
		require.NoError(t, err)
		assert.Equal(t, 1.0, v)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 0, arena.Live())

	err = arena.Scoped(2, 2, nil, func(m *Matrix) error {
		return arena.Release(m)
	})
	require.NoError(t, err)

	stats := arena.Stats()
	assert.Equal(t, 2, stats.Allocations)
	assert.Equal(t, 2, stats.Releases)
	assert.Equal(t, 0, stats.Live)
}

func TestCloseReleasesEverything(t *testing.T) {
	arena := NewArena(0)
	var held []*Matrix
	for i := 0; i < 5; i++ {
		m, err := arena.AllocateDense(2, 2, nil)
		require.NoError(t, err)
		held = append(held, m)
	}

	assert.Equal(t, 5, arena.Close())
	assert.Equal(t, 0, arena.Live())
	for _, m := range held {
		assert.ErrorIs(t, arena.Release(m), ErrReleased)
	}
	assert.Equal(t, 5, arena.Stats().Releases)
}

func TestArenaConcurrentCycles(t *testing.T) {
	arena := NewArena(0)
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				m, err := arena.AllocateDense(4, 4, nil)
				if !assert.NoError(t, err) {
					return
				}
				assert.NoError(t, arena.Release(m))
			}
		}()
	}
	wg.Wait()

	stats := arena.Stats()
	assert.Equal(t, 400, stats.Allocations)
	assert.Equal(t, 400, stats.Releases)
	assert.Equal(t, 0, stats.Live)
}
