package similarity

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustMatrix(t *testing.T, rows [][]float64) *Matrix {
	t.Helper()
	m, err := New(rows)
	require.NoError(t, err)
	return m
}

func sixBySix(t *testing.T) *Matrix {
	rows := make([][]float64, 6)
	rows[0] = []float64{1.0, 0.9, 0.8, 0.7, 0.2, 0.1}
	for i := 1; i < 6; i++ {
		rows[i] = make([]float64, 6)
		rows[i][i] = 1
	}
	return mustMatrix(t, rows)
}

func TestTopNeighborsOrdersByScore(t *testing.T) {
	got, err := TopNeighbors(sixBySix(t), 0, DefaultTopN)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, got)
}

func TestTopNeighborsExcludesSelfEvenWhenNotHighest(t *testing.T) {
	m := mustMatrix(t, [][]float64{
		{0.1, 0.5, 0.3},
		{0.5, -3, 0.2},
		{0.3, 0.2, 0},
	})

	got, err := TopNeighbors(m, 1, 5)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2}, got)

	got, err = TopNeighbors(m, 0, 5)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, got)
}

func TestTopNeighborsStableTieBreak(t *testing.T) {
	m := mustMatrix(t, [][]float64{
		{1, 0.5, 0.9, 0.5, 0.9, 0.5},
		{0, 1, 0, 0, 0, 0},
		{0, 0, 1, 0, 0, 0},
		{0, 0, 0, 1, 0, 0},
		{0, 0, 0, 0, 1, 0},
		{0, 0, 0, 0, 0, 1},
	})

	got, err := TopNeighbors(m, 0, 4)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 4, 1, 3}, got)

	// filas con todo en cero: gana el orden original
	got, err = TopNeighbors(m, 3, 5)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 4, 5}, got)
}

func TestTopNeighborsSmallCatalog(t *testing.T) {
	m := mustMatrix(t, [][]float64{{1, 0.2}, {0.2, 1}})
	got, err := TopNeighbors(m, 0, 5)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, got)

	single := mustMatrix(t, [][]float64{{1}})
	got, err = TopNeighbors(single, 0, 5)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestTopNeighborsNonPositiveN(t *testing.T) {
	got, err := TopNeighbors(sixBySix(t), 0, 0)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestTopNeighborsOutOfRange(t *testing.T) {
	_, err := TopNeighbors(sixBySix(t), 6, 5)
	assert.ErrorIs(t, err, ErrRowOutOfRange)

	_, err = TopNeighbors(sixBySix(t), -1, 5)
	assert.ErrorIs(t, err, ErrRowOutOfRange)
}

func TestTopNeighborsNaNSortsLast(t *testing.T) {
	m := mustMatrix(t, [][]float64{
		{1, math.NaN(), 0.1, -0.5},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	})
	got, err := TopNeighbors(m, 0, 3)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3, 1}, got)
}

func TestTopNeighborScoresNonIncreasing(t *testing.T) {
	m := mustMatrix(t, [][]float64{
		{1, 0.3, 0.7, 0.3, 0.99, 0.01, 0.7},
		{0, 1, 0, 0, 0, 0, 0},
		{0, 0, 1, 0, 0, 0, 0},
		{0, 0, 0, 1, 0, 0, 0},
		{0, 0, 0, 0, 1, 0, 0},
		{0, 0, 0, 0, 0, 1, 0},
		{0, 0, 0, 0, 0, 0, 1},
	})
	ns, err := TopNeighborScores(m, 0, 5)
	require.NoError(t, err)
	require.Len(t, ns, 5)

	for i := 1; i < len(ns); i++ {
		prev, cur := ns[i-1], ns[i]
		assert.GreaterOrEqual(t, prev.Score, cur.Score)
		if prev.Score == cur.Score {
			assert.Less(t, prev.Index, cur.Index)
		}
	}
	assert.Equal(t, 4, ns[0].Index)
}

func TestTopNeighborsConcurrentReads(t *testing.T) {
	m := sixBySix(t)
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := TopNeighbors(m, 0, 5)
			assert.NoError(t, err)
			assert.Equal(t, []int{1, 2, 3, 4, 5}, got)
		}()
	}
	wg.Wait()
}

func TestNewRejectsNonSquare(t *testing.T) {
	_, err := New([][]float64{{1, 2}, {3}})
	assert.ErrorIs(t, err, ErrNotSquare)

	_, err = New([][]float64{{1, 2, 3}, {1, 2, 3}})
	assert.ErrorIs(t, err, ErrNotSquare)

	m, err := New(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, m.Size())
}
