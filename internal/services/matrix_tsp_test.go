package services

import (
	"errors"
	"route-optimizer-service/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func km(v float64) *float64 { return &v }

func TestMatrixOrderGreedy(t *testing.T) {
	m := domain.NewCostMatrix([][]float64{
		{0, 4, 1, 9},
		{4, 0, 2, 3},
		{1, 2, 0, 7},
		{9, 3, 7, 0},
	})

	res, err := MatrixOrder(m, 0)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2, 1, 3}, res.Order)
	assert.InDelta(t, 1+2+3, res.TotalKm, 1e-9)
	assert.False(t, res.Degenerate())
}

func TestMatrixOrderAsymmetric(t *testing.T) {
	m := domain.NewCostMatrix([][]float64{
		{0, 5, 1},
		{1, 0, 1},
		{9, 2, 0},
	})

	res, err := MatrixOrder(m, 1)
	require.NoError(t, err)
	// From 1 the tie between 0 and 2 goes to the lower index.
	assert.Equal(t, []int{1, 0, 2}, res.Order)
	assert.InDelta(t, 2.0, res.TotalKm, 1e-9)
}

func TestMatrixOrderSkipsUnreachable(t *testing.T) {
	m := domain.CostMatrix{
		{km(0), nil, km(5)},
		{km(1), km(0), km(1)},
		{km(2), km(3), km(0)},
	}

	res, err := MatrixOrder(m, 0)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2, 1}, res.Order)
	assert.InDelta(t, 8.0, res.TotalKm, 1e-9)
	assert.Zero(t, res.UnreachableLegs)
}

func TestMatrixOrderNegativeIsUnreachable(t *testing.T) {
	m := domain.CostMatrix{
		{km(0), km(-1), km(50)},
		{km(1), km(0), km(1)},
		{km(1), km(1), km(0)},
	}

	res, err := MatrixOrder(m, 0)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2, 1}, res.Order)
}

func TestMatrixOrderDegenerate(t *testing.T) {
	m := domain.CostMatrix{
		{km(0), km(3), km(1)},
		{nil, km(0), nil},
		{nil, nil, km(0)},
	}

	res, err := MatrixOrder(m, 0)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2, 1}, res.Order)
	assert.True(t, res.Degenerate())
	assert.Equal(t, 1, res.UnreachableLegs)
	// The forced leg contributes nothing.
	assert.InDelta(t, 1.0, res.TotalKm, 1e-9)
}

func TestMatrixOrderTrivial(t *testing.T) {
	res, err := MatrixOrder(domain.CostMatrix{}, 0)
	require.NoError(t, err)
	assert.Empty(t, res.Order)

	res, err = MatrixOrder(domain.NewCostMatrix([][]float64{{0}}), 0)
	require.NoError(t, err)
	assert.Equal(t, []int{0}, res.Order)
	assert.Zero(t, res.TotalKm)
}

func TestMatrixOrderRejectsBadInput(t *testing.T) {
	_, err := MatrixOrder(domain.CostMatrix{{km(0), km(1)}, {km(1)}}, 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = MatrixOrder(domain.NewCostMatrix([][]float64{{0, 1}, {1, 0}}), 2)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestMatrixOrderPermutation(t *testing.T) {
	stops := randomStops(5, 30)
	rows := make([][]float64, len(stops))
	for i := range stops {
		rows[i] = make([]float64, len(stops))
		for j := range stops {
			rows[i][j] = Haversine(stops[i], stops[j])
		}
	}
	m := domain.NewCostMatrix(rows)
	// Knock out a few pairs to exercise the unreachable path.
	m[3][7], m[7][3], m[0][1] = nil, nil, nil

	for _, start := range []int{0, 4, 29} {
		res, err := MatrixOrder(m, start)
		require.NoError(t, err)
		assertPermutation(t, res.Order, len(stops))
		assert.Equal(t, start, res.Order[0])
	}
}
