package network_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvnet/matrix"
)

// col builds an n×1 column or fails the test.
func col(t testing.TB, vals ...float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewColumn(vals)
	require.NoError(t, err)

	return m
}

// rows builds a *Dense from a 2-D literal or fails the test.
func rows(t testing.TB, r [][]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewFromRows(r)
	require.NoError(t, err)

	return m
}

// values flattens m in row-major order.
func values(t testing.TB, m matrix.Matrix) []float64 {
	t.Helper()
	out := make([]float64, 0, m.Rows()*m.Cols())
	for i := 0; i < m.Rows(); i++ {
		for j := 0; j < m.Cols(); j++ {
			v, err := m.At(i, j)
			require.NoError(t, err)
			out = append(out, v)
		}
	}

	return out
}
