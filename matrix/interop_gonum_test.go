package matrix_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/lvnet/matrix"
)

func TestGonum_RoundTrip(t *testing.T) {
	t.Parallel()

	a := MustRows(t, [][]float64{{1, 2, 3}, {4, 5, 6}})
	for _, in := range []matrix.Matrix{a, hide{a}} {
		g, err := matrix.ToGonum(in)
		require.NoError(t, err)
		r, c := g.Dims()
		require.Equal(t, 2, r)
		require.Equal(t, 3, c)
		require.Equal(t, 6.0, g.At(1, 2))

		back, err := matrix.FromGonum(g)
		require.NoError(t, err)
		CompareExact(t, [][]float64{{1, 2, 3}, {4, 5, 6}}, back)
	}

	// the copy is detached
	g, err := matrix.ToGonum(a)
	require.NoError(t, err)
	g.Set(0, 0, 42)
	require.Equal(t, 1.0, MustAt(t, a, 0, 0))

	_, err = matrix.ToGonum(nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
	_, err = matrix.FromGonum(nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
	_, err = matrix.FromGonum(mat.NewDense(1, 1, []float64{math.NaN()}))
	require.ErrorIs(t, err, matrix.ErrNaNInf)
}

// TestGonum_MulTransposeOracle checks Mul and Transpose against gonum on
// random operands, for both the fast path and the interface fallback.
func TestGonum_MulTransposeOracle(t *testing.T) {
	t.Parallel()

	a := MustDense(t, 5, 7)
	b := MustDense(t, 7, 3)
	RandomFill(t, a, 21)
	RandomFill(t, b, 22)

	ga, err := matrix.ToGonum(a)
	require.NoError(t, err)
	gb, err := matrix.ToGonum(b)
	require.NoError(t, err)
	var want mat.Dense
	want.Mul(ga, gb)
	wantM, err := matrix.FromGonum(&want)
	require.NoError(t, err)

	for _, pair := range [][2]matrix.Matrix{{a, b}, {hide{a}, hide{b}}} {
		got, err := matrix.Mul(pair[0], pair[1])
		require.NoError(t, err)
		CompareClose(t, got, wantM, 0, 1e-12)
	}

	wantT, err := matrix.FromGonum(ga.T())
	require.NoError(t, err)
	gotT, err := matrix.Transpose(a)
	require.NoError(t, err)
	CompareClose(t, gotT, wantT, 0, 0)
}
