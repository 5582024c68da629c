// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Provide small, *private* element-wise reduction and comparison kernels (ew*)
//     behind the public facades in api.go.
//   - Keep all loops deterministic and cache-friendly with Dense fast-paths.
//
// Determinism & Performance:
//   - Fixed loop orders (i→j or flat 0..n-1).
//   - Reductions allocate nothing.

package matrix

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// ewFill returns a fresh matrix shaped like X with every element set to val.
// Time: O(r*c). Space: O(r*c).
func ewFill(X Matrix, val float64, tag string) (*Dense, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, matrixErrorf(tag, err)
	}
	if isNonFinite(val) {
		return nil, matrixErrorf(tag, ErrNaNInf)
	}
	out, err := NewDense(X.Rows(), X.Cols())
	if err != nil {
		return nil, matrixErrorf(tag, err)
	}
	for idx := range out.data {
		out.data[idx] = val
	}

	return out, nil
}

// ewSumSquares computes Σ X[i,j]².
// Time: O(r*c). Space: O(1). Deterministic flat loop on Dense fast-path.
func ewSumSquares(X Matrix) (float64, error) {
	if err := ValidateNotNil(X); err != nil {
		return 0, matrixErrorf("SumSquares", err)
	}

	if d, ok := X.(*Dense); ok {
		return floats.Dot(d.data, d.data), nil
	}

	acc := ZeroSum

	r, c := X.Rows(), X.Cols()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v, e := X.At(i, j)
			if e != nil {
				return 0, matrixErrorf("SumSquares", e)
			}
			acc += v * v
		}
	}

	return acc, nil
}

// ewArgMax returns the flat row-major index of the first maximal element.
// Ties resolve to the lowest index. Time: O(r*c). Space: O(1).
func ewArgMax(X Matrix) (int, error) {
	if err := ValidateNotNil(X); err != nil {
		return 0, matrixErrorf("ArgMax", err)
	}

	if d, ok := X.(*Dense); ok {
		// Dense buffers are never empty, so MaxIdx cannot panic.
		return floats.MaxIdx(d.data), nil
	}

	best, bestIdx := math.Inf(-1), 0

	r, c := X.Rows(), X.Cols()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v, e := X.At(i, j)
			if e != nil {
				return 0, matrixErrorf("ArgMax", e)
			}
			if v > best {
				best, bestIdx = v, i*c+j
			}
		}
	}

	return bestIdx, nil
}

// ewAllClose checks element-wise |a-b| ≤ atol + rtol*|b| for identical shapes.
// Returns (true,nil) if all elements satisfy the relation; (false,nil) otherwise.
// Time: O(r*c). Space: O(1). Deterministic.
//
// Policy:
//   - a and b must be non-nil and have identical shapes.
//   - rtol, atol are treated as |rtol|, |atol| (negative values are normalized).
func ewAllClose(a, b Matrix, rtol, atol float64) (bool, error) {
	if isNonFinite(rtol) || isNonFinite(atol) {
		return false, matrixErrorf("AllClose", ErrNaNInf)
	}
	rtol, atol = math.Abs(rtol), math.Abs(atol)

	if err := ValidateBinarySameShape(a, b); err != nil {
		return false, matrixErrorf("AllClose", err)
	}

	r, c := a.Rows(), a.Cols()

	// Dense fast-path: operate over flat slices when both are *Dense.
	if da, okA := a.(*Dense); okA {
		if db, okB := b.(*Dense); okB {
			for idx := range da.data {
				if !closeEnough(da.data[idx], db.data[idx], rtol, atol) {
					return false, nil // early-exit on first violation
				}
			}

			return true, nil
		}
	}

	var av, bv float64
	var err error
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if av, err = a.At(i, j); err != nil {
				return false, matrixErrorf("AllClose", err)
			}
			if bv, err = b.At(i, j); err != nil {
				return false, matrixErrorf("AllClose", err)
			}
			if !closeEnough(av, bv, rtol, atol) {
				return false, nil
			}
		}
	}

	return true, nil
}

// closeEnough is the scalar relation behind AllClose.
func closeEnough(a, b, rtol, atol float64) bool {
	return math.Abs(a-b) <= atol+rtol*math.Abs(b)
}
