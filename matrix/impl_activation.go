// SPDX-License-Identifier: MIT
// Package matrix: rectifier kernels used by the network layers.
//
// ReLU clamps in place (it is applied to freshly computed pre-activations that
// nobody else references); ReLUDerivative always allocates.

package matrix

import "fmt"

const (
	opReLU      = "ReLU"
	opReLUPrime = "ReLUDerivative"
)

// ReLU clamps every negative element of m to 0.0 in place.
// Non-negative elements are left unchanged.
//
// Errors:
//   - ErrNilMatrix (from ValidateNotNil).
//
// Complexity:
//   - Time O(r*c), Space O(1).
func ReLU(m Matrix) error {
	if err := ValidateNotNil(m); err != nil {
		return matrixErrorf(opReLU, err)
	}

	if dm, ok := m.(*Dense); ok {
		for idx, v := range dm.data {
			if v < 0 {
				dm.data[idx] = 0
			}
		}

		return nil
	}

	rows, cols := m.Rows(), m.Cols()
	var i, j int
	var v float64
	var err error
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			if v, err = m.At(i, j); err != nil {
				return matrixErrorf(opReLU, err)
			}
			if v < 0 {
				if err = m.Set(i, j, 0); err != nil {
					return matrixErrorf(opReLU, err)
				}
			}
		}
	}

	return nil
}

// ReLUDerivative returns a new matrix holding 1.0 where m[i,j] > 0.0 and 0.0
// elsewhere.
//
// The derivative at exactly 0 is taken as 0 (a subgradient choice). Because the
// network evaluates it on post-activation values, a unit whose pre-activation was
// clamped to 0 passes no gradient back.
//
// Errors:
//   - ErrNilMatrix (from ValidateNotNil).
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func ReLUDerivative(m Matrix) (Matrix, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opReLUPrime, err)
	}

	rows, cols := m.Rows(), m.Cols()
	res, err := NewDense(rows, cols)
	if err != nil {
		return nil, matrixErrorf(opReLUPrime, err)
	}

	if dm, ok := m.(*Dense); ok {
		for idx, v := range dm.data {
			if v > 0 {
				res.data[idx] = 1
			}
		}

		return res, nil
	}

	var i, j int
	var v float64
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			v, err = m.At(i, j)
			if err != nil {
				return nil, matrixErrorf(opReLUPrime, fmt.Errorf("At(%d,%d): %w", i, j, err))
			}
			if v > 0 {
				res.data[i*cols+j] = 1
			}
		}
	}

	return res, nil
}
