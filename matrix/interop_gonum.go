// SPDX-License-Identifier: MIT
// Package matrix: conversion to and from gonum matrices.
//
// Both directions copy; no buffer is ever shared with gonum.

package matrix

import (
	"gonum.org/v1/gonum/mat"
)

const (
	opToGonum   = "ToGonum"
	opFromGonum = "FromGonum"
)

// ToGonum returns a *mat.Dense holding a copy of m.
//
// Errors:
//   - ErrNilMatrix.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func ToGonum(m Matrix) (*mat.Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opToGonum, err)
	}
	if d, ok := m.(*Dense); ok {
		return mat.NewDense(d.r, d.c, d.Values()), nil
	}

	rows, cols := m.Rows(), m.Cols()
	out := mat.NewDense(rows, cols, nil)
	var v float64
	var err error
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, matrixErrorf(opToGonum, err)
			}
			out.Set(i, j, v)
		}
	}

	return out, nil
}

// FromGonum copies any gonum matrix (including views such as g.T()) into a
// new *Dense. The numeric policy of the result is the default one, so a
// source holding NaN or ±Inf yields ErrNaNInf.
//
// Errors:
//   - ErrNilMatrix, ErrInvalidDimensions (empty source), ErrNaNInf.
func FromGonum(g mat.Matrix) (*Dense, error) {
	if g == nil {
		return nil, matrixErrorf(opFromGonum, ErrNilMatrix)
	}
	rows, cols := g.Dims()
	out, err := NewDense(rows, cols)
	if err != nil {
		return nil, matrixErrorf(opFromGonum, err)
	}
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if err = out.Set(i, j, g.At(i, j)); err != nil {
				return nil, matrixErrorf(opFromGonum, err)
			}
		}
	}

	return out, nil
}
