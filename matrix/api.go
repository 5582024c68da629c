// SPDX-License-Identifier: MIT
// Package matrix: public API facades.
//
// Purpose:
//   - Provide thin, intention-revealing entry points for common tasks.
//   - Avoid logic duplication: each facade delegates to the canonical implementation.
//
// Determinism & Policy:
//   - Facades never change the loop orders or numeric policy of underlying kernels.
//   - Validation is performed in the kernels; facades only compose or forward.

package matrix

// ---------- Constructors & Utilities ----------

// NewZeros returns a new zero-initialized *Dense of size rows×cols.
// It is a thin alias of NewDense with an intention-revealing name.
//
// Note: Returns (*Dense, error) to surface ErrInvalidDimensions.
func NewZeros(rows, cols int) (*Dense, error) {
	return NewDense(rows, cols)
}

// CloneMatrix returns a structural clone of m (same type if m is *Dense).
// Complexity: O(r*c) copy for dense; implementation-defined otherwise.
func CloneMatrix(m Matrix) Matrix {
	return m.Clone()
}

// ZerosLike returns a new zero matrix with the same shape as m.
// Complexity: O(1) alloc + O(rc) zeroing.
func ZerosLike(m Matrix) (*Dense, error) {
	return ewFill(m, 0, "ZerosLike")
}

// OnesLike returns a new matrix of ones with the same shape as m.
// It is the derivative of the identity activation.
func OnesLike(m Matrix) (*Dense, error) {
	return ewFill(m, 1, "OnesLike")
}

// ---------- Reductions & comparisons ----------

// SumSquares returns Σ m[i,j]². Time: O(r*c). Space: O(1).
func SumSquares(m Matrix) (float64, error) {
	return ewSumSquares(m)
}

// ArgMax returns the flat row-major index of the first maximal element of m.
// For a column vector this is the row index, i.e. the predicted class.
func ArgMax(m Matrix) (int, error) {
	return ewArgMax(m)
}

// AllClose checks element-wise |a-b| ≤ atol + rtol*|b| for identical shapes.
// Returns (true,nil) if all elements satisfy the relation; (false,nil) otherwise.
// NaN compares unequal to everything.
// Time: O(r*c). Space: O(1). Deterministic.
func AllClose(a, b Matrix, rtol, atol float64) (bool, error) {
	return ewAllClose(a, b, rtol, atol)
}

// EqualApprox reports whether a and b agree element-wise within the absolute
// tolerance resolved from opts (DefaultEpsilon unless WithEpsilon is given).
func EqualApprox(a, b Matrix, opts ...Option) (bool, error) {
	o := gatherOptions(opts...)

	return ewAllClose(a, b, 0, o.eps)
}
