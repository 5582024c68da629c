// SPDX-License-Identifier: MIT

// Package matrix provides a small dense linear-algebra core for lvnet.
//
// The package provides:
//
//   - Dense, a row-major float64 matrix with bounds-checked At/Set.
//   - Pure kernels that always allocate a fresh result: Add, Sub, Hadamard,
//     Mul, Scale, Transpose, ReLUDerivative.
//   - A short list of in-place mutators: Set, Apply, ReLU, AddScaledInPlace.
//   - Constructors for zero, random (injected *rand.Rand), literal and
//     column-vector matrices.
//
// Contract violations (shape mismatch, index out of range, NaN/Inf under the
// numeric policy) are reported as sentinel errors wrapped with the operation
// name. Match them with errors.Is:
//
//	sum, err := matrix.Add(a, b)
//	if errors.Is(err, matrix.ErrDimensionMismatch) {
//		// operands had different shapes
//	}
//
// Every kernel has a flat-slice fast path for *Dense operands and a generic
// At/Set fallback for any other Matrix implementation.
package matrix
