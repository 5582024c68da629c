// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// This file defines ONLY package-level sentinel errors used across the matrix
// package. All kernels MUST return these sentinels (possibly wrapped with an
// operation tag) and tests MUST check them via errors.Is.
// Panics are reserved for programmer errors in option constructors.

package matrix

import "errors"

// Every message is prefixed with "matrix: ..." for easy grepping across logs.
// Kernels wrap these with fmt.Errorf("<Op>: %w", ErrX); callers still use errors.Is.
var (
	// ErrInvalidDimensions indicates that requested matrix dimensions are non-positive.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be > 0")

	// ErrOutOfRange indicates that an index (row or column) is outside valid bounds.
	// Public indexers (At/Set) MUST return this, not panic.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible dimensions between operands,
	// e.g., Add/Sub/Hadamard of different shapes, or Mul where a.Cols != b.Rows.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrNaNInf signals a NaN or ±Inf value was encountered where finite values
	// are required by the numeric policy (Set, Apply, random bounds).
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")

	// ErrNilMatrix indicates that a nil Matrix (receiver or argument) was used.
	ErrNilMatrix = errors.New("matrix: nil matrix")

	// ErrNilSource indicates that a nil random source was passed to NewRandom.
	ErrNilSource = errors.New("matrix: nil random source")

	// ErrInvalidRange indicates an empty or inverted sampling interval (min >= max).
	ErrInvalidRange = errors.New("matrix: invalid value range")

	// ErrNotVector indicates that a column vector (cols == 1) was required.
	ErrNotVector = errors.New("matrix: not a column vector")
)
