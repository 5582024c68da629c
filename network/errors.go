// SPDX-License-Identifier: MIT

package network

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/lvnet/matrix"
)

// Sentinel errors. Kernels wrap them with an operation tag; callers use errors.Is.
var (
	// ErrBadDimensions is returned by New when fewer than two layers are given
	// or a layer width is not positive.
	ErrBadDimensions = errors.New("network: need at least two layers of positive width")

	// ErrDimensionMismatch indicates an input, target or parameter of the wrong
	// shape. It wraps matrix.ErrDimensionMismatch.
	ErrDimensionMismatch = fmt.Errorf("network: %w", matrix.ErrDimensionMismatch)

	// ErrNoForward is returned by Backward when no forward pass has been stored.
	ErrNoForward = errors.New("network: backward pass before any forward pass")

	// ErrNilTrace is returned by BackwardTrace for a nil trace.
	ErrNilTrace = errors.New("network: nil trace")

	// ErrLayerIndex indicates a layer index outside the network.
	ErrLayerIndex = errors.New("network: layer index out of range")

	// ErrBadActivation indicates an unknown activation or a per-layer list of
	// the wrong length.
	ErrBadActivation = errors.New("network: invalid activation configuration")

	// ErrLearningRate indicates a NaN or infinite learning rate.
	ErrLearningRate = errors.New("network: learning rate must be finite")
)

// networkErrorf tags err with the failing operation.
func networkErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}

// shapeErrorf marks a matrix-level shape failure as a network shape failure
// while keeping the underlying cause in the chain.
func shapeErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrDimensionMismatch, err)
}
