// SPDX-License-Identifier: MIT

package network

import (
	"fmt"

	"github.com/katalvlaran/lvnet/matrix"
)

// Activation selects the nonlinearity applied after a layer's affine step.
type Activation int

const (
	// ReLU is max(0, z). It is the default for every layer, output included.
	ReLU Activation = iota
	// Identity leaves the pre-activation unchanged.
	Identity
)

// String implements fmt.Stringer.
func (a Activation) String() string {
	switch a {
	case ReLU:
		return "relu"
	case Identity:
		return "identity"
	default:
		return fmt.Sprintf("Activation(%d)", int(a))
	}
}

// ParseActivation maps "relu" or "identity" to an Activation.
func ParseActivation(s string) (Activation, error) {
	switch s {
	case "relu":
		return ReLU, nil
	case "identity", "linear":
		return Identity, nil
	}

	return 0, fmt.Errorf("%q: %w", s, ErrBadActivation)
}

func (a Activation) valid() bool { return a == ReLU || a == Identity }

// apply runs the activation over z in place.
func (a Activation) apply(z *matrix.Dense) error {
	if a == ReLU {
		return matrix.ReLU(z)
	}

	return nil
}

// derivative returns act'(·) evaluated on the layer's post-activation values.
// For ReLU a post-activation of exactly 0 yields 0, so clamped units pass no
// gradient.
func (a Activation) derivative(out matrix.Matrix) (matrix.Matrix, error) {
	if a == ReLU {
		return matrix.ReLUDerivative(out)
	}

	return matrix.OnesLike(out)
}
