// SPDX-License-Identifier: MIT

package network

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lvnet/matrix"
)

const (
	opForwardTrace  = "ForwardTrace"
	opBackwardTrace = "BackwardTrace"
	opTraceLayer    = "Trace.Layer"
)

// Trace is the activation snapshot of one forward pass: Layer(0) is the input
// and Layer(Len()-1) the output. It is produced by ForwardTrace and consumed by
// BackwardTrace, so the pairing of a forward and a backward pass is explicit.
type Trace struct {
	acts []*matrix.Dense
}

// Len returns the number of layers recorded.
func (t *Trace) Len() int { return len(t.acts) }

// Output returns a copy of the output activation.
func (t *Trace) Output() matrix.Matrix { return t.acts[len(t.acts)-1].Clone() }

// Layer returns a copy of the activation of layer i.
func (t *Trace) Layer(i int) (matrix.Matrix, error) {
	if i < 0 || i >= len(t.acts) {
		return nil, networkErrorf(opTraceLayer, fmt.Errorf("%d: %w", i, ErrLayerIndex))
	}

	return t.acts[i].Clone(), nil
}

// Loss returns Σ (output[y] − target[y])² for this trace.
func (t *Trace) Loss(target matrix.Matrix) (float64, error) {
	return squaredError(t.acts[len(t.acts)-1], target, opLoss)
}

// LossDerivative returns 2·(output − target) for this trace.
func (t *Trace) LossDerivative(target matrix.Matrix) (matrix.Matrix, error) {
	return squaredErrorGrad(t.acts[len(t.acts)-1], target, opLossGrad)
}

// ForwardTrace evaluates the network on input without touching its stored
// activations. Concurrent ForwardTrace calls are safe while no backward pass
// or parameter setter runs.
func (n *Network) ForwardTrace(input matrix.Matrix) (*Trace, error) {
	acts, err := n.propagate(input, opForwardTrace)
	if err != nil {
		return nil, err
	}

	return &Trace{acts: acts}, nil
}

// BackwardTrace runs one step of gradient descent using the activations in
// trace, which must have been produced by this network's ForwardTrace.
//
// Errors:
//   - ErrNilTrace, ErrLearningRate.
//   - ErrDimensionMismatch if the trace does not fit the network or the target
//     has the wrong shape.
func (n *Network) BackwardTrace(trace *Trace, target matrix.Matrix, lr float64) error {
	if trace == nil {
		return networkErrorf(opBackwardTrace, ErrNilTrace)
	}
	if len(trace.acts) != len(n.dims) {
		return networkErrorf(opBackwardTrace, fmt.Errorf("trace has %d layers, network %d: %w",
			len(trace.acts), len(n.dims), ErrDimensionMismatch))
	}
	for i, a := range trace.acts {
		if err := matrix.ValidateColumn(a, n.dims[i]); err != nil {
			return shapeErrorf(opBackwardTrace, err)
		}
	}

	return n.backprop(trace.acts, target, lr, opBackwardTrace)
}

// propagate computes every layer's activation for input.
//
// Implementation:
//   - Stage 1: ValidateColumn(input, dims[0]); copy it as layer 0.
//   - Stage 2: for each layer z = W·a + b, activation in place, append.
//
// Complexity:
//   - Time O(Σ dims[i]·dims[i+1]), Space O(Σ dims[i]).
func (n *Network) propagate(input matrix.Matrix, op string) ([]*matrix.Dense, error) {
	if err := matrix.ValidateColumn(input, n.dims[0]); err != nil {
		return nil, shapeErrorf(op, err)
	}

	acts := make([]*matrix.Dense, len(n.dims))
	a0, err := asDense(input.Clone())
	if err != nil {
		return nil, networkErrorf(op, err)
	}
	acts[0] = a0

	var wx, z matrix.Matrix
	var zd *matrix.Dense
	for i, w := range n.weights {
		if wx, err = matrix.Mul(w, acts[i]); err != nil {
			return nil, networkErrorf(op, err)
		}
		if z, err = matrix.Add(wx, n.biases[i]); err != nil {
			return nil, networkErrorf(op, err)
		}
		if zd, err = asDense(z); err != nil {
			return nil, networkErrorf(op, err)
		}
		if err = n.activations[i].apply(zd); err != nil {
			return nil, networkErrorf(op, err)
		}
		acts[i+1] = zd
	}

	return acts, nil
}

// backprop applies one gradient-descent step over the activations acts.
//
// Implementation (i = L−2 … 0):
//   - delta = delta ⊙ act_i'(acts[i+1])
//   - gW = delta · acts[i]ᵀ, gB = delta
//   - prop = (deltaᵀ · W[i])ᵀ, taken before W[i] is updated
//   - W[i] −= lr·gW, b[i] −= lr·gB, delta = prop
//
// delta starts as LossDerivative(target). Parameters are updated in place.
//
// Complexity:
//   - Time O(Σ dims[i]·dims[i+1]), Space O(max dims[i]·dims[i+1]).
func (n *Network) backprop(acts []*matrix.Dense, target matrix.Matrix, lr float64, op string) error {
	if math.IsNaN(lr) || math.IsInf(lr, 0) {
		return networkErrorf(op, ErrLearningRate)
	}

	delta, err := squaredErrorGrad(acts[len(acts)-1], target, op)
	if err != nil {
		return err
	}

	var grad, aT, dT, row, prop matrix.Matrix
	for i := len(n.weights) - 1; i >= 0; i-- {
		if grad, err = n.activations[i].derivative(acts[i+1]); err != nil {
			return networkErrorf(op, err)
		}
		if delta, err = matrix.Hadamard(delta, grad); err != nil {
			return networkErrorf(op, err)
		}
		if aT, err = matrix.Transpose(acts[i]); err != nil {
			return networkErrorf(op, err)
		}
		if grad, err = matrix.Mul(delta, aT); err != nil {
			return networkErrorf(op, err)
		}

		// the input layer has no parameters to receive a gradient
		prop = nil
		if i > 0 {
			if dT, err = matrix.Transpose(delta); err != nil {
				return networkErrorf(op, err)
			}
			if row, err = matrix.Mul(dT, n.weights[i]); err != nil {
				return networkErrorf(op, err)
			}
			if prop, err = matrix.Transpose(row); err != nil {
				return networkErrorf(op, err)
			}
		}

		if err = matrix.AddScaledInPlace(n.weights[i], grad, -lr); err != nil {
			return networkErrorf(op, fmt.Errorf("weights[%d]: %w", i, err))
		}
		if err = matrix.AddScaledInPlace(n.biases[i], delta, -lr); err != nil {
			return networkErrorf(op, fmt.Errorf("biases[%d]: %w", i, err))
		}
		delta = prop
	}

	return nil
}

// squaredError returns Σ (out − target)².
func squaredError(out *matrix.Dense, target matrix.Matrix, op string) (float64, error) {
	if err := matrix.ValidateColumn(target, out.Rows()); err != nil {
		return 0, shapeErrorf(op, err)
	}
	diff, err := matrix.Sub(out, target)
	if err != nil {
		return 0, networkErrorf(op, err)
	}
	s, err := matrix.SumSquares(diff)
	if err != nil {
		return 0, networkErrorf(op, err)
	}

	return s, nil
}

// squaredErrorGrad returns 2·(out − target).
func squaredErrorGrad(out *matrix.Dense, target matrix.Matrix, op string) (matrix.Matrix, error) {
	if err := matrix.ValidateColumn(target, out.Rows()); err != nil {
		return nil, shapeErrorf(op, err)
	}
	diff, err := matrix.Sub(out, target)
	if err != nil {
		return nil, networkErrorf(op, err)
	}
	g, err := matrix.Scale(diff, 2)
	if err != nil {
		return nil, networkErrorf(op, err)
	}

	return g, nil
}
