// SPDX-License-Identifier: MIT

package network

import (
	"fmt"

	"github.com/katalvlaran/lvnet/matrix"
)

const (
	opNew      = "New"
	opForward  = "Forward"
	opBackward = "Backward"
	opLoss     = "Loss"
	opLossGrad = "LossDerivative"
	opPredict  = "Predict"
	opWeights  = "Weights"
	opBiases   = "Biases"
	opNeurons  = "Neurons"
)

// Network is a fully connected feed-forward model.
//
// weights[i] (dims[i+1]×dims[i]) and biases[i] (dims[i+1]×1) map layer i to
// layer i+1. neurons holds the activations of the most recent Forward call.
type Network struct {
	dims        []int
	neurons     []*matrix.Dense
	weights     []*matrix.Dense
	biases      []*matrix.Dense
	activations []Activation
	forwarded   bool
}

// New builds a network with the given layer widths.
//
// Implementation:
//   - Stage 1: validate dimensions (at least two layers, every width > 0).
//   - Stage 2: zero the neuron vectors.
//   - Stage 3: draw every bias vector, then every weight matrix, from the
//     configured random source in layer order.
//
// Errors:
//   - ErrBadDimensions, ErrBadActivation.
//
// Determinism:
//   - With the default options the source is seeded with DefaultSeed, so two
//     calls with identical arguments produce identical parameters.
func New(dimensions []int, opts ...Option) (*Network, error) {
	if len(dimensions) < 2 {
		return nil, networkErrorf(opNew, fmt.Errorf("%d layers: %w", len(dimensions), ErrBadDimensions))
	}
	for i, d := range dimensions {
		if d <= 0 {
			return nil, networkErrorf(opNew, fmt.Errorf("layer %d width %d: %w", i, d, ErrBadDimensions))
		}
	}

	o := gatherOptions(opts...)
	layers := len(dimensions) - 1
	acts, err := o.resolveActivations(layers)
	if err != nil {
		return nil, networkErrorf(opNew, err)
	}

	n := &Network{
		dims:        append([]int(nil), dimensions...),
		neurons:     make([]*matrix.Dense, len(dimensions)),
		weights:     make([]*matrix.Dense, layers),
		biases:      make([]*matrix.Dense, layers),
		activations: acts,
	}
	for i, d := range dimensions {
		if n.neurons[i], err = matrix.NewZeros(d, 1); err != nil {
			return nil, networkErrorf(opNew, err)
		}
	}
	for i := 0; i < layers; i++ {
		if n.biases[i], err = matrix.NewRandom(dimensions[i+1], 1, o.biasMin, o.biasMax, o.rng); err != nil {
			return nil, networkErrorf(opNew, err)
		}
	}
	for i := 0; i < layers; i++ {
		if n.weights[i], err = matrix.NewRandom(dimensions[i+1], dimensions[i], o.weightMin, o.weightMax, o.rng); err != nil {
			return nil, networkErrorf(opNew, err)
		}
	}

	return n, nil
}

// Dimensions returns a copy of the layer widths.
func (n *Network) Dimensions() []int { return append([]int(nil), n.dims...) }

// Layers returns the number of layers, input and output included.
func (n *Network) Layers() int { return len(n.dims) }

// InputSize returns the width of the input layer.
func (n *Network) InputSize() int { return n.dims[0] }

// OutputSize returns the width of the output layer.
func (n *Network) OutputSize() int { return n.dims[len(n.dims)-1] }

// Activation returns the activation applied after parameter layer i.
func (n *Network) Activation(i int) (Activation, error) {
	if i < 0 || i >= len(n.activations) {
		return 0, networkErrorf("Activation", fmt.Errorf("%d: %w", i, ErrLayerIndex))
	}

	return n.activations[i], nil
}

// Weights returns a copy of weight matrix i (dims[i+1]×dims[i]).
func (n *Network) Weights(i int) (matrix.Matrix, error) {
	if i < 0 || i >= len(n.weights) {
		return nil, networkErrorf(opWeights, fmt.Errorf("%d: %w", i, ErrLayerIndex))
	}

	return n.weights[i].Clone(), nil
}

// Biases returns a copy of bias vector i (dims[i+1]×1).
func (n *Network) Biases(i int) (matrix.Matrix, error) {
	if i < 0 || i >= len(n.biases) {
		return nil, networkErrorf(opBiases, fmt.Errorf("%d: %w", i, ErrLayerIndex))
	}

	return n.biases[i].Clone(), nil
}

// Neurons returns a copy of the stored activation of layer i.
func (n *Network) Neurons(i int) (matrix.Matrix, error) {
	if i < 0 || i >= len(n.neurons) {
		return nil, networkErrorf(opNeurons, fmt.Errorf("%d: %w", i, ErrLayerIndex))
	}

	return n.neurons[i].Clone(), nil
}

// SetWeights replaces weight matrix i with a copy of m.
func (n *Network) SetWeights(i int, m matrix.Matrix) error {
	if i < 0 || i >= len(n.weights) {
		return networkErrorf("SetWeights", fmt.Errorf("%d: %w", i, ErrLayerIndex))
	}
	d, err := copyShaped(m, n.dims[i+1], n.dims[i])
	if err != nil {
		return shapeErrorf("SetWeights", err)
	}
	n.weights[i] = d

	return nil
}

// SetBiases replaces bias vector i with a copy of m.
func (n *Network) SetBiases(i int, m matrix.Matrix) error {
	if i < 0 || i >= len(n.biases) {
		return networkErrorf("SetBiases", fmt.Errorf("%d: %w", i, ErrLayerIndex))
	}
	d, err := copyShaped(m, n.dims[i+1], 1)
	if err != nil {
		return shapeErrorf("SetBiases", err)
	}
	n.biases[i] = d

	return nil
}

// Forward evaluates the network on input (dims[0]×1), stores every layer's
// activation for a later Backward, and returns a copy of the output.
//
// Errors:
//   - ErrDimensionMismatch for a wrongly shaped input.
//   - matrix.ErrNaNInf if an activation overflows.
func (n *Network) Forward(input matrix.Matrix) (matrix.Matrix, error) {
	acts, err := n.propagate(input, opForward)
	if err != nil {
		return nil, err
	}
	n.neurons = acts
	n.forwarded = true

	return acts[len(acts)-1].Clone(), nil
}

// Loss returns Σ (output[y] − target[y])² over the stored output activation.
func (n *Network) Loss(target matrix.Matrix) (float64, error) {
	return squaredError(n.neurons[len(n.neurons)-1], target, opLoss)
}

// LossDerivative returns 2·(output − target) over the stored output activation.
func (n *Network) LossDerivative(target matrix.Matrix) (matrix.Matrix, error) {
	return squaredErrorGrad(n.neurons[len(n.neurons)-1], target, opLossGrad)
}

// Backward runs one step of gradient descent with learning rate lr using the
// activations stored by the last Forward call.
//
// The activations must come from a Forward on the sample whose target is
// passed here; a mismatch is not detected.
//
// Errors:
//   - ErrNoForward if Forward has never succeeded.
//   - ErrDimensionMismatch for a wrongly shaped target.
//   - ErrLearningRate for a non-finite lr.
func (n *Network) Backward(target matrix.Matrix, lr float64) error {
	if !n.forwarded {
		return networkErrorf(opBackward, ErrNoForward)
	}

	return n.backprop(n.neurons, target, lr, opBackward)
}

// Predict returns the index of the largest output for input.
// It does not touch the stored activations.
func (n *Network) Predict(input matrix.Matrix) (int, error) {
	acts, err := n.propagate(input, opPredict)
	if err != nil {
		return 0, err
	}
	k, err := matrix.ArgMax(acts[len(acts)-1])
	if err != nil {
		return 0, networkErrorf(opPredict, err)
	}

	return k, nil
}

// copyShaped returns a *Dense copy of m after checking it is rows×cols.
func copyShaped(m matrix.Matrix, rows, cols int) (*matrix.Dense, error) {
	if err := matrix.ValidateNotNil(m); err != nil {
		return nil, err
	}
	if m.Rows() != rows || m.Cols() != cols {
		return nil, fmt.Errorf("got %d×%d, want %d×%d: %w", m.Rows(), m.Cols(), rows, cols, matrix.ErrDimensionMismatch)
	}

	return asDense(m.Clone())
}

// asDense returns m itself when it is a *Dense, otherwise a dense copy.
func asDense(m matrix.Matrix) (*matrix.Dense, error) {
	if d, ok := m.(*matrix.Dense); ok {
		return d, nil
	}
	d, err := matrix.NewDense(m.Rows(), m.Cols())
	if err != nil {
		return nil, err
	}
	var v float64
	for i := 0; i < m.Rows(); i++ {
		for j := 0; j < m.Cols(); j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, err
			}
			if err = d.Set(i, j, v); err != nil {
				return nil, err
			}
		}
	}

	return d, nil
}
