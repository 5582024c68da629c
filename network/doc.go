// SPDX-License-Identifier: MIT

// Package network implements a fully connected feed-forward neural network
// trained by manual backpropagation and online stochastic gradient descent.
//
// 🚀 What is network?
//
//	A stack of affine layers over column vectors built on package matrix:
//
//	    a[0] = x
//	    a[i+1] = act_i( W[i]·a[i] + b[i] )
//
//	where W[i] is dims[i+1]×dims[i] and b[i] is dims[i+1]×1. The model is scored
//	with the summed squared error Σ (a[L-1] − t)² and updated one sample at a time.
//
// ✨ Key features:
//   - New(dims, opts...)          - random init from seeded, injectable sources
//   - Forward / Backward          - stateful pass over the stored activations
//   - ForwardTrace / BackwardTrace - the same pass over an explicit *Trace
//   - Loss / LossDerivative       - summed squared error and its gradient 2(o−t)
//   - Predict                     - argmax class of the output layer
//   - Activation                  - ReLU (default, every layer) or Identity
//
// ⚙️ Usage:
//
//	net, err := network.New([]int{3, 2}, network.WithSeed(42))
//	if err != nil { ... }
//	out, err := net.Forward(x)     // x is 3×1
//	loss, err := net.Loss(t)       // t is 2×1
//	err = net.Backward(t, 0.02)    // one SGD step
//
// Concurrency:
//
//	A *Network is not safe for concurrent mutation. ForwardTrace only reads
//	parameters, so several goroutines may evaluate at once while no backward
//	pass runs.
//
// Errors:
//
//	Shape problems wrap both ErrDimensionMismatch and matrix.ErrDimensionMismatch.
//	Backward before any Forward returns ErrNoForward. A Forward for a different
//	sample than the target passed to Backward is not detected.
package network
