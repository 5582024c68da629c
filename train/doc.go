// SPDX-License-Identifier: MIT

// Package train drives online stochastic gradient descent over a dataset.
//
// Train visits every sample of every epoch in order and, per sample, runs a
// forward pass, scores the loss and the argmax agreement with the label, and
// applies one backward step. There is no batching: parameters change after
// each sample.
//
// Evaluate scores a network without updating it, fanning samples out over a
// bounded worker pool through network.ForwardTrace.
//
// Cancellation: Config.Ctx is checked between epochs (Train) and between
// samples (Evaluate); the context error is returned as is.
package train
