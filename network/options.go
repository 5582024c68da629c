// SPDX-License-Identifier: MIT

package network

import (
	"math"
	"math/rand"
)

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultWeightMin and DefaultWeightMax bound the uniform weight initialization.
	DefaultWeightMin = 0.0
	DefaultWeightMax = 0.01

	// DefaultBiasMin and DefaultBiasMax bound the uniform bias initialization.
	DefaultBiasMin = -0.01
	DefaultBiasMax = 0.01

	// DefaultSeed seeds the random source when neither WithRand nor WithSeed is given.
	DefaultSeed int64 = 1

	// DefaultActivation is used for every layer unless overridden.
	DefaultActivation = ReLU
)

const (
	panicRangeInvalid = "network: init range must be finite with min < max"
	panicNilRand      = "network: WithRand: nil source"
)

// Option mutates Options. Constructors panic only on nonsensical values.
type Option func(*Options)

// Options holds the resolved construction parameters of a Network.
type Options struct {
	weightMin, weightMax float64
	biasMin, biasMax     float64
	rng                  *rand.Rand
	seed                 int64
	activations          []Activation
	output               Activation
	hasOutput            bool
}

// WithWeightRange sets the uniform interval [min, max) for initial weights.
// Panics if the interval is empty or not finite.
func WithWeightRange(min, max float64) Option {
	checkRange(min, max)

	return func(o *Options) { o.weightMin, o.weightMax = min, max }
}

// WithBiasRange sets the uniform interval [min, max) for initial biases.
// Panics if the interval is empty or not finite.
func WithBiasRange(min, max float64) Option {
	checkRange(min, max)

	return func(o *Options) { o.biasMin, o.biasMax = min, max }
}

// WithRand injects the random source used for initialization.
// It takes precedence over WithSeed.
func WithRand(rng *rand.Rand) Option {
	if rng == nil {
		panic(panicNilRand)
	}

	return func(o *Options) { o.rng = rng }
}

// WithSeed seeds a private random source for initialization.
func WithSeed(seed int64) Option {
	return func(o *Options) { o.seed = seed }
}

// WithActivations sets one activation per parameterized layer, in order.
// New rejects a list whose length is not len(dimensions)-1.
func WithActivations(acts ...Activation) Option {
	cp := append([]Activation(nil), acts...)

	return func(o *Options) { o.activations = cp }
}

// WithOutputActivation overrides the activation of the last layer only.
func WithOutputActivation(a Activation) Option {
	return func(o *Options) { o.output, o.hasOutput = a, true }
}

func checkRange(min, max float64) {
	if math.IsNaN(min) || math.IsNaN(max) || math.IsInf(min, 0) || math.IsInf(max, 0) || min >= max {
		panic(panicRangeInvalid)
	}
}

// gatherOptions applies user setters over the defaults (last writer wins).
func gatherOptions(user ...Option) Options {
	o := Options{
		weightMin: DefaultWeightMin,
		weightMax: DefaultWeightMax,
		biasMin:   DefaultBiasMin,
		biasMax:   DefaultBiasMax,
		seed:      DefaultSeed,
	}
	for _, set := range user {
		set(&o)
	}
	if o.rng == nil {
		o.rng = rand.New(rand.NewSource(o.seed))
	}

	return o
}

// resolveActivations expands the options into exactly layers activations.
func (o Options) resolveActivations(layers int) ([]Activation, error) {
	acts := make([]Activation, layers)
	for i := range acts {
		acts[i] = DefaultActivation
	}
	if len(o.activations) > 0 {
		if len(o.activations) != layers {
			return nil, ErrBadActivation
		}
		copy(acts, o.activations)
	}
	if o.hasOutput {
		acts[layers-1] = o.output
	}
	for _, a := range acts {
		if !a.valid() {
			return nil, ErrBadActivation
		}
	}

	return acts, nil
}
