// SPDX-License-Identifier: MIT

package dataset

import "math"

const (
	// DefaultClasses is the number of target classes (digits 0..9).
	DefaultClasses = 10

	// DefaultScale divides every raw value.
	DefaultScale = 256.0
)

const (
	panicClassesInvalid = "dataset: WithClasses: classes must be > 0"
	panicScaleInvalid   = "dataset: WithScale: scale must be finite and > 0"
	panicMaxInvalid     = "dataset: WithMaxSamples: n must be >= 0"
)

// Option configures CSV parsing.
type Option func(*Options)

// Options is the resolved parsing configuration.
type Options struct {
	classes    int
	scale      float64
	header     bool
	maxSamples int // 0 = unlimited
}

// WithClasses sets the number of classes and so the length of every target.
func WithClasses(n int) Option {
	if n <= 0 {
		panic(panicClassesInvalid)
	}

	return func(o *Options) { o.classes = n }
}

// WithScale sets the divisor applied to every value.
func WithScale(s float64) Option {
	if s <= 0 || math.IsNaN(s) || math.IsInf(s, 0) {
		panic(panicScaleInvalid)
	}

	return func(o *Options) { o.scale = s }
}

// WithHeader skips the first row.
func WithHeader() Option {
	return func(o *Options) { o.header = true }
}

// WithMaxSamples stops after n samples. Zero means no limit.
func WithMaxSamples(n int) Option {
	if n < 0 {
		panic(panicMaxInvalid)
	}

	return func(o *Options) { o.maxSamples = n }
}

func gatherOptions(user ...Option) Options {
	o := Options{classes: DefaultClasses, scale: DefaultScale}
	for _, set := range user {
		set(&o)
	}

	return o
}
