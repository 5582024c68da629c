// SPDX-License-Identifier: MIT

package train

import (
	"context"
	"log"
	"runtime"
)

const (
	// DefaultEpochs is the number of passes over the training set.
	DefaultEpochs = 10000

	// DefaultLearningRate is the SGD step size.
	DefaultLearningRate = 0.02

	// DefaultLogEvery is the epoch cadence of progress lines when Verbose is set.
	DefaultLogEvery = 1000
)

// Config holds the hyperparameters and hooks of a training run.
// Zero values are replaced by the defaults.
type Config struct {
	// Epochs is the number of passes over the samples (default 10000).
	// Zero selects the default; callers that want no training skip Train.
	Epochs int
	// LearningRate is the gradient step size (default 0.02).
	LearningRate float64

	// Ctx cancels the run between epochs (default context.Background()).
	Ctx context.Context
	// Logger receives progress lines; nil means silent.
	Logger *log.Logger
	// Verbose enables a progress line every LogEvery epochs and on the last one.
	Verbose bool
	// LogEvery is the progress cadence in epochs (default 1000).
	LogEvery int

	// Workers bounds the goroutines used by Evaluate (default GOMAXPROCS).
	Workers int

	// OnEpoch, if set, is called after every epoch with its statistics.
	OnEpoch func(EpochStats)
}

// DefaultConfig returns a Config populated with the package defaults.
func DefaultConfig() Config {
	c := Config{}
	c.normalize()

	return c
}

// normalize fills zero fields with defaults.
func (c *Config) normalize() {
	if c.Epochs == 0 {
		c.Epochs = DefaultEpochs
	}
	if c.LearningRate == 0 {
		c.LearningRate = DefaultLearningRate
	}
	if c.Ctx == nil {
		c.Ctx = context.Background()
	}
	if c.LogEvery <= 0 {
		c.LogEvery = DefaultLogEvery
	}
	if c.Workers <= 0 {
		c.Workers = runtime.GOMAXPROCS(0)
	}
}

// logf writes a progress line when a logger is configured.
func (c *Config) logf(format string, args ...any) {
	if c.Logger != nil {
		c.Logger.Printf(format, args...)
	}
}
