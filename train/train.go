// SPDX-License-Identifier: MIT

package train

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/katalvlaran/lvnet/dataset"
	"github.com/katalvlaran/lvnet/matrix"
	"github.com/katalvlaran/lvnet/network"
)

var (
	// ErrNoSamples is returned when the sample set is empty.
	ErrNoSamples = errors.New("train: no samples")

	// ErrNilNetwork is returned for a nil network.
	ErrNilNetwork = errors.New("train: nil network")

	// ErrBadConfig indicates negative epochs or a non-finite or negative learning rate.
	ErrBadConfig = errors.New("train: invalid config")
)

// EpochStats summarizes one pass over a sample set.
type EpochStats struct {
	Epoch    int // 1-based; 0 for Evaluate
	MeanLoss float64
	Correct  int
	Total    int
}

// Accuracy returns Correct/Total, or 0 for an empty pass.
func (s EpochStats) Accuracy() float64 {
	if s.Total == 0 {
		return 0
	}

	return float64(s.Correct) / float64(s.Total)
}

// String implements fmt.Stringer.
func (s EpochStats) String() string {
	return fmt.Sprintf("epoch %d: loss %.6f, accuracy %d/%d (%.2f%%)",
		s.Epoch, s.MeanLoss, s.Correct, s.Total, 100*s.Accuracy())
}

// Train runs cfg.Epochs passes of online SGD over samples and returns the
// statistics of every completed epoch.
//
// Implementation (per sample, in order):
//   - Forward(input), Loss(target), argmax(output) == Label,
//   - Backward(target, LearningRate).
//
// Errors:
//   - ErrNilNetwork, ErrNoSamples, ErrBadConfig.
//   - Any network error, tagged with epoch and sample index.
//   - cfg.Ctx.Err() when cancelled; the stats collected so far are returned
//     alongside it.
func Train(net *network.Network, samples []dataset.Sample, cfg Config) ([]EpochStats, error) {
	if net == nil {
		return nil, ErrNilNetwork
	}
	if len(samples) == 0 {
		return nil, ErrNoSamples
	}
	if cfg.Epochs < 0 || cfg.LearningRate < 0 || math.IsNaN(cfg.LearningRate) || math.IsInf(cfg.LearningRate, 0) {
		return nil, ErrBadConfig
	}
	cfg.normalize()

	history := make([]EpochStats, 0, cfg.Epochs)
	for epoch := 1; epoch <= cfg.Epochs; epoch++ {
		if err := cfg.Ctx.Err(); err != nil {
			return history, err
		}

		st := EpochStats{Epoch: epoch, Total: len(samples)}
		var sum float64
		for i, s := range samples {
			out, err := net.Forward(s.Input)
			if err != nil {
				return history, fmt.Errorf("train: epoch %d sample %d: %w", epoch, i, err)
			}
			loss, err := net.Loss(s.Target)
			if err != nil {
				return history, fmt.Errorf("train: epoch %d sample %d: %w", epoch, i, err)
			}
			sum += loss
			if k, err := matrix.ArgMax(out); err == nil && k == s.Label {
				st.Correct++
			}
			if err = net.Backward(s.Target, cfg.LearningRate); err != nil {
				return history, fmt.Errorf("train: epoch %d sample %d: %w", epoch, i, err)
			}
		}
		st.MeanLoss = sum / float64(len(samples))
		history = append(history, st)

		if cfg.Verbose && (epoch%cfg.LogEvery == 0 || epoch == cfg.Epochs) {
			cfg.logf("%v", st)
		}
		if cfg.OnEpoch != nil {
			cfg.OnEpoch(st)
		}
	}

	return history, nil
}

// Evaluate scores net on samples without updating it, using up to workers
// goroutines (GOMAXPROCS when workers <= 0).
//
// The result does not depend on the worker count: per-sample losses are
// gathered by index and summed in order.
func Evaluate(net *network.Network, samples []dataset.Sample, workers int) (EpochStats, error) {
	cfg := Config{Workers: workers}

	return evaluate(net, samples, &cfg)
}

// EvaluateContext is Evaluate with the worker count and cancellation taken
// from cfg.
func EvaluateContext(net *network.Network, samples []dataset.Sample, cfg Config) (EpochStats, error) {
	return evaluate(net, samples, &cfg)
}

func evaluate(net *network.Network, samples []dataset.Sample, cfg *Config) (EpochStats, error) {
	if net == nil {
		return EpochStats{}, ErrNilNetwork
	}
	if len(samples) == 0 {
		return EpochStats{}, ErrNoSamples
	}
	cfg.normalize()

	workers := cfg.Workers
	if workers > len(samples) {
		workers = len(samples)
	}

	losses := make([]float64, len(samples))
	hits := make([]bool, len(samples))
	errs := make([]error, len(samples))

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				losses[i], hits[i], errs[i] = score(net, samples[i])
			}
		}()
	}

	var cancelled error
	for i := range samples {
		if cancelled = cfg.Ctx.Err(); cancelled != nil {
			break
		}
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	if cancelled != nil {
		return EpochStats{}, cancelled
	}

	st := EpochStats{Total: len(samples)}
	var sum float64
	for i := range samples {
		if errs[i] != nil {
			return EpochStats{}, fmt.Errorf("train: evaluate sample %d: %w", i, errs[i])
		}
		sum += losses[i]
		if hits[i] {
			st.Correct++
		}
	}
	st.MeanLoss = sum / float64(len(samples))

	return st, nil
}

// score runs one read-only forward pass.
func score(net *network.Network, s dataset.Sample) (float64, bool, error) {
	tr, err := net.ForwardTrace(s.Input)
	if err != nil {
		return 0, false, err
	}
	loss, err := tr.Loss(s.Target)
	if err != nil {
		return 0, false, err
	}
	k, err := matrix.ArgMax(tr.Output())
	if err != nil {
		return 0, false, err
	}

	return loss, k == s.Label, nil
}
