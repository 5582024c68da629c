package main

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvnet/dataset"
	"github.com/katalvlaran/lvnet/network"
	"github.com/katalvlaran/lvnet/train"
)

func okFlags() flags {
	return flags{
		epochs:  train.DefaultEpochs,
		lr:      train.DefaultLearningRate,
		classes: dataset.DefaultClasses,
		scale:   dataset.DefaultScale,
	}
}

func TestFlags_Validate(t *testing.T) {
	t.Parallel()

	require.NoError(t, okFlags().validate())

	zero := okFlags()
	zero.epochs = 0
	require.NoError(t, zero.validate())

	cases := map[string]func(*flags){
		"negative epochs": func(f *flags) { f.epochs = -1 },
		"zero lr":         func(f *flags) { f.lr = 0 },
		"negative lr":     func(f *flags) { f.lr = -0.1 },
		"nan lr":          func(f *flags) { f.lr = math.NaN() },
		"inf lr":          func(f *flags) { f.lr = math.Inf(1) },
		"zero classes":    func(f *flags) { f.classes = 0 },
		"zero scale":      func(f *flags) { f.scale = 0 },
		"negative max":    func(f *flags) { f.max = -1 },
	}
	for name, mutate := range cases {
		mutate := mutate
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			f := okFlags()
			mutate(&f)
			require.Error(t, f.validate())
		})
	}
}

func TestFit_ZeroEpochsLeavesNetwork(t *testing.T) {
	t.Parallel()

	net, err := network.New([]int{3, 2}, network.WithSeed(3))
	require.NoError(t, err)
	before, err := net.Weights(0)
	require.NoError(t, err)

	hist, err := fit(net, dataset.Toy(), train.Config{Epochs: 0, LearningRate: 0.02})
	require.NoError(t, err)
	require.Empty(t, hist)

	after, err := net.Weights(0)
	require.NoError(t, err)
	require.Equal(t, before, after)

	hist, err = fit(net, dataset.Toy(), train.Config{Epochs: 2, LearningRate: 0.02})
	require.NoError(t, err)
	require.Len(t, hist, 2)
}

func TestParseDims(t *testing.T) {
	t.Parallel()

	dims, err := parseDims("784, 64,10")
	require.NoError(t, err)
	require.Equal(t, []int{784, 64, 10}, dims)

	_, err = parseDims("3,x")
	require.Error(t, err)
}
