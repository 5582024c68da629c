package network_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvnet/matrix"
	"github.com/katalvlaran/lvnet/network"
)

func TestNew_BadDimensions(t *testing.T) {
	t.Parallel()

	for _, dims := range [][]int{nil, {3}, {3, 0}, {2, -1, 2}} {
		_, err := network.New(dims)
		require.ErrorIs(t, err, network.ErrBadDimensions, "%v", dims)
	}
}

func TestNew_ShapesAndInitRanges(t *testing.T) {
	t.Parallel()

	net, err := network.New([]int{4, 3, 2})
	require.NoError(t, err)
	require.Equal(t, []int{4, 3, 2}, net.Dimensions())
	require.Equal(t, 3, net.Layers())
	require.Equal(t, 4, net.InputSize())
	require.Equal(t, 2, net.OutputSize())

	for i, shape := range [][2]int{{3, 4}, {2, 3}} {
		w, err := net.Weights(i)
		require.NoError(t, err)
		require.Equal(t, shape[0], w.Rows())
		require.Equal(t, shape[1], w.Cols())
		for _, v := range values(t, w) {
			require.GreaterOrEqual(t, v, network.DefaultWeightMin)
			require.Less(t, v, network.DefaultWeightMax)
		}

		b, err := net.Biases(i)
		require.NoError(t, err)
		require.Equal(t, shape[0], b.Rows())
		require.Equal(t, 1, b.Cols())
		for _, v := range values(t, b) {
			require.GreaterOrEqual(t, v, network.DefaultBiasMin)
			require.Less(t, v, network.DefaultBiasMax)
		}
	}

	for i, d := range []int{4, 3, 2} {
		nv, err := net.Neurons(i)
		require.NoError(t, err)
		require.Equal(t, make([]float64, d), values(t, nv))
	}

	_, err = net.Weights(2)
	require.ErrorIs(t, err, network.ErrLayerIndex)
	_, err = net.Neurons(-1)
	require.ErrorIs(t, err, network.ErrLayerIndex)
}

func TestNew_CustomRanges(t *testing.T) {
	t.Parallel()

	net, err := network.New([]int{2, 5},
		network.WithWeightRange(-1, -0.5),
		network.WithBiasRange(3, 4),
		network.WithRand(rand.New(rand.NewSource(9))),
	)
	require.NoError(t, err)

	w, _ := net.Weights(0)
	for _, v := range values(t, w) {
		require.True(t, v >= -1 && v < -0.5, "weight %v", v)
	}
	b, _ := net.Biases(0)
	for _, v := range values(t, b) {
		require.True(t, v >= 3 && v < 4, "bias %v", v)
	}
}

func TestOptions_Panics(t *testing.T) {
	t.Parallel()

	require.Panics(t, func() { network.WithWeightRange(1, 1) })
	require.Panics(t, func() { network.WithBiasRange(math.NaN(), 1) })
	require.Panics(t, func() { network.WithRand(nil) })
}

func TestNew_Activations(t *testing.T) {
	t.Parallel()

	net, err := network.New([]int{2, 3, 2})
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		a, err := net.Activation(i)
		require.NoError(t, err)
		require.Equal(t, network.ReLU, a)
	}

	net, err = network.New([]int{2, 3, 2}, network.WithOutputActivation(network.Identity))
	require.NoError(t, err)
	a, _ := net.Activation(0)
	require.Equal(t, network.ReLU, a)
	a, _ = net.Activation(1)
	require.Equal(t, network.Identity, a)

	_, err = network.New([]int{2, 3, 2}, network.WithActivations(network.Identity))
	require.ErrorIs(t, err, network.ErrBadActivation)
	_, err = network.New([]int{2, 2}, network.WithActivations(network.Activation(7)))
	require.ErrorIs(t, err, network.ErrBadActivation)
}

func TestParseActivation(t *testing.T) {
	t.Parallel()

	a, err := network.ParseActivation("relu")
	require.NoError(t, err)
	require.Equal(t, network.ReLU, a)
	a, err = network.ParseActivation("identity")
	require.NoError(t, err)
	require.Equal(t, "identity", a.String())
	_, err = network.ParseActivation("tanh")
	require.ErrorIs(t, err, network.ErrBadActivation)
}

// TestSeedDeterminism: zero training steps under a fixed seed reproduce the
// same parameters and the same forward output.
func TestSeedDeterminism(t *testing.T) {
	t.Parallel()

	x := col(t, 0.2, 0.4, 0.6)
	var outs [][]float64
	for k := 0; k < 2; k++ {
		net, err := network.New([]int{3, 4, 2}, network.WithSeed(17), network.WithWeightRange(-1, 1))
		require.NoError(t, err)
		out, err := net.Forward(x)
		require.NoError(t, err)
		outs = append(outs, values(t, out))
	}
	require.Equal(t, outs[0], outs[1])

	a, _ := network.New([]int{3, 2})
	b, _ := network.New([]int{3, 2})
	wa, _ := a.Weights(0)
	wb, _ := b.Weights(0)
	require.Equal(t, values(t, wa), values(t, wb), "default seed is fixed")

	c, _ := network.New([]int{3, 2}, network.WithSeed(99))
	wc, _ := c.Weights(0)
	require.NotEqual(t, values(t, wa), values(t, wc))
}

func TestSetParameters_ShapeChecked(t *testing.T) {
	t.Parallel()

	net, err := network.New([]int{3, 2})
	require.NoError(t, err)

	require.ErrorIs(t, net.SetWeights(0, rows(t, [][]float64{{1, 2}, {3, 4}})), network.ErrDimensionMismatch)
	require.ErrorIs(t, net.SetBiases(0, col(t, 1, 2, 3)), matrix.ErrDimensionMismatch)
	require.ErrorIs(t, net.SetWeights(1, rows(t, [][]float64{{1}})), network.ErrLayerIndex)
	require.ErrorIs(t, net.SetBiases(0, nil), matrix.ErrNilMatrix)

	w := rows(t, [][]float64{{1, 2, 3}, {4, 5, 6}})
	require.NoError(t, net.SetWeights(0, w))
	require.NoError(t, w.Set(0, 0, 100)) // caller's copy is detached
	got, _ := net.Weights(0)
	require.Equal(t, []float64{1, 2, 3, 4, 5, 6}, values(t, got))
}

func TestForward_ComputesLayers(t *testing.T) {
	t.Parallel()

	net, err := network.New([]int{2, 2, 1})
	require.NoError(t, err)
	require.NoError(t, net.SetWeights(0, rows(t, [][]float64{{1, -1}, {2, 1}})))
	require.NoError(t, net.SetBiases(0, col(t, 0, -1)))
	require.NoError(t, net.SetWeights(1, rows(t, [][]float64{{3, 0.5}})))
	require.NoError(t, net.SetBiases(1, col(t, 0.25)))

	// hidden pre-activation: [1-2, 2+2-1] = [-1, 3] → relu [0, 3]
	// output: 3*0 + 0.5*3 + 0.25 = 1.75
	out, err := net.Forward(col(t, 1, 2))
	require.NoError(t, err)
	require.Equal(t, []float64{1.75}, values(t, out))

	h, err := net.Neurons(1)
	require.NoError(t, err)
	require.Equal(t, []float64{0, 3}, values(t, h))
	in, _ := net.Neurons(0)
	require.Equal(t, []float64{1, 2}, values(t, in))

	k, err := net.Predict(col(t, 1, 2))
	require.NoError(t, err)
	require.Equal(t, 0, k)
}

func TestForward_WrongInput(t *testing.T) {
	t.Parallel()

	net, err := network.New([]int{3, 2})
	require.NoError(t, err)

	_, err = net.Forward(col(t, 1, 2))
	require.ErrorIs(t, err, network.ErrDimensionMismatch)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, err = net.Forward(rows(t, [][]float64{{1, 2, 3}}))
	require.ErrorIs(t, err, matrix.ErrNotVector)

	_, err = net.ForwardTrace(nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

// TestForward_OverflowRejected: an overflowing activation is an error and
// leaves the stored pass untouched.
func TestForward_OverflowRejected(t *testing.T) {
	t.Parallel()

	net, err := network.New([]int{1, 1, 1}, network.WithOutputActivation(network.Identity))
	require.NoError(t, err)
	require.NoError(t, net.SetWeights(0, col(t, 1e200)))
	require.NoError(t, net.SetWeights(1, col(t, 1e200)))

	_, err = net.Forward(col(t, 1e200))
	require.ErrorIs(t, err, matrix.ErrNaNInf)
	require.ErrorIs(t, net.Backward(col(t, 0), 0.1), network.ErrNoForward)

	// second layer overflows: 1e200·1e200
	_, err = net.Forward(col(t, 1))
	require.ErrorIs(t, err, matrix.ErrNaNInf)
	_, err = net.ForwardTrace(col(t, 1))
	require.ErrorIs(t, err, matrix.ErrNaNInf)

	require.NoError(t, net.SetWeights(1, col(t, 1e-200)))
	out, err := net.Forward(col(t, 1))
	require.NoError(t, err)
	before := values(t, out)
	require.NoError(t, net.SetWeights(1, col(t, 1e200)))
	_, err = net.Forward(col(t, 1))
	require.ErrorIs(t, err, matrix.ErrNaNInf)
	last, err := net.Neurons(2)
	require.NoError(t, err)
	require.Equal(t, before, values(t, last))
}

// TestLossDerivative_Example: output [0.5, 0.2] against target [1, 0].
func TestLossDerivative_Example(t *testing.T) {
	t.Parallel()

	net, err := network.New([]int{1, 2}, network.WithOutputActivation(network.Identity))
	require.NoError(t, err)
	require.NoError(t, net.SetWeights(0, col(t, 0, 0)))
	require.NoError(t, net.SetBiases(0, col(t, 0.5, 0.2)))

	_, err = net.Forward(col(t, 1))
	require.NoError(t, err)

	target := col(t, 1, 0)
	g, err := net.LossDerivative(target)
	require.NoError(t, err)
	got := values(t, g)
	require.InDelta(t, -1.0, got[0], 1e-12)
	require.InDelta(t, 0.4, got[1], 1e-12)

	loss, err := net.Loss(target)
	require.NoError(t, err)
	require.InDelta(t, 0.29, loss, 1e-12)

	_, err = net.Loss(col(t, 1, 0, 0))
	require.ErrorIs(t, err, network.ErrDimensionMismatch)
}

func TestBackward_BeforeForward(t *testing.T) {
	t.Parallel()

	net, err := network.New([]int{3, 2})
	require.NoError(t, err)
	require.ErrorIs(t, net.Backward(col(t, 1, 0), 0.02), network.ErrNoForward)
}

func TestBackward_BadArguments(t *testing.T) {
	t.Parallel()

	net, err := network.New([]int{3, 2})
	require.NoError(t, err)
	_, err = net.Forward(col(t, 1, 0, 0))
	require.NoError(t, err)

	require.ErrorIs(t, net.Backward(col(t, 1, 0, 0), 0.02), network.ErrDimensionMismatch)
	require.ErrorIs(t, net.Backward(col(t, 1, 0), math.NaN()), network.ErrLearningRate)
	require.ErrorIs(t, net.BackwardTrace(nil, col(t, 1, 0), 0.02), network.ErrNilTrace)

	other, err := network.New([]int{3, 4, 2})
	require.NoError(t, err)
	tr, err := other.ForwardTrace(col(t, 1, 0, 0))
	require.NoError(t, err)
	require.ErrorIs(t, net.BackwardTrace(tr, col(t, 1, 0), 0.02), network.ErrDimensionMismatch)
}

// TestBackward_SingleStep checks one update by hand on a [3, 2] network whose
// outputs are all active: o = W·e0 + b, so each output moves by -lr·2(o−t)·2.
func TestBackward_SingleStep(t *testing.T) {
	t.Parallel()

	net := fixedNet(t)
	x, target := col(t, 1, 0, 0), col(t, 1, 0)

	out, err := net.Forward(x)
	require.NoError(t, err)
	require.InDeltaSlice(t, []float64{0.15, 0.15}, values(t, out), 1e-12)

	require.NoError(t, net.Backward(target, 0.02))

	w, _ := net.Weights(0)
	// dL/dW[r][0] = 2(o_r − t_r); other columns see a zero input.
	require.InDeltaSlice(t, []float64{
		0.1 - 0.02*2*(0.15-1), 0.1, 0.1,
		0.1 - 0.02*2*0.15, 0.1, 0.1,
	}, values(t, w), 1e-12)

	b, _ := net.Biases(0)
	require.InDeltaSlice(t, []float64{0.05 - 0.02*2*(0.15-1), 0.05 - 0.02*2*0.15}, values(t, b), 1e-12)

	out, err = net.Forward(x)
	require.NoError(t, err)
	require.InDeltaSlice(t, []float64{0.15 + 0.08*0.85, 0.15 - 0.08*0.15}, values(t, out), 1e-12)
}

// TestBackward_LossStrictlyDecreases repeats forward/backward on one sample.
func TestBackward_LossStrictlyDecreases(t *testing.T) {
	t.Parallel()

	net := fixedNet(t)
	x, target := col(t, 1, 0, 0), col(t, 1, 0)

	prev := math.Inf(1)
	for step := 0; step < 50; step++ {
		_, err := net.Forward(x)
		require.NoError(t, err)
		loss, err := net.Loss(target)
		require.NoError(t, err)
		require.Less(t, loss, prev, "step %d", step)
		prev = loss
		require.NoError(t, net.Backward(target, 0.02))
	}
}

// TestTrace_MatchesStatefulPass: the explicit and stored-state passes update
// parameters identically, and ForwardTrace leaves stored neurons alone.
func TestTrace_MatchesStatefulPass(t *testing.T) {
	t.Parallel()

	opts := []network.Option{network.WithSeed(3), network.WithWeightRange(-0.5, 0.5), network.WithBiasRange(0, 0.1)}
	a, err := network.New([]int{3, 5, 4, 2}, opts...)
	require.NoError(t, err)
	b, err := network.New([]int{3, 5, 4, 2}, opts...)
	require.NoError(t, err)

	samples := [][2]*matrix.Dense{
		{col(t, 0.1, 0.9, 0.3), col(t, 1, 0)},
		{col(t, 0.7, 0.2, 0.5), col(t, 0, 1)},
		{col(t, 0.4, 0.4, 0.8), col(t, 1, 0)},
	}
	for round := 0; round < 5; round++ {
		for _, s := range samples {
			outA, err := a.Forward(s[0])
			require.NoError(t, err)
			require.NoError(t, a.Backward(s[1], 0.05))

			tr, err := b.ForwardTrace(s[0])
			require.NoError(t, err)
			require.Equal(t, 4, tr.Len())
			require.Equal(t, values(t, outA), values(t, tr.Output()))
			require.NoError(t, b.BackwardTrace(tr, s[1], 0.05))
		}
	}

	for i := 0; i < 3; i++ {
		wa, _ := a.Weights(i)
		wb, _ := b.Weights(i)
		require.Equal(t, values(t, wa), values(t, wb), "weights[%d]", i)
		ba, _ := a.Biases(i)
		bb, _ := b.Biases(i)
		require.Equal(t, values(t, ba), values(t, bb), "biases[%d]", i)
	}

	out, _ := b.Neurons(3)
	require.Equal(t, []float64{0, 0}, values(t, out), "ForwardTrace must not store activations")
}

func TestTrace_Accessors(t *testing.T) {
	t.Parallel()

	net := fixedNet(t)
	tr, err := net.ForwardTrace(col(t, 1, 0, 0))
	require.NoError(t, err)

	in, err := tr.Layer(0)
	require.NoError(t, err)
	require.Equal(t, []float64{1, 0, 0}, values(t, in))
	_, err = tr.Layer(2)
	require.ErrorIs(t, err, network.ErrLayerIndex)

	loss, err := tr.Loss(col(t, 1, 0))
	require.NoError(t, err)
	require.InDelta(t, 0.85*0.85+0.15*0.15, loss, 1e-12)

	g, err := tr.LossDerivative(col(t, 1, 0))
	require.NoError(t, err)
	require.InDeltaSlice(t, []float64{-1.7, 0.3}, values(t, g), 1e-12)
}

// fixedNet returns a [3, 2] network with W = 0.1 everywhere and b = 0.05.
func fixedNet(t *testing.T) *network.Network {
	t.Helper()
	net, err := network.New([]int{3, 2})
	require.NoError(t, err)
	require.NoError(t, net.SetWeights(0, rows(t, [][]float64{{0.1, 0.1, 0.1}, {0.1, 0.1, 0.1}})))
	require.NoError(t, net.SetBiases(0, col(t, 0.05, 0.05)))

	return net
}
