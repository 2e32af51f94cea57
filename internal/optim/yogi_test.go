package optim_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/adaopt-ml/adaopt/internal/nn"
	"github.com/adaopt-ml/adaopt/internal/optim"
	"github.com/adaopt-ml/adaopt/internal/tensor"
)

func TestYogi_SingleStep(t *testing.T) {
	p := scalarParam(t, "x", 1.0)
	opt, err := optim.NewYogi([]*nn.Parameter{p}, optim.YogiConfig{})
	require.NoError(t, err)

	setScalarGrad(t, p, 1.0)
	_, err = opt.Step(nil)
	require.NoError(t, err)

	// Defaults: lr 1e-2, betas (0.9, 0.999), initial accumulator 1e-6,
	// eps 1e-3. m = 1e-6*0.9 + 0.1, v = 1e-6 + 0.001.
	require.InDelta(t, 0.9900148864, p.Value().Data()[0], 1e-9)
	require.Equal(t, 1, opt.Timestep())
}

func TestYogi_MaximizeAscends(t *testing.T) {
	p := scalarParam(t, "x", 1.0)
	opt, err := optim.NewYogi([]*nn.Parameter{p}, optim.YogiConfig{Maximize: true})
	require.NoError(t, err)

	setScalarGrad(t, p, 1.0)
	_, err = opt.Step(nil)
	require.NoError(t, err)
	require.Greater(t, p.Value().Data()[0], 1.0)

	// The gradient tensor is negated in place rather than copied.
	require.Equal(t, -1.0, p.Grad().Data()[0])
}

func TestYogi_DecoupledFixedDecay(t *testing.T) {
	p := scalarParam(t, "x", 2.0)
	opt, err := optim.NewYogi([]*nn.Parameter{p}, optim.YogiConfig{
		WeightDecay:    0.1,
		WeightDecouple: true,
		FixedDecay:     true,
	})
	require.NoError(t, err)

	// With a zero gradient the update reduces to the multiplicative shrink
	// plus a tiny drift from the seeded first-moment accumulator.
	setScalarGrad(t, p, 0.0)
	_, err = opt.Step(nil)
	require.NoError(t, err)
	require.InDelta(t, 1.8, p.Value().Data()[0], 1e-5)
	require.Less(t, p.Value().Data()[0], 1.8)
}

func TestYogi_SparseGradientRejected(t *testing.T) {
	p := scalarParam(t, "embedding", 1.0)
	opt, err := optim.NewYogi([]*nn.Parameter{p}, optim.YogiConfig{})
	require.NoError(t, err)

	g, err := tensor.NewSparseCOO(tensor.Shape{1}, []int{0}, []float64{1.0})
	require.NoError(t, err)
	p.SetGrad(g)

	_, err = opt.Step(nil)
	require.Error(t, err)
	require.ErrorIs(t, err, optim.ErrSparseGradient)

	var sgErr *optim.SparseGradientError
	require.ErrorAs(t, err, &sgErr)
	require.Equal(t, "Yogi", sgErr.Optimizer)
	require.Equal(t, "embedding", sgErr.Param)
	require.Equal(t, 1.0, p.Value().Data()[0])
}

func TestYogi_MissingGradientSkipsParameter(t *testing.T) {
	p := scalarParam(t, "x", 1.0)
	opt, err := optim.NewYogi([]*nn.Parameter{p}, optim.YogiConfig{})
	require.NoError(t, err)

	_, err = opt.Step(nil)
	require.NoError(t, err)
	require.Equal(t, 1.0, p.Value().Data()[0])
	require.Equal(t, 1, opt.Timestep())
}

func TestYogi_ClosureLossPropagates(t *testing.T) {
	p := scalarParam(t, "x", 1.0)
	opt, err := optim.NewYogi([]*nn.Parameter{p}, optim.YogiConfig{})
	require.NoError(t, err)

	loss, err := opt.Step(func() (float64, error) {
		setScalarGrad(t, p, 1.0)
		return 7.5, nil
	})
	require.NoError(t, err)
	require.Equal(t, 7.5, loss)

	closureErr := errors.New("forward pass failed")
	before := p.Value().Data()[0]
	_, err = opt.Step(func() (float64, error) { return 0, closureErr })
	require.ErrorIs(t, err, closureErr)
	require.Equal(t, before, p.Value().Data()[0])
}

func TestYogi_Reset(t *testing.T) {
	p := scalarParam(t, "x", 1.0)
	opt, err := optim.NewYogi([]*nn.Parameter{p}, optim.YogiConfig{})
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		setScalarGrad(t, p, 1.0)
		_, err = opt.Step(nil)
		require.NoError(t, err)
	}
	require.Equal(t, 5, opt.Timestep())

	opt.Reset()
	require.Equal(t, 0, opt.Timestep())

	fresh := scalarParam(t, "y", p.Value().Data()[0])
	freshOpt, err := optim.NewYogi([]*nn.Parameter{fresh}, optim.YogiConfig{})
	require.NoError(t, err)

	setScalarGrad(t, p, 1.0)
	setScalarGrad(t, fresh, 1.0)
	_, err = opt.Step(nil)
	require.NoError(t, err)
	_, err = freshOpt.Step(nil)
	require.NoError(t, err)
	require.InDelta(t, fresh.Value().Data()[0], p.Value().Data()[0], 1e-15)
}

func TestYogi_InvalidHyperparameters(t *testing.T) {
	cases := []struct {
		name string
		cfg  optim.YogiConfig
	}{
		{"lr", optim.YogiConfig{LR: -1}},
		{"betas[0]", optim.YogiConfig{Betas: [2]float64{1.0, 0.999}}},
		{"betas[1]", optim.YogiConfig{Betas: [2]float64{0.9, 1.5}}},
		{"eps", optim.YogiConfig{Eps: -1e-3}},
		{"weight_decay", optim.YogiConfig{WeightDecay: -0.1}},
		{"initial_accumulator", optim.YogiConfig{InitialAccumulator: -1e-6}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := scalarParam(t, "x", 1.0)
			_, err := optim.NewYogi([]*nn.Parameter{p}, tc.cfg)
			require.Error(t, err)
			require.ErrorIs(t, err, optim.ErrInvalidHyperparameter)

			var hpErr *optim.HyperparameterError
			require.ErrorAs(t, err, &hpErr)
			require.Equal(t, tc.name, hpErr.Name)
		})
	}
}

func TestYogi_GroupsAreIndependent(t *testing.T) {
	a := scalarParam(t, "a", 1.0)
	b := scalarParam(t, "b", 1.0)
	opt, err := optim.NewYogiGroups([]optim.YogiGroup{
		{Params: []*nn.Parameter{a}, Config: optim.YogiConfig{LR: 1e-3}},
		{Params: []*nn.Parameter{b}, Config: optim.YogiConfig{LR: 1e-1}},
	})
	require.NoError(t, err)

	setScalarGrad(t, a, 1.0)
	setScalarGrad(t, b, 1.0)
	_, err = opt.Step(nil)
	require.NoError(t, err)
	require.Greater(t, 1.0-b.Value().Data()[0], 1.0-a.Value().Data()[0])

	opt.SetGroupLR(0, 0.5)
	require.Equal(t, 0.5, opt.GroupLR(0))
	require.Equal(t, 1e-1, opt.GroupLR(1))
}

func TestYogi_QuadraticConvergence(t *testing.T) {
	p := scalarParam(t, "x", 3.0)
	opt, err := optim.NewYogi([]*nn.Parameter{p}, optim.YogiConfig{LR: 0.1})
	require.NoError(t, err)

	// f(x) = x^2, df/dx = 2x.
	for i := 0; i < 500; i++ {
		setScalarGrad(t, p, 2.0*p.Value().Data()[0])
		_, err = opt.Step(nil)
		require.NoError(t, err)
	}
	require.Less(t, math.Abs(p.Value().Data()[0]), 1e-6)
}
