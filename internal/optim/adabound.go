package optim

import (
	"math"

	"github.com/adaopt-ml/adaopt/internal/nn"
	"github.com/adaopt-ml/adaopt/internal/parallel"
	"github.com/adaopt-ml/adaopt/internal/tensor"
)

// AdaBound implements adaptive moment estimation with a dynamic bound on the
// effective per-element step size.
//
// The bound interval [lower, upper] is recomputed every step and converges
// toward a fixed final learning rate as training progresses, which prevents
// unbounded adaptive step sizes late in training:
//
//	m_t     = beta1*m_{t-1} + (1-beta1)*grad
//	v_t     = beta2*v_{t-1} + (1-beta2)*grad^2
//	denom   = sqrt(v_t + eps)            (sqrt(max_v_t + eps) with AMS-bound)
//	step    = lr * sqrt(1-beta2^t) / (1-beta1^t)
//	update  = clamp(step/denom, lower_t, upper_t) * m_t
//	param  -= update
//
// Reference: "Adaptive Gradient Methods with Dynamic Bound of Learning Rate"
// (Luo et al., 2019).
type AdaBound struct {
	groups []*adaBoundGroup
	states *stateStore
	par    parallel.Config
}

type adaBoundGroup struct {
	groupMeta
	cfg AdaBoundConfig
}

// AdaBoundConfig holds the hyperparameters of one AdaBound parameter group.
//
// Zero numeric fields fall back to the defaults below; boolean flags default
// to false. DefaultAdaBoundConfig returns the conventional configuration with
// decoupled weight decay enabled.
type AdaBoundConfig struct {
	LR             float64    // Learning rate (default: 1e-3)
	FinalLR        float64    // Final (SGD-like) learning rate the bounds converge to (default: 0.1)
	Betas          [2]float64 // Moment decay rates (default: [0.9, 0.999])
	Gamma          float64    // Convergence speed of the bound functions, must be > 0 (default: 1e-3)
	Eps            float64    // Term added under the square root for numerical stability (default: 1e-8)
	WeightDecay    float64    // L2 / decoupled penalty strength (default: 0)
	WeightDecouple bool       // Apply decay as direct multiplicative shrinkage (AdamW style)
	FixedDecay     bool       // Do not scale decoupled decay by the learning rate
	AMSBound       bool       // Track the running max of the second moment
	AdamDebias     bool       // Skip the bias-correction-1 division of the step size
	Maximize       bool       // Ascend the objective instead of descending
}

// DefaultAdaBoundConfig returns the conventional AdaBound configuration.
func DefaultAdaBoundConfig() AdaBoundConfig {
	return AdaBoundConfig{
		LR:             1e-3,
		FinalLR:        0.1,
		Betas:          [2]float64{0.9, 0.999},
		Gamma:          1e-3,
		Eps:            1e-8,
		WeightDecouple: true,
	}
}

// AdaBoundGroup pairs an ordered parameter set with its group configuration.
type AdaBoundGroup struct {
	Params []*nn.Parameter
	Config AdaBoundConfig
}

// NewAdaBound creates an AdaBound optimizer over a single parameter group.
func NewAdaBound(params []*nn.Parameter, cfg AdaBoundConfig) (*AdaBound, error) {
	return NewAdaBoundGroups([]AdaBoundGroup{{Params: params, Config: cfg}})
}

// NewAdaBoundGroups creates an AdaBound optimizer over explicit parameter
// groups, each with an independent hyperparameter set and step counter.
func NewAdaBoundGroups(groups []AdaBoundGroup) (*AdaBound, error) {
	paramSets := make([][]*nn.Parameter, len(groups))
	for i, g := range groups {
		paramSets[i] = g.Params
	}
	metas, n := assignHandles(paramSets)

	o := &AdaBound{
		groups: make([]*adaBoundGroup, len(groups)),
		states: newStateStore(n),
		par:    parallel.DefaultConfig(),
	}
	for i, g := range groups {
		cfg := g.Config
		if cfg.LR == 0 {
			cfg.LR = 1e-3
		}
		if cfg.FinalLR == 0 {
			cfg.FinalLR = 0.1
		}
		if cfg.Betas[0] == 0 {
			cfg.Betas[0] = 0.9
		}
		if cfg.Betas[1] == 0 {
			cfg.Betas[1] = 0.999
		}
		if cfg.Gamma == 0 {
			cfg.Gamma = 1e-3
		}
		if cfg.Eps == 0 {
			cfg.Eps = 1e-8
		}
		if err := validateAdaBoundConfig(cfg); err != nil {
			return nil, err
		}
		meta := metas[i]
		meta.baseLR = cfg.LR
		o.groups[i] = &adaBoundGroup{groupMeta: meta, cfg: cfg}
	}
	return o, nil
}

func validateAdaBoundConfig(cfg AdaBoundConfig) error {
	if err := validateLearningRate(cfg.LR); err != nil {
		return err
	}
	if err := validateBetas(cfg.Betas); err != nil {
		return err
	}
	if err := validateNonNegative(cfg.WeightDecay, "weight_decay"); err != nil {
		return err
	}
	if err := validateNonNegative(cfg.Eps, "eps"); err != nil {
		return err
	}
	if err := validateNonNegative(cfg.FinalLR, "final_lr"); err != nil {
		return err
	}
	// gamma*t and gamma*t+1 must stay positive for all t >= 1.
	return validatePositive(cfg.Gamma, "gamma")
}

// String returns the algorithm name.
func (o *AdaBound) String() string { return "AdaBound" }

// rescaledFinalLR rescales the bound target when an external schedule has
// changed the group's learning rate since construction.
func rescaledFinalLR(finalLR, lr, baseLR float64) float64 {
	return finalLR * lr / baseLR
}

// stepBounds returns the clamp interval for step t (1-indexed). Both bounds
// approach finalLR monotonically as t grows: the lower bound from below, the
// upper bound from above.
func stepBounds(finalLR, gamma float64, step int) (lower, upper float64) {
	t := float64(step)
	lower = finalLR * (1.0 - 1.0/(gamma*t+1.0))
	upper = finalLR * (1.0 + 1.0/(gamma*t))
	return lower, upper
}

// Step performs a single optimization step.
//
// If closure is non-nil it is invoked first to recompute the loss and
// gradients, and its loss is returned. A sparse-layout gradient aborts the
// step with a SparseGradientError; parameters updated before the offending
// one stay updated.
func (o *AdaBound) Step(closure Closure) (float64, error) {
	var loss float64
	if closure != nil {
		l, err := closure()
		if err != nil {
			return 0, err
		}
		loss = l
	}

	for _, g := range o.groups {
		g.step++

		beta1, beta2 := g.cfg.Betas[0], g.cfg.Betas[1]
		biasCorrection1 := debias(beta1, g.step)
		biasCorrection2Sq := math.Sqrt(debias(beta2, g.step))

		finalLR := rescaledFinalLR(g.cfg.FinalLR, g.cfg.LR, g.baseLR)
		lower, upper := stepBounds(finalLR, g.cfg.Gamma, g.step)

		stepSize := adamDebiasStepSize(g.cfg.AdamDebias, g.cfg.LR*biasCorrection2Sq, biasCorrection1)

		direction := -1.0
		if g.cfg.Maximize {
			direction = 1.0
		}

		for i, p := range g.params {
			grad := p.Grad()
			if grad == nil {
				continue
			}
			if grad.IsSparse() {
				return 0, sparseGradient(o.String(), p.Name())
			}

			st := o.states.getOrCreate(g.handles[i], p.Value().Shape(), 0, g.cfg.AMSBound)

			applyWeightDecay(p, grad, g.cfg.LR, g.cfg.WeightDecay, g.cfg.WeightDecouple, g.cfg.FixedDecay)

			st.expAvg.Scale(beta1)
			st.expAvg.AddScaled(1.0-beta1, grad)
			st.expAvgSq.Scale(beta2)
			st.expAvgSq.AddScaledMul(1.0-beta2, grad, grad)

			sq := st.expAvgSq
			if g.cfg.AMSBound {
				st.maxExpAvgSq.MaxOf(st.expAvgSq)
				sq = st.maxExpAvgSq
			}

			m := st.expAvg.Data()
			v := sq.Data()
			pd := p.Value().Data()
			eps := g.cfg.Eps
			parallel.For(len(pd), func(j int) {
				denom := math.Sqrt(v[j] + eps)
				pd[j] += direction * tensor.ClampScalar(stepSize/denom, lower, upper) * m[j]
			}, o.par)
		}
	}
	return loss, nil
}

// Reset reinitializes all per-parameter state and step counters without
// altering group hyperparameters.
func (o *AdaBound) Reset() {
	o.states.reset()
	for _, g := range o.groups {
		g.step = 0
	}
}

// GetLR returns the current learning rate of the first group.
func (o *AdaBound) GetLR() float64 {
	return o.groups[0].cfg.LR
}

// SetLR updates the learning rate of every group without resetting counters
// or state. The bound target rescales by lr/baseLR on the next step.
func (o *AdaBound) SetLR(lr float64) {
	for _, g := range o.groups {
		g.cfg.LR = lr
	}
}

// GroupLR returns the learning rate of group i.
func (o *AdaBound) GroupLR(i int) float64 {
	return o.groups[i].cfg.LR
}

// SetGroupLR updates the learning rate of group i.
func (o *AdaBound) SetGroupLR(i int, lr float64) {
	o.groups[i].cfg.LR = lr
}

// Timestep returns the step counter of the first group.
func (o *AdaBound) Timestep() int {
	return o.groups[0].step
}
