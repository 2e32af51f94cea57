package optim

import (
	"math"

	"github.com/adaopt-ml/adaopt/internal/nn"
	"github.com/adaopt-ml/adaopt/internal/parallel"
	"github.com/adaopt-ml/adaopt/internal/tensor"
)

// Yogi implements adaptive moment estimation with a sign-corrected, additive
// second-moment update.
//
// Instead of the multiplicative EMA, the second moment moves by a fixed
// fraction of the squared gradient, signed by whether the accumulator
// currently overshoots or undershoots the observation:
//
//	m_t     = beta1*m_{t-1} + (1-beta1)*grad
//	v_t     = v_{t-1} - (1-beta2) * sign(v_{t-1} - grad^2) * grad^2
//	denom   = sqrt(v_t)/sqrt(1-beta2^t) + eps
//	param  -= lr/(1-beta1^t) * m_t / denom
//
// This controls the accumulator's growth rate more conservatively than the
// EMA, improving stability on some objectives.
//
// Reference: "Adaptive Methods for Nonconvex Optimization" (Zaheer et al.,
// NeurIPS 2018).
type Yogi struct {
	groups []*yogiGroup
	states *stateStore
	par    parallel.Config
}

type yogiGroup struct {
	groupMeta
	cfg YogiConfig
}

// YogiConfig holds the hyperparameters of one Yogi parameter group.
//
// Zero numeric fields fall back to the defaults below; boolean flags default
// to false. DefaultYogiConfig returns the conventional configuration with
// decoupled weight decay enabled.
type YogiConfig struct {
	LR                 float64    // Learning rate (default: 1e-2)
	Betas              [2]float64 // Moment decay rates (default: [0.9, 0.999])
	InitialAccumulator float64    // Seed value for both moment accumulators (default: 1e-6)
	Eps                float64    // Term added to the denominator (default: 1e-3)
	WeightDecay        float64    // L2 / decoupled penalty strength (default: 0)
	WeightDecouple     bool       // Apply decay as direct multiplicative shrinkage (AdamW style)
	FixedDecay         bool       // Do not scale decoupled decay by the learning rate
	AdamDebias         bool       // Skip the bias-correction-1 division of the step size
	Maximize           bool       // Ascend the objective instead of descending
}

// DefaultYogiConfig returns the conventional Yogi configuration.
func DefaultYogiConfig() YogiConfig {
	return YogiConfig{
		LR:                 1e-2,
		Betas:              [2]float64{0.9, 0.999},
		InitialAccumulator: 1e-6,
		Eps:                1e-3,
		WeightDecouple:     true,
	}
}

// YogiGroup pairs an ordered parameter set with its group configuration.
type YogiGroup struct {
	Params []*nn.Parameter
	Config YogiConfig
}

// NewYogi creates a Yogi optimizer over a single parameter group.
func NewYogi(params []*nn.Parameter, cfg YogiConfig) (*Yogi, error) {
	return NewYogiGroups([]YogiGroup{{Params: params, Config: cfg}})
}

// NewYogiGroups creates a Yogi optimizer over explicit parameter groups,
// each with an independent hyperparameter set and step counter.
func NewYogiGroups(groups []YogiGroup) (*Yogi, error) {
	paramSets := make([][]*nn.Parameter, len(groups))
	for i, g := range groups {
		paramSets[i] = g.Params
	}
	metas, n := assignHandles(paramSets)

	o := &Yogi{
		groups: make([]*yogiGroup, len(groups)),
		states: newStateStore(n),
		par:    parallel.DefaultConfig(),
	}
	for i, g := range groups {
		cfg := g.Config
		if cfg.LR == 0 {
			cfg.LR = 1e-2
		}
		if cfg.Betas[0] == 0 {
			cfg.Betas[0] = 0.9
		}
		if cfg.Betas[1] == 0 {
			cfg.Betas[1] = 0.999
		}
		if cfg.InitialAccumulator == 0 {
			cfg.InitialAccumulator = 1e-6
		}
		if cfg.Eps == 0 {
			cfg.Eps = 1e-3
		}
		if err := validateYogiConfig(cfg); err != nil {
			return nil, err
		}
		meta := metas[i]
		meta.baseLR = cfg.LR
		o.groups[i] = &yogiGroup{groupMeta: meta, cfg: cfg}
	}
	return o, nil
}

func validateYogiConfig(cfg YogiConfig) error {
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
	return validateNonNegative(cfg.InitialAccumulator, "initial_accumulator")
}

// String returns the algorithm name.
func (o *Yogi) String() string { return "Yogi" }

// Step performs a single optimization step.
//
// If closure is non-nil it is invoked first to recompute the loss and
// gradients, and its loss is returned. A sparse-layout gradient aborts the
// step with a SparseGradientError; parameters updated before the offending
// one stay updated.
func (o *Yogi) Step(closure Closure) (float64, error) {
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

		stepSize := adamDebiasStepSize(g.cfg.AdamDebias, g.cfg.LR, biasCorrection1)

		for i, p := range g.params {
			grad := p.Grad()
			if grad == nil {
				continue
			}
			if grad.IsSparse() {
				return 0, sparseGradient(o.String(), p.Name())
			}

			st := o.states.getOrCreate(g.handles[i], p.Value().Shape(), g.cfg.InitialAccumulator, false)

			negateIfMaximize(grad, g.cfg.Maximize)
			applyWeightDecay(p, grad, g.cfg.LR, g.cfg.WeightDecay, g.cfg.WeightDecouple, g.cfg.FixedDecay)

			st.expAvg.Scale(beta1)
			st.expAvg.AddScaled(1.0-beta1, grad)

			m := st.expAvg.Data()
			v := st.expAvgSq.Data()
			gd := grad.Data()
			eps := g.cfg.Eps
			pd := p.Value().Data()
			parallel.For(len(pd), func(j int) {
				gradSq := gd[j] * gd[j]
				v[j] -= (1.0 - beta2) * tensor.Sign(v[j]-gradSq) * gradSq
				// The signed increment can in principle drive the
				// accumulator negative; the stored value is kept exact and
				// only the denominator clamps before the square root.
				denom := math.Sqrt(math.Max(v[j], 0))/biasCorrection2Sq + eps
				pd[j] -= stepSize * m[j] / denom
			}, o.par)
		}
	}
	return loss, nil
}

// Reset reinitializes all per-parameter state and step counters without
// altering group hyperparameters.
func (o *Yogi) Reset() {
	o.states.reset()
	for _, g := range o.groups {
		g.step = 0
	}
}

// GetLR returns the current learning rate of the first group.
func (o *Yogi) GetLR() float64 {
	return o.groups[0].cfg.LR
}

// SetLR updates the learning rate of every group without resetting counters
// or state.
func (o *Yogi) SetLR(lr float64) {
	for _, g := range o.groups {
		g.cfg.LR = lr
	}
}

// GroupLR returns the learning rate of group i.
func (o *Yogi) GroupLR(i int) float64 {
	return o.groups[i].cfg.LR
}

// SetGroupLR updates the learning rate of group i.
func (o *Yogi) SetGroupLR(i int, lr float64) {
	o.groups[i].cfg.LR = lr
}

// Timestep returns the step counter of the first group.
func (o *Yogi) Timestep() int {
	return o.groups[0].step
}
