package optim

import (
	"math"

	"github.com/adaopt-ml/adaopt/internal/nn"
	"github.com/adaopt-ml/adaopt/internal/tensor"
)

// Shared update-rule policies. These are free functions taking explicit
// arguments so the two optimizer variants can compose them without any
// inheritance between the types.

// debias returns the bias-correction factor 1 - beta^step, compensating for
// zero-initialized moment accumulators being biased toward zero early on.
func debias(beta float64, step int) float64 {
	return 1.0 - math.Pow(beta, float64(step))
}

// adamDebiasStepSize divides stepSize by biasCorrection1 unless adamDebias
// asks to skip that correction (debias-only mode leaves the denominator
// corrected but avoids inflating step sizes early in training).
func adamDebiasStepSize(adamDebias bool, stepSize, biasCorrection1 float64) float64 {
	if adamDebias {
		return stepSize
	}
	return stepSize / biasCorrection1
}

// applyWeightDecay applies the group's weight-decay policy in place.
//
// With decouple the parameter shrinks multiplicatively, independent of the
// gradient: p *= 1 - wd (fixed) or p *= 1 - wd*lr. Otherwise the L2 penalty
// is folded into the gradient before the moment updates: grad += wd*p.
// A zero weight decay is a no-op.
func applyWeightDecay(p *nn.Parameter, grad *tensor.Tensor, lr, weightDecay float64, decouple, fixed bool) {
	if weightDecay == 0 {
		return
	}
	if decouple {
		if fixed {
			p.Value().Scale(1.0 - weightDecay)
		} else {
			p.Value().Scale(1.0 - weightDecay*lr)
		}
		return
	}
	grad.AddScaled(weightDecay, p.Value())
}

// negateIfMaximize flips the raw gradient in place when maximizing.
func negateIfMaximize(grad *tensor.Tensor, maximize bool) {
	if maximize {
		grad.Neg()
	}
}
