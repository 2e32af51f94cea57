// Package optim implements adaptive first-order optimization algorithms.
//
// This package provides:
//   - Optimizer interface: shared contract for all optimizers
//   - AdaBound: adaptive moment estimation with a dynamic bound on the
//     effective step size that converges to a fixed final learning rate
//   - Yogi: adaptive estimation with a sign-corrected, additive
//     second-moment update
//
// Both optimizers partition parameters into groups. Each group carries its
// own mutable hyperparameter set and step counter, so an external scheduler
// can retune one group without touching the others. Per-parameter state
// (moment accumulators) is created lazily on the first step that sees a
// gradient for the parameter and is only ever mutated in place afterwards.
//
// Example usage:
//
//	opt, err := optim.NewAdaBound(params, optim.AdaBoundConfig{LR: 1e-3})
//	if err != nil {
//	    return err
//	}
//
//	for step := 0; step < steps; step++ {
//	    loss, err := opt.Step(func() (float64, error) {
//	        return computeLossAndGradients(params)
//	    })
//	    if err != nil {
//	        return err
//	    }
//	    _ = loss
//	}
package optim

import (
	"github.com/adaopt-ml/adaopt/internal/nn"
)

// Closure recomputes the loss and repopulates parameter gradients.
//
// A closure passed to Step is invoked synchronously before the update is
// applied; the caller blocks until it returns. Its loss and error propagate
// through Step unchanged.
type Closure func() (float64, error)

// Optimizer is the shared contract for all optimization algorithms.
//
// A Step call runs to completion before any other Step call may begin; no
// optimizer in this package is safe for concurrent use.
type Optimizer interface {
	// Step applies one update to every parameter that has a gradient.
	// If closure is non-nil it is invoked first and its loss is returned.
	// Parameters without a gradient are skipped; the group step counters
	// still advance exactly once per call.
	Step(closure Closure) (float64, error)

	// Reset reinitializes all per-parameter state and step counters
	// without altering group hyperparameters.
	Reset()

	// GetLR returns the current learning rate of the first group.
	GetLR() float64

	// SetLR updates the learning rate of every group. Counters and state
	// are untouched; the next Step observes the new rate.
	SetLR(lr float64)

	// String returns the algorithm name.
	String() string
}

// groupMeta is the group bookkeeping shared by all optimizers: the ordered
// parameters, their state-store handles, the step counter and the base
// learning rate snapshot taken at construction.
type groupMeta struct {
	params  []*nn.Parameter
	handles []int
	step    int     // 0 until the first Step call, then increments by 1 per call
	baseLR  float64 // construction-time lr, used to rescale schedule-driven lr changes
}

// assignHandles gives every parameter across all groups a stable integer
// handle: its registration index. The per-parameter state store is an arena
// indexed by these handles, never by pointer identity.
func assignHandles(groups [][]*nn.Parameter) ([]groupMeta, int) {
	metas := make([]groupMeta, len(groups))
	next := 0
	for gi, params := range groups {
		handles := make([]int, len(params))
		for i := range params {
			handles[i] = next
			next++
		}
		metas[gi] = groupMeta{params: params, handles: handles}
	}
	return metas, next
}
