// Copyright 2025 The AdaOpt Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package optim

import (
	"github.com/adaopt-ml/adaopt/internal/nn"
	"github.com/adaopt-ml/adaopt/internal/optim"
)

// Optimizer is the shared contract for all optimizers.
type Optimizer = optim.Optimizer

// Closure recomputes the loss and repopulates parameter gradients; Step
// invokes it synchronously before applying the update.
type Closure = optim.Closure

// Errors surfaced by construction and Step.
var (
	ErrInvalidHyperparameter = optim.ErrInvalidHyperparameter
	ErrSparseGradient        = optim.ErrSparseGradient
)

// HyperparameterError reports a hyperparameter outside its allowed range.
type HyperparameterError = optim.HyperparameterError

// SparseGradientError reports a sparse-layout gradient supplied to an update
// rule that has no sparse semantics.
type SparseGradientError = optim.SparseGradientError

// AdaBound (dynamic-bound adaptive moment estimation)

// AdaBound clamps the effective per-element step size between bounds that
// converge to a fixed final learning rate.
type AdaBound = optim.AdaBound

// AdaBoundConfig contains configuration for the AdaBound optimizer.
type AdaBoundConfig = optim.AdaBoundConfig

// AdaBoundGroup pairs an ordered parameter set with its group configuration.
type AdaBoundGroup = optim.AdaBoundGroup

// DefaultAdaBoundConfig returns the conventional AdaBound configuration.
func DefaultAdaBoundConfig() AdaBoundConfig {
	return optim.DefaultAdaBoundConfig()
}

// NewAdaBound creates an AdaBound optimizer over a single parameter group.
//
// Example:
//
//	opt, err := optim.NewAdaBound(params, optim.AdaBoundConfig{
//	    LR:      1e-3,
//	    FinalLR: 0.1,
//	    Gamma:   1e-3,
//	})
func NewAdaBound(params []*nn.Parameter, cfg AdaBoundConfig) (*AdaBound, error) {
	return optim.NewAdaBound(params, cfg)
}

// NewAdaBoundGroups creates an AdaBound optimizer over explicit parameter
// groups.
func NewAdaBoundGroups(groups []AdaBoundGroup) (*AdaBound, error) {
	return optim.NewAdaBoundGroups(groups)
}

// Yogi (sign-corrected second-moment adaptive estimation)

// Yogi replaces the second-moment EMA with a signed additive update for more
// conservative accumulator growth.
type Yogi = optim.Yogi

// YogiConfig contains configuration for the Yogi optimizer.
type YogiConfig = optim.YogiConfig

// YogiGroup pairs an ordered parameter set with its group configuration.
type YogiGroup = optim.YogiGroup

// DefaultYogiConfig returns the conventional Yogi configuration.
func DefaultYogiConfig() YogiConfig {
	return optim.DefaultYogiConfig()
}

// NewYogi creates a Yogi optimizer over a single parameter group.
//
// Example:
//
//	opt, err := optim.NewYogi(params, optim.DefaultYogiConfig())
func NewYogi(params []*nn.Parameter, cfg YogiConfig) (*Yogi, error) {
	return optim.NewYogi(params, cfg)
}

// NewYogiGroups creates a Yogi optimizer over explicit parameter groups.
func NewYogiGroups(groups []YogiGroup) (*Yogi, error) {
	return optim.NewYogiGroups(groups)
}
