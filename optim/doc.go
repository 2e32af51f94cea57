// Copyright 2025 The AdaOpt Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides adaptive first-order optimization algorithms.
//
// # Overview
//
// This package contains:
//   - AdaBound: adaptive moment estimation with a dynamic bound on the
//     effective step size that converges to a fixed final learning rate
//   - Yogi: adaptive estimation with a sign-corrected, additive
//     second-moment update
//   - Optimizer interface for custom optimizers
//
// # Basic Usage
//
//	import (
//	    "github.com/adaopt-ml/adaopt/nn"
//	    "github.com/adaopt-ml/adaopt/optim"
//	    "github.com/adaopt-ml/adaopt/tensor"
//	)
//
//	func main() {
//	    w, _ := tensor.FromSlice([]float64{3.0}, tensor.Shape{1})
//	    x := nn.NewParameter("x", w)
//
//	    opt, err := optim.NewAdaBound([]*nn.Parameter{x}, optim.AdaBoundConfig{
//	        LR:      1e-3,
//	        FinalLR: 0.1,
//	    })
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    for step := 0; step < 1000; step++ {
//	        loss, err := opt.Step(func() (float64, error) {
//	            // recompute the loss and attach fresh gradients here
//	            return computeLossAndGradients(x)
//	        })
//	        if err != nil {
//	            log.Fatal(err)
//	        }
//	        _ = loss
//	    }
//	}
//
// # Parameter Groups
//
// Each group carries its own mutable hyperparameters and step counter, so an
// external schedule can retune one group without touching the others:
//
//	opt, err := optim.NewAdaBoundGroups([]optim.AdaBoundGroup{
//	    {Params: weights, Config: optim.AdaBoundConfig{LR: 1e-3, WeightDecay: 1e-2, WeightDecouple: true}},
//	    {Params: biases, Config: optim.AdaBoundConfig{LR: 1e-3}},
//	})
//
// Changing a group's learning rate between steps (SetLR, SetGroupLR) never
// resets counters or moment state; AdaBound additionally rescales its bound
// target by the ratio of the new rate to the construction-time rate.
package optim
