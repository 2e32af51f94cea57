// Copyright 2025 The AdaOpt Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides the trainable parameter abstraction consumed by the
// optimizers.
package nn

import (
	"github.com/adaopt-ml/adaopt/internal/nn"
	"github.com/adaopt-ml/adaopt/tensor"
)

// Parameter represents a trainable parameter: a value tensor plus a lazily
// attached gradient of the same shape.
//
// Methods:
//
//	Name() string
//	    Returns the parameter name (e.g., "weight", "bias").
//
//	Value() *tensor.Tensor
//	    Returns the value tensor, which optimizers mutate in place.
//
//	Grad() *tensor.Tensor
//	    Returns the gradient tensor (nil if not computed yet).
//
//	SetGrad(grad *tensor.Tensor)
//	    Attaches the gradient tensor.
//
//	ZeroGrad()
//	    Clears the gradient tensor.
type Parameter = nn.Parameter

// NewParameter creates a new trainable parameter around an initialized value
// tensor.
func NewParameter(name string, value *tensor.Tensor) *Parameter {
	return nn.NewParameter(name, value)
}
