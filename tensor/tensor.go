// Copyright 2025 The AdaOpt Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public API for the fixed-shape float64 arrays
// used by the optimizers.
//
// Example:
//
//	x, _ := tensor.FromSlice([]float64{1, 2, 3}, tensor.Shape{3})
//	x.Scale(0.5)
package tensor

import (
	"github.com/adaopt-ml/adaopt/internal/tensor"
)

// Shape represents the dimensions of a tensor.
type Shape = tensor.Shape

// Tensor is a fixed-shape float64 array mutated in place.
type Tensor = tensor.Tensor

// Layout describes how a tensor's elements are stored.
type Layout = tensor.Layout

// Supported storage layouts.
const (
	Dense     = tensor.Dense
	SparseCOO = tensor.SparseCOO
)

// Zeros creates a dense zero-filled tensor with the given shape.
func Zeros(shape Shape) *Tensor {
	return tensor.Zeros(shape)
}

// Full creates a dense tensor with every element set to value.
func Full(shape Shape, value float64) *Tensor {
	return tensor.Full(shape, value)
}

// ZerosLike creates a dense zero-filled tensor shaped like t.
func ZerosLike(t *Tensor) *Tensor {
	return tensor.ZerosLike(t)
}

// FromSlice creates a dense tensor from the given data and shape.
func FromSlice(data []float64, shape Shape) (*Tensor, error) {
	return tensor.FromSlice(data, shape)
}

// NewSparseCOO creates a sparse tensor from flat element indices and values.
// Sparse tensors carry no arithmetic; optimizers reject them.
func NewSparseCOO(shape Shape, indices []int, values []float64) (*Tensor, error) {
	return tensor.NewSparseCOO(shape, indices, values)
}
