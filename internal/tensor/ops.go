package tensor

import (
	"math"

	"golang.org/x/exp/constraints"
	"gonum.org/v1/gonum/floats"
)

// Elementwise kernels for dense tensors. All of them mutate the receiver in
// place and panic on layout or shape mismatch, which is a programmer error.
// Where gonum has a primitive for the operation it is used directly; the rest
// are plain fused loops.

// Scale multiplies every element by s.
func (t *Tensor) Scale(s float64) {
	t.mustDense("Scale")
	floats.Scale(s, t.data)
}

// Neg negates every element.
func (t *Tensor) Neg() {
	t.Scale(-1)
}

// Add adds x elementwise.
func (t *Tensor) Add(x *Tensor) {
	t.mustDense("Add")
	x.mustDense("Add")
	t.mustMatch(x, "Add")
	floats.Add(t.data, x.data)
}

// AddScaled adds alpha*x elementwise (axpy).
func (t *Tensor) AddScaled(alpha float64, x *Tensor) {
	t.mustDense("AddScaled")
	x.mustDense("AddScaled")
	t.mustMatch(x, "AddScaled")
	floats.AddScaled(t.data, alpha, x.data)
}

// AddScaledMul adds alpha*x*y elementwise (addcmul).
func (t *Tensor) AddScaledMul(alpha float64, x, y *Tensor) {
	t.mustDense("AddScaledMul")
	x.mustDense("AddScaledMul")
	y.mustDense("AddScaledMul")
	t.mustMatch(x, "AddScaledMul")
	t.mustMatch(y, "AddScaledMul")
	for i := range t.data {
		t.data[i] += alpha * x.data[i] * y.data[i]
	}
}

// MaxOf sets every element to max(t[i], x[i]).
func (t *Tensor) MaxOf(x *Tensor) {
	t.mustDense("MaxOf")
	x.mustDense("MaxOf")
	t.mustMatch(x, "MaxOf")
	for i := range t.data {
		t.data[i] = math.Max(t.data[i], x.data[i])
	}
}

// Sqrt replaces every element with its square root.
func (t *Tensor) Sqrt() {
	t.mustDense("Sqrt")
	for i := range t.data {
		t.data[i] = math.Sqrt(t.data[i])
	}
}

// Clamp limits every element to the range [lo, hi].
func (t *Tensor) Clamp(lo, hi float64) {
	t.mustDense("Clamp")
	for i := range t.data {
		t.data[i] = ClampScalar(t.data[i], lo, hi)
	}
}

// Sign returns the elementwise sign of x with Sign(0) == 0.
func Sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

// ClampScalar limits v to the range [lo, hi].
func ClampScalar[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
