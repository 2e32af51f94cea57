package nn

import (
	"github.com/adaopt-ml/adaopt/internal/tensor"
)

// Parameter represents a trainable parameter.
//
// A parameter owns its value tensor and, once the host differentiation engine
// has produced one, a gradient tensor of the same shape. The optimizer reads
// the gradient and mutates the value in place.
//
// Example:
//
//	w, _ := tensor.FromSlice([]float64{0.1, -0.2}, tensor.Shape{2})
//	weight := nn.NewParameter("weight", w)
//
//	// after a backward pass
//	weight.SetGrad(grad)
type Parameter struct {
	name  string         // Parameter name (e.g., "weight", "bias")
	value *tensor.Tensor // The parameter value, updated in place
	grad  *tensor.Tensor // Gradient tensor (nil until computed)
}

// NewParameter creates a new trainable parameter.
//
// The value tensor should be initialized before creating the Parameter.
// The gradient is attached later via SetGrad.
func NewParameter(name string, value *tensor.Tensor) *Parameter {
	return &Parameter{
		name:  name,
		value: value,
	}
}

// Name returns the parameter name.
func (p *Parameter) Name() string {
	return p.name
}

// Value returns the parameter value tensor.
func (p *Parameter) Value() *tensor.Tensor {
	return p.value
}

// Grad returns the gradient tensor.
//
// Returns nil if no gradient has been computed yet; optimizers skip such
// parameters.
func (p *Parameter) Grad() *tensor.Tensor {
	return p.grad
}

// SetGrad sets the gradient tensor.
func (p *Parameter) SetGrad(grad *tensor.Tensor) {
	p.grad = grad
}

// ZeroGrad clears the gradient tensor.
//
// This should be called before each training iteration to avoid
// applying stale gradients from previous iterations.
func (p *Parameter) ZeroGrad() {
	p.grad = nil
}
