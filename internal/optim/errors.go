package optim

import (
	"fmt"

	"github.com/pkg/errors"
)

// Common errors.
var (
	// ErrInvalidHyperparameter is wrapped by every HyperparameterError.
	ErrInvalidHyperparameter = errors.New("invalid hyperparameter")
	// ErrSparseGradient is wrapped by every SparseGradientError.
	ErrSparseGradient = errors.New("sparse gradients are not supported")
)

// HyperparameterError reports a hyperparameter outside its allowed range,
// detected at construction time.
type HyperparameterError struct {
	Name    string  // Offending field (e.g. "lr", "betas[0]")
	Value   float64 // The rejected value
	Message string  // Allowed range description
}

// Error implements the error interface.
func (e *HyperparameterError) Error() string {
	return fmt.Sprintf("invalid hyperparameter %q = %v: %s", e.Name, e.Value, e.Message)
}

// Unwrap allows errors.Is(err, ErrInvalidHyperparameter).
func (e *HyperparameterError) Unwrap() error {
	return ErrInvalidHyperparameter
}

// SparseGradientError reports a sparse-layout gradient supplied to an update
// rule that has no sparse semantics. It aborts the step for that parameter;
// parameters already updated earlier in the same step stay updated.
type SparseGradientError struct {
	Optimizer string // Algorithm name (e.g. "AdaBound")
	Param     string // Parameter name
}

// Error implements the error interface.
func (e *SparseGradientError) Error() string {
	return fmt.Sprintf("%s does not support sparse gradients (parameter %q)", e.Optimizer, e.Param)
}

// Unwrap allows errors.Is(err, ErrSparseGradient).
func (e *SparseGradientError) Unwrap() error {
	return ErrSparseGradient
}

func invalidHyperparameter(name string, value float64, message string) error {
	return errors.WithStack(&HyperparameterError{Name: name, Value: value, Message: message})
}

func sparseGradient(optimizer, param string) error {
	return errors.WithStack(&SparseGradientError{Optimizer: optimizer, Param: param})
}
