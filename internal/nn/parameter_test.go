package nn

import (
	"testing"

	"github.com/adaopt-ml/adaopt/internal/tensor"
)

func TestParameter(t *testing.T) {
	v, err := tensor.FromSlice([]float64{1, 2}, tensor.Shape{2})
	if err != nil {
		t.Fatal(err)
	}
	p := NewParameter("weight", v)

	if p.Name() != "weight" {
		t.Errorf("Name: got %q", p.Name())
	}
	if p.Value() != v {
		t.Error("Value should return the wrapped tensor")
	}
	if p.Grad() != nil {
		t.Error("Grad should be nil before SetGrad")
	}

	g := tensor.Zeros(tensor.Shape{2})
	p.SetGrad(g)
	if p.Grad() != g {
		t.Error("Grad should return the attached tensor")
	}

	p.ZeroGrad()
	if p.Grad() != nil {
		t.Error("Grad should be nil after ZeroGrad")
	}
}
