package tensor

import "fmt"

// Layout describes how a tensor's elements are stored.
type Layout int

// Supported storage layouts.
const (
	// Dense stores every element contiguously in row-major order.
	Dense Layout = iota
	// SparseCOO stores only nonzero elements as (flat index, value) pairs.
	// Sparse tensors carry no arithmetic: they exist so a gradient produced
	// in coordinate form can be recognized and rejected by consumers that
	// have no sparse semantics.
	SparseCOO
)

// String returns a human-readable layout name.
func (l Layout) String() string {
	switch l {
	case Dense:
		return "Dense"
	case SparseCOO:
		return "SparseCOO"
	default:
		return "Unknown"
	}
}

// Tensor is a fixed-shape float64 array.
//
// Dense tensors hold one value per element in row-major order. All mutating
// operations work in place: a tensor's backing slice is allocated once at
// construction and never reallocated, so slices obtained through Data remain
// valid for the tensor's lifetime.
type Tensor struct {
	shape   Shape
	layout  Layout
	data    []float64
	indices []int // flat element indices, SparseCOO only
}

// Zeros creates a dense zero-filled tensor with the given shape.
func Zeros(shape Shape) *Tensor {
	return &Tensor{
		shape:  shape.Clone(),
		layout: Dense,
		data:   make([]float64, shape.NumElements()),
	}
}

// Full creates a dense tensor with every element set to value.
func Full(shape Shape, value float64) *Tensor {
	t := Zeros(shape)
	t.Fill(value)
	return t
}

// ZerosLike creates a dense zero-filled tensor shaped like t.
func ZerosLike(t *Tensor) *Tensor {
	return Zeros(t.shape)
}

// FullLike creates a dense tensor shaped like t with every element set to value.
func FullLike(t *Tensor, value float64) *Tensor {
	return Full(t.shape, value)
}

// FromSlice creates a dense tensor from the given data and shape.
// The data is copied; the tensor does not alias the input slice.
func FromSlice(data []float64, shape Shape) (*Tensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}
	if len(data) != shape.NumElements() {
		return nil, fmt.Errorf("data length %d does not match shape %v (%d elements)",
			len(data), shape, shape.NumElements())
	}
	t := Zeros(shape)
	copy(t.data, data)
	return t, nil
}

// NewSparseCOO creates a sparse tensor from flat element indices and values.
// Indices must be within range for the shape and len(indices) == len(values).
func NewSparseCOO(shape Shape, indices []int, values []float64) (*Tensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}
	if len(indices) != len(values) {
		return nil, fmt.Errorf("indices length %d does not match values length %d", len(indices), len(values))
	}
	n := shape.NumElements()
	for _, idx := range indices {
		if idx < 0 || idx >= n {
			return nil, fmt.Errorf("index %d out of range for shape %v", idx, shape)
		}
	}
	t := &Tensor{
		shape:   shape.Clone(),
		layout:  SparseCOO,
		data:    append([]float64(nil), values...),
		indices: append([]int(nil), indices...),
	}
	return t, nil
}

// Shape returns the tensor's shape.
func (t *Tensor) Shape() Shape {
	return t.shape
}

// Layout returns the tensor's storage layout.
func (t *Tensor) Layout() Layout {
	return t.layout
}

// IsSparse reports whether the tensor uses a sparse layout.
func (t *Tensor) IsSparse() bool {
	return t.layout != Dense
}

// NumElements returns the number of logical elements.
func (t *Tensor) NumElements() int {
	return t.shape.NumElements()
}

// Data returns the backing slice of a dense tensor. The slice aliases the
// tensor's storage: writes through it are visible to the tensor.
func (t *Tensor) Data() []float64 {
	t.mustDense("Data")
	return t.data
}

// Clone returns a deep copy of the tensor.
func (t *Tensor) Clone() *Tensor {
	c := &Tensor{
		shape:  t.shape.Clone(),
		layout: t.layout,
		data:   append([]float64(nil), t.data...),
	}
	if t.indices != nil {
		c.indices = append([]int(nil), t.indices...)
	}
	return c
}

// Fill sets every element of a dense tensor to value.
func (t *Tensor) Fill(value float64) {
	t.mustDense("Fill")
	for i := range t.data {
		t.data[i] = value
	}
}

// CopyFrom copies the elements of x into t. Shapes must match.
func (t *Tensor) CopyFrom(x *Tensor) {
	t.mustDense("CopyFrom")
	x.mustDense("CopyFrom")
	t.mustMatch(x, "CopyFrom")
	copy(t.data, x.data)
}

func (t *Tensor) mustDense(op string) {
	if t.layout != Dense {
		panic(fmt.Sprintf("tensor: %s requires a dense tensor, got %s", op, t.layout))
	}
}

func (t *Tensor) mustMatch(x *Tensor, op string) {
	if !t.shape.Equal(x.shape) {
		panic(fmt.Sprintf("tensor: %s shape mismatch: %v vs %v", op, t.shape, x.shape))
	}
}
