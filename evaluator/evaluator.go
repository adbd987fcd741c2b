// Package evaluator defines the pluggable units that produce the
// analytic values driving a discretization: constants, closed-form
// analytic functions of space and time, and parametrized laws. An
// evaluator's output shape (scalar, vector or symmetric 3×3 tensor) is
// fixed at creation; producing a value of any other shape fails with
// ErrShapeMismatch.
//
// Analytic and law functions must be pure: evaluation holds no hidden
// state, so a sealed configuration can be evaluated concurrently from
// multiple assembly workers without synchronization.
package evaluator

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/cdokit/cdokit/geom"
)

// ErrShapeMismatch reports a value whose shape does not match the
// declared arity of its evaluator or role.
var ErrShapeMismatch = errors.New("evaluator: shape mismatch")

// Shape is the arity of an evaluator's output.
type Shape uint8

const (
	Scalar Shape = iota
	Vector
	Tensor // symmetric 3×3
)

func (s Shape) String() string {
	switch s {
	case Scalar:
		return "scalar"
	case Vector:
		return "vector"
	case Tensor:
		return "tensor"
	}
	return "unknown"
}

// Kind distinguishes how an evaluator is defined.
type Kind uint8

const (
	ByValue Kind = iota
	ByAnalytic
	ByLaw
)

func (k Kind) String() string {
	switch k {
	case ByValue:
		return "value"
	case ByAnalytic:
		return "analytic"
	case ByLaw:
		return "law"
	}
	return "unknown"
}

// Value is a tagged scalar, vector or symmetric tensor.
type Value struct {
	Shape Shape
	Real  float64
	Vect  [3]float64
	Tens  *mat.SymDense
}

// ScalarValue wraps a scalar as a Value.
func ScalarValue(v float64) Value {
	return Value{Shape: Scalar, Real: v}
}

// VectorValue wraps a 3-vector as a Value.
func VectorValue(x, y, z float64) Value {
	return Value{Shape: Vector, Vect: [3]float64{x, y, z}}
}

// TensorValue wraps a symmetric 3×3 tensor as a Value.
func TensorValue(t *mat.SymDense) Value {
	return Value{Shape: Tensor, Tens: t}
}

// ZeroValue returns the additive identity of the given shape.
func ZeroValue(shape Shape) Value {
	v := Value{Shape: shape}
	if shape == Tensor {
		v.Tens = mat.NewSymDense(3, nil)
	}
	return v
}

// AddScaled accumulates v += a*w. Both values must share v's shape;
// quadrature relies on this to accumulate weighted point evaluations.
func (v *Value) AddScaled(a float64, w Value) error {
	if w.Shape != v.Shape {
		return fmt.Errorf("accumulating %v into %v: %w", w.Shape, v.Shape, ErrShapeMismatch)
	}
	switch v.Shape {
	case Scalar:
		v.Real += a * w.Real
	case Vector:
		for i := range v.Vect {
			v.Vect[i] += a * w.Vect[i]
		}
	case Tensor:
		if v.Tens == nil {
			v.Tens = mat.NewSymDense(3, nil)
		}
		for i := 0; i < 3; i++ {
			for j := i; j < 3; j++ {
				v.Tens.SetSym(i, j, v.Tens.At(i, j)+a*w.Tens.At(i, j))
			}
		}
	}
	return nil
}

// Evaluator produces a value of fixed shape from a spatial point and a
// time. Implementations must be safe for concurrent use.
type Evaluator interface {
	Shape() Shape
	Kind() Kind
	Evaluate(p geom.Point, time float64) (Value, error)
}

// Constant ignores point and time and always returns the same value.
type Constant struct {
	val Value
}

func NewConstant(v Value) Constant {
	return Constant{val: v}
}

func (c Constant) Shape() Shape { return c.val.Shape }
func (c Constant) Kind() Kind   { return ByValue }

func (c Constant) Evaluate(geom.Point, float64) (Value, error) {
	return c.val, nil
}

// Func is a closed-form analytic function of space and time.
type Func func(p geom.Point, time float64) Value

// Analytic evaluates a pure analytic function, checking that the
// produced value matches the declared shape.
type Analytic struct {
	shape Shape
	fn    Func
}

func NewAnalytic(shape Shape, fn Func) Analytic {
	return Analytic{shape: shape, fn: fn}
}

func (a Analytic) Shape() Shape { return a.shape }
func (a Analytic) Kind() Kind   { return ByAnalytic }

func (a Analytic) Evaluate(p geom.Point, time float64) (Value, error) {
	v := a.fn(p, time)
	if v.Shape != a.shape {
		return Value{}, fmt.Errorf("analytic produced %v, declared %v: %w",
			v.Shape, a.shape, ErrShapeMismatch)
	}
	return v, nil
}

// LawFunc is a tabulated or parametrized law: an analytic function with
// an opaque context (material parameters, lookup tables) fixed at
// definition time.
type LawFunc func(p geom.Point, time float64, ctx any) Value

// Law evaluates a parametrized law. The context is read-only after
// creation; the function must not mutate it.
type Law struct {
	shape Shape
	fn    LawFunc
	ctx   any
}

func NewLaw(shape Shape, fn LawFunc, ctx any) Law {
	return Law{shape: shape, fn: fn, ctx: ctx}
}

func (l Law) Shape() Shape { return l.shape }
func (l Law) Kind() Kind   { return ByLaw }

func (l Law) Evaluate(p geom.Point, time float64) (Value, error) {
	v := l.fn(p, time, l.ctx)
	if v.Shape != l.shape {
		return Value{}, fmt.Errorf("law produced %v, declared %v: %w",
			v.Shape, l.shape, ErrShapeMismatch)
	}
	return v, nil
}
