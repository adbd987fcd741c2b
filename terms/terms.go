// Package terms models the named physical quantities bound to
// equations: material properties, advection fields, source terms and
// boundary conditions. Each term is backed by one evaluator whose shape
// is validated against the term's class at definition time.
package terms

import (
	"fmt"

	"github.com/cdokit/cdokit/evaluator"
	"github.com/cdokit/cdokit/geom"
	"github.com/cdokit/cdokit/quadrature"
)

// PropertyClass describes the structure of a material property tensor.
type PropertyClass uint8

const (
	// Isotropic properties are a single scalar coefficient.
	Isotropic PropertyClass = iota
	// Orthotropic properties carry the three diagonal coefficients.
	Orthotropic
	// Anisotropic properties are a full symmetric 3×3 tensor.
	Anisotropic
)

func (c PropertyClass) String() string {
	switch c {
	case Isotropic:
		return "isotropic"
	case Orthotropic:
		return "orthotropic"
	case Anisotropic:
		return "anisotropic"
	}
	return "unknown"
}

// ParsePropertyClass maps the configuration keywords to a class.
func ParsePropertyClass(s string) (PropertyClass, error) {
	switch s {
	case "isotropic":
		return Isotropic, nil
	case "orthotropic":
		return Orthotropic, nil
	case "anisotropic":
		return Anisotropic, nil
	}
	return Isotropic, fmt.Errorf("unknown property class %q", s)
}

// Shape returns the evaluator shape the class requires.
func (c PropertyClass) Shape() evaluator.Shape {
	switch c {
	case Orthotropic:
		return evaluator.Vector
	case Anisotropic:
		return evaluator.Tensor
	}
	return evaluator.Scalar
}

// Property is a named material property. Its evaluator is set once
// through one of the Def methods and is immutable thereafter.
type Property struct {
	name  string
	class PropertyClass
	eval  evaluator.Evaluator
}

// NewProperty declares a property of the given class with no
// definition yet.
func NewProperty(name string, class PropertyClass) *Property {
	return &Property{name: name, class: class}
}

func (p *Property) Name() string         { return p.name }
func (p *Property) Class() PropertyClass { return p.class }
func (p *Property) Defined() bool        { return p.eval != nil }

func (p *Property) setEvaluator(ev evaluator.Evaluator) error {
	if ev.Shape() != p.class.Shape() {
		return fmt.Errorf("property %q is %v and expects a %v evaluator, got %v: %w",
			p.name, p.class, p.class.Shape(), ev.Shape(), evaluator.ErrShapeMismatch)
	}
	p.eval = ev
	return nil
}

// DefByValue defines the property as a constant.
func (p *Property) DefByValue(v evaluator.Value) error {
	return p.setEvaluator(evaluator.NewConstant(v))
}

// DefByAnalytic defines the property as a closed-form function of
// space and time.
func (p *Property) DefByAnalytic(fn evaluator.Func) error {
	return p.setEvaluator(evaluator.NewAnalytic(p.class.Shape(), fn))
}

// DefByLaw defines the property through a parametrized law.
func (p *Property) DefByLaw(fn evaluator.LawFunc, ctx any) error {
	return p.setEvaluator(evaluator.NewLaw(p.class.Shape(), fn, ctx))
}

// Evaluate returns the property value at a point and time.
func (p *Property) Evaluate(pt geom.Point, time float64) (evaluator.Value, error) {
	if p.eval == nil {
		return evaluator.Value{}, fmt.Errorf("property %q has no definition", p.name)
	}
	return p.eval.Evaluate(pt, time)
}

// AdvectionField is a named vector field.
type AdvectionField struct {
	name string
	eval evaluator.Evaluator
}

func NewAdvectionField(name string) *AdvectionField {
	return &AdvectionField{name: name}
}

func (a *AdvectionField) Name() string  { return a.name }
func (a *AdvectionField) Defined() bool { return a.eval != nil }

// DefByValue defines the field as a uniform vector.
func (a *AdvectionField) DefByValue(x, y, z float64) error {
	a.eval = evaluator.NewConstant(evaluator.VectorValue(x, y, z))
	return nil
}

// DefByAnalytic defines the field as a closed-form vector function.
func (a *AdvectionField) DefByAnalytic(fn evaluator.Func) error {
	a.eval = evaluator.NewAnalytic(evaluator.Vector, fn)
	return nil
}

// Evaluate returns the field value at a point and time.
func (a *AdvectionField) Evaluate(pt geom.Point, time float64) (evaluator.Value, error) {
	if a.eval == nil {
		return evaluator.Value{}, fmt.Errorf("advection field %q has no definition", a.name)
	}
	return a.eval.Evaluate(pt, time)
}

// Integrate computes the flux-producing integral of the field over an
// entity (typically a face) with the given policy.
func (a *AdvectionField) Integrate(e geom.Entity, time float64, pol quadrature.Policy) (evaluator.Value, error) {
	if a.eval == nil {
		return evaluator.Value{}, fmt.Errorf("advection field %q has no definition", a.name)
	}
	return quadrature.Integrate(e, a.eval, time, pol)
}
