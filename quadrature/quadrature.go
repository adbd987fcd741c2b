// Package quadrature approximates integrals of evaluators over mesh
// entities. Four policies are available: a one-point barycenter rule, a
// subdivision rule that applies the barycenter approximation per
// sub-simplex, and two Gauss rules ("higher", "highest") that subdivide
// first and then apply a fixed 4- or 5-point rule per sub-tetrahedron
// (3- or 4-point per sub-triangle).
//
// Quadrature is pure computation: given a sealed configuration it may
// run concurrently over different entities without synchronization.
package quadrature

import (
	"errors"
	"fmt"

	"github.com/cdokit/cdokit/evaluator"
	"github.com/cdokit/cdokit/geom"
)

// ErrDegenerateEntity reports an entity with zero or negative measure.
// It indicates mesh corruption and is fatal for the solve.
var ErrDegenerateEntity = errors.New("quadrature: degenerate entity")

// Policy selects the quadrature algorithm.
type Policy uint8

const (
	// Bary evaluates once at the entity centroid. First-order accurate.
	Bary Policy = iota
	// Subdiv decomposes the entity into simplices and applies the
	// barycenter rule per sub-simplex. Required for non-simplicial
	// entities.
	Subdiv
	// Higher subdivides, then applies a 4-point Gauss rule per
	// sub-tetrahedron (3-point per sub-triangle).
	Higher
	// Highest subdivides, then applies a 5-point Gauss rule per
	// sub-tetrahedron (4-point per sub-triangle).
	Highest
)

func (p Policy) String() string {
	switch p {
	case Bary:
		return "bary"
	case Subdiv:
		return "subdiv"
	case Higher:
		return "higher"
	case Highest:
		return "highest"
	}
	return "unknown"
}

// ParsePolicy maps the configuration keywords to a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "bary":
		return Bary, nil
	case "subdiv":
		return Subdiv, nil
	case "higher":
		return Higher, nil
	case "highest":
		return Highest, nil
	}
	return Bary, fmt.Errorf("unknown quadrature policy %q", s)
}

// Integrate approximates the integral of f over e at the given time.
func Integrate(e geom.Entity, f evaluator.Evaluator, time float64, policy Policy) (evaluator.Value, error) {
	switch policy {
	case Bary:
		return barycenter(e, f, time)
	case Subdiv:
		return subdivide(e, f, time)
	case Higher, Highest:
		return gauss(e, f, time, policy)
	}
	return evaluator.Value{}, fmt.Errorf("unknown quadrature policy %d", policy)
}

func barycenter(e geom.Entity, f evaluator.Evaluator, time float64) (evaluator.Value, error) {
	m := e.Measure()
	if m <= 0 {
		return evaluator.Value{}, fmt.Errorf("measure %g: %w", m, ErrDegenerateEntity)
	}
	v, err := f.Evaluate(e.Centroid(), time)
	if err != nil {
		return evaluator.Value{}, err
	}
	acc := evaluator.ZeroValue(f.Shape())
	if err := acc.AddScaled(m, v); err != nil {
		return evaluator.Value{}, err
	}
	return acc, nil
}

func subdivide(e geom.Entity, f evaluator.Evaluator, time float64) (evaluator.Value, error) {
	acc := evaluator.ZeroValue(f.Shape())
	for _, s := range e.Simplices() {
		v, err := barycenter(s, f, time)
		if err != nil {
			return evaluator.Value{}, err
		}
		if err := acc.AddScaled(1, v); err != nil {
			return evaluator.Value{}, err
		}
	}
	return acc, nil
}

func gauss(e geom.Entity, f evaluator.Evaluator, time float64, policy Policy) (evaluator.Value, error) {
	acc := evaluator.ZeroValue(f.Shape())
	for _, s := range e.Simplices() {
		m := s.Measure()
		if m <= 0 {
			return evaluator.Value{}, fmt.Errorf("sub-simplex measure %g: %w", m, ErrDegenerateEntity)
		}
		verts := s.Vertices()

		var rule gaussRule
		switch {
		case len(verts) == 4 && policy == Higher:
			rule = tet4
		case len(verts) == 4 && policy == Highest:
			rule = tet5
		case len(verts) == 3 && policy == Higher:
			rule = tri3
		case len(verts) == 3 && policy == Highest:
			rule = tri4
		default:
			return evaluator.Value{}, fmt.Errorf("no %v rule for %d-vertex simplex", policy, len(verts))
		}

		for k, bc := range rule.coords {
			var p geom.Point
			for i, vert := range verts {
				p = p.Add(vert.Scale(bc[i]))
			}
			v, err := f.Evaluate(p, time)
			if err != nil {
				return evaluator.Value{}, err
			}
			if err := acc.AddScaled(rule.weights[k]*m, v); err != nil {
				return evaluator.Value{}, err
			}
		}
	}
	return acc, nil
}
