package config

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/cdokit/cdokit/domain"
	"github.com/cdokit/cdokit/equation"
	"github.com/cdokit/cdokit/evaluator"
	"github.com/cdokit/cdokit/quadrature"
	"github.com/cdokit/cdokit/terms"
)

// Build populates a fresh Domain from the case. The returned domain is
// not sealed so the caller can attach further terms programmatically.
func (c *Case) Build() (*domain.Domain, error) {
	d := domain.New()

	if err := c.buildDomainSettings(d); err != nil {
		return nil, err
	}
	for _, spec := range c.Properties {
		if err := buildProperty(d, spec); err != nil {
			return nil, err
		}
	}
	for _, spec := range c.AdvectionFields {
		if err := buildAdvectionField(d, spec); err != nil {
			return nil, err
		}
	}
	for _, spec := range c.Equations {
		if err := buildEquation(d, spec); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func (c *Case) buildDomainSettings(d *domain.Domain) error {
	s := c.Domain

	if s.DefaultBoundary != "" {
		kind, err := domain.ParseBoundaryKind(s.DefaultBoundary)
		if err != nil {
			return err
		}
		if err := d.SetDefaultBoundary(kind); err != nil {
			return err
		}
	}
	for _, loc := range s.MeshLocations {
		sup, err := terms.ParseSupport(loc.Support)
		if err != nil {
			return fmt.Errorf("mesh location %q: %w", loc.Name, err)
		}
		if err := d.AddMeshLocation(loc.Name, sup, loc.Criterion); err != nil {
			return err
		}
	}
	for _, b := range s.Boundaries {
		kind, err := domain.ParseBoundaryKind(b.Kind)
		if err != nil {
			return fmt.Errorf("boundary %q: %w", b.Location, err)
		}
		if err := d.AddBoundary(b.Location, kind); err != nil {
			return err
		}
	}
	if ts := s.TimeStep; ts != nil {
		kind, err := domain.ParseTimeStepKind(ts.Kind)
		if err != nil {
			return err
		}
		if err := d.SetTimeStep(ts.MaxIter, ts.FinalTime, kind, ts.Value); err != nil {
			return err
		}
	}
	if s.WallDistance {
		if _, err := d.ActivateWallDistance(); err != nil {
			return err
		}
	}
	return nil
}

func buildProperty(d *domain.Domain, spec PropertySpec) error {
	class, err := terms.ParsePropertyClass(spec.Class)
	if err != nil {
		return fmt.Errorf("property %q: %w", spec.Name, err)
	}
	pty, err := d.AddProperty(spec.Name, class)
	if err != nil {
		return err
	}

	switch {
	case spec.Analytic != "":
		entry, err := lookupAnalytic(spec.Analytic)
		if err != nil {
			return fmt.Errorf("property %q: %w", spec.Name, err)
		}
		if entry.shape != class.Shape() {
			return fmt.Errorf("property %q: analytic %q is %v, class %v wants %v: %w",
				spec.Name, spec.Analytic, entry.shape, class, class.Shape(), evaluator.ErrShapeMismatch)
		}
		return pty.DefByAnalytic(entry.fn)
	case spec.Value != nil:
		val, err := propertyValue(class, spec.Value)
		if err != nil {
			return fmt.Errorf("property %q: %w", spec.Name, err)
		}
		return pty.DefByValue(val)
	}
	return nil // declared but undefined, to be set in code
}

func propertyValue(class terms.PropertyClass, v []float64) (evaluator.Value, error) {
	switch class {
	case terms.Isotropic:
		if len(v) != 1 {
			return evaluator.Value{}, fmt.Errorf("isotropic property expects 1 value, got %d", len(v))
		}
		return evaluator.ScalarValue(v[0]), nil
	case terms.Orthotropic:
		if len(v) != 3 {
			return evaluator.Value{}, fmt.Errorf("orthotropic property expects 3 values, got %d", len(v))
		}
		return evaluator.VectorValue(v[0], v[1], v[2]), nil
	case terms.Anisotropic:
		if len(v) != 9 {
			return evaluator.Value{}, fmt.Errorf("anisotropic property expects 9 row-major values, got %d", len(v))
		}
		for i := 0; i < 3; i++ {
			for j := i + 1; j < 3; j++ {
				if v[3*i+j] != v[3*j+i] {
					return evaluator.Value{}, fmt.Errorf("anisotropic tensor is not symmetric at (%d,%d)", i, j)
				}
			}
		}
		return evaluator.TensorValue(mat.NewSymDense(3, v)), nil
	}
	return evaluator.Value{}, fmt.Errorf("unhandled property class %v", class)
}

func buildAdvectionField(d *domain.Domain, spec AdvectionSpec) error {
	adv, err := d.AddAdvectionField(spec.Name)
	if err != nil {
		return err
	}
	switch {
	case spec.Analytic != "":
		entry, err := lookupAnalytic(spec.Analytic)
		if err != nil {
			return fmt.Errorf("advection field %q: %w", spec.Name, err)
		}
		if entry.shape != evaluator.Vector {
			return fmt.Errorf("advection field %q: analytic %q is %v, want vector: %w",
				spec.Name, spec.Analytic, entry.shape, evaluator.ErrShapeMismatch)
		}
		return adv.DefByAnalytic(entry.fn)
	case spec.Value != nil:
		if len(spec.Value) != 3 {
			return fmt.Errorf("advection field %q expects 3 values, got %d", spec.Name, len(spec.Value))
		}
		return adv.DefByValue(spec.Value[0], spec.Value[1], spec.Value[2])
	}
	return nil
}

func buildEquation(d *domain.Domain, spec EquationSpec) error {
	varType, err := equation.ParseVarType(spec.Type)
	if err != nil {
		return fmt.Errorf("equation %q: %w", spec.Name, err)
	}
	defBC := equation.ZeroValue
	if spec.DefaultBC != "" {
		defBC, err = equation.ParseDefaultBC(spec.DefaultBC)
		if err != nil {
			return fmt.Errorf("equation %q: %w", spec.Name, err)
		}
	}
	eq, err := d.AddUserEquation(spec.Name, spec.Field, varType, defBC)
	if err != nil {
		return err
	}

	for roleName, termName := range spec.Links {
		role, err := equation.ParseRole(roleName)
		if err != nil {
			return fmt.Errorf("equation %q: %w", spec.Name, err)
		}
		var term any
		if role == equation.RoleAdvection {
			term, err = d.AdvectionField(termName)
		} else {
			term, err = d.Property(termName)
		}
		if err != nil {
			return fmt.Errorf("equation %q link %s: %w", spec.Name, roleName, err)
		}
		if err := eq.Link(role, term); err != nil {
			return err
		}
	}

	for key, val := range spec.Options {
		if err := eq.SetOption(key, val); err != nil {
			return err
		}
	}

	for _, bc := range spec.BoundaryConditions {
		bcType, err := terms.ParseBCType(bc.Type)
		if err != nil {
			return fmt.Errorf("equation %q: %w", spec.Name, err)
		}
		ev, err := termEvaluator(bc.Value, bc.Analytic)
		if err != nil {
			return fmt.Errorf("equation %q bc on %q: %w", spec.Name, bc.Location, err)
		}
		if err := eq.AddBoundaryCondition(bc.Location, bcType, ev); err != nil {
			return err
		}
	}

	for _, st := range spec.SourceTerms {
		sup, err := terms.ParseSupport(st.Location)
		if err != nil {
			return fmt.Errorf("equation %q source %q: %w", spec.Name, st.Label, err)
		}
		ev, err := termEvaluator(st.Value, st.Analytic)
		if err != nil {
			return fmt.Errorf("equation %q source %q: %w", spec.Name, st.Label, err)
		}
		if err := eq.AddSourceTerm(st.Label, sup, ev); err != nil {
			return err
		}
		added := eq.SourceTerms()[len(eq.SourceTerms())-1]
		if st.Quadrature != "" {
			pol, err := quadrature.ParsePolicy(st.Quadrature)
			if err != nil {
				return fmt.Errorf("equation %q source %q: %v: %w",
					spec.Name, st.Label, err, equation.ErrInvalidOption)
			}
			added.SetQuadrature(pol)
		}
		if st.Post != nil {
			if err := added.SetPost(*st.Post); err != nil {
				return fmt.Errorf("equation %q source %q: %v: %w",
					spec.Name, st.Label, err, equation.ErrInvalidOption)
			}
		}
	}
	return nil
}

func termEvaluator(value *float64, analytic string) (evaluator.Evaluator, error) {
	switch {
	case value != nil && analytic != "":
		return nil, fmt.Errorf("both value and analytic given")
	case value != nil:
		return evaluator.NewConstant(evaluator.ScalarValue(*value)), nil
	case analytic != "":
		entry, err := lookupAnalytic(analytic)
		if err != nil {
			return nil, err
		}
		return evaluator.NewAnalytic(entry.shape, entry.fn), nil
	}
	return nil, fmt.Errorf("neither value nor analytic given")
}
