package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cdokit/cdokit/domain"
	"github.com/cdokit/cdokit/equation"
	"github.com/cdokit/cdokit/evaluator"
	"github.com/cdokit/cdokit/geom"
	"github.com/cdokit/cdokit/quadrature"
	"github.com/cdokit/cdokit/terms"
)

// The driven-cavity convection-diffusion case: rotating advection
// field, sine-product Dirichlet value and the matching manufactured
// source term with composed first and second derivatives.
func registerCavityFunctions() {
	RegisterAnalytic("cavity_velocity", evaluator.Vector,
		func(p geom.Point, _ float64) evaluator.Value {
			return evaluator.VectorValue(p.Y()-0.5, 0.5-p.X(), p.Z())
		})

	RegisterAnalytic("cavity_bc", evaluator.Scalar,
		func(p geom.Point, _ float64) evaluator.Value {
			x, y, z := p.X(), p.Y(), p.Z()
			return evaluator.ScalarValue(
				1 + math.Sin(math.Pi*x)*math.Sin(math.Pi*(y+0.5))*math.Sin(math.Pi*(z+1.0/3.0)))
		})

	RegisterAnalytic("cavity_source", evaluator.Scalar,
		func(p geom.Point, _ float64) evaluator.Value {
			x, y, z := p.X(), p.Y(), p.Z()
			pi := math.Pi
			pi2 := pi * pi
			cpx, spx := math.Cos(pi*x), math.Sin(pi*x)
			cpy, spy := math.Cos(pi*(y+0.5)), math.Sin(pi*(y+0.5))
			cpz, spz := math.Cos(pi*(z+1.0/3.0)), math.Sin(pi*(z+1.0/3.0))

			// first derivatives
			gx := pi * cpx * spy * spz
			gy := pi * spx * cpy * spz
			gz := pi * spx * spy * cpz

			// second derivatives
			gxx := -pi2 * spx * spy * spz
			gyy, gzz := gxx, gxx
			gxy := pi2 * cpx * cpy * spz
			gxz := pi2 * cpx * spy * cpz
			gyz := pi2 * spx * cpy * cpz

			// conductivity [[1,.5,0],[.5,1,.5],[0,.5,1]]
			diff := gxx + gyy + gzz + 2*(0.5*gxy+0.0*gxz+0.5*gyz)

			adv := (p.Y()-0.5)*gx + (0.5-p.X())*gy + p.Z()*gz + 1 + spx*spy*spz
			return evaluator.ScalarValue(-diff + adv)
		})
}

const cavityCase = `domain:
  default_boundary: wall
  mesh_locations:
    - {name: in, support: boundary_faces, criterion: "x < 1e-5"}
    - {name: out, support: boundary_faces, criterion: "x > 0.9999"}
  boundaries:
    - {location: in, kind: inlet}
    - {location: out, kind: outlet}
  time_step: {max_iter: 100, final_time: 10.0, kind: value, value: 1.0}
  wall_distance: true
properties:
  - name: conductivity
    class: anisotropic
    value: [1.0, 0.5, 0.0, 0.5, 1.0, 0.5, 0.0, 0.5, 1.0]
  - name: rho.cp
    class: isotropic
    value: [1.0]
advection_fields:
  - name: adv_field
    analytic: cavity_velocity
equations:
  - name: AdvDiff
    field: Potential
    type: scalar
    default_bc: zero_value
    links: {time: rho.cp, diffusion: conductivity, advection: adv_field}
    options: {hodge_diff_algo: cost, verbosity: "2"}
    boundary_conditions:
      - {location: boundary_faces, type: dirichlet, analytic: cavity_bc}
    source_terms:
      - {label: SourceTerm, location: cells, analytic: cavity_source, quadrature: subdiv}
`

func writeCase(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "case.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadAndBuildCavityCase(t *testing.T) {
	registerCavityFunctions()

	c, err := Load(writeCase(t, cavityCase))
	require.NoError(t, err)

	d, err := c.Build()
	require.NoError(t, err)
	d.SetWarnFunc(nil)

	t.Run("DomainSettings", func(t *testing.T) {
		assert.Equal(t, domain.Wall, d.DefaultBoundary())
		assert.True(t, d.WallDistanceActive())

		bs := d.Boundaries()
		require.Len(t, bs, 2)
		assert.Equal(t, domain.Inlet, bs[0].Kind)
		assert.Equal(t, domain.Outlet, bs[1].Kind)

		ts := d.TimeStepSettings()
		assert.Equal(t, 100, ts.MaxIter)
		assert.InDelta(t, 10.0, ts.FinalTime, 0)
		assert.InDelta(t, 1.0, ts.Value, 0)

		loc, err := d.MeshLocation("in")
		require.NoError(t, err)
		assert.Equal(t, terms.BoundaryFaces, loc.Support)
		assert.Equal(t, "x < 1e-5", loc.Criterion)
	})

	t.Run("Conductivity", func(t *testing.T) {
		pty, err := d.Property("conductivity")
		require.NoError(t, err)
		assert.Equal(t, terms.Anisotropic, pty.Class())

		v, err := pty.Evaluate(geom.Point{0.1, 0.2, 0.3}, 0)
		require.NoError(t, err)
		assert.InDelta(t, 1.0, v.Tens.At(0, 0), 0)
		assert.InDelta(t, 0.5, v.Tens.At(0, 1), 0)
		assert.InDelta(t, 0.5, v.Tens.At(2, 1), 0)
	})

	t.Run("AdvectionField", func(t *testing.T) {
		adv, err := d.AdvectionField("adv_field")
		require.NoError(t, err)
		v, err := adv.Evaluate(geom.Point{0.25, 0.75, 1.0}, 0)
		require.NoError(t, err)
		assert.InDelta(t, 0.25, v.Vect[0], 1e-14)
		assert.InDelta(t, 0.25, v.Vect[1], 1e-14)
		assert.InDelta(t, 1.0, v.Vect[2], 1e-14)
	})

	t.Run("Equation", func(t *testing.T) {
		eq, err := d.Equation("AdvDiff")
		require.NoError(t, err)

		assert.Equal(t, "Potential", eq.Field())
		assert.NotNil(t, eq.Property(equation.RoleTime))
		assert.Equal(t, "conductivity", eq.Property(equation.RoleDiffusion).Name())
		assert.Equal(t, "adv_field", eq.AdvectionField().Name())

		v, ok := eq.Option("hodge_diff_algo")
		assert.True(t, ok)
		assert.Equal(t, "cost", v)

		bcs := eq.BoundaryConditions()
		require.Len(t, bcs, 1)
		assert.Equal(t, terms.Dirichlet, bcs[0].Type())
		assert.Equal(t, evaluator.ByAnalytic, bcs[0].DefKind())

		val, err := bcs[0].Evaluate(geom.Point{0, 0, 0}, 0)
		require.NoError(t, err)
		assert.InDelta(t, 1.0, val.Real, 1e-12)

		sts := eq.SourceTerms()
		require.Len(t, sts, 1)
		assert.Equal(t, "SourceTerm", sts[0].Label())
		assert.Equal(t, quadrature.Subdiv, sts[0].Quadrature())
	})

	t.Run("SourceIntegrates", func(t *testing.T) {
		eq, err := d.Equation("AdvDiff")
		require.NoError(t, err)
		st := eq.SourceTerms()[0]

		hex := geom.NewHexCell(0, 0, 0, 0.1, 0.1, 0.1)
		v, err := st.Integrate(hex, 0)
		require.NoError(t, err)
		assert.False(t, math.IsNaN(v.Real))
	})
}

func TestBuildUnknownLink(t *testing.T) {
	c := &Case{
		Equations: []EquationSpec{{
			Name:  "Lonely",
			Field: "u",
			Type:  "scalar",
			Links: map[string]string{"diffusion": "no_such_property"},
		}},
	}
	_, err := c.Build()
	assert.ErrorIs(t, err, domain.ErrUnknownName)
}

func TestBuildBadTensor(t *testing.T) {
	c := &Case{
		Properties: []PropertySpec{{
			Name:  "skew",
			Class: "anisotropic",
			Value: []float64{1, 2, 0, 3, 1, 0, 0, 0, 1}, // not symmetric
		}},
	}
	_, err := c.Build()
	assert.Error(t, err)
}

func TestBuildBadOption(t *testing.T) {
	c := &Case{
		Equations: []EquationSpec{{
			Name:    "Eq",
			Field:   "u",
			Type:    "scalar",
			Options: map[string]string{"time_theta": "1.5"},
		}},
	}
	_, err := c.Build()
	assert.ErrorIs(t, err, equation.ErrInvalidOption)
}

func TestBuildUnregisteredAnalytic(t *testing.T) {
	c := &Case{
		AdvectionFields: []AdvectionSpec{{
			Name:     "ghost",
			Analytic: "never_registered",
		}},
	}
	_, err := c.Build()
	assert.Error(t, err)
}

func TestBuildSourceTermNeedsDefinition(t *testing.T) {
	c := &Case{
		Equations: []EquationSpec{{
			Name:        "Eq",
			Field:       "u",
			Type:        "scalar",
			SourceTerms: []SourceSpec{{Label: "st", Location: "cells"}},
		}},
	}
	_, err := c.Build()
	assert.Error(t, err)
}
