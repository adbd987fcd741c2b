package terms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/cdokit/cdokit/evaluator"
	"github.com/cdokit/cdokit/geom"
	"github.com/cdokit/cdokit/quadrature"
)

func TestPropertyClassShapes(t *testing.T) {
	assert.Equal(t, evaluator.Scalar, Isotropic.Shape())
	assert.Equal(t, evaluator.Vector, Orthotropic.Shape())
	assert.Equal(t, evaluator.Tensor, Anisotropic.Shape())
}

func TestParsePropertyClass(t *testing.T) {
	c, err := ParsePropertyClass("anisotropic")
	require.NoError(t, err)
	assert.Equal(t, Anisotropic, c)

	_, err = ParsePropertyClass("diagonal")
	assert.Error(t, err)
}

func TestPropertyDefByValue(t *testing.T) {
	p := NewProperty("rho.cp", Isotropic)
	assert.False(t, p.Defined())

	require.NoError(t, p.DefByValue(evaluator.ScalarValue(1.0)))
	assert.True(t, p.Defined())

	v, err := p.Evaluate(geom.Point{3, -2, 7}, 5.0)
	require.NoError(t, err)
	assert.Equal(t, 1.0, v.Real)
}

func TestPropertyShapeValidation(t *testing.T) {
	p := NewProperty("conductivity", Anisotropic)

	// An isotropic value on an anisotropic property is rejected.
	err := p.DefByValue(evaluator.ScalarValue(1.0))
	assert.ErrorIs(t, err, evaluator.ErrShapeMismatch)
	assert.False(t, p.Defined())

	cond := mat.NewSymDense(3, []float64{
		1.0, 0.5, 0.0,
		0.5, 1.0, 0.5,
		0.0, 0.5, 1.0,
	})
	require.NoError(t, p.DefByValue(evaluator.TensorValue(cond)))

	v, err := p.Evaluate(geom.Point{}, 0)
	require.NoError(t, err)
	assert.InDeltaSlice(t, cond.RawSymmetric().Data, v.Tens.RawSymmetric().Data, 0)
}

func TestOrthotropicProperty(t *testing.T) {
	p := NewProperty("permeability", Orthotropic)
	require.NoError(t, p.DefByValue(evaluator.VectorValue(0.5, 0.1, 1.0)))

	v, err := p.Evaluate(geom.Point{1, 2, 3}, 0)
	require.NoError(t, err)
	assert.Equal(t, [3]float64{0.5, 0.1, 1.0}, v.Vect)
}

func TestUndefinedPropertyEvaluate(t *testing.T) {
	p := NewProperty("empty", Isotropic)
	_, err := p.Evaluate(geom.Point{}, 0)
	assert.Error(t, err)
}

func TestPropertyDefByLaw(t *testing.T) {
	type soil struct{ K0, Beta float64 }

	p := NewProperty("k", Isotropic)
	require.NoError(t, p.DefByLaw(func(pt geom.Point, time float64, ctx any) evaluator.Value {
		s := ctx.(soil)
		return evaluator.ScalarValue(s.K0 + s.Beta*pt.Z())
	}, soil{K0: 1, Beta: 0.5}))

	v, err := p.Evaluate(geom.Point{0, 0, 2}, 0)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, v.Real, 1e-14)
}

func TestAdvectionField(t *testing.T) {
	adv := NewAdvectionField("adv_field")
	require.NoError(t, adv.DefByAnalytic(func(p geom.Point, _ float64) evaluator.Value {
		return evaluator.VectorValue(p.Y()-0.5, 0.5-p.X(), p.Z())
	}))

	v, err := adv.Evaluate(geom.Point{0, 0, 1}, 0)
	require.NoError(t, err)
	assert.Equal(t, [3]float64{-0.5, 0.5, 1}, v.Vect)
}

func TestParseSupport(t *testing.T) {
	for key, want := range map[string]Support{
		"cells":          Cells,
		"interior_faces": InteriorFaces,
		"boundary_faces": BoundaryFaces,
		"vertices":       Vertices,
	} {
		got, err := ParseSupport(key)
		require.NoError(t, err)
		assert.Equal(t, want, got)
		assert.Equal(t, key, got.String())
	}

	_, err := ParseSupport("edges")
	assert.Error(t, err)
}

func TestSourceTermDefaults(t *testing.T) {
	st := NewSourceTerm("SourceTerm", Cells, evaluator.NewConstant(evaluator.ScalarValue(1)))

	assert.Equal(t, quadrature.Bary, st.Quadrature())
	assert.Equal(t, PostNever, st.Post())
}

func TestSourceTermQuadratureLastWriteWins(t *testing.T) {
	st := NewSourceTerm("SourceTerm", Cells, evaluator.NewConstant(evaluator.ScalarValue(1)))

	rebound := st.SetQuadrature(quadrature.Bary)
	assert.False(t, rebound)

	rebound = st.SetQuadrature(quadrature.Subdiv)
	assert.True(t, rebound)
	assert.Equal(t, quadrature.Subdiv, st.Quadrature())
}

func TestSourceTermIntegrate(t *testing.T) {
	st := NewSourceTerm("", Cells, evaluator.NewConstant(evaluator.ScalarValue(2)))
	st.SetQuadrature(quadrature.Subdiv)

	hex := geom.NewHexCell(0, 0, 0, 1, 1, 1)
	v, err := st.Integrate(hex, 0)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, v.Real, 1e-12)
}

func TestSourceTermPostRange(t *testing.T) {
	st := NewSourceTerm("", Cells, evaluator.NewConstant(evaluator.ScalarValue(1)))

	assert.NoError(t, st.SetPost(PostNever))
	assert.NoError(t, st.SetPost(PostInitial))
	assert.NoError(t, st.SetPost(10))
	assert.Error(t, st.SetPost(-2))
}

func TestBoundaryCondition(t *testing.T) {
	bc := NewBoundaryCondition("boundary_faces", Dirichlet,
		evaluator.NewConstant(evaluator.ScalarValue(4.0)))

	assert.Equal(t, Dirichlet, bc.Type())
	assert.Equal(t, evaluator.ByValue, bc.DefKind())
	assert.Equal(t, quadrature.Bary, bc.Quadrature())

	face := geom.NewFace(
		geom.Point{0, 0, 0}, geom.Point{1, 0, 0},
		geom.Point{1, 1, 0}, geom.Point{0, 1, 0},
	)
	v, err := bc.Integrate(face, 0)
	require.NoError(t, err)
	assert.InDelta(t, 4.0, v.Real, 1e-13)

	bc.SetQuadrature(quadrature.Highest)
	v, err = bc.Integrate(face, 0)
	require.NoError(t, err)
	assert.InDelta(t, 4.0, v.Real, 1e-13)
}

func TestParseBCType(t *testing.T) {
	for key, want := range map[string]BCType{
		"dirichlet": Dirichlet,
		"neumann":   Neumann,
		"robin":     Robin,
	} {
		got, err := ParseBCType(key)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseBCType("cauchy")
	assert.Error(t, err)
}
