package terms

import (
	"fmt"

	"github.com/cdokit/cdokit/evaluator"
	"github.com/cdokit/cdokit/geom"
	"github.com/cdokit/cdokit/quadrature"
)

// BCType is the mathematical type of a boundary condition.
type BCType uint8

const (
	Dirichlet BCType = iota
	Neumann
	Robin
)

func (t BCType) String() string {
	switch t {
	case Dirichlet:
		return "dirichlet"
	case Neumann:
		return "neumann"
	case Robin:
		return "robin"
	}
	return "unknown"
}

// ParseBCType maps the configuration keywords to a BCType.
func ParseBCType(s string) (BCType, error) {
	switch s {
	case "dirichlet":
		return Dirichlet, nil
	case "neumann":
		return Neumann, nil
	case "robin":
		return Robin, nil
	}
	return Dirichlet, fmt.Errorf("unknown boundary condition type %q", s)
}

// BoundaryCondition prescribes a value or flux on a named mesh
// location of boundary faces.
type BoundaryCondition struct {
	location string
	bcType   BCType
	eval     evaluator.Evaluator
	quad     quadrature.Policy
}

// NewBoundaryCondition attaches an evaluator to a boundary location.
// The definition kind (constant value or analytic) follows from the
// evaluator.
func NewBoundaryCondition(location string, bcType BCType, ev evaluator.Evaluator) *BoundaryCondition {
	return &BoundaryCondition{
		location: location,
		bcType:   bcType,
		eval:     ev,
		quad:     quadrature.Bary,
	}
}

func (bc *BoundaryCondition) Location() string              { return bc.location }
func (bc *BoundaryCondition) Type() BCType                  { return bc.bcType }
func (bc *BoundaryCondition) DefKind() evaluator.Kind       { return bc.eval.Kind() }
func (bc *BoundaryCondition) Quadrature() quadrature.Policy { return bc.quad }

// SetQuadrature selects the policy used to integrate the condition
// over boundary faces (the bc_quadrature equation option).
func (bc *BoundaryCondition) SetQuadrature(pol quadrature.Policy) {
	bc.quad = pol
}

// Evaluate returns the prescribed value at a point and time.
func (bc *BoundaryCondition) Evaluate(pt geom.Point, time float64) (evaluator.Value, error) {
	return bc.eval.Evaluate(pt, time)
}

// Integrate computes the condition's contribution over one boundary
// face.
func (bc *BoundaryCondition) Integrate(face geom.Entity, time float64) (evaluator.Value, error) {
	return quadrature.Integrate(face, bc.eval, time, bc.quad)
}
