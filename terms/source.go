package terms

import (
	"fmt"

	"github.com/cdokit/cdokit/evaluator"
	"github.com/cdokit/cdokit/geom"
	"github.com/cdokit/cdokit/quadrature"
)

// Support is the class of mesh entities a term is attached to.
type Support uint8

const (
	Cells Support = iota
	InteriorFaces
	BoundaryFaces
	Vertices
)

func (s Support) String() string {
	switch s {
	case Cells:
		return "cells"
	case InteriorFaces:
		return "interior_faces"
	case BoundaryFaces:
		return "boundary_faces"
	case Vertices:
		return "vertices"
	}
	return "unknown"
}

// ParseSupport maps the predefined mesh-location names to a Support.
func ParseSupport(s string) (Support, error) {
	switch s {
	case "cells":
		return Cells, nil
	case "interior_faces":
		return InteriorFaces, nil
	case "boundary_faces":
		return BoundaryFaces, nil
	case "vertices":
		return Vertices, nil
	}
	return Cells, fmt.Errorf("unknown mesh entity class %q", s)
}

// Post-processing cadence values for a source term.
const (
	PostNever   = -1 // never post-process
	PostInitial = 0  // post-process the initial state only
)

// SourceTerm is a volumetric (or surface) source contribution. The
// label is optional; when present it keys per-term option setting
// within an equation.
type SourceTerm struct {
	label   string
	support Support
	eval    evaluator.Evaluator

	quad    quadrature.Policy
	quadSet bool // an explicit policy was already chosen
	post    int
}

// NewSourceTerm creates a source term with the default barycenter
// quadrature and post-processing disabled.
func NewSourceTerm(label string, support Support, ev evaluator.Evaluator) *SourceTerm {
	return &SourceTerm{
		label:   label,
		support: support,
		eval:    ev,
		quad:    quadrature.Bary,
		post:    PostNever,
	}
}

func (st *SourceTerm) Label() string                 { return st.label }
func (st *SourceTerm) Support() Support              { return st.support }
func (st *SourceTerm) Quadrature() quadrature.Policy { return st.quad }
func (st *SourceTerm) Post() int                     { return st.post }

// SetQuadrature selects the quadrature policy. It reports whether a
// previously chosen policy was overwritten (last write wins).
func (st *SourceTerm) SetQuadrature(pol quadrature.Policy) (rebound bool) {
	rebound = st.quadSet && pol != st.quad
	st.quad = pol
	st.quadSet = true
	return rebound
}

// SetPost sets the post-processing cadence: PostNever, PostInitial or
// every n iterations for n > 0.
func (st *SourceTerm) SetPost(n int) error {
	if n < PostNever {
		return fmt.Errorf("post cadence %d out of range", n)
	}
	st.post = n
	return nil
}

// Integrate computes the source contribution over one entity using the
// term's quadrature policy.
func (st *SourceTerm) Integrate(e geom.Entity, time float64) (evaluator.Value, error) {
	return quadrature.Integrate(e, st.eval, time, st.quad)
}
