package domain

import (
	"fmt"
	"strings"

	"github.com/cdokit/cdokit/equation"
)

// String returns a setup summary of the domain configuration.
func (d *Domain) String() string {
	var sb strings.Builder

	sb.WriteString("=== Domain Setup Summary ===\n")

	sb.WriteString("\n--- Domain Settings ---\n")
	sb.WriteString(fmt.Sprintf("  Default boundary: %v\n", d.defaultBoundary))
	for _, b := range d.boundaries {
		sb.WriteString(fmt.Sprintf("  Boundary %q: %v\n", b.Location, b.Kind))
	}
	ts := d.timeStep
	if ts.MaxIter > 0 {
		sb.WriteString(fmt.Sprintf("  Time stepping: max %d iterations, final time %g\n",
			ts.MaxIter, ts.FinalTime))
		if ts.Kind == TimeStepValue {
			sb.WriteString(fmt.Sprintf("  Time step: constant %g\n", ts.Value))
		}
	}
	if d.wallDistance {
		sb.WriteString("  Wall distance computation: active\n")
	}
	for _, loc := range d.MeshLocations() {
		if loc.Criterion != "" {
			sb.WriteString(fmt.Sprintf("  Mesh location %q: %v where %s\n",
				loc.Name, loc.Support, loc.Criterion))
		}
	}

	sb.WriteString("\n--- Properties ---\n")
	for _, p := range d.Properties() {
		state := "undefined"
		if p.Defined() {
			state = "defined"
		}
		sb.WriteString(fmt.Sprintf("  %s (%v, %s)\n", p.Name(), p.Class(), state))
	}

	sb.WriteString("\n--- Advection Fields ---\n")
	for _, a := range d.AdvectionFields() {
		state := "undefined"
		if a.Defined() {
			state = "defined"
		}
		sb.WriteString(fmt.Sprintf("  %s (%s)\n", a.Name(), state))
	}

	sb.WriteString("\n--- Equations ---\n")
	for _, eq := range d.Equations() {
		sb.WriteString(fmt.Sprintf("  %s (field %q, %v)\n", eq.Name(), eq.Field(), eq.State()))
		for _, role := range []equation.Role{equation.RoleTime, equation.RoleDiffusion} {
			if pty := eq.Property(role); pty != nil {
				sb.WriteString(fmt.Sprintf("    %v term: property %q\n", role, pty.Name()))
			}
		}
		if adv := eq.AdvectionField(); adv != nil {
			sb.WriteString(fmt.Sprintf("    advection term: field %q\n", adv.Name()))
		}
		for _, bc := range eq.BoundaryConditions() {
			sb.WriteString(fmt.Sprintf("    bc on %q: %v (%v)\n",
				bc.Location(), bc.Type(), bc.DefKind()))
		}
		for _, st := range eq.SourceTerms() {
			label := st.Label()
			if label == "" {
				label = "(unlabeled)"
			}
			sb.WriteString(fmt.Sprintf("    source %s on %v: quadrature %v, post %d\n",
				label, st.Support(), st.Quadrature(), st.Post()))
		}
	}

	sb.WriteString("\n============================\n")
	return sb.String()
}
