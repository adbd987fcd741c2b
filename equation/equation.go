// Package equation wires named terms into named equations: at most one
// property each for the time and diffusion roles, at most one advection
// field for the advection role, plus ordered lists of boundary
// conditions and source terms. An equation moves through a small state
// machine (Declared, Configuring, Sealed); once sealed it is read-only
// and safe for concurrent evaluation by assembly workers.
package equation

import (
	"errors"
	"fmt"
	"log"
	"strconv"

	"github.com/cdokit/cdokit/evaluator"
	"github.com/cdokit/cdokit/quadrature"
	"github.com/cdokit/cdokit/terms"
)

var (
	// ErrRoleMismatch reports a term bound to an incompatible role.
	ErrRoleMismatch = errors.New("equation: role mismatch")
	// ErrSealed reports mutation of a sealed equation.
	ErrSealed = errors.New("equation: sealed")
	// ErrUnknownName reports a source-term label lookup miss.
	ErrUnknownName = errors.New("equation: unknown name")
	// ErrDuplicateName reports a duplicate source-term label.
	ErrDuplicateName = errors.New("equation: duplicate name")
	// ErrInvalidOption reports an unrecognized option key or an
	// out-of-range value.
	ErrInvalidOption = errors.New("equation: invalid option")
)

// Role is the functional slot a term is bound to.
type Role uint8

const (
	RoleTime Role = iota
	RoleDiffusion
	RoleAdvection
)

func (r Role) String() string {
	switch r {
	case RoleTime:
		return "time"
	case RoleDiffusion:
		return "diffusion"
	case RoleAdvection:
		return "advection"
	}
	return "unknown"
}

// ParseRole maps the linking keywords to a Role.
func ParseRole(s string) (Role, error) {
	switch s {
	case "time":
		return RoleTime, nil
	case "diffusion":
		return RoleDiffusion, nil
	case "advection":
		return RoleAdvection, nil
	}
	return RoleTime, fmt.Errorf("unknown role %q", s)
}

// State is the configuration lifecycle stage of an equation.
type State uint8

const (
	Declared State = iota
	Configuring
	Sealed
)

func (s State) String() string {
	switch s {
	case Declared:
		return "declared"
	case Configuring:
		return "configuring"
	case Sealed:
		return "sealed"
	}
	return "unknown"
}

// VarType is the tensor order of the unknown field.
type VarType uint8

const (
	ScalarVar VarType = iota
	VectorVar
	TensorVar
)

// ParseVarType maps the equation type keywords to a VarType.
func ParseVarType(s string) (VarType, error) {
	switch s {
	case "scalar":
		return ScalarVar, nil
	case "vector":
		return VectorVar, nil
	case "tensor":
		return TensorVar, nil
	}
	return ScalarVar, fmt.Errorf("unknown equation type %q", s)
}

// DefaultBC selects the boundary condition applied where no explicit
// one is given.
type DefaultBC uint8

const (
	ZeroValue DefaultBC = iota // homogeneous Dirichlet
	ZeroFlux                   // homogeneous Neumann
)

// ParseDefaultBC maps the default boundary keywords to a DefaultBC.
func ParseDefaultBC(s string) (DefaultBC, error) {
	switch s {
	case "zero_value":
		return ZeroValue, nil
	case "zero_flux":
		return ZeroFlux, nil
	}
	return ZeroValue, fmt.Errorf("unknown default boundary condition %q", s)
}

// WarnFunc receives non-fatal configuration warnings (rebinding a role
// or resetting a source-term policy).
type WarnFunc func(format string, args ...any)

// Equation is a named user equation under configuration.
type Equation struct {
	name      string
	field     string
	varType   VarType
	defaultBC DefaultBC
	state     State

	timePty   *terms.Property
	diffPty   *terms.Property
	advection *terms.AdvectionField

	bcs     []*terms.BoundaryCondition
	sources []*terms.SourceTerm

	options map[string]string
	warn    WarnFunc
}

// New declares an equation for the unknown field of the given name.
func New(name, field string, varType VarType, defaultBC DefaultBC) *Equation {
	return &Equation{
		name:      name,
		field:     field,
		varType:   varType,
		defaultBC: defaultBC,
		state:     Declared,
		options:   map[string]string{},
		warn:      log.Printf,
	}
}

func (eq *Equation) Name() string         { return eq.name }
func (eq *Equation) Field() string        { return eq.field }
func (eq *Equation) VarType() VarType     { return eq.varType }
func (eq *Equation) DefaultBC() DefaultBC { return eq.defaultBC }
func (eq *Equation) State() State         { return eq.state }
func (eq *Equation) Sealed() bool         { return eq.state == Sealed }

// SetWarnFunc replaces the warning hook. A nil hook silences warnings.
func (eq *Equation) SetWarnFunc(fn WarnFunc) {
	if fn == nil {
		fn = func(string, ...any) {}
	}
	eq.warn = fn
}

func (eq *Equation) mutable() error {
	if eq.state == Sealed {
		return fmt.Errorf("equation %q: %w", eq.name, ErrSealed)
	}
	eq.state = Configuring
	return nil
}

// Link binds a term to a role. The time and diffusion roles accept a
// *terms.Property, the advection role a *terms.AdvectionField; anything
// else fails with ErrRoleMismatch. Rebinding a role replaces the prior
// binding (last write wins) and raises a warning.
func (eq *Equation) Link(role Role, term any) error {
	if err := eq.mutable(); err != nil {
		return err
	}
	switch role {
	case RoleTime, RoleDiffusion:
		pty, ok := term.(*terms.Property)
		if !ok {
			return fmt.Errorf("equation %q: role %v expects a property, got %T: %w",
				eq.name, role, term, ErrRoleMismatch)
		}
		slot := &eq.timePty
		if role == RoleDiffusion {
			slot = &eq.diffPty
		}
		if *slot != nil {
			eq.warn("equation %q: rebinding role %v from %q to %q",
				eq.name, role, (*slot).Name(), pty.Name())
		}
		*slot = pty
	case RoleAdvection:
		adv, ok := term.(*terms.AdvectionField)
		if !ok {
			return fmt.Errorf("equation %q: role advection expects an advection field, got %T: %w",
				eq.name, term, ErrRoleMismatch)
		}
		if eq.advection != nil {
			eq.warn("equation %q: rebinding role advection from %q to %q",
				eq.name, eq.advection.Name(), adv.Name())
		}
		eq.advection = adv
	default:
		return fmt.Errorf("equation %q: unknown role %d: %w", eq.name, role, ErrRoleMismatch)
	}
	return nil
}

// Property returns the property bound to the time or diffusion role,
// or nil when the role is unbound.
func (eq *Equation) Property(role Role) *terms.Property {
	switch role {
	case RoleTime:
		return eq.timePty
	case RoleDiffusion:
		return eq.diffPty
	}
	return nil
}

// AdvectionField returns the field bound to the advection role, or nil.
func (eq *Equation) AdvectionField() *terms.AdvectionField {
	return eq.advection
}

// AddBoundaryCondition appends a boundary condition. Insertion order is
// preserved for deterministic assembly traversal.
func (eq *Equation) AddBoundaryCondition(location string, bcType terms.BCType, ev evaluator.Evaluator) error {
	if err := eq.mutable(); err != nil {
		return err
	}
	eq.bcs = append(eq.bcs, terms.NewBoundaryCondition(location, bcType, ev))
	return nil
}

// BoundaryConditions returns the conditions in insertion order.
func (eq *Equation) BoundaryConditions() []*terms.BoundaryCondition {
	return eq.bcs
}

// AddSourceTerm appends a source term. The label may be empty; a
// non-empty label must be unique within the equation.
func (eq *Equation) AddSourceTerm(label string, support terms.Support, ev evaluator.Evaluator) error {
	if err := eq.mutable(); err != nil {
		return err
	}
	if label != "" {
		for _, st := range eq.sources {
			if st.Label() == label {
				return fmt.Errorf("equation %q: source term %q: %w", eq.name, label, ErrDuplicateName)
			}
		}
	}
	eq.sources = append(eq.sources, terms.NewSourceTerm(label, support, ev))
	return nil
}

// SourceTerms returns the source terms in insertion order.
func (eq *Equation) SourceTerms() []*terms.SourceTerm {
	return eq.sources
}

// SetSourceTermOption sets a per-source-term option. An empty label
// applies the option to every source term attached to the equation.
// Recognized keys: "quadrature" (bary, subdiv, higher, highest) and
// "post" (-1, 0, or a positive cadence).
func (eq *Equation) SetSourceTermOption(label, key, val string) error {
	if err := eq.mutable(); err != nil {
		return err
	}

	var targets []*terms.SourceTerm
	if label == "" {
		targets = eq.sources
	} else {
		for _, st := range eq.sources {
			if st.Label() == label {
				targets = append(targets, st)
			}
		}
		if len(targets) == 0 {
			return fmt.Errorf("equation %q: no source term labeled %q: %w", eq.name, label, ErrUnknownName)
		}
	}

	switch key {
	case "quadrature":
		pol, err := quadrature.ParsePolicy(val)
		if err != nil {
			return fmt.Errorf("equation %q: %v: %w", eq.name, err, ErrInvalidOption)
		}
		for _, st := range targets {
			if st.SetQuadrature(pol) {
				eq.warn("equation %q: source term %q quadrature reset to %q (last write wins)",
					eq.name, st.Label(), val)
			}
		}
	case "post":
		n, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("equation %q: post cadence %q: %w", eq.name, val, ErrInvalidOption)
		}
		for _, st := range targets {
			if err := st.SetPost(n); err != nil {
				return fmt.Errorf("equation %q: %v: %w", eq.name, err, ErrInvalidOption)
			}
		}
	default:
		return fmt.Errorf("equation %q: unknown source term option %q: %w", eq.name, key, ErrInvalidOption)
	}
	return nil
}

// Seal transitions the equation to its read-only, assembly-ready
// state. Sealing also propagates the bc_quadrature option to the
// attached boundary conditions. Sealing twice is a no-op.
func (eq *Equation) Seal() {
	if eq.state == Sealed {
		return
	}
	if v, ok := eq.options["bc_quadrature"]; ok {
		pol, err := quadrature.ParsePolicy(v)
		if err == nil {
			for _, bc := range eq.bcs {
				bc.SetQuadrature(pol)
			}
		}
	}
	eq.state = Sealed
}
