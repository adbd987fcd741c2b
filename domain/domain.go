// Package domain holds the top-level configuration of a computational
// case: named properties, advection fields and equations, plus the
// declarative domain settings (boundaries, time stepping, mesh
// locations) handed to the driver. A Domain is populated once during a
// single-threaded setup phase and becomes read-only after Seal.
package domain

import (
	"errors"
	"fmt"
	"log"

	"github.com/cdokit/cdokit/equation"
	"github.com/cdokit/cdokit/evaluator"
	"github.com/cdokit/cdokit/terms"
)

var (
	// ErrUnknownName reports a lookup miss.
	ErrUnknownName = errors.New("domain: unknown name")
	// ErrDuplicateName reports a registration collision within a
	// category.
	ErrDuplicateName = errors.New("domain: duplicate name")
)

// BoundaryKind classifies a boundary zone for the solver.
type BoundaryKind uint8

const (
	Wall BoundaryKind = iota
	Symmetry
	Inlet
	Outlet
)

func (k BoundaryKind) String() string {
	switch k {
	case Wall:
		return "wall"
	case Symmetry:
		return "symmetry"
	case Inlet:
		return "inlet"
	case Outlet:
		return "outlet"
	}
	return "unknown"
}

// ParseBoundaryKind maps the boundary keywords to a BoundaryKind.
func ParseBoundaryKind(s string) (BoundaryKind, error) {
	switch s {
	case "wall":
		return Wall, nil
	case "symmetry":
		return Symmetry, nil
	case "inlet":
		return Inlet, nil
	case "outlet":
		return Outlet, nil
	}
	return Wall, fmt.Errorf("unknown boundary kind %q", s)
}

// Boundary associates a mesh location with a boundary kind.
type Boundary struct {
	Location string
	Kind     BoundaryKind
}

// TimeStepKind selects how the time step is defined.
type TimeStepKind uint8

const (
	TimeStepValue TimeStepKind = iota // constant time step
	TimeStepFunc                      // time-dependent function
	TimeStepUser                      // user callback
)

// ParseTimeStepKind maps the time-step keywords to a TimeStepKind.
func ParseTimeStepKind(s string) (TimeStepKind, error) {
	switch s {
	case "value":
		return TimeStepValue, nil
	case "time_func":
		return TimeStepFunc, nil
	case "user":
		return TimeStepUser, nil
	}
	return TimeStepValue, fmt.Errorf("unknown time step kind %q", s)
}

// TimeStep gathers the time-stepping settings passed to the driver.
// The first of max iterations or final time reached stops the run.
type TimeStep struct {
	MaxIter   int
	FinalTime float64
	Kind      TimeStepKind
	Value     float64 // constant step when Kind is TimeStepValue
}

// MeshLocation is a named selection of mesh entities. The criterion is
// an opaque selection expression interpreted by the mesh collaborator.
type MeshLocation struct {
	Name      string
	Support   terms.Support
	Criterion string
}

// WallDistanceEq is the name of the predefined wall-distance equation.
const WallDistanceEq = "WallDistance"

// Domain is the registry of everything a case defines.
type Domain struct {
	properties map[string]*terms.Property
	propOrder  []string
	advFields  map[string]*terms.AdvectionField
	advOrder   []string
	equations  map[string]*equation.Equation
	eqOrder    []string
	locations  map[string]MeshLocation
	locOrder   []string

	defaultBoundary BoundaryKind
	boundaries      []Boundary
	timeStep        TimeStep
	wallDistance    bool

	sealed bool
	warn   equation.WarnFunc
}

// New creates an empty domain with the predefined mesh locations and
// the default "unity" isotropic property.
func New() *Domain {
	d := &Domain{
		properties:      map[string]*terms.Property{},
		advFields:       map[string]*terms.AdvectionField{},
		equations:       map[string]*equation.Equation{},
		locations:       map[string]MeshLocation{},
		defaultBoundary: Wall,
		warn:            log.Printf,
	}
	for _, loc := range []MeshLocation{
		{Name: "cells", Support: terms.Cells},
		{Name: "interior_faces", Support: terms.InteriorFaces},
		{Name: "boundary_faces", Support: terms.BoundaryFaces},
		{Name: "vertices", Support: terms.Vertices},
	} {
		d.locations[loc.Name] = loc
		d.locOrder = append(d.locOrder, loc.Name)
	}

	unity, _ := d.AddProperty("unity", terms.Isotropic)
	_ = unity.DefByValue(evaluator.ScalarValue(1.0))
	return d
}

// SetWarnFunc replaces the warning hook used by the domain and all of
// its equations, present and future. A nil hook silences warnings.
func (d *Domain) SetWarnFunc(fn equation.WarnFunc) {
	if fn == nil {
		fn = func(string, ...any) {}
	}
	d.warn = fn
	for _, eq := range d.equations {
		eq.SetWarnFunc(fn)
	}
}

func (d *Domain) mutable() error {
	if d.sealed {
		return fmt.Errorf("domain: %w", equation.ErrSealed)
	}
	return nil
}

// AddProperty registers a material property of the given class.
func (d *Domain) AddProperty(name string, class terms.PropertyClass) (*terms.Property, error) {
	if err := d.mutable(); err != nil {
		return nil, err
	}
	if _, ok := d.properties[name]; ok {
		return nil, fmt.Errorf("property %q: %w", name, ErrDuplicateName)
	}
	p := terms.NewProperty(name, class)
	d.properties[name] = p
	d.propOrder = append(d.propOrder, name)
	return p, nil
}

// Property looks up a registered property.
func (d *Domain) Property(name string) (*terms.Property, error) {
	p, ok := d.properties[name]
	if !ok {
		return nil, fmt.Errorf("property %q: %w", name, ErrUnknownName)
	}
	return p, nil
}

// AddAdvectionField registers an advection field.
func (d *Domain) AddAdvectionField(name string) (*terms.AdvectionField, error) {
	if err := d.mutable(); err != nil {
		return nil, err
	}
	if _, ok := d.advFields[name]; ok {
		return nil, fmt.Errorf("advection field %q: %w", name, ErrDuplicateName)
	}
	a := terms.NewAdvectionField(name)
	d.advFields[name] = a
	d.advOrder = append(d.advOrder, name)
	return a, nil
}

// AdvectionField looks up a registered advection field.
func (d *Domain) AdvectionField(name string) (*terms.AdvectionField, error) {
	a, ok := d.advFields[name]
	if !ok {
		return nil, fmt.Errorf("advection field %q: %w", name, ErrUnknownName)
	}
	return a, nil
}

// AddUserEquation declares a user equation for the given unknown field.
func (d *Domain) AddUserEquation(name, field string, varType equation.VarType, defaultBC equation.DefaultBC) (*equation.Equation, error) {
	if err := d.mutable(); err != nil {
		return nil, err
	}
	if _, ok := d.equations[name]; ok {
		return nil, fmt.Errorf("equation %q: %w", name, ErrDuplicateName)
	}
	eq := equation.New(name, field, varType, defaultBC)
	eq.SetWarnFunc(d.warn)
	d.equations[name] = eq
	d.eqOrder = append(d.eqOrder, name)
	return eq, nil
}

// Equation looks up a registered equation.
func (d *Domain) Equation(name string) (*equation.Equation, error) {
	eq, ok := d.equations[name]
	if !ok {
		return nil, fmt.Errorf("equation %q: %w", name, ErrUnknownName)
	}
	return eq, nil
}

// Equations returns the registered equations in declaration order.
func (d *Domain) Equations() []*equation.Equation {
	eqs := make([]*equation.Equation, 0, len(d.eqOrder))
	for _, name := range d.eqOrder {
		eqs = append(eqs, d.equations[name])
	}
	return eqs
}

// Properties returns the registered properties in declaration order.
func (d *Domain) Properties() []*terms.Property {
	ps := make([]*terms.Property, 0, len(d.propOrder))
	for _, name := range d.propOrder {
		ps = append(ps, d.properties[name])
	}
	return ps
}

// AdvectionFields returns the registered fields in declaration order.
func (d *Domain) AdvectionFields() []*terms.AdvectionField {
	as := make([]*terms.AdvectionField, 0, len(d.advOrder))
	for _, name := range d.advOrder {
		as = append(as, d.advFields[name])
	}
	return as
}

// AddMeshLocation registers a named selection of mesh entities.
func (d *Domain) AddMeshLocation(name string, support terms.Support, criterion string) error {
	if err := d.mutable(); err != nil {
		return err
	}
	if _, ok := d.locations[name]; ok {
		return fmt.Errorf("mesh location %q: %w", name, ErrDuplicateName)
	}
	d.locations[name] = MeshLocation{Name: name, Support: support, Criterion: criterion}
	d.locOrder = append(d.locOrder, name)
	return nil
}

// MeshLocations returns the registered locations in declaration order,
// predefined ones first.
func (d *Domain) MeshLocations() []MeshLocation {
	locs := make([]MeshLocation, 0, len(d.locOrder))
	for _, name := range d.locOrder {
		locs = append(locs, d.locations[name])
	}
	return locs
}

// MeshLocation looks up a registered mesh location.
func (d *Domain) MeshLocation(name string) (MeshLocation, error) {
	loc, ok := d.locations[name]
	if !ok {
		return MeshLocation{}, fmt.Errorf("mesh location %q: %w", name, ErrUnknownName)
	}
	return loc, nil
}

// SetDefaultBoundary sets the boundary kind assumed where no explicit
// boundary is declared. Only wall and symmetry are valid defaults.
func (d *Domain) SetDefaultBoundary(kind BoundaryKind) error {
	if err := d.mutable(); err != nil {
		return err
	}
	if kind != Wall && kind != Symmetry {
		return fmt.Errorf("default boundary must be wall or symmetry, got %v", kind)
	}
	d.defaultBoundary = kind
	return nil
}

// DefaultBoundary returns the default boundary kind.
func (d *Domain) DefaultBoundary() BoundaryKind {
	return d.defaultBoundary
}

// AddBoundary declares a boundary zone on a registered mesh location
// of boundary faces.
func (d *Domain) AddBoundary(location string, kind BoundaryKind) error {
	if err := d.mutable(); err != nil {
		return err
	}
	loc, ok := d.locations[location]
	if !ok {
		return fmt.Errorf("boundary location %q: %w", location, ErrUnknownName)
	}
	if loc.Support != terms.BoundaryFaces {
		return fmt.Errorf("boundary location %q selects %v, not boundary faces", location, loc.Support)
	}
	d.boundaries = append(d.boundaries, Boundary{Location: location, Kind: kind})
	return nil
}

// Boundaries returns the declared boundary zones in insertion order.
func (d *Domain) Boundaries() []Boundary {
	return d.boundaries
}

// SetTimeStep stores the time-stepping settings.
func (d *Domain) SetTimeStep(maxIter int, finalTime float64, kind TimeStepKind, value float64) error {
	if err := d.mutable(); err != nil {
		return err
	}
	if maxIter <= 0 {
		return fmt.Errorf("max iterations %d must be positive", maxIter)
	}
	if finalTime <= 0 {
		return fmt.Errorf("final time %g must be positive", finalTime)
	}
	if kind == TimeStepValue && value <= 0 {
		return fmt.Errorf("time step value %g must be positive", value)
	}
	d.timeStep = TimeStep{MaxIter: maxIter, FinalTime: finalTime, Kind: kind, Value: value}
	return nil
}

// TimeStepSettings returns the stored time-stepping settings.
func (d *Domain) TimeStepSettings() TimeStep {
	return d.timeStep
}

// ActivateWallDistance registers the predefined wall-distance equation
// with the unity property bound to its diffusion role. Activating
// twice returns the existing equation.
func (d *Domain) ActivateWallDistance() (*equation.Equation, error) {
	if eq, ok := d.equations[WallDistanceEq]; ok {
		return eq, nil
	}
	eq, err := d.AddUserEquation(WallDistanceEq, "wall_distance", equation.ScalarVar, equation.ZeroValue)
	if err != nil {
		return nil, err
	}
	unity := d.properties["unity"]
	if err := eq.Link(equation.RoleDiffusion, unity); err != nil {
		return nil, err
	}
	d.wallDistance = true
	return eq, nil
}

// WallDistanceActive reports whether the wall-distance module is on.
func (d *Domain) WallDistanceActive() bool {
	return d.wallDistance
}

// Seal freezes the domain and every registered equation. After Seal
// all data is read-only and safe for concurrent evaluation.
func (d *Domain) Seal() {
	for _, eq := range d.equations {
		eq.Seal()
	}
	d.sealed = true
}

// Sealed reports whether setup has completed.
func (d *Domain) Sealed() bool {
	return d.sealed
}
