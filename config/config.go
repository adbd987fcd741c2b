// Package config loads a case file (YAML) describing a domain setup:
// boundaries, time stepping, properties, advection fields and
// equations. Constant definitions live in the file; analytic
// definitions reference functions registered in code through
// RegisterAnalytic.
package config

import (
	"fmt"
	"sync"

	"github.com/spf13/viper"

	"github.com/cdokit/cdokit/evaluator"
)

// Case is the top-level case file structure.
type Case struct {
	Domain          DomainSettings  `mapstructure:"domain"`
	Properties      []PropertySpec  `mapstructure:"properties"`
	AdvectionFields []AdvectionSpec `mapstructure:"advection_fields"`
	Equations       []EquationSpec  `mapstructure:"equations"`
}

// DomainSettings are the driver-level settings of the case.
type DomainSettings struct {
	DefaultBoundary string             `mapstructure:"default_boundary"`
	MeshLocations   []MeshLocationSpec `mapstructure:"mesh_locations"`
	Boundaries      []BoundarySpec     `mapstructure:"boundaries"`
	TimeStep        *TimeStepSpec      `mapstructure:"time_step"`
	WallDistance    bool               `mapstructure:"wall_distance"`
}

// MeshLocationSpec declares a named mesh location.
type MeshLocationSpec struct {
	Name      string `mapstructure:"name"`
	Support   string `mapstructure:"support"`
	Criterion string `mapstructure:"criterion"`
}

// BoundarySpec declares a boundary zone.
type BoundarySpec struct {
	Location string `mapstructure:"location"`
	Kind     string `mapstructure:"kind"`
}

// TimeStepSpec declares the time-stepping settings.
type TimeStepSpec struct {
	MaxIter   int     `mapstructure:"max_iter"`
	FinalTime float64 `mapstructure:"final_time"`
	Kind      string  `mapstructure:"kind"`
	Value     float64 `mapstructure:"value"`
}

// PropertySpec declares a material property. Value holds 1 (isotropic),
// 3 (orthotropic) or 9 row-major (anisotropic) coefficients; Analytic
// names a registered function instead.
type PropertySpec struct {
	Name     string    `mapstructure:"name"`
	Class    string    `mapstructure:"class"`
	Value    []float64 `mapstructure:"value"`
	Analytic string    `mapstructure:"analytic"`
}

// AdvectionSpec declares an advection field, defined either by a
// uniform vector or by a registered analytic function.
type AdvectionSpec struct {
	Name     string    `mapstructure:"name"`
	Value    []float64 `mapstructure:"value"`
	Analytic string    `mapstructure:"analytic"`
}

// EquationSpec declares a user equation with its term bindings.
type EquationSpec struct {
	Name               string            `mapstructure:"name"`
	Field              string            `mapstructure:"field"`
	Type               string            `mapstructure:"type"`
	DefaultBC          string            `mapstructure:"default_bc"`
	Links              map[string]string `mapstructure:"links"`
	BoundaryConditions []BCSpec          `mapstructure:"boundary_conditions"`
	SourceTerms        []SourceSpec      `mapstructure:"source_terms"`
	Options            map[string]string `mapstructure:"options"`
}

// BCSpec declares a boundary condition on a mesh location.
type BCSpec struct {
	Location string   `mapstructure:"location"`
	Type     string   `mapstructure:"type"`
	Value    *float64 `mapstructure:"value"`
	Analytic string   `mapstructure:"analytic"`
}

// SourceSpec declares a source term.
type SourceSpec struct {
	Label      string   `mapstructure:"label"`
	Location   string   `mapstructure:"location"`
	Value      *float64 `mapstructure:"value"`
	Analytic   string   `mapstructure:"analytic"`
	Quadrature string   `mapstructure:"quadrature"`
	Post       *int     `mapstructure:"post"`
}

// Defaults returns the settings assumed when the case file omits them.
func Defaults() Case {
	return Case{
		Domain: DomainSettings{DefaultBoundary: "wall"},
	}
}

// Load reads and decodes a case file.
func Load(path string) (*Case, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetDefault("domain.default_boundary", Defaults().Domain.DefaultBoundary)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading case file %s: %w", path, err)
	}
	var c Case
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("decoding case file %s: %w", path, err)
	}
	return &c, nil
}

// The analytic function registry. Case files reference pure functions
// by name; registration happens in code before Build.
type analyticEntry struct {
	shape evaluator.Shape
	fn    evaluator.Func
}

var (
	analyticsMu sync.RWMutex
	analytics   = map[string]analyticEntry{}
)

// RegisterAnalytic makes a pure analytic function available to case
// files under the given name. Re-registering a name replaces the
// previous function.
func RegisterAnalytic(name string, shape evaluator.Shape, fn evaluator.Func) {
	analyticsMu.Lock()
	defer analyticsMu.Unlock()
	analytics[name] = analyticEntry{shape: shape, fn: fn}
}

func lookupAnalytic(name string) (analyticEntry, error) {
	analyticsMu.RLock()
	defer analyticsMu.RUnlock()
	e, ok := analytics[name]
	if !ok {
		return analyticEntry{}, fmt.Errorf("no analytic function registered under %q", name)
	}
	return e, nil
}
