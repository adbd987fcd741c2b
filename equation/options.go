package equation

import (
	"fmt"
	"strconv"
)

// Equation options form a closed set: unknown keys and out-of-range
// values are rejected with ErrInvalidOption instead of being silently
// ignored. Keys in the solver group (itsol, precond, ...) and the hodge
// group are validated here and passed through opaquely to the assembly
// and solver collaborators.
var enumOptions = map[string][]string{
	"space_scheme":         {"cdo_vb", "cdo_fb"},
	"hodge_algo":           {"voronoi", "cost", "wbs"},
	"hodge_diff_algo":      {"voronoi", "cost", "wbs"},
	"hodge_time_algo":      {"voronoi", "cost", "wbs"},
	"bc_enforcement":       {"strong", "penalization", "weak", "weak_sym"},
	"bc_quadrature":        {"bary", "subdiv", "higher", "highest"},
	"time_scheme":          {"implicit", "explicit", "crank_nicolson", "theta_scheme"},
	"adv_weight":           {"upwind", "centered", "samarskii", "sg", "d10g5"},
	"adv_weight_criterion": {"xexc", "flux"},
	"lumping":              {"true", "false"},
	"inv_pty":              {"true", "false"},
	"itsol_resnorm":        {"true", "false"},
	"solver_family":        {"cs", "petsc"},
	"itsol":                {"cg", "bicg", "gmres", "amg"},
	"precond":              {"jacobi", "poly1", "ssor", "ilu0", "icc0", "amg", "as"},
}

// hodge_coef accepts a named coefficient or a strictly positive value.
var hodgeCoefNames = map[string]bool{"dga": true, "sushi": true, "gcr": true}

func validateOption(key, val string) error {
	if allowed, ok := enumOptions[key]; ok {
		for _, v := range allowed {
			if val == v {
				return nil
			}
		}
		return fmt.Errorf("value %q not in %v for key %q: %w", val, allowed, key, ErrInvalidOption)
	}

	switch key {
	case "verbosity":
		n, err := strconv.Atoi(val)
		if err != nil || n < 0 {
			return fmt.Errorf("verbosity %q must be a non-negative integer: %w", val, ErrInvalidOption)
		}
	case "time_theta":
		theta, err := strconv.ParseFloat(val, 64)
		if err != nil || theta < 0 || theta > 1 {
			return fmt.Errorf("time_theta %q must be in [0,1]: %w", val, ErrInvalidOption)
		}
	case "itsol_max_iter":
		n, err := strconv.Atoi(val)
		if err != nil || n <= 0 {
			return fmt.Errorf("itsol_max_iter %q must be a positive integer: %w", val, ErrInvalidOption)
		}
	case "itsol_eps":
		eps, err := strconv.ParseFloat(val, 64)
		if err != nil || eps <= 0 {
			return fmt.Errorf("itsol_eps %q must be a positive value: %w", val, ErrInvalidOption)
		}
	case "post_freq":
		n, err := strconv.Atoi(val)
		if err != nil || n < -1 {
			return fmt.Errorf("post_freq %q must be -1, 0 or a positive cadence: %w", val, ErrInvalidOption)
		}
	case "hodge_coef", "hodge_diff_coef", "hodge_time_coef":
		if hodgeCoefNames[val] {
			return nil
		}
		coef, err := strconv.ParseFloat(val, 64)
		if err != nil || coef <= 0 {
			return fmt.Errorf("%s %q must be dga, sushi, gcr or a positive value: %w", key, val, ErrInvalidOption)
		}
	default:
		return fmt.Errorf("unknown option key %q: %w", key, ErrInvalidOption)
	}
	return nil
}

// SetOption sets an equation-level numeric or scheme option after
// validating it against the closed option set.
func (eq *Equation) SetOption(key, val string) error {
	if err := eq.mutable(); err != nil {
		return err
	}
	if err := validateOption(key, val); err != nil {
		return fmt.Errorf("equation %q: %w", eq.name, err)
	}
	eq.options[key] = val
	return nil
}

// Option returns a previously set option value.
func (eq *Equation) Option(key string) (string, bool) {
	v, ok := eq.options[key]
	return v, ok
}
