// Package solver defines the boundary to external optimization engines. The
// formulation core hands a model across this boundary once per solve and
// never inspects engine internals.
package solver

import (
	"context"
	"errors"

	"github.com/gridopt/powersched/core/uc"
)

// Status classifies an engine's outcome. Anything other than Optimal or
// Feasible means the returned values are unusable.
type Status int

const (
	// Optimal means the engine proved optimality within its gap.
	Optimal Status = iota
	// Feasible means the engine found a solution but stopped before
	// proving optimality, typically on a time limit.
	Feasible
	// Infeasible means no schedule satisfies the constraints.
	Infeasible
	// Failed means the engine errored before producing a usable answer.
	Failed
)

func (s Status) String() string {
	switch s {
	case Optimal:
		return "optimal"
	case Feasible:
		return "feasible"
	case Infeasible:
		return "infeasible"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Usable reports whether the result's values may be consumed.
func (s Status) Usable() bool { return s == Optimal || s == Feasible }

// Options are engine policy knobs passed through opaquely.
type Options struct {
	// MIPGap is the relative optimality gap at which the engine may stop.
	MIPGap float64
	// TimeLimitSec bounds the engine's wall-clock time. Enforcement is the
	// engine's responsibility, not the core's.
	TimeLimitSec float64
}

// Result is an engine's answer: variable values keyed by model variable
// name, and constraint duals keyed by constraint name for engines that
// report them. Duals may be empty.
type Result struct {
	Status    Status
	Objective float64
	Values    map[string]float64
	Duals     map[string]float64
}

// ErrUnsupported is returned by engines handed a model outside their class,
// for example a quadratic objective to a linear engine.
var ErrUnsupported = errors.New("model not supported by engine")

// Engine solves an assembled model. Implementations must not retain or
// mutate the model.
type Engine interface {
	Solve(ctx context.Context, m *uc.Model, opts Options) (Result, error)
}
