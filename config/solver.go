package config

import (
	"fmt"

	"github.com/gridopt/powersched/core/solver"
)

// SolverConfig carries engine policy knobs, passed through opaquely.
type SolverConfig struct {
	// MIPGap is the relative optimality gap at which the engine may stop.
	MIPGap float64 `json:"mip_gap"`
	// TimeLimitSec bounds the engine's wall-clock time.
	TimeLimitSec float64 `json:"time_limit_sec"`
	// Relax solves the continuous relaxation with the bundled simplex
	// engine instead of requiring an integer-capable engine.
	Relax bool `json:"relax"`
}

// SetDefaults applies the conventional gap and time budget.
func (c *SolverConfig) SetDefaults() {
	if c.MIPGap == 0 {
		c.MIPGap = 0.01
	}
	if c.TimeLimitSec == 0 {
		c.TimeLimitSec = 200
	}
}

// Validate checks knob ranges.
func (c SolverConfig) Validate() error {
	if c.MIPGap < 0 || c.MIPGap >= 1 {
		return fmt.Errorf("mip_gap %.3f outside [0,1)", c.MIPGap)
	}
	if c.TimeLimitSec <= 0 {
		return fmt.Errorf("time_limit_sec must be positive")
	}
	return nil
}

// ToOptions builds the engine options.
func (c SolverConfig) ToOptions() solver.Options {
	return solver.Options{MIPGap: c.MIPGap, TimeLimitSec: c.TimeLimitSec}
}
