package uc

import (
	"fmt"

	"github.com/gridopt/powersched/core/logger"
	"github.com/gridopt/powersched/core/model"
)

// Variant selects a formulation. Variants form a strict specialization
// chain: every later variant keeps all constraints of the earlier ones and
// only adds its own.
type Variant int

const (
	// VariantMILP is the single-bus commitment problem with a
	// piecewise-linearized objective.
	VariantMILP Variant = iota
	// VariantMINLP is the single-bus problem with the exact quadratic
	// objective, for engines that accept one.
	VariantMINLP
	// VariantDC adds nodal DC power-flow balance and line limits.
	VariantDC
	// VariantSCDC additionally duplicates dispatch and flow per N-1
	// contingency.
	VariantSCDC
)

func (v Variant) String() string {
	switch v {
	case VariantMILP:
		return "milp"
	case VariantMINLP:
		return "minlp"
	case VariantDC:
		return "dc"
	case VariantSCDC:
		return "scdc"
	default:
		return "unknown"
	}
}

// Options tunes the formulation.
type Options struct {
	Variant Variant
	// NumLines is the piecewise-linearization resolution; zero means
	// DefaultNumLines. Ignored by the quadratic variant.
	NumLines int
	// InitialOn is the commitment state before the first period. Units
	// absent from the map start offline.
	InitialOn map[string]bool
	// Contingencies restricts the monitored arc set of the
	// security-constrained variant; nil monitors every arc.
	Contingencies []model.Arc
}

// Formulator assembles unit-commitment models. It owns the model being
// built; a built model is cached until ForceBuild discards it.
type Formulator struct {
	System  *model.System
	Network *model.Network
	Options Options

	log   logger.Logger
	model *Model
}

// NewFormulator returns a formulator over the given system. The network may
// be nil for the single-bus variants and is required from VariantDC up.
func NewFormulator(system *model.System, network *model.Network, opts Options, log logger.Logger) *Formulator {
	if log == nil {
		log = logger.NopLogger{}
	}
	return &Formulator{System: system, Network: network, Options: opts, log: log}
}

// Build assembles the model for the given load, reusing a previously built
// one when present.
func (f *Formulator) Build(load model.Load) (*Model, error) {
	if f.model != nil {
		return f.model, nil
	}
	return f.ForceBuild(load)
}

// ForceBuild discards any cached model and assembles a fresh one. Models are
// never patched incrementally.
func (f *Formulator) ForceBuild(load model.Load) (*Model, error) {
	f.model = nil
	m, err := f.build(load)
	if err != nil {
		return nil, err
	}
	f.model = m
	return m, nil
}

func (f *Formulator) build(load model.Load) (*Model, error) {
	if err := f.System.Validate(); err != nil {
		return nil, err
	}
	for _, u := range f.System.Units() {
		if err := u.Validate(); err != nil {
			return nil, err
		}
	}
	horizon := load.Periods()
	if horizon == 0 {
		return nil, fmt.Errorf("load defines an empty horizon")
	}
	nodal := f.Options.Variant >= VariantDC
	if nodal && f.Network == nil {
		return nil, fmt.Errorf("%s formulation requires a network", f.Options.Variant)
	}
	if nodal && !load.Nodal() {
		return nil, fmt.Errorf("%s formulation requires a bus-indexed load", f.Options.Variant)
	}

	b := newBuilder()
	buildUnitEquations(b, f.System, horizon, f.Options.InitialOn)
	buildReserveEquations(b, f.System, horizon)
	if nodal {
		buildNodalEquations(b, f.Network, load, horizon)
	} else {
		buildBalanceEquations(b, f.System, load, horizon)
	}
	if f.Options.Variant == VariantMINLP {
		buildQuadraticObjective(b, f.System, horizon)
	} else {
		buildLinearObjective(b, f.System, horizon, f.Options.NumLines)
	}
	if f.Options.Variant == VariantSCDC {
		contingencies := f.Options.Contingencies
		if contingencies == nil {
			contingencies = f.Network.Arcs()
		}
		buildSecurityEquations(b, f.Network, load, horizon, contingencies)
	}
	if b.err != nil {
		return nil, b.err
	}

	f.log.Debugw("model built", map[string]any{
		"id":          b.m.ID,
		"variant":     f.Options.Variant.String(),
		"periods":     horizon,
		"units":       f.System.Len(),
		"variables":   len(b.m.Vars),
		"constraints": len(b.m.Cons),
	})
	return b.m, nil
}
