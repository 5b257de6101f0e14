// Package app wires a study configuration into the scheduling components.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/gridopt/powersched/config"
	"github.com/gridopt/powersched/core/dispatch"
	coremetrics "github.com/gridopt/powersched/core/metrics"
	"github.com/gridopt/powersched/core/model"
	"github.com/gridopt/powersched/core/result"
	coresolver "github.com/gridopt/powersched/core/solver"
	"github.com/gridopt/powersched/core/uc"
	"github.com/gridopt/powersched/infra/logger"
	"github.com/gridopt/powersched/infra/metrics"
	"github.com/gridopt/powersched/infra/solver"
)

// Service orchestrates one scheduling study: formulation, solve and
// projection.
type Service struct {
	System  *model.System
	Network *model.Network
	Load    model.Load

	formulator *uc.Formulator
	engine     coresolver.Engine
	engineOpts coresolver.Options
	sink       coremetrics.Sink
	variant    uc.Variant
	log        logger.Logger
}

// Schedule is the projected outcome of one solve.
type Schedule struct {
	Status    coresolver.Status
	Objective float64
	Power     []result.PowerRecord
	Prices    []result.LMPRecord
	Flows     []result.FlowRecord
}

// New creates a Service from the study configuration.
func New(cfg *config.Config) (*Service, error) {
	log := logger.New("service")

	system, err := cfg.System.ToSystem()
	if err != nil {
		return nil, fmt.Errorf("system: %w", err)
	}
	var network *model.Network
	if cfg.Network != nil {
		network, err = cfg.Network.ToNetwork(system)
		if err != nil {
			return nil, fmt.Errorf("network: %w", err)
		}
	}
	load, err := cfg.Load.ToLoad()
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	opts, err := cfg.Formulation.ToOptions()
	if err != nil {
		return nil, fmt.Errorf("formulation: %w", err)
	}

	sink, err := metrics.NewPromSink()
	if err != nil {
		return nil, fmt.Errorf("prom sink: %w", err)
	}

	return &Service{
		System:     system,
		Network:    network,
		Load:       load,
		formulator: uc.NewFormulator(system, network, opts, logger.New("formulator")),
		engine:     &solver.Simplex{Relax: cfg.Solver.Relax, Log: logger.New("simplex")},
		engineOpts: cfg.Solver.ToOptions(),
		sink:       sink,
		variant:    opts.Variant,
		log:        log,
	}, nil
}

// Schedule builds the commitment model, runs the engine and projects the
// solution into tables. Malformed models, infeasibility and engine failures
// surface as distinct errors.
func (s *Service) Schedule(ctx context.Context) (*Schedule, error) {
	m, err := s.formulator.ForceBuild(s.Load)
	if err != nil {
		return nil, fmt.Errorf("model build: %w", err)
	}

	start := time.Now()
	res, err := s.engine.Solve(ctx, m, s.engineOpts)
	if serr := s.sink.RecordSolve(s.variant.String(), res.Status.String(), time.Since(start).Seconds()); serr != nil {
		s.log.Warnf("record solve: %v", serr)
	}
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}
	if !res.Status.Usable() {
		return &Schedule{Status: res.Status}, fmt.Errorf("no usable schedule: engine finished %s", res.Status)
	}

	horizon := s.Load.Periods()
	sched := &Schedule{Status: res.Status, Objective: res.Objective}
	if sched.Power, err = result.Power(res, s.System, horizon); err != nil {
		return nil, err
	}
	if s.Network != nil && s.variant >= uc.VariantDC {
		// Flow tables always project; prices need an engine that reports
		// duals, so their absence is not fatal.
		if sched.Flows, err = result.Flows(res, s.Network, horizon); err != nil {
			return nil, err
		}
		if prices, perr := result.LMP(res, s.Network, horizon); perr == nil {
			sched.Prices = prices
		} else {
			s.log.Infof("prices unavailable: %v", perr)
		}
	}
	return sched, nil
}

// Dispatch runs the lambda-iteration fast path on the total load of a
// single period.
func (s *Service) Dispatch(period int) ([]float64, *dispatch.LambdaIteration, error) {
	if period < 0 || period >= s.Load.Periods() {
		return nil, nil, fmt.Errorf("period %d outside horizon", period)
	}
	li := &dispatch.LambdaIteration{}
	powers := li.Solve(s.System, s.Load.System(period), dispatch.DefaultMaxIter)
	if err := s.sink.RecordDispatch(len(li.History), li.Converged()); err != nil {
		s.log.Warnf("record dispatch: %v", err)
	}
	return powers, li, nil
}
