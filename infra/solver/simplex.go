// Package solver provides the bundled linear-programming engine built on
// gonum's simplex implementation.
package solver

import (
	"context"
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"

	"github.com/gridopt/powersched/core/logger"
	coresolver "github.com/gridopt/powersched/core/solver"
	"github.com/gridopt/powersched/core/uc"
)

// Simplex solves pure linear models with gonum's simplex method. Binary
// variables are rejected unless Relax is set, in which case they are treated
// as continuous on [0,1]. Quadratic objectives are always rejected. The
// engine does not report constraint duals; LMP projection needs an engine
// that does.
type Simplex struct {
	// Relax solves the continuous relaxation of mixed-integer models.
	Relax bool
	// Tol is the simplex pivot tolerance; zero means 1e-7.
	Tol float64

	Log logger.Logger
}

// lpSimplex points to the gonum solve call and can be overridden in tests to
// simulate engine failures.
var lpSimplex = lp.Simplex

// Solve implements solver.Engine. Gap and time-limit options are accepted
// for interface compatibility but not enforced; the simplex run is a single
// blocking call.
func (s *Simplex) Solve(ctx context.Context, m *uc.Model, _ coresolver.Options) (coresolver.Result, error) {
	if err := ctx.Err(); err != nil {
		return coresolver.Result{Status: coresolver.Failed}, err
	}
	if m.Quadratic() {
		return coresolver.Result{Status: coresolver.Failed},
			fmt.Errorf("%w: quadratic objective", coresolver.ErrUnsupported)
	}
	if !s.Relax && m.NumBinaries() > 0 {
		return coresolver.Result{Status: coresolver.Failed},
			fmt.Errorf("%w: %d binary variables (set Relax to solve the relaxation)", coresolver.ErrUnsupported, m.NumBinaries())
	}

	n := len(m.Vars)
	index := make(map[string]int, n)
	for i, v := range m.Vars {
		index[v.Name] = i
	}

	c := make([]float64, n)
	for name, coef := range m.Objective.Linear {
		c[index[name]] = coef
	}

	// General form: minimize c^T x subject to G x <= h and A x = b, with x
	// free. Senses and bounds become inequality rows.
	var gRows, aRows [][]float64
	var h, beq []float64
	row := func(coefs map[string]float64, scale float64) []float64 {
		r := make([]float64, n)
		for name, coef := range coefs {
			r[index[name]] = coef * scale
		}
		return r
	}
	for _, con := range m.Cons {
		switch con.Sense {
		case uc.LessEq:
			gRows = append(gRows, row(con.Coefs, 1))
			h = append(h, con.RHS)
		case uc.GreaterEq:
			gRows = append(gRows, row(con.Coefs, -1))
			h = append(h, -con.RHS)
		case uc.Equal:
			aRows = append(aRows, row(con.Coefs, 1))
			beq = append(beq, con.RHS)
		}
	}
	for i, v := range m.Vars {
		lo, hi := v.Lo, v.Hi
		if v.Kind == uc.Binary {
			lo, hi = 0, 1
		}
		if !math.IsInf(lo, -1) {
			r := make([]float64, n)
			r[i] = -1
			gRows = append(gRows, r)
			h = append(h, -lo)
		}
		if !math.IsInf(hi, 1) {
			r := make([]float64, n)
			r[i] = 1
			gRows = append(gRows, r)
			h = append(h, hi)
		}
	}

	g := mat.NewDense(len(gRows), n, nil)
	for i, r := range gRows {
		g.SetRow(i, r)
	}
	var a mat.Matrix
	if len(aRows) > 0 {
		ad := mat.NewDense(len(aRows), n, nil)
		for i, r := range aRows {
			ad.SetRow(i, r)
		}
		a = ad
	}

	tol := s.Tol
	if tol == 0 {
		tol = 1e-7
	}
	cStd, aStd, bStd := lp.Convert(c, g, h, a, beq)
	opt, sol, err := lpSimplex(cStd, aStd, bStd, tol, nil)
	if err != nil {
		if errors.Is(err, lp.ErrInfeasible) {
			return coresolver.Result{Status: coresolver.Infeasible}, nil
		}
		return coresolver.Result{Status: coresolver.Failed}, fmt.Errorf("simplex: %w", err)
	}

	// Convert splits each free variable into a positive and a negative
	// part; the first n standard variables are the positive parts.
	values := make(map[string]float64, n)
	for i, v := range m.Vars {
		values[v.Name] = sol[i] - sol[n+i]
	}
	if s.Log != nil {
		s.Log.Debugw("simplex solved", map[string]any{
			"model":     m.ID,
			"objective": opt + m.Objective.Offset,
			"rows":      len(gRows) + len(aRows),
			"cols":      n,
		})
	}
	return coresolver.Result{
		Status:    coresolver.Optimal,
		Objective: opt + m.Objective.Offset,
		Values:    values,
	}, nil
}
