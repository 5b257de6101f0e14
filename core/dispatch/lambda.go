package dispatch

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/gridopt/powersched/core/model"
)

// Convergence thresholds of the bisection. Mismatch is in power units,
// saturation distance in the Euclidean norm of the power vector.
const (
	mismatchTol   = 1e-3
	saturationTol = 5e-2
)

// DefaultMaxIter bounds the bisection when the caller does not.
const DefaultMaxIter = 15

// Step records one bisection iterate for diagnostics.
type Step struct {
	Lambda   float64
	Mismatch float64
}

// LambdaIteration solves single-period economic dispatch by bisection on the
// system marginal price: every unit produces at its inverse marginal cost,
// clipped to its power bounds, and the price moves against the resulting
// supply mismatch. It never consults the network and is the fast path for
// copper-plate dispatch.
type LambdaIteration struct {
	// Lambda is the last price iterate after Solve returns.
	Lambda float64
	// History holds one entry per iteration so callers can detect
	// non-convergence.
	History []Step
}

// Solve dispatches load across the system's units and returns the per-unit
// power vector in unit order. The result is the vector computed before the
// final price adjustment of the last iteration, not a re-evaluation at the
// final Lambda. There is no feasibility guarantee when load falls outside
// the aggregate [sum of min powers, sum of max powers] range; callers must
// check, and History exposes the residual mismatch.
func (l *LambdaIteration) Solve(system *model.System, load float64, maxIter int) []float64 {
	if maxIter <= 0 {
		maxIter = DefaultMaxIter
	}
	l.History = l.History[:0]

	units := system.Units()
	minPower := make([]float64, len(units))
	maxPower := make([]float64, len(units))
	for i, u := range units {
		minPower[i] = u.MinPower
		maxPower[i] = u.MaxPower
	}

	lambdaMin := math.Inf(1)
	lambdaMax := math.Inf(-1)
	for _, u := range units {
		lambdaMin = math.Min(lambdaMin, u.MarginalCost(u.MinPower))
		lambdaMax = math.Max(lambdaMax, u.MarginalCost(u.MaxPower))
	}
	delta := (lambdaMax - lambdaMin) / 2
	l.Lambda = lambdaMin + delta

	powers := make([]float64, len(units))
	for i := 0; i < maxIter; i++ {
		for j, u := range units {
			powers[j] = math.Min(maxPower[j], math.Max(minPower[j], u.InverseMarginalCost(l.Lambda)))
		}
		mismatch := floats.Sum(powers) - load
		l.History = append(l.History, Step{Lambda: l.Lambda, Mismatch: mismatch})

		delta /= 2
		if mismatch > 0 {
			l.Lambda -= delta
		}
		if mismatch < 0 {
			l.Lambda += delta
		}
		if math.Abs(mismatch) < mismatchTol {
			break
		}
		if floats.Distance(powers, minPower, 2) < saturationTol ||
			floats.Distance(powers, maxPower, 2) < saturationTol {
			break
		}
	}
	return powers
}

// Converged reports whether the last Solve call terminated with a supply
// mismatch below tolerance.
func (l *LambdaIteration) Converged() bool {
	if len(l.History) == 0 {
		return false
	}
	return math.Abs(l.History[len(l.History)-1].Mismatch) < mismatchTol
}
