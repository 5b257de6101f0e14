package uc

import (
	"gonum.org/v1/gonum/floats"

	"github.com/gridopt/powersched/core/model"
)

// DefaultNumLines is the number of secant supports used when the options do
// not say otherwise.
const DefaultNumLines = 2

// SupportLine is one secant lower bound of a convex cost curve:
// fuel >= Value*on + Slope*(power - Breakpoint).
type SupportLine struct {
	Breakpoint float64
	Value      float64
	Slope      float64
}

// Linearize samples numLines+1 equally spaced breakpoints over the unit's
// operating range and returns the secant supports between consecutive
// breakpoints. Convexity makes their upper envelope a lower bound of the
// true curve, tight at every breakpoint, so a minimized fuel variable
// converges to the true cost as numLines grows.
func Linearize(u model.ThermalUnit, numLines int) []SupportLine {
	if numLines <= 0 {
		numLines = DefaultNumLines
	}
	p := floats.Span(make([]float64, numLines+1), u.MinPower, u.MaxPower)
	fp := make([]float64, len(p))
	for i, pi := range p {
		fp[i] = u.InputOutput(pi)
	}
	lines := make([]SupportLine, 0, numLines)
	for i := 0; i < numLines; i++ {
		slope := 0.0
		if p[i+1] != p[i] {
			slope = (fp[i+1] - fp[i]) / (p[i+1] - p[i])
		}
		lines = append(lines, SupportLine{Breakpoint: p[i], Value: fp[i], Slope: slope})
	}
	return lines
}

// Evaluate returns the linearized envelope value at power p for a committed
// unit, the maximum over all supports.
func Evaluate(lines []SupportLine, p float64) float64 {
	best := 0.0
	for i, l := range lines {
		v := l.Value + l.Slope*(p-l.Breakpoint)
		if i == 0 || v > best {
			best = v
		}
	}
	return best
}
