package uc

import (
	"math"
	"testing"

	"github.com/gridopt/powersched/core/model"
)

var quadUnit = model.ThermalUnit{
	Name:     "g1",
	Curve:    model.CostCurve{C0: 5, C1: 10, C2: 0.1},
	FuelCost: 1,
	MinPower: 20,
	MaxPower: 120,
}

func TestLinearize_TightAtBreakpoints(t *testing.T) {
	for _, numLines := range []int{1, 2, 4, 8} {
		lines := Linearize(quadUnit, numLines)
		if len(lines) != numLines {
			t.Fatalf("numLines=%d: got %d supports", numLines, len(lines))
		}
		step := (quadUnit.MaxPower - quadUnit.MinPower) / float64(numLines)
		for i := 0; i <= numLines; i++ {
			p := quadUnit.MinPower + float64(i)*step
			env := Evaluate(lines, p)
			if math.Abs(env-quadUnit.InputOutput(p)) > 1e-9 {
				t.Fatalf("numLines=%d: envelope at breakpoint %v is %v want %v",
					numLines, p, env, quadUnit.InputOutput(p))
			}
		}
	}
}

func TestLinearize_Underestimates(t *testing.T) {
	lines := Linearize(quadUnit, 3)
	for p := quadUnit.MinPower; p <= quadUnit.MaxPower; p += 2.5 {
		env := Evaluate(lines, p)
		if env > quadUnit.InputOutput(p)+1e-9 {
			t.Fatalf("envelope %v exceeds curve %v at p=%v", env, quadUnit.InputOutput(p), p)
		}
	}
}

func TestLinearize_ErrorShrinksWithResolution(t *testing.T) {
	maxErr := func(numLines int) float64 {
		lines := Linearize(quadUnit, numLines)
		worst := 0.0
		for p := quadUnit.MinPower; p <= quadUnit.MaxPower; p += 0.5 {
			if e := quadUnit.InputOutput(p) - Evaluate(lines, p); e > worst {
				worst = e
			}
		}
		return worst
	}
	prev := math.Inf(1)
	for _, n := range []int{1, 2, 4, 8, 16} {
		e := maxErr(n)
		if e > prev+1e-9 {
			t.Fatalf("max error grew from %v to %v at numLines=%d", prev, e, n)
		}
		prev = e
	}
	if prev > 1 {
		t.Fatalf("16 supports should approximate tightly, max error %v", prev)
	}
}

func TestLinearize_DegenerateRange(t *testing.T) {
	u := quadUnit
	u.MinPower, u.MaxPower = 50, 50
	lines := Linearize(u, 2)
	for _, l := range lines {
		if l.Slope != 0 {
			t.Fatalf("zero-width range must have flat supports, got slope %v", l.Slope)
		}
	}
	if got := Evaluate(lines, 50); math.Abs(got-u.InputOutput(50)) > 1e-9 {
		t.Fatalf("envelope at the single point: got %v", got)
	}
}

func TestLinearize_DefaultResolution(t *testing.T) {
	if got := len(Linearize(quadUnit, 0)); got != DefaultNumLines {
		t.Fatalf("default resolution: got %d supports", got)
	}
}
