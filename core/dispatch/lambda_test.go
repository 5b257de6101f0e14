package dispatch

import (
	"math"
	"testing"

	"github.com/gridopt/powersched/core/model"
)

func newSystem(t *testing.T, units []model.ThermalUnit) *model.System {
	t.Helper()
	s, err := model.NewSystem("fleet", units, 0)
	if err != nil {
		t.Fatalf("new system: %v", err)
	}
	return s
}

func TestLambdaIteration_SingleUnit(t *testing.T) {
	s := newSystem(t, []model.ThermalUnit{{
		Name:     "g1",
		Curve:    model.CostCurve{C1: 10, C2: 0.1},
		FuelCost: 1,
		MinPower: 0,
		MaxPower: 100,
	}})

	li := &LambdaIteration{}
	powers := li.Solve(s, 50, 0)

	if math.Abs(powers[0]-50) > mismatchTol {
		t.Fatalf("power: got %v want 50", powers[0])
	}
	if !li.Converged() {
		t.Fatal("expected convergence")
	}
	// The converged price is the marginal cost at 50: 10 + 0.2*50 = 20.
	if math.Abs(li.Lambda-20) > 1e-2 {
		t.Fatalf("lambda: got %v want 20", li.Lambda)
	}
}

func TestLambdaIteration_TwoUnits(t *testing.T) {
	s := newSystem(t, []model.ThermalUnit{
		{Name: "cheap", Curve: model.CostCurve{C1: 8, C2: 0.05}, FuelCost: 1, MinPower: 0, MaxPower: 200},
		{Name: "dear", Curve: model.CostCurve{C1: 12, C2: 0.08}, FuelCost: 1, MinPower: 0, MaxPower: 200},
	})

	li := &LambdaIteration{}
	powers := li.Solve(s, 150, 50)

	total := powers[0] + powers[1]
	if math.Abs(total-150) > mismatchTol {
		t.Fatalf("total power: got %v want 150", total)
	}
	if powers[0] <= powers[1] {
		t.Fatalf("cheap unit should carry more load: %v", powers)
	}
	// At the shared price both marginal costs match.
	u := s.Units()
	if d := u[0].MarginalCost(powers[0]) - u[1].MarginalCost(powers[1]); math.Abs(d) > 0.1 {
		t.Fatalf("marginal costs diverge by %v", d)
	}
}

func TestLambdaIteration_Saturation(t *testing.T) {
	// Two identical units capped at 50 each cannot serve 150; the solver
	// must stop by saturation, pinned at max power, not by convergence.
	s := newSystem(t, []model.ThermalUnit{
		{Name: "a", Curve: model.CostCurve{C1: 10, C2: 0.1}, FuelCost: 1, MinPower: 0, MaxPower: 50},
		{Name: "b", Curve: model.CostCurve{C1: 10, C2: 0.1}, FuelCost: 1, MinPower: 0, MaxPower: 50},
	})

	li := &LambdaIteration{}
	powers := li.Solve(s, 150, 0)

	if li.Converged() {
		t.Fatal("expected saturation, not convergence")
	}
	if len(li.History) >= DefaultMaxIter {
		t.Fatalf("expected early saturation exit, took %d iterations", len(li.History))
	}
	for i, p := range powers {
		if math.Abs(p-50) > saturationTol {
			t.Fatalf("unit %d not pinned at max power: %v", i, p)
		}
	}
	if last := li.History[len(li.History)-1].Mismatch; last >= 0 {
		t.Fatalf("mismatch should report undersupply, got %v", last)
	}
}

func TestLambdaIteration_Deterministic(t *testing.T) {
	s := newSystem(t, []model.ThermalUnit{
		{Name: "a", Curve: model.CostCurve{C1: 9, C2: 0.03}, FuelCost: 1.1, MinPower: 10, MaxPower: 120},
		{Name: "b", Curve: model.CostCurve{C1: 11, C2: 0.06}, FuelCost: 0.9, MinPower: 5, MaxPower: 80},
	})

	a := &LambdaIteration{}
	b := &LambdaIteration{}
	pa := a.Solve(s, 90, 12)
	pb := b.Solve(s, 90, 12)

	if len(a.History) != len(b.History) {
		t.Fatalf("histories differ: %d vs %d", len(a.History), len(b.History))
	}
	for i := range pa {
		if pa[i] != pb[i] {
			t.Fatalf("unit %d: %v vs %v", i, pa[i], pb[i])
		}
	}
	if a.Lambda != b.Lambda {
		t.Fatalf("lambda differs: %v vs %v", a.Lambda, b.Lambda)
	}
}

func TestLambdaIteration_HistoryRetained(t *testing.T) {
	s := newSystem(t, []model.ThermalUnit{{
		Name: "g1", Curve: model.CostCurve{C1: 10, C2: 0.1}, FuelCost: 1, MinPower: 0, MaxPower: 100,
	}})

	li := &LambdaIteration{}
	li.Solve(s, 50, 0)
	if len(li.History) == 0 {
		t.Fatal("expected history")
	}

	// Solving again resets the history rather than appending.
	n := len(li.History)
	li.Solve(s, 50, 0)
	if len(li.History) != n {
		t.Fatalf("history not reset: %d vs %d", len(li.History), n)
	}
}
