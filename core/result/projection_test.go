package result

import (
	"math"
	"testing"

	"github.com/gridopt/powersched/core/model"
	"github.com/gridopt/powersched/core/solver"
	"github.com/gridopt/powersched/core/uc"
)

func fixture(t *testing.T) (*model.System, *model.Network) {
	t.Helper()
	s, err := model.NewSystem("fleet", []model.ThermalUnit{
		{Name: "g1", MaxPower: 100},
		{Name: "g2", MaxPower: 50},
	}, 0)
	if err != nil {
		t.Fatalf("new system: %v", err)
	}
	n, err := model.NewNetwork(s, map[model.Arc]model.Line{
		{A: "b1", B: "b2"}: {Z: 2},
	}, []model.Link{{Bus: "b1", Unit: "g1"}, {Bus: "b2", Unit: "g2"}})
	if err != nil {
		t.Fatalf("new network: %v", err)
	}
	return s, n
}

func TestPower(t *testing.T) {
	s, _ := fixture(t)
	res := solver.Result{
		Status: solver.Optimal,
		Values: map[string]float64{
			uc.PowerKey(0, "g1"): 70,
			uc.PowerKey(0, "g2"): 30,
			uc.PowerKey(1, "g1"): 90,
			uc.PowerKey(1, "g2"): 10,
		},
	}
	records, err := Power(res, s, 2)
	if err != nil {
		t.Fatalf("power: %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("expected 4 records got %d", len(records))
	}
	if r := records[3]; r.Period != 1 || r.Unit != "g2" || r.Power != 10 {
		t.Fatalf("record ordering: %+v", r)
	}

	res.Status = solver.Infeasible
	if _, err := Power(res, s, 2); err == nil {
		t.Fatal("unusable results must not project")
	}

	res.Status = solver.Optimal
	delete(res.Values, uc.PowerKey(1, "g2"))
	if _, err := Power(res, s, 2); err == nil {
		t.Fatal("missing values must surface")
	}
}

func TestLMP(t *testing.T) {
	_, n := fixture(t)
	res := solver.Result{
		Status: solver.Optimal,
		Duals: map[string]float64{
			uc.NodalBalanceKey(0, "b1"): 21.5,
			uc.NodalBalanceKey(0, "b2"): 23.0,
		},
	}
	records, err := LMP(res, n, 1)
	if err != nil {
		t.Fatalf("lmp: %v", err)
	}
	if len(records) != 2 || records[1].Bus != "b2" || records[1].Price != 23 {
		t.Fatalf("lmp records: %+v", records)
	}

	// Engines without duals cannot price.
	res.Duals = nil
	if _, err := LMP(res, n, 1); err == nil {
		t.Fatal("expected error without duals")
	}
}

func TestFlows(t *testing.T) {
	_, n := fixture(t)
	res := solver.Result{
		Status: solver.Optimal,
		Values: map[string]float64{
			uc.AngleKey(0, "b1"): 0,
			uc.AngleKey(0, "b2"): -0.25,
		},
	}
	records, err := Flows(res, n, 1)
	if err != nil {
		t.Fatalf("flows: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record got %d", len(records))
	}
	// Flow = Z * (angle_a - angle_b) = 2 * 0.25.
	if math.Abs(records[0].Flow-0.5) > 1e-12 {
		t.Fatalf("flow: got %v", records[0].Flow)
	}
}
