package uc

import (
	"fmt"
	"strings"
	"testing"

	"github.com/gridopt/powersched/core/model"
)

func grid(t *testing.T, reserve float64) (*model.System, *model.Network) {
	t.Helper()
	s := fleet(t, reserve)
	limit := 100.0
	n, err := model.NewNetwork(s, map[model.Arc]model.Line{
		{A: "b1", B: "b2"}: {PowerLim: &limit, Z: 2},
		{A: "b2", B: "b3"}: {Z: 1},
	}, []model.Link{{Bus: "b1", Unit: "coal"}, {Bus: "b3", Unit: "gas"}})
	if err != nil {
		t.Fatalf("new network: %v", err)
	}
	return s, n
}

func gridLoad(t *testing.T) model.Load {
	t.Helper()
	load, err := model.BusLoad(map[string][]float64{
		"b2": {150, 180},
		"b3": {40, 50},
	})
	if err != nil {
		t.Fatalf("bus load: %v", err)
	}
	return load
}

func buildGridModel(t *testing.T, reserve float64, opts Options) *Model {
	t.Helper()
	s, n := grid(t, reserve)
	f := NewFormulator(s, n, opts, nil)
	m, err := f.Build(gridLoad(t))
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return m
}

func TestFormulator_DCEquations(t *testing.T) {
	m := buildGridModel(t, 0, Options{Variant: VariantDC})

	// One angle per bus and period; the reference bus is pinned to zero.
	ref, ok := m.Var(AngleKey(0, "b1"))
	if !ok {
		t.Fatal("missing reference angle")
	}
	if ref.Lo != 0 || ref.Hi != 0 {
		t.Fatalf("reference angle not pinned: %+v", ref)
	}
	free, _ := m.Var(AngleKey(1, "b3"))
	if free.Lo == 0 && free.Hi == 0 {
		t.Fatal("non-reference angle must be free")
	}

	// Flow limits only exist for the limited arc, in both directions.
	if _, ok := m.Constraint("flow_limit_up[0,b1-b2]"); !ok {
		t.Fatal("missing upper flow limit")
	}
	c, ok := m.Constraint("flow_limit_lo[0,b1-b2]")
	if !ok {
		t.Fatal("missing lower flow limit")
	}
	if c.Sense != GreaterEq || c.RHS != -100 {
		t.Fatalf("lower flow limit shape: %+v", c)
	}
	if c.Coefs[AngleKey(0, "b1")] != 2 || c.Coefs[AngleKey(0, "b2")] != -2 {
		t.Fatalf("flow limit coupling: %v", c.Coefs)
	}
	if _, ok := m.Constraint("flow_limit_up[0,b2-b3]"); ok {
		t.Fatal("unlimited arc must have no flow constraint")
	}

	// Nodal balance: linked units inject, angle differences carry flow,
	// demand sits on the right-hand side. Absent buses demand zero.
	c, ok = m.Constraint(NodalBalanceKey(0, "b2"))
	if !ok {
		t.Fatal("missing nodal balance")
	}
	if c.Sense != Equal || c.RHS != 150 {
		t.Fatalf("nodal balance shape: %+v", c)
	}
	if _, injects := c.Coefs[PowerKey(0, "coal")]; injects {
		t.Fatal("coal does not feed b2")
	}
	// Coupling to b1 uses the line's Z, to b3 the missing-line default of
	// 1, so the diagonal term is -(2+1).
	if c.Coefs[AngleKey(0, "b2")] != -3 {
		t.Fatalf("diagonal coupling: %v", c.Coefs)
	}
	if c.Coefs[AngleKey(0, "b1")] != 2 || c.Coefs[AngleKey(0, "b3")] != 1 {
		t.Fatalf("off-diagonal coupling: %v", c.Coefs)
	}

	c, _ = m.Constraint(NodalBalanceKey(1, "b1"))
	if c.RHS != 0 {
		t.Fatalf("bus absent from the load mapping must demand zero, got %v", c.RHS)
	}
	if c.Coefs[PowerKey(1, "coal")] != 1 {
		t.Fatalf("coal feeds b1: %v", c.Coefs)
	}
}

func TestFormulator_DCReserve(t *testing.T) {
	m := buildGridModel(t, 0.05, Options{Variant: VariantDC})
	c, ok := m.Constraint("nodal_reserve[0,b2]")
	if !ok {
		t.Fatal("missing nodal reserve")
	}
	if c.RHS != 150*1.05 {
		t.Fatalf("nodal reserve demand: %v", c.RHS)
	}
}

func TestFormulator_VariantChainIsSuperset(t *testing.T) {
	// Every later variant keeps all constraints of the earlier ones.
	s, n := grid(t, 0.1)
	load := gridLoad(t)

	build := func(v Variant) *Model {
		f := NewFormulator(s, n, Options{Variant: v}, nil)
		m, err := f.Build(load)
		if err != nil {
			t.Fatalf("build %s: %v", v, err)
		}
		return m
	}
	dc := build(VariantDC)
	scdc := build(VariantSCDC)

	for _, c := range dc.Cons {
		if _, ok := scdc.Constraint(c.Name); !ok {
			t.Fatalf("scdc dropped %s", c.Name)
		}
	}
	if len(scdc.Cons) <= len(dc.Cons) {
		t.Fatal("scdc must add contingency constraints")
	}

	// The copper-plate commitment families survive into the nodal models.
	mf := NewFormulator(s, nil, Options{}, nil)
	milp, err := mf.Build(model.FlatLoad([]float64{190, 230}))
	if err != nil {
		t.Fatalf("build milp: %v", err)
	}
	for _, c := range milp.Cons {
		if strings.HasPrefix(c.Name, "balance") {
			continue // replaced by the nodal balance
		}
		if _, ok := dc.Constraint(c.Name); !ok {
			t.Fatalf("dc dropped %s", c.Name)
		}
	}
}

func TestFormulator_SecurityEquations(t *testing.T) {
	m := buildGridModel(t, 0, Options{Variant: VariantSCDC})
	c1 := model.Arc{A: "b1", B: "b2"}
	c2 := model.Arc{A: "b2", B: "b3"}

	// Dispatch and angles are duplicated per contingency.
	for _, c := range []model.Arc{c1, c2} {
		if !m.HasVar(contPowerKey(0, "coal", c)) {
			t.Fatalf("missing contingency power for %s", c)
		}
		if !m.HasVar(contAngleKey(1, "b3", c)) {
			t.Fatalf("missing contingency angle for %s", c)
		}
	}

	// The lost arc carries no flow during its own outage.
	c, ok := m.Constraint(fmt.Sprintf("cont_lost_arc[0,%s]", c1))
	if !ok {
		t.Fatal("missing lost-arc constraint")
	}
	if c.Sense != Equal || c.RHS != 0 {
		t.Fatalf("lost-arc shape: %+v", c)
	}

	// Post-contingency reaction is bounded by half a ramp period, only
	// for ramp-limited units.
	c, ok = m.Constraint(fmt.Sprintf("cont_react_up[1,coal,%s]", c1))
	if !ok {
		t.Fatal("missing reaction limit")
	}
	if c.RHS != 40 {
		t.Fatalf("reaction limit should be half the ramp, got %v", c.RHS)
	}
	if _, ok := m.Constraint(fmt.Sprintf("cont_react_up[1,gas,%s]", c1)); ok {
		t.Fatal("gas has no ramp limit, reaction constraint must be skipped")
	}

	// Commitment binaries are shared: the contingency bounds gate on the
	// base-case on variable.
	c, _ = m.Constraint(fmt.Sprintf("cont_max_power[0,coal,%s]", c2))
	if c.Coefs[OnKey(0, "coal")] != -300 {
		t.Fatalf("contingency gating: %v", c.Coefs)
	}

	// Contingency balance mirrors the base nodal balance.
	c, ok = m.Constraint(fmt.Sprintf("cont_balance[0,b2,%s]", c2))
	if !ok {
		t.Fatal("missing contingency balance")
	}
	if c.RHS != 150 {
		t.Fatalf("contingency demand: %v", c.RHS)
	}
}

func TestFormulator_ContingencySubset(t *testing.T) {
	c2 := model.Arc{A: "b2", B: "b3"}
	m := buildGridModel(t, 0, Options{Variant: VariantSCDC, Contingencies: []model.Arc{c2}})

	if !m.HasVar(contPowerKey(0, "coal", c2)) {
		t.Fatal("monitored arc must be duplicated")
	}
	c1 := model.Arc{A: "b1", B: "b2"}
	if m.HasVar(contPowerKey(0, "coal", c1)) {
		t.Fatal("unmonitored arc must not be duplicated")
	}
}
