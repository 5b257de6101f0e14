package uc

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/gridopt/powersched/core/model"
)

// builder is the mutable context the constraint-family builders apply to in
// a fixed order. It accumulates into one Model and keeps the first error.
type builder struct {
	m   *Model
	err error
}

func newBuilder() *builder {
	return &builder{m: &Model{
		ID:       uuid.NewString(),
		varIndex: make(map[string]int),
		conIndex: make(map[string]int),
		Objective: Objective{
			Linear: make(map[string]float64),
			Quad:   make(map[string]float64),
		},
	}}
}

func (b *builder) continuous(name string, lo, hi float64) {
	if b.err != nil {
		return
	}
	b.err = b.m.addVar(Var{Name: name, Kind: Continuous, Lo: lo, Hi: hi})
}

func (b *builder) binary(name string) {
	if b.err != nil {
		return
	}
	b.err = b.m.addVar(Var{Name: name, Kind: Binary, Lo: 0, Hi: 1})
}

func (b *builder) constrain(name string, coefs map[string]float64, sense Sense, rhs float64) {
	if b.err != nil {
		return
	}
	b.err = b.m.addCon(Constraint{Name: name, Coefs: coefs, Sense: sense, RHS: rhs})
}

// expr builds a sparse coefficient map, merging repeated variables.
type expr map[string]float64

func (e expr) add(name string, coef float64) expr {
	e[name] += coef
	return e
}

func posInf() float64 { return math.Inf(1) }

func negInf() float64 { return math.Inf(-1) }

// Variable and constraint key layouts. Names are part of the Model's
// contract: result projection reads solver values and duals back by key.

func powerKey(t int, u string) string    { return fmt.Sprintf("power[%d,%s]", t, u) }
func onKey(t int, u string) string       { return fmt.Sprintf("on[%d,%s]", t, u) }
func startupKey(t int, u string) string  { return fmt.Sprintf("startup[%d,%s]", t, u) }
func shutdownKey(t int, u string) string { return fmt.Sprintf("shutdown[%d,%s]", t, u) }
func reserveKey(t int, u string) string  { return fmt.Sprintf("reserve[%d,%s]", t, u) }
func fuelKey(t int, u string) string     { return fmt.Sprintf("fuel[%d,%s]", t, u) }
func angleKey(t int, bus string) string  { return fmt.Sprintf("angle[%d,%s]", t, bus) }

func contPowerKey(t int, u string, c model.Arc) string {
	return fmt.Sprintf("power_c[%d,%s,%s]", t, u, c)
}

func contAngleKey(t int, bus string, c model.Arc) string {
	return fmt.Sprintf("angle_c[%d,%s,%s]", t, bus, c)
}

// NodalBalanceKey names the nodal power-balance constraint of a bus in a
// period. Its dual value is the locational marginal price at that bus.
func NodalBalanceKey(t int, bus string) string {
	return fmt.Sprintf("nodal_balance[%d,%s]", t, bus)
}

// PowerKey names the dispatched-power variable of a unit in a period.
func PowerKey(t int, u string) string { return powerKey(t, u) }

// OnKey names the commitment binary of a unit in a period.
func OnKey(t int, u string) string { return onKey(t, u) }

// AngleKey names the voltage-angle variable of a bus in a period.
func AngleKey(t int, bus string) string { return angleKey(t, bus) }
