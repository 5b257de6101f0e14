package uc

import (
	"fmt"

	"github.com/gridopt/powersched/core/model"
)

// buildLinearObjective declares per-period fuel-consumption variables forced
// above the piecewise-linear supports of each unit's cost curve, and
// minimizes fuel cost plus startup cost. The on-gated intercept drives fuel
// to zero while a unit is off even though supports are sampled from the
// on-state curve.
func buildLinearObjective(b *builder, system *model.System, horizon, numLines int) {
	for t := 0; t < horizon; t++ {
		for _, u := range system.Units() {
			b.continuous(fuelKey(t, u.Name), 0, posInf())
		}
	}
	for _, u := range system.Units() {
		lines := Linearize(u, numLines)
		for t := 0; t < horizon; t++ {
			for i, l := range lines {
				// fuel >= Value*on + Slope*(power - Breakpoint)
				b.constrain(fmt.Sprintf("support[%d,%s,%d]", t, u.Name, i),
					expr{}.add(fuelKey(t, u.Name), 1).
						add(onKey(t, u.Name), -l.Value).
						add(powerKey(t, u.Name), -l.Slope),
					GreaterEq, -l.Slope*l.Breakpoint)
			}
			b.m.Objective.Linear[fuelKey(t, u.Name)] += u.FuelCost
			b.m.Objective.Linear[startupKey(t, u.Name)] += u.StartUpCost
		}
	}
}

// buildQuadraticObjective minimizes the exact quadratic fuel cost plus
// startup cost. The constant curve term is the no-load cost and is gated by
// the commitment binary rather than contributed as a fixed offset.
func buildQuadraticObjective(b *builder, system *model.System, horizon int) {
	for _, u := range system.Units() {
		for t := 0; t < horizon; t++ {
			b.m.Objective.Quad[powerKey(t, u.Name)] += u.Curve.C2 * u.FuelCost
			b.m.Objective.Linear[powerKey(t, u.Name)] += u.Curve.C1 * u.FuelCost
			b.m.Objective.Linear[onKey(t, u.Name)] += u.Curve.C0 * u.FuelCost
			b.m.Objective.Linear[startupKey(t, u.Name)] += u.StartUpCost
		}
	}
}
