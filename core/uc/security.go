package uc

import (
	"fmt"

	"github.com/gridopt/powersched/core/model"
)

// buildSecurityEquations duplicates the dispatch and flow variables once per
// contingency: the schedule must stay feasible with any single monitored arc
// out of service. Commitment binaries are shared with the base case; only
// continuous recourse is allowed, bounded by half a ramp period. Flow on the
// lost arc is pinned to zero by forcing its endpoint angles equal, which
// also removes its coupling from the contingency balance.
func buildSecurityEquations(b *builder, network *model.Network, load model.Load, horizon int, contingencies []model.Arc) {
	system := network.System
	buses := network.Buses()
	ref := buses[0]

	for _, c := range contingencies {
		for t := 0; t < horizon; t++ {
			for _, u := range system.Units() {
				b.continuous(contPowerKey(t, u.Name, c), 0, posInf())
			}
			for _, bus := range buses {
				if bus == ref {
					b.continuous(contAngleKey(t, bus, c), 0, 0)
				} else {
					b.continuous(contAngleKey(t, bus, c), negInf(), posInf())
				}
			}
		}
	}

	for _, c := range contingencies {
		for t := 0; t < horizon; t++ {
			for _, u := range system.Units() {
				if u.RampUp != nil && t > 0 {
					b.constrain(fmt.Sprintf("cont_ramp_up[%d,%s,%s]", t, u.Name, c),
						expr{}.add(contPowerKey(t, u.Name, c), 1).
							add(contPowerKey(t-1, u.Name, c), -1).
							add(onKey(t-1, u.Name), -*u.RampUp).
							add(startupKey(t, u.Name), -u.MinPower),
						LessEq, 0)
				}
				if u.RampDown != nil && t > 0 {
					b.constrain(fmt.Sprintf("cont_ramp_down[%d,%s,%s]", t, u.Name, c),
						expr{}.add(contPowerKey(t-1, u.Name, c), 1).
							add(contPowerKey(t, u.Name, c), -1).
							add(onKey(t, u.Name), -*u.RampDown).
							add(shutdownKey(t, u.Name), -u.MinPower),
						LessEq, 0)
				}

				b.constrain(fmt.Sprintf("cont_min_power[%d,%s,%s]", t, u.Name, c),
					expr{}.add(contPowerKey(t, u.Name, c), 1).add(onKey(t, u.Name), -u.MinPower),
					GreaterEq, 0)
				b.constrain(fmt.Sprintf("cont_max_power[%d,%s,%s]", t, u.Name, c),
					expr{}.add(contPowerKey(t, u.Name, c), 1).add(onKey(t, u.Name), -u.MaxPower),
					LessEq, 0)

				// Post-contingency reaction is instantaneous and bounded by
				// half the per-period ramp capability.
				if u.RampUp != nil {
					b.constrain(fmt.Sprintf("cont_react_up[%d,%s,%s]", t, u.Name, c),
						expr{}.add(contPowerKey(t, u.Name, c), 1).add(powerKey(t, u.Name), -1),
						LessEq, *u.RampUp/2)
				}
				if u.RampDown != nil {
					b.constrain(fmt.Sprintf("cont_react_down[%d,%s,%s]", t, u.Name, c),
						expr{}.add(powerKey(t, u.Name), 1).add(contPowerKey(t, u.Name, c), -1),
						LessEq, *u.RampDown/2)
				}
			}

			for _, a := range network.Arcs() {
				lim, ok := network.PowerLim(a.A, a.B)
				if !ok {
					continue
				}
				z := network.Z(a.A, a.B)
				b.constrain(fmt.Sprintf("cont_flow_limit_up[%d,%s,%s]", t, a, c),
					expr{}.add(contAngleKey(t, a.A, c), z).add(contAngleKey(t, a.B, c), -z),
					LessEq, lim)
				b.constrain(fmt.Sprintf("cont_flow_limit_lo[%d,%s,%s]", t, a, c),
					expr{}.add(contAngleKey(t, a.A, c), z).add(contAngleKey(t, a.B, c), -z),
					GreaterEq, -lim)
			}

			for _, bus := range buses {
				e := expr{}
				for _, u := range system.Units() {
					if network.Linked(bus, u.Name) {
						e.add(contPowerKey(t, u.Name, c), 1)
					}
				}
				for _, other := range buses {
					if other == bus {
						continue
					}
					z := network.Z(bus, other)
					e.add(contAngleKey(t, bus, c), -z)
					e.add(contAngleKey(t, other, c), z)
				}
				b.constrain(fmt.Sprintf("cont_balance[%d,%s,%s]", t, bus, c), e, Equal, load.Bus(bus, t))
			}

			// The monitored arc carries no flow during its own outage.
			z := network.Z(c.A, c.B)
			b.constrain(fmt.Sprintf("cont_lost_arc[%d,%s]", t, c),
				expr{}.add(contAngleKey(t, c.A, c), z).add(contAngleKey(t, c.B, c), -z),
				Equal, 0)
		}
	}
}
