package uc

import (
	"fmt"

	"github.com/gridopt/powersched/core/model"
)

// buildNodalEquations replaces the copper-plate balance with the DC power
// flow model: one voltage angle per bus and period, angle-difference flows
// limited per arc, and a nodal balance at every bus. The first bus in
// sorted order is the angle reference and is pinned to zero.
//
// Flow coupling between bus pairs uses Network.Z with its missing-line
// fallback of 1, so every pair of buses exchanges power in the balance.
func buildNodalEquations(b *builder, network *model.Network, load model.Load, horizon int) {
	buses := network.Buses()
	ref := buses[0]
	for t := 0; t < horizon; t++ {
		for _, bus := range buses {
			if bus == ref {
				b.continuous(angleKey(t, bus), 0, 0)
			} else {
				b.continuous(angleKey(t, bus), negInf(), posInf())
			}
		}
	}

	for t := 0; t < horizon; t++ {
		for _, a := range network.Arcs() {
			lim, ok := network.PowerLim(a.A, a.B)
			if !ok {
				continue
			}
			z := network.Z(a.A, a.B)
			b.constrain(fmt.Sprintf("flow_limit_up[%d,%s]", t, a),
				expr{}.add(angleKey(t, a.A), z).add(angleKey(t, a.B), -z),
				LessEq, lim)
			b.constrain(fmt.Sprintf("flow_limit_lo[%d,%s]", t, a),
				expr{}.add(angleKey(t, a.A), z).add(angleKey(t, a.B), -z),
				GreaterEq, -lim)
		}

		for _, bus := range buses {
			e := expr{}
			for _, u := range network.System.Units() {
				if network.Linked(bus, u.Name) {
					e.add(powerKey(t, u.Name), 1)
				}
			}
			for _, other := range buses {
				if other == bus {
					continue
				}
				z := network.Z(bus, other)
				e.add(angleKey(t, bus), -z)
				e.add(angleKey(t, other), z)
			}
			b.constrain(NodalBalanceKey(t, bus), e, Equal, load.Bus(bus, t))
		}

		if r := network.System.ReserveReq; r > 0 && r < 1 {
			for _, bus := range buses {
				e := expr{}
				for _, u := range network.System.Units() {
					e.add(reserveKey(t, u.Name), 1)
				}
				b.constrain(fmt.Sprintf("nodal_reserve[%d,%s]", t, bus),
					e, GreaterEq, load.Bus(bus, t)*(1+r))
			}
		}
	}
}
