package uc

import (
	"fmt"

	"github.com/gridopt/powersched/core/model"
)

// buildReserveEquations declares spinning-reserve variables and their four
// per-unit constraint families. The fifth reserve family, system reserve
// sufficiency, lives with the balance builders. A zero reserve requirement
// produces no reserve variables or constraints at all.
func buildReserveEquations(b *builder, system *model.System, horizon int) {
	if system.ReserveReq == 0 {
		return
	}
	for t := 0; t < horizon; t++ {
		for _, u := range system.Units() {
			b.continuous(reserveKey(t, u.Name), 0, posInf())
		}
	}
	for t := 0; t < horizon; t++ {
		for _, u := range system.Units() {
			// Reserve covers at least the scheduled power.
			b.constrain(fmt.Sprintf("reserve_power[%d,%s]", t, u.Name),
				expr{}.add(reserveKey(t, u.Name), 1).add(powerKey(t, u.Name), -1),
				GreaterEq, 0)
			// And never exceeds capacity while committed.
			b.constrain(fmt.Sprintf("reserve_max[%d,%s]", t, u.Name),
				expr{}.add(reserveKey(t, u.Name), 1).add(onKey(t, u.Name), -u.MaxPower),
				LessEq, 0)

			// Reserve must be reachable from the previous operating point
			// within one ramp period.
			if u.RampUp != nil && t > 0 {
				b.constrain(fmt.Sprintf("reserve_ramp_up[%d,%s]", t, u.Name),
					expr{}.add(reserveKey(t, u.Name), 1).
						add(powerKey(t-1, u.Name), -1).
						add(onKey(t-1, u.Name), -*u.RampUp).
						add(startupKey(t, u.Name), -u.MinPower),
					LessEq, 0)
			}
			// And the unit must be able to come back down to the next
			// period's operating point. The last period has no successor.
			if u.RampDown != nil && t < horizon-1 {
				b.constrain(fmt.Sprintf("reserve_ramp_down[%d,%s]", t, u.Name),
					expr{}.add(reserveKey(t, u.Name), 1).
						add(powerKey(t+1, u.Name), -1).
						add(onKey(t, u.Name), -*u.RampDown).
						add(shutdownKey(t+1, u.Name), -u.MinPower),
					LessEq, 0)
			}
		}
	}
}
