package uc

import (
	"fmt"

	"github.com/gridopt/powersched/core/model"
)

// buildUnitEquations declares the per-unit decision variables and the
// commitment constraint families: startup/shutdown balance, minimum uptime
// and rest, ramp limits and on-gated power bounds.
func buildUnitEquations(b *builder, system *model.System, horizon int, initialOn map[string]bool) {
	for t := 0; t < horizon; t++ {
		for _, u := range system.Units() {
			b.continuous(powerKey(t, u.Name), 0, posInf())
			b.binary(onKey(t, u.Name))
			b.binary(startupKey(t, u.Name))
			b.binary(shutdownKey(t, u.Name))
		}
	}

	for t := 0; t < horizon; t++ {
		for _, u := range system.Units() {
			if t == 0 {
				// The first period has no predecessor; the balance is
				// anchored to the configured initial commitment state.
				init := 0.0
				if initialOn[u.Name] {
					init = 1
				}
				b.constrain(fmt.Sprintf("startup_balance[0,%s]", u.Name),
					expr{}.add(onKey(0, u.Name), 1).
						add(startupKey(0, u.Name), -1).
						add(shutdownKey(0, u.Name), 1),
					Equal, init)
			} else {
				b.constrain(fmt.Sprintf("startup_balance[%d,%s]", t, u.Name),
					expr{}.add(onKey(t, u.Name), 1).
						add(onKey(t-1, u.Name), -1).
						add(startupKey(t, u.Name), -1).
						add(shutdownKey(t, u.Name), 1),
					Equal, 0)
			}

			if u.MinUptime != nil && t <= *u.MinUptime {
				e := expr{}.add(shutdownKey(t, u.Name), 1)
				for tt := max(0, t-*u.MinUptime); tt <= t; tt++ {
					e.add(startupKey(tt, u.Name), 1)
				}
				b.constrain(fmt.Sprintf("min_uptime[%d,%s]", t, u.Name), e, LessEq, 1)
			}

			if u.MinRest != nil && t <= *u.MinRest {
				e := expr{}.add(startupKey(t, u.Name), 1)
				for tt := max(0, t-*u.MinRest); tt <= t; tt++ {
					e.add(shutdownKey(tt, u.Name), 1)
				}
				b.constrain(fmt.Sprintf("min_rest[%d,%s]", t, u.Name), e, LessEq, 1)
			}

			if u.RampUp != nil && t > 0 {
				b.constrain(fmt.Sprintf("ramp_up[%d,%s]", t, u.Name),
					expr{}.add(powerKey(t, u.Name), 1).
						add(powerKey(t-1, u.Name), -1).
						add(onKey(t-1, u.Name), -*u.RampUp).
						add(startupKey(t, u.Name), -u.MinPower),
					LessEq, 0)
			}
			if u.RampDown != nil && t > 0 {
				b.constrain(fmt.Sprintf("ramp_down[%d,%s]", t, u.Name),
					expr{}.add(powerKey(t-1, u.Name), 1).
						add(powerKey(t, u.Name), -1).
						add(onKey(t, u.Name), -*u.RampDown).
						add(shutdownKey(t, u.Name), -u.MinPower),
					LessEq, 0)
			}

			b.constrain(fmt.Sprintf("min_power[%d,%s]", t, u.Name),
				expr{}.add(powerKey(t, u.Name), 1).add(onKey(t, u.Name), -u.MinPower),
				GreaterEq, 0)
			b.constrain(fmt.Sprintf("max_power[%d,%s]", t, u.Name),
				expr{}.add(powerKey(t, u.Name), 1).add(onKey(t, u.Name), -u.MaxPower),
				LessEq, 0)
		}
	}
}
