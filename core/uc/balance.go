package uc

import (
	"fmt"

	"github.com/gridopt/powersched/core/model"
)

// buildBalanceEquations adds the copper-plate system balance: aggregate
// power covers the load in every period, and when a reserve requirement is
// active, aggregate reserve covers the load scaled by (1 + requirement).
func buildBalanceEquations(b *builder, system *model.System, load model.Load, horizon int) {
	for t := 0; t < horizon; t++ {
		e := expr{}
		for _, u := range system.Units() {
			e.add(powerKey(t, u.Name), 1)
		}
		b.constrain(fmt.Sprintf("balance[%d]", t), e, GreaterEq, load.System(t))

		if r := system.ReserveReq; r > 0 && r < 1 {
			e := expr{}
			for _, u := range system.Units() {
				e.add(reserveKey(t, u.Name), 1)
			}
			b.constrain(fmt.Sprintf("balance_reserve[%d]", t), e, GreaterEq, load.System(t)*(1+r))
		}
	}
}
