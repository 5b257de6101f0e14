// Package result reshapes raw solver values into time-indexed tables.
package result

import (
	"fmt"

	"github.com/gridopt/powersched/core/model"
	"github.com/gridopt/powersched/core/solver"
	"github.com/gridopt/powersched/core/uc"
)

// PowerRecord is the dispatched power of one unit in one period.
type PowerRecord struct {
	Period int
	Unit   string
	Power  float64
}

// LMPRecord is the locational marginal price at one bus in one period,
// taken from the dual of the bus's nodal balance constraint.
type LMPRecord struct {
	Period int
	Bus    string
	Price  float64
}

// FlowRecord is the power flowing over one arc in one period, computed from
// the endpoint angle difference and the arc coupling.
type FlowRecord struct {
	Period int
	Arc    model.Arc
	Flow   float64
}

// Power extracts the per-period, per-unit dispatch table.
func Power(res solver.Result, system *model.System, horizon int) ([]PowerRecord, error) {
	if !res.Status.Usable() {
		return nil, fmt.Errorf("result status %s is not usable", res.Status)
	}
	records := make([]PowerRecord, 0, horizon*system.Len())
	for t := 0; t < horizon; t++ {
		for _, u := range system.Units() {
			v, ok := res.Values[uc.PowerKey(t, u.Name)]
			if !ok {
				return nil, fmt.Errorf("solution has no value for unit %s in period %d", u.Name, t)
			}
			records = append(records, PowerRecord{Period: t, Unit: u.Name, Power: v})
		}
	}
	return records, nil
}

// LMP extracts the per-period, per-bus locational marginal price table from
// the nodal balance duals. Engines that do not report duals yield an error.
func LMP(res solver.Result, network *model.Network, horizon int) ([]LMPRecord, error) {
	if !res.Status.Usable() {
		return nil, fmt.Errorf("result status %s is not usable", res.Status)
	}
	if len(res.Duals) == 0 {
		return nil, fmt.Errorf("engine reported no duals, cannot derive prices")
	}
	records := make([]LMPRecord, 0, horizon*len(network.Buses()))
	for t := 0; t < horizon; t++ {
		for _, bus := range network.Buses() {
			d, ok := res.Duals[uc.NodalBalanceKey(t, bus)]
			if !ok {
				return nil, fmt.Errorf("no dual for bus %s in period %d", bus, t)
			}
			records = append(records, LMPRecord{Period: t, Bus: bus, Price: d})
		}
	}
	return records, nil
}

// Flows extracts the per-period, per-arc line flow table from the solved
// bus angles.
func Flows(res solver.Result, network *model.Network, horizon int) ([]FlowRecord, error) {
	if !res.Status.Usable() {
		return nil, fmt.Errorf("result status %s is not usable", res.Status)
	}
	records := make([]FlowRecord, 0, horizon*len(network.Arcs()))
	for t := 0; t < horizon; t++ {
		for _, a := range network.Arcs() {
			va, okA := res.Values[uc.AngleKey(t, a.A)]
			vb, okB := res.Values[uc.AngleKey(t, a.B)]
			if !okA || !okB {
				return nil, fmt.Errorf("solution has no angles for arc %s in period %d", a, t)
			}
			records = append(records, FlowRecord{Period: t, Arc: a, Flow: network.Z(a.A, a.B) * (va - vb)})
		}
	}
	return records, nil
}
