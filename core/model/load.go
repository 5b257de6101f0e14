package model

import "fmt"

// Load is the demand input of a scheduling problem: either a single flat
// series for copper-plate formulations or one series per bus for nodal
// formulations. A bus absent from the mapping has zero demand in every
// period.
type Load struct {
	flat  []float64
	byBus map[string][]float64
}

// FlatLoad wraps a single system-wide demand series.
func FlatLoad(series []float64) Load { return Load{flat: series} }

// BusLoad wraps per-bus demand series. All series must have equal length.
func BusLoad(series map[string][]float64) (Load, error) {
	t := -1
	for bus, s := range series {
		if t == -1 {
			t = len(s)
		} else if len(s) != t {
			return Load{}, fmt.Errorf("bus %s: load series length %d differs from %d", bus, len(s), t)
		}
	}
	return Load{byBus: series}, nil
}

// Nodal reports whether the load is bus-indexed.
func (l Load) Nodal() bool { return l.byBus != nil }

// Periods returns the horizon length T.
func (l Load) Periods() int {
	if l.byBus != nil {
		for _, s := range l.byBus {
			return len(s)
		}
		return 0
	}
	return len(l.flat)
}

// System returns the system-wide demand in period t.
func (l Load) System(t int) float64 {
	if l.byBus != nil {
		var total float64
		for _, s := range l.byBus {
			total += s[t]
		}
		return total
	}
	return l.flat[t]
}

// Bus returns the demand at the given bus in period t, zero when the bus is
// absent from the mapping.
func (l Load) Bus(bus string, t int) float64 {
	s, ok := l.byBus[bus]
	if !ok {
		return 0
	}
	return s[t]
}
