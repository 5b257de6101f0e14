package model

import "fmt"

// System is an ordered fleet of thermal units with a system-wide spinning
// reserve requirement. ReserveReq is the fraction of load that must be
// available as reserve; zero disables all reserve constraints.
type System struct {
	Name       string
	ReserveReq float64

	units []ThermalUnit
	index map[string]int
}

// NewSystem builds a system from the given units. Unit names must be unique.
func NewSystem(name string, units []ThermalUnit, reserveReq float64) (*System, error) {
	s := &System{Name: name, ReserveReq: reserveReq, index: make(map[string]int, len(units))}
	for _, u := range units {
		if err := u.Validate(); err != nil {
			return nil, err
		}
		if _, dup := s.index[u.Name]; dup {
			return nil, fmt.Errorf("duplicate unit name %q", u.Name)
		}
		s.index[u.Name] = len(s.units)
		s.units = append(s.units, u)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks the reserve requirement bounds.
func (s *System) Validate() error {
	if s.ReserveReq < 0 || s.ReserveReq >= 1 {
		return fmt.Errorf("reserve requirement %.3f outside [0,1)", s.ReserveReq)
	}
	return nil
}

// Units returns the fleet in insertion order.
func (s *System) Units() []ThermalUnit { return s.units }

// Unit looks a unit up by name.
func (s *System) Unit(name string) (ThermalUnit, bool) {
	i, ok := s.index[name]
	if !ok {
		return ThermalUnit{}, false
	}
	return s.units[i], true
}

// Len returns the number of units.
func (s *System) Len() int { return len(s.units) }
