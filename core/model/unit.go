package model

import "fmt"

// CostCurve holds the coefficients of a convex quadratic fuel consumption
// curve F(P) = C0 + C1*P + C2*P^2.
type CostCurve struct {
	C0 float64
	C1 float64
	C2 float64
}

// ThermalUnit represents a dispatchable thermal generating unit. Units are
// immutable after construction.
type ThermalUnit struct {
	Name        string
	Curve       CostCurve
	FuelCost    float64 // currency per fuel unit
	MinPower    float64
	MaxPower    float64
	StartUpCost float64

	// Ramp limits in power per period. A nil limit means unconstrained.
	RampUp   *float64
	RampDown *float64

	// Minimum number of periods the unit must stay on after a start,
	// respectively off after a shutdown. A nil value means unconstrained.
	MinUptime *int
	MinRest   *int
}

// Validate checks that the unit configuration is sound.
func (u ThermalUnit) Validate() error {
	if u.Name == "" {
		return fmt.Errorf("unit name must not be empty")
	}
	if u.MinPower > u.MaxPower {
		return fmt.Errorf("unit %s: min power %.3f exceeds max power %.3f", u.Name, u.MinPower, u.MaxPower)
	}
	if u.Curve.C2 < 0 {
		return fmt.Errorf("unit %s: quadratic cost coefficient must be non-negative", u.Name)
	}
	if u.StartUpCost < 0 {
		return fmt.Errorf("unit %s: start-up cost must be non-negative", u.Name)
	}
	return nil
}

// InputOutput evaluates the fuel consumption F(P).
func (u ThermalUnit) InputOutput(p float64) float64 {
	return u.Curve.C0 + u.Curve.C1*p + u.Curve.C2*p*p
}

// NetHeatrate returns fuel consumption per unit of power, scaled to
// conventional heatrate units. At zero power the heatrate is undefined and
// zero is returned.
func (u ThermalUnit) NetHeatrate(p float64) float64 {
	if p == 0 {
		return 0
	}
	return u.InputOutput(p) / p * 1000
}

// MarginalHeatrate returns dF/dP = C1 + 2*C2*P.
func (u ThermalUnit) MarginalHeatrate(p float64) float64 {
	return u.Curve.C1 + 2*u.Curve.C2*p
}

// MarginalCost returns the marginal cost of production at power p.
func (u ThermalUnit) MarginalCost(p float64) float64 {
	return u.MarginalHeatrate(p) * u.FuelCost
}

// InverseMarginalCost returns the power at which the unit's marginal cost
// equals lambda. When C2 is zero the marginal cost is constant and no exact
// inverse exists: the unit is either fully in or fully out of the money, so
// the result steps from MinPower to MaxPower at the constant marginal cost.
func (u ThermalUnit) InverseMarginalCost(lambda float64) float64 {
	if u.Curve.C2 == 0 {
		if lambda < u.Curve.C1*u.FuelCost {
			return u.MinPower
		}
		return u.MaxPower
	}
	return (lambda/u.FuelCost - u.Curve.C1) / (2 * u.Curve.C2)
}
