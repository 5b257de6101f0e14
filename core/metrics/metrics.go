// Package metrics defines the observability sink consumed by the scheduling
// components. Implementations live under infra.
package metrics

// Sink receives solve and dispatch telemetry.
type Sink interface {
	// RecordSolve records one engine run for a formulation variant with its
	// final status and wall-clock duration in seconds.
	RecordSolve(variant, status string, seconds float64) error
	// RecordDispatch records one lambda-iteration run: the number of
	// bisection steps taken and whether the mismatch converged.
	RecordDispatch(iterations int, converged bool) error
}

// Nop discards all telemetry.
type Nop struct{}

func (Nop) RecordSolve(string, string, float64) error { return nil }
func (Nop) RecordDispatch(int, bool) error            { return nil }
