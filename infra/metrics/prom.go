package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/gridopt/powersched/core/metrics"
)

// PromSink records scheduling telemetry in Prometheus metrics.
type PromSink struct {
	solves     *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	iterations *prometheus.HistogramVec
}

// NewPromSink registers the scheduling metrics on the default Prometheus
// registerer.
func NewPromSink() (coremetrics.Sink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (coremetrics.Sink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	solves := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "schedule_solves_total",
		Help: "Total number of solver engine runs",
	}, []string{"variant", "status"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "schedule_solve_duration_seconds",
		Help:    "Wall-clock duration of solver engine runs",
		Buckets: prometheus.DefBuckets,
	}, []string{"variant", "status"})
	iterations := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "dispatch_iterations",
		Help:    "Bisection steps taken by lambda-iteration dispatch",
		Buckets: []float64{1, 2, 4, 8, 16, 32},
	}, []string{"converged"})

	if err := reg.Register(solves); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			solves = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(duration); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			duration = are.ExistingCollector.(*prometheus.HistogramVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(iterations); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			iterations = are.ExistingCollector.(*prometheus.HistogramVec)
		} else {
			return nil, err
		}
	}
	return &PromSink{solves: solves, duration: duration, iterations: iterations}, nil
}

// RecordSolve increments the solve counter and observes the duration.
func (s *PromSink) RecordSolve(variant, status string, seconds float64) error {
	s.solves.WithLabelValues(variant, status).Inc()
	s.duration.WithLabelValues(variant, status).Observe(seconds)
	return nil
}

// RecordDispatch observes one lambda-iteration run.
func (s *PromSink) RecordDispatch(iterations int, converged bool) error {
	s.iterations.WithLabelValues(strconv.FormatBool(converged)).Observe(float64(iterations))
	return nil
}
