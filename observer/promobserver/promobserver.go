// Package promobserver adapts a run into Prometheus metrics, the way
// jinterlante1206-AleutianLocal's routing/graph/cache packages expose
// counters and histograms via promauto against a prometheus.Registerer.
package promobserver

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rwcarlsen/optimum"
)

// CountsReporter is the subset of state fields the sink needs: current
// iteration, whether it set a new best, and the per-capability evaluation
// counters. Sink additionally requires BestCostFloat for the best cost.
type CountsReporter interface {
	GetIter() uint64
	IsBest() bool
	FuncCounts() optimum.Counts
}

// Sink reports iteration, best-cost, and evaluation-count metrics to a
// prometheus.Registerer. Unlike the teacher's package-level promauto
// variables, metrics are instance-scoped so multiple runs (e.g. parallel
// test cases) don't collide on double-registration.
type Sink[St interface {
	CountsReporter
	BestCostFloat() float64
}] struct {
	iterations prometheus.Gauge
	bestCost   prometheus.Gauge
	evalCounts *prometheus.GaugeVec
}

// New registers the sink's metrics against reg under the given namespace
// and returns the sink.
func New[St interface {
	CountsReporter
	BestCostFloat() float64
}](reg prometheus.Registerer, namespace string) *Sink[St] {
	s := &Sink[St]{
		iterations: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "optimum",
			Name:      "iterations",
			Help:      "Current iteration count of the run.",
		}),
		bestCost: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "optimum",
			Name:      "best_cost",
			Help:      "Best cost observed so far in the run.",
		}),
		evalCounts: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "optimum",
			Name:      "eval_count",
			Help:      "Cumulative scalar evaluation count per capability.",
		}, []string{"capability"}),
	}
	reg.MustRegister(s.iterations, s.bestCost, s.evalCounts)
	return s
}

func (s *Sink[St]) ObserveInit(name string, state St, kv *optimum.KV) error {
	s.report(state)
	return nil
}

func (s *Sink[St]) ObserveIter(state St, kv *optimum.KV) error {
	s.report(state)
	return nil
}

func (s *Sink[St]) report(state St) {
	s.iterations.Set(float64(state.GetIter()))
	s.bestCost.Set(state.BestCostFloat())
	for kind, n := range state.FuncCounts().All() {
		s.evalCounts.WithLabelValues(string(kind)).Set(float64(n))
	}
}
