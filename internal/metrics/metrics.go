package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ResultOK      = "ok"
	ResultEmpty   = "empty"
	ResultInvalid = "invalid"
	ResultError   = "error"
)

// Search holds the route search collectors. A nil *Search records nothing.
type Search struct {
	total       *prometheus.CounterVec
	duration    prometheus.Histogram
	candidates  prometheus.Histogram
	missingLegs prometheus.Counter
}

// NewSearch registers the collectors on reg; pass prometheus.DefaultRegisterer in
// the server.
func NewSearch(reg prometheus.Registerer) *Search {
	f := promauto.With(reg)
	return &Search{
		// total counts searches by outcome
		total: f.NewCounterVec(prometheus.CounterOpts{
			Name: "route_search_total",
			Help: "Total route searches by result",
		}, []string{"result"}),
		duration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "route_search_duration_seconds",
			Help:    "Route search duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 14), // 1ms to ~8s
		}),
		candidates: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "route_search_candidates",
			Help:    "Feasible itineraries found per search",
			Buckets: []float64{0, 1, 2, 5, 10, 20, 50, 100, 500},
		}),
		missingLegs: f.NewCounter(prometheus.CounterOpts{
			Name: "route_search_missing_tariff_legs_total",
			Help: "Legs priced with the missing-tariff fallback",
		}),
	}
}

func (m *Search) Observe(result string, elapsed time.Duration, candidates, missingLegs int) {
	if m == nil {
		return
	}
	m.total.WithLabelValues(result).Inc()
	m.duration.Observe(elapsed.Seconds())
	if result == ResultOK || result == ResultEmpty {
		m.candidates.Observe(float64(candidates))
	}
	if missingLegs > 0 {
		m.missingLegs.Add(float64(missingLegs))
	}
}
