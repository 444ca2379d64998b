// Package metrics exports best-match selections as Prometheus metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	langmatch "github.com/goliatone/go-langmatch"
)

const (
	namespace = "langmatch"

	selectionsKey = "selections_total"
	scoreKey      = "selection_score"
	durationKey   = "selection_duration_seconds"

	startedAtKey = "metrics.started_at"
)

// Hook is a langmatch.MatchHook that is also a prometheus.Collector.
// Register it with a registry and pass it to langmatch.WithHooks.
type Hook struct {
	selections *prometheus.CounterVec
	score      prometheus.Histogram
	duration   prometheus.Histogram
	now        func() time.Time
}

var _ langmatch.MatchHook = (*Hook)(nil)
var _ prometheus.Collector = (*Hook)(nil)

func NewHook() *Hook {
	return &Hook{
		selections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      selectionsKey,
			Help:      "Number of best-match selections by outcome",
		}, []string{"outcome"}),
		score: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      scoreKey,
			Help:      "Score of the selected candidate (distance plus position)",
			Buckets:   []float64{0, 10, 50, 100, 250, 500, 840},
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      durationKey,
			Help:      "Time spent selecting a best match",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 8),
		}),
		now: time.Now,
	}
}

func (h *Hook) BeforeMatch(ctx *langmatch.MatchHookContext) {
	ctx.SetMetadata(startedAtKey, h.now())
}

func (h *Hook) AfterMatch(ctx *langmatch.MatchHookContext) {
	h.selections.WithLabelValues(ctx.Outcome()).Inc()

	if ctx.Matched {
		h.score.Observe(float64(ctx.Score))
	}

	if value, ok := ctx.MetadataValue(startedAtKey); ok {
		if started, ok := value.(time.Time); ok {
			h.duration.Observe(h.now().Sub(started).Seconds())
		}
	}
}

// Describe implements the prometheus.Collector interface.
func (h *Hook) Describe(ch chan<- *prometheus.Desc) {
	h.selections.Describe(ch)
	h.score.Describe(ch)
	h.duration.Describe(ch)
}

// Collect implements the prometheus.Collector interface.
func (h *Hook) Collect(ch chan<- prometheus.Metric) {
	h.selections.Collect(ch)
	h.score.Collect(ch)
	h.duration.Collect(ch)
}
