// Package prometheus provides metrics decorators for marketway services.
package prometheus

import (
	"context"
	"time"

	"github.com/fwojciec/marketway"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "marketway"

// Metrics holds the collectors shared by the decorators in this package.
type Metrics struct {
	// LocateTotal counts lookups by mode and result (hit, miss, error).
	LocateTotal *prometheus.CounterVec

	// LocateDuration measures lookup latency.
	LocateDuration prometheus.Histogram

	// ReloadTotal counts catalog rebuilds by status (success, error).
	ReloadTotal *prometheus.CounterVec

	// CatalogLines is the number of lines in the active index.
	CatalogLines prometheus.Gauge

	// CatalogViolations is the number of integrity violations found by the
	// last successful rebuild.
	CatalogViolations prometheus.Gauge

	// ChatTotal counts chat replies by action and status.
	ChatTotal *prometheus.CounterVec

	// ChatDuration measures end-to-end chat latency.
	ChatDuration prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		LocateTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "locator",
			Name:      "requests_total",
			Help:      "Total number of locate requests by mode and result.",
		}, []string{"mode", "result"}),
		LocateDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "locator",
			Name:      "duration_seconds",
			Help:      "Locate request latency.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
		}),
		ReloadTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "catalog",
			Name:      "reloads_total",
			Help:      "Total number of catalog reloads by status.",
		}, []string{"status"}),
		CatalogLines: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "catalog",
			Name:      "lines",
			Help:      "Number of lines in the active catalog.",
		}),
		CatalogViolations: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "catalog",
			Name:      "violations",
			Help:      "Data-integrity violations found by the last successful reload.",
		}),
		ChatTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "chat",
			Name:      "requests_total",
			Help:      "Total number of chat requests by action and status.",
		}, []string{"action", "status"}),
		ChatDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "chat",
			Name:      "duration_seconds",
			Help:      "Chat request latency.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}

// Ensure the decorators implement their interfaces at compile time.
var (
	_ marketway.Locator   = (*MetricsLocator)(nil)
	_ marketway.Reloader  = (*MetricsReloader)(nil)
	_ marketway.Assistant = (*MetricsAssistant)(nil)
)

// MetricsLocator wraps a Locator and records lookup outcomes.
type MetricsLocator struct {
	next    marketway.Locator
	metrics *Metrics
}

// NewMetricsLocator creates a new MetricsLocator.
func NewMetricsLocator(next marketway.Locator, metrics *Metrics) *MetricsLocator {
	return &MetricsLocator{next: next, metrics: metrics}
}

// Locate delegates to the wrapped locator.
func (l *MetricsLocator) Locate(ctx context.Context, keyword string, mode marketway.MatchMode) (results []*marketway.LocateResult, err error) {
	defer func(begin time.Time) {
		l.metrics.LocateDuration.Observe(time.Since(begin).Seconds())
		result := "hit"
		switch {
		case err != nil:
			result = "error"
		case len(results) == 0:
			result = "miss"
		}
		l.metrics.LocateTotal.WithLabelValues(string(mode), result).Inc()
	}(time.Now())
	return l.next.Locate(ctx, keyword, mode)
}

// MetricsReloader wraps a Reloader and tracks the size and health of the
// active catalog.
type MetricsReloader struct {
	next    marketway.Reloader
	metrics *Metrics
}

// NewMetricsReloader creates a new MetricsReloader.
func NewMetricsReloader(next marketway.Reloader, metrics *Metrics) *MetricsReloader {
	return &MetricsReloader{next: next, metrics: metrics}
}

// Reload delegates to the wrapped reloader.
func (r *MetricsReloader) Reload(ctx context.Context) (*marketway.Index, error) {
	idx, err := r.next.Reload(ctx)
	if err != nil {
		r.metrics.ReloadTotal.WithLabelValues("error").Inc()
		return idx, err
	}

	r.metrics.ReloadTotal.WithLabelValues("success").Inc()
	r.metrics.CatalogLines.Set(float64(idx.Len()))
	r.metrics.CatalogViolations.Set(float64(len(idx.Violations())))
	return idx, nil
}

// MetricsAssistant wraps an Assistant and records chat outcomes.
type MetricsAssistant struct {
	next    marketway.Assistant
	metrics *Metrics
}

// NewMetricsAssistant creates a new MetricsAssistant.
func NewMetricsAssistant(next marketway.Assistant, metrics *Metrics) *MetricsAssistant {
	return &MetricsAssistant{next: next, metrics: metrics}
}

// Chat delegates to the wrapped assistant.
func (a *MetricsAssistant) Chat(ctx context.Context, message string) (reply *marketway.Reply, err error) {
	defer func(begin time.Time) {
		a.metrics.ChatDuration.Observe(time.Since(begin).Seconds())
		action, status := "unknown", "success"
		if reply != nil {
			action = string(reply.Action)
		}
		if err != nil {
			status = "error"
		}
		a.metrics.ChatTotal.WithLabelValues(action, status).Inc()
	}(time.Now())
	return a.next.Chat(ctx, message)
}
