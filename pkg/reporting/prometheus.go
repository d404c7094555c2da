package reporting

import (
	"context"
	"net/http"
	"strings"

	"github.com/goliatone/go-activity/pkg/activity"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusReporter counts delivery failures per stage and records the
// manager's publish counters.
type PrometheusReporter struct {
	reg       *prometheus.Registry
	failures  *prometheus.CounterVec
	published prometheus.Counter
	delivered prometheus.Counter
	skipped   prometheus.Counter
}

var (
	_ activity.ErrorReporter = (*PrometheusReporter)(nil)
	_ activity.Metrics       = (*PrometheusReporter)(nil)
)

// NewPrometheusReporter registers its collectors on a private registry.
func NewPrometheusReporter(namespace string) *PrometheusReporter {
	namespace = strings.TrimSpace(namespace)
	if namespace == "" {
		namespace = "activity"
	}
	reg := prometheus.NewRegistry()
	p := &PrometheusReporter{
		reg: reg,
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "delivery_failures_total",
			Help:      "Subscriber failures recovered during publish",
		}, []string{"stage"}),
		published: prometheus.NewCounter(prometheus.CounterOpts{Namespace: namespace, Name: "published_total", Help: "Events published"}),
		delivered: prometheus.NewCounter(prometheus.CounterOpts{Namespace: namespace, Name: "delivered_total", Help: "Successful subscriber deliveries"}),
		skipped:   prometheus.NewCounter(prometheus.CounterOpts{Namespace: namespace, Name: "skipped_total", Help: "Factories that yielded no subscriber"}),
	}
	reg.MustRegister(p.failures, p.published, p.delivered, p.skipped)
	return p
}

// Report increments the failure counter for the stage.
func (p *PrometheusReporter) Report(_ context.Context, _ error, info activity.FailureInfo) {
	p.failures.WithLabelValues(string(info.Stage)).Inc()
}

func (p *PrometheusReporter) Published() { p.published.Inc() }
func (p *PrometheusReporter) Delivered() { p.delivered.Inc() }
func (p *PrometheusReporter) Skipped()   { p.skipped.Inc() }

// Registry exposes the underlying registry.
func (p *PrometheusReporter) Registry() *prometheus.Registry { return p.reg }

// Handler serves the collected metrics.
func (p *PrometheusReporter) Handler() http.Handler {
	return promhttp.HandlerFor(p.reg, promhttp.HandlerOpts{})
}
