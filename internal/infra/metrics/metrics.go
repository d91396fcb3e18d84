// Package metrics exports bot metrics in Prometheus format.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder owns a private registry. A nil *Recorder is valid and records nothing.
type Recorder struct {
	registry *prometheus.Registry

	forecastRequests *prometheus.CounterVec
	deliveries       *prometheus.CounterVec
	ticks            prometheus.Counter
	dueUsers         prometheus.Gauge
	events           *prometheus.CounterVec
}

func New() *Recorder {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	r := &Recorder{
		registry: registry,
		forecastRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "weatherbot_forecast_requests_total",
			Help: "Forecast reports requested, by kind and outcome.",
		}, []string{"kind", "outcome"}),
		deliveries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "weatherbot_scheduled_deliveries_total",
			Help: "Scheduled notification deliveries, by outcome.",
		}, []string{"outcome"}),
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "weatherbot_scheduler_ticks_total",
			Help: "Notification scheduler ticks.",
		}),
		dueUsers: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "weatherbot_due_users",
			Help: "Users due in the most recent tick.",
		}),
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "weatherbot_inbound_events_total",
			Help: "Inbound events handled by the router, by type.",
		}, []string{"type"}),
	}
	registry.MustRegister(r.forecastRequests, r.deliveries, r.ticks, r.dueUsers, r.events)
	return r
}

func (r *Recorder) ForecastRequest(kind, outcome string) {
	if r == nil {
		return
	}
	r.forecastRequests.WithLabelValues(kind, outcome).Inc()
}

func (r *Recorder) Delivery(outcome string) {
	if r == nil {
		return
	}
	r.deliveries.WithLabelValues(outcome).Inc()
}

func (r *Recorder) Tick(due int) {
	if r == nil {
		return
	}
	r.ticks.Inc()
	r.dueUsers.Set(float64(due))
}

func (r *Recorder) Event(eventType string) {
	if r == nil {
		return
	}
	r.events.WithLabelValues(eventType).Inc()
}

// Handler serves the registry.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry (used by tests).
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}
