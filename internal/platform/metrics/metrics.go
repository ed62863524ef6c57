package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector records client-side operational metrics.
type Collector struct {
	registry *prometheus.Registry

	refreshes     *prometheus.CounterVec
	registrations *prometheus.CounterVec
	notifications *prometheus.CounterVec
}

// NewCollector creates a Collector backed by its own registry.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		refreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "signup_client_catalog_refreshes_total",
			Help: "Catalog refresh attempts by outcome.",
		}, []string{"outcome"}),
		registrations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "signup_client_registrations_total",
			Help: "Registration transitions by action and outcome.",
		}, []string{"action", "outcome"}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "signup_client_notifications_total",
			Help: "Notifications shown by kind.",
		}, []string{"kind"}),
	}

	c.registry.MustRegister(c.refreshes, c.registrations, c.notifications)
	return c
}

// Handler serves the collector's registry in Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

func (c *Collector) RecordRefresh(ok bool) {
	c.refreshes.WithLabelValues(outcome(ok)).Inc()
}

func (c *Collector) RecordRegistration(action string, ok bool) {
	c.registrations.WithLabelValues(action, outcome(ok)).Inc()
}

func (c *Collector) RecordNotification(kind string) {
	c.notifications.WithLabelValues(kind).Inc()
}

func outcome(ok bool) string {
	if ok {
		return "success"
	}
	return "failure"
}
