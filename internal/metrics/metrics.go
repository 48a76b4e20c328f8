// Package metrics exposes Prometheus counters for the authentication filters.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/robalobadob/ecommerce-api/internal/security"
)

const namespace = "ecommerce"

// Metrics implements security.Recorder on top of a private registry.
type Metrics struct {
	registry      *prometheus.Registry
	logins        *prometheus.CounterVec
	verifications *prometheus.CounterVec
}

var _ security.Recorder = (*Metrics)(nil)

// New registers the counters plus Go and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "login_attempts_total",
			Help:      "Login attempts by outcome.",
		}, []string{"outcome"}),
		verifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "token_verifications_total",
			Help:      "Bearer token checks by outcome.",
		}, []string{"outcome"}),
	}
	m.registry.MustRegister(
		m.logins,
		m.verifications,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// LoginAttempt counts one login outcome.
func (m *Metrics) LoginAttempt(outcome string) {
	m.logins.WithLabelValues(outcome).Inc()
}

// TokenVerification counts one token check outcome.
func (m *Metrics) TokenVerification(outcome string) {
	m.verifications.WithLabelValues(outcome).Inc()
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
