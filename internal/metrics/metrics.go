package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "clinic"

// Metrics holds the auth and routing counters. Each instance owns its
// registry so several routers can coexist in one process.
type Metrics struct {
	registry *prometheus.Registry

	AuthAttempts   *prometheus.CounterVec
	AuthzDenials   *prometheus.CounterVec
	LoginRedirects *prometheus.CounterVec
	Registrations  *prometheus.CounterVec
	RequestLatency *prometheus.HistogramVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		AuthAttempts: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "auth_attempts_total",
				Help:      "Login attempts by result",
			},
			[]string{"result"},
		),
		AuthzDenials: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "authz_denials_total",
				Help:      "Requests rejected by the access policy",
			},
			[]string{"reason"},
		),
		LoginRedirects: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "login_redirects_total",
				Help:      "Post-login redirects by target",
			},
			[]string{"target"},
		),
		Registrations: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "registrations_total",
				Help:      "Registration attempts by result",
			},
			[]string{"result"},
		),
		RequestLatency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency",
				Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
			},
			[]string{"method", "route", "status"},
		),
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
