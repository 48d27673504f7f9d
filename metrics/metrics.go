// Package metrics exposes Prometheus counters for the API.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Responses counts responses by route name and status code.
	Responses = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blog_api",
		Name:      "http_responses_total",
		Help:      "HTTP responses by route and status code.",
	}, []string{"route", "code"})

	// TokensIssued counts successful logins.
	TokensIssued = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "blog_api",
		Name:      "tokens_issued_total",
		Help:      "Personal access tokens issued.",
	})

	// LoginFailures counts rejected logins by reason.
	LoginFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blog_api",
		Name:      "login_failures_total",
		Help:      "Rejected token requests by reason.",
	}, []string{"reason"})
)

// ObserveResponse records one response.
func ObserveResponse(route string, code int) {
	if route == "" {
		route = "unknown"
	}
	Responses.WithLabelValues(route, strconv.Itoa(code)).Inc()
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
