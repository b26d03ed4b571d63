// Package metrics provides Prometheus instrumentation for the room-chat
// server: counters for registrations, stored messages and evictions, plus a
// per-route request counter.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RegistrationsTotal counts successful participant registrations.
	RegistrationsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "roomchat_registrations_total",
		Help: "Total number of successful participant registrations",
	})

	// MessagesTotal counts stored messages, labeled by message type.
	MessagesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "roomchat_messages_total",
		Help: "Total number of messages stored",
	}, []string{"type"}) // type = "message", "private_message", "status"

	// EvictionsTotal counts participants removed by the inactivity sweeper.
	EvictionsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "roomchat_evictions_total",
		Help: "Total number of participants evicted for inactivity",
	})

	// HTTPRequestsTotal counts handled API requests by route and status.
	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "roomchat_http_requests_total",
		Help: "Total number of handled HTTP requests",
	}, []string{"route", "status"})
)

func init() {
	prometheus.MustRegister(
		RegistrationsTotal,
		MessagesTotal,
		EvictionsTotal,
		HTTPRequestsTotal,
	)
}

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
