package session

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics owned by the session layer: connection lifecycle and rejection
// reasons. Bounded cardinality only — "reason" takes one of a handful of
// fixed values, never anything request-derived.
var (
	wsConnectionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "tankarena_ws_connections_active",
		Help: "Currently active WebSocket connections",
	})

	wsMessagesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tankarena_ws_messages_total",
		Help: "Total WebSocket broadcast messages sent",
	})

	connectionRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tankarena_connection_rejected_total",
		Help: "Connections rejected by rate limiter or origin check",
	}, []string{"reason"}) // "rate_limit", "origin", "ws_total_limit", "ws_ip_limit", "event_rate_limit"
)

// UpdateWSConnections sets the active-connection gauge.
func UpdateWSConnections(count int) {
	wsConnectionsActive.Set(float64(count))
}

// IncrementWSMessages bumps the broadcast-message counter.
func IncrementWSMessages() {
	wsMessagesTotal.Inc()
}

// RecordConnectionRejected bumps the rejection counter for reason.
func RecordConnectionRejected(reason string) {
	connectionRejected.WithLabelValues(reason).Inc()
}
