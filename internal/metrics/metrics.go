// Package metrics exposes Prometheus instrumentation for the concierge.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for upstream exchanges.
const (
	OutcomeOK              = "ok"
	OutcomeUpstreamError   = "upstream_error"
	OutcomeUnexpectedReply = "unexpected_reply"
	OutcomeUnreachable     = "unreachable"
)

var (
	ConversationsSeeded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "concierge_conversations_seeded_total",
		Help: "Conversations created fresh (first load or invalid stored state).",
	})

	MessagesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "concierge_messages_total",
		Help: "Messages appended to conversations, by role.",
	}, []string{"role"})

	ExchangesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "concierge_upstream_exchanges_total",
		Help: "Upstream exchanges, by outcome.",
	}, []string{"outcome"})

	ExchangeDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "concierge_upstream_exchange_duration_seconds",
		Help:    "Duration of upstream exchanges.",
		Buckets: prometheus.DefBuckets,
	})
)
