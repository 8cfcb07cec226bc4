// Package metrics exposes Prometheus counters for bot traffic and dialogue transitions.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Updates received from Telegram by kind
	UpdatesReceived = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vibetracker_updates_received_total",
			Help: "Total number of received updates by kind",
		},
		[]string{"kind"}, // start, log, stats, callback, text
	)

	// Applied transitions by source and target state
	Transitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vibetracker_dialogue_transitions_total",
			Help: "Total number of applied dialogue transitions",
		},
		[]string{"from", "to"},
	)

	// Events acknowledged without effect
	EventsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vibetracker_events_rejected_total",
			Help: "Total number of events ignored by the dialogue engine",
		},
		[]string{"reason"}, // validation, malformed, stale
	)

	MoodLogsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "vibetracker_mood_logs_created_total",
			Help: "Total number of mood logs created",
		},
	)

	Errors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vibetracker_errors_total",
			Help: "Total number of errors by type",
		},
		[]string{"type"}, // state_store, record_store, send, panic
	)
)
