package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	groupsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "giftpool_groups_created_total",
		Help: "Number of gift groups created.",
	})

	orderCreationFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "giftpool_order_creation_failures_total",
		Help: "Number of participants whose gateway order creation failed and degraded to a placeholder link.",
	})

	confirmations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "giftpool_confirmations_total",
		Help: "Payment confirmation attempts by source and outcome.",
	}, []string{"source", "outcome"})

	remindersSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "giftpool_reminders_sent_total",
		Help: "Number of reminder messages sent by the daily sweep.",
	})
)
