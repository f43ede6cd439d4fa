package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Counters and gauges for the enrollment/notification core. Exposed on
// /metrics via promhttp.
var (
	NotificationsDispatched = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "campus_notifications_dispatched_total",
		Help: "Durable notifications written, by kind.",
	}, []string{"kind"})

	NotificationPublishErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "campus_notification_publish_errors_total",
		Help: "Best-effort realtime publishes that failed (rows were still written).",
	})

	EnrollmentDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "campus_enrollment_decisions_total",
		Help: "Enrollment request decisions applied, by outcome.",
	}, []string{"status"})

	WSConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "campus_ws_connections",
		Help: "Currently connected realtime clients.",
	})

	EmailsSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "campus_emails_sent_total",
		Help: "Notice reminder emails handed to the mail backend, by result.",
	}, []string{"result"})
)
