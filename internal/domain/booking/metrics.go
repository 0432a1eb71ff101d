package booking

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Submission outcomes used as metric labels.
const (
	outcomeInvalid   = "invalid"
	outcomeIgnored   = "ignored"
	outcomeSucceeded = "succeeded"
	outcomeFailed    = "failed"
)

var (
	submissionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "staybook_booking_submissions_total",
		Help: "Booking submit attempts by outcome.",
	}, []string{"outcome"})

	submitDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "staybook_booking_submit_duration_seconds",
		Help:    "Time from a valid submit to the booking service's answer.",
		Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
	})

	formsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "staybook_booking_forms_active",
		Help: "Booking forms currently mounted on this instance.",
	})
)
