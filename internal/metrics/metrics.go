// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "gymbro"

const (
	CheckInCreated  = "created"
	CheckInUpdated  = "updated"
	CheckInRejected = "rejected"

	CoachReplied       = "replied"
	CoachNotConfigured = "not_configured"
	CoachFailed        = "failed"

	AuthMethodPassword      = "password"
	AuthMethodRegister      = "register"
	AuthMethodMagicLink     = "magic_link"
	AuthMethodPasswordReset = "password_reset"
	AuthMethodGoogle        = "google"
)

type Metrics struct {
	registry *prometheus.Registry

	checkIns           *prometheus.CounterVec
	xpAwarded          prometheus.Counter
	chapterActivations prometheus.Counter
	coachRequests      *prometheus.CounterVec
	authEvents         *prometheus.CounterVec
}

func New() *Metrics {
	registry := prometheus.NewRegistry()
	metrics := &Metrics{
		registry: registry,
		checkIns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "check_ins_total",
			Help:      "Daily check-in submissions by outcome.",
		}, []string{"outcome"}),
		xpAwarded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "xp_awarded_total",
			Help:      "Experience points granted for check-ins.",
		}),
		chapterActivations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chapter_activations_total",
			Help:      "Chapters switched to the active status.",
		}),
		coachRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "coach_requests_total",
			Help:      "Coach chat requests by outcome.",
		}, []string{"outcome"}),
		authEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "auth_events_total",
			Help:      "Authentication attempts by method and result.",
		}, []string{"method", "result"}),
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		metrics.checkIns,
		metrics.xpAwarded,
		metrics.chapterActivations,
		metrics.coachRequests,
		metrics.authEvents,
	)
	return metrics
}

func (metrics *Metrics) Registry() *prometheus.Registry {
	return metrics.registry
}

func (metrics *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(metrics.registry, promhttp.HandlerOpts{})
}

func (metrics *Metrics) CheckIn(outcome string, xp int) {
	metrics.checkIns.WithLabelValues(outcome).Inc()
	if xp > 0 {
		metrics.xpAwarded.Add(float64(xp))
	}
}

func (metrics *Metrics) ChapterActivated() {
	metrics.chapterActivations.Inc()
}

func (metrics *Metrics) CoachRequest(outcome string) {
	metrics.coachRequests.WithLabelValues(outcome).Inc()
}

func (metrics *Metrics) AuthEvent(method string, success bool) {
	result := "failure"
	if success {
		result = "success"
	}
	metrics.authEvents.WithLabelValues(method, result).Inc()
}
