package metrics

import "github.com/prometheus/client_golang/prometheus"

// IntakeMetrics exposes counters/histograms for the lead-intake dialogue.
type IntakeMetrics struct {
	turnsTotal          *prometheus.CounterVec
	submissionsTotal    *prometheus.CounterVec
	collaboratorLatency *prometheus.HistogramVec
}

func NewIntakeMetrics(reg prometheus.Registerer) *IntakeMetrics {
	m := &IntakeMetrics{
		turnsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "handyfix",
			Subsystem: "intake",
			Name:      "turns_total",
			Help:      "Total dialogue turns processed",
		}, []string{"step", "outcome"}),
		submissionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "handyfix",
			Subsystem: "intake",
			Name:      "submissions_total",
			Help:      "Total confirm sequences by final status",
		}, []string{"status"}),
		collaboratorLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "handyfix",
			Subsystem: "intake",
			Name:      "collaborator_latency_seconds",
			Help:      "Latency of upload/persist/AI collaborator calls",
			Buckets:   prometheus.DefBuckets,
		}, []string{"collaborator"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.turnsTotal, m.submissionsTotal, m.collaboratorLatency)
	return m
}

func (m *IntakeMetrics) ObserveTurn(step, outcome string) {
	if m == nil {
		return
	}
	m.turnsTotal.WithLabelValues(step, outcome).Inc()
}

func (m *IntakeMetrics) ObserveSubmission(status string) {
	if m == nil {
		return
	}
	m.submissionsTotal.WithLabelValues(status).Inc()
}

func (m *IntakeMetrics) ObserveCollaboratorLatency(collaborator string, seconds float64) {
	if m == nil {
		return
	}
	m.collaboratorLatency.WithLabelValues(collaborator).Observe(seconds)
}
