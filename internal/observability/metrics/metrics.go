package metrics

import "github.com/prometheus/client_golang/prometheus"

// EngineMetrics exposes counters/histograms for the message pipeline.
type EngineMetrics struct {
	messagesTotal    *prometheus.CounterVec
	emergenciesTotal *prometheus.CounterVec
	escalationsTotal prometheus.Counter
	handleLatency    *prometheus.HistogramVec
}

func NewEngineMetrics(reg prometheus.Registerer) *EngineMetrics {
	m := &EngineMetrics{
		messagesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "swasthya",
			Subsystem: "engine",
			Name:      "messages_total",
			Help:      "Total inbound messages handled",
		}, []string{"language", "intent"}),
		emergenciesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "swasthya",
			Subsystem: "engine",
			Name:      "emergencies_total",
			Help:      "Total messages classified as emergencies",
		}, []string{"language"}),
		escalationsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "swasthya",
			Subsystem: "engine",
			Name:      "escalations_total",
			Help:      "Total escalation records composed",
		}),
		handleLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "swasthya",
			Subsystem: "engine",
			Name:      "handle_latency_seconds",
			Help:      "Latency of message handling",
			Buckets:   prometheus.DefBuckets,
		}, []string{"intent"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.messagesTotal, m.emergenciesTotal, m.escalationsTotal, m.handleLatency)
	return m
}

func (m *EngineMetrics) ObserveMessage(language, intent string) {
	if m == nil {
		return
	}
	m.messagesTotal.WithLabelValues(language, intent).Inc()
}

func (m *EngineMetrics) ObserveEmergency(language string) {
	if m == nil {
		return
	}
	m.emergenciesTotal.WithLabelValues(language).Inc()
}

func (m *EngineMetrics) ObserveEscalation() {
	if m == nil {
		return
	}
	m.escalationsTotal.Inc()
}

func (m *EngineMetrics) ObserveHandleLatency(intent string, seconds float64) {
	if m == nil {
		return
	}
	m.handleLatency.WithLabelValues(intent).Observe(seconds)
}
