package metrics

import "github.com/prometheus/client_golang/prometheus"

// APIMetrics exposes counters/histograms for the lead and webhook flows.
// All methods are nil-safe so handlers can run without metrics in tests.
type APIMetrics struct {
	leadsTotal     *prometheus.CounterVec
	webhookTotal   *prometheus.CounterVec
	emailsTotal    *prometheus.CounterVec
	webhookLatency *prometheus.HistogramVec
}

func NewAPIMetrics(reg prometheus.Registerer) *APIMetrics {
	m := &APIMetrics{
		leadsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "prodone",
			Subsystem: "leads",
			Name:      "submissions_total",
			Help:      "Total lead form submissions",
		}, []string{"status"}),
		webhookTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "prodone",
			Subsystem: "booking",
			Name:      "webhook_events_total",
			Help:      "Total Calendly webhook events received",
		}, []string{"event_type", "status"}),
		emailsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "prodone",
			Subsystem: "mail",
			Name:      "outbound_total",
			Help:      "Total outbound email dispatches",
		}, []string{"kind", "status"}),
		webhookLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "prodone",
			Subsystem: "booking",
			Name:      "webhook_latency_seconds",
			Help:      "Latency of Calendly webhook processing",
			Buckets:   prometheus.DefBuckets,
		}, []string{"event_type"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.leadsTotal, m.webhookTotal, m.emailsTotal, m.webhookLatency)
	return m
}

func (m *APIMetrics) ObserveLead(status string) {
	if m == nil {
		return
	}
	m.leadsTotal.WithLabelValues(status).Inc()
}

func (m *APIMetrics) ObserveWebhook(eventType, status string) {
	if m == nil {
		return
	}
	m.webhookTotal.WithLabelValues(eventType, status).Inc()
}

func (m *APIMetrics) ObserveEmail(kind, status string) {
	if m == nil {
		return
	}
	m.emailsTotal.WithLabelValues(kind, status).Inc()
}

func (m *APIMetrics) ObserveWebhookLatency(eventType string, seconds float64) {
	if m == nil {
		return
	}
	m.webhookLatency.WithLabelValues(eventType).Observe(seconds)
}
