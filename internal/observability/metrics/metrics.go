package metrics

import "github.com/prometheus/client_golang/prometheus"

// BookingMetrics exposes counters/histograms for the reservation flow.
// A nil receiver is a no-op so wiring metrics stays optional.
type BookingMetrics struct {
	decisionsTotal  *prometheus.CounterVec
	calendarLatency *prometheus.HistogramVec
	cachedEvents    prometheus.Gauge
}

func NewBookingMetrics(reg prometheus.Registerer) *BookingMetrics {
	m := &BookingMetrics{
		decisionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "garage",
			Subsystem: "booking",
			Name:      "decisions_total",
			Help:      "Booking decisions by outcome and rejection reason",
		}, []string{"outcome", "reason"}),
		calendarLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "garage",
			Subsystem: "booking",
			Name:      "calendar_fetch_seconds",
			Help:      "Latency of Google Calendar reads and writes",
			Buckets:   prometheus.DefBuckets,
		}, []string{"op", "status"}),
		cachedEvents: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "garage",
			Subsystem: "booking",
			Name:      "cached_events",
			Help:      "Events currently held in the calendar snapshot",
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.decisionsTotal, m.calendarLatency, m.cachedEvents)
	return m
}

func (m *BookingMetrics) ObserveDecision(outcome, reason string) {
	if m == nil {
		return
	}
	m.decisionsTotal.WithLabelValues(outcome, reason).Inc()
}

func (m *BookingMetrics) ObserveCalendarOp(op, status string, seconds float64) {
	if m == nil {
		return
	}
	m.calendarLatency.WithLabelValues(op, status).Observe(seconds)
}

func (m *BookingMetrics) SetCachedEvents(n int) {
	if m == nil {
		return
	}
	m.cachedEvents.Set(float64(n))
}
