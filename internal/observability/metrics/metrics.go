package metrics

import "github.com/prometheus/client_golang/prometheus"

// SchedulerMetrics exposes counters/gauges for the booking pipeline.
type SchedulerMetrics struct {
	bookingsTotal   *prometheus.CounterVec
	triageTotal     *prometheus.CounterVec
	promotionsTotal prometheus.Counter
	waitlistDepth   prometheus.Gauge
}

func NewSchedulerMetrics(reg prometheus.Registerer) *SchedulerMetrics {
	m := &SchedulerMetrics{
		bookingsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "healthsync",
			Subsystem: "scheduler",
			Name:      "bookings_total",
			Help:      "Booking requests by outcome",
		}, []string{"outcome"}),
		triageTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "healthsync",
			Subsystem: "triage",
			Name:      "assessments_total",
			Help:      "Triage assessments by routing action",
		}, []string{"action"}),
		promotionsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "healthsync",
			Subsystem: "scheduler",
			Name:      "waitlist_promotions_total",
			Help:      "Waitlist entries promoted into freed slots",
		}),
		waitlistDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "healthsync",
			Subsystem: "scheduler",
			Name:      "waitlist_depth",
			Help:      "Entries currently waiting",
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.bookingsTotal, m.triageTotal, m.promotionsTotal, m.waitlistDepth)
	return m
}

func (m *SchedulerMetrics) ObserveBooking(outcome string) {
	if m == nil {
		return
	}
	m.bookingsTotal.WithLabelValues(outcome).Inc()
}

func (m *SchedulerMetrics) ObserveTriage(action string) {
	if m == nil {
		return
	}
	m.triageTotal.WithLabelValues(action).Inc()
}

func (m *SchedulerMetrics) ObservePromotion() {
	if m == nil {
		return
	}
	m.promotionsTotal.Inc()
}

func (m *SchedulerMetrics) SetWaitlistDepth(depth int) {
	if m == nil {
		return
	}
	m.waitlistDepth.Set(float64(depth))
}
