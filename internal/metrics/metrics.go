package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
)

const namespace = "car_parking"

// Metrics holds the collectors exported on /metrics.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	carEntries     *prometheus.CounterVec
	carExits       *prometheus.CounterVec
	revenue        *prometheus.CounterVec
	entryRejected  *prometheus.CounterVec
	slotDrift      *prometheus.GaugeVec
	reconcileRuns  *prometheus.CounterVec
	counterOverrun *prometheus.CounterVec
}

// New creates the collectors on a fresh registry, together with the Go runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		carEntries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "car_entries_total",
			Help:      "Recorded car entries per parking.",
		}, []string{"parking_code"}),
		carExits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "car_exits_total",
			Help:      "Recorded car exits per parking.",
		}, []string{"parking_code"}),
		revenue: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "revenue_total",
			Help:      "Fees billed on exit per parking.",
		}, []string{"parking_code"}),
		entryRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "car_entries_rejected_total",
			Help:      "Entries refused by reason.",
		}, []string{"reason"}),
		slotDrift: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "slot_counter_drift",
			Help:      "Used slots according to the counter minus open sessions, per parking.",
		}, []string{"parking_code"}),
		reconcileRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "slot_reconcile_runs_total",
			Help:      "Slot reconciliation runs by outcome.",
		}, []string{"outcome"}),
		counterOverrun: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "slot_counter_overrun_total",
			Help:      "Exits that found the available counter already at total.",
		}, []string{"parking_code"}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests,
		m.httpDuration,
		m.carEntries,
		m.carExits,
		m.revenue,
		m.entryRejected,
		m.slotDrift,
		m.reconcileRuns,
		m.counterOverrun,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveHTTP records one finished request. route is the matched route template, not the raw path.
func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func (m *Metrics) CarEntered(parkingCode string) {
	m.carEntries.WithLabelValues(parkingCode).Inc()
}

func (m *Metrics) CarExited(parkingCode string, fee decimal.Decimal) {
	m.carExits.WithLabelValues(parkingCode).Inc()
	m.revenue.WithLabelValues(parkingCode).Add(fee.InexactFloat64())
}

func (m *Metrics) EntryRejected(reason string) {
	m.entryRejected.WithLabelValues(reason).Inc()
}

func (m *Metrics) SlotCounterOverrun(parkingCode string) {
	m.counterOverrun.WithLabelValues(parkingCode).Inc()
}

func (m *Metrics) SlotDrift(parkingCode string, drift int) {
	m.slotDrift.WithLabelValues(parkingCode).Set(float64(drift))
}

func (m *Metrics) ReconcileRun(outcome string) {
	m.reconcileRuns.WithLabelValues(outcome).Inc()
}
