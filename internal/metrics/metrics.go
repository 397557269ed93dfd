// Package metrics expone métricas Prometheus del servidor HTTP y del ledger de stock.
//
//   - http_request_total{method,path,status}
//   - http_request_duration_seconds{method,path}
//   - http_request_in_flight
//   - rate_limiter_buckets_total
//   - ledger_visits_total{op}
//   - ledger_stock_rejections_total{reason}
//   - ledger_cycle_stock_units{cycle_id}
//   - ledger_audit_repairs_total
package metrics

import (
	"medistock/internal/domain/ledger"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics agrupa los collectors. Se registra contra un Registerer explícito para
// poder usar registros aislados en tests.
type Metrics struct {
	HTTPRequestTotals       *prometheus.CounterVec
	HTTPRequestDuration     *prometheus.HistogramVec
	HTTPRequestInFlight     prometheus.Gauge
	RateLimiterBucketsTotal prometheus.Gauge

	VisitsTotal          *prometheus.CounterVec
	StockRejectionsTotal *prometheus.CounterVec
	CycleStockUnits      *prometheus.GaugeVec
	AuditRepairsTotal    prometheus.Counter
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequestTotals: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_request_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
			[]string{"method", "path"},
		),
		HTTPRequestInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "http_request_in_flight",
			Help: "Current in-flight requests",
		}),
		RateLimiterBucketsTotal: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "rate_limiter_buckets_total",
			Help: "Rate limiter buckets still tracked after the last prune",
		}),
		VisitsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_visits_total",
				Help: "Committed visit operations",
			},
			[]string{"op"},
		),
		StockRejectionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_stock_rejections_total",
				Help: "Stock operations rejected by the ledger",
			},
			[]string{"reason"},
		),
		CycleStockUnits: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "ledger_cycle_stock_units",
				Help: "Units currently in stock per cycle",
			},
			[]string{"cycle_id"},
		),
		AuditRepairsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ledger_audit_repairs_total",
			Help: "Cycles repaired by the stock audit",
		}),
	}

	reg.MustRegister(
		m.HTTPRequestTotals,
		m.HTTPRequestDuration,
		m.HTTPRequestInFlight,
		m.RateLimiterBucketsTotal,
		m.VisitsTotal,
		m.StockRejectionsTotal,
		m.CycleStockUnits,
		m.AuditRepairsTotal,
	)
	return m
}

var _ ledger.Observer = (*Metrics)(nil)

func (m *Metrics) VisitCommitted(op string) { m.VisitsTotal.WithLabelValues(op).Inc() }

func (m *Metrics) StockRejected(reason string) { m.StockRejectionsTotal.WithLabelValues(reason).Inc() }

func (m *Metrics) CycleStockChanged(c ledger.Cycle) {
	m.CycleStockUnits.WithLabelValues(c.ID).Set(float64(c.TotalUnits()))
}

func (m *Metrics) CycleDeleted(cycleID string) { m.CycleStockUnits.DeleteLabelValues(cycleID) }

// AuditFinished suma los ciclos reparados por una pasada de auditoría.
func (m *Metrics) AuditFinished(r ledger.AuditReport) {
	m.AuditRepairsTotal.Add(float64(r.RepairedCycles()))
}
