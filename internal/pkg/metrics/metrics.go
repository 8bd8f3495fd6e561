// Package metrics exposes the service's Prometheus collectors.
package metrics

import (
	"errors"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records dispatch engine and HTTP activity.
type Metrics struct {
	transitions *prometheus.CounterVec
	clamps      *prometheus.CounterVec
	assignments *prometheus.CounterVec
	evidence    *prometheus.CounterVec
	lowStock    prometheus.Gauge
	requests    *prometheus.HistogramVec
}

// New registers the collectors on reg, or on the default registerer when
// reg is nil. Collectors already registered are reused.
func New(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "haulage_dispatch_transitions_total",
			Help: "Dispatch status changes by entry path and target status",
		}, []string{"path", "status"}),
		clamps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "haulage_stock_clamped_total",
			Help: "Stock deductions that hit zero and discarded the remainder",
		}, []string{"material"}),
		assignments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "haulage_auto_assignments_total",
			Help: "Auto-assignment attempts on order creation",
		}, []string{"result"}),
		evidence: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "haulage_evidence_uploads_total",
			Help: "Evidence images handed to the evidence store",
		}, []string{"stage", "result"}),
		lowStock: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "haulage_low_stock_materials",
			Help: "Materials below the low stock threshold at the last check",
		}),
		requests: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "haulage_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status code",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "code"}),
	}

	var err error
	if m.transitions, err = register(reg, m.transitions); err != nil {
		return nil, err
	}
	if m.clamps, err = register(reg, m.clamps); err != nil {
		return nil, err
	}
	if m.assignments, err = register(reg, m.assignments); err != nil {
		return nil, err
	}
	if m.evidence, err = register(reg, m.evidence); err != nil {
		return nil, err
	}
	if m.lowStock, err = register(reg, m.lowStock); err != nil {
		return nil, err
	}
	if m.requests, err = register(reg, m.requests); err != nil {
		return nil, err
	}
	return m, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// TransitionApplied counts a dispatch entering status through path
// ("staged", "forced" or "cancel").
func (m *Metrics) TransitionApplied(path, status string) {
	m.transitions.WithLabelValues(path, status).Inc()
}

func (m *Metrics) StockClamped(material string) {
	m.clamps.WithLabelValues(material).Inc()
}

func (m *Metrics) AutoAssignment(assigned bool) {
	result := "unassigned"
	if assigned {
		result = "assigned"
	}
	m.assignments.WithLabelValues(result).Inc()
}

func (m *Metrics) EvidenceStored(stage string, err error) {
	result := "ok"
	if err != nil {
		result = "failed"
	}
	m.evidence.WithLabelValues(stage, result).Inc()
}

func (m *Metrics) LowStockMaterials(n int) {
	m.lowStock.Set(float64(n))
}

func (m *Metrics) ObserveRequest(method, route string, code int, elapsed time.Duration) {
	m.requests.WithLabelValues(method, route, strconv.Itoa(code)).Observe(elapsed.Seconds())
}
