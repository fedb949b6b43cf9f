// Package metrics expone las métricas Prometheus de la API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics agrupa los colectores sobre un registro propio. Un *Metrics nil no registra nada.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests  *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
	authAttempts  *prometheus.CounterVec
	tenantDenials *prometheus.CounterVec
	shiftsOpened  prometheus.Counter
	shiftsClosed  *prometheus.CounterVec
}

// New registra los colectores con el prefijo indicado (METRICS_PREFIX).
func New(prefix string) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		httpRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total de peticiones HTTP",
		}, []string{"method", "path", "status"}),
		httpDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duración de las peticiones HTTP en segundos",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
		authAttempts: f.NewCounterVec(prometheus.CounterOpts{
			Name: prefix + "_auth_attempts_total",
			Help: "Intentos de login por resultado",
		}, []string{"result"}),
		tenantDenials: f.NewCounterVec(prometheus.CounterOpts{
			Name: prefix + "_tenant_resolution_failures_total",
			Help: "Peticiones rechazadas al resolver el negocio, por motivo",
		}, []string{"reason"}),
		shiftsOpened: f.NewCounter(prometheus.CounterOpts{
			Name: prefix + "_shifts_opened_total",
			Help: "Turnos abiertos",
		}),
		shiftsClosed: f.NewCounterVec(prometheus.CounterOpts{
			Name: prefix + "_shifts_closed_total",
			Help: "Turnos cerrados por resultado del arqueo",
		}, []string{"status"}),
	}
}

// Handler endpoint /metrics del registro propio.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry para tests.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// ObserveHTTP registra una petición. path debe ser la ruta declarada, no la URL concreta.
func (m *Metrics) ObserveHTTP(method, path string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	code := strconv.Itoa(status)
	m.httpRequests.WithLabelValues(method, path, code).Inc()
	m.httpDuration.WithLabelValues(method, path, code).Observe(elapsed.Seconds())
}

// AuthAttempt resultado: success, invalid, inactive, error.
func (m *Metrics) AuthAttempt(result string) {
	if m == nil {
		return
	}
	m.authAttempts.WithLabelValues(result).Inc()
}

// TenantResolutionFailed motivo: missing, not_found, inactive.
func (m *Metrics) TenantResolutionFailed(reason string) {
	if m == nil {
		return
	}
	m.tenantDenials.WithLabelValues(reason).Inc()
}

// ShiftOpened cuenta una apertura.
func (m *Metrics) ShiftOpened() {
	if m == nil {
		return
	}
	m.shiftsOpened.Inc()
}

// ShiftClosed cuenta un cierre con su clasificación (exact, surplus, shortage).
func (m *Metrics) ShiftClosed(status string) {
	if m == nil {
		return
	}
	m.shiftsClosed.WithLabelValues(status).Inc()
}
