package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ecomove_http_requests_total",
			Help: "Total de requests HTTP por ruta, método y código de estado.",
		},
		[]string{"path", "method", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ecomove_http_request_duration_seconds",
			Help:    "Duración de los requests HTTP en segundos.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path", "method"},
	)

	PrestamosIniciados = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ecomove_prestamos_iniciados_total",
		Help: "Préstamos creados con éxito.",
	})

	PrestamosFinalizados = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ecomove_prestamos_finalizados_total",
		Help: "Préstamos finalizados con éxito.",
	})

	PagosConfirmados = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ecomove_pagos_resueltos_total",
			Help: "Sesiones de pago resueltas por estado final.",
		},
		[]string{"estado"},
	)
)

// Handler expone el endpoint de métricas de Prometheus.
func Handler() http.Handler {
	return promhttp.Handler()
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Middleware instrumenta cada request del router. Usa la plantilla de la ruta
// de mux como label para no explotar la cardinalidad con los IDs.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		path := r.URL.Path
		if route := mux.CurrentRoute(r); route != nil {
			if tpl, err := route.GetPathTemplate(); err == nil {
				path = tpl
			}
		}

		httpRequestsTotal.WithLabelValues(path, r.Method, strconv.Itoa(rec.status)).Inc()
		httpRequestDuration.WithLabelValues(path, r.Method).Observe(time.Since(start).Seconds())
	})
}
