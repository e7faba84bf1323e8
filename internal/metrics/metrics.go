// Package metrics expone métricas Prometheus del servidor y del negocio.
package metrics

import (
	"strconv"
	"time"

	"github.com/Nicoczyruk/standburg-project-sub000/internal/apperr"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var Registry = prometheus.NewRegistry()

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path"},
	)

	OrdersCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pos_orders_created_total",
			Help: "Pedidos creados por tipo",
		},
		[]string{"tipo"},
	)

	PaymentsAmount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pos_payments_amount_total",
			Help: "Monto cobrado por método de pago",
		},
		[]string{"metodo"},
	)

	CashVariance = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pos_cash_variance",
			Help:    "Diferencia entre lo contado y lo esperado al cerrar",
			Buckets: []float64{-1000, -100, -10, -1, 0, 1, 10, 100, 1000},
		},
		[]string{"periodo"},
	)
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		HTTPRequestsTotal,
		HTTPRequestDuration,
		OrdersCreated,
		PaymentsAmount,
		CashVariance,
	)
}

func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		duration := time.Since(start)

		status := c.Response().StatusCode()
		if err != nil {
			status = apperr.StatusOf(err)
		}

		path := c.Route().Path
		if path == "" {
			path = "undefined"
		}

		HTTPRequestsTotal.WithLabelValues(c.Method(), path, strconv.Itoa(status)).Inc()
		HTTPRequestDuration.WithLabelValues(path).Observe(duration.Seconds())
		return err
	}
}

// Handler sirve /metrics.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(Registry, promhttp.HandlerOpts{}))
}
