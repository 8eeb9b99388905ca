package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pos_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pos_http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path"},
	)

	OrdersFinalized = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pos_orders_finalized_total",
		Help: "Orders paid at a register",
	})

	OrderRevenue = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pos_order_revenue_total",
		Help: "Sum of paid order totals, tax included",
	})

	OrdersCompleted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pos_kitchen_orders_completed_total",
		Help: "Active orders marked ready by the kitchen",
	})

	ActiveOrders = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "pos_kitchen_active_orders",
		Help: "Active orders seen at the last kitchen poll",
	})

	StockUsageCost = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pos_stock_usage_cost_total",
		Help: "Cost of recorded stock usage",
	}, []string{"category"})
)

var registerOnce sync.Once

// InitMetrics registers every collector with the default registry.
// Safe to call more than once.
func InitMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			HTTPRequestsTotal, HTTPRequestDuration,
			OrdersFinalized, OrderRevenue, OrdersCompleted, ActiveOrders, StockUsageCost,
		)
	})
}

// PrometheusMiddleware records request counts and latencies.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)

		path := c.FullPath()
		if path == "" {
			path = "undefined"
		}

		HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		HTTPRequestDuration.WithLabelValues(path).Observe(duration.Seconds())
	}
}
