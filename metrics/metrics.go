package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	OrdersSettled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "food_marketplace_orders_settled_total",
		Help: "The total number of orders created by settlement",
	})

	SettlementRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "food_marketplace_settlement_rejected_total",
		Help: "Settlement attempts rejected, by error code",
	}, []string{"code"})

	DeliveryUnassigned = promauto.NewCounter(prometheus.CounterOpts{
		Name: "food_marketplace_delivery_unassigned_total",
		Help: "Orders settled without an available delivery partner",
	})

	PaymentsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "food_marketplace_payments_created_total",
		Help: "The total number of payment transactions opened",
	})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "food_marketplace_http_request_duration_seconds",
		Help:    "Time spent serving HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)

// Middleware observes request latency per route template.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		requestDuration.
			WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}

func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
