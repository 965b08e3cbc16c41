package utils

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "blog_http_requests_total",
		Help: "Total number of HTTP requests by route and status",
	}, []string{"method", "route", "status"})

	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "blog_http_request_duration_seconds",
		Help:    "HTTP request latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	// PostWrites counts committed post rows by operation (create, update, delete)
	PostWrites = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "blog_post_writes_total",
		Help: "Total number of committed post writes",
	}, []string{"operation"})

	PhotoStoreFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "blog_photo_store_failures_total",
		Help: "Photos that could not be stored after their post was committed",
	})
)

func MetricsMiddleware(c *gin.Context) {
	start := time.Now()
	c.Next()
	route := c.FullPath()
	if route == "" {
		route = "unmatched"
	}
	RequestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
	RequestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
}

func MetricsHandler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
