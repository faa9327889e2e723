package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "items",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Requests served, by route template and status code",
		},
		[]string{"method", "route", "status"},
	)
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "items",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Time spent serving a request",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

// Scrapes and probes would drown out real traffic.
var unmeasured = map[string]bool{"/metrics": true, "/health": true}

// NewItemsGauge reports the store size on every scrape. The caller registers it.
func NewItemsGauge(count func() float64) prometheus.GaugeFunc {
	return prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Namespace: "items",
			Name:      "stored",
			Help:      "Items currently held in memory",
		},
		count,
	)
}

// Route labels a request by the template it matched, so /items/:id is one series.
func Route(c *gin.Context) string {
	if route := c.FullPath(); route != "" {
		return route
	}
	return "unmatched"
}

func Middleware(c *gin.Context) {
	if unmeasured[c.Request.URL.Path] {
		c.Next()
		return
	}
	start := time.Now()
	c.Next()
	route := Route(c)
	RequestTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
	RequestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
}
