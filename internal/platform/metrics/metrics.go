// Package metrics はPrometheus形式のHTTPメトリクスを提供します。
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics はHTTPリクエストのカウンターとレイテンシを保持します。
type Metrics struct {
	gatherer    prometheus.Gatherer
	reqTotal    *prometheus.CounterVec
	reqLatency  *prometheus.HistogramVec
	req5xxTotal prometheus.Counter
}

// NewMetrics はメトリクスを reg に登録します。
func NewMetrics(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		gatherer: reg,
		reqTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests.",
			},
			[]string{"route", "method", "status"},
		),
		req5xxTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "http_requests_5xx_total",
				Help: "Total number of HTTP 5xx responses.",
			},
		),
		reqLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route", "method"},
		),
	}

	reg.MustRegister(m.reqTotal, m.reqLatency, m.req5xxTotal)
	return m
}

// Middleware はリクエスト数・ステータス・レイテンシを記録します。
// ラベルにはパスではなくルートテンプレートを使い、未定義ルートは "unmatched" にまとめます。
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()

		m.reqTotal.WithLabelValues(route, c.Request.Method, strconv.Itoa(status)).Inc()
		m.reqLatency.WithLabelValues(route, c.Request.Method).Observe(time.Since(start).Seconds())
		if status >= 500 {
			m.req5xxTotal.Inc()
		}
	}
}

// Handler は /metrics 用のハンドラーを返します。
func (m *Metrics) Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{}))
}
