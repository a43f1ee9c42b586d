package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "storefront"

// Collectors はBFFのメトリクス。nilでも呼べる。
type Collectors struct {
	Requests  *prometheus.CounterVec
	LatencyMS *prometheus.HistogramVec
	Checkouts *prometheus.CounterVec
	CartOps   *prometheus.CounterVec
	Sessions  prometheus.Gauge
}

func NewCollectors(reg prometheus.Registerer) *Collectors {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"handler", "status"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_ms",
		Help:      "HTTP request latency in milliseconds.",
		Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
	}, []string{"handler"})
	checkouts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "checkouts_total",
		Help:      "Checkout attempts by result.",
	}, []string{"result"})
	cartOps := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cart_operations_total",
		Help:      "Cart mutations by operation and result.",
	}, []string{"op", "result"})
	sessions := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "sessions_active",
		Help:      "Number of live browser sessions.",
	})

	reg.MustRegister(requests, latency, checkouts, cartOps, sessions)
	return &Collectors{
		Requests:  requests,
		LatencyMS: latency,
		Checkouts: checkouts,
		CartOps:   cartOps,
		Sessions:  sessions,
	}
}

func (c *Collectors) ObserveCheckout(result string) {
	if c == nil {
		return
	}
	c.Checkouts.WithLabelValues(result).Inc()
}

func (c *Collectors) ObserveCartOp(op string, result string) {
	if c == nil {
		return
	}
	c.CartOps.WithLabelValues(op, result).Inc()
}

func (c *Collectors) SetSessions(n int) {
	if c == nil {
		return
	}
	c.Sessions.Set(float64(n))
}

func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
