package metrics

import (
	"strconv"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics - метрики сервиса в отдельном реестре.
type Metrics struct {
	Registry *prometheus.Registry

	requests      *prometheus.CounterVec
	duration      *prometheus.HistogramVec
	subscribers   prometheus.Gauge
	notifications *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "liquidtrack",
			Name:      "http_requests_total",
			Help:      "HTTP requests by operation and status.",
		}, []string{"method", "path", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "liquidtrack",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path"}),
		subscribers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "liquidtrack",
			Name:      "realtime_subscribers",
			Help:      "Active realtime websocket subscribers.",
		}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "liquidtrack",
			Name:      "realtime_notifications_total",
			Help:      "Change notifications received from the database.",
		}, []string{"event"}),
	}

	m.Registry.MustRegister(
		m.requests, m.duration, m.subscribers, m.notifications,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) Middleware() func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		start := time.Now()
		next(ctx)

		// шаблон пути, а не фактический URL, чтобы не плодить метки
		path := ctx.URL().Path
		if op := ctx.Operation(); op != nil {
			path = op.Path
		}
		m.requests.WithLabelValues(ctx.Method(), path, strconv.Itoa(ctx.Status())).Inc()
		m.duration.WithLabelValues(ctx.Method(), path).Observe(time.Since(start).Seconds())
	}
}

func (m *Metrics) SetSubscribers(n int) {
	m.subscribers.Set(float64(n))
}

func (m *Metrics) ObserveNotification(event string) {
	if event == "" {
		event = "unknown"
	}
	m.notifications.WithLabelValues(event).Inc()
}
