package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Signups        *prometheus.CounterVec
	APIErrors      prometheus.Counter
	RequestSeconds *prometheus.HistogramVec
	InFlight       prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		Signups: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "devpin_signups_total",
			Help: "Total number of signup attempts, by result.",
		}, []string{"result"}),
		APIErrors: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "devpin_remote_api_errors_total",
			Help: "Total number of errors received from remote APIs.",
		}),
		RequestSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "devpin_remote_request_duration_seconds",
			Help:    "Duration of requests to remote APIs, by call.",
			Buckets: prometheus.DefBuckets,
		}, []string{"call"}),
		InFlight: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "devpin_signup_in_flight",
			Help: "Whether a signup pipeline run is currently in flight.",
		}),
	}
}
