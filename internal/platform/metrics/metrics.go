package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	UsersCreated     prometheus.Counter
	Logins           prometheus.Counter
	QRScans          *prometheus.CounterVec
	DuplicateScans   prometheus.Counter
	ImagesSaved      *prometheus.CounterVec
	FaceCrops        *prometheus.CounterVec
	RecordsSaved     prometheus.Counter
	RecordDuplicates prometheus.Counter
	EndpointLatency  *prometheus.HistogramVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		UsersCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "cccd_users_created_total",
			Help: "Total number of users created lazily at login",
		}),
		Logins: promauto.NewCounter(prometheus.CounterOpts{
			Name: "cccd_logins_total",
			Help: "Total number of successful logins",
		}),
		QRScans: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "cccd_qr_scans_total",
			Help: "Total number of QR scan attempts by result",
		}, []string{"result"}),
		DuplicateScans: promauto.NewCounter(prometheus.CounterOpts{
			Name: "cccd_duplicate_scans_total",
			Help: "Scans that matched an already persisted identity number",
		}),
		ImagesSaved: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "cccd_images_saved_total",
			Help: "Total number of card images saved by side",
		}, []string{"side"}),
		FaceCrops: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "cccd_face_crops_total",
			Help: "Face extraction outcomes",
		}, []string{"outcome"}),
		RecordsSaved: promauto.NewCounter(prometheus.CounterOpts{
			Name: "cccd_records_saved_total",
			Help: "Total number of identity records persisted",
		}),
		RecordDuplicates: promauto.NewCounter(prometheus.CounterOpts{
			Name: "cccd_record_duplicates_total",
			Help: "Save attempts rejected by the unique identity constraint",
		}),
		EndpointLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "cccd_endpoint_latency_seconds",
			Help:    "Latency of endpoints in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),
	}
}

// ObserveEndpointLatency records the latency for a given endpoint
// in seconds.
func (m *Metrics) ObserveEndpointLatency(endpoint string, durationSeconds float64) {
	m.EndpointLatency.WithLabelValues(endpoint).Observe(durationSeconds)
}
