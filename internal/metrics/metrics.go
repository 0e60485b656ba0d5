package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// CatalogRequests counts card lookups by fetcher and outcome
	// (ok, not_found, transport).
	CatalogRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wbscrap_catalog_requests_total",
			Help: "Total number of product card lookups",
		},
		[]string{"fetcher", "outcome"},
	)

	CatalogDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "wbscrap_catalog_request_duration_seconds",
			Help:    "Duration of product card lookups in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"fetcher"},
	)

	// ImageDownloads counts image fetches by size preset and outcome
	// (ok, status, transport, write).
	ImageDownloads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wbscrap_image_downloads_total",
			Help: "Total number of image downloads",
		},
		[]string{"size", "outcome"},
	)

	ImageBytes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wbscrap_image_bytes_total",
			Help: "Bytes of image data written to disk",
		},
		[]string{"size"},
	)
)

func init() {
	prometheus.MustRegister(CatalogRequests, CatalogDuration, ImageDownloads, ImageBytes)
}

// ObserveCatalog records one finished card lookup.
func ObserveCatalog(fetcher, outcome string, started time.Time) {
	CatalogRequests.WithLabelValues(fetcher, outcome).Inc()
	CatalogDuration.WithLabelValues(fetcher).Observe(time.Since(started).Seconds())
}

// ObserveImage records one finished image download.
func ObserveImage(size, outcome string, bytes int64) {
	ImageDownloads.WithLabelValues(size, outcome).Inc()
	if bytes > 0 {
		ImageBytes.WithLabelValues(size).Add(float64(bytes))
	}
}

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
