package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pdf417_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pdf417_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// Codec metrics
	decodeRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pdf417_decode_requests_total",
			Help: "Total number of decode requests",
		},
		[]string{"input", "status"}, // input: payload, matrix
	)

	generateRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pdf417_generate_requests_total",
			Help: "Total number of generate requests",
		},
		[]string{"status"},
	)

	payloadSizeBytes = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pdf417_payload_size_bytes",
			Help:    "Size of decoded or generated payloads in bytes",
			Buckets: []float64{64, 128, 256, 512, 1024, 2048, 4096},
		},
	)

	correctedCodewords = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pdf417_corrected_codewords",
			Help:    "Number of codewords repaired per decoded matrix",
			Buckets: []float64{0, 1, 2, 4, 8, 16, 32, 64, 128, 256},
		},
	)
)
