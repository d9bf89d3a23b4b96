package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal tracks total number of HTTP requests
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dividend_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"route", "code"},
	)

	// RequestDuration tracks request duration
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dividend_http_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)

	// ExtractionsTotal tracks extraction runs by kind
	ExtractionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dividend_extractions_total",
			Help: "Total number of extraction runs",
		},
		[]string{"kind"},
	)

	// ExtractionConfidence tracks the confidence distribution of extractions
	ExtractionConfidence = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "dividend_extraction_confidence",
			Help:    "Confidence score distribution of notification extractions",
			Buckets: prometheus.LinearBuckets(0, 0.1, 11),
		},
	)

	// ExtractionDuration tracks extraction duration by kind
	ExtractionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dividend_extraction_duration_seconds",
			Help:    "Extraction duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		},
		[]string{"kind"},
	)

	// StatementItems tracks how many line items each parsed statement yields
	StatementItems = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "dividend_statement_items",
			Help:    "Line items extracted per statement parse",
			Buckets: []float64{0, 1, 2, 5, 10, 20, 50},
		},
	)

	// EntriesSaved tracks persisted entries by input method and currency
	EntriesSaved = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dividend_entries_saved_total",
			Help: "Total number of persisted dividend entries",
		},
		[]string{"input_method", "currency"},
	)
)

// ObserveExtraction records a single extraction run.
func ObserveExtraction(kind string, confidence float64, elapsed time.Duration) {
	ExtractionsTotal.WithLabelValues(kind).Inc()
	ExtractionDuration.WithLabelValues(kind).Observe(elapsed.Seconds())
	ExtractionConfidence.Observe(confidence)
}

// ObserveStatementParse records one statement parse and its item count.
func ObserveStatementParse(items int, elapsed time.Duration) {
	ExtractionsTotal.WithLabelValues("statement").Inc()
	ExtractionDuration.WithLabelValues("statement").Observe(elapsed.Seconds())
	StatementItems.Observe(float64(items))
}

// CountEntrySaved records one persisted entry.
func CountEntrySaved(inputMethod, currency string) {
	EntriesSaved.WithLabelValues(inputMethod, currency).Inc()
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// MetricsMiddleware collects per-route request counts and latencies.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		start := time.Now()
		next.ServeHTTP(rec, r)

		route := r.Method + " " + r.URL.Path
		RequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
		RequestsTotal.WithLabelValues(route, strconv.Itoa(rec.status)).Inc()
	})
}
