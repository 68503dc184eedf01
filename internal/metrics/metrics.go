package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	RateLimitedTotal prometheus.Counter

	// Extraction metrics
	ExtractionErrorsTotal prometheus.Counter
	ExtractedPagesTotal   prometheus.Counter

	// Pipeline metrics
	SemesterDurationSeconds prometheus.Histogram
	SubjectsParsedTotal     prometheus.Counter
	UnmatchedSubjectsTotal  prometheus.Counter
	MatchStrategyTotal      *prometheus.CounterVec
	ProcessingErrorsTotal   *prometheus.CounterVec
}

// New creates a new Metrics instance with all metrics registered
func New(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		RequestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "cgpa_http_requests_total",
				Help: "Total number of HTTP requests by endpoint and status",
			},
			[]string{"endpoint", "status"}, // status: success, client_error, server_error
		),

		RequestDuration: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "cgpa_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds by endpoint",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10}, // PDF parsing dominates
			},
			[]string{"endpoint"},
		),

		RateLimitedTotal: promauto.With(registry).NewCounter(
			prometheus.CounterOpts{
				Name: "cgpa_rate_limited_requests_total",
				Help: "Total number of upload requests rejected by the per-client rate limiter",
			},
		),

		ExtractionErrorsTotal: promauto.With(registry).NewCounter(
			prometheus.CounterOpts{
				Name: "cgpa_pdf_extraction_errors_total",
				Help: "Total number of PDFs whose text could not be extracted",
			},
		),

		ExtractedPagesTotal: promauto.With(registry).NewCounter(
			prometheus.CounterOpts{
				Name: "cgpa_pdf_extracted_pages_total",
				Help: "Total number of PDF pages with extracted text",
			},
		),

		SemesterDurationSeconds: promauto.With(registry).NewHistogram(
			prometheus.HistogramOpts{
				Name:    "cgpa_semester_processing_duration_seconds",
				Help:    "Duration of the per-semester parse/match/aggregate pipeline",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2},
			},
		),

		SubjectsParsedTotal: promauto.With(registry).NewCounter(
			prometheus.CounterOpts{
				Name: "cgpa_subjects_parsed_total",
				Help: "Total number of subjects parsed from result documents",
			},
		),

		UnmatchedSubjectsTotal: promauto.With(registry).NewCounter(
			prometheus.CounterOpts{
				Name: "cgpa_unmatched_subjects_total",
				Help: "Total number of result subjects with no resolvable course record",
			},
		),

		MatchStrategyTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "cgpa_match_strategy_total",
				Help: "Total number of subject matches by cascade tier",
			},
			[]string{"strategy"}, // direct, normalized, name, keyword, structural, core_pattern, fuzzy, semester, recovered_*
		),

		ProcessingErrorsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "cgpa_processing_errors_total",
				Help: "Total number of fatal semester processing errors by kind",
			},
			[]string{"kind"}, // extraction, no_subjects, no_credits, no_match, unexpected
		),
	}

	return m
}

// RecordRequest records a completed HTTP request
func (m *Metrics) RecordRequest(endpoint, status string, duration float64) {
	m.RequestsTotal.WithLabelValues(endpoint, status).Inc()
	m.RequestDuration.WithLabelValues(endpoint).Observe(duration)
}

// RecordRateLimited records an upload request rejected by the rate limiter
func (m *Metrics) RecordRateLimited() {
	m.RateLimitedTotal.Inc()
}

// RecordExtractionError records a PDF that could not be read
func (m *Metrics) RecordExtractionError() {
	m.ExtractionErrorsTotal.Inc()
}

// AddExtractedPages records pages successfully extracted from a PDF
func (m *Metrics) AddExtractedPages(n int) {
	m.ExtractedPagesTotal.Add(float64(n))
}

// RecordSemesterDuration records one pipeline run's duration
func (m *Metrics) RecordSemesterDuration(seconds float64) {
	m.SemesterDurationSeconds.Observe(seconds)
}

// AddSubjectsParsed records subjects parsed from one result document
func (m *Metrics) AddSubjectsParsed(n int) {
	m.SubjectsParsedTotal.Add(float64(n))
}

// AddUnmatchedSubjects records subjects excluded from totals
func (m *Metrics) AddUnmatchedSubjects(n int) {
	m.UnmatchedSubjectsTotal.Add(float64(n))
}

// RecordMatchStrategy records which cascade tier resolved a subject
func (m *Metrics) RecordMatchStrategy(strategy string) {
	m.MatchStrategyTotal.WithLabelValues(strategy).Inc()
}

// RecordProcessingError records a fatal semester processing error
func (m *Metrics) RecordProcessingError(kind string) {
	m.ProcessingErrorsTotal.WithLabelValues(kind).Inc()
}
