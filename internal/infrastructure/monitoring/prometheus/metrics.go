package prometheus

import (
	"strconv"
	"time"
)

// AppMetrics holds the service metrics.
type AppMetrics struct {
	// HTTP surface
	HTTPRequestsTotal   CounterVec
	HTTPRequestDuration HistogramVec
	HTTPActiveRequests  GaugeVec

	// Translation engine
	TranslationsTotal     CounterVec
	TranslationDuration   HistogramVec
	TokensNotFoundTotal   CounterVec
	RuleMatchesTotal      CounterVec
	LowConfidenceTotal    CounterVec
	SegmenterFallbacks    CounterVec
	LexiconReloadsTotal   CounterVec

	// Pose assets
	PoseRequestsTotal  CounterVec
	PoseMetaScansTotal CounterVec
	PoseBytesServed    CounterVec

	// Infrastructure
	DBQueryDuration  HistogramVec
	CacheHitsTotal   CounterVec
	CacheMissesTotal CounterVec
	EventsPublished  CounterVec
	EventsConsumed   CounterVec

	// Health
	HealthCheckStatus GaugeVec
	ErrorsTotal       CounterVec
}

var (
	DefaultHTTPDurationBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}
	DefaultDBDurationBuckets   = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 5}
)

// NewAppMetrics registers every service metric on the collector.
func NewAppMetrics(collector MetricsCollector) *AppMetrics {
	m := &AppMetrics{}

	m.HTTPRequestsTotal = collector.RegisterCounter("http_requests_total", "Total HTTP requests", "method", "path", "status_code")
	m.HTTPRequestDuration = collector.RegisterHistogram("http_request_duration_seconds", "HTTP request duration", DefaultHTTPDurationBuckets, "method", "path")
	m.HTTPActiveRequests = collector.RegisterGauge("http_active_requests", "In-flight HTTP requests", "method")

	m.TranslationsTotal = collector.RegisterCounter("translations_total", "Translation requests", "status")
	m.TranslationDuration = collector.RegisterHistogram("translation_duration_seconds", "Translation pipeline duration", DefaultHTTPDurationBuckets, "status")
	m.TokensNotFoundTotal = collector.RegisterCounter("tokens_not_found_total", "Tokens with no dictionary entry")
	m.RuleMatchesTotal = collector.RegisterCounter("rule_matches_total", "Reordering rule matches", "rule_id")
	m.LowConfidenceTotal = collector.RegisterCounter("low_confidence_total", "Translations with no rule match")
	m.SegmenterFallbacks = collector.RegisterCounter("segmenter_fallbacks_total", "Segmenter failures handled by whitespace fallback")
	m.LexiconReloadsTotal = collector.RegisterCounter("lexicon_reloads_total", "Lexicon hot reloads", "status")

	m.PoseRequestsTotal = collector.RegisterCounter("pose_requests_total", "Pose file requests", "source", "status")
	m.PoseMetaScansTotal = collector.RegisterCounter("pose_meta_scans_total", "Pose meta scans", "status")
	m.PoseBytesServed = collector.RegisterCounter("pose_bytes_served_total", "Pose payload bytes served")

	m.DBQueryDuration = collector.RegisterHistogram("db_query_duration_seconds", "Database query duration", DefaultDBDurationBuckets, "operation")
	m.CacheHitsTotal = collector.RegisterCounter("cache_hits_total", "Cache hits", "cache")
	m.CacheMissesTotal = collector.RegisterCounter("cache_misses_total", "Cache misses", "cache")
	m.EventsPublished = collector.RegisterCounter("events_published_total", "Kafka events published", "topic", "status")
	m.EventsConsumed = collector.RegisterCounter("events_consumed_total", "Kafka events consumed", "topic", "status")

	m.HealthCheckStatus = collector.RegisterGauge("health_check_status", "Health check status (1=up, 0=down)", "component")
	m.ErrorsTotal = collector.RegisterCounter("errors_total", "Total errors", "component", "code")

	return m
}

// Helpers

func RecordHTTPRequest(m *AppMetrics, method, path string, statusCode int, duration time.Duration) {
	status := strconv.Itoa(statusCode)
	m.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

func RecordTranslation(m *AppMetrics, ruleID string, lowConfidence bool, notFound int, duration time.Duration) {
	status := "matched"
	if lowConfidence {
		status = "fallback"
		m.LowConfidenceTotal.WithLabelValues().Inc()
	} else if ruleID != "" {
		m.RuleMatchesTotal.WithLabelValues(ruleID).Inc()
	}
	m.TranslationsTotal.WithLabelValues(status).Inc()
	m.TranslationDuration.WithLabelValues(status).Observe(duration.Seconds())
	if notFound > 0 {
		m.TokensNotFoundTotal.WithLabelValues().Add(float64(notFound))
	}
}

func RecordCacheAccess(m *AppMetrics, cache string, hit bool) {
	if hit {
		m.CacheHitsTotal.WithLabelValues(cache).Inc()
	} else {
		m.CacheMissesTotal.WithLabelValues(cache).Inc()
	}
}

func RecordHealth(m *AppMetrics, component string, healthy bool) {
	v := 0.0
	if healthy {
		v = 1.0
	}
	m.HealthCheckStatus.WithLabelValues(component).Set(v)
}
