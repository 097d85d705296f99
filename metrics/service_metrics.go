package metrics

import (
	"log"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsPrefix is the prefix used for all metrics
const MetricsPrefix = "token_price_"

// Failure reasons reported by on-chain fetchers
const (
	ReasonRPC          = "rpc"
	ReasonDecode       = "decode"
	ReasonZeroDivisor  = "zero_divisor"
	ReasonUnclassified = "other"
)

var (
	// RPC request counter per service and status
	// Cardinality: ~20 (4 fetchers × 5 statuses)
	RPCRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "rpc_requests_total",
			Help: "Total number of JSON-RPC batch requests per service",
		},
		[]string{"service", "status"},
	)

	// Retry attempts counter
	// Cardinality: ~4 (number of fetchers)
	RPCRetryCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "rpc_retry_attempts_total",
			Help: "Total number of JSON-RPC retry attempts per service",
		},
		[]string{"service"},
	)

	// Data fetch cycle duration per service
	// Cardinality: ~4 (number of fetchers)
	DataFetchCycleDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: MetricsPrefix + "data_fetch_cycle_duration_seconds",
			Help: "Time taken to complete a full price fetch round",
		},
		[]string{"service"},
	)

	// Service cache size
	// Cardinality: ~4 (number of cached categories)
	ServiceCacheSizeGauge = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: MetricsPrefix + "service_cache_size",
			Help: "Number of items in the category price cache",
		},
		[]string{"service"},
	)

	// Prices produced by the last round
	// Cardinality: ~4 (number of cached categories)
	PricesFetchedGauge = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: MetricsPrefix + "prices_fetched",
			Help: "Number of prices successfully computed in the last fetch round",
		},
		[]string{"service"},
	)

	// Per-address failures
	// Cardinality: ~16 (4 fetchers × 4 reasons)
	FetchFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "fetch_failures_total",
			Help: "Total number of per-address price fetch failures",
		},
		[]string{"service", "reason"},
	)

	// Resolutions by category and rate source
	// Cardinality: ~40 (8 categories × 5 sources)
	ResolutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "resolutions_total",
			Help: "Total number of exchange rate resolutions by token category and rate source",
		},
		[]string{"category", "source"},
	)
)

// RecordResolution counts a single exchange rate resolution.
// Not logged: resolutions happen on every request.
func RecordResolution(category, source string) {
	ResolutionsTotal.WithLabelValues(category, source).Inc()
}

// MetricsWriter provides a unified interface for recording service metrics
type MetricsWriter struct {
	serviceName string
}

// NewMetricsWriter creates a new MetricsWriter for the specified service
func NewMetricsWriter(serviceName string) *MetricsWriter {
	return &MetricsWriter{
		serviceName: serviceName,
	}
}

// GetServiceName returns the service name
func (mw *MetricsWriter) GetServiceName() string {
	return mw.serviceName
}

// RecordRPCRequest records a JSON-RPC request outcome
func (mw *MetricsWriter) RecordRPCRequest(status string) {
	RPCRequestsTotal.WithLabelValues(mw.serviceName, status).Inc()
}

// RecordDataFetchCycle records the duration of a data fetch cycle
func (mw *MetricsWriter) RecordDataFetchCycle(duration time.Duration) {
	DataFetchCycleDuration.WithLabelValues(mw.serviceName).Observe(duration.Seconds())
	log.Printf("Metrics: %s data fetch cycle took %.2fs", mw.serviceName, duration.Seconds())
}

// RecordCacheSize records the number of items in service cache
func (mw *MetricsWriter) RecordCacheSize(size int) {
	ServiceCacheSizeGauge.WithLabelValues(mw.serviceName).Set(float64(size))
}

// RecordPricesFetched records how many prices the last round produced
func (mw *MetricsWriter) RecordPricesFetched(count int) {
	PricesFetchedGauge.WithLabelValues(mw.serviceName).Set(float64(count))
	log.Printf("Metrics: %s fetched %d prices", mw.serviceName, count)
}

// RecordFetchFailure records a per-address fetch failure
func (mw *MetricsWriter) RecordFetchFailure(reason string) {
	FetchFailuresTotal.WithLabelValues(mw.serviceName, reason).Inc()
}

// RecordRetryAttempt records a retry attempt
func (mw *MetricsWriter) RecordRetryAttempt() {
	RPCRetryCounter.WithLabelValues(mw.serviceName).Inc()
	log.Printf("Metrics: %s recorded a retry attempt", mw.serviceName)
}

// Implement ethrpc.StatusHandler for MetricsWriter
// OnRequest records an RPC request with its status
func (mw *MetricsWriter) OnRequest(status string) {
	mw.RecordRPCRequest(status)
}

// OnRetry records an RPC retry attempt
func (mw *MetricsWriter) OnRetry() {
	mw.RecordRetryAttempt()
}
