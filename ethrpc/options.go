package ethrpc

import (
	"math"
	"time"

	"golang.org/x/time/rate"
)

// Options configures the JSON-RPC client
type Options struct {
	URL               string
	MaxRetries        int
	BaseBackoff       time.Duration
	LogPrefix         string
	ConnectionTimeout time.Duration // Timeout for establishing connection
	RequestTimeout    time.Duration // Total request timeout including reading response
	RequestsPerSecond float64       // 0 disables rate limiting
	Burst             int
}

// DefaultOptions returns default client options
func DefaultOptions() Options {
	return Options{
		MaxRetries:        3,
		BaseBackoff:       500 * time.Millisecond,
		LogPrefix:         "RPC",
		ConnectionTimeout: 10 * time.Second,
		RequestTimeout:    30 * time.Second,
	}
}

// newLimiter builds the endpoint rate limiter, nil when limiting is disabled
func newLimiter(requestsPerSecond float64, burst int) *rate.Limiter {
	if requestsPerSecond <= 0 {
		return nil
	}
	limit := rate.Limit(requestsPerSecond)
	if burst <= 0 {
		burst = defaultBurstForLimit(limit)
	}
	return rate.NewLimiter(limit, burst)
}

func defaultBurstForLimit(limit rate.Limit) int {
	if limit <= 1.0 {
		return 1
	}
	return int(math.Ceil(float64(limit)))
}
