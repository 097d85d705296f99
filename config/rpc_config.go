package config

import (
	"fmt"
	"net/url"
	"time"
)

const (
	DefaultMaxRetries        = 3
	DefaultBaseBackoff       = 500 * time.Millisecond
	DefaultConnectionTimeout = 10 * time.Second
	DefaultRequestTimeout    = 30 * time.Second
)

// RPCConfig configures the JSON-RPC endpoint used for on-chain price reads
type RPCConfig struct {
	URL string `yaml:"url"`

	// Rate limit for the endpoint; 0 disables limiting
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`

	MaxRetries        int           `yaml:"max_retries"`
	BaseBackoff       time.Duration `yaml:"base_backoff"`
	ConnectionTimeout time.Duration `yaml:"connection_timeout"`
	RequestTimeout    time.Duration `yaml:"request_timeout"`
}

// Validate checks if the configuration is valid
func (c *RPCConfig) Validate() error {
	if c.URL == "" {
		return fmt.Errorf("url is required")
	}
	u, err := url.Parse(c.URL)
	if err != nil {
		return fmt.Errorf("invalid url %q: %w", c.URL, err)
	}
	switch u.Scheme {
	case "http", "https", "ws", "wss":
	default:
		return fmt.Errorf("unsupported url scheme %q", u.Scheme)
	}
	if c.RequestsPerSecond < 0 {
		return fmt.Errorf("requests_per_second must not be negative")
	}
	if c.Burst < 0 {
		return fmt.Errorf("burst must not be negative")
	}
	return nil
}

// GetMaxRetries returns the number of attempts with a default value
func (c *RPCConfig) GetMaxRetries() int {
	if c.MaxRetries <= 0 {
		return DefaultMaxRetries
	}
	return c.MaxRetries
}

// GetBaseBackoff returns the first retry delay with a default value
func (c *RPCConfig) GetBaseBackoff() time.Duration {
	if c.BaseBackoff <= 0 {
		return DefaultBaseBackoff
	}
	return c.BaseBackoff
}

// GetConnectionTimeout returns the dial timeout with a default value
func (c *RPCConfig) GetConnectionTimeout() time.Duration {
	if c.ConnectionTimeout <= 0 {
		return DefaultConnectionTimeout
	}
	return c.ConnectionTimeout
}

// GetRequestTimeout returns the total request timeout with a default value
func (c *RPCConfig) GetRequestTimeout() time.Duration {
	if c.RequestTimeout <= 0 {
		return DefaultRequestTimeout
	}
	return c.RequestTimeout
}
