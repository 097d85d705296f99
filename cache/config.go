package cache

import (
	"time"

	"github.com/status-im/token-price-resolver/registry"
)

const (
	// DefaultFastTTL applies to prices that move with every trade
	DefaultFastTTL = 5 * time.Minute
	// DefaultEquityTTL applies to equity prices, which change slowly
	DefaultEquityTTL = time.Hour
)

// Config represents price cache configuration
type Config struct {
	// VaultTTL is how long a vault share price stays fresh
	VaultTTL time.Duration `yaml:"vault_ttl"`

	// EquityTTL is how long an equity price() result stays fresh
	EquityTTL time.Duration `yaml:"equity_ttl"`

	// LpPoolTTL is how long a pool reserves ratio stays fresh
	LpPoolTTL time.Duration `yaml:"lp_pool_ttl"`

	// BondingCurveTTL is how long a bonding curve price stays fresh
	BondingCurveTTL time.Duration `yaml:"bonding_curve_ttl"`
}

// DefaultCacheConfig returns default cache configuration
func DefaultCacheConfig() Config {
	return Config{
		VaultTTL:        DefaultFastTTL,
		EquityTTL:       DefaultEquityTTL,
		LpPoolTTL:       DefaultFastTTL,
		BondingCurveTTL: DefaultFastTTL,
	}
}

// TTL returns the freshness window of a cached category, falling back to defaults
// for unset values. Non-cached categories return 0.
func (c Config) TTL(category registry.Category) time.Duration {
	defaults := DefaultCacheConfig()

	pick := func(value, fallback time.Duration) time.Duration {
		if value <= 0 {
			return fallback
		}
		return value
	}

	switch category {
	case registry.Vault:
		return pick(c.VaultTTL, defaults.VaultTTL)
	case registry.Equity:
		return pick(c.EquityTTL, defaults.EquityTTL)
	case registry.LpPool:
		return pick(c.LpPoolTTL, defaults.LpPoolTTL)
	case registry.BondingCurve:
		return pick(c.BondingCurveTTL, defaults.BondingCurveTTL)
	default:
		return 0
	}
}
