package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/status-im/token-price-resolver/cache"
)

type Config struct {
	// ChainID selects the registry partition served by this process
	ChainID int64 `yaml:"chain_id"`

	// RegistryFile is the generated address registry; empty uses the embedded snapshot
	RegistryFile string `yaml:"registry_file"`

	RPC      RPCConfig      `yaml:"rpc"`
	Fetchers FetchersConfig `yaml:"fetchers"`
	Cache    cache.Config   `yaml:"cache"`
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return config, nil
}

// Parse decodes and validates a YAML configuration
func Parse(data []byte) (*Config, error) {
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.ChainID <= 0 {
		return fmt.Errorf("chain_id must be a positive integer, got %d", c.ChainID)
	}
	if err := c.RPC.Validate(); err != nil {
		return fmt.Errorf("rpc: %w", err)
	}
	if err := c.Fetchers.Validate(); err != nil {
		return fmt.Errorf("fetchers: %w", err)
	}
	if c.Cache.VaultTTL < 0 || c.Cache.EquityTTL < 0 || c.Cache.LpPoolTTL < 0 || c.Cache.BondingCurveTTL < 0 {
		return fmt.Errorf("cache: ttl must not be negative")
	}
	return nil
}
