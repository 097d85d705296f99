package config

import "fmt"

// FetchersConfig configures the on-chain price fetch rounds
type FetchersConfig struct {
	// Concurrency caps in-flight address fetches per round; 0 means unbounded
	Concurrency int `yaml:"concurrency"`
}

// Validate checks if the configuration is valid
func (c *FetchersConfig) Validate() error {
	if c.Concurrency < 0 {
		return fmt.Errorf("concurrency must not be negative, got %d", c.Concurrency)
	}
	return nil
}
