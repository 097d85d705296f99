package cache

import (
	"context"
	"fmt"
	"log"

	"github.com/status-im/token-price-resolver/registry"
)

// Service owns one independent PriceCache per cached token category.
// It is constructed once per process; tests build a fresh Service per case.
type Service struct {
	caches map[registry.Category]*PriceCache
	config Config
}

// NewService creates a new cache service with the given configuration
func NewService(config Config) *Service {
	caches := make(map[registry.Category]*PriceCache)
	for _, category := range registry.CachedCategories() {
		caches[category] = NewPriceCache(category.String(), config.TTL(category))
	}

	return &Service{
		caches: caches,
		config: config,
	}
}

// Start implements core.Interface
func (s *Service) Start(ctx context.Context) error {
	if len(s.caches) == 0 {
		return fmt.Errorf("cache service not properly initialized")
	}
	for _, category := range registry.CachedCategories() {
		log.Printf("Cache: %s prices fresh for %s", category, s.caches[category].TTL())
	}
	return nil
}

// Stop implements core.Interface
func (s *Service) Stop() {
	s.Clear()
}

// For returns the cache of a category, or nil if the category is not cached
func (s *Service) For(category registry.Category) *PriceCache {
	return s.caches[category]
}

// SetClock replaces the time source of every category cache
func (s *Service) SetClock(now Clock) {
	for _, c := range s.caches {
		c.SetClock(now)
	}
}

// Stats returns statistics about the cache service
func (s *Service) Stats() ServiceStats {
	stats := ServiceStats{
		Items: make(map[string]int),
		Fresh: make(map[string]int),
	}
	for category, c := range s.caches {
		stats.Items[category.String()] = c.ItemCount()
		stats.Fresh[category.String()] = len(c.Fresh())
	}
	return stats
}

// ServiceStats represents cache service statistics
type ServiceStats struct {
	Items map[string]int // Number of stored entries per category
	Fresh map[string]int // Number of entries within their TTL per category
}

// Clear removes all items from every category cache
func (s *Service) Clear() {
	for _, c := range s.caches {
		c.Clear()
	}
}
