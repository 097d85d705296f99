package onchain

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/status-im/token-price-resolver/events"
	"github.com/status-im/token-price-resolver/metrics"
	"github.com/status-im/token-price-resolver/scheduler"
)

// Service keeps one category cache fresh by running fetch rounds on a schedule
type Service struct {
	fetcher             *Fetcher
	chainID             int64
	scheduler           *scheduler.Scheduler
	subscriptionManager *events.SubscriptionManager
	metricsWriter       *metrics.MetricsWriter

	mu         sync.RWMutex
	lastPrices map[string]string
	lastUpdate time.Time
}

// NewService creates an updater that refreshes the fetcher's category every interval
func NewService(fetcher *Fetcher, chainID int64, interval time.Duration) *Service {
	s := &Service{
		fetcher:             fetcher,
		chainID:             chainID,
		subscriptionManager: events.NewSubscriptionManager(),
		metricsWriter:       metrics.NewMetricsWriter(fetcher.Category().String()),
		lastPrices:          make(map[string]string),
	}
	s.scheduler = scheduler.New(interval, s.fetchAndUpdate)
	return s
}

// Name returns the category name
func (s *Service) Name() string {
	return s.fetcher.Category().String()
}

// Start implements core.Interface
func (s *Service) Start(ctx context.Context) error {
	if s.scheduler.Interval() <= 0 {
		return fmt.Errorf("%s: update interval must be positive", s.Name())
	}

	log.Printf("%s: Starting price updater, interval %s", s.Name(), s.scheduler.Interval())
	s.scheduler.Start(ctx, true)
	return nil
}

// Stop implements core.Interface
func (s *Service) Stop() {
	s.scheduler.Stop()
}

// ForceUpdate runs a fetch round now and returns when it completed
func (s *Service) ForceUpdate(ctx context.Context) error {
	s.scheduler.RunNow(ctx)
	return ctx.Err()
}

// Healthy returns true after the first round completed
func (s *Service) Healthy() bool {
	return s.scheduler.Runs() > 0
}

// LastPrices returns a copy of the prices produced by the last round
func (s *Service) LastPrices() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[string]string, len(s.lastPrices))
	for address, price := range s.lastPrices {
		result[address] = price
	}
	return result
}

// LastUpdate returns the completion time of the last round
func (s *Service) LastUpdate() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastUpdate
}

// SubscribeOnUpdate subscribes to round completion notifications
func (s *Service) SubscribeOnUpdate() *events.Subscription {
	return s.subscriptionManager.Subscribe()
}

func (s *Service) fetchAndUpdate(ctx context.Context) {
	start := time.Now()

	prices := s.fetcher.FetchAll(ctx, s.chainID)

	s.mu.Lock()
	s.lastPrices = prices
	s.lastUpdate = time.Now()
	s.mu.Unlock()

	s.metricsWriter.RecordDataFetchCycle(time.Since(start))
	s.metricsWriter.RecordPricesFetched(len(prices))
	s.metricsWriter.RecordCacheSize(s.fetcher.cache.ItemCount())

	s.subscriptionManager.Emit(ctx)
}
