package onchain

import (
	"context"
	"fmt"
	"log"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/status-im/token-price-resolver/cache"
	"github.com/status-im/token-price-resolver/ethrpc"
	"github.com/status-im/token-price-resolver/interfaces"
	"github.com/status-im/token-price-resolver/metrics"
	"github.com/status-im/token-price-resolver/registry"
)

// PriceDecimals is the number of fractional digits of every computed price
const PriceDecimals = 8

// priceFunc computes the price of one registered address
type priceFunc func(ctx context.Context, f *Fetcher, chainID int64, address string) (string, error)

// Fetcher computes prices of one on-chain category for every registered address
// and stores them in the category cache
type Fetcher struct {
	category      registry.Category
	caller        interfaces.EthCaller
	registry      *registry.Registry
	cache         *cache.PriceCache
	metricsWriter *metrics.MetricsWriter
	concurrency   int
	price         priceFunc
}

// NewFetcher creates a fetcher for a cached category. A concurrency of 0 runs
// all addresses of a round at once.
func NewFetcher(category registry.Category, caller interfaces.EthCaller, reg *registry.Registry, priceCache *cache.PriceCache, concurrency int) (*Fetcher, error) {
	var price priceFunc
	switch category {
	case registry.Vault:
		price = vaultPrice
	case registry.Equity:
		price = equityPrice
	case registry.LpPool:
		price = lpPoolPrice
	case registry.BondingCurve:
		price = bondingCurvePrice
	default:
		return nil, fmt.Errorf("category %s has no on-chain price source", category)
	}

	if priceCache == nil {
		return nil, fmt.Errorf("%s: price cache is required", category)
	}

	return &Fetcher{
		category:      category,
		caller:        caller,
		registry:      reg,
		cache:         priceCache,
		metricsWriter: metrics.NewMetricsWriter(category.String()),
		concurrency:   concurrency,
		price:         price,
	}, nil
}

// Category returns the category this fetcher prices
func (f *Fetcher) Category() registry.Category {
	return f.category
}

// FetchAll prices every registered address of the category concurrently and
// waits for all of them. Addresses that fail are logged and left out of the
// result; their cache entries are not touched.
func (f *Fetcher) FetchAll(ctx context.Context, chainID int64) map[string]string {
	addresses := f.registry.Addresses(chainID, f.category)
	prices := make(map[string]string, len(addresses))

	var mu sync.Mutex
	var g errgroup.Group
	if f.concurrency > 0 {
		g.SetLimit(f.concurrency)
	}

	for _, address := range addresses {
		address := address
		g.Go(func() error {
			price, err := f.price(ctx, f, chainID, address)
			if err != nil {
				log.Printf("%s: Failed to fetch price for %s: %v", f.category, address, err)
				f.metricsWriter.RecordFetchFailure(failureReason(err))
				return nil
			}

			f.cache.Set(address, price)

			mu.Lock()
			prices[address] = price
			mu.Unlock()
			return nil
		})
	}

	// Tasks never fail, Wait is only a barrier
	_ = g.Wait()

	return prices
}

// call issues calls as one batch and returns their raw results in order.
// The first failed element fails the whole address.
func (f *Fetcher) call(ctx context.Context, calls ...interfaces.EthCall) ([]string, error) {
	results, err := f.caller.BatchCall(ctx, calls)
	if err != nil {
		return nil, err
	}
	if len(results) != len(calls) {
		return nil, &ethrpc.RPCError{
			Method: "eth_call",
			To:     calls[0].To,
			Err:    fmt.Errorf("expected %d results, got %d", len(calls), len(results)),
		}
	}

	outputs := make([]string, len(results))
	for i, result := range results {
		if result.Err != nil {
			return nil, result.Err
		}
		outputs[i] = result.Result
	}
	return outputs, nil
}
