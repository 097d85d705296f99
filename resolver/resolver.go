package resolver

import (
	"strings"

	"github.com/status-im/token-price-resolver/cache"
	"github.com/status-im/token-price-resolver/classifier"
	"github.com/status-im/token-price-resolver/metrics"
	"github.com/status-im/token-price-resolver/registry"
)

// StablecoinRate is the fixed USD rate of registered stablecoins
const StablecoinRate = "1.00"

// Source tells where a resolved rate came from
type Source string

const (
	SourceFixed  Source = "fixed"
	SourceNative Source = "native"
	SourceCache  Source = "cache"
	SourceAPI    Source = "api"
	SourceNone   Source = "none"
)

// Caches gives access to the price cache of a category; nil for non-cached categories
type Caches interface {
	For(category registry.Category) *cache.PriceCache
}

// Resolution is the outcome of a single rate lookup
type Resolution struct {
	Rate     string
	Found    bool
	Category registry.Category
	Source   Source
}

// Resolver picks the effective USD rate of a token from the fixed stablecoin
// price, the native currency rate, an on-chain price cache or the upstream rate.
// It never performs I/O.
type Resolver struct {
	chainID    int64
	classifier *classifier.Classifier
	caches     Caches
}

func New(chainID int64, classifier *classifier.Classifier, caches Caches) *Resolver {
	return &Resolver{
		chainID:    chainID,
		classifier: classifier,
		caches:     caches,
	}
}

// ChainID returns the chain the resolver serves
func (r *Resolver) ChainID() int64 {
	return r.chainID
}

// Resolve returns the effective exchange rate of a token. Empty apiRate or
// nativeRate mean the rate is not available.
func (r *Resolver) Resolve(address, apiRate, nativeRate string) (string, bool) {
	resolution := r.ResolveDetailed(address, apiRate, nativeRate)
	return resolution.Rate, resolution.Found
}

// ResolveDetailed is Resolve with the token category and the rate source
func (r *Resolver) ResolveDetailed(address, apiRate, nativeRate string) Resolution {
	resolution := r.resolve(strings.TrimSpace(address), apiRate, nativeRate)
	metrics.RecordResolution(resolution.Category.String(), string(resolution.Source))
	return resolution
}

func (r *Resolver) resolve(address, apiRate, nativeRate string) Resolution {
	if address == "" {
		return fallback(registry.Generic, apiRate)
	}

	canonical, err := registry.CanonicalAddress(address)
	if err != nil {
		return fallback(registry.Generic, apiRate)
	}
	address = canonical

	category := r.classifier.Categorize(r.chainID, address)

	switch category {
	case registry.Stablecoin:
		return Resolution{Rate: StablecoinRate, Found: true, Category: category, Source: SourceFixed}

	case registry.WrappedNative, registry.BtcPegged:
		if nativeRate != "" {
			return Resolution{Rate: nativeRate, Found: true, Category: category, Source: SourceNative}
		}
		return fallback(category, apiRate)

	case registry.Vault, registry.Equity, registry.LpPool, registry.BondingCurve:
		if priceCache := r.caches.For(category); priceCache != nil {
			if price, ok := priceCache.Get(address); ok {
				return Resolution{Rate: price, Found: true, Category: category, Source: SourceCache}
			}
		}
		return fallback(category, apiRate)

	default:
		return fallback(category, apiRate)
	}
}

func fallback(category registry.Category, apiRate string) Resolution {
	if apiRate == "" {
		return Resolution{Category: category, Source: SourceNone}
	}
	return Resolution{Rate: apiRate, Found: true, Category: category, Source: SourceAPI}
}
