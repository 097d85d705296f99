package core

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/status-im/token-price-resolver/api"
	"github.com/status-im/token-price-resolver/cache"
	"github.com/status-im/token-price-resolver/classifier"
	"github.com/status-im/token-price-resolver/config"
	"github.com/status-im/token-price-resolver/currency"
	"github.com/status-im/token-price-resolver/ethrpc"
	"github.com/status-im/token-price-resolver/interfaces"
	"github.com/status-im/token-price-resolver/metrics"
	"github.com/status-im/token-price-resolver/onchain"
	"github.com/status-im/token-price-resolver/registry"
	"github.com/status-im/token-price-resolver/resolver"
)

// rpcService closes the shared JSON-RPC connection on shutdown
type rpcService struct {
	client *ethrpc.Client
}

func (s *rpcService) Start(ctx context.Context) error { return nil }

func (s *rpcService) Stop() { s.client.Close() }

// Setup creates and registers all services
func Setup(ctx context.Context, cfg *config.Config) (*Registry, error) {
	services := NewRegistry()

	reg, err := registry.Load(cfg.RegistryFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load address registry: %w", err)
	}
	if reg.Count(cfg.ChainID, registry.Stablecoin) == 0 && len(reg.LpPools(cfg.ChainID)) == 0 {
		log.Printf("Core: registry has no stablecoins or pools for chain %d", cfg.ChainID)
	}
	tokenClassifier := classifier.New(reg)

	// Create Cache service
	cacheService := cache.NewService(cfg.Cache)
	services.Register(cacheService)

	client, err := ethrpc.NewClient(ctx, ethrpc.Options{
		URL:               cfg.RPC.URL,
		MaxRetries:        cfg.RPC.GetMaxRetries(),
		BaseBackoff:       cfg.RPC.GetBaseBackoff(),
		ConnectionTimeout: cfg.RPC.GetConnectionTimeout(),
		RequestTimeout:    cfg.RPC.GetRequestTimeout(),
		RequestsPerSecond: cfg.RPC.RequestsPerSecond,
		Burst:             cfg.RPC.Burst,
	})
	if err != nil {
		return nil, err
	}
	services.Register(&rpcService{client: client})

	// One background updater per on-chain category, refreshing at the category TTL
	updaters := make([]interfaces.PriceUpdater, 0, len(registry.CachedCategories()))
	for _, category := range registry.CachedCategories() {
		caller := client.WithStatusHandler(metrics.NewMetricsWriter(category.String()), category.String())

		fetcher, err := onchain.NewFetcher(category, caller, reg, cacheService.For(category), cfg.Fetchers.Concurrency)
		if err != nil {
			client.Close()
			return nil, err
		}

		updater := onchain.NewService(fetcher, cfg.ChainID, cfg.Cache.TTL(category))
		services.Register(updater)
		updaters = append(updaters, updater)
	}

	rateResolver := resolver.New(cfg.ChainID, tokenClassifier, cacheService)
	calculator := currency.NewCalculator(rateResolver)

	// Get port from environment or use default
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Create HTTP server and register it as a service
	server := api.New(port, rateResolver, tokenClassifier, calculator, cacheService, updaters)
	services.Register(server)

	return services, nil
}
