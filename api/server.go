package api

import (
	"context"
	"log"
	"net/http"
	"sync/atomic"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/status-im/token-price-resolver/cache"
	"github.com/status-im/token-price-resolver/classifier"
	"github.com/status-im/token-price-resolver/currency"
	"github.com/status-im/token-price-resolver/interfaces"
	"github.com/status-im/token-price-resolver/resolver"
)

type Server struct {
	port       string
	resolver   *resolver.Resolver
	classifier *classifier.Classifier
	calculator *currency.Calculator
	caches     *cache.Service
	updaters   []interfaces.PriceUpdater

	// pricesVersion increases every time any category cache is refreshed
	pricesVersion atomic.Uint64
	server        *http.Server
}

func New(port string, resolver *resolver.Resolver, classifier *classifier.Classifier, calculator *currency.Calculator, caches *cache.Service, updaters []interfaces.PriceUpdater) *Server {
	return &Server{
		port:       port,
		resolver:   resolver,
		classifier: classifier,
		calculator: calculator,
		caches:     caches,
		updaters:   updaters,
	}
}

// Router returns the HTTP handler serving all endpoints
func (s *Server) Router() http.Handler {
	router := mux.NewRouter()

	router.HandleFunc("/api/v1/exchange_rate", s.handleExchangeRate).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/currency_value", s.handleCurrencyValue).Methods(http.MethodGet)

	// version must be registered before the category pattern
	router.HandleFunc("/api/v1/prices/version", s.handlePricesVersion).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/prices/{category}", s.handleCategoryPrices).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/prices/{category}/refresh", s.handleRefreshPrices).Methods(http.MethodPost)

	router.HandleFunc("/health", s.handleHealth)
	router.Handle("/metrics", promhttp.Handler())

	return router
}

func (s *Server) Start(ctx context.Context) error {
	s.watchUpdaters(ctx)

	s.server = &http.Server{
		Addr:    ":" + s.port,
		Handler: s.Router(),
	}

	log.Printf("Server starting at http://localhost:%s", s.port)
	log.Println("Prometheus metrics available at /metrics endpoint")

	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("Server error: %v", err)
		}
	}()

	return nil
}

// watchUpdaters bumps the prices version on every completed fetch round
func (s *Server) watchUpdaters(ctx context.Context) {
	for _, updater := range s.updaters {
		updater.SubscribeOnUpdate().Watch(ctx, func() {
			s.pricesVersion.Add(1)
		}, false)
	}
}
