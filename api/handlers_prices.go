package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/status-im/token-price-resolver/cache"
	"github.com/status-im/token-price-resolver/interfaces"
	"github.com/status-im/token-price-resolver/registry"
)

// PricesVersionResponse is the body of /api/v1/prices/version
type PricesVersionResponse struct {
	Version uint64 `json:"version"`
}

// handleCategoryPrices returns the fresh entries of one category cache
func (s *Server) handleCategoryPrices(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["category"]

	category, err := registry.ParseCategory(name)
	if err != nil || !category.Cached() {
		s.sendError(w, http.StatusNotFound, "no price cache for category %q", name)
		return
	}

	priceCache := s.caches.For(category)
	if priceCache == nil {
		s.sendJSONResponse(w, map[string]cache.Entry{})
		return
	}

	s.sendJSONResponse(w, priceCache.Fresh())
}

// handleRefreshPrices runs a fetch round of one category and returns its fresh entries
func (s *Server) handleRefreshPrices(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["category"]

	var updater interfaces.PriceUpdater
	for _, candidate := range s.updaters {
		if candidate.Name() == name {
			updater = candidate
			break
		}
	}
	if updater == nil {
		s.sendError(w, http.StatusNotFound, "no price updater for category %q", name)
		return
	}

	if err := updater.ForceUpdate(r.Context()); err != nil {
		s.sendError(w, http.StatusServiceUnavailable, "refresh of %s failed: %v", name, err)
		return
	}

	s.handleCategoryPrices(w, r)
}

func (s *Server) handlePricesVersion(w http.ResponseWriter, r *http.Request) {
	s.sendJSONResponse(w, PricesVersionResponse{Version: s.pricesVersion.Load()})
}
