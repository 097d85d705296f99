package api

import (
	"net/http"
)

// handleHealth reports "up" for every updater that completed a fetch round,
// together with the size of each category cache
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	services := make(map[string]string, len(s.updaters))
	prices := make(map[string]int, len(s.updaters))
	for _, updater := range s.updaters {
		services[updater.Name()] = "unknown"
		if updater.Healthy() {
			services[updater.Name()] = "up"
		}
		prices[updater.Name()] = len(updater.LastPrices())
	}

	stats := s.caches.Stats()
	caches := make(map[string]map[string]int, len(stats.Items))
	for category, items := range stats.Items {
		caches[category] = map[string]int{
			"items": items,
			"fresh": stats.Fresh[category],
		}
	}

	status := map[string]interface{}{
		"status":   "ok",
		"chain_id": s.resolver.ChainID(),
		"services": services,
		"prices":   prices,
		"caches":   caches,
	}

	s.sendJSONResponse(w, status)
}
