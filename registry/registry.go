package registry

import (
	"sort"
)

// PoolConfig describes the pool used to price an LP-pool-priced token
type PoolConfig struct {
	Pool            string
	QuoteTokenIndex int
}

// OtherIndex returns the reserve slot that holds the priced token
func (p PoolConfig) OtherIndex() int {
	return 1 - p.QuoteTokenIndex
}

type chainEntry struct {
	sets    map[Category]map[string]struct{}
	lpPools map[string]PoolConfig
	scam    map[string]struct{}
}

// Registry is an immutable chain-indexed table of known token addresses per category.
// It is built once at startup and only read afterwards, so no locking is needed.
type Registry struct {
	chains map[int64]*chainEntry
}

func newChainEntry() *chainEntry {
	return &chainEntry{
		sets:    make(map[Category]map[string]struct{}),
		lpPools: make(map[string]PoolConfig),
		scam:    make(map[string]struct{}),
	}
}

func (e *chainEntry) add(category Category, address string) {
	set, ok := e.sets[category]
	if !ok {
		set = make(map[string]struct{})
		e.sets[category] = set
	}
	set[address] = struct{}{}
}

// ChainIDs returns the chain IDs present in the registry in ascending order
func (r *Registry) ChainIDs() []int64 {
	ids := make([]int64, 0, len(r.chains))
	for id := range r.chains {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Contains reports whether a canonical address is registered under category on the chain
func (r *Registry) Contains(chainID int64, category Category, address string) bool {
	entry, ok := r.chains[chainID]
	if !ok {
		return false
	}
	_, ok = entry.sets[category][address]
	return ok
}

// Addresses returns a sorted copy of the addresses registered under category on the chain
func (r *Registry) Addresses(chainID int64, category Category) []string {
	entry, ok := r.chains[chainID]
	if !ok {
		return []string{}
	}
	set := entry.sets[category]
	result := make([]string, 0, len(set))
	for address := range set {
		result = append(result, address)
	}
	sort.Strings(result)
	return result
}

// LpPool returns the pool configuration of an LP-pool-priced token
func (r *Registry) LpPool(chainID int64, address string) (PoolConfig, bool) {
	entry, ok := r.chains[chainID]
	if !ok {
		return PoolConfig{}, false
	}
	cfg, ok := entry.lpPools[address]
	return cfg, ok
}

// LpPools returns a copy of the token -> pool mapping for the chain
func (r *Registry) LpPools(chainID int64) map[string]PoolConfig {
	result := make(map[string]PoolConfig)
	entry, ok := r.chains[chainID]
	if !ok {
		return result
	}
	for token, cfg := range entry.lpPools {
		result[token] = cfg
	}
	return result
}

// IsScam reports whether the address is a known impersonating token on the chain
func (r *Registry) IsScam(chainID int64, address string) bool {
	entry, ok := r.chains[chainID]
	if !ok {
		return false
	}
	_, ok = entry.scam[address]
	return ok
}

// Count returns the number of addresses registered under category on the chain
func (r *Registry) Count(chainID int64, category Category) int {
	entry, ok := r.chains[chainID]
	if !ok {
		return 0
	}
	return len(entry.sets[category])
}
