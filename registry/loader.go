package registry

import (
	_ "embed"
	"fmt"
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

//go:embed default_registry.yaml
var defaultRegistryData []byte

// Source is the on-disk shape of the generated address registry
type Source struct {
	Chains map[string]ChainSource `yaml:"chains"`
}

// ChainSource lists the known addresses of a single chain
type ChainSource struct {
	Stablecoins   []string              `yaml:"stablecoins"`
	WrappedNative string                `yaml:"wrapped_native"`
	BtcPegged     []string              `yaml:"btc_pegged"`
	Vault         []string              `yaml:"vault"`
	Equity        []string              `yaml:"equity"`
	LpPool        map[string]PoolSource `yaml:"lp_pool"`
	BondingCurve  []string              `yaml:"bonding_curve"`
	Scam          []string              `yaml:"scam"`
}

// PoolSource is the pool entry of an LP-pool-priced token
type PoolSource struct {
	Pool            string `yaml:"pool"`
	QuoteTokenIndex *int   `yaml:"quote_token_index"`
}

// Load reads and validates a registry file. An empty path loads the embedded default.
func Load(path string) (*Registry, error) {
	if path == "" {
		return Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read registry file %s: %w", path, err)
	}

	reg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("invalid registry file %s: %w", path, err)
	}
	return reg, nil
}

// Default returns the registry snapshot embedded at build time
func Default() (*Registry, error) {
	return Parse(defaultRegistryData)
}

// Parse decodes registry data (YAML or JSON) and builds an immutable Registry
func Parse(data []byte) (*Registry, error) {
	var src Source
	if err := yaml.Unmarshal(data, &src); err != nil {
		return nil, fmt.Errorf("failed to decode registry: %w", err)
	}
	return Build(src)
}

// Build validates the source and indexes it by chain and category
func Build(src Source) (*Registry, error) {
	reg := &Registry{chains: make(map[int64]*chainEntry)}

	for chainKey, chainSrc := range src.Chains {
		chainID, err := strconv.ParseInt(chainKey, 10, 64)
		if err != nil || chainID <= 0 {
			return nil, fmt.Errorf("invalid chain id %q", chainKey)
		}

		entry, err := buildChain(chainSrc)
		if err != nil {
			return nil, fmt.Errorf("chain %d: %w", chainID, err)
		}
		reg.chains[chainID] = entry
	}

	for _, chainID := range reg.ChainIDs() {
		log.Printf("Registry: chain %d loaded (stablecoins: %d, vault: %d, equity: %d, lp_pool: %d, bonding_curve: %d)",
			chainID,
			reg.Count(chainID, Stablecoin),
			reg.Count(chainID, Vault),
			reg.Count(chainID, Equity),
			reg.Count(chainID, LpPool),
			reg.Count(chainID, BondingCurve))
	}

	return reg, nil
}

type addressList struct {
	category  Category
	addresses []string
}

func buildChain(src ChainSource) (*chainEntry, error) {
	entry := newChainEntry()

	lists := []addressList{
		{Stablecoin, src.Stablecoins},
		{BtcPegged, src.BtcPegged},
		{Vault, src.Vault},
		{Equity, src.Equity},
		{BondingCurve, src.BondingCurve},
	}
	if src.WrappedNative != "" {
		lists = append(lists, addressList{WrappedNative, []string{src.WrappedNative}})
	}

	for _, list := range lists {
		for _, raw := range list.addresses {
			address, err := CanonicalAddress(raw)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", list.category, err)
			}
			if IsZeroAddress(address) {
				continue
			}
			entry.add(list.category, address)
		}
	}

	for rawToken, pool := range src.LpPool {
		token, err := CanonicalAddress(rawToken)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", LpPool, err)
		}
		if IsZeroAddress(token) {
			continue
		}
		cfg, err := buildPool(pool)
		if err != nil {
			return nil, fmt.Errorf("%s %s: %w", LpPool, token, err)
		}
		entry.add(LpPool, token)
		entry.lpPools[token] = cfg
	}

	for _, raw := range src.Scam {
		address, err := CanonicalAddress(raw)
		if err != nil {
			return nil, fmt.Errorf("scam: %w", err)
		}
		entry.scam[address] = struct{}{}
	}

	return entry, nil
}

func buildPool(src PoolSource) (PoolConfig, error) {
	pool, err := CanonicalAddress(src.Pool)
	if err != nil {
		return PoolConfig{}, fmt.Errorf("pool: %w", err)
	}
	if IsZeroAddress(pool) {
		return PoolConfig{}, fmt.Errorf("pool address is the zero address")
	}
	if src.QuoteTokenIndex == nil {
		return PoolConfig{}, fmt.Errorf("quote_token_index is required")
	}
	index := *src.QuoteTokenIndex
	if index != 0 && index != 1 {
		return PoolConfig{}, fmt.Errorf("quote_token_index must be 0 or 1, got %d", index)
	}
	return PoolConfig{Pool: pool, QuoteTokenIndex: index}, nil
}
