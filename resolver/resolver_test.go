package resolver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/status-im/token-price-resolver/cache"
	"github.com/status-im/token-price-resolver/classifier"
	"github.com/status-im/token-price-resolver/registry"
)

const (
	chainID      = int64(4114)
	usdc         = "0x1111111111111111111111111111111111111111"
	wrappedBTC   = "0x2222222222222222222222222222222222222222"
	btcPegged    = "0x3333333333333333333333333333333333333333"
	vault        = "0x44444444444444444444444444444444444444aa"
	equity       = "0x5555555555555555555555555555555555555555"
	lpToken      = "0x6666666666666666666666666666666666666666"
	lpPool       = "0x7777777777777777777777777777777777777777"
	bondingCurve = "0x8888888888888888888888888888888888888888"
	unknown      = "0x9999999999999999999999999999999999999999"
)

type clock struct {
	now time.Time
}

func (c *clock) Now() time.Time { return c.now }

func setup(t *testing.T) (*Resolver, *cache.Service, *clock) {
	t.Helper()

	quote := 0
	reg, err := registry.Build(registry.Source{
		Chains: map[string]registry.ChainSource{
			"4114": {
				Stablecoins:   []string{usdc},
				WrappedNative: wrappedBTC,
				BtcPegged:     []string{btcPegged},
				Vault:         []string{vault},
				Equity:        []string{equity},
				LpPool:        map[string]registry.PoolSource{lpToken: {Pool: lpPool, QuoteTokenIndex: &quote}},
				BondingCurve:  []string{bondingCurve},
			},
		},
	})
	require.NoError(t, err)

	c := &clock{now: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
	caches := cache.NewService(cache.DefaultCacheConfig())
	caches.SetClock(c.Now)

	return New(chainID, classifier.New(reg), caches), caches, c
}

func TestResolve_Stablecoin(t *testing.T) {
	r, _, _ := setup(t)

	rate, ok := r.Resolve(usdc, "", "")
	assert.True(t, ok)
	assert.Equal(t, "1.00", rate)

	rate, ok = r.Resolve(usdc, "0.9987", "65000")
	assert.True(t, ok)
	assert.Equal(t, "1.00", rate)
}

func TestResolve_NativeDerived(t *testing.T) {
	r, _, _ := setup(t)

	for _, address := range []string{wrappedBTC, btcPegged} {
		rate, ok := r.Resolve(address, "64000", "65000")
		assert.True(t, ok)
		assert.Equal(t, "65000", rate)

		rate, ok = r.Resolve(address, "64000", "")
		assert.True(t, ok)
		assert.Equal(t, "64000", rate)

		_, ok = r.Resolve(address, "", "")
		assert.False(t, ok)
	}
}

func TestResolve_CachedCategories(t *testing.T) {
	r, caches, c := setup(t)

	cases := map[registry.Category]string{
		registry.Vault:        vault,
		registry.Equity:       equity,
		registry.LpPool:       lpToken,
		registry.BondingCurve: bondingCurve,
	}

	for category, address := range cases {
		t.Run(category.String(), func(t *testing.T) {
			// Miss falls back to the upstream rate
			rate, ok := r.Resolve(address, "2.5", "")
			assert.True(t, ok)
			assert.Equal(t, "2.5", rate)

			_, ok = r.Resolve(address, "", "")
			assert.False(t, ok)

			caches.For(category).Set(address, "1.05")
			resolution := r.ResolveDetailed(address, "2.5", "65000")
			assert.Equal(t, Resolution{Rate: "1.05", Found: true, Category: category, Source: SourceCache}, resolution)
		})
	}

	// Advance past the longest TTL: every entry is stale and ignored
	c.now = c.now.Add(2 * time.Hour)
	for _, address := range cases {
		rate, ok := r.Resolve(address, "2.5", "")
		assert.True(t, ok)
		assert.Equal(t, "2.5", rate)
	}
}

func TestResolve_VaultTTL(t *testing.T) {
	r, caches, c := setup(t)

	caches.For(registry.Vault).Set(vault, "1.05")
	c.now = c.now.Add(4 * time.Minute)
	rate, _ := r.Resolve(vault, "", "")
	assert.Equal(t, "1.05", rate)

	c.now = c.now.Add(2 * time.Minute)
	_, ok := r.Resolve(vault, "", "")
	assert.False(t, ok)
}

func TestResolve_Generic(t *testing.T) {
	r, _, _ := setup(t)

	rate, ok := r.Resolve(unknown, "0.42", "65000")
	assert.True(t, ok)
	assert.Equal(t, "0.42", rate)

	resolution := r.ResolveDetailed(unknown, "", "65000")
	assert.False(t, resolution.Found)
	assert.Equal(t, registry.Generic, resolution.Category)
	assert.Equal(t, SourceNone, resolution.Source)
}

func TestResolve_MissingOrInvalidAddress(t *testing.T) {
	r, _, _ := setup(t)

	rate, ok := r.Resolve("", "3.3", "")
	assert.True(t, ok)
	assert.Equal(t, "3.3", rate)

	_, ok = r.Resolve("", "", "65000")
	assert.False(t, ok)

	rate, ok = r.Resolve("not-an-address", "3.3", "")
	assert.True(t, ok)
	assert.Equal(t, "3.3", rate)
}

func TestResolve_MixedCaseAddress(t *testing.T) {
	r, caches, _ := setup(t)
	caches.For(registry.Vault).Set(vault, "1.07")

	for _, address := range []string{
		"0x44444444444444444444444444444444444444AA",
		"44444444444444444444444444444444444444AA",
		"  0X44444444444444444444444444444444444444aa ",
	} {
		resolution := r.ResolveDetailed(address, "0.5", "")
		assert.True(t, resolution.Found, address)
		assert.Equal(t, "1.07", resolution.Rate, address)
		assert.Equal(t, registry.Vault, resolution.Category, address)
		assert.Equal(t, SourceCache, resolution.Source, address)
	}
}

func TestResolve_InvalidAddressFallsBackToAPIRate(t *testing.T) {
	r, _, _ := setup(t)

	resolution := r.ResolveDetailed("0x1234", "0.5", "")
	assert.Equal(t, registry.Generic, resolution.Category)
	assert.Equal(t, SourceAPI, resolution.Source)
	assert.Equal(t, "0.5", resolution.Rate)

	_, ok := r.Resolve("not-an-address", "", "")
	assert.False(t, ok)
}

func TestResolve_OtherChain(t *testing.T) {
	_, caches, _ := setup(t)
	reg, err := registry.Build(registry.Source{Chains: map[string]registry.ChainSource{
		"4114": {Stablecoins: []string{usdc}},
	}})
	require.NoError(t, err)

	r := New(1, classifier.New(reg), caches)
	assert.Equal(t, int64(1), r.ChainID())

	rate, ok := r.Resolve(usdc, "0.99", "")
	assert.True(t, ok)
	assert.Equal(t, "0.99", rate)
}
