package e2etest

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/status-im/token-price-resolver/api"
)

func exchangeRateURL(env *TestEnv, address string, extra url.Values) string {
	query := url.Values{"address": {address}}
	for key, values := range extra {
		query[key] = values
	}
	return env.ServerBaseURL + "/api/v1/exchange_rate?" + query.Encode()
}

func TestExchangeRateEndpoint(t *testing.T) {
	env := SetupTest(t)
	defer env.TearDown()

	waitForPrices(t, env)

	tests := []struct {
		name     string
		address  string
		extra    url.Values
		rate     string
		category string
		source   string
	}{
		{"stablecoin", stablecoinAddr, url.Values{"api_rate": {"0.99"}}, "1.00", "stablecoin", "fixed"},
		{"wrapped native", wrappedNative, url.Values{"native_rate": {"95000.5"}}, "95000.5", "wrapped_native", "native"},
		{"vault", vaultAddr, nil, "2.00000000", "vault", "cache"},
		{"equity", equityAddr, nil, "3.50000000", "equity", "cache"},
		{"lp pool", lpTokenAddr, nil, "0.25000000", "lp_pool", "cache"},
		{"bonding curve", bondingCurveAddr, nil, "3.00000000", "bonding_curve", "cache"},
		{"generic with api rate", unknownAddr, url.Values{"api_rate": {"0.42"}}, "0.42", "generic", "api"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, status := getJSON[api.ExchangeRateResponse](t, exchangeRateURL(env, tt.address, tt.extra))
			require.Equal(t, http.StatusOK, status)
			require.NotNil(t, body.Rate)
			assert.Equal(t, tt.rate, *body.Rate)
			assert.Equal(t, tt.category, body.Category)
			assert.Equal(t, tt.source, body.Source)
		})
	}

	t.Run("unknown token without rate", func(t *testing.T) {
		body, status := getJSON[api.ExchangeRateResponse](t, exchangeRateURL(env, unknownAddr, nil))
		require.Equal(t, http.StatusOK, status)
		assert.Nil(t, body.Rate)
		assert.Equal(t, "none", body.Source)
	})

	t.Run("scam flag", func(t *testing.T) {
		body, status := getJSON[api.ExchangeRateResponse](t, exchangeRateURL(env, scamAddr, nil))
		require.Equal(t, http.StatusOK, status)
		assert.True(t, body.IsScam)
	})

	t.Run("other chain", func(t *testing.T) {
		_, status := getJSON[api.ExchangeRateResponse](t, exchangeRateURL(env, vaultAddr, url.Values{"chain_id": {"1"}}))
		assert.Equal(t, http.StatusNotFound, status)
	})
}

func TestCurrencyValueEndpoint(t *testing.T) {
	env := SetupTest(t)
	defer env.TearDown()

	waitForPrices(t, env)

	query := url.Values{
		"address":  {vaultAddr},
		"value":    {"1500000000000000000"},
		"decimals": {"18"},
	}
	body, status := getJSON[api.CurrencyValueResponse](t, env.ServerBaseURL+"/api/v1/currency_value?"+query.Encode())
	require.Equal(t, http.StatusOK, status)

	assert.Equal(t, "1.5", body.DisplayValue)
	require.NotNil(t, body.USDValue)
	assert.Equal(t, "3", *body.USDValue)
}
