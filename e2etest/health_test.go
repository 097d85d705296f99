package e2etest

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/status-im/token-price-resolver/api"
)

func TestHealthEndpoint(t *testing.T) {
	env := SetupTest(t)
	defer env.TearDown()

	waitForPrices(t, env)

	health, status := getJSON[map[string]interface{}](t, env.ServerBaseURL+"/health")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", health["status"])
	assert.EqualValues(t, testChainID, health["chain_id"])

	services, ok := health["services"].(map[string]interface{})
	require.True(t, ok, "Response should contain 'services' object")
	assert.Len(t, services, 4)

	// Updaters report "up" once their first round completed
	assert.Eventually(t, func() bool {
		health, _, err := fetchJSON[map[string]interface{}](env.ServerBaseURL + "/health")
		if err != nil {
			return false
		}
		services, _ := health["services"].(map[string]interface{})
		for _, name := range []string{"vault", "equity", "lp_pool", "bonding_curve"} {
			if services[name] != "up" {
				return false
			}
		}
		return true
	}, 5*time.Second, 50*time.Millisecond)
}

func TestPricesVersionEndpoint(t *testing.T) {
	env := SetupTest(t)
	defer env.TearDown()

	waitForPrices(t, env)

	assert.Eventually(t, func() bool {
		version, status, err := fetchJSON[api.PricesVersionResponse](env.ServerBaseURL + "/api/v1/prices/version")
		return err == nil && status == http.StatusOK && version.Version > 0
	}, 5*time.Second, 50*time.Millisecond)
	assert.Positive(t, env.Node.Calls())

	_, status := getJSON[map[string]interface{}](t, env.ServerBaseURL+"/api/v1/prices/stablecoin")
	assert.Equal(t, http.StatusNotFound, status)
}
