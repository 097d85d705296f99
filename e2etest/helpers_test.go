package e2etest

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// fetchJSON performs a GET request and decodes a 200 body into a T
func fetchJSON[T any](url string) (T, int, error) {
	var body T
	resp, err := http.Get(url)
	if err != nil {
		return body, 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK {
		err = json.NewDecoder(resp.Body).Decode(&body)
	}
	return body, resp.StatusCode, err
}

func getJSON[T any](t *testing.T, url string) (T, int) {
	t.Helper()
	body, status, err := fetchJSON[T](url)
	require.NoError(t, err)
	return body, status
}

// waitForPrices waits until every on-chain category cache holds a fresh price
func waitForPrices(t *testing.T, env *TestEnv) {
	t.Helper()

	expected := map[string]string{
		"vault":         vaultAddr,
		"equity":        equityAddr,
		"lp_pool":       lpTokenAddr,
		"bonding_curve": bondingCurveAddr,
	}

	require.Eventually(t, func() bool {
		for category, address := range expected {
			prices, status, err := fetchJSON[map[string]json.RawMessage](env.ServerBaseURL + "/api/v1/prices/" + category)
			if err != nil || status != http.StatusOK {
				return false
			}
			if _, ok := prices[address]; !ok {
				return false
			}
		}
		return true
	}, 10*time.Second, 100*time.Millisecond, "on-chain prices were not fetched")
}
