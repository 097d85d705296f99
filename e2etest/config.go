package e2etest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/status-im/token-price-resolver/config"
)

const testChainID = 5115

// Addresses of the test registry
const (
	stablecoinAddr   = "0x0000000000000000000000000000000000000001"
	wrappedNative    = "0x0000000000000000000000000000000000000002"
	vaultAddr        = "0x0000000000000000000000000000000000000010"
	equityAddr       = "0x0000000000000000000000000000000000000020"
	lpTokenAddr      = "0x0000000000000000000000000000000000000030"
	lpPoolAddr       = "0x0000000000000000000000000000000000000031"
	bondingCurveAddr = "0x0000000000000000000000000000000000000040"
	scamAddr         = "0x0000000000000000000000000000000000000050"
	unknownAddr      = "0x00000000000000000000000000000000000000ff"
)

// createTestConfig writes a config and a registry file and returns the config path
func createTestConfig(rpcURL string) (string, error) {
	tempDir, err := os.MkdirTemp("", "token-price-resolver-test")
	if err != nil {
		return "", err
	}

	registryContent := fmt.Sprintf(`
chains:
  "%d":
    stablecoins: ["%s"]
    wrapped_native: "%s"
    vault: ["%s"]
    equity: ["%s"]
    lp_pool:
      "%s":
        pool: "%s"
        quote_token_index: 0
    bonding_curve: ["%s"]
    scam: ["%s"]
`, testChainID, stablecoinAddr, wrappedNative, vaultAddr, equityAddr, lpTokenAddr, lpPoolAddr, bondingCurveAddr, scamAddr)

	registryPath := filepath.Join(tempDir, "registry.yaml")
	if err := os.WriteFile(registryPath, []byte(registryContent), 0644); err != nil {
		os.RemoveAll(tempDir)
		return "", err
	}

	configContent := fmt.Sprintf(`
chain_id: %d
registry_file: "%s"

rpc:
  url: "%s"           # mock node
  max_retries: 2
  base_backoff: 10ms

fetchers:
  concurrency: 2

cache:
  vault_ttl: 1m
  equity_ttl: 1m
  lp_pool_ttl: 1m
  bonding_curve_ttl: 1m
`, testChainID, registryPath, rpcURL)

	configPath := filepath.Join(tempDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		os.RemoveAll(tempDir)
		return "", err
	}

	return configPath, nil
}

// loadTestConfig creates and loads test configuration
func loadTestConfig(rpcURL string) (*config.Config, string, error) {
	configPath, err := createTestConfig(rpcURL)
	if err != nil {
		return nil, "", err
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		os.RemoveAll(filepath.Dir(configPath))
		return nil, "", err
	}

	return cfg, configPath, nil
}

// cleanupTestConfig removes the temporary directory with configuration
func cleanupTestConfig(configPath string) {
	os.RemoveAll(filepath.Dir(configPath))
}
