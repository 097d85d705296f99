package e2etest

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/status-im/token-price-resolver/core"
)

// TestEnv represents a test environment
type TestEnv struct {
	Registry      *core.Registry
	Node          *MockNode
	Context       context.Context
	CancelFunc    context.CancelFunc
	ConfigPath    string
	ServerBaseURL string
}

// SetupTest starts the whole service against a mock node
func SetupTest(t *testing.T) *TestEnv {
	ctx, cancel := context.WithCancel(context.Background())

	node := NewMockNode()

	cfg, configPath, err := loadTestConfig(node.URL())
	if err != nil {
		node.Close()
		cancel()
		t.Fatalf("Failed to load test config: %v", err)
	}

	// Use a specific port for testing
	testPort := "8081"
	os.Setenv("PORT", testPort)

	registry, err := core.Setup(ctx, cfg)
	if err != nil {
		cleanupTestConfig(configPath)
		node.Close()
		cancel()
		t.Fatalf("Failed to setup services: %v", err)
	}

	if err := registry.StartAll(ctx); err != nil {
		cleanupTestConfig(configPath)
		node.Close()
		cancel()
		t.Fatalf("Failed to start services: %v", err)
	}

	env := &TestEnv{
		Registry:      registry,
		Node:          node,
		Context:       ctx,
		CancelFunc:    cancel,
		ConfigPath:    configPath,
		ServerBaseURL: fmt.Sprintf("http://localhost:%s", testPort),
	}

	// Wait for the listener
	deadline := time.Now().Add(5 * time.Second)
	for {
		resp, err := http.Get(env.ServerBaseURL + "/health")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				break
			}
		}
		if time.Now().After(deadline) {
			env.TearDown()
			t.Fatalf("Server not responding: %v", err)
		}
		time.Sleep(50 * time.Millisecond)
	}

	return env
}

// TearDown releases test environment resources
func (env *TestEnv) TearDown() {
	if env.Registry != nil {
		env.Registry.StopAll()
	}
	if env.Node != nil {
		env.Node.Close()
	}
	if env.CancelFunc != nil {
		env.CancelFunc()
	}
	if env.ConfigPath != "" {
		cleanupTestConfig(env.ConfigPath)
	}
}
