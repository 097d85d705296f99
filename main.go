package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/status-im/token-price-resolver/config"
	"github.com/status-im/token-price-resolver/core"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}

	// Load configuration
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatal("Error loading config:", err)
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	services, err := core.Setup(ctx, cfg)
	if err != nil {
		log.Fatal("Error setting up services:", err)
	}

	if err := services.StartAll(ctx); err != nil {
		log.Fatal("Failed to start services:", err)
	}
	log.Printf("Resolving token prices for chain %d", cfg.ChainID)

	// Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	log.Println("Received shutdown signal, stopping services...")

	cancel()
	services.StopAll()
}
