package interfaces

import (
	"context"

	"github.com/status-im/token-price-resolver/events"
)

// PriceUpdater keeps one category price cache fresh in the background
type PriceUpdater interface {
	// Name returns the category served by the updater
	Name() string

	// Healthy reports whether at least one fetch round has completed
	Healthy() bool

	// LastPrices returns the prices produced by the most recent round
	LastPrices() map[string]string

	// ForceUpdate runs a fetch round immediately
	ForceUpdate(ctx context.Context) error

	// SubscribeOnUpdate subscribes to round completion notifications
	SubscribeOnUpdate() *events.Subscription
}
