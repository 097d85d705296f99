package interfaces

import "context"

//go:generate mockgen -destination=mocks/eth_caller.go . EthCaller

// EthCall is a read-only eth_call against the latest block
type EthCall struct {
	// To is the contract address
	To string `json:"to"`

	// Data is the 0x-prefixed ABI-encoded call data (usually a bare selector)
	Data string `json:"data"`
}

// EthCallResult is the outcome of a single EthCall within a batch.
// Exactly one of Result and Err is set.
type EthCallResult struct {
	Result string
	Err    error
}

// EthCaller issues batches of eth_call requests to a JSON-RPC endpoint
type EthCaller interface {
	// BatchCall sends all calls in one round trip and returns one result per call,
	// in order. A non-nil error means the whole batch failed.
	BatchCall(ctx context.Context, calls []EthCall) ([]EthCallResult, error)
}
