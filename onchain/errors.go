package onchain

import (
	"errors"
	"fmt"

	"github.com/status-im/token-price-resolver/ethrpc"
	"github.com/status-im/token-price-resolver/metrics"
)

// ZeroDivisorError is returned when a price formula would divide by a zero on-chain value
type ZeroDivisorError struct {
	Address string
	Operand string
}

func (e *ZeroDivisorError) Error() string {
	return fmt.Sprintf("%s of %s is zero", e.Operand, e.Address)
}

// failureReason maps a per-address fetch error to its metrics label
func failureReason(err error) string {
	var rpcErr *ethrpc.RPCError
	var decodeErr *ethrpc.DecodeError
	var zeroErr *ZeroDivisorError

	switch {
	case errors.As(err, &rpcErr):
		return metrics.ReasonRPC
	case errors.As(err, &decodeErr):
		return metrics.ReasonDecode
	case errors.As(err, &zeroErr):
		return metrics.ReasonZeroDivisor
	default:
		return metrics.ReasonUnclassified
	}
}
