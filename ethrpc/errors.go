package ethrpc

import "fmt"

// RPCError is a failed eth_call: either a transport failure of the whole batch
// or a JSON-RPC error envelope returned for a single call.
type RPCError struct {
	Method string
	To     string
	Err    error
}

func (e *RPCError) Error() string {
	if e.To == "" {
		return fmt.Sprintf("rpc %s failed: %v", e.Method, e.Err)
	}
	return fmt.Sprintf("rpc %s to %s failed: %v", e.Method, e.To, e.Err)
}

func (e *RPCError) Unwrap() error {
	return e.Err
}

// DecodeError means a call result could not be interpreted as the expected ABI words
type DecodeError struct {
	Input  string
	Reason string
}

func (e *DecodeError) Error() string {
	input := e.Input
	if len(input) > 20 {
		input = input[:20] + "..."
	}
	return fmt.Sprintf("cannot decode %q: %s", input, e.Reason)
}
