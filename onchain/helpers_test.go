package onchain

import (
	"context"
	"errors"
	"math/big"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/status-im/token-price-resolver/ethrpc"
	"github.com/status-im/token-price-resolver/interfaces"
	"github.com/status-im/token-price-resolver/registry"
)

const testChainID = int64(4114)

func addr(suffix string) string {
	return "0x" + strings.Repeat("0", 40-len(suffix)) + suffix
}

// units encodes a decimal integer string as one ABI word
func units(value string) string {
	v, ok := new(big.Int).SetString(value, 10)
	if !ok {
		panic("bad test value " + value)
	}
	digits := v.Text(16)
	return strings.Repeat("0", 64-len(digits)) + digits
}

// ether encodes whole tokens with 18 decimals as one ABI word
func ether(whole int64) string {
	v := new(big.Int).Mul(big.NewInt(whole), wad)
	return units(v.String())
}

func result(words ...string) string {
	return "0x" + strings.Join(words, "")
}

// stubCaller answers eth_call batches from a fixed table keyed by to|data
type stubCaller struct {
	mu          sync.Mutex
	responses   map[string]string
	failing     map[string]error
	batches     int32
	inFlight    int32
	maxInFlight int32
	delay       time.Duration
}

func newStubCaller() *stubCaller {
	return &stubCaller{
		responses: make(map[string]string),
		failing:   make(map[string]error),
	}
}

func (s *stubCaller) on(to, data, response string) *stubCaller {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.responses[strings.ToLower(to)+"|"+data] = response
	return s
}

func (s *stubCaller) failBatch(to string, err error) *stubCaller {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failing[strings.ToLower(to)] = err
	return s
}

func (s *stubCaller) BatchCall(ctx context.Context, calls []interfaces.EthCall) ([]interfaces.EthCallResult, error) {
	atomic.AddInt32(&s.batches, 1)
	current := atomic.AddInt32(&s.inFlight, 1)
	defer atomic.AddInt32(&s.inFlight, -1)
	for {
		seen := atomic.LoadInt32(&s.maxInFlight)
		if current <= seen || atomic.CompareAndSwapInt32(&s.maxInFlight, seen, current) {
			break
		}
	}
	if s.delay > 0 {
		time.Sleep(s.delay)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err, ok := s.failing[strings.ToLower(calls[0].To)]; ok {
		return nil, err
	}

	results := make([]interfaces.EthCallResult, len(calls))
	for i, call := range calls {
		response, ok := s.responses[strings.ToLower(call.To)+"|"+call.Data]
		if !ok {
			results[i].Err = &ethrpc.RPCError{Method: "eth_call", To: call.To, Err: errors.New("execution reverted")}
			continue
		}
		results[i].Result = response
	}
	return results, nil
}

func buildRegistry(t *testing.T, chain registry.ChainSource) *registry.Registry {
	t.Helper()
	reg, err := registry.Build(registry.Source{
		Chains: map[string]registry.ChainSource{"4114": chain},
	})
	require.NoError(t, err)
	return reg
}

func intPtr(v int) *int {
	return &v
}
