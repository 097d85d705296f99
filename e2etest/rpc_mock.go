package e2etest

import (
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/status-im/token-price-resolver/ethrpc"
)

type rpcRequest struct {
	JSONRPC string            `json:"jsonrpc"`
	ID      json.RawMessage   `json:"id"`
	Method  string            `json:"method"`
	Params  []json.RawMessage `json:"params"`
}

type rpcErrorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  string          `json:"result,omitempty"`
	Error   *rpcErrorBody   `json:"error,omitempty"`
}

// MockNode is a JSON-RPC node answering eth_call from a table keyed by to|data.
// Unknown calls revert.
type MockNode struct {
	server *httptest.Server

	mu        sync.RWMutex
	responses map[string]string
	calls     atomic.Int64
}

// NewMockNode creates a node preloaded with the contract state of the test registry
func NewMockNode() *MockNode {
	node := &MockNode{responses: make(map[string]string)}

	// vault: 2 assets per share
	node.Set(vaultAddr, ethrpc.SelectorTotalAssets, words(ether(2000)))
	node.Set(vaultAddr, ethrpc.SelectorTotalSupply, words(ether(1000)))
	// equity: price() = 3.5
	node.Set(equityAddr, ethrpc.SelectorPrice, words(new(big.Int).Div(ether(7), big.NewInt(2))))
	// pool: 1000 quote for 4000 token
	node.Set(lpPoolAddr, ethrpc.SelectorGetReserves, words(big.NewInt(1000), big.NewInt(4000), big.NewInt(1700000000)))
	// bonding curve: 30 base / 10 token
	node.Set(bondingCurveAddr, ethrpc.SelectorVirtualBaseReserves, words(ether(30)))
	node.Set(bondingCurveAddr, ethrpc.SelectorVirtualTokenReserves, words(ether(10)))

	node.server = httptest.NewServer(http.HandlerFunc(node.handle))
	return node
}

// URL returns the node endpoint
func (n *MockNode) URL() string {
	return n.server.URL
}

// Set replaces the eth_call result of a contract method
func (n *MockNode) Set(to, selector, result string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.responses[strings.ToLower(to)+"|"+selector] = result
}

// Calls returns the number of eth_call requests served
func (n *MockNode) Calls() int64 {
	return n.calls.Load()
}

func (n *MockNode) Close() {
	n.server.Close()
}

func (n *MockNode) handle(w http.ResponseWriter, r *http.Request) {
	var batch []rpcRequest
	if err := json.NewDecoder(r.Body).Decode(&batch); err != nil {
		http.Error(w, "batch requests only", http.StatusBadRequest)
		return
	}

	responses := make([]rpcResponse, len(batch))
	for i, req := range batch {
		responses[i] = n.answer(req)
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(responses)
}

func (n *MockNode) answer(req rpcRequest) rpcResponse {
	response := rpcResponse{JSONRPC: "2.0", ID: req.ID}

	if req.Method != "eth_call" || len(req.Params) == 0 {
		response.Error = &rpcErrorBody{Code: -32601, Message: "method not found"}
		return response
	}
	n.calls.Add(1)

	var call struct {
		To   string `json:"to"`
		Data string `json:"data"`
	}
	if err := json.Unmarshal(req.Params[0], &call); err != nil {
		response.Error = &rpcErrorBody{Code: -32602, Message: "invalid params"}
		return response
	}

	n.mu.RLock()
	result, ok := n.responses[strings.ToLower(call.To)+"|"+call.Data]
	n.mu.RUnlock()
	if !ok {
		response.Error = &rpcErrorBody{Code: -32000, Message: "execution reverted"}
		return response
	}

	response.Result = result
	return response
}

func ether(whole int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(whole), new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil))
}

// words ABI-encodes unsigned integers as consecutive 32-byte words
func words(values ...*big.Int) string {
	var b strings.Builder
	b.WriteString("0x")
	for _, v := range values {
		digits := v.Text(16)
		b.WriteString(strings.Repeat("0", 64-len(digits)))
		b.WriteString(digits)
	}
	return b.String()
}
