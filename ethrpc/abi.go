package ethrpc

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// WordSize is the size of one ABI-encoded static value
const WordSize = 32

// Function selectors of the read-only calls issued by the price fetchers
const (
	SelectorTotalAssets          = "0x01e1d114" // totalAssets()
	SelectorTotalSupply          = "0x18160ddd" // totalSupply()
	SelectorPrice                = "0xa035b1fe" // price()
	SelectorGetReserves          = "0x0902f1ac" // getReserves()
	SelectorVirtualBaseReserves  = "0xae43509a" // virtualBaseReserves()
	SelectorVirtualTokenReserves = "0x1655bc62" // virtualTokenReserves()
)

// DecodeWords interprets a 0x-prefixed eth_call result as n consecutive
// big-endian unsigned 256-bit words. Trailing data beyond n words is ignored.
func DecodeWords(data string, n int) ([]*big.Int, error) {
	raw, err := hexutil.Decode(data)
	if err != nil {
		return nil, &DecodeError{Input: data, Reason: err.Error()}
	}
	if len(raw) < n*WordSize {
		return nil, &DecodeError{
			Input:  data,
			Reason: fmt.Sprintf("expected %d words, got %d bytes", n, len(raw)),
		}
	}

	words := make([]*big.Int, n)
	for i := 0; i < n; i++ {
		words[i] = new(big.Int).SetBytes(raw[i*WordSize : (i+1)*WordSize])
	}
	return words, nil
}

// DecodeWord interprets a call result as a single uint256
func DecodeWord(data string) (*big.Int, error) {
	words, err := DecodeWords(data, 1)
	if err != nil {
		return nil, err
	}
	return words[0], nil
}
