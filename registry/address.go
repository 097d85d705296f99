package registry

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// ZeroAddress is never registered for any category
const ZeroAddress = "0x0000000000000000000000000000000000000000"

// CanonicalAddress validates a hex address and returns its lowercase form
func CanonicalAddress(address string) (string, error) {
	trimmed := strings.TrimSpace(address)
	if !common.IsHexAddress(trimmed) {
		return "", fmt.Errorf("invalid address: %q", address)
	}
	return strings.ToLower(common.HexToAddress(trimmed).Hex()), nil
}

// IsZeroAddress reports whether a canonical address is the zero address
func IsZeroAddress(address string) bool {
	return address == ZeroAddress
}
