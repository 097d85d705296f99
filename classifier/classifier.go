package classifier

import (
	"github.com/status-im/token-price-resolver/registry"
)

// precedence is the fixed classification order; the first matching category wins
var precedence = []registry.Category{
	registry.Stablecoin,
	registry.WrappedNative,
	registry.BtcPegged,
	registry.Vault,
	registry.Equity,
	registry.LpPool,
	registry.BondingCurve,
}

// Classifier maps a (chain, address) pair to exactly one pricing category
type Classifier struct {
	registry *registry.Registry
}

func New(reg *registry.Registry) *Classifier {
	return &Classifier{registry: reg}
}

// Categorize returns the category of a token. Addresses that are not valid hex
// or are not registered anywhere are Generic.
func (c *Classifier) Categorize(chainID int64, address string) registry.Category {
	canonical, err := registry.CanonicalAddress(address)
	if err != nil {
		return registry.Generic
	}

	for _, category := range precedence {
		if c.registry.Contains(chainID, category, canonical) {
			return category
		}
	}
	return registry.Generic
}

// IsScam reports whether the token is a known impersonation of a legitimate token
func (c *Classifier) IsScam(chainID int64, address string) bool {
	canonical, err := registry.CanonicalAddress(address)
	if err != nil {
		return false
	}
	return c.registry.IsScam(chainID, canonical)
}
