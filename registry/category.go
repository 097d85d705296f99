package registry

import "fmt"

// Category identifies the pricing strategy applied to a token
type Category int

const (
	Stablecoin Category = iota
	WrappedNative
	BtcPegged
	Vault
	Equity
	LpPool
	BondingCurve
	Generic
)

var categoryNames = map[Category]string{
	Stablecoin:    "stablecoin",
	WrappedNative: "wrapped_native",
	BtcPegged:     "btc_pegged",
	Vault:         "vault",
	Equity:        "equity",
	LpPool:        "lp_pool",
	BondingCurve:  "bonding_curve",
	Generic:       "generic",
}

// Categories returns all categories in classification precedence order
func Categories() []Category {
	return []Category{Stablecoin, WrappedNative, BtcPegged, Vault, Equity, LpPool, BondingCurve, Generic}
}

// CachedCategories returns the categories whose prices are fetched on-chain and cached
func CachedCategories() []Category {
	return []Category{Vault, Equity, LpPool, BondingCurve}
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return fmt.Sprintf("category(%d)", int(c))
}

// Cached returns true if prices of this category come from an on-chain price cache
func (c Category) Cached() bool {
	switch c {
	case Vault, Equity, LpPool, BondingCurve:
		return true
	default:
		return false
	}
}

// ParseCategory converts a category name back to Category
func ParseCategory(name string) (Category, error) {
	for c, n := range categoryNames {
		if n == name {
			return c, nil
		}
	}
	return Generic, fmt.Errorf("unknown category: %s", name)
}

func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}
