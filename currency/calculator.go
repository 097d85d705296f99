package currency

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultDecimals is used when a token does not report valid decimals
const DefaultDecimals = 18

// RateResolver returns the effective USD exchange rate of a token
type RateResolver interface {
	Resolve(address, apiRate, nativeRate string) (string, bool)
}

// Params describes a raw token amount to format
type Params struct {
	// Value is the amount in the token's smallest unit
	Value string
	// Decimals of the token; empty, unparseable or negative means DefaultDecimals
	Decimals string
	// Accuracy is the number of fractional digits of the display value, 0 keeps full precision
	Accuracy int
	// AccuracyUSD is the number of fractional digits of the USD value, 0 keeps full precision
	AccuracyUSD int

	TokenAddress string
	APIRate      string
	NativeRate   string
}

// Value is a formatted token amount and its USD equivalent
type Value struct {
	Display      string
	DisplayValue decimal.Decimal
	USD          string
	USDValue     decimal.Decimal
	HasUSD       bool
}

// Calculator converts raw token amounts into display and USD values
type Calculator struct {
	resolver RateResolver
}

func NewCalculator(resolver RateResolver) *Calculator {
	return &Calculator{resolver: resolver}
}

// GetCurrencyValue formats params.Value and prices it with the token's effective rate.
// USD is empty and HasUSD false when no rate is available.
func (c *Calculator) GetCurrencyValue(params Params) (Value, error) {
	raw, err := decimal.NewFromString(strings.TrimSpace(params.Value))
	if err != nil {
		return Value{}, fmt.Errorf("invalid value %q: %w", params.Value, err)
	}

	displayValue := raw.Shift(-int32(parseDecimals(params.Decimals)))

	display := displayValue
	if params.Accuracy > 0 {
		display = display.Round(int32(params.Accuracy))
	}

	result := Value{
		Display:      display.String(),
		DisplayValue: displayValue,
		USDValue:     decimal.Zero,
	}

	rate, ok := c.resolver.Resolve(params.TokenAddress, params.APIRate, params.NativeRate)
	if !ok {
		return result, nil
	}

	rateValue, err := decimal.NewFromString(rate)
	if err != nil {
		return Value{}, fmt.Errorf("invalid exchange rate %q: %w", rate, err)
	}

	usd := displayValue.Mul(rateValue)
	result.USDValue = usd
	result.USD = formatUSD(usd, params.AccuracyUSD)
	result.HasUSD = true
	return result, nil
}

func parseDecimals(s string) int {
	decimals, err := strconv.ParseInt(strings.TrimSpace(s), 10, 32)
	if err != nil || decimals < 0 {
		return DefaultDecimals
	}
	return int(decimals)
}

// formatUSD rounds to accuracy fractional digits. A nonzero amount that would
// round to zero is rounded to accuracy significant digits instead.
func formatUSD(usd decimal.Decimal, accuracy int) string {
	if accuracy <= 0 || usd.IsZero() {
		return usd.String()
	}

	rounded := usd.Round(int32(accuracy))
	if !rounded.IsZero() {
		return rounded.String()
	}
	return roundSignificant(usd, accuracy).String()
}

// roundSignificant rounds a nonzero decimal half away from zero to digits significant digits
func roundSignificant(d decimal.Decimal, digits int) decimal.Decimal {
	coefficientDigits := len(d.Coefficient().Text(10))
	if d.Sign() < 0 {
		coefficientDigits--
	}
	// Exponent of the most significant digit
	magnitude := int32(coefficientDigits) + d.Exponent() - 1
	return d.Round(int32(digits) - 1 - magnitude)
}
