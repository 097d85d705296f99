package onchain

import (
	"context"
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"

	"github.com/status-im/token-price-resolver/ethrpc"
	"github.com/status-im/token-price-resolver/interfaces"
)

// vaultPriceOnEmptySupply is reported for a vault with no shares minted yet
const vaultPriceOnEmptySupply = "1.00"

var wad = new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)

// vaultPrice is the ERC-4626 price per share: totalAssets / totalSupply
func vaultPrice(ctx context.Context, f *Fetcher, _ int64, address string) (string, error) {
	outputs, err := f.call(ctx,
		interfaces.EthCall{To: address, Data: ethrpc.SelectorTotalAssets},
		interfaces.EthCall{To: address, Data: ethrpc.SelectorTotalSupply},
	)
	if err != nil {
		return "", err
	}

	totalAssets, err := ethrpc.DecodeWord(outputs[0])
	if err != nil {
		return "", fmt.Errorf("totalAssets: %w", err)
	}
	totalSupply, err := ethrpc.DecodeWord(outputs[1])
	if err != nil {
		return "", fmt.Errorf("totalSupply: %w", err)
	}

	if totalSupply.Sign() == 0 {
		return vaultPriceOnEmptySupply, nil
	}

	pricePerShare := new(big.Int).Mul(totalAssets, wad)
	pricePerShare.Quo(pricePerShare, totalSupply)
	return fromWad(pricePerShare), nil
}

// equityPrice reads an 18-decimal fixed-point price()
func equityPrice(ctx context.Context, f *Fetcher, _ int64, address string) (string, error) {
	outputs, err := f.call(ctx, interfaces.EthCall{To: address, Data: ethrpc.SelectorPrice})
	if err != nil {
		return "", err
	}

	raw, err := ethrpc.DecodeWord(outputs[0])
	if err != nil {
		return "", fmt.Errorf("price: %w", err)
	}
	return fromWad(raw), nil
}

// lpPoolPrice is the reserves ratio of the token's pool, expressed in the quote token
func lpPoolPrice(ctx context.Context, f *Fetcher, chainID int64, address string) (string, error) {
	pool, ok := f.registry.LpPool(chainID, address)
	if !ok {
		return "", fmt.Errorf("no pool configured for %s", address)
	}

	outputs, err := f.call(ctx, interfaces.EthCall{To: pool.Pool, Data: ethrpc.SelectorGetReserves})
	if err != nil {
		return "", err
	}

	// getReserves() returns (uint112 reserve0, uint112 reserve1, uint32 blockTimestampLast)
	reserves, err := ethrpc.DecodeWords(outputs[0], 3)
	if err != nil {
		return "", fmt.Errorf("getReserves: %w", err)
	}

	quote := reserves[pool.QuoteTokenIndex]
	token := reserves[pool.OtherIndex()]
	if quote.Sign() == 0 || token.Sign() == 0 {
		return "", &ZeroDivisorError{Address: pool.Pool, Operand: "pool reserve"}
	}

	return ratio(quote, token), nil
}

// bondingCurvePrice is virtualBaseReserves / virtualTokenReserves
func bondingCurvePrice(ctx context.Context, f *Fetcher, _ int64, address string) (string, error) {
	outputs, err := f.call(ctx,
		interfaces.EthCall{To: address, Data: ethrpc.SelectorVirtualBaseReserves},
		interfaces.EthCall{To: address, Data: ethrpc.SelectorVirtualTokenReserves},
	)
	if err != nil {
		return "", err
	}

	base, err := ethrpc.DecodeWord(outputs[0])
	if err != nil {
		return "", fmt.Errorf("virtualBaseReserves: %w", err)
	}
	token, err := ethrpc.DecodeWord(outputs[1])
	if err != nil {
		return "", fmt.Errorf("virtualTokenReserves: %w", err)
	}

	if token.Sign() == 0 {
		return "", &ZeroDivisorError{Address: address, Operand: "virtualTokenReserves"}
	}

	return ratio(base, token), nil
}

func fromWad(value *big.Int) string {
	return decimal.NewFromBigInt(value, -18).StringFixed(PriceDecimals)
}

func ratio(numerator, denominator *big.Int) string {
	return decimal.NewFromBigInt(numerator, 0).
		DivRound(decimal.NewFromBigInt(denominator, 0), PriceDecimals).
		StringFixed(PriceDecimals)
}
