package market

import (
	"math/big"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/notlelouch/go-interview-practice/bsc-honeypot-detector/internal/config"
	"github.com/notlelouch/go-interview-practice/bsc-honeypot-detector/internal/models"
)

// Quoter is the slice of the contract client the simulator needs.
type Quoter interface {
	AmountsOut(router string, amountIn *big.Int, path []string) ([]*big.Int, error)
}

type Simulator struct {
	cfg   *config.Config
	chain Quoter
}

func NewSimulator(cfg *config.Config, chain Quoter) *Simulator {
	return &Simulator{cfg: cfg, chain: chain}
}

const nativeDecimals = 18

// SimulateTrade quotes a buy followed by a sell of the buy's exact output on
// the DEX with the highest liquidity. Quote failures come back as the same
// result shape with maximal-risk values, so scoring treats a reverted quote
// like a honeypot rather than a crash.
func (s *Simulator) SimulateTrade(token string, liquidity models.LiquiditySummary) models.TradeSimulation {
	venue, liquidityUsed := s.bestVenue(liquidity)
	if venue == nil || liquidityUsed == 0 {
		return models.TradeSimulation{
			Dex:         "No Liquidity",
			Slippage:    1,
			TaxRate:     1,
			TradeAmount: "0",
			PriceImpact: 1,
			Error:       "No liquidity found",
		}
	}

	tradeAmount := tradeAmountFor(liquidityUsed)
	amountIn := decimal.RequireFromString(tradeAmount).Shift(nativeDecimals).BigInt()

	// Buy: WBNB -> token.
	buyAmounts, err := s.chain.AmountsOut(venue.Router, amountIn, []string{s.cfg.WBNB, token})
	if err != nil {
		return s.failedSimulation(venue.Name, liquidityUsed, err)
	}
	buyOut := buyAmounts[len(buyAmounts)-1]

	// Sell the exact buy output back: token -> WBNB. The dependency on the
	// buy quote makes this inherently sequential.
	sellAmounts, err := s.chain.AmountsOut(venue.Router, buyOut, []string{token, s.cfg.WBNB})
	if err != nil {
		return s.failedSimulation(venue.Name, liquidityUsed, err)
	}
	sellOut := sellAmounts[len(sellAmounts)-1]

	probe, _ := decimal.RequireFromString(tradeAmount).Float64()
	returned, _ := decimal.NewFromBigInt(sellOut, -nativeDecimals).Float64()

	slippage := (probe - returned) / probe
	if slippage < 0 {
		slippage = 0
	}

	priceImpact := 1.0
	if liquidityUsed > 0 {
		priceImpact = probe * s.cfg.NativePriceUSD() / liquidityUsed
	}

	return models.TradeSimulation{
		Dex:           venue.Name,
		CanBuy:        buyOut.Sign() > 0,
		CanSell:       sellOut.Sign() > 0,
		Slippage:      slippage,
		TaxRate:       taxRate(slippage, priceImpact),
		TradeAmount:   tradeAmount,
		PriceImpact:   priceImpact,
		LiquidityUsed: liquidityUsed,
	}
}

func (s *Simulator) bestVenue(liquidity models.LiquiditySummary) (*config.Venue, float64) {
	var best *config.Venue
	max := 0.0
	for i, venue := range s.cfg.Venues {
		if dist, ok := liquidity.DexDistribution[venue.Key]; ok && dist.Liquidity > max {
			max = dist.Liquidity
			best = &s.cfg.Venues[i]
		}
	}
	return best, max
}

func (s *Simulator) failedSimulation(dex string, liquidityUsed float64, err error) models.TradeSimulation {
	log.Warn().Err(err).Str("dex", dex).Msg("trade simulation failed")
	return models.TradeSimulation{
		Dex:           dex,
		Slippage:      1,
		TaxRate:       1,
		TradeAmount:   "0",
		PriceImpact:   1,
		LiquidityUsed: liquidityUsed,
		Error:         err.Error(),
	}
}

// tradeAmountFor picks a probe size in BNB matched to the pool depth. Thin
// pools get dust-sized probes so the probe itself does not wreck the price.
func tradeAmountFor(liquidityUSD float64) string {
	switch {
	case liquidityUSD < 50:
		return "0.00003"
	case liquidityUSD < 200:
		return "0.0001"
	case liquidityUSD < 1000:
		return "0.0003"
	case liquidityUSD < 5000:
		return "0.001"
	case liquidityUSD < 20000:
		return "0.003"
	default:
		return "0.01"
	}
}

// taxRate separates transfer tax from price-impact-induced slippage. Above
// 50% slippage the whole loss counts as tax. The 0.01 scaling is a
// calibration constant; tuning it shifts risk verdicts.
func taxRate(slippage, priceImpact float64) float64 {
	if slippage > 0.5 {
		return slippage
	}
	tax := slippage - priceImpact*0.01
	if tax < 0 {
		return 0
	}
	return tax
}
