// Package market measures a token's tradability: USD liquidity across all
// configured DEXs, and round-trip trade simulation on the deepest venue.
package market

import (
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/notlelouch/go-interview-practice/bsc-honeypot-detector/internal/config"
	"github.com/notlelouch/go-interview-practice/bsc-honeypot-detector/internal/models"
)

// ChainReader is the slice of the contract client the aggregator needs.
type ChainReader interface {
	PairAddress(factory, tokenA, tokenB string) (string, error)
	PairReserves(pair string) (*models.PairReserves, error)
}

type Aggregator struct {
	cfg   *config.Config
	chain ChainReader
}

func NewAggregator(cfg *config.Config, chain ChainReader) *Aggregator {
	return &Aggregator{cfg: cfg, chain: chain}
}

type venueResult struct {
	liquidity   float64
	pairAddress string
	err         error
}

// AssessLiquidity checks every configured DEX concurrently and sums the
// per-venue USD liquidity into a distribution. A venue that fails simply
// contributes zero; it never aborts the others.
func (a *Aggregator) AssessLiquidity(token string) models.LiquiditySummary {
	results := make([]venueResult, len(a.cfg.Venues))

	var wg sync.WaitGroup
	for i, venue := range a.cfg.Venues {
		wg.Add(1)
		go func(i int, venue config.Venue) {
			defer wg.Done()
			results[i] = a.venueLiquidity(token, venue)
		}(i, venue)
	}
	wg.Wait()

	summary := models.LiquiditySummary{
		DexDistribution: make(map[string]models.VenueLiquidity, len(a.cfg.Venues)),
	}

	maxLiquidity := 0.0
	for i, venue := range a.cfg.Venues {
		res := results[i]
		summary.TotalLiquidity += res.liquidity
		if res.liquidity > maxLiquidity {
			maxLiquidity = res.liquidity
		}
		dist := models.VenueLiquidity{
			Name:         venue.Name,
			Liquidity:    res.liquidity,
			HasLiquidity: res.liquidity > 0,
			PairAddress:  res.pairAddress,
		}
		if res.liquidity == 0 && res.err != nil {
			dist.Error = res.err.Error()
		}
		summary.DexDistribution[venue.Key] = dist
	}

	for key, dist := range summary.DexDistribution {
		if summary.TotalLiquidity > 0 {
			dist.Percentage = dist.Liquidity / summary.TotalLiquidity * 100
		}
		summary.DexDistribution[key] = dist
	}

	// Dominance requires strictly more than the configured share.
	summary.RiskFactors = models.RiskFactors{
		SingleDexDominance: summary.TotalLiquidity > 0 &&
			maxLiquidity/summary.TotalLiquidity > a.cfg.Thresholds.MaxSingleDexDominance,
		LowTotalLiquidity: summary.TotalLiquidity < a.cfg.Thresholds.MinLiquidityUSD,
		NoPairs:           summary.TotalLiquidity == 0,
	}

	log.Info().Str("token", token).
		Float64("totalLiquidityUsd", summary.TotalLiquidity).
		Bool("noPairs", summary.RiskFactors.NoPairs).
		Msg("liquidity aggregated")

	return summary
}

// venueLiquidity returns the deepest base-asset pair on one DEX. The venue's
// figure is the maximum across base assets, not the sum: it represents the
// single most liquid route.
func (a *Aggregator) venueLiquidity(token string, venue config.Venue) venueResult {
	best := venueResult{pairAddress: models.ZeroAddress}

	for _, base := range a.cfg.BaseAssets {
		pairAddress, err := a.chain.PairAddress(venue.Factory, token, base.Address)
		if err != nil {
			log.Debug().Err(err).Str("dex", venue.Name).Str("base", base.Symbol).Msg("pair lookup failed")
			if best.err == nil {
				best.err = err
			}
			continue
		}
		reserves, err := a.chain.PairReserves(pairAddress)
		if err != nil {
			log.Debug().Err(err).Str("dex", venue.Name).Str("base", base.Symbol).Msg("reserve read failed")
			if best.err == nil {
				best.err = err
			}
			continue
		}

		liquidity := liquidityUSD(reserves, base)
		log.Debug().Str("dex", venue.Name).Str("base", base.Symbol).
			Float64("liquidityUsd", liquidity).Msg("pair checked")

		if liquidity > best.liquidity {
			best = venueResult{liquidity: liquidity, pairAddress: pairAddress}
		}
	}
	return best
}

// liquidityUSD values a pool from its base-asset reserve. Both sides of a V2
// pool hold equal value, so the base side is doubled.
func liquidityUSD(reserves *models.PairReserves, base config.BaseAsset) float64 {
	if reserves == nil {
		return 0
	}

	var reserve decimal.Decimal
	switch {
	case strings.EqualFold(reserves.Token0, base.Address):
		reserve = decimal.NewFromBigInt(reserves.Reserve0, int32(-base.Decimals))
	case strings.EqualFold(reserves.Token1, base.Address):
		reserve = decimal.NewFromBigInt(reserves.Reserve1, int32(-base.Decimals))
	default:
		return 0
	}

	usd, _ := reserve.Mul(decimal.NewFromFloat(base.PriceUSD)).Mul(decimal.NewFromInt(2)).Float64()
	return usd
}
