// Package fraud orchestrates the honeypot assessment pipeline for a single
// token: metadata, liquidity, trade simulation, risk scoring.
package fraud

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog/log"

	"github.com/notlelouch/go-interview-practice/bsc-honeypot-detector/internal/config"
	"github.com/notlelouch/go-interview-practice/bsc-honeypot-detector/internal/contract"
	"github.com/notlelouch/go-interview-practice/bsc-honeypot-detector/internal/market"
	"github.com/notlelouch/go-interview-practice/bsc-honeypot-detector/internal/models"
	"github.com/notlelouch/go-interview-practice/bsc-honeypot-detector/internal/scoring"
)

// TokenReader fetches ERC-20 metadata for a token address.
type TokenReader interface {
	TokenMetadata(address string) (*models.TokenMetadata, error)
}

type Detector struct {
	cfg       *config.Config
	tokens    TokenReader
	liquidity *market.Aggregator
	trades    *market.Simulator
}

// New wires a detector against live BSC RPC endpoints.
func New(cfg *config.Config) *Detector {
	client := contract.NewClient(cfg.RPCURLs)
	return &Detector{
		cfg:       cfg,
		tokens:    client,
		liquidity: market.NewAggregator(cfg, client),
		trades:    market.NewSimulator(cfg, client),
	}
}

const fatalError = "Invalid token address or contract"

// CheckToken runs the full assessment pipeline. A token whose metadata cannot
// be fetched is reported as a high-risk honeypot immediately; LP tokens
// short-circuit to an informational report since they are not meant to be
// traded directly.
func (d *Detector) CheckToken(address string) *models.Report {
	log.Info().Str("token", address).Msg("checking token")

	if !common.IsHexAddress(address) {
		return fatalReport(fatalError)
	}

	meta, err := d.tokens.TokenMetadata(address)
	if err != nil || meta == nil {
		log.Warn().Err(err).Str("token", address).Msg("metadata fetch failed")
		return fatalReport(fatalError)
	}

	if isPoolToken(meta) {
		return poolTokenReport(meta)
	}

	liquidity := d.liquidity.AssessLiquidity(address)
	trade := d.trades.SimulateTrade(address, liquidity)
	risk := scoring.Score(meta, liquidity, trade, d.cfg.Thresholds)

	return &models.Report{
		TokenInfo:  meta,
		IsHoneypot: risk.IsHoneypot,
		RiskLevel:  risk.RiskLevel,
		Checks: models.Checks{
			CanSell:            trade.CanSell,
			HasHighTax:         trade.TaxRate > d.cfg.Thresholds.MaxTaxRate,
			HasLiquidity:       liquidity.TotalLiquidity > d.cfg.Thresholds.MinLiquidityUSD,
			SingleDexDominance: liquidity.RiskFactors.SingleDexDominance,
		},
		Liquidity: liquidity,
		Trading:   trade,
		Details:   risk.Details,
	}
}

// isPoolToken spots LP share tokens by their naming conventions.
func isPoolToken(meta *models.TokenMetadata) bool {
	return strings.Contains(meta.Name, "LP") ||
		strings.Contains(meta.Name, "Pancake") ||
		strings.Contains(meta.Symbol, "LP") ||
		strings.Contains(meta.Symbol, "-LP")
}

func fatalReport(msg string) *models.Report {
	return &models.Report{
		IsHoneypot: true,
		RiskLevel:  models.RiskLevelHigh,
		Liquidity:  models.LiquiditySummary{DexDistribution: map[string]models.VenueLiquidity{}},
		Details:    models.RiskDetails{Risks: []string{}},
		Error:      msg,
	}
}

func poolTokenReport(meta *models.TokenMetadata) *models.Report {
	return &models.Report{
		TokenInfo:  meta,
		IsHoneypot: false,
		RiskLevel:  models.RiskLevelInfo,
		Liquidity:  models.LiquiditySummary{DexDistribution: map[string]models.VenueLiquidity{}},
		Details: models.RiskDetails{
			Risks:          []string{},
			Recommendation: "This is an LP (Liquidity Provider) token, not a trading token",
		},
	}
}
