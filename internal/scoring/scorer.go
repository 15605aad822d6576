// Package scoring turns liquidity and trade-simulation signals into a
// honeypot verdict using an additive weighted rule table.
package scoring

import (
	"fmt"
	"strconv"

	"github.com/notlelouch/go-interview-practice/bsc-honeypot-detector/internal/config"
	"github.com/notlelouch/go-interview-practice/bsc-honeypot-detector/internal/models"
)

// Rule weights. Several rules may fire at once; the score is their sum.
const (
	weightCannotSell         = 50
	weightHighTax            = 30
	weightDangerousLiquidity = 60
	weightMicroLiquidity     = 40
	weightExtremeImpact      = 30
	weightHighImpact         = 10
	weightDustTradesOnly     = 50
	weightLowLiquidity       = 20
	weightNoPairs            = 40
	weightDexDominance       = 5
)

// Verdict boundaries.
const (
	highRiskScore   = 50
	mediumRiskScore = 25
)

// Score evaluates the rule table against the assessment inputs. It is a pure
// function: same inputs, same verdict. Failed simulations arrive as
// maximal-risk values and score accordingly without special-casing.
func Score(meta *models.TokenMetadata, liquidity models.LiquiditySummary, trade models.TradeSimulation, thresholds config.Thresholds) models.RiskAssessment {
	var risks []string
	score := 0.0

	if !trade.CanSell {
		risks = append(risks, "Cannot sell token - likely honeypot")
		score += weightCannotSell
	}

	if trade.TaxRate > thresholds.MaxTaxRate {
		risks = append(risks, fmt.Sprintf("High tax rate: %.1f%%", trade.TaxRate*100))
		score += weightHighTax
	}

	if liquidity.TotalLiquidity < thresholds.DangerousLiquidityUSD {
		risks = append(risks, fmt.Sprintf("Dangerous liquidity: $%.0f - High rug risk", liquidity.TotalLiquidity))
		score += weightDangerousLiquidity
	} else if liquidity.TotalLiquidity < thresholds.MicroLiquidityUSD {
		risks = append(risks, fmt.Sprintf("Micro liquidity: $%.0f - Very risky", liquidity.TotalLiquidity))
		score += weightMicroLiquidity
	}

	if trade.PriceImpact > 0.5 {
		risks = append(risks, fmt.Sprintf("Extreme price impact: %.1f%%", trade.PriceImpact*100))
		score += weightExtremeImpact
	} else if trade.PriceImpact > 0.2 {
		risks = append(risks, fmt.Sprintf("High price impact: %.1f%% - Normal for meme coins", trade.PriceImpact*100))
		score += weightHighImpact
	}

	if amount, err := strconv.ParseFloat(trade.TradeAmount, 64); err == nil && amount <= thresholds.DustTradeAmount {
		risks = append(risks, "Only dust trades possible - Extremely dangerous")
		score += weightDustTradesOnly
	}

	if liquidity.RiskFactors.LowTotalLiquidity {
		risks = append(risks, fmt.Sprintf("Low liquidity: $%.0f", liquidity.TotalLiquidity))
		score += weightLowLiquidity
	}

	if liquidity.RiskFactors.NoPairs {
		risks = append(risks, "No trading pairs found")
		score += weightNoPairs
	}

	// Single-DEX concentration is the norm for small tokens, so the
	// penalty only applies above $1000 and stays small.
	if liquidity.RiskFactors.SingleDexDominance && liquidity.TotalLiquidity > 1000 {
		risks = append(risks, "Single DEX dominance - Normal for meme coins")
		score += weightDexDominance
	}

	riskLevel := models.RiskLevelLow
	isHoneypot := false
	if score >= highRiskScore {
		riskLevel = models.RiskLevelHigh
		isHoneypot = true
	} else if score >= mediumRiskScore {
		riskLevel = models.RiskLevelMedium
	}

	if risks == nil {
		risks = []string{}
	}

	return models.RiskAssessment{
		IsHoneypot: isHoneypot,
		RiskLevel:  riskLevel,
		RiskScore:  score,
		Details: models.RiskDetails{
			Risks:            risks,
			TotalRiskFactors: len(risks),
			Recommendation:   recommendation(isHoneypot, riskLevel),
		},
	}
}

func recommendation(isHoneypot bool, riskLevel string) string {
	switch {
	case isHoneypot:
		return "DO NOT TRADE - High risk of honeypot"
	case riskLevel == models.RiskLevelMedium:
		return "CAUTION - Medium risk, trade carefully"
	default:
		return "LOW RISK - Appears safe to trade"
	}
}
