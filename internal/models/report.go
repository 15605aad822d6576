// Package models defines the report structures shared across the detector pipeline.
// The JSON field names are part of the output contract and must not change.
package models

import "math/big"

// Risk levels reported for a token.
const (
	RiskLevelLow    = "low"
	RiskLevelMedium = "medium"
	RiskLevelHigh   = "high"
	RiskLevelInfo   = "info"
)

// ZeroAddress marks a missing pair or an unset address field.
const ZeroAddress = "0x0000000000000000000000000000000000000000"

// TokenMetadata holds basic ERC-20 token info fetched on-chain.
type TokenMetadata struct {
	Name        string `json:"name"`
	Symbol      string `json:"symbol"`
	Decimals    int    `json:"decimals"`
	TotalSupply string `json:"totalSupply"`
}

// PairReserves is a snapshot of a V2 pair's reserves and constituent tokens.
// A nil snapshot means the pair does not exist.
type PairReserves struct {
	Reserve0 *big.Int
	Reserve1 *big.Int
	Token0   string
	Token1   string
}

// VenueLiquidity is one DEX's contribution to the liquidity distribution.
// Error records why a venue reported zero; it is informational, never fatal.
type VenueLiquidity struct {
	Name         string  `json:"name"`
	Liquidity    float64 `json:"liquidity"`
	Percentage   float64 `json:"percentage"`
	HasLiquidity bool    `json:"hasLiquidity"`
	PairAddress  string  `json:"pairAddress"`
	Error        string  `json:"error,omitempty"`
}

// RiskFactors are the boolean liquidity risk flags.
type RiskFactors struct {
	SingleDexDominance bool `json:"singleDexDominance"`
	LowTotalLiquidity  bool `json:"lowTotalLiquidity"`
	NoPairs            bool `json:"noPairs"`
}

// LiquiditySummary aggregates USD liquidity across all configured DEXs.
type LiquiditySummary struct {
	TotalLiquidity  float64                   `json:"totalLiquidity"`
	DexDistribution map[string]VenueLiquidity `json:"dexDistribution"`
	RiskFactors     RiskFactors               `json:"riskFactors"`
}

// TradeSimulation is a round-trip buy/sell quote result. A failed simulation
// is reported in the same shape with maximal-risk values and Error set, so
// the scorer can consume success and failure uniformly.
type TradeSimulation struct {
	Dex           string  `json:"dex"`
	CanBuy        bool    `json:"canBuy"`
	CanSell       bool    `json:"canSell"`
	Slippage      float64 `json:"slippage"`
	TaxRate       float64 `json:"taxRate"`
	TradeAmount   string  `json:"tradeAmount"`
	PriceImpact   float64 `json:"priceImpact"`
	LiquidityUsed float64 `json:"liquidityUsed"`
	Error         string  `json:"error,omitempty"`
}

// Checks are the headline booleans derived from the other sections.
type Checks struct {
	CanSell            bool `json:"canSell"`
	HasHighTax         bool `json:"hasHighTax"`
	HasLiquidity       bool `json:"hasLiquidity"`
	SingleDexDominance bool `json:"singleDexDominance"`
}

// RiskDetails lists the triggered risk descriptions and the recommendation.
type RiskDetails struct {
	Risks            []string `json:"risks"`
	TotalRiskFactors int      `json:"totalRiskFactors"`
	Recommendation   string   `json:"recommendation"`
}

// RiskAssessment is the scorer verdict for one token.
type RiskAssessment struct {
	IsHoneypot bool
	RiskLevel  string
	RiskScore  float64
	Details    RiskDetails
}

// Report is the full assessment for a single token.
type Report struct {
	TokenInfo  *TokenMetadata   `json:"tokenInfo,omitempty"`
	IsHoneypot bool             `json:"isHoneypot"`
	RiskLevel  string           `json:"riskLevel"`
	Checks     Checks           `json:"checks"`
	Liquidity  LiquiditySummary `json:"liquidity"`
	Trading    TradeSimulation  `json:"trading"`
	Details    RiskDetails      `json:"details"`
	Error      string           `json:"error,omitempty"`
}
