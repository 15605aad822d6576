package market

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notlelouch/go-interview-practice/bsc-honeypot-detector/internal/config"
	"github.com/notlelouch/go-interview-practice/bsc-honeypot-detector/internal/models"
)

const (
	testToken = "0x1111111111111111111111111111111111111111"
	testWBNB  = "0xbb4CdB9CBd36B01bD1cBaEBF2De08d9173bc095c"
	testUSDT  = "0x55d398326f99059fF775485246999027B3197955"
)

// chainStub implements ChainReader and Quoter with overridable behaviour.
type chainStub struct {
	pairAddress  func(factory, tokenA, tokenB string) (string, error)
	pairReserves func(pair string) (*models.PairReserves, error)
	amountsOut   func(router string, amountIn *big.Int, path []string) ([]*big.Int, error)
}

func (s *chainStub) PairAddress(factory, tokenA, tokenB string) (string, error) {
	if s.pairAddress == nil {
		return models.ZeroAddress, nil
	}
	return s.pairAddress(factory, tokenA, tokenB)
}

func (s *chainStub) PairReserves(pair string) (*models.PairReserves, error) {
	if s.pairReserves == nil || strings.EqualFold(pair, models.ZeroAddress) {
		return nil, nil
	}
	return s.pairReserves(pair)
}

func (s *chainStub) AmountsOut(router string, amountIn *big.Int, path []string) ([]*big.Int, error) {
	if s.amountsOut == nil {
		return nil, errors.New("no quote")
	}
	return s.amountsOut(router, amountIn, path)
}

func testConfig() *config.Config {
	return &config.Config{
		ChainID: 56,
		WBNB:    testWBNB,
		Venues: []config.Venue{
			{Key: "pancakeswapV2", Name: "PancakeSwap V2", Router: "0xaaa0000000000000000000000000000000000001", Factory: "0xfff0000000000000000000000000000000000001"},
			{Key: "biswap", Name: "Biswap", Router: "0xaaa0000000000000000000000000000000000002", Factory: "0xfff0000000000000000000000000000000000002"},
			{Key: "apeswap", Name: "ApeSwap", Router: "0xaaa0000000000000000000000000000000000003", Factory: "0xfff0000000000000000000000000000000000003"},
		},
		BaseAssets: []config.BaseAsset{
			{Symbol: "WBNB", Address: testWBNB, PriceUSD: 300, Decimals: 18},
			{Symbol: "USDT", Address: testUSDT, PriceUSD: 1, Decimals: 18},
		},
		Thresholds: config.Thresholds{
			MinLiquidityUSD:       500,
			MaxTaxRate:            0.25,
			MaxSingleDexDominance: 0.95,
			MicroLiquidityUSD:     100,
			DangerousLiquidityUSD: 50,
			DustTradeAmount:       0.00003,
		},
	}
}

// bnb returns n BNB in wei.
func bnb(n float64) *big.Int {
	return decimal.NewFromFloat(n).Shift(18).BigInt()
}

func wbnbReserves(amount float64) *models.PairReserves {
	return &models.PairReserves{
		Reserve0: bnb(amount),
		Reserve1: big.NewInt(123456789),
		Token0:   testWBNB,
		Token1:   testToken,
	}
}

func TestAssessLiquidityDistribution(t *testing.T) {
	// 1 BNB on pancake, 0.5 BNB on biswap, nothing on apeswap.
	depths := map[string]float64{
		"0xfff0000000000000000000000000000000000001": 1,
		"0xfff0000000000000000000000000000000000002": 0.5,
	}
	chain := &chainStub{
		pairAddress: func(factory, tokenA, tokenB string) (string, error) {
			if _, ok := depths[factory]; ok && strings.EqualFold(tokenB, testWBNB) {
				return "0xbe5700000000000000000000000000000000000" + factory[len(factory)-1:], nil
			}
			return models.ZeroAddress, nil
		},
		pairReserves: func(pair string) (*models.PairReserves, error) {
			factory := "0xfff000000000000000000000000000000000000" + pair[len(pair)-1:]
			return wbnbReserves(depths[factory]), nil
		},
	}

	summary := NewAggregator(testConfig(), chain).AssessLiquidity(testToken)

	// 1 BNB * $300 * 2 + 0.5 BNB * $300 * 2
	require.InDelta(t, 900, summary.TotalLiquidity, 1e-9)
	assert.InDelta(t, 600, summary.DexDistribution["pancakeswapV2"].Liquidity, 1e-9)
	assert.InDelta(t, 300, summary.DexDistribution["biswap"].Liquidity, 1e-9)
	assert.Zero(t, summary.DexDistribution["apeswap"].Liquidity)

	assert.True(t, summary.DexDistribution["pancakeswapV2"].HasLiquidity)
	assert.False(t, summary.DexDistribution["apeswap"].HasLiquidity)
	assert.Equal(t, models.ZeroAddress, summary.DexDistribution["apeswap"].PairAddress)

	total := 0.0
	for _, dist := range summary.DexDistribution {
		total += dist.Percentage
	}
	assert.InDelta(t, 100, total, 1e-9)

	assert.False(t, summary.RiskFactors.NoPairs)
	// $900 split 66/33 is neither dominant nor above the $500 floor.
	assert.False(t, summary.RiskFactors.SingleDexDominance)
	assert.False(t, summary.RiskFactors.LowTotalLiquidity)
}

func TestAssessLiquidityNoPairs(t *testing.T) {
	summary := NewAggregator(testConfig(), &chainStub{}).AssessLiquidity(testToken)

	assert.Zero(t, summary.TotalLiquidity)
	assert.True(t, summary.RiskFactors.NoPairs)
	assert.True(t, summary.RiskFactors.LowTotalLiquidity)
	assert.False(t, summary.RiskFactors.SingleDexDominance)
	for key, dist := range summary.DexDistribution {
		assert.Zero(t, dist.Percentage, key)
		assert.False(t, dist.HasLiquidity, key)
	}
}

func TestAssessLiquidityVenueFailureIsIsolated(t *testing.T) {
	chain := &chainStub{
		pairAddress: func(factory, tokenA, tokenB string) (string, error) {
			if factory == "0xfff0000000000000000000000000000000000001" {
				return "", errors.New("rpc timeout")
			}
			if factory == "0xfff0000000000000000000000000000000000002" && strings.EqualFold(tokenB, testWBNB) {
				return "0xbe57000000000000000000000000000000000002", nil
			}
			return models.ZeroAddress, nil
		},
		pairReserves: func(pair string) (*models.PairReserves, error) {
			return wbnbReserves(2), nil
		},
	}

	summary := NewAggregator(testConfig(), chain).AssessLiquidity(testToken)

	assert.Zero(t, summary.DexDistribution["pancakeswapV2"].Liquidity)
	assert.Equal(t, "rpc timeout", summary.DexDistribution["pancakeswapV2"].Error)
	assert.InDelta(t, 1200, summary.DexDistribution["biswap"].Liquidity, 1e-9)
	assert.Empty(t, summary.DexDistribution["biswap"].Error)
	assert.InDelta(t, 1200, summary.TotalLiquidity, 1e-9)
}

func TestVenueTakesMaxAcrossBaseAssets(t *testing.T) {
	// WBNB pair worth $600, USDT pair worth $400: the venue reports the
	// deepest route, not the sum.
	chain := &chainStub{
		pairAddress: func(factory, tokenA, tokenB string) (string, error) {
			if factory != "0xfff0000000000000000000000000000000000001" {
				return models.ZeroAddress, nil
			}
			if strings.EqualFold(tokenB, testWBNB) {
				return "0xbe57000000000000000000000000000000000001", nil
			}
			return "0xbe57000000000000000000000000000000000011", nil
		},
		pairReserves: func(pair string) (*models.PairReserves, error) {
			if pair == "0xbe57000000000000000000000000000000000001" {
				return wbnbReserves(1), nil
			}
			return &models.PairReserves{
				Reserve0: big.NewInt(987654321),
				Reserve1: bnb(200), // 200 USDT * $1 * 2 = $400
				Token0:   testToken,
				Token1:   testUSDT,
			}, nil
		},
	}

	summary := NewAggregator(testConfig(), chain).AssessLiquidity(testToken)

	require.InDelta(t, 600, summary.TotalLiquidity, 1e-9)
	assert.Equal(t, "0xbe57000000000000000000000000000000000001", summary.DexDistribution["pancakeswapV2"].PairAddress)
}

func TestDominanceRequiresStrictlyGreaterShare(t *testing.T) {
	// Dollar values chosen so max/total divides exactly: 570/600 = 0.95.
	tests := []struct {
		name     string
		shares   []float64
		dominant bool
	}{
		{"exactly at threshold", []float64{570, 30, 0}, false},
		{"above threshold", []float64{576, 24, 0}, true},
		{"single venue only", []float64{600, 0, 0}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chain := &chainStub{
				pairAddress: func(factory, tokenA, tokenB string) (string, error) {
					if !strings.EqualFold(tokenB, testWBNB) {
						return models.ZeroAddress, nil
					}
					// Factory addresses end in the venue index + 1.
					return fmt.Sprintf("0xbe5700000000000000000000000000000000000%s", factory[len(factory)-1:]), nil
				},
				pairReserves: func(pair string) (*models.PairReserves, error) {
					var idx int
					fmt.Sscanf(pair[len(pair)-1:], "%d", &idx)
					return wbnbReserves(tt.shares[idx-1] / 600), nil
				},
			}

			summary := NewAggregator(testConfig(), chain).AssessLiquidity(testToken)
			assert.Equal(t, tt.dominant, summary.RiskFactors.SingleDexDominance)
		})
	}
}
