// Package config provides the BSC network constants, DEX registry and risk
// thresholds used by the honeypot detector.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Venue is one DEX (router + factory) where a token may be traded.
type Venue struct {
	Key          string `yaml:"key"`
	Name         string `yaml:"name"`
	Router       string `yaml:"router"`
	Factory      string `yaml:"factory"`
	InitCodeHash string `yaml:"initCodeHash,omitempty"`
}

// BaseAsset is a reference asset used to price a token's liquidity in USD.
type BaseAsset struct {
	Symbol   string  `yaml:"symbol"`
	Address  string  `yaml:"address"`
	PriceUSD float64 `yaml:"priceUsd"`
	Decimals int     `yaml:"decimals"`
}

// Thresholds are the risk classification constants.
type Thresholds struct {
	MinLiquidityUSD       float64
	MaxTaxRate            float64
	MaxSingleDexDominance float64
	MinPairAgeSeconds     int
	MicroLiquidityUSD     float64
	DangerousLiquidityUSD float64
	DustTradeAmount       float64
}

type Config struct {
	ChainID    int
	RPCURLs    []string
	WBNB       string
	Venues     []Venue
	BaseAssets []BaseAsset
	Thresholds Thresholds
}

// Default BSC RPC endpoints, tried in round-robin order.
var defaultRPCURLs = []string{
	"https://bsc-dataseed1.binance.org/",
	"https://bsc-dataseed2.binance.org/",
	"https://bsc-dataseed3.binance.org/",
	"https://bsc-dataseed4.binance.org/",
}

const (
	wbnbAddress = "0xbb4CdB9CBd36B01bD1cBaEBF2De08d9173bc095c"
	busdAddress = "0xe9e7CEA3DedcA5984780Bafc599bD69ADd087D56"
	usdtAddress = "0x55d398326f99059fF775485246999027B3197955"
)

func defaultVenues() []Venue {
	return []Venue{
		{
			Key:          "pancakeswapV2",
			Name:         "PancakeSwap V2",
			Router:       "0x10ED43C718714eb63d5aA57B78B54704E256024E",
			Factory:      "0xcA143Ce32Fe78f1f7019d7d551a6402fC5350c73",
			InitCodeHash: "0x00fb7f630766e6a796048ea87d01acd3068e8ff67d078148a3fa3f4a84f69bd5",
		},
		{
			Key:     "pancakeswapV3",
			Name:    "PancakeSwap V3",
			Router:  "0x13f4EA83D0bd40E75C8222255bc855a974568Dd4",
			Factory: "0x0BFbCF9fa4f9C56B0F40a671Ad40E0805A091865",
		},
		{
			Key:     "biswap",
			Name:    "Biswap",
			Router:  "0x3a6d8cA21D1CF76F653A67577FA0D27453350dD8",
			Factory: "0x858E3312ed3A876947EA49d572A7C42DE08af7EE",
		},
		{
			Key:     "apeswap",
			Name:    "ApeSwap",
			Router:  "0xcF0feBd3f17CEf5b47b0cD257aCf6025c5BFf3b7",
			Factory: "0x0841BD0B734E4F5853f0dD8d7Ea041c241fb0Da6",
		},
		{
			Key:     "babyswap",
			Name:    "BabySwap",
			Router:  "0x325E343f1dE602396E256B67eFd1F61C3A6B38Bd",
			Factory: "0x86407bEa2078ea5f5EB5A52B2caA963bC1F889Da",
		},
		{
			Key:     "mdex",
			Name:    "MDEX",
			Router:  "0x7DAe51BD3E3376B8c7c4900E9107f12Be3AF1bA8",
			Factory: "0x3CD1C46068dAEa5Ebb0d3f55F6915B10648062B8",
		},
	}
}

// Load builds the configuration from built-in BSC defaults with optional
// environment overrides. A VENUES_FILE pointing to a YAML registry replaces
// the built-in DEX list entirely.
func Load() (*Config, error) {
	_ = godotenv.Load()

	bnbPrice := getEnvFloat("BNB_PRICE_USD", 300)

	cfg := &Config{
		ChainID: 56,
		RPCURLs: defaultRPCURLs,
		WBNB:    wbnbAddress,
		Venues:  defaultVenues(),
		BaseAssets: []BaseAsset{
			{Symbol: "WBNB", Address: wbnbAddress, PriceUSD: bnbPrice, Decimals: 18},
			{Symbol: "USDT", Address: usdtAddress, PriceUSD: 1, Decimals: 18},
			{Symbol: "BUSD", Address: busdAddress, PriceUSD: 1, Decimals: 18},
		},
		Thresholds: Thresholds{
			MinLiquidityUSD:       getEnvFloat("MIN_LIQUIDITY_USD", 500),
			MaxTaxRate:            getEnvFloat("MAX_TAX_RATE", 0.25),
			MaxSingleDexDominance: getEnvFloat("MAX_SINGLE_DEX_DOMINANCE", 0.95),
			MinPairAgeSeconds:     3600,
			MicroLiquidityUSD:     getEnvFloat("MICRO_LIQUIDITY_USD", 100),
			DangerousLiquidityUSD: getEnvFloat("DANGEROUS_LIQUIDITY_USD", 50),
			DustTradeAmount:       0.00003,
		},
	}

	if urls := os.Getenv("BSC_RPC_URLS"); urls != "" {
		cfg.RPCURLs = splitURLs(urls)
	}

	if path := os.Getenv("VENUES_FILE"); path != "" {
		venues, err := loadVenuesFile(path)
		if err != nil {
			return nil, fmt.Errorf("loading venues file %s: %w", path, err)
		}
		cfg.Venues = venues
	}

	return cfg, nil
}

// NativePriceUSD returns the configured USD price of the wrapped native asset.
func (c *Config) NativePriceUSD() float64 {
	for _, base := range c.BaseAssets {
		if strings.EqualFold(base.Address, c.WBNB) {
			return base.PriceUSD
		}
	}
	return 0
}

func loadVenuesFile(path string) ([]Venue, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var registry struct {
		Venues []Venue `yaml:"venues"`
	}
	if err := yaml.Unmarshal(data, &registry); err != nil {
		return nil, err
	}
	if len(registry.Venues) == 0 {
		return nil, fmt.Errorf("no venues defined")
	}
	return registry.Venues, nil
}

func splitURLs(raw string) []string {
	var urls []string
	for _, u := range strings.Split(raw, ",") {
		if u = strings.TrimSpace(u); u != "" {
			urls = append(urls, u)
		}
	}
	return urls
}

func getEnvFloat(key string, defaultVal float64) float64 {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return defaultVal
	}
	return f
}
