// Package scanner runs honeypot checks over batches of tokens.
package scanner

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/notlelouch/go-interview-practice/bsc-honeypot-detector/internal/models"
)

// TokenChecker assesses a single token.
type TokenChecker interface {
	CheckToken(address string) *models.Report
}

type Scanner struct {
	detector TokenChecker
}

func NewScanner(detector TokenChecker) *Scanner {
	return &Scanner{detector: detector}
}

// CheckTokens assesses every address concurrently and returns one report per
// input, in input order. A failure on one token never affects the others.
func (s *Scanner) CheckTokens(addresses []string) []*models.Report {
	reports := make([]*models.Report, len(addresses))

	var wg sync.WaitGroup
	for i, address := range addresses {
		wg.Add(1)
		go func(i int, address string) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					log.Error().Str("token", address).Interface("panic", r).Msg("check panicked")
					reports[i] = &models.Report{
						IsHoneypot: true,
						RiskLevel:  models.RiskLevelHigh,
						Liquidity:  models.LiquiditySummary{DexDistribution: map[string]models.VenueLiquidity{}},
						Details:    models.RiskDetails{Risks: []string{}},
						Error:      fmt.Sprintf("check failed: %v", r),
					}
				}
			}()
			reports[i] = s.detector.CheckToken(address)
		}(i, address)
	}
	wg.Wait()

	return reports
}
