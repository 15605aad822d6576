package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/notlelouch/go-interview-practice/bsc-honeypot-detector/internal/config"
	"github.com/notlelouch/go-interview-practice/bsc-honeypot-detector/internal/fraud"
	"github.com/notlelouch/go-interview-practice/bsc-honeypot-detector/internal/scanner"
)

type BasicTokenInfo struct {
	Address string `json:"contract_address"`
	Name    string `json:"name"`
	Symbol  string `json:"symbol"`
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if os.Getenv("DEBUG") != "" {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("loading config")
	}

	addresses := os.Args[1:]
	if len(addresses) == 0 {
		addresses = readTokens("tokens.json")
	}
	if len(addresses) == 0 {
		fmt.Println("usage: honeypot-detector <token-address> [<token-address> ...]")
		fmt.Println("       (or provide a tokens.json file)")
		return
	}

	fmt.Printf("BSC Honeypot Detection Pipeline\n")
	fmt.Printf("Total: %d tokens\n\n", len(addresses))

	detector := fraud.New(cfg)
	reports := scanner.NewScanner(detector).CheckTokens(addresses)

	honeypots := 0
	for i, report := range reports {
		fmt.Printf("[%d/%d] %s\n", i+1, len(reports), addresses[i])

		out, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			fmt.Printf("  ERROR: %v\n\n", err)
			continue
		}
		fmt.Printf("%s\n\n", out)

		if report.IsHoneypot {
			honeypots++
		}
	}

	fmt.Printf("Summary: %d/%d flagged as honeypots (%.1f%%)\n",
		honeypots, len(reports), float64(honeypots)/float64(len(reports))*100)
}

func readTokens(fileName string) []string {
	data, err := os.ReadFile(fileName)
	if err != nil {
		return nil
	}

	var tokens []BasicTokenInfo
	if err := json.Unmarshal(data, &tokens); err != nil {
		log.Warn().Err(err).Str("file", fileName).Msg("unreadable token list")
		return nil
	}

	addresses := make([]string, 0, len(tokens))
	for _, token := range tokens {
		addresses = append(addresses, token.Address)
	}
	return addresses
}
