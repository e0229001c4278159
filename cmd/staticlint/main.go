// Package main implements a multichecker with the project's custom
// analyzers.
//
// Analyzers:
//   - tickerstop: time.Ticker and time.Timer values bound to a local
//     variable that are never stopped and never leave the function
//   - noosexitmain: direct calls to os.Exit in main.main
//
// Usage:
//
//	go run ./cmd/staticlint ./...
package main

import (
	"golang.org/x/tools/go/analysis/multichecker"

	"github.com/sbilibin2017/flagwatch/cmd/staticlint/analyzers"
)

func main() {
	multichecker.Main(
		analyzers.TickerStopAnalyzer,
		analyzers.NoOsExitMainAnalyzer,
	)
}
