package analyzers

import (
	"testing"

	"golang.org/x/tools/go/analysis/analysistest"
)

func TestTickerStopAnalyzer(t *testing.T) {
	analysistest.Run(t, analysistest.TestData(), TickerStopAnalyzer, "a")
}

func TestNoOsExitMainAnalyzer(t *testing.T) {
	analysistest.Run(t, analysistest.TestData(), NoOsExitMainAnalyzer, "b")
}
