package noclock_test

import (
	"testing"

	"github.com/rotaboard/rotaboard/tools/linters/noclock"
	"golang.org/x/tools/go/analysis/analysistest"
)

func TestAnalyzer(t *testing.T) {
	if err := noclock.Analyzer.Flags.Set("packages", "a"); err != nil {
		t.Fatalf("failed to set packages flag: %v", err)
	}
	testdata := analysistest.TestData()
	analysistest.Run(t, testdata, noclock.Analyzer, "a")
}
