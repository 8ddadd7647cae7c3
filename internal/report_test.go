package internal

import (
	"hindsight/internal/domain"
	"hindsight/internal/util"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_RenderReport(t *testing.T) {
	start := util.NewDate(2018, 1, 1)
	end := util.NewDate(2018, 1, 6)

	sanitized, err := Sanitize(SanitizeInput{
		DailyPrices: map[string][]domain.RawRecord{
			"AAPL": {
				record("2018-01-02", 50000, 10, 12, 10, 11),
				record("2018-01-04", 50000, 18, 20, 18, 19),
			},
		},
		Start: start,
		End:   end,
	})
	require.NoError(t, err)

	optimized, err := Optimize(OptimizeInput{
		SellPrices:  sanitized.SellPrices,
		BuyPrices:   sanitized.BuyPrices,
		InitialCash: 1000,
	})
	require.NoError(t, err)
	solution := RestoreSolution(optimized.State)

	report := RenderReport(ReportInput{
		Solution:    solution,
		State:       optimized.State,
		SellPrices:  sanitized.SellPrices,
		BuyPrices:   sanitized.BuyPrices,
		Symbols:     sanitized.Symbols,
		Dates:       sanitized.Dates,
		InitialCash: 1000,
	})

	// buy at the day's low, sell at the other day's high
	require.Contains(t, report, "2018-01-02 buy AAPL @ 10")
	require.Contains(t, report, "2018-01-04 sell AAPL @ 20")
	require.Contains(t, report, "cash in the end (full number): 2000.00")
	require.Contains(t, report, "ROI")

	t.Run("reported final cash agrees with the verifier", func(t *testing.T) {
		require.True(t, VerifySolution(solution, optimized.State, sanitized.SellPrices, sanitized.BuyPrices, 1000))

		// the headline number is the DP's terminal cash, nothing recomputed
		line, _, found := strings.Cut(report, "\n")
		require.True(t, found)
		require.Contains(t, line, "2e+03")
	})
}
