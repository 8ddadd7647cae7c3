package app

import (
	"context"
	"hindsight/internal/domain"
	"hindsight/internal/util"
	"testing"

	"github.com/stretchr/testify/require"
)

func floatPtr(f float64) *float64 { return &f }

func record(date string, volume, low, high, open, close float64) domain.RawRecord {
	return domain.RawRecord{
		Date:   date,
		Volume: floatPtr(volume),
		Low:    floatPtr(low),
		High:   floatPtr(high),
		Open:   floatPtr(open),
		Close:  floatPtr(close),
	}
}

func Test_Run(t *testing.T) {
	ctx := context.Background()
	handler := OptimizeHandler{}

	t.Run("full pipeline doubles the cash and verifies", func(t *testing.T) {
		result, err := handler.Run(ctx, RunInput{
			DailyPrices: map[string][]domain.RawRecord{
				"AAPL": {
					record("2018-01-02", 50000, 10, 12, 10, 11),
					record("2018-01-03", 50000, 18, 20, 18, 19),
				},
			},
			Start:       util.NewDate(2018, 1, 1),
			End:         util.NewDate(2018, 1, 4),
			InitialCash: 1000,
		})
		require.NoError(t, err)

		require.True(t, result.Verified)
		require.Equal(t, 2000.0, result.FinalCash)
		require.Equal(t, 2, result.Trades)
		require.Len(t, result.Solution, 2)
		require.Contains(t, result.Report, "buy AAPL")
	})

	t.Run("initial cash defaults to 1000", func(t *testing.T) {
		result, err := handler.Run(ctx, RunInput{
			DailyPrices: map[string][]domain.RawRecord{
				"AAPL": {record("2018-01-02", 50000, 10, 12, 10, 11)},
			},
			Start: util.NewDate(2018, 1, 1),
			End:   util.NewDate(2018, 1, 4),
		})
		require.NoError(t, err)
		require.True(t, result.Verified)
		// 1000 cash buys 100 units at 10; nothing sellable afterwards, so
		// the terminal cash is the untouched default
		require.Equal(t, 1000.0, result.FinalCash)
	})

	t.Run("floor blocks purchase of a cheap symbol", func(t *testing.T) {
		prices := map[string][]domain.RawRecord{
			"PENNY": {
				record("2018-01-02", 50000, 2, 3, 2, 2.5),
				record("2018-01-03", 50000, 8, 9, 8, 8.5),
			},
		}

		unfloored, err := handler.Run(ctx, RunInput{
			DailyPrices: prices,
			Start:       util.NewDate(2018, 1, 1),
			End:         util.NewDate(2018, 1, 4),
			InitialCash: 1000,
		})
		require.NoError(t, err)
		require.True(t, unfloored.Verified)
		require.Equal(t, 4500.0, unfloored.FinalCash) // 1000/2 * 9

		floored, err := handler.Run(ctx, RunInput{
			DailyPrices: prices,
			Start:       util.NewDate(2018, 1, 1),
			End:         util.NewDate(2018, 1, 4),
			InitialCash: 1000,
			MinBuyPrice: 5,
		})
		require.NoError(t, err)
		require.True(t, floored.Verified)
		require.Equal(t, 1000.0, floored.FinalCash)
		require.Equal(t, 1, floored.Counters.ForbiddenToBuy)
	})

	t.Run("floor never blocks selling a position already held", func(t *testing.T) {
		// buyable above the floor on day one, dips below it later; the dip
		// floors the later buy price but the sell side stays open
		result, err := handler.Run(ctx, RunInput{
			DailyPrices: map[string][]domain.RawRecord{
				"DIPPY": {
					record("2018-01-02", 50000, 6, 7, 6, 6.5),
					record("2018-01-03", 50000, 3, 4, 3, 3.5),
				},
			},
			Start:       util.NewDate(2018, 1, 1),
			End:         util.NewDate(2018, 1, 4),
			InitialCash: 1000,
			MinBuyPrice: 5,
		})
		require.NoError(t, err)
		require.True(t, result.Verified)
		require.Equal(t, 1, result.Counters.ForbiddenToBuy)

		// holding the cash is optimal here, but the sell price must have
		// survived sanitization untouched
		dippy, ok := result.Symbols.ID("DIPPY")
		require.True(t, ok)
		sell, tradable := result.SellPrices.At(2, dippy)
		require.True(t, tradable)
		require.Equal(t, 4.0, sell)
		buy, tradable := result.BuyPrices.At(2, dippy)
		require.True(t, tradable)
		require.Equal(t, 1e9, buy)
	})

	t.Run("allow-list restricts the universe", func(t *testing.T) {
		result, err := handler.Run(ctx, RunInput{
			DailyPrices: map[string][]domain.RawRecord{
				"AAPL": {
					record("2018-01-02", 50000, 10, 12, 10, 11),
					record("2018-01-03", 50000, 18, 20, 18, 19),
				},
				"MOON": {
					record("2018-01-02", 50000, 1, 1.5, 1, 1.2),
					record("2018-01-03", 50000, 8, 9, 8, 8.5),
				},
			},
			Start:          util.NewDate(2018, 1, 1),
			End:            util.NewDate(2018, 1, 4),
			InitialCash:    1000,
			AllowedSymbols: map[string]bool{"AAPL": true},
		})
		require.NoError(t, err)

		require.True(t, result.Verified)
		require.Equal(t, 1, result.Counters.SymbolsExcluded)
		// MOON's 9x day is gone; only AAPL's double remains
		require.Equal(t, 2000.0, result.FinalCash)
	})

	t.Run("every run verifies", func(t *testing.T) {
		// a denser fixture with competing symbols, dropped records and
		// untradable gaps; whatever the optimum is, replaying the
		// reconstruction must reproduce it exactly
		result, err := handler.Run(ctx, RunInput{
			DailyPrices: map[string][]domain.RawRecord{
				"AAA": {
					record("2018-01-01", 90000, 10, 11, 10, 10.5),
					record("2018-01-02", 80000, 11, 14, 12, 13),
					record("2018-01-04", 70000, 13, 15, 14, 14.5),
					record("2018-01-06", 60000, 9, 10, 9.5, 9.8),
				},
				"BBB": {
					record("2018-01-02", 500, 1, 2, 1, 1.5), // illiquid
					record("2018-01-03", 90000, 2, 3, 2, 2.5),
					record("2018-01-05", 90000, 7, 8, 7, 7.5),
				},
				"CCC": {
					record("2018-01-03", 90000, 40, 40, 40, 40), // flat
					record("2018-01-04", 90000, 4, 50, 10, 20),  // jump
					record("2018-01-05", 90000, 20, 24, 21, 23),
				},
			},
			Start:       util.NewDate(2018, 1, 1),
			End:         util.NewDate(2018, 1, 8),
			InitialCash: 1000,
		})
		require.NoError(t, err)

		require.True(t, result.Verified)
		require.Equal(t, 1, result.Counters.LowVolume)
		require.Equal(t, 1, result.Counters.FlatPrice)
		require.Equal(t, 1, result.Counters.PriceJump)
		require.Len(t, result.Solution, 6)

		// terminal cash can only improve on the starting cash
		require.GreaterOrEqual(t, result.FinalCash, 1000.0)
	})

	t.Run("configuration errors surface before computation", func(t *testing.T) {
		_, err := handler.Run(ctx, RunInput{
			DailyPrices: map[string][]domain.RawRecord{},
			Start:       util.NewDate(2018, 1, 4),
			End:         util.NewDate(2018, 1, 1),
		})
		require.Error(t, err)
	})
}
