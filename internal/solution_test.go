package internal

import (
	"hindsight/internal/domain"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func Test_RestoreSolution(t *testing.T) {
	t.Run("buy then sell", func(t *testing.T) {
		sell, buy := matrices(3, 2)
		buy[1][1] = 10
		sell[2][1] = 20

		out, err := Optimize(OptimizeInput{SellPrices: sell, BuyPrices: buy, InitialCash: 1000})
		require.NoError(t, err)

		solution := RestoreSolution(out.State)
		require.Len(t, solution, 2)
		require.Equal(t, "", cmp.Diff(
			domain.Solution{domain.Asset(1), domain.Cash()},
			solution,
			cmp.AllowUnexported(domain.Holding{}),
		))
		require.Equal(t, 2, solution.Trades())
	})

	t.Run("length is always date count minus one", func(t *testing.T) {
		for _, dates := range []int{2, 5, 30} {
			sell, buy := matrices(dates, 3)
			out, err := Optimize(OptimizeInput{SellPrices: sell, BuyPrices: buy, InitialCash: 1000})
			require.NoError(t, err)
			require.Len(t, RestoreSolution(out.State), dates-1)
		}
	})

	t.Run("nothing tradable means holding cash throughout", func(t *testing.T) {
		sell, buy := matrices(4, 2)
		out, err := Optimize(OptimizeInput{SellPrices: sell, BuyPrices: buy, InitialCash: 1000})
		require.NoError(t, err)

		solution := RestoreSolution(out.State)
		for _, holding := range solution {
			require.True(t, holding.IsCash())
		}
		require.Equal(t, 0, solution.Trades())
	})
}

func Test_VerifySolution(t *testing.T) {
	sell, buy := matrices(5, 3)
	buy[1][1] = 10
	sell[2][1] = 15
	buy[3][2] = 5
	sell[4][2] = 20

	out, err := Optimize(OptimizeInput{SellPrices: sell, BuyPrices: buy, InitialCash: 1000})
	require.NoError(t, err)
	solution := RestoreSolution(out.State)

	t.Run("reconstructed solution always verifies", func(t *testing.T) {
		require.True(t, VerifySolution(solution, out.State, sell, buy, 1000))
	})

	t.Run("tampered solution fails", func(t *testing.T) {
		tampered := make(domain.Solution, len(solution))
		copy(tampered, solution)
		// skip the second round trip entirely
		tampered[2] = domain.Cash()
		tampered[3] = domain.Cash()
		require.False(t, VerifySolution(tampered, out.State, sell, buy, 1000))
	})

	t.Run("wrong starting cash fails", func(t *testing.T) {
		require.False(t, VerifySolution(solution, out.State, sell, buy, 999))
	})
}
