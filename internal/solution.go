package internal

import (
	"hindsight/internal/domain"
)

// RestoreSolution walks the predecessor links backward from the cash cell
// of the final date and returns the holding for every evening from date 1
// onward, in chronological order. The sequence always ends denominated in
// cash: the optimum the caller cares about is BestQuantity[D-1][cash], and
// the predecessor chain stored there is what reaches it.
func RestoreSolution(state domain.DPState) domain.Solution {
	dates := len(state.BestMove)

	heldID := domain.CashSymbolID
	solution := make(domain.Solution, 0, dates-1)
	for dateID := dates - 1; dateID >= 1; dateID-- {
		solution = append(solution, domain.HoldingFromID(heldID))
		heldID = state.BestMove[dateID][heldID]
	}

	for i, j := 0, len(solution)-1; i < j; i, j = i+1, j-1 {
		solution[i], solution[j] = solution[j], solution[i]
	}
	return solution
}

// VerifySolution replays the solution from the starting cash, trading only
// when the holding changes: cash to asset divides by that day's buy price,
// asset to cash multiplies by that day's sell price. It reports whether the
// replayed terminal cash exactly equals the optimizer's claimed optimum.
//
// This is a guard against reconstruction bugs, not a tolerance check. The
// replay multiplies the same prices in the same chronological order the DP
// used, so a correct solution reproduces the optimum bit for bit; any
// mismatch is a logic defect, not rounding.
func VerifySolution(solution domain.Solution, state domain.DPState, sellPrices, buyPrices domain.PriceMatrix, initialCash float64) bool {
	currentQuantity := initialCash
	held := domain.Cash()

	for i, next := range solution {
		// The solution omits date 0, when the portfolio is all cash.
		dateID := i + 1

		if next == held {
			continue
		}
		if held.IsCash() {
			currentQuantity = currentQuantity / buyPrices[dateID][next.ID()]
		} else {
			currentQuantity = currentQuantity * sellPrices[dateID][held.ID()]
		}
		held = next
	}

	return state.FinalCash() == currentQuantity
}
