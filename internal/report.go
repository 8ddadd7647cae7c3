package internal

import (
	"fmt"
	"hindsight/internal/calculator"
	"hindsight/internal/domain"
	"strings"
)

type ReportInput struct {
	Solution    domain.Solution
	State       domain.DPState
	SellPrices  domain.PriceMatrix
	BuyPrices   domain.PriceMatrix
	Symbols     domain.SymbolIndex
	Dates       domain.DateIndex
	InitialCash float64
}

// RenderReport renders the solved run as a narrative: the terminal cash and
// run-level returns, then one line per executed trade, with the holding
// period return attached to each sell. It is purely a rendering layer over
// numbers the optimizer already produced.
func RenderReport(in ReportInput) string {
	bestCash := in.State.FinalCash()

	var sb strings.Builder
	fmt.Fprintf(&sb, "cash in the end (scientific): %.2g\n", bestCash)
	fmt.Fprintf(&sb, "cash in the end (full number): %.2f\n", bestCash)

	overallROI, dailyROI := calculator.ReturnOnInvestment(bestCash, in.InitialCash, 365)
	fmt.Fprintf(&sb, "ROI %.2g%%, daily %.2f%%\n\n", overallROI*100, dailyROI*100)

	currentQuantity := in.InitialCash
	held := domain.Cash()
	boughtAtPrice := 0.0
	boughtAtDateID := 0

	for i, next := range in.Solution {
		// The solution omits date 0, when the portfolio is all cash.
		dateID := i + 1
		date := in.Dates.Date(dateID)

		if next == held {
			continue
		}

		if held.IsCash() {
			price := in.BuyPrices[dateID][next.ID()]
			currentQuantity = currentQuantity / price
			boughtAtPrice = price
			boughtAtDateID = dateID

			fmt.Fprintf(&sb, "%s buy %s @ %v\n", date, in.Symbols.Symbol(next.ID()), price)
		} else {
			price := in.SellPrices[dateID][held.ID()]
			currentQuantity = currentQuantity * price

			overall, daily := calculator.ReturnOnInvestment(price, boughtAtPrice, dateID-boughtAtDateID)
			fmt.Fprintf(&sb, "%s sell %s @ %v => $%.2g, ROI %.2f%%, daily %.2f%%\n",
				date, in.Symbols.Symbol(held.ID()), price, currentQuantity, overall*100, daily*100)
		}
		held = next
	}

	if metrics, err := calculator.CalculateRunMetrics(realizedCashSeries(in.State)); err == nil {
		fmt.Fprintf(&sb, "\nannualized return %.2f%%, annualized stdev %.2f%%, sharpe %.2f\n",
			metrics.AnnualizedReturn*100, metrics.AnnualizedStdev*100, metrics.SharpeRatio)
	}

	return sb.String()
}

// realizedCashSeries is the cash row of the DP table in date order. It is
// non-decreasing by the hold rule.
func realizedCashSeries(state domain.DPState) []float64 {
	series := make([]float64, len(state.BestQuantity))
	for dateID, row := range state.BestQuantity {
		series[dateID] = row[domain.CashSymbolID]
	}
	return series
}
