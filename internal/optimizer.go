package internal

import (
	"fmt"
	"hindsight/internal/domain"
)

type OptimizeInput struct {
	SellPrices  domain.PriceMatrix
	BuyPrices   domain.PriceMatrix
	InitialCash float64
}

type OptimizeResponse struct {
	State domain.DPState
}

// Optimize runs the exact dynamic program over the price matrices.
//
// BestQuantity[d][s] is the maximum quantity of s reachable by the evening
// of date d under the one-holding-at-a-time rule, relaxed Bellman-style
// against date d-1 only: hold what was held, sell s into cash at that day's
// sell price, or buy s with cash at that day's buy price. Updates use
// strict >, so on ties the first established move wins. The result is the
// true optimum, not an estimate.
func Optimize(in OptimizeInput) (*OptimizeResponse, error) {
	if in.InitialCash <= 0 {
		return nil, ConfigurationError{Detail: fmt.Sprintf("initial cash must be positive, got %v", in.InitialCash)}
	}
	dates := in.SellPrices.Dates()
	symbols := in.SellPrices.Symbols()
	if dates == 0 || symbols == 0 {
		return nil, ConfigurationError{Detail: "cannot optimize over empty price matrices"}
	}
	if in.BuyPrices.Dates() != dates || in.BuyPrices.Symbols() != symbols {
		return nil, fmt.Errorf("sell matrix is %dx%d but buy matrix is %dx%d",
			dates, symbols, in.BuyPrices.Dates(), in.BuyPrices.Symbols())
	}

	state := domain.NewDPState(dates, symbols)

	// On the evening of the first date the portfolio is just the starting
	// cash. Date 0 never records a move.
	state.BestQuantity[0][domain.CashSymbolID] = in.InitialCash

	for dateID := 1; dateID < dates; dateID++ {
		// Holding is always legal, so yesterday's quantities carry over as
		// the default before any trade is considered.
		for symbolID := 0; symbolID < symbols; symbolID++ {
			state.BestQuantity[dateID][symbolID] = state.BestQuantity[dateID-1][symbolID]
			state.BestMove[dateID][symbolID] = symbolID
		}

		// All reads below are against date-1 state, so symbol order within
		// a date does not matter. The cash cell alone may improve several
		// times in one date, once per selling symbol; only the best sticks.
		for symbolID := 1; symbolID < symbols; symbolID++ {
			if sellPrice, ok := in.SellPrices.At(dateID, symbolID); ok {
				proceeds := state.BestQuantity[dateID-1][symbolID] * sellPrice
				if proceeds > state.BestQuantity[dateID][domain.CashSymbolID] {
					state.BestQuantity[dateID][domain.CashSymbolID] = proceeds
					state.BestMove[dateID][domain.CashSymbolID] = symbolID
				}
			}

			if buyPrice, ok := in.BuyPrices.At(dateID, symbolID); ok {
				quantityBought := state.BestQuantity[dateID-1][domain.CashSymbolID] / buyPrice
				if quantityBought > state.BestQuantity[dateID][symbolID] {
					state.BestQuantity[dateID][symbolID] = quantityBought
					state.BestMove[dateID][symbolID] = domain.CashSymbolID
				}
			}
		}
	}

	return &OptimizeResponse{State: state}, nil
}
