package internal

import (
	"fmt"
	"hindsight/internal/domain"
	"hindsight/internal/util"
	"sort"
	"time"
)

const (
	// forbiddenBuyPrice replaces buy prices below the configured floor.
	// It is finite on purpose: dividing cash by it yields a negligible
	// candidate quantity that loses every strict comparison, instead of a
	// NaN/Inf that would poison later ones.
	forbiddenBuyPrice = 1e9

	maxIntradayRatio  = 10.0
	minTradableVolume = 1000.0
)

type SanitizeInput struct {
	// DailyPrices maps each symbol to its raw daily records.
	DailyPrices map[string][]domain.RawRecord
	// Window is [Start, End).
	Start time.Time
	End   time.Time
	// MinBuyPrice forbids purchasing below this price. Zero means no floor.
	// The floor restricts purchase only, never disposal.
	MinBuyPrice float64
	// AllowedSymbols, when non-nil, excludes every symbol not in the set.
	AllowedSymbols map[string]bool
}

type SanitizeResponse struct {
	SellPrices domain.PriceMatrix
	BuyPrices  domain.PriceMatrix
	Symbols    domain.SymbolIndex
	Dates      domain.DateIndex
	Counters   DropCounters
}

// DropCounters reports how much data the quality filters removed. Drops are
// recovered automatically and never abort a run; the counters exist so a
// caller can notice when too much data is being thrown away.
type DropCounters struct {
	TotalSymbols    int `json:"totalSymbols"`
	SymbolsExcluded int `json:"symbolsExcluded"`
	TotalRecords    int `json:"totalRecords"`
	MissingPrice    int `json:"missingPrice"`
	FlatPrice       int `json:"flatPrice"`
	PriceJump       int `json:"priceJump"`
	LowVolume       int `json:"lowVolume"`
	ForbiddenToBuy  int `json:"forbiddenToBuy"`
}

func (c DropCounters) RecordsDropped() int {
	return c.MissingPrice + c.FlatPrice + c.PriceJump + c.LowVolume
}

// Sanitize turns raw per-symbol daily records into the best-case sell/buy
// matrices the optimizer runs on, plus the symbol/date index mappings.
//
// Every symbol in the input gets a column, excluded or not, so column ids
// are stable regardless of filtering. Records surviving the quality filters
// contribute sell = max(low, high, open, close) and buy = min of the same,
// the optimistic best-case fill in both directions.
func Sanitize(in SanitizeInput) (*SanitizeResponse, error) {
	if !in.Start.Before(in.End) {
		return nil, ConfigurationError{Detail: fmt.Sprintf(
			"empty date window [%s, %s)", util.FormatDate(in.Start), util.FormatDate(in.End))}
	}
	if in.AllowedSymbols != nil {
		known := 0
		for s := range in.AllowedSymbols {
			if _, ok := in.DailyPrices[s]; ok {
				known++
			}
		}
		if known == 0 {
			return nil, ConfigurationError{Detail: "allow-list matches no known symbol"}
		}
	}

	symbols := make([]string, 0, len(in.DailyPrices))
	for s := range in.DailyPrices {
		symbols = append(symbols, s)
	}
	sort.Strings(symbols)

	symbolIndex := domain.NewSymbolIndex(symbols)
	dateIndex := domain.NewDateIndex(in.Start, in.End)

	sellPrices := domain.NewPriceMatrix(dateIndex.Len(), symbolIndex.Len())
	buyPrices := domain.NewPriceMatrix(dateIndex.Len(), symbolIndex.Len())

	counters := DropCounters{TotalSymbols: len(symbols)}

	for _, symbol := range symbols {
		if in.AllowedSymbols != nil && !in.AllowedSymbols[symbol] {
			counters.SymbolsExcluded++
			continue
		}
		symbolID, _ := symbolIndex.ID(symbol)

		for _, record := range in.DailyPrices[symbol] {
			counters.TotalRecords++

			dateID, err := resolveDate(symbol, record.Date, dateIndex)
			if err != nil {
				return nil, err
			}

			// Each filter stands on its own and short-circuits the record.
			if record.Low == nil || record.High == nil || record.Open == nil || record.Close == nil {
				counters.MissingPrice++
				continue
			}
			prices := []float64{*record.Low, *record.High, *record.Open, *record.Close}
			lo, hi := minMax(prices)
			if lo == hi {
				counters.FlatPrice++
				continue
			}
			if hi/lo > maxIntradayRatio {
				counters.PriceJump++
				continue
			}
			if record.Volume == nil || *record.Volume <= minTradableVolume {
				counters.LowVolume++
				continue
			}

			sellPrices[dateID][symbolID] = hi
			buyPrices[dateID][symbolID] = lo
			if lo < in.MinBuyPrice {
				counters.ForbiddenToBuy++
				buyPrices[dateID][symbolID] = forbiddenBuyPrice
			}
		}
	}

	return &SanitizeResponse{
		SellPrices: sellPrices,
		BuyPrices:  buyPrices,
		Symbols:    symbolIndex,
		Dates:      dateIndex,
		Counters:   counters,
	}, nil
}

func resolveDate(symbol, date string, dates domain.DateIndex) (int, error) {
	if _, err := util.ParseDate(date); err != nil {
		return 0, DataFormatError{Symbol: symbol, Detail: fmt.Sprintf("unparseable date %q", date)}
	}
	dateID, ok := dates.ID(date)
	if !ok {
		return 0, DataFormatError{Symbol: symbol, Detail: fmt.Sprintf("date %s outside window %s", date, dates)}
	}
	return dateID, nil
}

func minMax(values []float64) (float64, float64) {
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}
