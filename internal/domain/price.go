package domain

import (
	"encoding/json"
	"fmt"
	"math"
)

// RawRecord is one day of raw OHLCV data for a single symbol, as produced
// by the ingestion layer. Any price field (and volume) may be absent.
type RawRecord struct {
	Date   string
	Volume *float64
	Low    *float64
	High   *float64
	Open   *float64
	Close  *float64
}

// The price file stores each record as a 6-tuple
// [date, volume, low, high, open, close], with null for absent values.

func (r RawRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal([]interface{}{r.Date, r.Volume, r.Low, r.High, r.Open, r.Close})
}

func (r *RawRecord) UnmarshalJSON(b []byte) error {
	fields := []*json.RawMessage{}
	if err := json.Unmarshal(b, &fields); err != nil {
		return fmt.Errorf("failed to parse price record: %w", err)
	}
	if len(fields) != 6 {
		return fmt.Errorf("price record has %d fields, want 6", len(fields))
	}
	if fields[0] == nil {
		return fmt.Errorf("price record has no date")
	}
	if err := json.Unmarshal(*fields[0], &r.Date); err != nil {
		return fmt.Errorf("failed to parse price record date: %w", err)
	}
	targets := []**float64{&r.Volume, &r.Low, &r.High, &r.Open, &r.Close}
	for i, target := range targets {
		if fields[i+1] == nil {
			continue
		}
		value := new(float64)
		if err := json.Unmarshal(*fields[i+1], value); err != nil {
			return fmt.Errorf("failed to parse price record field %d: %w", i+1, err)
		}
		*target = value
	}
	return nil
}

// PriceMatrix is a dense [date id][symbol id] table of prices. A NaN cell
// means the symbol was not tradable that day. Column 0 belongs to cash and
// is never populated; cash is always worth exactly 1.
type PriceMatrix [][]float64

func NewPriceMatrix(dates, symbols int) PriceMatrix {
	m := make(PriceMatrix, dates)
	for i := range m {
		row := make([]float64, symbols)
		for j := range row {
			row[j] = math.NaN()
		}
		m[i] = row
	}
	return m
}

// At returns the price at a cell and whether it is defined.
func (m PriceMatrix) At(dateID, symbolID int) (float64, bool) {
	p := m[dateID][symbolID]
	return p, !math.IsNaN(p)
}

func (m PriceMatrix) Dates() int { return len(m) }

func (m PriceMatrix) Symbols() int {
	if len(m) == 0 {
		return 0
	}
	return len(m[0])
}
