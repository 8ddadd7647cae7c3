package domain

import (
	"fmt"
	"time"
)

const (
	// CashSymbolID is the reserved column for cash in every matrix.
	CashSymbolID = 0
	CashSymbol   = "USD_cash"
)

// SymbolIndex maps symbols to matrix column ids and back. Id 0 is always
// cash; cash never goes through data-quality filtering.
type SymbolIndex struct {
	toID []string
	ids  map[string]int
}

func NewSymbolIndex(symbols []string) SymbolIndex {
	idx := SymbolIndex{
		toID: []string{CashSymbol},
		ids:  map[string]int{CashSymbol: CashSymbolID},
	}
	for _, s := range symbols {
		if _, ok := idx.ids[s]; ok {
			continue
		}
		idx.ids[s] = len(idx.toID)
		idx.toID = append(idx.toID, s)
	}
	return idx
}

func (idx SymbolIndex) ID(symbol string) (int, bool) {
	id, ok := idx.ids[symbol]
	return id, ok
}

func (idx SymbolIndex) Symbol(id int) string { return idx.toID[id] }

// Len includes the cash column.
func (idx SymbolIndex) Len() int { return len(idx.toID) }

// DateIndex maps ISO dates to contiguous row ids covering exactly
// [start, end), one id per calendar day.
type DateIndex struct {
	toID []string
	ids  map[string]int
}

const dateLayout = "2006-01-02"

func NewDateIndex(start, end time.Time) DateIndex {
	idx := DateIndex{ids: map[string]int{}}
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		s := d.Format(dateLayout)
		idx.ids[s] = len(idx.toID)
		idx.toID = append(idx.toID, s)
	}
	return idx
}

func (idx DateIndex) ID(date string) (int, bool) {
	id, ok := idx.ids[date]
	return id, ok
}

func (idx DateIndex) Date(id int) string { return idx.toID[id] }

func (idx DateIndex) Len() int { return len(idx.toID) }

func (idx DateIndex) String() string {
	if len(idx.toID) == 0 {
		return "empty date range"
	}
	return fmt.Sprintf("[%s, %s]", idx.toID[0], idx.toID[len(idx.toID)-1])
}
