package domain

// Holding is what the portfolio consists of on a given evening: either cash
// or a single asset. It is the boundary representation of the dense symbol
// ids used inside the matrices; the translation is lossless both ways.
type Holding struct {
	symbolID int
}

func Cash() Holding { return Holding{symbolID: CashSymbolID} }

func Asset(symbolID int) Holding { return Holding{symbolID: symbolID} }

func HoldingFromID(symbolID int) Holding { return Holding{symbolID: symbolID} }

func (h Holding) IsCash() bool { return h.symbolID == CashSymbolID }

func (h Holding) ID() int { return h.symbolID }

// Solution is the holding on each evening from the second date of the
// window onward, in chronological order. The first date is omitted; the
// portfolio is all cash that evening by construction.
type Solution []Holding

// Trades counts the transitions in the solution, i.e. the days on which the
// holding actually changes.
func (s Solution) Trades() int {
	held := Cash()
	trades := 0
	for _, h := range s {
		if h != held {
			trades++
			held = h
		}
	}
	return trades
}

// DPState is the full dynamic-programming table for one run.
//
// BestQuantity[date][symbol] is the maximum quantity of that symbol the
// portfolio can hold by that evening. BestMove[date][symbol] is the symbol
// that must have been held the previous evening to reach that quantity;
// it implicitly encodes the action taken. NoMove marks date 0, which never
// has a predecessor.
type DPState struct {
	BestQuantity [][]float64
	BestMove     [][]int
}

// NoMove is the predecessor value for cells with no recorded move.
const NoMove = -1

func NewDPState(dates, symbols int) DPState {
	st := DPState{
		BestQuantity: make([][]float64, dates),
		BestMove:     make([][]int, dates),
	}
	for i := 0; i < dates; i++ {
		st.BestQuantity[i] = make([]float64, symbols)
		moves := make([]int, symbols)
		for j := range moves {
			moves[j] = NoMove
		}
		st.BestMove[i] = moves
	}
	return st
}

// FinalCash is the optimum: the cash quantity reachable by the evening of
// the last date.
func (st DPState) FinalCash() float64 {
	return st.BestQuantity[len(st.BestQuantity)-1][CashSymbolID]
}
