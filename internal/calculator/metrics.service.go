package calculator

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
)

// ReturnOnInvestment converts a start/end value pair into the overall
// return and the day-compounded return over the given number of days.
// Ratios, not percentages.
func ReturnOnInvestment(valueNow, initialValue float64, days int) (overall, daily float64) {
	overall = (valueNow - initialValue) / initialValue
	daily = math.Pow(overall+1, 1/float64(days)) - 1
	return overall, daily
}

type RunMetrics struct {
	AnnualizedReturn float64
	AnnualizedStdev  float64
	SharpeRatio      float64
}

// CalculateRunMetrics computes volatility metrics over the realized cash
// series of a run, one value per date. Dates on which no cash was realized
// yet (value still zero) are skipped; the stdev is taken over day-to-day
// returns of the remainder and annualized assuming 252 trading days.
func CalculateRunMetrics(cashByDate []float64) (*RunMetrics, error) {
	returns := []float64{}
	for i := 1; i < len(cashByDate); i++ {
		if cashByDate[i-1] <= 0 {
			continue
		}
		returns = append(returns, (cashByDate[i]-cashByDate[i-1])/cashByDate[i-1])
	}
	if len(returns) < 2 {
		return nil, fmt.Errorf("cannot calculate metrics on < 2 daily returns")
	}

	stdev, err := stats.StandardDeviationSample(returns)
	if err != nil {
		return nil, err
	}
	annualizedStdev := stdev * math.Sqrt(252)

	startValue := firstPositive(cashByDate)
	endValue := cashByDate[len(cashByDate)-1]
	numYears := float64(len(cashByDate)) / 365
	annualizedReturn := math.Pow(endValue/startValue, 1/numYears) - 1

	metrics := &RunMetrics{
		AnnualizedReturn: annualizedReturn,
		AnnualizedStdev:  annualizedStdev,
	}
	if stdev > 0 {
		metrics.SharpeRatio = annualizedReturn / stdev
	}
	return metrics, nil
}

func firstPositive(values []float64) float64 {
	for _, v := range values {
		if v > 0 {
			return v
		}
	}
	return math.NaN()
}
