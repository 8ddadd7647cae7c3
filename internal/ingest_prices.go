package internal

import (
	"fmt"
	"hindsight/internal/domain"
	"hindsight/internal/repository"
	"hindsight/internal/util"
	"time"

	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// IngestPrices fetches daily bars for one symbol and returns them as raw
// records in the shape the sanitizer consumes.
func IngestPrices(symbol string, start, end time.Time) ([]domain.RawRecord, error) {
	params := &chart.Params{
		Start:    datetime.New(&start),
		End:      datetime.New(&end),
		Symbol:   symbol,
		Interval: datetime.OneDay,
	}
	iter := chart.Get(params)

	records := []domain.RawRecord{}
	for iter.Next() {
		bar := iter.Bar()
		records = append(records, domain.RawRecord{
			Date:   util.FormatDate(time.Unix(int64(bar.Timestamp), 0).UTC()),
			Volume: floatPtr(float64(bar.Volume)),
			Low:    decimalPtr(bar.Low),
			High:   decimalPtr(bar.High),
			Open:   decimalPtr(bar.Open),
			Close:  decimalPtr(bar.Close),
		})
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to get prices for %s: %w", symbol, err)
	}

	return records, nil
}

// UpdateStoredPrices ingests all given symbols into the price store,
// replacing whatever each symbol held before. Symbols that fail to fetch
// are skipped and counted, so one delisted ticker cannot abort a batch.
func UpdateStoredPrices(
	symbols []string,
	start, end time.Time,
	priceRepository repository.PriceRepository,
	log *zap.SugaredLogger,
) error {
	if len(symbols) == 0 {
		return fmt.Errorf("no symbols to ingest")
	}

	prices, err := priceRepository.Load()
	if err != nil {
		// A missing store is fine on first ingest.
		prices = map[string][]domain.RawRecord{}
	}

	errors := []error{}
	for _, symbol := range symbols {
		records, err := IngestPrices(symbol, start, end)
		if err != nil {
			log.Warnw("failed to ingest prices", "symbol", symbol, "error", err)
			errors = append(errors, err)
			continue
		}
		prices[symbol] = records
		log.Infow("ingested prices", "symbol", symbol, "records", len(records))
	}

	if err := priceRepository.Save(prices); err != nil {
		return err
	}

	if len(errors) > 0 {
		return fmt.Errorf("failed to ingest %d/%d symbols. first err: %w", len(errors), len(symbols), errors[0])
	}
	return nil
}

func floatPtr(f float64) *float64 { return &f }

func decimalPtr(d decimal.Decimal) *float64 {
	f := d.InexactFloat64()
	return &f
}
