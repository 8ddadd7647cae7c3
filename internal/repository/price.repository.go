package repository

import (
	"encoding/json"
	"fmt"
	"hindsight/internal/domain"
	"os"

	"github.com/gocarina/gocsv"
)

// PriceRepository is the file-backed store of raw daily prices, keyed by
// symbol. The file layout is the one the downloader produces: a JSON object
// mapping each symbol to its list of record tuples.
type PriceRepository interface {
	Load() (map[string][]domain.RawRecord, error)
	Save(prices map[string][]domain.RawRecord) error
}

type priceRepositoryHandler struct {
	Filepath string
}

func NewPriceRepository(filepath string) PriceRepository {
	return priceRepositoryHandler{Filepath: filepath}
}

func (h priceRepositoryHandler) Load() (map[string][]domain.RawRecord, error) {
	contents, err := os.ReadFile(h.Filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read price file %s: %w", h.Filepath, err)
	}

	prices := map[string][]domain.RawRecord{}
	if err := json.Unmarshal(contents, &prices); err != nil {
		return nil, fmt.Errorf("failed to parse price file %s: %w", h.Filepath, err)
	}

	return prices, nil
}

func (h priceRepositoryHandler) Save(prices map[string][]domain.RawRecord) error {
	contents, err := json.Marshal(prices)
	if err != nil {
		return fmt.Errorf("failed to serialize prices: %w", err)
	}
	if err := os.WriteFile(h.Filepath, contents, 0644); err != nil {
		return fmt.Errorf("failed to write price file %s: %w", h.Filepath, err)
	}
	return nil
}

type constituentRow struct {
	Symbol string `csv:"Symbol"`
	Name   string `csv:"Name"`
	Sector string `csv:"Sector"`
}

// LoadConstituents reads an index constituents csv (e.g. the S&P 500 list)
// and returns its symbols as an allow-list set.
func LoadConstituents(filepath string) (map[string]bool, error) {
	f, err := os.Open(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to open constituents file %s: %w", filepath, err)
	}
	defer f.Close()

	rows := []constituentRow{}
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse constituents file %s: %w", filepath, err)
	}

	allowed := map[string]bool{}
	for _, row := range rows {
		allowed[row.Symbol] = true
	}
	return allowed, nil
}
