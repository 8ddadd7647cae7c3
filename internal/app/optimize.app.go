package app

import (
	"context"
	"fmt"
	"hindsight/internal"
	"hindsight/internal/domain"
	"hindsight/internal/logger"
	"hindsight/internal/repository"
	"time"

	"github.com/google/uuid"
)

type OptimizeHandler struct {
	PriceRepository repository.PriceRepository
}

type RunInput struct {
	DailyPrices map[string][]domain.RawRecord
	Start       time.Time
	End         time.Time
	MinBuyPrice float64
	// InitialCash defaults to internal.DefaultInitialCash when zero.
	InitialCash    float64
	AllowedSymbols map[string]bool
}

type RunResult struct {
	RunID      uuid.UUID             `json:"runId"`
	FinalCash  float64               `json:"finalCash"`
	Verified   bool                  `json:"verified"`
	Trades     int                   `json:"trades"`
	Counters   internal.DropCounters `json:"counters"`
	Report     string                `json:"report"`
	Solution   domain.Solution       `json:"-"`
	State      domain.DPState        `json:"-"`
	SellPrices domain.PriceMatrix    `json:"-"`
	BuyPrices  domain.PriceMatrix    `json:"-"`
	Symbols    domain.SymbolIndex    `json:"-"`
	Dates      domain.DateIndex      `json:"-"`
}

// Run executes the full pipeline over one window: sanitize the raw records
// into price matrices, run the dynamic program, reconstruct the optimal
// holding sequence, verify it by independent replay, and render the report.
//
// A false Verified flag is not an error: it means the reconstruction and
// the optimizer disagree, which is a logic defect the caller must surface.
// Every run builds its own matrices and state, so handlers are safe to use
// from concurrent requests.
func (h OptimizeHandler) Run(ctx context.Context, in RunInput) (*RunResult, error) {
	runID := uuid.New()
	log := logger.FromContext(ctx).With("runId", runID)

	initialCash := in.InitialCash
	if initialCash == 0 {
		initialCash = internal.DefaultInitialCash
	}

	sanitized, err := internal.Sanitize(internal.SanitizeInput{
		DailyPrices:    in.DailyPrices,
		Start:          in.Start,
		End:            in.End,
		MinBuyPrice:    in.MinBuyPrice,
		AllowedSymbols: in.AllowedSymbols,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to sanitize prices: %w", err)
	}
	log.Infow("sanitized prices",
		"window", sanitized.Dates.String(),
		"symbols", sanitized.Symbols.Len(),
		"symbolsExcluded", sanitized.Counters.SymbolsExcluded,
		"recordsDropped", sanitized.Counters.RecordsDropped(),
		"recordsTotal", sanitized.Counters.TotalRecords,
		"forbiddenToBuy", sanitized.Counters.ForbiddenToBuy,
	)

	optimized, err := internal.Optimize(internal.OptimizeInput{
		SellPrices:  sanitized.SellPrices,
		BuyPrices:   sanitized.BuyPrices,
		InitialCash: initialCash,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to optimize: %w", err)
	}

	solution := internal.RestoreSolution(optimized.State)
	verified := internal.VerifySolution(solution, optimized.State, sanitized.SellPrices, sanitized.BuyPrices, initialCash)
	if !verified {
		log.Errorw("solution failed verification - replay does not reproduce the claimed optimum",
			"claimedFinalCash", optimized.State.FinalCash())
	}

	report := internal.RenderReport(internal.ReportInput{
		Solution:    solution,
		State:       optimized.State,
		SellPrices:  sanitized.SellPrices,
		BuyPrices:   sanitized.BuyPrices,
		Symbols:     sanitized.Symbols,
		Dates:       sanitized.Dates,
		InitialCash: initialCash,
	})

	log.Infow("run complete", "finalCash", optimized.State.FinalCash(), "trades", solution.Trades(), "verified", verified)

	return &RunResult{
		RunID:      runID,
		FinalCash:  optimized.State.FinalCash(),
		Verified:   verified,
		Trades:     solution.Trades(),
		Counters:   sanitized.Counters,
		Report:     report,
		Solution:   solution,
		State:      optimized.State,
		SellPrices: sanitized.SellPrices,
		BuyPrices:  sanitized.BuyPrices,
		Symbols:    sanitized.Symbols,
		Dates:      sanitized.Dates,
	}, nil
}

// RunFromConfig loads prices (and the optional constituents allow-list)
// through the repositories and runs the pipeline with the configured
// window, floor and starting cash.
func (h OptimizeHandler) RunFromConfig(ctx context.Context, config internal.RunConfig) (*RunResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	start, end, err := config.Window()
	if err != nil {
		return nil, err
	}

	if h.PriceRepository == nil {
		return nil, fmt.Errorf("no price repository configured")
	}
	dailyPrices, err := h.PriceRepository.Load()
	if err != nil {
		return nil, err
	}

	var allowed map[string]bool
	if config.ConstituentsFile != "" {
		allowed, err = repository.LoadConstituents(config.ConstituentsFile)
		if err != nil {
			return nil, err
		}
	}

	return h.Run(ctx, RunInput{
		DailyPrices:    dailyPrices,
		Start:          start,
		End:            end,
		MinBuyPrice:    config.MinBuyPrice,
		InitialCash:    config.InitialCash,
		AllowedSymbols: allowed,
	})
}
