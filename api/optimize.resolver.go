package api

import (
	"errors"
	"fmt"
	"hindsight/internal"
	"hindsight/internal/app"
	"hindsight/internal/domain"
	"hindsight/internal/util"
	"net/http"

	"github.com/gin-gonic/gin"
)

type OptimizeRequest struct {
	Start       string  `json:"start"`
	End         string  `json:"end"`
	MinBuyPrice float64 `json:"minBuyPrice"`
	InitialCash float64 `json:"initialCash"`
	// AllowedSymbols, when non-empty, restricts the run to these symbols.
	AllowedSymbols []string `json:"allowedSymbols"`
	// DailyPrices may be supplied inline; when absent the configured price
	// file store is used.
	DailyPrices map[string][]domain.RawRecord `json:"dailyPrices"`
}

type OptimizeResponse struct {
	app.RunResult
	// Sequence is the held symbol on each evening from the second date of
	// the window onward.
	Sequence []string `json:"sequence"`
}

func (m ApiHandler) optimize(c *gin.Context) {
	var requestBody OptimizeRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(fmt.Errorf("failed to parse request: %w", err), c, 400)
		return
	}

	start, err := util.ParseDate(requestBody.Start)
	if err != nil {
		returnErrorJsonCode(fmt.Errorf("unparseable start date %q", requestBody.Start), c, 400)
		return
	}
	end, err := util.ParseDate(requestBody.End)
	if err != nil {
		returnErrorJsonCode(fmt.Errorf("unparseable end date %q", requestBody.End), c, 400)
		return
	}

	dailyPrices := requestBody.DailyPrices
	if dailyPrices == nil {
		if m.PriceRepository == nil {
			returnErrorJsonCode(fmt.Errorf("no prices in request and no price file configured"), c, 400)
			return
		}
		dailyPrices, err = m.PriceRepository.Load()
		if err != nil {
			returnErrorJson(err, c)
			return
		}
	}

	var allowed map[string]bool
	if len(requestBody.AllowedSymbols) > 0 {
		allowed = map[string]bool{}
		for _, s := range requestBody.AllowedSymbols {
			allowed[s] = true
		}
	}

	result, err := m.OptimizeHandler.Run(c.Request.Context(), app.RunInput{
		DailyPrices:    dailyPrices,
		Start:          start,
		End:            end,
		MinBuyPrice:    requestBody.MinBuyPrice,
		InitialCash:    requestBody.InitialCash,
		AllowedSymbols: allowed,
	})
	if err != nil {
		code := http.StatusInternalServerError
		var configErr internal.ConfigurationError
		var dataErr internal.DataFormatError
		if errors.As(err, &configErr) || errors.As(err, &dataErr) {
			code = http.StatusBadRequest
		}
		returnErrorJsonCode(err, c, code)
		return
	}

	sequence := make([]string, len(result.Solution))
	for i, holding := range result.Solution {
		sequence[i] = result.Symbols.Symbol(holding.ID())
	}

	c.JSON(200, OptimizeResponse{
		RunResult: *result,
		Sequence:  sequence,
	})
}
