package api

import (
	"fmt"
	"hindsight/internal"
	"hindsight/internal/logger"
	"hindsight/internal/util"

	"github.com/gin-gonic/gin"
)

type IngestRequest struct {
	Symbols []string `json:"symbols"`
	Start   string   `json:"start"`
	End     string   `json:"end"`
}

func (m ApiHandler) ingest(c *gin.Context) {
	var requestBody IngestRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(fmt.Errorf("failed to parse request: %w", err), c, 400)
		return
	}
	if len(requestBody.Symbols) == 0 {
		returnErrorJsonCode(fmt.Errorf("no symbols given"), c, 400)
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
	if m.PriceRepository == nil {
		returnErrorJsonCode(fmt.Errorf("no price file configured"), c, 400)
		return
	}

	log := logger.FromContext(c.Request.Context())
	if err := internal.UpdateStoredPrices(requestBody.Symbols, start, end, m.PriceRepository, log); err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, gin.H{"ingested": len(requestBody.Symbols)})
}
