package api

import (
	"bytes"
	"context"
	"fmt"
	"hindsight/internal/app"
	"hindsight/internal/logger"
	"hindsight/internal/repository"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ApiHandler struct {
	OptimizeHandler app.OptimizeHandler
	PriceRepository repository.PriceRepository
}

func (m ApiHandler) Router() *gin.Engine {
	router := gin.Default()
	router.Use(cors.Default())
	router.Use(m.logRequestMiddleware)

	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(200, map[string]string{"message": "welcome to hindsight"})
	})
	router.POST("/optimize", m.optimize)
	router.POST("/ingest", m.ingest)

	return router
}

func (m ApiHandler) StartApi(port int) error {
	return m.Router().Run(fmt.Sprintf(":%d", port))
}

func returnErrorJson(err error, c *gin.Context) {
	returnErrorJsonCode(err, c, 500)
}

func returnErrorJsonCode(err error, c *gin.Context, code int) {
	logger.FromContext(c.Request.Context()).Error(err)
	c.AbortWithStatusJSON(code, gin.H{
		"error": err.Error(),
	})
}

type responseBodyWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (r responseBodyWriter) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

func (m ApiHandler) logRequestMiddleware(ctx *gin.Context) {
	w := &responseBodyWriter{body: &bytes.Buffer{}, ResponseWriter: ctx.Writer}
	ctx.Writer = w

	requestID := uuid.New()
	log := logger.New().With("requestId", requestID, "path", ctx.Request.URL.Path)
	ctx.Request = ctx.Request.WithContext(
		context.WithValue(ctx.Request.Context(), logger.ContextKey, log),
	)

	start := time.Now()
	ctx.Next()

	log.Infow("handled request",
		"status", ctx.Writer.Status(),
		"durationMs", time.Since(start).Milliseconds(),
		"responseBytes", w.body.Len(),
	)
}
