package web

import (
	_ "embed"
	"net/http"
	"time"

	"palabra/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

//go:embed static/index.html
var indexHTML []byte

// NewRouter wires the study API and the single page UI
func NewRouter(scheduler *service.Scheduler, stats *service.StatsService, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(requestLogger(logger), gin.Recovery(), cors())

	r.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", indexHTML)
	})

	api := r.Group("/api")
	{
		api.GET("/pools", PoolCounts(stats, logger))
		api.GET("/modes", ModeList(stats, logger))
		api.GET("/modes/:mode/next", NextCard(scheduler, logger))
		api.POST("/modes/:mode/respond", RespondCard(scheduler, logger))
		api.GET("/modes/:mode/hint", Hint(scheduler, logger))
		api.GET("/modes/:mode/verify", Verify(scheduler, logger))

		api.POST("/new-words", CreateNewWord(scheduler, logger))
	}

	return r
}

func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}
		logger.Info("HTTP request", fields...)
	}
}
