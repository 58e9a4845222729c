package httphost

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter builds a gin engine with recovery, request logging and the
// controller's routes under baseURL + "/v1".
func NewRouter(c *Controller, baseURL string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(c.log))

	api := router.Group(baseURL)
	{
		v1 := api.Group("/v1")
		c.RegisterPublic(v1)
	}
	return router
}

// requestLogger logs one line per request.
func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()
		log.Debug("http request",
			zap.String("method", ctx.Request.Method),
			zap.String("path", ctx.Request.URL.Path),
			zap.Int("status", ctx.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
