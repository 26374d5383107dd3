package middleware

import (
	"time"

	"github.com/webmarks/webmarks-service/global"
	"github.com/webmarks/webmarks-service/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AccessLog logs one line per request after the handler chain finishes,
// tagged with the trace id the tracer middleware minted
func AccessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if query := c.Request.URL.RawQuery; query != "" {
			path = path + "?" + query
		}

		startTime := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String(logger.FieldMethod, c.Request.Method),
			zap.Int("status", c.Writer.Status()),
			zap.String(logger.FieldTraceID, GetTraceIDFromGin(c)),
			zap.Duration(logger.FieldDuration, time.Since(startTime)),
			zap.String("ip", c.ClientIP()),
			zap.String("user-agent", c.Request.UserAgent()),
		}
		if errs := c.Errors.ByType(gin.ErrorTypePrivate).String(); errs != "" {
			fields = append(fields, zap.String("errors", errs))
		}
		global.Log().Info(path, fields...)
	}
}
