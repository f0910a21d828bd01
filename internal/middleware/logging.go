package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/yukikurage/task-tracker-api/internal/constants"
	"github.com/yukikurage/task-tracker-api/internal/logger"
)

// RequestLogger tags every request with a trace id, taken from the
// X-Trace-ID header or freshly generated, and logs one entry per request.
// Handlers and services reach the tagged logger via logger.FromContext.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := c.GetHeader(constants.TraceIDHeader)
		if traceID == "" {
			traceID = uuid.NewString()
		}

		reqLog := log.WithTraceID(traceID)
		c.Request = c.Request.WithContext(reqLog.WithContext(c.Request.Context()))
		c.Set(constants.ContextKeyTraceID, traceID)
		c.Header(constants.TraceIDHeader, traceID)

		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		level := zerolog.InfoLevel
		switch {
		case status >= 500:
			level = zerolog.ErrorLevel
		case status >= 400:
			level = zerolog.WarnLevel
		}

		reqLog.WithLevel(level).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Int("status", status).
			Dur("duration", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Msg("request handled")
	}
}
