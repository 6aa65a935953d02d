package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"pharmabill/pkg/logger"
)

// Logger writes one structured line per request after the handler
// chain finishes. Billing endpoints are audited separately; this is
// the operational access log.
//
// It also installs the configured logger into the request context, so
// logger.FromContext deeper in the stack honors the configured level
// instead of the package default.
func Logger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Request = c.Request.WithContext(logger.WithLogger(c.Request.Context(), log))

		c.Next()

		fields := []any{
			"method", c.Request.Method,
			"path", path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		}
		if query != "" {
			fields = append(fields, "query", query)
		}
		if errs := c.Errors.ByType(gin.ErrorTypePrivate); len(errs) > 0 {
			fields = append(fields, "error", errs.String())
		}

		log.WithContext(c.Request.Context()).Infow("http request", fields...)
	}
}
