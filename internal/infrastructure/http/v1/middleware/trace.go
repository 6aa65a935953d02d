package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"pharmabill/internal/core/appctx"
)

const (
	HeaderRequestID = "X-Request-ID"
	HeaderTraceID   = "X-Trace-ID"
)

// Trace propagates the caller's correlation headers, generating ids
// for requests that arrive without them, and echoes both back in the
// response.
func Trace() gin.HandlerFunc {
	return func(c *gin.Context) {
		t := &appctx.Trace{
			RequestID: c.GetHeader(HeaderRequestID),
			TraceID:   c.GetHeader(HeaderTraceID),
		}
		if t.RequestID == "" {
			t.RequestID = uuid.New().String()
		}
		if t.TraceID == "" {
			t.TraceID = uuid.New().String()
		}

		c.Request = c.Request.WithContext(appctx.WithTrace(c.Request.Context(), t))

		c.Set("trace_id", t.TraceID)
		c.Set("request_id", t.RequestID)
		c.Header(HeaderRequestID, t.RequestID)
		c.Header(HeaderTraceID, t.TraceID)

		c.Next()
	}
}
