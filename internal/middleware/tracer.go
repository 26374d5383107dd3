package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/opentracing/opentracing-go"
)

const (
	// TraceIDHeader carries the trace id on requests and responses
	TraceIDHeader = "X-Trace-ID"
	// TraceIDKey is the context key the trace id is stored under
	TraceIDKey = "trace_id"
)

type traceIDCtxKey struct{}

// TraceMiddleware takes the trace id from the request header or mints a new
// one, and propagates it through both contexts and the response header
func TraceMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := c.GetHeader(TraceIDHeader)
		if traceID == "" {
			traceID = uuid.NewString()
		}

		c.Set(TraceIDKey, traceID)

		// root span for the request, database spans attach to it
		span := opentracing.StartSpan(c.Request.Method + " " + c.FullPath())
		span.SetTag("trace.id", traceID)
		defer span.Finish()

		ctx := context.WithValue(c.Request.Context(), traceIDCtxKey{}, traceID)
		ctx = opentracing.ContextWithSpan(ctx, span)
		c.Request = c.Request.WithContext(ctx)

		c.Header(TraceIDHeader, traceID)

		c.Next()
	}
}

// GetTraceID reads the trace id from a request context
func GetTraceID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if id, ok := ctx.Value(traceIDCtxKey{}).(string); ok {
		return id
	}
	return ""
}

// GetTraceIDFromGin reads the trace id from a gin context
func GetTraceIDFromGin(c *gin.Context) string {
	if c == nil {
		return ""
	}
	if id, exists := c.Get(TraceIDKey); exists {
		if traceID, ok := id.(string); ok {
			return traceID
		}
	}
	return ""
}
