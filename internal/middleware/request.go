package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"aurax-orchestrator/pkg/log"
)

// HeaderRequestID carries the request ID in both directions.
const HeaderRequestID = "X-Request-ID"

// RequestID attaches a request ID to the request context and response.
// A client supplied ID is kept.
func (mw Middleware) RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}

		c.Request = c.Request.WithContext(log.WithRequestID(c.Request.Context(), id))
		c.Writer.Header().Set(HeaderRequestID, id)
		c.Next()
	}
}

// Metrics records request count and latency by matched route.
func (mw Middleware) Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		mw.metrics.ObserveHTTP(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}

// Logging writes one line per request.
func (mw Middleware) Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		ctx := c.Request.Context()
		status := c.Writer.Status()
		const format = "%s %s %d %s"
		switch {
		case status >= 500:
			mw.l.Errorf(ctx, format, c.Request.Method, c.Request.URL.Path, status, time.Since(start))
		case status >= 400:
			mw.l.Warnf(ctx, format, c.Request.Method, c.Request.URL.Path, status, time.Since(start))
		default:
			mw.l.Debugf(ctx, format, c.Request.Method, c.Request.URL.Path, status, time.Since(start))
		}
	}
}
