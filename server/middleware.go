package server

import (
	"fmt"
	"time"

	"github.com/epoint/springlab/ctxutil"
	"github.com/epoint/springlab/logging/logger"
	"github.com/epoint/springlab/metrics"
	"github.com/epoint/springlab/net/resp"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// traceMiddleware ensures every request carries a trace id
func traceMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		if id := c.GetHeader(ctxutil.TraceHeader); id != "" {
			ctx = ctxutil.SetTraceID(ctx, id)
		}
		ctx, traceID := ctxutil.EnsureTraceID(ctx)

		c.Request = c.Request.WithContext(ctx)
		c.Header(ctxutil.TraceHeader, traceID)
		c.Next()
	}
}

// loggerMiddleware logs one entry per request
func loggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		status := c.Writer.Status()
		entry := logger.EntryWithFields(c.Request.Context(), logrus.Fields{
			"method":   method,
			"path":     path,
			"status":   status,
			"duration": time.Since(start).String(),
			"client":   c.ClientIP(),
		})
		switch {
		case status >= 500:
			entry.Error("http request")
		case status >= 400:
			entry.Warn("http request")
		default:
			entry.Debug("http request")
		}
	}
}

// metricsMiddleware records request counts and latency by route template
func metricsMiddleware(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.ObserveHTTP(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}

// recoveryMiddleware turns handler panics into a 500 envelope
func recoveryMiddleware() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Errorf(c.Request.Context(), "panic serving %s %s: %v", c.Request.Method, c.Request.URL.Path, recovered)
		resp.Fail(c.Writer, resp.InternalServer(fmt.Sprint(recovered)))
		c.Abort()
	})
}
