package middleware

import (
	"context"
	"time"

	"github.com/beout/beout-admin/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// HeaderRequestID is the header carrying the request correlation id
const HeaderRequestID = "X-Request-ID"

// RequestID assigns a request id, reusing the caller's one when present,
// and stores it on both the gin and the request context.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" {
			id = uuid.New().String()
		}

		c.Set(contextKeyRequestID, id)
		c.Header(HeaderRequestID, id)

		ctx := context.WithValue(c.Request.Context(), logger.RequestIDKey, id)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// GetRequestID returns the request id set by RequestID
func GetRequestID(c *gin.Context) string {
	return c.GetString(contextKeyRequestID)
}

// RequestLogger logs one structured line per request
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		ctx := c.Request.Context()
		if adminID, ok := GetUserID(c); ok {
			ctx = context.WithValue(ctx, logger.AdminIDKey, adminID)
		}

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
			zap.Int("size", c.Writer.Size()),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		l := log.WithContext(ctx)
		switch {
		case status >= 500:
			l.Error("request failed", fields...)
		case status >= 400:
			l.Warn("request rejected", fields...)
		default:
			l.Info("request completed", fields...)
		}
	}
}
