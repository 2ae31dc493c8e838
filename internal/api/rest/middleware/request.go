package middleware

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hubverse/hub-services/internal/api/rest/respond"
	"github.com/hubverse/hub-services/internal/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// HeaderRequestID carries the request id between the proxy, the services and the client.
const HeaderRequestID = "X-Request-ID"

const requestIDKey = "hub.request_id"

const maxRequestIDLength = 128

// RequestID keeps a caller supplied X-Request-ID or generates one, and echoes it on the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" || len(id) > maxRequestIDLength {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Request.Header.Set(HeaderRequestID, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

// RequestIDFromContext returns the id assigned by RequestID.
func RequestIDFromContext(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

// AccessLog writes one line per request.
func AccessLog(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		c.Next()

		status := c.Writer.Status()
		entry := log.With(
			"method", c.Request.Method,
			"path", path,
			"status", status,
			"latency", time.Since(start).String(),
			"request_id", RequestIDFromContext(c),
			"client_ip", c.ClientIP(),
		)
		switch {
		case status >= http.StatusInternalServerError:
			entry.Error("request failed: ", c.Errors.String())
		case status >= http.StatusBadRequest:
			entry.Warn("request rejected")
		default:
			entry.Info("request completed")
		}
	}
}

// Recovery turns a panic into a 500 response and logs it.
func Recovery(log logger.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, recovered any) {
		log.With("request_id", RequestIDFromContext(c)).Error(fmt.Sprintf("panic recovered: %v", recovered))
		respond.Message(c, http.StatusInternalServerError, respond.InternalErrorMessage)
	})
}
