package middleware

import (
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/hubverse/hub-services/internal/api/rest/respond"
	"github.com/hubverse/hub-services/internal/pkg/config"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-gonic/gin"
)

// RateLimit limits each client IP to settings.Requests per settings.Window.
// A zero request count disables limiting.
func RateLimit(settings config.RateLimitSettings) gin.HandlerFunc {
	if settings.Requests <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	store := ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{
		Rate:  settings.Window,
		Limit: uint(settings.Requests),
	})
	return ratelimit.RateLimiter(store, &ratelimit.Options{
		ErrorHandler: rateLimitExceeded,
		KeyFunc:      clientKey,
	})
}

func clientKey(c *gin.Context) string {
	return c.ClientIP()
}

func rateLimitExceeded(c *gin.Context, info ratelimit.Info) {
	retry := int(math.Ceil(time.Until(info.ResetTime).Seconds()))
	if retry < 1 {
		retry = 1
	}
	c.Header("Retry-After", fmt.Sprint(retry))
	respond.Message(c, http.StatusTooManyRequests, fmt.Sprintf("too many requests, retry in %ds", retry))
}
