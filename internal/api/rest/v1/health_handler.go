package v1

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const readinessTimeout = 2 * time.Second

// Pinger reports whether a dependency is reachable.
type Pinger func(ctx context.Context) error

// HealthResponse is the body of /health and /health/ready.
type HealthResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// HealthHandler defines the liveness and readiness endpoints
type HealthHandler interface {
	Health(ctx *gin.Context)
	Ready(ctx *gin.Context)
}

type healthHandler struct {
	service string
	version string
	ping    Pinger
	now     func() time.Time
}

// NewHealthHandler creates a HealthHandler. A nil ping makes readiness equal to liveness.
func NewHealthHandler(service, version string, ping Pinger) HealthHandler {
	return &healthHandler{
		service: service,
		version: version,
		ping:    ping,
		now:     time.Now,
	}
}

func (handler *healthHandler) response(status string) HealthResponse {
	return HealthResponse{
		Status:    status,
		Service:   handler.service,
		Timestamp: handler.now().UTC().Format(time.RFC3339),
		Version:   handler.version,
	}
}

// Health always answers 200 while the process serves requests.
func (handler *healthHandler) Health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, handler.response("ok"))
}

// Ready answers 503 when the database cannot be reached.
func (handler *healthHandler) Ready(ctx *gin.Context) {
	if handler.ping != nil {
		pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), readinessTimeout)
		defer cancel()
		if err := handler.ping(pingCtx); err != nil {
			_ = ctx.Error(err)
			ctx.JSON(http.StatusServiceUnavailable, handler.response("unavailable"))
			return
		}
	}
	ctx.JSON(http.StatusOK, handler.response("ok"))
}

// RegisterHealthRoutes mounts /health and /health/ready on r.
func RegisterHealthRoutes(r gin.IRouter, handler HealthHandler) {
	r.GET("/health", handler.Health)
	r.GET("/health/ready", handler.Ready)
}
