package proxy

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

// Upstream health states.
const (
	StatusOK          = "ok"
	StatusUnavailable = "unavailable"
)

// UpstreamStatus is the probe result for one upstream.
type UpstreamStatus struct {
	Name      string `json:"name"`
	Target    string `json:"target"`
	Status    string `json:"status"`
	LatencyMS int64  `json:"latency_ms"`
	Error     string `json:"error,omitempty"`
}

// UpstreamsResponse is the body of /health/upstreams.
type UpstreamsResponse struct {
	Status    string           `json:"status"`
	Upstreams []UpstreamStatus `json:"upstreams"`
}

// ProbeUpstreams calls /health on every upstream concurrently, each under its own timeout.
// Results keep the configured upstream order.
func (p *Proxy) ProbeUpstreams(ctx context.Context) UpstreamsResponse {
	results := make([]UpstreamStatus, len(p.upstreams))

	// Probes report failures in their result so one dead upstream does not cancel the rest.
	var g errgroup.Group
	for i, u := range p.upstreams {
		i, u := i, u
		g.Go(func() error {
			results[i] = p.probe(ctx, u)
			return nil
		})
	}
	_ = g.Wait()

	overall := StatusOK
	for _, r := range results {
		if r.Status != StatusOK {
			overall = StatusUnavailable
			break
		}
	}
	return UpstreamsResponse{Status: overall, Upstreams: results}
}

func (p *Proxy) probe(ctx context.Context, u *upstream) UpstreamStatus {
	status := UpstreamStatus{Name: u.name, Target: u.target.String(), Status: StatusUnavailable}

	ctx, cancel := context.WithTimeout(ctx, p.healthTimeout)
	defer cancel()

	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.target.JoinPath("/health").String(), nil)
	if err != nil {
		status.Error = err.Error()
		return status
	}

	resp, err := p.client.Do(req)
	status.LatencyMS = time.Since(start).Milliseconds()
	if err != nil {
		status.Error = err.Error()
		return status
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		status.Error = fmt.Sprintf("health returned %d", resp.StatusCode)
		return status
	}
	status.Status = StatusOK
	return status
}

// UpstreamHealth answers 200 when every upstream is healthy and 503 otherwise.
func (p *Proxy) UpstreamHealth(c *gin.Context) {
	report := p.ProbeUpstreams(c.Request.Context())
	code := http.StatusOK
	if report.Status != StatusOK {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, report)
}

// RegisterRoutes mounts /health/upstreams and sends every unmatched route through the proxy.
func RegisterRoutes(r *gin.Engine, p *Proxy) {
	r.GET("/health/upstreams", p.UpstreamHealth)
	r.NoRoute(p.Forward)
}
