// Package proxy forwards API requests to the backend services by path prefix.
package proxy

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/httputil"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/hubverse/hub-services/internal/api/rest/middleware"
	"github.com/hubverse/hub-services/internal/api/rest/respond"
	"github.com/hubverse/hub-services/internal/pkg/config"
	"github.com/hubverse/hub-services/internal/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

// upstream is one backend service behind a path prefix.
type upstream struct {
	name   string
	prefix string
	target *url.URL
	proxy  *httputil.ReverseProxy
}

// matches reports whether path lies below the prefix on a segment boundary.
func (u *upstream) matches(path string) bool {
	if u.prefix == "" {
		return true
	}
	return path == u.prefix || strings.HasPrefix(path, u.prefix+"/")
}

// Proxy routes requests to the upstream with the longest matching prefix.
type Proxy struct {
	upstreams     []*upstream
	routes        []*upstream
	timeout       time.Duration
	healthTimeout time.Duration
	client        *http.Client
	logger        logger.Logger
}

// New builds a Proxy from validated settings.
func New(settings config.ProxySettings, log logger.Logger) (*Proxy, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.MaxIdleConnsPerHost = 32
	// Bounds the wait for upstream headers, which covers WebSocket handshakes that
	// run without a request deadline.
	transport.ResponseHeaderTimeout = settings.Timeout

	p := &Proxy{
		timeout:       settings.Timeout,
		healthTimeout: settings.HealthTimeout,
		client:        &http.Client{Transport: transport},
		logger:        log,
	}

	for _, s := range settings.Upstreams {
		target, err := url.Parse(s.Target)
		if err != nil {
			return nil, fmt.Errorf("invalid target for upstream %s: %w", s.Name, err)
		}
		u := &upstream{
			name:   s.Name,
			prefix: strings.TrimSuffix(s.Prefix, "/"),
			target: target,
		}
		u.proxy = &httputil.ReverseProxy{
			Rewrite:      p.rewrite(u),
			Transport:    transport,
			ErrorHandler: p.errorHandler(u),
		}
		p.upstreams = append(p.upstreams, u)
	}

	p.routes = append([]*upstream(nil), p.upstreams...)
	sort.SliceStable(p.routes, func(i, j int) bool {
		return len(p.routes[i].prefix) > len(p.routes[j].prefix)
	})
	return p, nil
}

func (p *Proxy) match(path string) *upstream {
	for _, u := range p.routes {
		if u.matches(path) {
			return u
		}
	}
	return nil
}

func (p *Proxy) rewrite(u *upstream) func(*httputil.ProxyRequest) {
	return func(r *httputil.ProxyRequest) {
		r.SetURL(u.target)
		r.SetXForwarded()

		if id := r.In.Header.Get(middleware.HeaderRequestID); id != "" {
			r.Out.Header.Set(middleware.HeaderRequestID, id)
		}
		otel.GetTextMapPropagator().Inject(r.Out.Context(), propagation.HeaderCarrier(r.Out.Header))
	}
}

func (p *Proxy) errorHandler(u *upstream) func(http.ResponseWriter, *http.Request, error) {
	return func(w http.ResponseWriter, r *http.Request, err error) {
		status := http.StatusBadGateway
		message := fmt.Sprintf("upstream %s unavailable", u.name)
		if isTimeout(r.Context(), err) {
			status = http.StatusGatewayTimeout
			message = fmt.Sprintf("upstream %s timed out", u.name)
		}

		p.logger.With("upstream", u.name, "path", r.URL.Path, "request_id", r.Header.Get(middleware.HeaderRequestID)).
			Warn("Proxy request failed: ", err)

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(respond.ErrorResponse{Message: message})
	}
}

func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// Forward proxies the request to its upstream, or answers 404 when no prefix matches.
func (p *Proxy) Forward(c *gin.Context) {
	u := p.match(c.Request.URL.Path)
	if u == nil {
		respond.Message(c, http.StatusNotFound, fmt.Sprintf("route %s %s not found", c.Request.Method, c.Request.URL.Path))
		return
	}

	// An upgraded connection lives as long as the request context, so it gets no deadline.
	if isUpgrade(c.Request) {
		u.proxy.ServeHTTP(c.Writer, c.Request)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), p.timeout)
	defer cancel()

	u.proxy.ServeHTTP(c.Writer, c.Request.WithContext(ctx))
}

func isUpgrade(r *http.Request) bool {
	if r.Header.Get("Upgrade") == "" {
		return false
	}
	for _, v := range r.Header.Values("Connection") {
		for _, token := range strings.Split(v, ",") {
			if strings.EqualFold(strings.TrimSpace(token), "upgrade") {
				return true
			}
		}
	}
	return false
}
