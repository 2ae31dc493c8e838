package middleware

import (
	"net/http"
	"strings"

	"github.com/hubverse/hub-services/internal/api/rest/respond"
	"github.com/hubverse/hub-services/internal/pkg/auth"

	"github.com/gin-gonic/gin"
)

const principalKey = "hub.principal"

// AuthOption customises RequireAuth and OptionalAuth.
type AuthOption func(*authOptions)

type authOptions struct {
	queryParam string
}

// WithQueryToken also accepts the token from the named query parameter. Browsers
// cannot set headers on a WebSocket handshake.
func WithQueryToken(param string) AuthOption {
	return func(o *authOptions) {
		o.queryParam = param
	}
}

// RequireAuth rejects requests without a valid bearer token.
func RequireAuth(verifier auth.TokenVerifier, opts ...AuthOption) gin.HandlerFunc {
	o := buildAuthOptions(opts)
	return func(c *gin.Context) {
		token := tokenFromRequest(c, o)
		if token == "" {
			respond.Message(c, http.StatusUnauthorized, "missing bearer token")
			return
		}
		claims, err := verifier.Verify(token)
		if err != nil {
			respond.Message(c, http.StatusUnauthorized, "invalid or expired token")
			return
		}
		c.Set(principalKey, claims.Principal())
		c.Next()
	}
}

// OptionalAuth stores the principal when a valid token is present and never rejects.
func OptionalAuth(verifier auth.TokenVerifier, opts ...AuthOption) gin.HandlerFunc {
	o := buildAuthOptions(opts)
	return func(c *gin.Context) {
		if token := tokenFromRequest(c, o); token != "" {
			if claims, err := verifier.Verify(token); err == nil {
				c.Set(principalKey, claims.Principal())
			}
		}
		c.Next()
	}
}

// RequireRole must run after RequireAuth.
func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		p, ok := PrincipalFromContext(c)
		if !ok {
			respond.Message(c, http.StatusUnauthorized, "missing bearer token")
			return
		}
		if !allowed[p.Role] {
			respond.Message(c, http.StatusForbidden, "role "+p.Role+" is not allowed")
			return
		}
		c.Next()
	}
}

// PrincipalFromContext returns the caller set by RequireAuth or OptionalAuth.
func PrincipalFromContext(c *gin.Context) (auth.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return auth.Principal{}, false
	}
	p, ok := v.(auth.Principal)
	return p, ok
}

// OptionalPrincipal returns nil for anonymous callers.
func OptionalPrincipal(c *gin.Context) *auth.Principal {
	p, ok := PrincipalFromContext(c)
	if !ok {
		return nil
	}
	return &p
}

func buildAuthOptions(opts []AuthOption) authOptions {
	var o authOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func tokenFromRequest(c *gin.Context, o authOptions) string {
	header := c.GetHeader("Authorization")
	if scheme, token, found := strings.Cut(header, " "); found && strings.EqualFold(scheme, "Bearer") {
		return strings.TrimSpace(token)
	}
	if o.queryParam != "" {
		return c.Query(o.queryParam)
	}
	return ""
}
