package v1

import (
	"net/http"
	"strconv"
	"time"

	"github.com/hubverse/hub-services/internal/api/rest/middleware"
	"github.com/hubverse/hub-services/internal/api/rest/respond"
	"github.com/hubverse/hub-services/internal/domain/query"
	"github.com/hubverse/hub-services/internal/pkg/apperr"
	"github.com/hubverse/hub-services/internal/pkg/auth"
	"github.com/hubverse/hub-services/internal/pkg/strutil"

	"github.com/gin-gonic/gin"
)

// bindJSON decodes the request body into dst and answers 400 on malformed JSON.
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respond.Message(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	return true
}

// caller returns the authenticated principal or answers 401.
func caller(c *gin.Context) (auth.Principal, bool) {
	p, ok := middleware.PrincipalFromContext(c)
	if !ok {
		respond.Message(c, http.StatusUnauthorized, "missing bearer token")
		return auth.Principal{}, false
	}
	return p, true
}

// bindListQuery reads limit, offset, sortBy and sortOrder.
func bindListQuery(c *gin.Context, q *query.ListQuery) error {
	var err error
	if q.Limit, err = intQuery(c, "limit", q.Limit); err != nil {
		return err
	}
	if q.Offset, err = intQuery(c, "offset", q.Offset); err != nil {
		return err
	}
	if sortBy := c.Query("sortBy"); len(sortBy) > 0 {
		q.SortBy = sortBy
	}
	if sortOrder := c.Query("sortOrder"); len(sortOrder) > 0 {
		q.SortOrder = sortOrder
	}
	return nil
}

func intQuery(c *gin.Context, name string, fallback int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperr.Invalid("%s must be an integer", name)
	}
	return v, nil
}

func int64Query(c *gin.Context, name string) (int64, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperr.Invalid("%s must be an integer", name)
	}
	return v, nil
}

func boolQuery(c *gin.Context, name string) (*bool, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	v, ok := strutil.ParseBool(raw)
	if !ok {
		return nil, apperr.Invalid("%s must be a boolean", name)
	}
	return &v, nil
}

func timeQuery(c *gin.Context, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	v, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return nil, apperr.Invalid("%s must be an RFC3339 timestamp", name)
	}
	v = v.UTC()
	return &v, nil
}
