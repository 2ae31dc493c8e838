//go:build unit
// +build unit

package v1

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hubverse/hub-services/internal/pkg/auth"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// do sends a request to r. A non-nil body is encoded as JSON unless it is a string.
func do(t *testing.T, r http.Handler, method, url, authorization string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, url, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), dst), w.Body.String())
}

func messageOf(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	decode(t, w, &body)
	return body["message"]
}

// principalOf matches the principal a handler forwards for p.
func principalOf(p auth.Principal) interface{} {
	return mock.MatchedBy(func(got auth.Principal) bool {
		return got.UserID == p.UserID && got.Role == p.Role
	})
}

func anonymousViewer() interface{} {
	return mock.MatchedBy(func(v *auth.Principal) bool { return v == nil })
}

func viewerOf(p auth.Principal) interface{} {
	return mock.MatchedBy(func(v *auth.Principal) bool { return v != nil && v.UserID == p.UserID })
}
