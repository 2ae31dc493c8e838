//go:build unit
// +build unit

package server

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/hubverse/hub-services/internal/api/rest/middleware"
	"github.com/hubverse/hub-services/internal/pkg/config"
	"github.com/hubverse/hub-services/internal/pkg/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testEngine(t *testing.T) *gin.Engine {
	t.Helper()
	r := NewEngine(config.Default(config.ServiceCommunity), testutil.SetupTestLogger(t))
	r.GET("/ping", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"message": "pong"}) })
	r.GET("/boom", func(c *gin.Context) { panic("boom") })
	return r
}

func serve(r http.Handler, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func message(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body["message"]
}

func TestNewEngineUnknownRoute(t *testing.T) {
	w := serve(testEngine(t), http.MethodGet, "/nope")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "route GET /nope not found", message(t, w))
	assert.NotEmpty(t, w.Header().Get(middleware.HeaderRequestID))
}

func TestNewEngineMethodNotAllowed(t *testing.T) {
	w := serve(testEngine(t), http.MethodDelete, "/ping")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Equal(t, "method DELETE not allowed on /ping", message(t, w))
}

func TestNewEngineRecoversPanics(t *testing.T) {
	w := serve(testEngine(t), http.MethodGet, "/boom")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "internal server error", message(t, w))
}

func TestServiceName(t *testing.T) {
	assert.Equal(t, "academy-api", ServiceName(config.Default(config.ServiceAcademy)))
}

func TestConfigPath(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	assert.Equal(t, "configs/business-api.yaml", ConfigPath(config.ServiceBusiness))

	t.Setenv("CONFIG_PATH", "/etc/hub/business.yaml")
	assert.Equal(t, "/etc/hub/business.yaml", ConfigPath(config.ServiceBusiness))
}

func TestServeGracefulShutdown(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hookCalled := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		done <- Serve(ctx, ln, testEngine(t), testutil.SetupTestLogger(t), func() { close(hookCalled) })
	}()

	client := &http.Client{Timeout: 2 * time.Second, Transport: &http.Transport{DisableKeepAlives: true}}
	resp, err := client.Get("http://" + ln.Addr().String() + "/ping")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}

	select {
	case <-hookCalled:
	case <-time.After(time.Second):
		t.Fatal("shutdown hook was not called")
	}

	_, err = client.Get("http://" + ln.Addr().String() + "/ping")
	assert.Error(t, err)
}

func TestRunPortInUse(t *testing.T) {
	ln, err := net.Listen("tcp", ":0")
	require.NoError(t, err)
	defer ln.Close()

	cfg := config.Default(config.ServiceCommunity)
	cfg.Port = strconv.Itoa(ln.Addr().(*net.TCPAddr).Port)

	err = Run(context.Background(), cfg, http.NotFoundHandler(), testutil.SetupTestLogger(t))
	assert.Error(t, err)
}
