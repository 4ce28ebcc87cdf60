package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/dkeye/djrelay/internal/app"
	"github.com/dkeye/djrelay/internal/app/orch"
	"github.com/dkeye/djrelay/internal/config"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	static := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(static, "index.html"), []byte("<html>relay</html>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(static, "app.js"), []byte("// relay"), 0o644))

	stats := app.NewStats()
	rooms := app.NewRoomManager()
	o := &orch.Orchestrator{
		Registry: app.NewRegistry(),
		Rooms:    rooms,
		Stats:    stats,
		Policy:   app.DropPolicy{},
	}
	cfg := &config.Config{Mode: "test", StaticPath: static, Secret: "test-secret"}
	return SetupRouter(context.Background(), cfg, o, stats, rooms)
}

func TestSetupRouter_Routes(t *testing.T) {
	r := newTestEngine(t)

	tests := []struct {
		path     string
		wantCode int
	}{
		{path: "/", wantCode: http.StatusOK},
		{path: "/static/app.js", wantCode: http.StatusOK},
		{path: "/health", wantCode: http.StatusOK},
		{path: "/api/stats", wantCode: http.StatusOK},
		{path: "/api/broadcasters", wantCode: http.StatusOK},
		{path: "/api/rooms", wantCode: http.StatusOK},
		{path: "/nope", wantCode: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.wantCode, w.Code)
		})
	}
}

func TestSetupRouter_RequestIDAndClientToken(t *testing.T) {
	r := newTestEngine(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(headerRequestID, "req-1")
	r.ServeHTTP(w, req)

	assert.Equal(t, "req-1", w.Header().Get(headerRequestID))
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, "RelaySessions", cookies[0].Name)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.NotEmpty(t, w.Header().Get(headerRequestID))
}

func TestSetupRouter_PlainHTTPOnWebSocketRoute(t *testing.T) {
	r := newTestEngine(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/ws", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
