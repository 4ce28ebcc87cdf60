package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dkeye/djrelay/internal/core"
	"github.com/dkeye/djrelay/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockStats struct {
	snap core.StatsSnapshot
}

func (m mockStats) Snapshot() core.StatsSnapshot { return m.snap }

type mockRooms []core.RoomInfo

func (m mockRooms) List() []core.RoomInfo { return m }

func newTestRouter(snap core.StatsSnapshot) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	rooms := mockRooms{{Name: "alice", Owner: "alice", MemberCount: 3}, {Name: "bob", Owner: "bob", MemberCount: 1}}
	NewStatsHandler(mockStats{snap: snap}, rooms).Mount(r)
	return r
}

func TestStatsHandler(t *testing.T) {
	snap := core.StatsSnapshot{
		Connected:       5,
		Listening:       3,
		Broadcasters:    2,
		BroadcasterList: []domain.Identity{"alice", "bob"},
	}

	tests := []struct {
		name     string
		path     string
		wantBody string
	}{
		{name: "health", path: "/health", wantBody: `{"status":"ok"}`},
		{name: "stats", path: "/api/stats", wantBody: `{"connected":5,"listening":3,"broadcasters":2,"broadcaster_list":["alice","bob"]}`},
		{name: "broadcasters", path: "/api/broadcasters", wantBody: `{"broadcasters":["alice","bob"],"total":2}`},
		{name: "rooms", path: "/api/rooms", wantBody: `{"rooms":[{"name":"alice","owner":"alice","members":3},{"name":"bob","owner":"bob","members":1}],"total":2}`},
	}

	r := newTestRouter(snap)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			r.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
		})
	}
}

func TestStatsHandler_EmptyBroadcasters(t *testing.T) {
	r := newTestRouter(core.StatsSnapshot{BroadcasterList: []domain.Identity{}})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/broadcasters", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var resp BroadcastersResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotNil(t, resp.Broadcasters)
	assert.Equal(t, 0, resp.Total)
}
