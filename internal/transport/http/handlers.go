package http

import (
	"net/http"

	"github.com/dkeye/djrelay/internal/core"
	"github.com/dkeye/djrelay/internal/domain"
	"github.com/gin-gonic/gin"
)

type BroadcastersResponse struct {
	Broadcasters []domain.Identity `json:"broadcasters"`
	Total        int               `json:"total"`
}

type RoomsResponse struct {
	Rooms []core.RoomInfo `json:"rooms"`
	Total int             `json:"total"`
}

// StatsHandler serves the read-only counters.
type StatsHandler struct {
	stats core.StatsReader
	rooms core.RoomLister
}

func NewStatsHandler(stats core.StatsReader, rooms core.RoomLister) *StatsHandler {
	return &StatsHandler{stats: stats, rooms: rooms}
}

// Mount registers GET /health and the /api read endpoints.
func (h *StatsHandler) Mount(r gin.IRouter) {
	r.GET("/health", handlerHealth)
	api := r.Group("/api")
	api.GET("/stats", h.handlerStats)
	api.GET("/broadcasters", h.handlerBroadcasters)
	api.GET("/rooms", h.handlerRooms)
}

func handlerHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *StatsHandler) handlerStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.stats.Snapshot())
}

func (h *StatsHandler) handlerBroadcasters(c *gin.Context) {
	snap := h.stats.Snapshot()
	c.JSON(http.StatusOK, BroadcastersResponse{
		Broadcasters: snap.BroadcasterList,
		Total:        snap.Broadcasters,
	})
}

func (h *StatsHandler) handlerRooms(c *gin.Context) {
	rooms := h.rooms.List()
	c.JSON(http.StatusOK, RoomsResponse{Rooms: rooms, Total: len(rooms)})
}
