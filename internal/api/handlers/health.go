package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/openice/rinkrat/internal/service"
	"github.com/openice/rinkrat/internal/websocket"
)

type HealthHandler struct {
	sim     *service.SimService
	hub     *websocket.Hub
	started time.Time
}

func NewHealthHandler(sim *service.SimService, hub *websocket.Hub) *HealthHandler {
	return &HealthHandler{
		sim:     sim,
		hub:     hub,
		started: time.Now(),
	}
}

// GetHealth returns basic health status - always returns 200 if server is running
// This is used for basic liveness probes
func (h *HealthHandler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "rinkrat",
	})
}

// GetReady returns readiness status - only returns 200 once the league loaded
func (h *HealthHandler) GetReady(c *gin.Context) {
	meta := h.sim.Meta()
	if meta.LastLoadError != "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":          "degraded",
			"last_load_error": meta.LastLoadError,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"season": meta.Season,
		"phase":  meta.Phase,
	})
}

// GetMetrics exposes lightweight operational counters.
func (h *HealthHandler) GetMetrics(c *gin.Context) {
	meta := h.sim.Meta()
	c.JSON(http.StatusOK, gin.H{
		"uptime_seconds":    int(time.Since(h.started).Seconds()),
		"websocket_clients": h.hub.ConnectionCount(),
		"season":            meta.Season,
		"day":               meta.Day,
		"days_total":        meta.DaysTotal,
		"phase":             meta.Phase,
		"teams":             meta.Teams,
		"save_version":      meta.SaveVersion,
	})
}
