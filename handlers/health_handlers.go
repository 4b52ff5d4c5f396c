package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func (h *DashboardHandlers) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readyz reports ready once a base table has been loaded.
func (h *DashboardHandlers) Readyz(c *gin.Context) {
	if !h.Provider.Ready() {
		_, err := h.Provider.Current()
		body := gin.H{"status": "not ready"}
		if err != nil {
			body["details"] = err.Error()
		}
		c.JSON(http.StatusServiceUnavailable, body)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":   "ready",
		"loadedAt": h.Provider.LoadedAt().UTC().Format(time.RFC3339),
	})
}
