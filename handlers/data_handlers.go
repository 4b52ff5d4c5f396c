package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"broadcastdash/api/dataset"
	"broadcastdash/api/presenter"
)

const reloadTimeout = 60 * time.Second

// UploadPreview shows an uploaded CSV as a table. The file is never merged
// into the analysed dataset.
func (h *DashboardHandlers) UploadPreview(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A CSV file is required in the 'file' field"})
		return
	}
	f, err := header.Open()
	if err != nil {
		h.Logger.Error("opening upload", "file", header.Filename, "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read uploaded file"})
		return
	}
	defer f.Close()

	preview, err := dataset.ParsePreview(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Uploaded file is not a readable CSV", "details": err.Error()})
		return
	}
	h.Logger.Info("upload previewed", "file", header.Filename, "rows", len(preview.Rows))
	c.JSON(http.StatusOK, gin.H{"file": header.Filename, "table": presenter.PreviewTable(preview)})
}

// FetchData calls the external endpoint once and returns what it sent.
func (h *DashboardHandlers) FetchData(c *gin.Context) {
	records, err := h.Fetcher.Fetch(c.Request.Context())
	if err != nil {
		h.Logger.Error("external fetch failed", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	resp := gin.H{"count": len(records), "table": presenter.FetchedTable(records)}
	if len(records) == 0 {
		resp["message"] = "No data returned from API"
	}
	c.JSON(http.StatusOK, resp)
}

// Reload re-reads the configured dataset source.
func (h *DashboardHandlers) Reload(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), reloadTimeout)
	defer cancel()

	if err := h.Provider.Reload(ctx); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "reload failed", "details": err.Error()})
		return
	}
	table, err := h.Provider.Current()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "dataset unavailable", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":   "reloaded",
		"rows":     table.Len(),
		"loadedAt": h.Provider.LoadedAt().UTC().Format(time.RFC3339),
	})
}
