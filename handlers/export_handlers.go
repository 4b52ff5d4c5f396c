package handlers

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"

	"broadcastdash/api/dataset"
	"broadcastdash/api/engine"
	"broadcastdash/api/models"
)

const (
	visitsFilename        = "visits_details.csv"
	highBufferingFilename = "high_buffering_rate_data.csv"
)

// ExportVisits downloads the filtered sessions.
func (h *DashboardHandlers) ExportVisits(c *gin.Context) {
	sel, err := parseSelection(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	table, ok := h.currentTable(c)
	if !ok {
		return
	}
	h.writeCSV(c, visitsFilename, engine.VisitDetails(engine.Apply(table, sel)))
}

// ExportHighBuffering downloads the alert set. It is computed over the whole
// dataset, so the selection does not apply.
func (h *DashboardHandlers) ExportHighBuffering(c *gin.Context) {
	table, ok := h.currentTable(c)
	if !ok {
		return
	}
	alerts := engine.HighBuffering(engine.All(table), h.Settings.BufferingThreshold)
	if alerts.Len() == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No high buffering rate records"})
		return
	}
	h.writeCSV(c, highBufferingFilename, alerts.Records())
}

func (h *DashboardHandlers) writeCSV(c *gin.Context, filename string, records []models.SessionRecord) {
	var buf bytes.Buffer
	if err := dataset.WriteCSV(&buf, records); err != nil {
		h.Logger.Error("writing CSV export", "file", filename, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build CSV export"})
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
