// api/handlers/dashboard_handlers.go
package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"broadcastdash/api/dataset"
	"broadcastdash/api/models"
	"broadcastdash/api/presenter"
	"broadcastdash/api/utils"
)

// TableProvider hands out the current base table.
type TableProvider interface {
	Current() (*dataset.Table, error)
	Reload(ctx context.Context) error
	Ready() bool
	LoadedAt() time.Time
}

// Fetcher pulls records from the external data endpoint.
type Fetcher interface {
	Fetch(ctx context.Context) ([]models.FetchedRecord, error)
}

type DashboardHandlers struct {
	Provider TableProvider
	Fetcher  Fetcher
	Settings presenter.Settings
	Logger   *slog.Logger
}

func NewDashboardHandlers(p TableProvider, f Fetcher, settings presenter.Settings, logger *slog.Logger) *DashboardHandlers {
	return &DashboardHandlers{
		Provider: p,
		Fetcher:  f,
		Settings: settings.Normalize(),
		Logger:   logger,
	}
}

// GetDashboard renders every KPI, chart and table for the selection.
func (h *DashboardHandlers) GetDashboard(c *gin.Context) {
	sel, err := parseSelection(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	table, ok := h.currentTable(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, presenter.Render(table, sel, h.Settings))
}

// GetFilters lists the selector options and the default date range.
func (h *DashboardHandlers) GetFilters(c *gin.Context) {
	table, ok := h.currentTable(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, presenter.Options(table))
}

// currentTable writes the 500 response itself when the dataset failed to load.
func (h *DashboardHandlers) currentTable(c *gin.Context) (*dataset.Table, bool) {
	table, err := h.Provider.Current()
	if err != nil {
		h.Logger.Error("dataset unavailable", "error", err, "path", c.Request.URL.Path)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "dataset unavailable", "details": err.Error()})
		return nil, false
	}
	return table, true
}

// parseSelection reads country, event, start and end. Absent values mean "All"
// and the open date range.
func parseSelection(c *gin.Context) (models.FilterSelection, error) {
	sel := models.FilterSelection{
		Country: c.Query("country"),
		Event:   c.Query("event"),
	}
	start, err := parseQueryDate(c, "start")
	if err != nil {
		return sel, err
	}
	end, err := parseQueryDate(c, "end")
	if err != nil {
		return sel, err
	}
	sel.StartDate, sel.EndDate = start, end
	return sel, nil
}

func parseQueryDate(c *gin.Context, key string) (*time.Time, error) {
	value := c.Query(key)
	if value == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(utils.DateLayout, value, time.UTC)
	if err != nil {
		return nil, errors.New("Invalid '" + key + "' date format. Use YYYY-MM-DD (e.g., 2024-07-26)")
	}
	return &t, nil
}
