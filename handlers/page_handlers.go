package handlers

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"broadcastdash/api/models"
	"broadcastdash/api/presenter"
)

//go:embed templates/dashboard.html
var templateFS embed.FS

const dashboardPage = "dashboard.html"

var dashboardTemplate = template.Must(template.ParseFS(templateFS, "templates/"+dashboardPage))

type pageData struct {
	VM              models.ViewModel
	Error           string
	VisitsExportURL string
}

// Index serves the dashboard page for the selection in the query string.
func (h *DashboardHandlers) Index(c *gin.Context) {
	data := pageData{VisitsExportURL: "/api/export/visits.csv"}
	if q := c.Request.URL.RawQuery; q != "" {
		data.VisitsExportURL += "?" + q
	}

	status := http.StatusOK
	sel, err := parseSelection(c)
	table, loadErr := h.Provider.Current()
	switch {
	case loadErr != nil:
		h.Logger.Error("dataset unavailable", "error", loadErr, "path", c.Request.URL.Path)
		status = http.StatusInternalServerError
		data.Error = "Dataset unavailable: " + loadErr.Error()
	case err != nil:
		status = http.StatusBadRequest
		data.Error = err.Error()
		data.VM.Filters = presenter.Options(table)
	default:
		data.VM = presenter.Render(table, sel, h.Settings)
	}

	c.HTML(status, dashboardPage, data)
}
