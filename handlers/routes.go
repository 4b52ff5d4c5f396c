package handlers

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.Engine, h *DashboardHandlers) {
	r.SetHTMLTemplate(dashboardTemplate)

	r.GET("/", h.Index)
	r.GET("/healthz", h.Healthz)
	r.GET("/readyz", h.Readyz)

	api := r.Group("/api")
	{
		api.GET("/dashboard", h.GetDashboard)
		api.GET("/filters", h.GetFilters)

		export := api.Group("/export")
		{
			export.GET("/visits.csv", h.ExportVisits)
			export.GET("/high-buffering.csv", h.ExportHighBuffering)
		}

		api.POST("/upload", h.UploadPreview)
		api.POST("/fetch", h.FetchData)
		api.POST("/reload", h.Reload)
	}
}
