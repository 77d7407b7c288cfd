package handlers

import (
	"storewatch/internal/app"

	"github.com/labstack/echo/v4"
)

// SetupRoutes sets up all API routes
func SetupRoutes(api *echo.Group, services *app.Services) {
	storeHandler := NewStoreHandler(services.StoreRepo)
	reportHandler := NewReportHandler(services.ReportService)

	stores := api.Group("/stores")
	stores.GET("", storeHandler.List)
	stores.GET("/:id", storeHandler.GetByID)
	stores.GET("/:id/uptime", reportHandler.GetStoreUptime)

	reports := api.Group("/reports")
	reports.POST("/trigger", reportHandler.Trigger)
	reports.GET("/:id", reportHandler.Get)
}
