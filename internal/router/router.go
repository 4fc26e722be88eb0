package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"orderintake/internal/config"
	"orderintake/internal/handler"
	"orderintake/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	orderH *handler.OrderHandler,
	insightsH *handler.InsightsHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health checks and metrics
	r.GET("/healthz", healthH.Healthz)
	r.GET("/readyz", healthH.Readyz)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	api.POST("/upload-email", orderH.UploadEmail)
	api.POST("/approve-order", orderH.ApproveOrder)
	api.POST("/reject-order", orderH.RejectOrder)
	api.GET("/orders", orderH.ListOrders)
	api.GET("/orders/:order_id", orderH.GetOrder)
	api.GET("/orders-export", orderH.ExportCSV)
	api.GET("/export-pdf/:order_id", orderH.ExportPDF)
	api.POST("/orders/merge", insightsH.MergeOrders)
	api.GET("/insights/common-products", insightsH.CommonProducts)
	api.GET("/insights/customer-patterns", insightsH.CustomerPatterns)
	api.GET("/insights/time-based", insightsH.TimeBased)
	api.GET("/insights/export", insightsH.Export)

	return r
}
