package main

import (
	"fmt"
	"log/slog"
	"os"

	"orderintake/internal/catalog"
	"orderintake/internal/config"
	"orderintake/internal/export"
	"orderintake/internal/extract"
	"orderintake/internal/handler"
	"orderintake/internal/logging"
	"orderintake/internal/metrics"
	"orderintake/internal/router"
	"orderintake/internal/score"
	"orderintake/internal/service"
	"orderintake/internal/store"
	"orderintake/internal/validator"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logging.Init(cfg.Log)
	metrics.Register()

	cat, err := catalog.NewCSVCatalog(cfg.Catalog.Path)
	if err != nil {
		return fmt.Errorf("failed to load product catalog: %w", err)
	}

	orderStore := store.NewMemoryStore()

	// Initialize pipeline stages
	extractor := extract.NewExtractor(cfg.Extract)
	scorer := score.NewScorer(cfg.Scoring)
	engine := validator.NewDefaultEngine()

	// Initialize services
	intakeSvc := service.NewIntakeService(cat, orderStore, extractor, scorer, engine, cfg)
	workflowSvc := service.NewWorkflowService(orderStore)
	exportSvc := service.NewExportService(orderStore, export.NewPDFRenderer())
	insightsSvc := service.NewInsightsService(orderStore)

	// Initialize handlers
	orderH := handler.NewOrderHandler(intakeSvc, workflowSvc, exportSvc)
	insightsH := handler.NewInsightsHandler(insightsSvc)
	healthH := handler.NewHealthHandler(cat)

	// Setup router
	r := router.Setup(cfg, orderH, insightsH, healthH)

	slog.Info("server starting", "addr", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}
