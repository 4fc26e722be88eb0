package service

import (
	"bytes"
	"context"
	"fmt"

	"orderintake/internal/csvexport"
	"orderintake/internal/domain"
	"orderintake/internal/metrics"
	"orderintake/internal/port"
)

// ExportService defines the order export contract.
type ExportService interface {
	// RenderPDF renders an approved order. Non-approved orders fail with
	// domain.ErrNotApproved.
	RenderPDF(ctx context.Context, id string) ([]byte, error)
	// OrdersCSV renders all orders as a CSV report.
	OrdersCSV(ctx context.Context) ([]byte, error)
}

type exportService struct {
	store    port.OrderStore
	renderer port.ExportRenderer
}

// NewExportService creates the export service.
func NewExportService(store port.OrderStore, renderer port.ExportRenderer) ExportService {
	return &exportService{store: store, renderer: renderer}
}

func (s *exportService) RenderPDF(ctx context.Context, id string) ([]byte, error) {
	order, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.Status != domain.StatusApproved {
		return nil, fmt.Errorf("%w: order %s is %s", domain.ErrNotApproved, id, order.Status)
	}
	out, err := s.renderer.Render(order)
	if err != nil {
		return nil, fmt.Errorf("rendering order %s: %w", id, err)
	}
	metrics.ExportsTotal.WithLabelValues("pdf").Inc()
	return out, nil
}

func (s *exportService) OrdersCSV(ctx context.Context) ([]byte, error) {
	orders, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.Write(csvexport.BOM)
	w := csvexport.NewWriter(&buf)
	if err := w.WriteHeader(); err != nil {
		return nil, fmt.Errorf("writing CSV header: %w", err)
	}
	if err := w.WriteOrders(orders); err != nil {
		return nil, fmt.Errorf("writing CSV rows: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flushing CSV: %w", err)
	}
	metrics.ExportsTotal.WithLabelValues("csv").Inc()
	return buf.Bytes(), nil
}
