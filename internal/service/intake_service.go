package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"orderintake/internal/config"
	"orderintake/internal/domain"
	"orderintake/internal/extract"
	"orderintake/internal/logging"
	"orderintake/internal/metrics"
	"orderintake/internal/port"
	"orderintake/internal/score"
	"orderintake/internal/validator"
)

// IntakeService defines the email-to-draft-order pipeline contract.
type IntakeService interface {
	ProcessUpload(ctx context.Context, raw []byte, format domain.SourceFormat) (*domain.Order, error)
	GetOrder(ctx context.Context, id string) (*domain.Order, error)
	ListOrders(ctx context.Context) ([]*domain.Order, error)
}

type intakeService struct {
	catalog   port.CatalogLookup
	store     port.OrderStore
	extractor *extract.Extractor
	scorer    *score.Scorer
	engine    *validator.Engine
	cfg       *config.Config
	now       func() time.Time
}

// NewIntakeService wires the pipeline stages together.
func NewIntakeService(
	catalog port.CatalogLookup,
	store port.OrderStore,
	extractor *extract.Extractor,
	scorer *score.Scorer,
	engine *validator.Engine,
	cfg *config.Config,
) IntakeService {
	return &intakeService{
		catalog:   catalog,
		store:     store,
		extractor: extractor,
		scorer:    scorer,
		engine:    engine,
		cfg:       cfg,
		now:       time.Now,
	}
}

// ProcessUpload runs normalize, extract, score, validate and build, then
// stores the resulting draft. Validation findings never fail the upload:
// a garbage email still yields a reviewable low-confidence draft.
func (s *intakeService) ProcessUpload(ctx context.Context, raw []byte, format domain.SourceFormat) (*domain.Order, error) {
	start := s.now()
	log := logging.WithContext(ctx)

	email, err := extract.Normalize(raw, format, start.UTC())
	if err != nil {
		metrics.EmailsProcessedTotal.WithLabelValues(outcomeLabel(err)).Inc()
		return nil, err
	}

	// One catalog generation serves the whole request, so extraction and
	// validation never see different product data.
	snap, err := s.catalog.Snapshot(ctx)
	if err != nil {
		metrics.EmailsProcessedTotal.WithLabelValues(outcomeLabel(err)).Inc()
		return nil, err
	}

	cands := s.extractor.Extract(snap, email)
	order, fields := s.buildOrder(cands, start.UTC())
	s.validate(order, cands, fields)

	if err := s.store.Put(ctx, order); err != nil {
		metrics.EmailsProcessedTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("storing order: %w", err)
	}

	metrics.EmailsProcessedTotal.WithLabelValues("draft").Inc()
	metrics.EmailProcessingDuration.Observe(s.now().Sub(start).Seconds())
	log.Info("draft order created",
		"order_id", order.OrderID,
		"items", len(order.Items),
		"confidence", order.TotalConfidenceScore,
	)
	return order, nil
}

func (s *intakeService) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	return s.store.Get(ctx, id)
}

func (s *intakeService) ListOrders(ctx context.Context) ([]*domain.Order, error) {
	return s.store.List(ctx)
}

// buildOrder turns extraction candidates into a draft order with
// per-field and aggregate confidence scores.
func (s *intakeService) buildOrder(cands *extract.Candidates, now time.Time) (*domain.Order, score.FieldScores) {
	floor := s.cfg.Extract.SimilarityFloor

	fields := score.FieldScores{
		Email:   s.scorer.Best(cands.Email.Evidence, floor),
		Address: s.scorer.Best(cands.Address.Evidence, floor),
		Date:    s.scorer.Best(cands.Date.Evidence, floor),
	}

	items := make([]domain.OrderItem, 0, len(cands.Items))
	itemScores := make([]float64, 0, len(cands.Items))
	quantities := make([]int, 0, len(cands.Items))
	for _, c := range cands.Items {
		sc := s.scorer.Best(c.Evidence, floor)
		price := decimal.Zero
		if c.Product != nil {
			price = c.Product.Price
		}
		items = append(items, domain.OrderItem{
			SKU:                   c.SKU,
			Quantity:              c.Quantity,
			Price:                 price,
			ConfidenceScore:       sc,
			SuggestedReplacements: c.Suggestions,
		})
		itemScores = append(itemScores, sc)
		quantities = append(quantities, c.Quantity)
	}

	order := &domain.Order{
		OrderID:              uuid.Must(uuid.NewV7()).String(),
		CustomerEmail:        cands.Email.Value,
		Items:                items,
		TotalConfidenceScore: s.scorer.OrderScore(itemScores, quantities, fields),
		Status:               domain.StatusDraft,
		Notes:                cands.Notes,
		CreatedAt:            now,
	}
	if cands.Address.Value != "" {
		addr := cands.Address.Value
		order.DeliveryDetails.Address = &addr
	}
	if cands.Date.Found {
		date := cands.Date.Value.Format("2006-01-02")
		order.DeliveryDetails.Date = &date
	}
	return order, fields
}

// validate runs the rule engine and attaches findings to the order.
func (s *intakeService) validate(order *domain.Order, cands *extract.Candidates, fields score.FieldScores) {
	itemCtx := make([]validator.ItemContext, len(cands.Items))
	for i, c := range cands.Items {
		itemCtx[i] = validator.ItemContext{Product: c.Product}
	}
	res := s.engine.Run(&validator.Input{
		CustomerEmail:      order.CustomerEmail,
		Address:            order.DeliveryDetails.Address,
		Date:               order.DeliveryDetails.Date,
		Items:              order.Items,
		ItemCtx:            itemCtx,
		TotalConfidence:    order.TotalConfidenceScore,
		EmailConfidence:    fields.Email,
		AddressConfidence:  fields.Address,
		DateConfidence:     fields.Date,
		Now:                order.CreatedAt,
		DefaultMaxQuantity: s.cfg.Catalog.DefaultMaxQuantity,
		LowConfidenceFloor: s.cfg.Validation.LowConfidenceFloor,
	})
	order.ValidationIssues = res.OrderIssues
	for i := range order.Items {
		order.Items[i].ValidationIssues = res.ItemIssues[i]
	}
}

// outcomeLabel maps pipeline failures to a metric outcome.
func outcomeLabel(err error) string {
	switch {
	case errors.Is(err, domain.ErrUnsupportedFormat):
		return "unsupported_format"
	case errors.Is(err, domain.ErrMalformedMessage):
		return "malformed"
	case errors.Is(err, domain.ErrLookupUnavailable):
		return "lookup_unavailable"
	default:
		return "error"
	}
}
