package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"orderintake/internal/domain"
	"orderintake/internal/logging"
	"orderintake/internal/metrics"
	"orderintake/internal/port"
)

// WorkflowService defines the order approval workflow contract.
type WorkflowService interface {
	Approve(ctx context.Context, id, actor string, overrides []domain.IssueCode) (*domain.Order, error)
	Reject(ctx context.Context, id, actor, reason string) (*domain.Order, error)
}

type workflowService struct {
	store port.OrderStore
	now   func() time.Time
}

// NewWorkflowService creates the workflow service.
func NewWorkflowService(store port.OrderStore) WorkflowService {
	return &workflowService{store: store, now: time.Now}
}

// Approve transitions a draft to Approved. Every error-severity issue
// code on the order must appear in overrides, or the transition fails
// with domain.ErrValidationBlocked and nothing changes. Overrides are
// recorded in the audit trail.
func (s *workflowService) Approve(ctx context.Context, id, actor string, overrides []domain.IssueCode) (*domain.Order, error) {
	overridden := make(map[domain.IssueCode]bool, len(overrides))
	for _, c := range overrides {
		overridden[c] = true
	}

	guard := func(o *domain.Order) error {
		var blocked []string
		for _, code := range o.ErrorCodes() {
			if !overridden[code] {
				blocked = append(blocked, string(code))
			}
		}
		if len(blocked) > 0 {
			return fmt.Errorf("%w: unacknowledged issues: %s",
				domain.ErrValidationBlocked, strings.Join(blocked, ", "))
		}
		return nil
	}

	entry := domain.AuditEntry{
		Actor:         actor,
		Action:        domain.AuditApprove,
		OverrideCodes: overrides,
		At:            s.now().UTC(),
	}
	order, err := s.store.Transition(ctx, id, domain.StatusDraft, domain.StatusApproved, guard, entry)
	if err != nil {
		metrics.OrderTransitionsTotal.WithLabelValues("approve", "rejected").Inc()
		return nil, err
	}
	metrics.OrderTransitionsTotal.WithLabelValues("approve", "ok").Inc()
	logging.WithContext(ctx).Info("order approved",
		"order_id", id, "actor", actor, "overrides", len(overrides))
	return order, nil
}

// Reject transitions a draft to Rejected with a recorded reason.
func (s *workflowService) Reject(ctx context.Context, id, actor, reason string) (*domain.Order, error) {
	entry := domain.AuditEntry{
		Actor:  actor,
		Action: domain.AuditReject,
		Reason: reason,
		At:     s.now().UTC(),
	}
	order, err := s.store.Transition(ctx, id, domain.StatusDraft, domain.StatusRejected, nil, entry)
	if err != nil {
		metrics.OrderTransitionsTotal.WithLabelValues("reject", "rejected").Inc()
		return nil, err
	}
	metrics.OrderTransitionsTotal.WithLabelValues("reject", "ok").Inc()
	logging.WithContext(ctx).Info("order rejected", "order_id", id, "actor", actor)
	return order, nil
}
