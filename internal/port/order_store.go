package port

import (
	"context"

	"orderintake/internal/domain"
)

// OrderStore holds orders for the lifetime of the process. Retention
// beyond that is storage's concern, not the core's.
type OrderStore interface {
	Put(ctx context.Context, o *domain.Order) error
	Get(ctx context.Context, id string) (*domain.Order, error)
	List(ctx context.Context) ([]*domain.Order, error)

	// Transition performs an atomic compare-and-set on one order's
	// status: it fails with domain.ErrInvalidTransition unless the
	// current status equals from, runs guard under the same lock, and
	// on success applies to, appends entry to the audit trail, and
	// returns the updated order. Unrelated orders never contend.
	Transition(ctx context.Context, id string, from, to domain.OrderStatus,
		guard func(*domain.Order) error, entry domain.AuditEntry) (*domain.Order, error)
}
