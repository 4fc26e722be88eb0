package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"orderintake/internal/domain"
	"orderintake/internal/port"
)

// entry pairs an order with its own lock so status transitions on one
// order never block work on another.
type entry struct {
	mu    sync.Mutex
	order domain.Order
}

// MemoryStore is an in-process order store. Orders are copied on the
// way in and out, so callers can never mutate stored state except
// through Transition.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]*entry
}

var _ port.OrderStore = (*MemoryStore)(nil)

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]*entry)}
}

// Put stores a copy of the order, keyed by its ID.
func (s *MemoryStore) Put(_ context.Context, o *domain.Order) error {
	if o.OrderID == "" {
		return fmt.Errorf("order has no ID")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[o.OrderID] = &entry{order: *cloneOrder(o)}
	return nil
}

// Get returns a copy of the order, or domain.ErrOrderNotFound.
func (s *MemoryStore) Get(_ context.Context, id string) (*domain.Order, error) {
	s.mu.RLock()
	e, ok := s.entries[id]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrOrderNotFound, id)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return cloneOrder(&e.order), nil
}

// List returns copies of all orders, newest first.
func (s *MemoryStore) List(_ context.Context) ([]*domain.Order, error) {
	s.mu.RLock()
	out := make([]*domain.Order, 0, len(s.entries))
	for _, e := range s.entries {
		e.mu.Lock()
		out = append(out, cloneOrder(&e.order))
		e.mu.Unlock()
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].OrderID > out[j].OrderID
	})
	return out, nil
}

// Transition performs a compare-and-set status change under the order's
// own lock. Concurrent transitions on the same order serialize; exactly
// one observes the expected from status.
func (s *MemoryStore) Transition(_ context.Context, id string, from, to domain.OrderStatus,
	guard func(*domain.Order) error, auditEntry domain.AuditEntry) (*domain.Order, error) {

	s.mu.RLock()
	e, ok := s.entries[id]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrOrderNotFound, id)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.order.Status != from {
		return nil, fmt.Errorf("%w: order %s is %s, expected %s",
			domain.ErrInvalidTransition, id, e.order.Status, from)
	}
	if guard != nil {
		if err := guard(cloneOrder(&e.order)); err != nil {
			return nil, err
		}
	}
	e.order.Status = to
	e.order.AuditTrail = append(e.order.AuditTrail, auditEntry)
	return cloneOrder(&e.order), nil
}

// cloneOrder deep-copies an order so stored state never aliases caller
// slices.
func cloneOrder(o *domain.Order) *domain.Order {
	c := *o
	if o.Items != nil {
		c.Items = make([]domain.OrderItem, len(o.Items))
		for i, item := range o.Items {
			c.Items[i] = item
			c.Items[i].ValidationIssues = append([]domain.ValidationIssue(nil), item.ValidationIssues...)
			c.Items[i].SuggestedReplacements = append([]string(nil), item.SuggestedReplacements...)
		}
	}
	c.ValidationIssues = append([]domain.ValidationIssue(nil), o.ValidationIssues...)
	if o.AuditTrail != nil {
		c.AuditTrail = make([]domain.AuditEntry, len(o.AuditTrail))
		for i, a := range o.AuditTrail {
			c.AuditTrail[i] = a
			c.AuditTrail[i].OverrideCodes = append([]domain.IssueCode(nil), a.OverrideCodes...)
		}
	}
	if o.DeliveryDetails.Address != nil {
		addr := *o.DeliveryDetails.Address
		c.DeliveryDetails.Address = &addr
	}
	if o.DeliveryDetails.Date != nil {
		date := *o.DeliveryDetails.Date
		c.DeliveryDetails.Date = &date
	}
	return &c
}
