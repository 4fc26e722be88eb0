package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"orderintake/internal/domain"
)

// MockOrderStore is a mock implementation of port.OrderStore.
type MockOrderStore struct {
	mock.Mock
}

func (m *MockOrderStore) Put(ctx context.Context, o *domain.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderStore) Get(ctx context.Context, id string) (*domain.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderStore) List(ctx context.Context) ([]*domain.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Order), args.Error(1)
}

func (m *MockOrderStore) Transition(ctx context.Context, id string, from, to domain.OrderStatus,
	guard func(*domain.Order) error, entry domain.AuditEntry) (*domain.Order, error) {
	args := m.Called(ctx, id, from, to, guard, entry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}
