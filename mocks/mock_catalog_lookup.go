package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"orderintake/internal/domain"
	"orderintake/internal/port"
)

// MockCatalogLookup is a mock implementation of port.CatalogLookup.
type MockCatalogLookup struct {
	mock.Mock
}

func (m *MockCatalogLookup) Snapshot(ctx context.Context) (port.CatalogSnapshot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(port.CatalogSnapshot), args.Error(1)
}

// MockCatalogSnapshot is a mock implementation of port.CatalogSnapshot.
type MockCatalogSnapshot struct {
	mock.Mock
}

func (m *MockCatalogSnapshot) BySKU(sku string) (*domain.Product, bool) {
	args := m.Called(sku)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).(*domain.Product), args.Bool(1)
}

func (m *MockCatalogSnapshot) Descriptions() []port.DescriptionEntry {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]port.DescriptionEntry)
}

func (m *MockCatalogSnapshot) Len() int {
	args := m.Called()
	return args.Int(0)
}
