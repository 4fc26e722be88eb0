package mocks

import (
	"github.com/stretchr/testify/mock"

	"orderintake/internal/domain"
)

// MockExportRenderer is a mock implementation of port.ExportRenderer.
type MockExportRenderer struct {
	mock.Mock
}

func (m *MockExportRenderer) Render(o *domain.Order) ([]byte, error) {
	args := m.Called(o)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
