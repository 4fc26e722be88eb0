package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"orderintake/internal/domain"
	"orderintake/internal/service"
)

// MockIntakeService is a mock implementation of service.IntakeService.
type MockIntakeService struct {
	mock.Mock
}

func (m *MockIntakeService) ProcessUpload(ctx context.Context, raw []byte, format domain.SourceFormat) (*domain.Order, error) {
	args := m.Called(ctx, raw, format)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockIntakeService) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockIntakeService) ListOrders(ctx context.Context) ([]*domain.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Order), args.Error(1)
}

// MockWorkflowService is a mock implementation of service.WorkflowService.
type MockWorkflowService struct {
	mock.Mock
}

func (m *MockWorkflowService) Approve(ctx context.Context, id, actor string, overrides []domain.IssueCode) (*domain.Order, error) {
	args := m.Called(ctx, id, actor, overrides)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockWorkflowService) Reject(ctx context.Context, id, actor, reason string) (*domain.Order, error) {
	args := m.Called(ctx, id, actor, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

// MockExportService is a mock implementation of service.ExportService.
type MockExportService struct {
	mock.Mock
}

func (m *MockExportService) RenderPDF(ctx context.Context, id string) ([]byte, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockExportService) OrdersCSV(ctx context.Context) ([]byte, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// MockInsightsService is a mock implementation of service.InsightsService.
type MockInsightsService struct {
	mock.Mock
}

func (m *MockInsightsService) CommonProducts(ctx context.Context, minOccurrences int) ([]service.ProductPair, error) {
	args := m.Called(ctx, minOccurrences)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.ProductPair), args.Error(1)
}

func (m *MockInsightsService) CustomerPatterns(ctx context.Context) ([]service.CustomerPattern, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.CustomerPattern), args.Error(1)
}

func (m *MockInsightsService) TimeBased(ctx context.Context, days int) (*service.TimeInsights, error) {
	args := m.Called(ctx, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.TimeInsights), args.Error(1)
}

func (m *MockInsightsService) MergeOrders(ctx context.Context, ids []string) (*service.MergeResult, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.MergeResult), args.Error(1)
}

func (m *MockInsightsService) Report(ctx context.Context) (*service.InsightsReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.InsightsReport), args.Error(1)
}
