package service_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"orderintake/internal/csvexport"
	"orderintake/internal/domain"
	"orderintake/internal/service"
	"orderintake/internal/store"
	"orderintake/mocks"
)

func TestRenderPDFRequiresApproval(t *testing.T) {
	s := storeWithOrder(t, cleanDraft("o1"))
	renderer := new(mocks.MockExportRenderer)
	svc := service.NewExportService(s, renderer)

	_, err := svc.RenderPDF(context.Background(), "o1")
	assert.ErrorIs(t, err, domain.ErrNotApproved)
	renderer.AssertNotCalled(t, "Render", mock.Anything)
}

func TestRenderPDFApprovedOrder(t *testing.T) {
	o := cleanDraft("o1")
	o.Status = domain.StatusApproved
	s := storeWithOrder(t, o)

	renderer := new(mocks.MockExportRenderer)
	renderer.On("Render", mock.Anything).Return([]byte("%PDF-fake"), nil)
	svc := service.NewExportService(s, renderer)

	out, err := svc.RenderPDF(context.Background(), "o1")
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-fake"), out)
	renderer.AssertExpectations(t)
}

func TestRenderPDFMissingOrder(t *testing.T) {
	svc := service.NewExportService(store.NewMemoryStore(), new(mocks.MockExportRenderer))
	_, err := svc.RenderPDF(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestOrdersCSV(t *testing.T) {
	s := storeWithOrder(t, cleanDraft("o1"))
	svc := service.NewExportService(s, new(mocks.MockExportRenderer))

	out, err := svc.OrdersCSV(context.Background())
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(out, csvexport.BOM))
	assert.Contains(t, string(out), "Order ID")
	assert.Contains(t, string(out), "o1")
	assert.Contains(t, string(out), "alice@example.com")
}
