package csvexport_test

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orderintake/internal/csvexport"
	"orderintake/internal/domain"
)

func strptr(s string) *string { return &s }

func TestWriteOrders(t *testing.T) {
	order := &domain.Order{
		OrderID:       "o1",
		CustomerEmail: "alice@example.com",
		Items: []domain.OrderItem{
			{SKU: "SKU-100", Quantity: 2, Price: decimal.RequireFromString("9.99")},
			{SKU: "SKU-999", Quantity: 5, ValidationIssues: []domain.ValidationIssue{
				{Code: domain.IssueUnknownSKU, Severity: domain.SeverityError},
			}},
		},
		DeliveryDetails: domain.DeliveryDetails{
			Address: strptr("12 Oak St, Springfield"),
			Date:    strptr("2025-06-06"),
		},
		ValidationIssues: []domain.ValidationIssue{
			{Code: domain.IssueMissingDate, Severity: domain.SeverityWarning},
		},
		TotalConfidenceScore: 0.42,
		Status:               domain.StatusDraft,
		Notes:                "urgent",
		CreatedAt:            time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC),
	}

	var buf bytes.Buffer
	w := csvexport.NewWriter(&buf)
	require.NoError(t, w.WriteHeader())
	require.NoError(t, w.WriteOrders([]*domain.Order{order}))
	w.Flush()
	require.NoError(t, w.Error())

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "Order ID", records[0][0])
	row := records[1]
	assert.Equal(t, "o1", row[0])
	assert.Equal(t, "Draft", row[1])
	assert.Equal(t, "alice@example.com", row[2])
	assert.Equal(t, "12 Oak St, Springfield", row[3])
	assert.Equal(t, "2025-06-06", row[4])
	assert.Equal(t, "2", row[5])  // line item count
	assert.Equal(t, "7", row[6])  // total quantity
	assert.Equal(t, "19.98", row[7])
	assert.Equal(t, "0.42", row[8])
	assert.Equal(t, "1", row[9])  // error issues
	assert.Equal(t, "1", row[10]) // warning issues
	assert.Equal(t, "urgent", row[11])
	assert.Equal(t, "2025-06-02T10:00:00Z", row[12])
}

func TestWriteOrdersEmptyFields(t *testing.T) {
	order := &domain.Order{
		OrderID:   "o2",
		Status:    domain.StatusDraft,
		CreatedAt: time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC),
	}

	var buf bytes.Buffer
	w := csvexport.NewWriter(&buf)
	require.NoError(t, w.WriteHeader())
	require.NoError(t, w.WriteOrders([]*domain.Order{order}))
	w.Flush()

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	row := records[1]
	assert.Empty(t, row[3])
	assert.Empty(t, row[4])
	assert.Equal(t, "0", row[5])
	assert.Equal(t, "0.00", row[7])
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "My_Orders_2025", csvexport.SanitizeFilename("My Orders (2025)"))
	assert.Equal(t, "a_b", csvexport.SanitizeFilename("a///b"))
	assert.Equal(t, "trimmed", csvexport.SanitizeFilename("__trimmed__"))
}

func TestBuildFilename(t *testing.T) {
	name := csvexport.BuildFilename("orders")
	assert.Regexp(t, `^orders_\d{4}-\d{2}-\d{2}\.csv$`, name)
}
