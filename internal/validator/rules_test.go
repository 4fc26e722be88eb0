package validator_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orderintake/internal/domain"
	"orderintake/internal/validator"
)

var testNow = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

func strptr(s string) *string { return &s }

func product(sku string, moq, max, stock int) *domain.Product {
	return &domain.Product{
		SKU:         sku,
		Description: sku + " product",
		Price:       decimal.NewFromInt(10),
		MinOrderQty: moq,
		MaxOrderQty: max,
		Stock:       stock,
	}
}

// cleanInput returns an input that passes every rule.
func cleanInput() *validator.Input {
	return &validator.Input{
		CustomerEmail:      "alice@example.com",
		Address:            strptr("12 Oak St, Springfield"),
		Date:               strptr("2025-06-10"),
		Items:              []domain.OrderItem{{SKU: "SKU-100", Quantity: 5, ConfidenceScore: 0.95}},
		ItemCtx:            []validator.ItemContext{{Product: product("SKU-100", 1, 0, 100)}},
		TotalConfidence:    0.9,
		EmailConfidence:    0.95,
		AddressConfidence:  0.85,
		DateConfidence:     0.90,
		Now:                testNow,
		DefaultMaxQuantity: 10000,
		LowConfidenceFloor: 0.30,
	}
}

func run(in *validator.Input) *validator.Result {
	return validator.NewDefaultEngine().Run(in)
}

func codes(issues []domain.ValidationIssue) []domain.IssueCode {
	var out []domain.IssueCode
	for _, is := range issues {
		out = append(out, is.Code)
	}
	return out
}

func TestCleanOrderHasNoIssues(t *testing.T) {
	res := run(cleanInput())
	assert.Empty(t, res.OrderIssues)
	assert.Empty(t, res.ItemIssues[0])
}

func TestUnknownSKUIsError(t *testing.T) {
	in := cleanInput()
	in.Items = append(in.Items, domain.OrderItem{SKU: "SKU-999", Quantity: 2})
	in.ItemCtx = append(in.ItemCtx, validator.ItemContext{})

	res := run(in)
	require.Contains(t, codes(res.ItemIssues[1]), domain.IssueUnknownSKU)
	for _, is := range res.ItemIssues[1] {
		if is.Code == domain.IssueUnknownSKU {
			assert.Equal(t, domain.SeverityError, is.Severity)
			assert.Equal(t, "items[1]", is.FieldRef)
		}
	}
}

func TestInvalidQuantity(t *testing.T) {
	in := cleanInput()
	in.Items[0].Quantity = 0
	res := run(in)
	assert.Contains(t, codes(res.ItemIssues[0]), domain.IssueInvalidQuantity)

	in = cleanInput()
	in.Items[0].Quantity = 20000
	res = run(in)
	assert.Contains(t, codes(res.ItemIssues[0]), domain.IssueInvalidQuantity)
}

func TestInvalidQuantityUsesProductMax(t *testing.T) {
	in := cleanInput()
	in.ItemCtx[0] = validator.ItemContext{Product: product("SKU-100", 1, 10, 100)}
	in.Items[0].Quantity = 11

	res := run(in)
	assert.Contains(t, codes(res.ItemIssues[0]), domain.IssueInvalidQuantity)
}

func TestBelowMOQIsWarning(t *testing.T) {
	in := cleanInput()
	in.ItemCtx[0] = validator.ItemContext{Product: product("SKU-100", 10, 0, 100)}
	in.Items[0].Quantity = 5

	res := run(in)
	require.Contains(t, codes(res.ItemIssues[0]), domain.IssueBelowMOQ)
	assert.Equal(t, domain.SeverityWarning, res.ItemIssues[0][0].Severity)
}

func TestExceedsStockIsWarning(t *testing.T) {
	in := cleanInput()
	in.Items[0].Quantity = 150

	res := run(in)
	assert.Contains(t, codes(res.ItemIssues[0]), domain.IssueExceedsStock)
}

func TestInvalidCustomerEmail(t *testing.T) {
	in := cleanInput()
	in.CustomerEmail = "not-an-email"
	res := run(in)
	assert.Contains(t, codes(res.OrderIssues), domain.IssueInvalidCustomerEmail)

	in = cleanInput()
	in.CustomerEmail = ""
	res = run(in)
	assert.Contains(t, codes(res.OrderIssues), domain.IssueInvalidCustomerEmail)
}

func TestPastDateIsWarning(t *testing.T) {
	in := cleanInput()
	in.Date = strptr("2025-05-01")

	res := run(in)
	require.Contains(t, codes(res.OrderIssues), domain.IssueInvalidOrPastDate)
	for _, is := range res.OrderIssues {
		if is.Code == domain.IssueInvalidOrPastDate {
			assert.Equal(t, domain.SeverityWarning, is.Severity)
			assert.Equal(t, "delivery_details.date", is.FieldRef)
		}
	}
}

func TestTodayIsNotPast(t *testing.T) {
	in := cleanInput()
	in.Date = strptr("2025-06-02")
	res := run(in)
	assert.NotContains(t, codes(res.OrderIssues), domain.IssueInvalidOrPastDate)
}

func TestMissingDateAndAddress(t *testing.T) {
	in := cleanInput()
	in.Date = nil
	in.Address = nil

	res := run(in)
	assert.Contains(t, codes(res.OrderIssues), domain.IssueMissingDate)
	assert.Contains(t, codes(res.OrderIssues), domain.IssueMissingAddress)
	assert.NotContains(t, codes(res.OrderIssues), domain.IssueInvalidOrPastDate)
	assert.NotContains(t, codes(res.OrderIssues), domain.IssueIncompleteAddress)
}

func TestIncompleteAddress(t *testing.T) {
	in := cleanInput()
	in.Address = strptr("Springfield")

	res := run(in)
	assert.Contains(t, codes(res.OrderIssues), domain.IssueIncompleteAddress)
}

func TestNoItemsIsWarning(t *testing.T) {
	in := cleanInput()
	in.Items = nil
	in.ItemCtx = nil

	res := run(in)
	assert.Contains(t, codes(res.OrderIssues), domain.IssueNoItems)
}

func TestLowConfidence(t *testing.T) {
	in := cleanInput()
	in.TotalConfidence = 0.1

	res := run(in)
	assert.Contains(t, codes(res.OrderIssues), domain.IssueLowConfidence)
}

func TestLowConfidenceItem(t *testing.T) {
	in := cleanInput()
	in.Items[0].ConfidenceScore = 0.10

	res := run(in)
	assert.Contains(t, codes(res.ItemIssues[0]), domain.IssueLowConfidence)
	assert.NotContains(t, codes(res.OrderIssues), domain.IssueLowConfidence)
}

func TestLowConfidenceField(t *testing.T) {
	in := cleanInput()
	in.DateConfidence = 0.10

	res := run(in)
	require.Contains(t, codes(res.OrderIssues), domain.IssueLowConfidence)
	for _, is := range res.OrderIssues {
		if is.Code == domain.IssueLowConfidence {
			assert.Equal(t, "delivery_details.date", is.FieldRef)
			assert.Equal(t, domain.SeverityWarning, is.Severity)
		}
	}
}

func TestLowConfidenceSkipsAbsentFields(t *testing.T) {
	// A field that was never extracted is reported as missing, not as a
	// low-confidence extraction on top of it.
	in := cleanInput()
	in.Address = nil
	in.AddressConfidence = 0

	res := run(in)
	assert.Contains(t, codes(res.OrderIssues), domain.IssueMissingAddress)
	assert.NotContains(t, codes(res.OrderIssues), domain.IssueLowConfidence)
}

func TestAllRulesReportedTogether(t *testing.T) {
	// Validation never short-circuits: a thoroughly broken order reports
	// every finding at once.
	in := &validator.Input{
		CustomerEmail:      "",
		Address:            nil,
		Date:               nil,
		Items:              []domain.OrderItem{{SKU: "SKU-999", Quantity: 0}},
		ItemCtx:            []validator.ItemContext{{}},
		TotalConfidence:    0.05,
		Now:                testNow,
		DefaultMaxQuantity: 10000,
		LowConfidenceFloor: 0.30,
	}

	res := run(in)
	assert.Contains(t, codes(res.OrderIssues), domain.IssueInvalidCustomerEmail)
	assert.Contains(t, codes(res.OrderIssues), domain.IssueMissingDate)
	assert.Contains(t, codes(res.OrderIssues), domain.IssueMissingAddress)
	assert.Contains(t, codes(res.OrderIssues), domain.IssueLowConfidence)
	assert.Contains(t, codes(res.ItemIssues[0]), domain.IssueUnknownSKU)
	assert.Contains(t, codes(res.ItemIssues[0]), domain.IssueInvalidQuantity)
	assert.Contains(t, codes(res.ItemIssues[0]), domain.IssueLowConfidence)
}
