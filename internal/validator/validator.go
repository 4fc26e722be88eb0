package validator

import (
	"time"

	"orderintake/internal/domain"
)

// ItemContext carries resolution facts the rules need but the order
// itself does not store.
type ItemContext struct {
	// Product is the resolved catalog entry, nil when the item's SKU did
	// not resolve.
	Product *domain.Product
}

// Input is everything the rules inspect for one order.
type Input struct {
	CustomerEmail   string
	Address         *string
	Date            *string
	Items           []domain.OrderItem
	ItemCtx         []ItemContext
	TotalConfidence float64
	Now             time.Time

	// Extraction confidences for the non-item fields; item confidences
	// travel on the items themselves.
	EmailConfidence   float64
	AddressConfidence float64
	DateConfidence    float64

	// Policy bounds.
	DefaultMaxQuantity int
	LowConfidenceFloor float64
}

// Finding attaches a validation issue to its target: ItemIndex is the
// item position, or OrderLevel for order-wide issues.
type Finding struct {
	ItemIndex int
	Issue     domain.ValidationIssue
}

// OrderLevel marks a finding that applies to the order as a whole.
const OrderLevel = -1

// Rule is a single validation check. Rules never mutate the input and
// never stop the pipeline; they report findings for the reviewer.
type Rule interface {
	Code() domain.IssueCode
	Name() string
	Severity() domain.ValidationSeverity
	Validate(in *Input) []Finding
}
