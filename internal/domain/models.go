package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ValidationIssue is a structured, non-fatal finding about a field's
// correctness or completeness. Issues are data for the human reviewer,
// never errors.
type ValidationIssue struct {
	Code     IssueCode          `json:"code"`
	Message  string             `json:"message"`
	Severity ValidationSeverity `json:"severity"`
	FieldRef string             `json:"field_ref"`
}

// Evidence is a single extraction signal supporting a candidate value.
// Evidence lives on candidates during extraction and scoring; it is not
// carried on the final Order.
type Evidence struct {
	Kind EvidenceKind
	// Detail holds the matched text span or header value.
	Detail string
	// Similarity is set for fuzzy_description evidence, in [0,1].
	Similarity float64
}

// OrderItem is a single extracted line item.
type OrderItem struct {
	SKU                   string            `json:"sku"`
	Quantity              int               `json:"quantity"`
	Price                 decimal.Decimal   `json:"price"`
	ConfidenceScore       float64           `json:"confidence_score"`
	ValidationIssues      []ValidationIssue `json:"validation_issues"`
	SuggestedReplacements []string          `json:"suggested_replacements,omitempty"`
}

// DeliveryDetails holds the extracted delivery target. Absent fields are
// nil (JSON null) so the UI can distinguish "not found" from "found but
// empty".
type DeliveryDetails struct {
	Address *string `json:"address"`
	// Date is an ISO YYYY-MM-DD calendar date.
	Date *string `json:"date"`
}

// AuditEntry records one workflow action on an order.
type AuditEntry struct {
	Actor         string      `json:"actor"`
	Action        AuditAction `json:"action"`
	Reason        string      `json:"reason,omitempty"`
	OverrideCodes []IssueCode `json:"override_codes,omitempty"`
	At            time.Time   `json:"at"`
}

// Order is the immutable result of processing one uploaded email.
// Fields are frozen once built; only Status and AuditTrail change, and
// only through the approval workflow.
type Order struct {
	OrderID              string            `json:"order_id"`
	CustomerEmail        string            `json:"customer_email"`
	Items                []OrderItem       `json:"items"`
	DeliveryDetails      DeliveryDetails   `json:"delivery_details"`
	TotalConfidenceScore float64           `json:"total_confidence_score"`
	ValidationIssues     []ValidationIssue `json:"validation_issues"`
	Status               OrderStatus       `json:"status"`
	Notes                string            `json:"notes,omitempty"`
	CreatedAt            time.Time         `json:"created_at"`
	AuditTrail           []AuditEntry      `json:"audit_trail,omitempty"`
}

// ErrorCodes returns the distinct error-severity issue codes across the
// order and all of its items.
func (o *Order) ErrorCodes() []IssueCode {
	seen := make(map[IssueCode]bool)
	var codes []IssueCode
	add := func(issues []ValidationIssue) {
		for _, is := range issues {
			if is.Severity == SeverityError && !seen[is.Code] {
				seen[is.Code] = true
				codes = append(codes, is.Code)
			}
		}
	}
	add(o.ValidationIssues)
	for i := range o.Items {
		add(o.Items[i].ValidationIssues)
	}
	return codes
}

// Product is a catalog entry.
type Product struct {
	SKU         string
	Description string
	Price       decimal.Decimal
	MinOrderQty int
	MaxOrderQty int
	Stock       int
}
