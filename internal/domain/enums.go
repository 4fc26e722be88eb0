package domain

// SourceFormat represents the declared format of an uploaded email file.
type SourceFormat string

const (
	FormatTXT SourceFormat = "txt"
	FormatEML SourceFormat = "eml"
)

// AllowedExtensions maps file extensions (without dot) to SourceFormat.
var AllowedExtensions = map[string]SourceFormat{
	"txt": FormatTXT,
	"eml": FormatEML,
}

// OrderStatus represents the workflow state of an order.
type OrderStatus string

const (
	StatusDraft    OrderStatus = "Draft"
	StatusApproved OrderStatus = "Approved"
	StatusRejected OrderStatus = "Rejected"
)

// Terminal reports whether no further transitions are allowed from s.
func (s OrderStatus) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// ValidationSeverity classifies a validation issue.
type ValidationSeverity string

const (
	SeverityInfo    ValidationSeverity = "info"
	SeverityWarning ValidationSeverity = "warning"
	SeverityError   ValidationSeverity = "error"
)

// IssueCode is a stable identifier for a validation issue.
type IssueCode string

const (
	IssueUnknownSKU           IssueCode = "unknown_sku"
	IssueInvalidQuantity      IssueCode = "invalid_quantity"
	IssueInvalidOrPastDate    IssueCode = "invalid_or_past_date"
	IssueIncompleteAddress    IssueCode = "incomplete_address"
	IssueInvalidCustomerEmail IssueCode = "invalid_customer_email"
	IssueLowConfidence        IssueCode = "low_confidence_extraction"
	IssueBelowMOQ             IssueCode = "below_moq"
	IssueExceedsStock         IssueCode = "exceeds_stock"
	IssueMissingAddress       IssueCode = "missing_address"
	IssueMissingDate          IssueCode = "missing_date"
	IssueNoItems              IssueCode = "no_items"
)

// EvidenceKind identifies the extraction signal backing a candidate value.
type EvidenceKind string

const (
	EvidenceHeaderEmail      EvidenceKind = "header"
	EvidenceBodyPatternEmail EvidenceKind = "body-pattern"
	EvidenceExactSKU         EvidenceKind = "exact_sku"
	EvidenceFuzzyDescription EvidenceKind = "fuzzy_description"
	EvidenceUnresolved       EvidenceKind = "unresolved"
	EvidenceExplicitDate     EvidenceKind = "explicit-date"
	EvidenceRelativeDate     EvidenceKind = "relative-date"
	EvidenceLabeledAddress   EvidenceKind = "labeled-address"
	EvidenceHeuristicAddress EvidenceKind = "heuristic-address"
)

// AuditAction is a recorded workflow action.
type AuditAction string

const (
	AuditApprove AuditAction = "approve"
	AuditReject  AuditAction = "reject"
)
