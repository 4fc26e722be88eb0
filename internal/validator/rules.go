package validator

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"orderintake/internal/domain"
)

// builtinRule wraps a check function with its metadata.
type builtinRule struct {
	code domain.IssueCode
	name string
	sev  domain.ValidationSeverity
	fn   func(r *builtinRule, in *Input) []Finding
}

func (r *builtinRule) Code() domain.IssueCode              { return r.code }
func (r *builtinRule) Name() string                        { return r.name }
func (r *builtinRule) Severity() domain.ValidationSeverity { return r.sev }
func (r *builtinRule) Validate(in *Input) []Finding        { return r.fn(r, in) }

func (r *builtinRule) finding(itemIndex int, fieldRef, message string) Finding {
	return Finding{
		ItemIndex: itemIndex,
		Issue: domain.ValidationIssue{
			Code:     r.code,
			Message:  message,
			Severity: r.sev,
			FieldRef: fieldRef,
		},
	}
}

func itemRef(i int) string { return fmt.Sprintf("items[%d]", i) }

// BuiltinRules returns the full rule set in its canonical order.
func BuiltinRules() []Rule {
	return []Rule{
		&builtinRule{code: domain.IssueUnknownSKU, name: "Unknown SKU", sev: domain.SeverityError, fn: checkUnknownSKU},
		&builtinRule{code: domain.IssueInvalidQuantity, name: "Invalid quantity", sev: domain.SeverityError, fn: checkInvalidQuantity},
		&builtinRule{code: domain.IssueInvalidCustomerEmail, name: "Invalid customer email", sev: domain.SeverityError, fn: checkCustomerEmail},
		&builtinRule{code: domain.IssueBelowMOQ, name: "Below minimum order quantity", sev: domain.SeverityWarning, fn: checkBelowMOQ},
		&builtinRule{code: domain.IssueExceedsStock, name: "Exceeds available stock", sev: domain.SeverityWarning, fn: checkExceedsStock},
		&builtinRule{code: domain.IssueInvalidOrPastDate, name: "Invalid or past delivery date", sev: domain.SeverityWarning, fn: checkDeliveryDate},
		&builtinRule{code: domain.IssueMissingDate, name: "Missing delivery date", sev: domain.SeverityWarning, fn: checkMissingDate},
		&builtinRule{code: domain.IssueIncompleteAddress, name: "Incomplete delivery address", sev: domain.SeverityWarning, fn: checkIncompleteAddress},
		&builtinRule{code: domain.IssueMissingAddress, name: "Missing delivery address", sev: domain.SeverityWarning, fn: checkMissingAddress},
		&builtinRule{code: domain.IssueNoItems, name: "No line items", sev: domain.SeverityWarning, fn: checkNoItems},
		&builtinRule{code: domain.IssueLowConfidence, name: "Low extraction confidence", sev: domain.SeverityWarning, fn: checkLowConfidence},
	}
}

func checkUnknownSKU(r *builtinRule, in *Input) []Finding {
	var out []Finding
	for i := range in.Items {
		if i < len(in.ItemCtx) && in.ItemCtx[i].Product == nil {
			sku := in.Items[i].SKU
			if sku == "" {
				sku = "(none)"
			}
			out = append(out, r.finding(i, itemRef(i), fmt.Sprintf("SKU %s not found in product catalog", sku)))
		}
	}
	return out
}

func checkInvalidQuantity(r *builtinRule, in *Input) []Finding {
	var out []Finding
	for i, item := range in.Items {
		max := in.DefaultMaxQuantity
		if i < len(in.ItemCtx) && in.ItemCtx[i].Product != nil && in.ItemCtx[i].Product.MaxOrderQty > 0 {
			max = in.ItemCtx[i].Product.MaxOrderQty
		}
		switch {
		case item.Quantity <= 0:
			out = append(out, r.finding(i, itemRef(i), fmt.Sprintf("quantity %d must be positive", item.Quantity)))
		case max > 0 && item.Quantity > max:
			out = append(out, r.finding(i, itemRef(i), fmt.Sprintf("quantity %d exceeds maximum of %d", item.Quantity, max)))
		}
	}
	return out
}

func checkCustomerEmail(r *builtinRule, in *Input) []Finding {
	if in.CustomerEmail == "" {
		return []Finding{r.finding(OrderLevel, "customer_email", "no customer email could be extracted")}
	}
	if _, err := mail.ParseAddress(in.CustomerEmail); err != nil {
		return []Finding{r.finding(OrderLevel, "customer_email", fmt.Sprintf("%q is not a valid email address", in.CustomerEmail))}
	}
	return nil
}

func checkBelowMOQ(r *builtinRule, in *Input) []Finding {
	var out []Finding
	for i, item := range in.Items {
		if i >= len(in.ItemCtx) || in.ItemCtx[i].Product == nil {
			continue
		}
		p := in.ItemCtx[i].Product
		if p.MinOrderQty > 0 && item.Quantity > 0 && item.Quantity < p.MinOrderQty {
			out = append(out, r.finding(i, itemRef(i), fmt.Sprintf("quantity %d is below the minimum order quantity of %d", item.Quantity, p.MinOrderQty)))
		}
	}
	return out
}

func checkExceedsStock(r *builtinRule, in *Input) []Finding {
	var out []Finding
	for i, item := range in.Items {
		if i >= len(in.ItemCtx) || in.ItemCtx[i].Product == nil {
			continue
		}
		p := in.ItemCtx[i].Product
		if item.Quantity > p.Stock {
			out = append(out, r.finding(i, itemRef(i), fmt.Sprintf("quantity %d exceeds the %d units in stock", item.Quantity, p.Stock)))
		}
	}
	return out
}

func checkDeliveryDate(r *builtinRule, in *Input) []Finding {
	if in.Date == nil {
		return nil
	}
	t, err := time.Parse("2006-01-02", *in.Date)
	if err != nil {
		return []Finding{r.finding(OrderLevel, "delivery_details.date", fmt.Sprintf("%q is not a valid calendar date", *in.Date))}
	}
	today := time.Date(in.Now.Year(), in.Now.Month(), in.Now.Day(), 0, 0, 0, 0, time.UTC)
	if t.Before(today) {
		return []Finding{r.finding(OrderLevel, "delivery_details.date", fmt.Sprintf("requested delivery date %s is in the past", *in.Date))}
	}
	return nil
}

func checkMissingDate(r *builtinRule, in *Input) []Finding {
	if in.Date != nil {
		return nil
	}
	return []Finding{r.finding(OrderLevel, "delivery_details.date", "no delivery date could be extracted")}
}

var streetTokens = []string{
	"street", "st", "avenue", "ave", "road", "rd", "lane", "ln",
	"blvd", "boulevard", "drive", "dr", "way", "court", "ct",
	"plaza", "circle", "parkway", "square", "suite", "apt", "unit",
}

func checkIncompleteAddress(r *builtinRule, in *Input) []Finding {
	if in.Address == nil {
		return nil
	}
	addr := strings.ToLower(*in.Address)
	hasStreet := false
	for _, word := range strings.FieldsFunc(addr, func(c rune) bool {
		return c == ' ' || c == ',' || c == '.'
	}) {
		for _, tok := range streetTokens {
			if word == tok {
				hasStreet = true
			}
		}
	}
	// A locality is expected after a comma: "12 Oak St, Springfield".
	hasLocality := strings.Contains(addr, ",") && strings.TrimSpace(addr[strings.LastIndex(addr, ",")+1:]) != ""
	if !hasStreet || !hasLocality {
		return []Finding{r.finding(OrderLevel, "delivery_details.address", "address appears to be missing a street or locality part")}
	}
	return nil
}

func checkMissingAddress(r *builtinRule, in *Input) []Finding {
	if in.Address != nil {
		return nil
	}
	return []Finding{r.finding(OrderLevel, "delivery_details.address", "no delivery address could be extracted")}
}

func checkNoItems(r *builtinRule, in *Input) []Finding {
	if len(in.Items) > 0 {
		return nil
	}
	return []Finding{r.finding(OrderLevel, "items", "no line items could be extracted")}
}

// checkLowConfidence flags every extracted value below the floor: each
// present field, each item, and the order total. Absent fields are the
// missing_* rules' territory.
func checkLowConfidence(r *builtinRule, in *Input) []Finding {
	var out []Finding
	floor := in.LowConfidenceFloor
	if in.CustomerEmail != "" && in.EmailConfidence < floor {
		out = append(out, r.finding(OrderLevel, "customer_email",
			fmt.Sprintf("customer email extraction confidence %.2f is below %.2f", in.EmailConfidence, floor)))
	}
	if in.Address != nil && in.AddressConfidence < floor {
		out = append(out, r.finding(OrderLevel, "delivery_details.address",
			fmt.Sprintf("delivery address extraction confidence %.2f is below %.2f", in.AddressConfidence, floor)))
	}
	if in.Date != nil && in.DateConfidence < floor {
		out = append(out, r.finding(OrderLevel, "delivery_details.date",
			fmt.Sprintf("delivery date extraction confidence %.2f is below %.2f", in.DateConfidence, floor)))
	}
	for i, item := range in.Items {
		if item.ConfidenceScore < floor {
			out = append(out, r.finding(i, itemRef(i),
				fmt.Sprintf("item extraction confidence %.2f is below %.2f", item.ConfidenceScore, floor)))
		}
	}
	if in.TotalConfidence < floor {
		out = append(out, r.finding(OrderLevel, "total_confidence_score",
			fmt.Sprintf("overall extraction confidence %.2f is below %.2f", in.TotalConfidence, floor)))
	}
	return out
}
