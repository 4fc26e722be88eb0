package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"orderintake/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the CSV header row.
var columns = []string{
	"Order ID",
	"Status",
	"Customer Email",
	"Delivery Address",
	"Delivery Date",
	"Line Item Count",
	"Total Quantity",
	"Order Total",
	"Confidence Score",
	"Error Issues",
	"Warning Issues",
	"Notes",
	"Created At",
}

// Writer wraps csv.Writer for exporting orders as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteOrders converts a batch of orders to CSV rows and writes them.
func (w *Writer) WriteOrders(orders []*domain.Order) error {
	for _, o := range orders {
		if err := w.csv.Write(orderToRow(o)); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

// orderToRow converts a single order to a string slice matching columns.
func orderToRow(o *domain.Order) []string {
	row := make([]string, len(columns))

	totalQty := 0
	total := decimal.Zero
	for _, item := range o.Items {
		totalQty += item.Quantity
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	errs, warns := 0, 0
	count := func(issues []domain.ValidationIssue) {
		for _, is := range issues {
			switch is.Severity {
			case domain.SeverityError:
				errs++
			case domain.SeverityWarning:
				warns++
			}
		}
	}
	count(o.ValidationIssues)
	for i := range o.Items {
		count(o.Items[i].ValidationIssues)
	}

	row[0] = o.OrderID
	row[1] = string(o.Status)
	row[2] = o.CustomerEmail
	if o.DeliveryDetails.Address != nil {
		row[3] = *o.DeliveryDetails.Address
	}
	if o.DeliveryDetails.Date != nil {
		row[4] = *o.DeliveryDetails.Date
	}
	row[5] = strconv.Itoa(len(o.Items))
	row[6] = strconv.Itoa(totalQty)
	row[7] = total.StringFixed(2)
	row[8] = strconv.FormatFloat(o.TotalConfidenceScore, 'f', 2, 64)
	row[9] = strconv.Itoa(errs)
	row[10] = strconv.Itoa(warns)
	row[11] = o.Notes
	row[12] = o.CreatedAt.Format(time.RFC3339)

	return row
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a name for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a sanitized filename for Content-Disposition header.
// Format: {sanitized_name}_{YYYY-MM-DD}.csv
func BuildFilename(name string) string {
	sanitized := SanitizeFilename(name)
	date := time.Now().Format("2006-01-02")
	return fmt.Sprintf("%s_%s.csv", sanitized, date)
}
