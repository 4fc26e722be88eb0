package export

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"

	"orderintake/internal/domain"
	"orderintake/internal/port"
)

// PDFRenderer renders an approved order as a sales order PDF. Output is
// a pure function of the order: document metadata is pinned to the
// order's own timestamps, so the same order always renders to the same
// bytes.
type PDFRenderer struct{}

var _ port.ExportRenderer = (*PDFRenderer)(nil)

// NewPDFRenderer creates a PDFRenderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// Render produces the sales order document.
func (r *PDFRenderer) Render(o *domain.Order) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetCreationDate(o.CreatedAt.UTC())
	pdf.SetModificationDate(o.CreatedAt.UTC())
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "SALES ORDER")
	pdf.Ln(14)

	pdf.SetFont("Helvetica", "", 12)
	writeField(pdf, "Order Number:", "SO-"+o.OrderID)
	writeField(pdf, "Date:", o.CreatedAt.UTC().Format("2006-01-02"))
	writeField(pdf, "Customer Email:", valueOr(o.CustomerEmail, "N/A"))
	writeField(pdf, "Delivery Address:", derefOr(o.DeliveryDetails.Address, "N/A"))
	writeField(pdf, "Delivery Date:", derefOr(o.DeliveryDetails.Date, "N/A"))
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Items:")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 12)

	total := decimal.Zero
	for _, item := range o.Items {
		line := fmt.Sprintf("%s - %d units @ $%s each",
			valueOr(item.SKU, "(unresolved)"), item.Quantity, item.Price.StringFixed(2))
		pdf.SetX(pdf.GetX() + 8)
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	if len(o.Items) == 0 {
		pdf.SetX(pdf.GetX() + 8)
		pdf.Cell(0, 7, "(none)")
		pdf.Ln(7)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Total: $"+total.StringFixed(2))
	pdf.Ln(8)

	if o.Notes != "" {
		pdf.Ln(4)
		pdf.Cell(0, 8, "Additional Notes:")
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 12)
		pdf.MultiCell(0, 7, o.Notes, "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering order %s: %w", o.OrderID, err)
	}
	return buf.Bytes(), nil
}

func writeField(pdf *fpdf.Fpdf, label, value string) {
	pdf.CellFormat(45, 8, label, "", 0, "L", false, 0, "")
	pdf.Cell(0, 8, value)
	pdf.Ln(8)
}

func valueOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func derefOr(s *string, fallback string) string {
	if s == nil || *s == "" {
		return fallback
	}
	return *s
}
