package catalog

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/shopspring/decimal"

	"orderintake/internal/domain"
	"orderintake/internal/port"
)

// Required columns. Max_Order_Quantity is optional; absent or zero means
// the global default bound applies.
var requiredColumns = []string{"Product_Code", "Product_Name", "Price", "Min_Order_Quantity", "Available_in_Stock"}

// snapshot is one immutable loaded catalog generation.
type snapshot struct {
	bySKU   map[string]*domain.Product
	entries []port.DescriptionEntry
}

func (s *snapshot) BySKU(sku string) (*domain.Product, bool) {
	p, ok := s.bySKU[strings.ToUpper(strings.TrimSpace(sku))]
	return p, ok
}

func (s *snapshot) Descriptions() []port.DescriptionEntry { return s.entries }

func (s *snapshot) Len() int { return len(s.bySKU) }

// CSVCatalog serves product reference data loaded from a CSV file.
// Readers get an atomic snapshot; Reload swaps in a new generation
// without disturbing in-flight extractions.
type CSVCatalog struct {
	path    string
	current atomic.Pointer[snapshot]
}

// NewCSVCatalog loads the catalog from path.
func NewCSVCatalog(path string) (*CSVCatalog, error) {
	c := &CSVCatalog{path: path}
	if err := c.Reload(); err != nil {
		return nil, err
	}
	return c, nil
}

// Reload re-reads the CSV file and swaps the active snapshot.
func (c *CSVCatalog) Reload() error {
	f, err := os.Open(c.path)
	if err != nil {
		return fmt.Errorf("opening catalog %s: %w", c.path, err)
	}
	defer func() { _ = f.Close() }()

	snap, err := parseCSV(f)
	if err != nil {
		return fmt.Errorf("parsing catalog %s: %w", c.path, err)
	}
	c.current.Store(snap)
	slog.Info("catalog loaded", "path", c.path, "products", snap.Len())
	return nil
}

// Snapshot returns the active catalog generation, or
// domain.ErrLookupUnavailable if ctx is already cancelled.
func (c *CSVCatalog) Snapshot(ctx context.Context) (port.CatalogSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrLookupUnavailable, err)
	}
	return c.current.Load(), nil
}

func parseCSV(r io.Reader) (*snapshot, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	idx := make(map[string]int, len(header))
	for i, col := range header {
		idx[strings.TrimSpace(col)] = i
	}
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("missing required column %q", col)
		}
	}

	snap := &snapshot{bySKU: make(map[string]*domain.Product)}
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		price, err := decimal.NewFromString(strings.TrimSpace(rec[idx["Price"]]))
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid price: %w", line, err)
		}
		moq, err := strconv.Atoi(strings.TrimSpace(rec[idx["Min_Order_Quantity"]]))
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid min order quantity: %w", line, err)
		}
		stock, err := strconv.Atoi(strings.TrimSpace(rec[idx["Available_in_Stock"]]))
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid stock: %w", line, err)
		}
		maxQty := 0
		if col, ok := idx["Max_Order_Quantity"]; ok && col < len(rec) {
			if v := strings.TrimSpace(rec[col]); v != "" {
				maxQty, err = strconv.Atoi(v)
				if err != nil {
					return nil, fmt.Errorf("line %d: invalid max order quantity: %w", line, err)
				}
			}
		}

		p := &domain.Product{
			SKU:         strings.ToUpper(strings.TrimSpace(rec[idx["Product_Code"]])),
			Description: strings.TrimSpace(rec[idx["Product_Name"]]),
			Price:       price,
			MinOrderQty: moq,
			MaxOrderQty: maxQty,
			Stock:       stock,
		}
		if p.SKU == "" {
			return nil, fmt.Errorf("line %d: empty product code", line)
		}
		snap.bySKU[p.SKU] = p
		snap.entries = append(snap.entries, port.DescriptionEntry{SKU: p.SKU, Description: p.Description})
	}
	return snap, nil
}
