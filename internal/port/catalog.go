package port

import (
	"context"

	"orderintake/internal/domain"
)

// DescriptionEntry pairs a catalog description with its SKU for fuzzy matching.
type DescriptionEntry struct {
	SKU         string
	Description string
}

// CatalogSnapshot is an immutable view of the catalog. An extraction
// takes one snapshot up front and completes against it, so a concurrent
// catalog refresh never changes results mid-flight.
type CatalogSnapshot interface {
	BySKU(sku string) (*domain.Product, bool)
	Descriptions() []DescriptionEntry
	Len() int
}

// CatalogLookup is the read-only interface to SKU reference data.
// Snapshot returns domain.ErrLookupUnavailable on cancellation or
// timeout, never a silent empty result.
type CatalogLookup interface {
	Snapshot(ctx context.Context) (CatalogSnapshot, error)
}
