package catalog_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orderintake/internal/catalog"
	"orderintake/internal/domain"
)

const validCSV = `Product_Code,Product_Name,Price,Min_Order_Quantity,Available_in_Stock,Max_Order_Quantity
SKU-100,Blue Widget,9.99,1,500,
sku-200,Red Widget,12.50,5,80,40
`

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadCatalog(t *testing.T) {
	cat, err := catalog.NewCSVCatalog(writeCatalog(t, validCSV))
	require.NoError(t, err)

	snap, err := cat.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, snap.Len())

	p, ok := snap.BySKU("SKU-100")
	require.True(t, ok)
	assert.Equal(t, "Blue Widget", p.Description)
	assert.Equal(t, "9.99", p.Price.String())
	assert.Equal(t, 1, p.MinOrderQty)
	assert.Zero(t, p.MaxOrderQty)
	assert.Equal(t, 500, p.Stock)

	// SKUs are case-normalized both at load and at lookup.
	p, ok = snap.BySKU("sku-200")
	require.True(t, ok)
	assert.Equal(t, "SKU-200", p.SKU)
	assert.Equal(t, 40, p.MaxOrderQty)

	_, ok = snap.BySKU("SKU-999")
	assert.False(t, ok)
}

func TestDescriptions(t *testing.T) {
	cat, err := catalog.NewCSVCatalog(writeCatalog(t, validCSV))
	require.NoError(t, err)

	snap, err := cat.Snapshot(context.Background())
	require.NoError(t, err)
	require.Len(t, snap.Descriptions(), 2)
	assert.Equal(t, "SKU-100", snap.Descriptions()[0].SKU)
	assert.Equal(t, "Blue Widget", snap.Descriptions()[0].Description)
}

func TestMissingRequiredColumn(t *testing.T) {
	_, err := catalog.NewCSVCatalog(writeCatalog(t,
		"Product_Code,Product_Name,Price\nSKU-100,Widget,9.99\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Min_Order_Quantity")
}

func TestInvalidPrice(t *testing.T) {
	_, err := catalog.NewCSVCatalog(writeCatalog(t,
		"Product_Code,Product_Name,Price,Min_Order_Quantity,Available_in_Stock\nSKU-100,Widget,abc,1,10\n"))
	assert.Error(t, err)
}

func TestMissingFile(t *testing.T) {
	_, err := catalog.NewCSVCatalog(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}

func TestSnapshotCancelledContext(t *testing.T) {
	cat, err := catalog.NewCSVCatalog(writeCatalog(t, validCSV))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = cat.Snapshot(ctx)
	assert.ErrorIs(t, err, domain.ErrLookupUnavailable)
}

func TestReloadSwapsSnapshot(t *testing.T) {
	path := writeCatalog(t, validCSV)
	cat, err := catalog.NewCSVCatalog(path)
	require.NoError(t, err)

	before, err := cat.Snapshot(context.Background())
	require.NoError(t, err)

	updated := validCSV + "SKU-300,Green Widget,3.00,1,10,\n"
	require.NoError(t, os.WriteFile(path, []byte(updated), 0o644))
	require.NoError(t, cat.Reload())

	after, err := cat.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, after.Len())

	// The earlier snapshot is untouched by the reload.
	assert.Equal(t, 2, before.Len())
}
