package extract_test

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orderintake/internal/config"
	"orderintake/internal/domain"
	"orderintake/internal/extract"
	"orderintake/internal/port"
)

type stubSnapshot struct {
	products map[string]*domain.Product
}

func (s *stubSnapshot) BySKU(sku string) (*domain.Product, bool) {
	p, ok := s.products[strings.ToUpper(sku)]
	return p, ok
}

func (s *stubSnapshot) Descriptions() []port.DescriptionEntry {
	var out []port.DescriptionEntry
	for _, p := range s.products {
		out = append(out, port.DescriptionEntry{SKU: p.SKU, Description: p.Description})
	}
	return out
}

func (s *stubSnapshot) Len() int { return len(s.products) }

func testSnapshot() *stubSnapshot {
	return &stubSnapshot{products: map[string]*domain.Product{
		"SKU-100": {SKU: "SKU-100", Description: "Blue Widget", Price: decimal.NewFromInt(10), MinOrderQty: 1, Stock: 500},
		"SKU-300": {SKU: "SKU-300", Description: "Steel Bracket", Price: decimal.NewFromInt(4), MinOrderQty: 10, Stock: 50},
	}}
}

func newExtractor() *extract.Extractor {
	return extract.NewExtractor(config.ExtractConfig{SimilarityFloor: 0.60, SuggestionFloor: 0.50})
}

func TestExtractFullOrder(t *testing.T) {
	email := &extract.NormalizedEmail{
		Sender: "alice@example.com",
		Body: "Ship to: 12 Oak St, Springfield\n" +
			"Date: next Friday\n" +
			"2 x SKU-100 Widget\n" +
			"qty 5 SKU-200\n",
		ReceivedAt: now, // Monday 2025-06-02
	}

	cands := newExtractor().Extract(testSnapshot(), email)

	assert.Equal(t, "alice@example.com", cands.Email.Value)
	require.Len(t, cands.Email.Evidence, 1)
	assert.Equal(t, domain.EvidenceHeaderEmail, cands.Email.Evidence[0].Kind)

	assert.Equal(t, "12 Oak St, Springfield", cands.Address.Value)
	require.Len(t, cands.Address.Evidence, 1)
	assert.Equal(t, domain.EvidenceLabeledAddress, cands.Address.Evidence[0].Kind)

	require.True(t, cands.Date.Found)
	assert.Equal(t, "2025-06-06", cands.Date.Value.Format("2006-01-02"))
	assert.Equal(t, domain.EvidenceRelativeDate, cands.Date.Evidence[0].Kind)

	require.Len(t, cands.Items, 2)

	assert.Equal(t, "SKU-100", cands.Items[0].SKU)
	assert.Equal(t, 2, cands.Items[0].Quantity)
	require.NotNil(t, cands.Items[0].Product)
	assert.Equal(t, domain.EvidenceExactSKU, cands.Items[0].Evidence[0].Kind)

	assert.Equal(t, "SKU-200", cands.Items[1].SKU)
	assert.Equal(t, 5, cands.Items[1].Quantity)
	assert.Nil(t, cands.Items[1].Product)
	assert.Equal(t, domain.EvidenceUnresolved, cands.Items[1].Evidence[0].Kind)
}

func TestExtractAddressLineNeverBecomesItem(t *testing.T) {
	email := &extract.NormalizedEmail{
		Body:       "12 Oak St, Springfield\n3 x SKU-100\n",
		ReceivedAt: now,
	}

	cands := newExtractor().Extract(testSnapshot(), email)

	assert.Equal(t, "12 Oak St, Springfield", cands.Address.Value)
	assert.Equal(t, domain.EvidenceHeuristicAddress, cands.Address.Evidence[0].Kind)
	require.Len(t, cands.Items, 1)
	assert.Equal(t, "SKU-100", cands.Items[0].SKU)
	assert.Equal(t, 3, cands.Items[0].Quantity)
}

func TestExtractAddressAfterMultibyteText(t *testing.T) {
	// "İ" lowercases to a longer byte sequence; the label offset must be
	// computed against the same bytes that get sliced.
	email := &extract.NormalizedEmail{
		Body:       "İrem at ȺȺȺ Logistics Ship to: 12 Oak St, Springfield\n",
		ReceivedAt: now,
	}

	cands := newExtractor().Extract(testSnapshot(), email)

	assert.Equal(t, "12 Oak St, Springfield", cands.Address.Value)
	require.Len(t, cands.Address.Evidence, 1)
	assert.Equal(t, domain.EvidenceLabeledAddress, cands.Address.Evidence[0].Kind)
}

func TestExtractAddressMultibyteLabelOnlyLine(t *testing.T) {
	email := &extract.NormalizedEmail{
		Body:       strings.Repeat("Ⱥ", 20) + "ship to:\n12 Oak St, Springfield\n",
		ReceivedAt: now,
	}

	cands := newExtractor().Extract(testSnapshot(), email)

	assert.Equal(t, "12 Oak St, Springfield", cands.Address.Value)
	assert.Equal(t, domain.EvidenceLabeledAddress, cands.Address.Evidence[0].Kind)
}

func TestExtractEmailFromBodyPattern(t *testing.T) {
	email := &extract.NormalizedEmail{
		Body:       "contact me at bob@shop.example\n1 x SKU-100\n",
		ReceivedAt: now,
	}

	cands := newExtractor().Extract(testSnapshot(), email)

	assert.Equal(t, "bob@shop.example", cands.Email.Value)
	assert.Equal(t, domain.EvidenceBodyPatternEmail, cands.Email.Evidence[0].Kind)
}

func TestExtractFuzzyDescriptionMatch(t *testing.T) {
	email := &extract.NormalizedEmail{
		Body:       "2 blue widgets\n",
		ReceivedAt: now,
	}

	cands := newExtractor().Extract(testSnapshot(), email)

	require.Len(t, cands.Items, 1)
	assert.Equal(t, "SKU-100", cands.Items[0].SKU)
	assert.Equal(t, 2, cands.Items[0].Quantity)
	require.Len(t, cands.Items[0].Evidence, 1)
	assert.Equal(t, domain.EvidenceFuzzyDescription, cands.Items[0].Evidence[0].Kind)
	assert.Greater(t, cands.Items[0].Evidence[0].Similarity, 0.6)
}

func TestExtractSKUWithoutQuantityDefaultsToOne(t *testing.T) {
	email := &extract.NormalizedEmail{
		Body:       "please include SKU-300\n",
		ReceivedAt: now,
	}

	cands := newExtractor().Extract(testSnapshot(), email)

	require.Len(t, cands.Items, 1)
	assert.Equal(t, "SKU-300", cands.Items[0].SKU)
	assert.Equal(t, 1, cands.Items[0].Quantity)
}

func TestExtractUnresolvedWithMarkerKeepsQuantity(t *testing.T) {
	email := &extract.NormalizedEmail{
		Body:       "5 pcs frobnicator deluxe\n",
		ReceivedAt: now,
	}

	cands := newExtractor().Extract(testSnapshot(), email)

	require.Len(t, cands.Items, 1)
	assert.Empty(t, cands.Items[0].SKU)
	assert.Equal(t, 5, cands.Items[0].Quantity)
	assert.Equal(t, domain.EvidenceUnresolved, cands.Items[0].Evidence[0].Kind)
}

func TestExtractGarbageYieldsNothing(t *testing.T) {
	email := &extract.NormalizedEmail{
		Body:       "hello there\nhow are you doing\n",
		ReceivedAt: now,
	}

	cands := newExtractor().Extract(testSnapshot(), email)

	assert.Empty(t, cands.Email.Value)
	assert.Empty(t, cands.Address.Value)
	assert.False(t, cands.Date.Found)
	assert.Empty(t, cands.Items)
}

func TestExtractNotes(t *testing.T) {
	email := &extract.NormalizedEmail{
		Body:       "1 x SKU-100\nNotes: leave at the back door\n",
		ReceivedAt: now,
	}

	cands := newExtractor().Extract(testSnapshot(), email)

	assert.Equal(t, "leave at the back door", cands.Notes)
}
