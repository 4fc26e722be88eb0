package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"orderintake/internal/domain"
	"orderintake/internal/logging"
	"orderintake/internal/port"
)

// ProductPair counts how often two SKUs appear on the same order.
type ProductPair struct {
	Products    [2]string `json:"products"`
	Occurrences int       `json:"occurrences"`
}

// CustomerPattern summarizes ordering behavior for one customer email
// and delivery address combination.
type CustomerPattern struct {
	CustomerEmail        string  `json:"customer_email"`
	Address              string  `json:"address"`
	OrderCount           int     `json:"order_count"`
	TotalItems           int     `json:"total_items"`
	AverageItemsPerOrder float64 `json:"average_items_per_order"`
}

// TimeInsights summarizes order volume over a trailing window of days,
// keyed by requested delivery date.
type TimeInsights struct {
	TotalOrders         int            `json:"total_orders"`
	AverageOrdersPerDay float64        `json:"average_orders_per_day"`
	DailyOrderCounts    map[string]int `json:"daily_order_counts"`
}

// MergedItem is one line of a merged order, quantities summed by SKU.
type MergedItem struct {
	SKU      string `json:"sku"`
	Quantity int    `json:"quantity"`
}

// MergedOrder is the combined view of several orders: items summed by
// SKU, the latest delivery date, and all notes joined.
type MergedOrder struct {
	Items        []MergedItem `json:"items"`
	DeliveryDate *string      `json:"delivery_date"`
	Notes        string       `json:"notes,omitempty"`
}

// MergeSource identifies one order that went into a merge.
type MergeSource struct {
	OrderID       string  `json:"order_id"`
	CustomerEmail string  `json:"customer_email"`
	DeliveryDate  *string `json:"delivery_date"`
}

// MergeResult is the outcome of merging orders. The stored orders are
// not modified; the merge is a view for the reviewer.
type MergeResult struct {
	MergedOrder    MergedOrder   `json:"merged_order"`
	OriginalOrders []MergeSource `json:"original_orders"`
}

// ProductCount is a SKU with its total ordered quantity.
type ProductCount struct {
	SKU      string `json:"sku"`
	Quantity int    `json:"quantity"`
}

// InsightsReport bundles every insight view into one export.
type InsightsReport struct {
	CommonProducts      []ProductPair     `json:"common_products"`
	CustomerPatterns    []CustomerPattern `json:"customer_patterns"`
	TimeBased           *TimeInsights     `json:"time_based"`
	TotalOrders         int               `json:"total_orders"`
	TotalCustomers      int               `json:"total_customers"`
	MostOrderedProducts []ProductCount    `json:"most_ordered_products"`
}

const (
	defaultMinOccurrences = 2
	defaultInsightDays    = 30
	topProductLimit       = 10
)

// InsightsService aggregates stored orders into reviewer-side insights.
type InsightsService interface {
	CommonProducts(ctx context.Context, minOccurrences int) ([]ProductPair, error)
	CustomerPatterns(ctx context.Context) ([]CustomerPattern, error)
	TimeBased(ctx context.Context, days int) (*TimeInsights, error)
	MergeOrders(ctx context.Context, ids []string) (*MergeResult, error)
	Report(ctx context.Context) (*InsightsReport, error)
}

type insightsService struct {
	store port.OrderStore
	now   func() time.Time
}

// NewInsightsService creates the insights service over the order store.
func NewInsightsService(store port.OrderStore) InsightsService {
	return &insightsService{store: store, now: time.Now}
}

// CommonProducts returns SKU pairs that appear together on at least
// minOccurrences orders, most frequent first.
func (s *insightsService) CommonProducts(ctx context.Context, minOccurrences int) ([]ProductPair, error) {
	orders, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	if minOccurrences < 1 {
		minOccurrences = defaultMinOccurrences
	}

	counts := make(map[[2]string]int)
	for _, o := range orders {
		skus := make([]string, 0, len(o.Items))
		for _, item := range o.Items {
			if item.SKU != "" {
				skus = append(skus, item.SKU)
			}
		}
		sort.Strings(skus)
		for i := 0; i < len(skus); i++ {
			for j := i + 1; j < len(skus); j++ {
				counts[[2]string{skus[i], skus[j]}]++
			}
		}
	}

	var out []ProductPair
	for pair, n := range counts {
		if n >= minOccurrences {
			out = append(out, ProductPair{Products: pair, Occurrences: n})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Occurrences != out[j].Occurrences {
			return out[i].Occurrences > out[j].Occurrences
		}
		if out[i].Products[0] != out[j].Products[0] {
			return out[i].Products[0] < out[j].Products[0]
		}
		return out[i].Products[1] < out[j].Products[1]
	})
	return out, nil
}

// CustomerPatterns groups orders by customer email and delivery address
// and reports per-group volume, most orders first.
func (s *insightsService) CustomerPatterns(ctx context.Context) ([]CustomerPattern, error) {
	orders, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}

	type key struct{ email, addr string }
	stats := make(map[key]*CustomerPattern)
	for _, o := range orders {
		k := key{email: o.CustomerEmail}
		if o.DeliveryDetails.Address != nil {
			k.addr = *o.DeliveryDetails.Address
		}
		p := stats[k]
		if p == nil {
			p = &CustomerPattern{CustomerEmail: k.email, Address: k.addr}
			stats[k] = p
		}
		p.OrderCount++
		for _, item := range o.Items {
			p.TotalItems += item.Quantity
		}
	}

	out := make([]CustomerPattern, 0, len(stats))
	for _, p := range stats {
		p.AverageItemsPerOrder = float64(p.TotalItems) / float64(p.OrderCount)
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].OrderCount != out[j].OrderCount {
			return out[i].OrderCount > out[j].OrderCount
		}
		if out[i].CustomerEmail != out[j].CustomerEmail {
			return out[i].CustomerEmail < out[j].CustomerEmail
		}
		return out[i].Address < out[j].Address
	})
	return out, nil
}

// TimeBased counts orders whose requested delivery date falls in the
// trailing window of days ending today.
func (s *insightsService) TimeBased(ctx context.Context, days int) (*TimeInsights, error) {
	orders, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	if days < 1 {
		days = defaultInsightDays
	}

	end := s.now().UTC()
	start := end.AddDate(0, 0, -days)
	daily := make(map[string]int)
	total := 0
	for _, o := range orders {
		if o.DeliveryDetails.Date == nil {
			continue
		}
		t, err := time.Parse("2006-01-02", *o.DeliveryDetails.Date)
		if err != nil {
			continue
		}
		if t.Before(start) || t.After(end) {
			continue
		}
		daily[*o.DeliveryDetails.Date]++
		total++
	}

	return &TimeInsights{
		TotalOrders:         total,
		AverageOrdersPerDay: float64(total) / float64(days),
		DailyOrderCounts:    daily,
	}, nil
}

// MergeOrders combines the named orders into a single view: quantities
// summed by SKU in first-seen order, the latest delivery date, notes
// joined. IDs that do not resolve are skipped; when none resolve the
// merge fails with domain.ErrOrderNotFound.
func (s *insightsService) MergeOrders(ctx context.Context, ids []string) (*MergeResult, error) {
	var selected []*domain.Order
	for _, id := range ids {
		o, err := s.store.Get(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrOrderNotFound) {
				continue
			}
			return nil, err
		}
		selected = append(selected, o)
	}
	if len(selected) == 0 {
		return nil, fmt.Errorf("merging orders: %w", domain.ErrOrderNotFound)
	}

	quantities := make(map[string]int)
	var skuOrder []string
	var notes []string
	var latest *string
	sources := make([]MergeSource, 0, len(selected))
	for _, o := range selected {
		for _, item := range o.Items {
			if item.SKU == "" {
				continue
			}
			if _, seen := quantities[item.SKU]; !seen {
				skuOrder = append(skuOrder, item.SKU)
			}
			quantities[item.SKU] += item.Quantity
		}
		if o.Notes != "" {
			notes = append(notes, o.Notes)
		}
		if d := o.DeliveryDetails.Date; d != nil {
			// ISO dates compare lexicographically.
			if latest == nil || *d > *latest {
				v := *d
				latest = &v
			}
		}
		sources = append(sources, MergeSource{
			OrderID:       o.OrderID,
			CustomerEmail: o.CustomerEmail,
			DeliveryDate:  o.DeliveryDetails.Date,
		})
	}

	items := make([]MergedItem, 0, len(skuOrder))
	for _, sku := range skuOrder {
		items = append(items, MergedItem{SKU: sku, Quantity: quantities[sku]})
	}

	logging.WithContext(ctx).Info("orders merged", "requested", len(ids), "merged", len(selected))
	return &MergeResult{
		MergedOrder:    MergedOrder{Items: items, DeliveryDate: latest, Notes: strings.Join(notes, "\n")},
		OriginalOrders: sources,
	}, nil
}

// Report assembles every insight view with default parameters.
func (s *insightsService) Report(ctx context.Context) (*InsightsReport, error) {
	orders, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	common, err := s.CommonProducts(ctx, defaultMinOccurrences)
	if err != nil {
		return nil, err
	}
	patterns, err := s.CustomerPatterns(ctx)
	if err != nil {
		return nil, err
	}
	timeBased, err := s.TimeBased(ctx, defaultInsightDays)
	if err != nil {
		return nil, err
	}

	totals := make(map[string]int)
	for _, o := range orders {
		for _, item := range o.Items {
			if item.SKU != "" {
				totals[item.SKU] += item.Quantity
			}
		}
	}
	top := make([]ProductCount, 0, len(totals))
	for sku, qty := range totals {
		top = append(top, ProductCount{SKU: sku, Quantity: qty})
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].Quantity != top[j].Quantity {
			return top[i].Quantity > top[j].Quantity
		}
		return top[i].SKU < top[j].SKU
	})
	if len(top) > topProductLimit {
		top = top[:topProductLimit]
	}

	return &InsightsReport{
		CommonProducts:      common,
		CustomerPatterns:    patterns,
		TimeBased:           timeBased,
		TotalOrders:         len(orders),
		TotalCustomers:      len(patterns),
		MostOrderedProducts: top,
	}, nil
}
