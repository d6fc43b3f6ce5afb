// Package dashboard summarizes orders and inventory for the home page
package dashboard

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Sguobi-git/Orders-App/internal/inventory"
	"github.com/Sguobi-git/Orders-App/internal/models"
	"github.com/Sguobi-git/Orders-App/internal/orders"
	"github.com/Sguobi-git/Orders-App/internal/sheets"
)

// LatestLimit is how many recent orders the dashboard lists
const LatestLimit = 10

// UnknownStatus labels orders with an empty status
const UnknownStatus = "Unknown"

const defaultStatusColor = "#BDBDBD"

var statusColors = map[string]string{
	string(models.StatusInProcess): "#FFD600",
	string(models.StatusInRoute):   "#FF9800",
	string(models.StatusDelivered): "#4CAF50",
	string(models.StatusCancelled): "#F44336",
	string(models.StatusReceived):  "#2196F3",
}

var latestColumns = []string{
	models.ColBooth, models.ColSection, models.ColExhibitor, models.ColItem, models.ColColor,
	models.ColQuantity, models.ColDate, models.ColHour, models.ColStatus, models.ColUser,
}

// Metrics are the headline order counts
type Metrics struct {
	Total        int `json:"total"`
	Delivered    int `json:"delivered"`
	Pending      int `json:"pending"`
	Cancelled    int `json:"cancelled"`
	DeliveryRate int `json:"deliveryRate"`
}

// StatusSlice is one segment of the status distribution
type StatusSlice struct {
	Status  string  `json:"status"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
	Color   string  `json:"color"`
}

// Summary is everything the dashboard page shows
type Summary struct {
	Show      string                 `json:"show"`
	Metrics   Metrics                `json:"metrics"`
	Statuses  []StatusSlice          `json:"statuses"`
	Latest    []map[string]string    `json:"latest"`
	Inventory []models.InventoryItem `json:"inventory"`
	LowStock  []models.InventoryItem `json:"lowStock"`
	Warnings  []string               `json:"warnings"`
}

// Service assembles the dashboard from the order and inventory readers
type Service struct {
	orders    *orders.Service
	inventory *inventory.Service
}

// NewService creates the dashboard service
func NewService(o *orders.Service, inv *inventory.Service) *Service {
	return &Service{orders: o, inventory: inv}
}

// Summary reads orders and inventory and builds the dashboard for show
func (s *Service) Summary(ctx context.Context, show string) (*Summary, error) {
	t, err := s.orders.Table(ctx)
	if err != nil {
		return nil, fmt.Errorf("load orders: %w", err)
	}
	items, warnings, err := s.inventory.Items(ctx)
	if err != nil {
		return nil, fmt.Errorf("load inventory: %w", err)
	}
	sum := Build(t, items)
	sum.Show = show
	sum.Warnings = append(sum.Warnings, warnings...)
	return sum, nil
}

// Build computes the dashboard from already loaded data. Missing columns
// degrade the affected figure and add a warning instead of failing.
func Build(t *sheets.Table, items []models.InventoryItem) *Summary {
	sum := &Summary{
		Statuses:  []StatusSlice{},
		Inventory: items,
		LowStock:  inventory.LowStock(items),
		Warnings:  []string{},
	}
	if sum.Inventory == nil {
		sum.Inventory = []models.InventoryItem{}
	}

	sum.Metrics = metrics(t)
	if t.Len() > 0 && !t.Has(models.ColStatus) {
		sum.Warnings = append(sum.Warnings, "Status column not found in orders data. Some metrics may not be accurate.")
	} else {
		sum.Statuses = statusBreakdown(t)
	}

	var warn []string
	sum.Latest, warn = latest(t, LatestLimit)
	sum.Warnings = append(sum.Warnings, warn...)
	return sum
}

func metrics(t *sheets.Table) Metrics {
	m := Metrics{Total: t.Len()}
	if !t.Has(models.ColStatus) {
		m.Pending = m.Total
		return m
	}
	for i := range t.Rows {
		st := strings.TrimSpace(t.Value(i, models.ColStatus))
		switch {
		case strings.EqualFold(st, string(models.StatusDelivered)):
			m.Delivered++
		case strings.EqualFold(st, string(models.StatusCancelled)):
			m.Cancelled++
		}
	}
	m.Pending = m.Total - m.Delivered - m.Cancelled
	if m.Total > 0 {
		m.DeliveryRate = m.Delivered * 100 / m.Total
	}
	return m
}

func statusBreakdown(t *sheets.Table) []StatusSlice {
	counts := orders.CountBy(t, models.ColStatus, UnknownStatus)
	total := 0
	for _, c := range counts {
		total += c.Count
	}
	out := make([]StatusSlice, 0, len(counts))
	for _, c := range counts {
		color, ok := statusColors[c.Name]
		if !ok {
			color = defaultStatusColor
		}
		out = append(out, StatusSlice{
			Status:  c.Name,
			Count:   c.Count,
			Percent: float64(c.Count) * 100 / float64(total),
			Color:   color,
		})
	}
	return out
}

// latest returns the newest orders by Date and Hour. Rows whose timestamp
// does not parse sort after every parsed row.
func latest(t *sheets.Table, limit int) ([]map[string]string, []string) {
	var warnings []string
	idx := make([]int, t.Len())
	for i := range idx {
		idx[i] = i
	}

	hasDate, hasHour := t.Has(models.ColDate), t.Has(models.ColHour)
	switch {
	case hasDate && hasHour:
		stamps := make([]time.Time, t.Len())
		bad := 0
		for i := range t.Rows {
			raw := strings.TrimSpace(t.Value(i, models.ColDate)) + " " + strings.TrimSpace(t.Value(i, models.ColHour))
			ts, err := time.Parse(models.OrderDateLayout+" "+models.OrderHourLayout, raw)
			if err != nil {
				bad++
				continue
			}
			stamps[i] = ts
		}
		sort.SliceStable(idx, func(a, b int) bool {
			ta, tb := stamps[idx[a]], stamps[idx[b]]
			if ta.IsZero() != tb.IsZero() {
				return !ta.IsZero()
			}
			return ta.After(tb)
		})
		if bad > 0 {
			warnings = append(warnings, fmt.Sprintf("%d orders have an unreadable Date/Hour and are listed last.", bad))
		}
	case hasDate || hasHour:
		col := models.ColDate
		if !hasDate {
			col = models.ColHour
		}
		sort.SliceStable(idx, func(a, b int) bool {
			return t.Value(idx[a], col) > t.Value(idx[b], col)
		})
	default:
		if t.Len() > 0 {
			warnings = append(warnings, "Date/Hour columns not found. Orders may not be sorted correctly.")
		}
	}

	if len(idx) > limit {
		idx = idx[:limit]
	}
	out := make([]map[string]string, 0, len(idx))
	for _, i := range idx {
		rec := map[string]string{}
		for _, col := range latestColumns {
			if t.Has(col) {
				rec[col] = t.Value(i, col)
			}
		}
		out = append(out, rec)
	}
	return out, warnings
}
