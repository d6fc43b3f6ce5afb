// Package inventory reads the show inventory worksheet
package inventory

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/Sguobi-git/Orders-App/internal/models"
	"github.com/Sguobi-git/Orders-App/internal/sheets"
)

// Service reads "Show Inventory" from the orders spreadsheet
type Service struct {
	book *sheets.Book
}

// NewService creates the inventory reader
func NewService(book *sheets.Book) *Service {
	return &Service{book: book}
}

// Items returns every inventory line plus warnings for cells that were not numbers
func (s *Service) Items(ctx context.Context) ([]models.InventoryItem, []string, error) {
	t, err := s.book.Table(ctx, models.InventoryWorksheet)
	if err != nil {
		return nil, nil, err
	}
	items, warnings := Parse(t)
	return items, warnings, nil
}

// Parse converts inventory rows. Rows without an item name are skipped.
// Unparseable quantities read as zero with a warning, except the available
// quantity which stays unknown.
func Parse(t *sheets.Table) ([]models.InventoryItem, []string) {
	items := []models.InventoryItem{}
	warnings := []string{}

	parse := func(i int, col string) *int {
		raw := strings.TrimSpace(t.Value(i, col))
		if raw == "" {
			return nil
		}
		n, err := strconv.Atoi(strings.ReplaceAll(raw, ",", ""))
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: %q is not a number in %s", t.Value(i, models.ColInvItem), raw, col))
			return nil
		}
		return &n
	}
	num := func(i int, col string) int {
		if n := parse(i, col); n != nil {
			return *n
		}
		return 0
	}

	for i := range t.Rows {
		name := strings.TrimSpace(t.Value(i, models.ColInvItem))
		if name == "" {
			continue
		}
		items = append(items, models.InventoryItem{
			Name:                 name,
			LoadList:             num(i, models.ColInvLoadList),
			PullList:             num(i, models.ColInvPullList),
			StartingQuantity:     num(i, models.ColInvStarting),
			OrderedItems:         num(i, models.ColInvOrdered),
			DamagedItems:         num(i, models.ColInvDamaged),
			AvailableQuantity:    parse(i, models.ColInvAvailable),
			RequestedToWarehouse: t.Value(i, models.ColInvRequested),
			RequestedAt:          t.Value(i, models.ColInvRequestedDateTime),
		})
	}
	return items, warnings
}

// LowStock returns items under the low stock threshold
func LowStock(items []models.InventoryItem) []models.InventoryItem {
	out := []models.InventoryItem{}
	for _, it := range items {
		if it.LowStock() {
			out = append(out, it)
		}
	}
	return out
}

// AvailableItems lists the item names offered by the add-order form,
// ending with the unlisted item sentinel
func AvailableItems(items []models.InventoryItem) []string {
	seen := map[string]bool{}
	names := []string{}
	for _, it := range items {
		if !seen[it.Name] {
			seen[it.Name] = true
			names = append(names, it.Name)
		}
	}
	if !seen[models.UnlistedItem] {
		names = append(names, models.UnlistedItem)
	}
	return names
}
