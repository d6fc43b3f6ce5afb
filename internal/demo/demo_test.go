package demo

import (
	"context"
	"testing"

	"github.com/Sguobi-git/Orders-App/internal/checklist"
	"github.com/Sguobi-git/Orders-App/internal/inventory"
	"github.com/Sguobi-git/Orders-App/internal/models"
	"github.com/Sguobi-git/Orders-App/internal/orders"
	"github.com/Sguobi-git/Orders-App/internal/sheets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedProducesReadableBooks(t *testing.T) {
	ctx := context.Background()
	m := sheets.NewMemoryClient()
	Seed(m, OrdersSheetID, ChecklistSheetID)

	book := sheets.NewBook(m, OrdersSheetID)
	tbl, err := book.Table(ctx, models.OrdersWorksheet)
	require.NoError(t, err)
	assert.Equal(t, models.OrderColumns, tbl.Columns)
	assert.Equal(t, len(Orders), tbl.Len())

	stats := orders.ComputeStats(tbl)
	assert.Equal(t, len(Orders), stats.Total)

	items, warnings, err := inventory.NewService(book).Items(ctx)
	require.NoError(t, err)
	assert.Len(t, items, len(Inventory)-1)
	assert.Empty(t, warnings)

	cl := checklist.NewService(sheets.NewBook(m, ChecklistSheetID))
	sections, err := cl.Sections(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Section A", "Section B", models.NoSectionWorksheet}, sections)

	all, err := cl.Items(ctx, checklist.AllSections)
	require.NoError(t, err)
	assert.Len(t, all, 5)
	assert.Equal(t, checklist.Progress{Total: 5, Checked: 1, Percent: 20}, checklist.ComputeProgress(all))
}

func TestEveryOrderRowIsComplete(t *testing.T) {
	for i, row := range Orders {
		assert.Len(t, row, len(models.OrderColumns), "row %d", i)
	}
}
