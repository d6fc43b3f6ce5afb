package dashboard

import (
	"context"
	"fmt"
	"testing"

	"github.com/Sguobi-git/Orders-App/internal/inventory"
	"github.com/Sguobi-git/Orders-App/internal/models"
	"github.com/Sguobi-git/Orders-App/internal/orders"
	"github.com/Sguobi-git/Orders-App/internal/reconcile"
	"github.com/Sguobi-git/Orders-App/internal/sheets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func orderTable(rows ...[]string) *sheets.Table {
	return sheets.NewTable(append([][]string{{"Booth #", "Item", "Date", "Hour", "Status", "Comments"}}, rows...))
}

func TestMetrics(t *testing.T) {
	tbl := orderTable(
		[]string{"1", "Chair", "03/01/2025", "09:00:00 AM", "Delivered", ""},
		[]string{"2", "Chair", "03/01/2025", "09:00:00 AM", "cancelled", ""},
		[]string{"3", "Chair", "03/01/2025", "09:00:00 AM", "Cancelled", ""},
		[]string{"4", "Chair", "03/01/2025", "09:00:00 AM", "In Process", ""},
		[]string{"5", "Chair", "03/01/2025", "09:00:00 AM", "", ""},
		[]string{"6", "Chair", "03/01/2025", "09:00:00 AM", "Delivered", ""},
	)

	sum := Build(tbl, nil)
	assert.Equal(t, Metrics{Total: 6, Delivered: 2, Pending: 2, Cancelled: 2, DeliveryRate: 33}, sum.Metrics)
	assert.Empty(t, sum.Warnings)
}

func TestStatusBreakdownColorsAndUnknown(t *testing.T) {
	tbl := orderTable(
		[]string{"1", "Chair", "", "", "Delivered", ""},
		[]string{"2", "Chair", "", "", "Delivered", ""},
		[]string{"3", "Chair", "", "", "", ""},
		[]string{"4", "Chair", "", "", "Out for delivery", ""},
	)

	sum := Build(tbl, nil)
	assert.Equal(t, []StatusSlice{
		{Status: "Delivered", Count: 2, Percent: 50, Color: "#4CAF50"},
		{Status: "Out for delivery", Count: 1, Percent: 25, Color: defaultStatusColor},
		{Status: "Unknown", Count: 1, Percent: 25, Color: defaultStatusColor},
	}, sum.Statuses)
}

func TestMissingStatusColumn(t *testing.T) {
	tbl := sheets.NewTable([][]string{{"Booth #", "Item"}, {"1", "Chair"}, {"2", "Table"}})

	sum := Build(tbl, nil)
	assert.Equal(t, Metrics{Total: 2, Pending: 2}, sum.Metrics)
	assert.Empty(t, sum.Statuses)
	assert.Len(t, sum.Warnings, 2)
}

func TestLatestSortsByTimestampWithUnparseableLast(t *testing.T) {
	tbl := orderTable(
		[]string{"old", "Chair", "02/28/2025", "11:00:00 PM", "", ""},
		[]string{"bad", "Chair", "yesterday", "", "", ""},
		[]string{"pm", "Chair", "03/01/2025", "01:00:00 PM", "", ""},
		[]string{"am", "Chair", "03/01/2025", "11:00:00 AM", "", ""},
	)

	sum := Build(tbl, nil)
	booths := []string{}
	for _, r := range sum.Latest {
		booths = append(booths, r[models.ColBooth])
	}
	assert.Equal(t, []string{"pm", "am", "old", "bad"}, booths)
	assert.Len(t, sum.Warnings, 1)
	assert.NotContains(t, sum.Latest[0], models.ColComments)
}

func TestLatestLimited(t *testing.T) {
	rows := [][]string{}
	for i := 0; i < 15; i++ {
		rows = append(rows, []string{fmt.Sprint(i), "Chair", "03/01/2025", fmt.Sprintf("%02d:00:00 AM", i%12+1), "", ""})
	}
	sum := Build(orderTable(rows...), nil)
	assert.Len(t, sum.Latest, LatestLimit)
}

func TestLatestWithoutDateColumns(t *testing.T) {
	tbl := sheets.NewTable([][]string{{"Booth #", "Status"}, {"1", "Delivered"}})
	sum := Build(tbl, nil)
	require.Len(t, sum.Latest, 1)
	assert.Contains(t, sum.Warnings, "Date/Hour columns not found. Orders may not be sorted correctly.")
}

func TestServiceSummary(t *testing.T) {
	m := sheets.NewMemoryClient()
	m.Seed("orders", models.OrdersWorksheet, [][]string{
		models.OrderColumns,
		{"101", "Section A", "Acme", "Chair", "White", "2", "03/01/2025", "09:00:00 AM", "Delivered", "New Order", "1", "", "AB"},
	})
	m.Seed("orders", models.InventoryWorksheet, [][]string{
		{"Items", "Available Quantity"},
		{"Chair", "4"},
		{"Table", "40"},
	})
	book := sheets.NewBook(m, "orders")
	svc := NewService(orders.NewService(book, reconcile.NewSheetStore(book)), inventory.NewService(book))

	sum, err := svc.Summary(context.Background(), "Paris Expo 2025")
	require.NoError(t, err)
	assert.Equal(t, "Paris Expo 2025", sum.Show)
	assert.Equal(t, 100, sum.Metrics.DeliveryRate)
	assert.Len(t, sum.Inventory, 2)
	require.Len(t, sum.LowStock, 1)
	assert.Equal(t, "Chair", sum.LowStock[0].Name)
}
