package checklist

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/Sguobi-git/Orders-App/internal/models"
	"github.com/Sguobi-git/Orders-App/internal/sheets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var header = []string{"Booth #", "Section", "Exhibitor Name", "Item Name", "Status", "Quantity", "Special Instructions", "Date", "Hour"}

func seeded(t *testing.T) (*Service, *sheets.MemoryClient) {
	t.Helper()
	m := sheets.NewMemoryClient()
	m.Seed("cl", "Section A", [][]string{
		{"Section A checklist"},
		header,
		{"101", "Section A", "Acme", "Chair", "TRUE", "2", "", "", ""},
		{"101", "Section A", "Acme", "Table", "FALSE", "1", "near door", "", ""},
		{"1010", "Section A", "Globex", "Chair", "FALSE", "4", "", "", ""},
	})
	m.Seed("cl", "No Section", [][]string{
		{"Unassigned"},
		header,
		{"300", "", "Initech", "Lamp", "false", "x", "", "", ""},
	})
	m.Seed("cl", "Notes", [][]string{{"free text"}})
	svc := NewService(sheets.NewBook(m, "cl"))
	svc.now = func() time.Time { return time.Date(2025, 3, 1, 14, 5, 9, 0, time.UTC) }
	return svc, m
}

func TestSectionsSkipsOtherWorksheets(t *testing.T) {
	svc, _ := seeded(t)
	sections, err := svc.Sections(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Section A", "No Section"}, sections)
}

func TestItems(t *testing.T) {
	svc, _ := seeded(t)
	ctx := context.Background()

	all, err := svc.Items(ctx, AllSections)
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.True(t, all[0].Checked)
	assert.Equal(t, 2, all[0].Quantity)
	assert.Equal(t, "No Section", all[3].Worksheet)
	assert.Equal(t, 0, all[3].Quantity)

	one, err := svc.Items(ctx, "Section A")
	require.NoError(t, err)
	assert.Len(t, one, 3)

	_, err = svc.Items(ctx, "Notes")
	assert.ErrorIs(t, err, sheets.ErrWorksheetNotFound)
}

func TestApplyFilter(t *testing.T) {
	svc, _ := seeded(t)
	all, err := svc.Items(context.Background(), AllSections)
	require.NoError(t, err)

	assert.Len(t, ApplyFilter(all, Filter{State: Checked}), 1)
	assert.Len(t, ApplyFilter(all, Filter{State: Unchecked}), 3)
	assert.Len(t, ApplyFilter(all, Filter{State: AllStates}), 4)

	exact := ApplyFilter(all, Filter{Search: "101"})
	assert.Len(t, exact, 2)

	partial := ApplyFilter(all, Filter{Search: "10a"})
	assert.Empty(t, partial)

	byName := ApplyFilter(all, Filter{Search: "glob"})
	require.Len(t, byName, 1)
	assert.Equal(t, "1010", byName[0].Booth)
}

func TestGroupByBoothProgress(t *testing.T) {
	svc, _ := seeded(t)
	all, err := svc.Items(context.Background(), "Section A")
	require.NoError(t, err)

	booths := GroupByBooth(all)
	require.Len(t, booths, 2)
	assert.Equal(t, "101", booths[0].Booth)
	assert.Equal(t, Progress{Total: 2, Checked: 1, Percent: 50}, booths[0].Progress)
	assert.Equal(t, Progress{Total: 1}, booths[1].Progress)

	assert.Equal(t, Progress{}, ComputeProgress(nil))
}

func TestSetChecked(t *testing.T) {
	svc, m := seeded(t)
	ctx := context.Background()

	err := svc.SetChecked(ctx, Toggle{Worksheet: "Section A", Booth: "101", ItemName: "Table", Checked: true})
	require.NoError(t, err)

	values, err := m.Values(ctx, "cl", "Section A")
	require.NoError(t, err)
	assert.Equal(t, []string{"101", "Section A", "Acme", "Table", "TRUE", "1", "near door", "03-01-25", "14:05:09"}, values[3])

	err = svc.SetChecked(ctx, Toggle{Worksheet: "Section A", Booth: "999", ItemName: "Table"})
	assert.ErrorIs(t, err, sheets.ErrNoMatch)

	err = svc.SetChecked(ctx, Toggle{Worksheet: "Notes", Booth: "101", ItemName: "Table"})
	assert.ErrorIs(t, err, sheets.ErrWorksheetNotFound)
}

func TestBoothAndPDF(t *testing.T) {
	svc, _ := seeded(t)
	b, err := svc.Booth(context.Background(), "101")
	require.NoError(t, err)
	assert.Equal(t, "Acme", b.Exhibitor)
	assert.Len(t, b.Items, 2)

	_, err = svc.Booth(context.Background(), "555")
	assert.ErrorIs(t, err, sheets.ErrNoMatch)

	pdf, err := BoothPDF(PDFConfig{Show: "Paris Expo 2025", BaseURL: "https://orders.example.com/"}, *b)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
}

func TestBoothURL(t *testing.T) {
	assert.Equal(t, "https://x.test/checklists?booth=A+12", BoothURL("https://x.test/", "A 12"))
}

func TestParseIgnoresMissingColumns(t *testing.T) {
	tbl := sheets.NewTable([][]string{{"Booth #", "Item Name"}, {"1", "Chair"}})
	items := Parse("Section B", tbl)
	require.Len(t, items, 1)
	assert.Equal(t, models.ChecklistItem{Worksheet: "Section B", Booth: "1", ItemName: "Chair"}, items[0])
}
