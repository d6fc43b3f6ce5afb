package sheets

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockClient struct {
	mock.Mock
}

func (m *mockClient) Worksheets(ctx context.Context, id string) ([]string, error) {
	args := m.Called(ctx, id)
	titles, _ := args.Get(0).([]string)
	return titles, args.Error(1)
}

func (m *mockClient) Values(ctx context.Context, id, ws string) ([][]string, error) {
	args := m.Called(ctx, id, ws)
	values, _ := args.Get(0).([][]string)
	return values, args.Error(1)
}

func (m *mockClient) AppendRow(ctx context.Context, id, ws string, row []string) error {
	return m.Called(ctx, id, ws, row).Error(0)
}

func (m *mockClient) UpdateCells(ctx context.Context, id, ws string, row int, cells map[int]string) error {
	return m.Called(ctx, id, ws, row, cells).Error(0)
}

func (m *mockClient) DeleteRow(ctx context.Context, id, ws string, row int) error {
	return m.Called(ctx, id, ws, row).Error(0)
}

var ordersValues = [][]string{
	{" Booth # ", "Item", "Color", "Status"},
	{"101", "Chair", "White", "In Process"},
	{"102", "Table"},
	{"101", "Chair", "White", "Delivered"},
}

func TestNewTableTrimsHeaderAndPadsRows(t *testing.T) {
	tbl := NewTable(ordersValues)

	assert.Equal(t, []string{"Booth #", "Item", "Color", "Status"}, tbl.Columns)
	assert.Equal(t, 3, tbl.Len())
	assert.Equal(t, []string{"102", "Table", "", ""}, tbl.Rows[1])
	assert.Equal(t, "Delivered", tbl.Value(2, "Status"))
	assert.Equal(t, "", tbl.Value(0, "Missing"))
	assert.Equal(t, "", tbl.Value(9, "Status"))

	v, ok := tbl.Row(0).Get("Comments")
	assert.False(t, ok)
	assert.Empty(t, v)
}

func TestNewTableEmpty(t *testing.T) {
	tbl := NewTable(nil)
	assert.Empty(t, tbl.Columns)
	assert.Equal(t, 0, tbl.Len())
}

func TestTableSelect(t *testing.T) {
	tbl := NewTable(ordersValues)
	sel := tbl.Select(func(r Row) bool { return r.Value("Booth #") == "101" })
	require.Equal(t, 2, sel.Len())
	assert.Equal(t, "Delivered", sel.Value(1, "Status"))
}

func TestColumnLetter(t *testing.T) {
	cases := map[int]string{0: "A", 8: "I", 25: "Z", 26: "AA", 27: "AB", 51: "AZ", 52: "BA", 701: "ZZ", 702: "AAA"}
	for in, want := range cases {
		assert.Equal(t, want, ColumnLetter(in), "column %d", in)
	}
}

func TestMemoryClient(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryClient()
	m.Seed("book", "Orders", ordersValues)
	m.Seed("book", "Section A", [][]string{{"Booth #"}})

	titles, err := m.Worksheets(ctx, "book")
	require.NoError(t, err)
	assert.Equal(t, []string{"Orders", "Section A"}, titles)

	require.NoError(t, m.UpdateCells(ctx, "book", "Orders", 1, map[int]string{3: "Received"}))
	require.NoError(t, m.DeleteRow(ctx, "book", "Orders", 0))
	require.NoError(t, m.AppendRow(ctx, "book", "Orders", []string{"103", "Sign", "Red", "In Process"}))

	values, err := m.Values(ctx, "book", "Orders")
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{" Booth # ", "Item", "Color", "Status"},
		{"102", "Table", "", "Received"},
		{"101", "Chair", "White", "Delivered"},
		{"103", "Sign", "Red", "In Process"},
	}, values)

	assert.ErrorIs(t, m.DeleteRow(ctx, "book", "Orders", 7), ErrRowOutOfRange)
	_, err = m.Values(ctx, "book", "Nope")
	assert.ErrorIs(t, err, ErrWorksheetNotFound)
}

func TestCachedClientServesWithinTTL(t *testing.T) {
	ctx := context.Background()
	next := new(mockClient)
	next.On("Values", ctx, "book", "Orders").Return(ordersValues, nil).Twice()

	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	c := NewCachedClient(next, 30*time.Second)
	c.now = func() time.Time { return now }

	_, err := c.Values(ctx, "book", "Orders")
	require.NoError(t, err)
	now = now.Add(29 * time.Second)
	_, err = c.Values(ctx, "book", "Orders")
	require.NoError(t, err)
	now = now.Add(2 * time.Second)
	_, err = c.Values(ctx, "book", "Orders")
	require.NoError(t, err)

	next.AssertNumberOfCalls(t, "Values", 2)
}

func TestCachedClientInvalidatesOnSuccessfulWrite(t *testing.T) {
	ctx := context.Background()
	next := new(mockClient)
	next.On("Values", ctx, "book", "Orders").Return(ordersValues, nil)
	next.On("UpdateCells", ctx, "book", "Orders", 0, map[int]string{3: "Delivered"}).Return(nil).Once()
	next.On("DeleteRow", ctx, "book", "Orders", 0).Return(errors.New("quota exceeded")).Once()

	c := NewCachedClient(next, time.Minute)

	_, _ = c.Values(ctx, "book", "Orders")
	require.NoError(t, c.UpdateCells(ctx, "book", "Orders", 0, map[int]string{3: "Delivered"}))
	_, _ = c.Values(ctx, "book", "Orders")
	next.AssertNumberOfCalls(t, "Values", 2)

	assert.Error(t, c.DeleteRow(ctx, "book", "Orders", 0))
	_, _ = c.Values(ctx, "book", "Orders")
	next.AssertNumberOfCalls(t, "Values", 2)

	c.Invalidate()
	_, _ = c.Values(ctx, "book", "Orders")
	next.AssertNumberOfCalls(t, "Values", 3)
}

func TestCachedClientReturnsCopies(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryClient()
	m.Seed("book", "Orders", ordersValues)
	c := NewCachedClient(m, time.Minute)

	first, err := c.Values(ctx, "book", "Orders")
	require.NoError(t, err)
	first[1][0] = "mutated"

	second, err := c.Values(ctx, "book", "Orders")
	require.NoError(t, err)
	assert.Equal(t, "101", second[1][0])
}

func TestBookUpdateFirst(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryClient()
	m.Seed("book", "Orders", ordersValues)
	b := NewBook(m, "book")

	chair := func(r Row) bool { return r.Value("Booth #") == "101" && r.Value("Item") == "Chair" }
	n, err := b.UpdateFirst(ctx, "Orders", chair, map[string]string{"Status": "Received"})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	tbl, err := b.Table(ctx, "Orders")
	require.NoError(t, err)
	assert.Equal(t, "Received", tbl.Value(0, "Status"))
	assert.Equal(t, "Delivered", tbl.Value(2, "Status"))

	_, err = b.UpdateFirst(ctx, "Orders", chair, map[string]string{"User": "JD"})
	var missing *MissingColumnError
	assert.ErrorAs(t, err, &missing)

	_, err = b.UpdateFirst(ctx, "Orders", func(Row) bool { return false }, map[string]string{"Status": "Received"})
	assert.ErrorIs(t, err, ErrNoMatch)
}

func TestBookAppendFollowsHeaderOrder(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryClient()
	m.Seed("book", "Orders", ordersValues)
	b := NewBook(m, "book")

	err := b.Append(ctx, "Orders", map[string]string{
		"Status":   "In Process",
		"Booth #":  "200",
		"Item":     "Lamp",
		"Comments": "dropped",
	})
	require.NoError(t, err)

	tbl, err := b.Table(ctx, "Orders")
	require.NoError(t, err)
	assert.Equal(t, []string{"200", "Lamp", "", "In Process"}, tbl.Rows[3])

	m.Seed("book", "Empty", nil)
	assert.ErrorIs(t, b.Append(ctx, "Empty", map[string]string{"Item": "x"}), ErrEmptyWorksheet)
}

func TestBookDeleteFirst(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryClient()
	m.Seed("book", "Orders", ordersValues)
	b := NewBook(m, "book")

	n, err := b.DeleteFirst(ctx, "Orders", func(r Row) bool { return r.Value("Booth #") == "102" })
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	tbl, _ := b.Table(ctx, "Orders")
	assert.Equal(t, 2, tbl.Len())
	assert.Equal(t, "101", tbl.Value(1, "Booth #"))
}

func TestBookWithHeaderRowSkipsBanner(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryClient()
	m.Seed("cl", "Section A", [][]string{
		{"Booth Checklist - Section A"},
		{"Booth #", "Item Name", "Status"},
		{"101", "Chair", "FALSE"},
		{"102", "Chair", "FALSE"},
	})
	b := NewBook(m, "cl").WithHeaderRow(2)

	tbl, err := b.Table(ctx, "Section A")
	require.NoError(t, err)
	assert.Equal(t, []string{"Booth #", "Item Name", "Status"}, tbl.Columns)
	require.Equal(t, 2, tbl.Len())

	_, err = b.UpdateFirst(ctx, "Section A", func(r Row) bool { return r.Value("Booth #") == "102" },
		map[string]string{"Status": "TRUE"})
	require.NoError(t, err)

	values, _ := m.Values(ctx, "cl", "Section A")
	assert.Equal(t, []string{"102", "Chair", "TRUE"}, values[3])
	assert.Equal(t, []string{"101", "Chair", "FALSE"}, values[2])

	m.Seed("cl", "Blank", [][]string{{"banner only"}})
	empty, err := b.Table(ctx, "Blank")
	require.NoError(t, err)
	assert.Empty(t, empty.Columns)
}
