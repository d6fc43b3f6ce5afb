package reconcile

import (
	"testing"

	"github.com/Sguobi-git/Orders-App/internal/sheets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var viewColumns = []string{"Booth #", "Section", "Exhibitor Name", "Item", "Color", "Quantity", "Status"}

func viewTable(rows ...[]string) *sheets.Table {
	return &sheets.Table{Columns: viewColumns, Rows: rows}
}

func sampleRows() [][]string {
	return [][]string{
		{"101", "Section A", "Acme", "Chair", "White", "2", "In Process"},
		{"102", "Section A", "Blue Wave", "Table", "Black", "1", "Delivered"},
		{"201", "Section B", "Sea Ray", "Sign", "", "1", ""},
		{"305", "Section C", "Mako", "Lamp", "Red", "4", "In Process"},
	}
}

func cloneRows(rows [][]string) [][]string {
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = append([]string(nil), r...)
	}
	return out
}

func TestDiffIdenticalTablesIsEmpty(t *testing.T) {
	before := viewTable(sampleRows()...)
	after := viewTable(cloneRows(sampleRows())...)

	changes, err := Diff(before, after)
	require.NoError(t, err)
	assert.Empty(t, changes)
	assert.NotNil(t, changes)
}

func TestDiffStatusEditOnRowThree(t *testing.T) {
	before := viewTable(sampleRows()...)
	rows := cloneRows(sampleRows())
	rows[3][6] = "Delivered"

	changes, err := Diff(before, viewTable(rows...))
	require.NoError(t, err)
	assert.Equal(t, []Change{{Row: 3, Column: "Status", Old: "In Process", New: "Delivered"}}, changes)
}

func TestDiffEmptyRule(t *testing.T) {
	tests := []struct {
		name   string
		edit   func(rows [][]string) [][]string
		expect []Change
	}{
		{
			name: "missing equals empty",
			edit: func(rows [][]string) [][]string {
				rows[2] = rows[2][:4]
				rows[2] = append(rows[2], "")
				return rows
			},
			expect: []Change{
				{Row: 2, Column: "Quantity", Old: "1", New: ""},
			},
		},
		{
			name: "empty to value is a change",
			edit: func(rows [][]string) [][]string {
				rows[2][6] = "Received"
				return rows
			},
			expect: []Change{{Row: 2, Column: "Status", Old: "", New: "Received"}},
		},
		{
			name: "value to empty is a change",
			edit: func(rows [][]string) [][]string {
				rows[0][4] = ""
				return rows
			},
			expect: []Change{{Row: 0, Column: "Color", Old: "White", New: ""}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := viewTable(sampleRows()...)
			changes, err := Diff(before, viewTable(tt.edit(cloneRows(sampleRows()))...))
			require.NoError(t, err)
			assert.Equal(t, tt.expect, changes)
		})
	}
}

func TestDiffShortRowMatchesTrailingEmpties(t *testing.T) {
	before := viewTable([]string{"201", "Section B", "Sea Ray", "Sign", "", "1", ""})
	after := viewTable([]string{"201", "Section B", "Sea Ray", "Sign", "", "1"})

	changes, err := Diff(before, after)
	require.NoError(t, err)
	assert.Empty(t, changes)
}

func TestDiffReportsEveryChangedCellInOrder(t *testing.T) {
	before := viewTable(sampleRows()...)
	rows := cloneRows(sampleRows())
	rows[0][6] = "Delivered"
	rows[0][5] = "3"
	rows[1][2] = "Blue Wave Inc"

	changes, err := Diff(before, viewTable(rows...))
	require.NoError(t, err)
	assert.Equal(t, []Change{
		{Row: 0, Column: "Quantity", Old: "2", New: "3"},
		{Row: 0, Column: "Status", Old: "In Process", New: "Delivered"},
		{Row: 1, Column: "Exhibitor Name", Old: "Blue Wave", New: "Blue Wave Inc"},
	}, changes)
}

func TestDiffRejectsShapeMismatch(t *testing.T) {
	before := viewTable(sampleRows()...)

	_, err := Diff(before, viewTable(sampleRows()[:3]...))
	assert.ErrorIs(t, err, ErrRowCountMismatch)

	reordered := &sheets.Table{Columns: append([]string{"Status"}, viewColumns[:6]...), Rows: sampleRows()}
	_, err = Diff(before, reordered)
	assert.ErrorIs(t, err, ErrColumnMismatch)
}

func TestDiffRejectsRowsWiderThanHeader(t *testing.T) {
	before := viewTable(sampleRows()...)
	rows := cloneRows(sampleRows())
	rows[1] = append(rows[1], "stray")

	_, err := Diff(before, viewTable(rows...))
	assert.ErrorIs(t, err, ErrColumnMismatch)

	_, err = Diff(viewTable(rows...), viewTable(cloneRows(rows)...))
	assert.ErrorIs(t, err, ErrColumnMismatch)
}
