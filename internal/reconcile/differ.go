package reconcile

import (
	"errors"
	"fmt"

	"github.com/Sguobi-git/Orders-App/internal/sheets"
)

var (
	ErrRowCountMismatch = errors.New("edited table has a different number of rows than its snapshot")
	ErrColumnMismatch   = errors.New("edited table has different columns than its snapshot")
	ErrStaleRow         = errors.New("edited row is no longer in the sheet")
)

// Change is one cell whose value differs between snapshot and edit
type Change struct {
	Row    int    `json:"row"`
	Column string `json:"column"`
	Old    string `json:"old"`
	New    string `json:"new"`
}

func (c Change) String() string {
	return fmt.Sprintf("row %d %s: %q -> %q", c.Row, c.Column, c.Old, c.New)
}

// Diff compares after with before position by position: row i of after
// against row i of before. Both tables must share row count and column order.
// A missing cell and an empty cell are the same value; either differs from
// any concrete value. A row wider than the header is rejected. The result is
// empty iff the tables are cell-wise equal.
func Diff(before, after *sheets.Table) ([]Change, error) {
	if len(before.Rows) != len(after.Rows) {
		return nil, fmt.Errorf("%w: %d vs %d", ErrRowCountMismatch, len(before.Rows), len(after.Rows))
	}
	if !sameColumns(before.Columns, after.Columns) {
		return nil, ErrColumnMismatch
	}
	for _, t := range []*sheets.Table{before, after} {
		for i, row := range t.Rows {
			if len(row) > len(t.Columns) {
				return nil, fmt.Errorf("%w: row %d has %d cells for %d columns", ErrColumnMismatch, i, len(row), len(t.Columns))
			}
		}
	}

	changes := []Change{}
	for i := range before.Rows {
		for j, col := range before.Columns {
			old, cur := cell(before.Rows[i], j), cell(after.Rows[i], j)
			if old != cur {
				changes = append(changes, Change{Row: i, Column: col, Old: old, New: cur})
			}
		}
	}
	return changes, nil
}

func cell(row []string, j int) string {
	if j < len(row) {
		return row[j]
	}
	return ""
}

func sameColumns(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
