package sheets

import "strings"

// Table is a worksheet read with its first row as header.
// Every row is padded to the header width so a missing cell reads as "".
type Table struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// NewTable builds a table from raw worksheet values. Header cells are trimmed.
func NewTable(values [][]string) *Table {
	t := &Table{Columns: []string{}, Rows: [][]string{}}
	if len(values) == 0 {
		return t
	}
	for _, h := range values[0] {
		t.Columns = append(t.Columns, strings.TrimSpace(h))
	}
	for _, raw := range values[1:] {
		t.Rows = append(t.Rows, pad(raw, len(t.Columns)))
	}
	return t
}

func pad(raw []string, width int) []string {
	row := make([]string, width)
	copy(row, raw)
	return row
}

// Len returns the number of data rows
func (t *Table) Len() int {
	return len(t.Rows)
}

// Index returns the position of col or -1
func (t *Table) Index(col string) int {
	for i, c := range t.Columns {
		if c == col {
			return i
		}
	}
	return -1
}

// Has reports whether the header carries col
func (t *Table) Has(col string) bool {
	return t.Index(col) >= 0
}

// Value returns the cell at row i under col, or "" when either is absent
func (t *Table) Value(i int, col string) string {
	idx := t.Index(col)
	if idx < 0 || i < 0 || i >= len(t.Rows) {
		return ""
	}
	return t.Rows[i][idx]
}

// Row binds data row i to the header
func (t *Table) Row(i int) Row {
	return Row{Columns: t.Columns, Values: t.Rows[i]}
}

// Record returns row i as column name to value
func (t *Table) Record(i int) map[string]string {
	rec := make(map[string]string, len(t.Columns))
	for j, c := range t.Columns {
		rec[c] = t.Rows[i][j]
	}
	return rec
}

// Records returns every row as a column name to value map
func (t *Table) Records() []map[string]string {
	out := make([]map[string]string, 0, len(t.Rows))
	for i := range t.Rows {
		out = append(out, t.Record(i))
	}
	return out
}

// Select returns a table sharing the header with only the rows keep accepts
func (t *Table) Select(keep func(Row) bool) *Table {
	out := &Table{Columns: t.Columns, Rows: [][]string{}}
	for i := range t.Rows {
		if keep(t.Row(i)) {
			out.Rows = append(out.Rows, t.Rows[i])
		}
	}
	return out
}

// Row is a single data row bound to its worksheet header
type Row struct {
	Columns []string
	Values  []string
}

// Get returns the value under col and whether the header carries col
func (r Row) Get(col string) (string, bool) {
	for i, c := range r.Columns {
		if c == col {
			if i < len(r.Values) {
				return r.Values[i], true
			}
			return "", true
		}
	}
	return "", false
}

// Value returns the value under col or ""
func (r Row) Value(col string) string {
	v, _ := r.Get(col)
	return v
}

// Matcher selects rows by content
type Matcher func(Row) bool
