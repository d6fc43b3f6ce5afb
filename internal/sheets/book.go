package sheets

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"
)

// Book is one spreadsheet addressed through a Client
type Book struct {
	client Client
	id     string
	skip   int
}

// NewBook binds a spreadsheet ID to a client. The header is the first row.
func NewBook(client Client, spreadsheetID string) *Book {
	return &Book{client: client, id: spreadsheetID}
}

// WithHeaderRow returns a book whose worksheets carry their header on the
// given 1-based row. Rows above it are banner rows and are ignored.
func (b *Book) WithHeaderRow(row int) *Book {
	out := *b
	out.skip = row - 1
	if out.skip < 0 {
		out.skip = 0
	}
	return &out
}

// ID returns the spreadsheet ID
func (b *Book) ID() string {
	return b.id
}

// Worksheets lists worksheet names
func (b *Book) Worksheets(ctx context.Context) ([]string, error) {
	return b.client.Worksheets(ctx, b.id)
}

// Table reads a worksheet with its first row as header
func (b *Book) Table(ctx context.Context, worksheet string) (*Table, error) {
	values, err := b.client.Values(ctx, b.id, worksheet)
	if err != nil {
		return nil, err
	}
	if len(values) <= b.skip {
		return NewTable(nil), nil
	}
	return NewTable(values[b.skip:]), nil
}

// Append writes record as a new row laid out in the worksheet's header order.
// Fields the header does not carry are dropped with a warning.
func (b *Book) Append(ctx context.Context, worksheet string, record map[string]string) error {
	t, err := b.Table(ctx, worksheet)
	if err != nil {
		return err
	}
	if len(t.Columns) == 0 {
		return fmt.Errorf("%w: %s", ErrEmptyWorksheet, worksheet)
	}

	row := make([]string, len(t.Columns))
	for col, v := range record {
		idx := t.Index(col)
		if idx < 0 {
			logger.Warnf("⚠️ %s has no column %q, value dropped", worksheet, col)
			continue
		}
		row[idx] = v
	}
	return b.client.AppendRow(ctx, b.id, worksheet, row)
}

// UpdateFirst sets cells of the first row accepted by match and returns how
// many rows matched. Every column in set must exist in the header.
func (b *Book) UpdateFirst(ctx context.Context, worksheet string, match Matcher, set map[string]string) (int, error) {
	t, err := b.Table(ctx, worksheet)
	if err != nil {
		return 0, err
	}
	cells := make(map[int]string, len(set))
	for col, v := range set {
		idx := t.Index(col)
		if idx < 0 {
			return 0, &MissingColumnError{Worksheet: worksheet, Column: col}
		}
		cells[idx] = v
	}

	first, count := findMatches(t, match)
	if count == 0 {
		return 0, ErrNoMatch
	}
	if err := b.client.UpdateCells(ctx, b.id, worksheet, first+b.skip, cells); err != nil {
		return count, err
	}
	return count, nil
}

// DeleteFirst removes the first row accepted by match and returns how many rows matched
func (b *Book) DeleteFirst(ctx context.Context, worksheet string, match Matcher) (int, error) {
	t, err := b.Table(ctx, worksheet)
	if err != nil {
		return 0, err
	}
	first, count := findMatches(t, match)
	if count == 0 {
		return 0, ErrNoMatch
	}
	if err := b.client.DeleteRow(ctx, b.id, worksheet, first+b.skip); err != nil {
		return count, err
	}
	return count, nil
}

func findMatches(t *Table, match Matcher) (first, count int) {
	first = -1
	for i := range t.Rows {
		if match(t.Row(i)) {
			if first < 0 {
				first = i
			}
			count++
		}
	}
	return first, count
}
