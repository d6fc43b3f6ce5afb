// Package sheets is the spreadsheet backend: a positional client over
// worksheets plus a header-aware Book that locates rows by content.
package sheets

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrWorksheetNotFound = errors.New("worksheet not found")
	ErrRowOutOfRange     = errors.New("row out of range")
	ErrNoMatch           = errors.New("no matching row")
	ErrEmptyWorksheet    = errors.New("worksheet has no header row")
)

// MissingColumnError is returned when a write names a column the worksheet header lacks
type MissingColumnError struct {
	Worksheet string
	Column    string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("worksheet %q has no column %q", e.Worksheet, e.Column)
}

// Client is a positional view of a spreadsheet backend.
// Row indexes are zero-based data rows, so row 0 is the first row under the header.
type Client interface {
	Worksheets(ctx context.Context, spreadsheetID string) ([]string, error)
	Values(ctx context.Context, spreadsheetID, worksheet string) ([][]string, error)
	AppendRow(ctx context.Context, spreadsheetID, worksheet string, row []string) error
	UpdateCells(ctx context.Context, spreadsheetID, worksheet string, row int, cells map[int]string) error
	DeleteRow(ctx context.Context, spreadsheetID, worksheet string, row int) error
}
