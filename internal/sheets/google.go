package sheets

import (
	"context"
	"fmt"
	"strings"

	logger "github.com/sirupsen/logrus"
	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"
)

// GoogleClient talks to the Google Sheets API v4 with a service account
type GoogleClient struct {
	srv *gsheets.Service
}

// NewGoogleClient creates a client authenticated with a service account key file
func NewGoogleClient(ctx context.Context, credentialsFile string) (*GoogleClient, error) {
	srv, err := gsheets.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(gsheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	logger.Infof("📗 Google Sheets client ready (credentials: %s)", credentialsFile)
	return &GoogleClient{srv: srv}, nil
}

// Worksheets lists worksheet titles in spreadsheet order
func (c *GoogleClient) Worksheets(ctx context.Context, spreadsheetID string) ([]string, error) {
	ss, err := c.srv.Spreadsheets.Get(spreadsheetID).Fields("sheets.properties").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("get spreadsheet %s: %w", spreadsheetID, err)
	}
	titles := make([]string, 0, len(ss.Sheets))
	for _, s := range ss.Sheets {
		titles = append(titles, s.Properties.Title)
	}
	return titles, nil
}

// Values reads every populated row of a worksheet as formatted strings
func (c *GoogleClient) Values(ctx context.Context, spreadsheetID, worksheet string) ([][]string, error) {
	resp, err := c.srv.Spreadsheets.Values.Get(spreadsheetID, quoteWorksheet(worksheet)).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", worksheet, err)
	}
	out := make([][]string, 0, len(resp.Values))
	for _, row := range resp.Values {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = fmt.Sprint(v)
		}
		out = append(out, cells)
	}
	return out, nil
}

// AppendRow adds a row after the last populated row
func (c *GoogleClient) AppendRow(ctx context.Context, spreadsheetID, worksheet string, row []string) error {
	vr := &gsheets.ValueRange{Values: [][]interface{}{toInterfaces(row)}}
	_, err := c.srv.Spreadsheets.Values.Append(spreadsheetID, quoteWorksheet(worksheet), vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("append to %s: %w", worksheet, err)
	}
	return nil
}

// UpdateCells writes individual cells of one data row in a single batch
func (c *GoogleClient) UpdateCells(ctx context.Context, spreadsheetID, worksheet string, row int, cells map[int]string) error {
	if row < 0 {
		return ErrRowOutOfRange
	}
	req := &gsheets.BatchUpdateValuesRequest{ValueInputOption: "USER_ENTERED"}
	for col, v := range cells {
		req.Data = append(req.Data, &gsheets.ValueRange{
			Range:  fmt.Sprintf("%s!%s%d", quoteWorksheet(worksheet), ColumnLetter(col), sheetRowNumber(row)),
			Values: [][]interface{}{{v}},
		})
	}
	if _, err := c.srv.Spreadsheets.Values.BatchUpdate(spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("update %s row %d: %w", worksheet, sheetRowNumber(row), err)
	}
	return nil
}

// DeleteRow removes one data row, shifting the rows below it up
func (c *GoogleClient) DeleteRow(ctx context.Context, spreadsheetID, worksheet string, row int) error {
	if row < 0 {
		return ErrRowOutOfRange
	}
	sheetID, err := c.worksheetID(ctx, spreadsheetID, worksheet)
	if err != nil {
		return err
	}
	start := int64(sheetRowNumber(row) - 1)
	req := &gsheets.BatchUpdateSpreadsheetRequest{
		Requests: []*gsheets.Request{{
			DeleteDimension: &gsheets.DeleteDimensionRequest{
				Range: &gsheets.DimensionRange{
					SheetId:    sheetID,
					Dimension:  "ROWS",
					StartIndex: start,
					EndIndex:   start + 1,
				},
			},
		}},
	}
	if _, err := c.srv.Spreadsheets.BatchUpdate(spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("delete %s row %d: %w", worksheet, sheetRowNumber(row), err)
	}
	return nil
}

func (c *GoogleClient) worksheetID(ctx context.Context, spreadsheetID, worksheet string) (int64, error) {
	ss, err := c.srv.Spreadsheets.Get(spreadsheetID).Fields("sheets.properties").Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("get spreadsheet %s: %w", spreadsheetID, err)
	}
	for _, s := range ss.Sheets {
		if s.Properties.Title == worksheet {
			return s.Properties.SheetId, nil
		}
	}
	return 0, fmt.Errorf("%w: %s", ErrWorksheetNotFound, worksheet)
}

// sheetRowNumber converts a data row index to the 1-based sheet row (header is row 1)
func sheetRowNumber(row int) int {
	return row + 2
}

func quoteWorksheet(name string) string {
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}

// ColumnLetter converts a zero-based column index to A1 notation (0 -> A, 26 -> AA)
func ColumnLetter(col int) string {
	var b []byte
	for n := col + 1; n > 0; n = (n - 1) / 26 {
		b = append([]byte{byte('A' + (n-1)%26)}, b...)
	}
	return string(b)
}

func toInterfaces(row []string) []interface{} {
	out := make([]interface{}, len(row))
	for i, v := range row {
		out[i] = v
	}
	return out
}
