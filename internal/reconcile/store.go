package reconcile

import (
	"context"

	"github.com/Sguobi-git/Orders-App/internal/models"
	"github.com/Sguobi-git/Orders-App/internal/sheets"
	logger "github.com/sirupsen/logrus"
)

// SheetStore applies order mutations to the orders spreadsheet
type SheetStore struct {
	book *sheets.Book
}

// NewSheetStore creates a store over the orders spreadsheet
func NewSheetStore(book *sheets.Book) *SheetStore {
	return &SheetStore{book: book}
}

// Sections lists worksheets holding one show section each
func (s *SheetStore) Sections(ctx context.Context) ([]string, error) {
	names, err := s.book.Worksheets(ctx)
	if err != nil {
		return nil, err
	}
	sections := []string{}
	for _, n := range names {
		if models.IsSectionWorksheet(n) {
			sections = append(sections, n)
		}
	}
	return sections, nil
}

// UpdateStatus sets Status on the first row carrying key. No other cell of
// the row is written; User keeps the initials of whoever placed the order.
func (s *SheetStore) UpdateStatus(ctx context.Context, worksheet string, key Key, status models.OrderStatus) error {
	n, err := s.book.UpdateFirst(ctx, worksheet, key.Matcher(), map[string]string{models.ColStatus: string(status)})
	warnAmbiguous(n, worksheet, key)
	return err
}

// AppendOrder adds a new order row
func (s *SheetStore) AppendOrder(ctx context.Context, worksheet string, order models.Order) error {
	return s.book.Append(ctx, worksheet, order.Record())
}

// DeleteOrder removes the first row carrying key
func (s *SheetStore) DeleteOrder(ctx context.Context, worksheet string, key Key) error {
	n, err := s.book.DeleteFirst(ctx, worksheet, key.Matcher())
	warnAmbiguous(n, worksheet, key)
	return err
}

func warnAmbiguous(matches int, worksheet string, key Key) {
	if matches > 1 {
		logger.Warnf("⚠️ %d rows in %s share key %s, only the first was changed", matches, worksheet, key)
	}
}
