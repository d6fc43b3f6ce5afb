// Package orders reads the order table, filters it for display and routes
// edits through the reconcile dispatcher.
package orders

import (
	"context"
	"fmt"
	"strings"

	"github.com/Sguobi-git/Orders-App/internal/models"
	"github.com/Sguobi-git/Orders-App/internal/reconcile"
	"github.com/Sguobi-git/Orders-App/internal/session"
	"github.com/Sguobi-git/Orders-App/internal/sheets"
)

// Filter sentinels meaning "do not filter"
const (
	AllSections = "All Sections"
	AllStatuses = "All"
)

// Filter narrows the order table shown to a user
type Filter struct {
	Section string `json:"section"`
	Status  string `json:"status"`
	Search  string `json:"search"`
}

// Service serves the Orders worksheet
type Service struct {
	book       *sheets.Book
	store      reconcile.Store
	dispatcher *reconcile.Dispatcher
}

// NewService creates the order service
func NewService(book *sheets.Book, store reconcile.Store) *Service {
	return &Service{
		book:       book,
		store:      store,
		dispatcher: reconcile.NewDispatcher(store),
	}
}

// Table reads the whole Orders worksheet
func (s *Service) Table(ctx context.Context) (*sheets.Table, error) {
	t, err := s.book.Table(ctx, models.OrdersWorksheet)
	if err != nil {
		return nil, &reconcile.RemoteError{Op: "read orders", Err: err}
	}
	return t, nil
}

// View reads the Orders worksheet narrowed by f
func (s *Service) View(ctx context.Context, f Filter) (*sheets.Table, error) {
	t, err := s.Table(ctx)
	if err != nil {
		return nil, err
	}
	return ApplyFilter(t, f), nil
}

// Sections lists section worksheets
func (s *Service) Sections(ctx context.Context) ([]string, error) {
	sections, err := s.store.Sections(ctx)
	if err != nil {
		return nil, &reconcile.RemoteError{Op: "list sections", Err: err}
	}
	return sections, nil
}

// ApplyEdits diffs the view the client was served against its edited copy
// and dispatches the status changes. Rows the client did not touch are never
// written, whatever happened to them in the sheet since. An edited row whose
// identity is gone from the sheet fails the whole batch with ErrStaleRow.
func (s *Service) ApplyEdits(ctx context.Context, sess *session.Session, before, after *sheets.Table) (reconcile.Result, []reconcile.Change, error) {
	none := reconcile.Result{Applied: []reconcile.Change{}, Skipped: []reconcile.Change{}}
	changes, err := reconcile.Diff(before, after)
	if err != nil {
		return none, nil, err
	}

	edited := map[int]bool{}
	for _, c := range changes {
		if c.Column == models.ColStatus {
			edited[c.Row] = true
		}
	}
	if len(edited) > 0 {
		current, err := s.Table(ctx)
		if err != nil {
			return none, changes, err
		}
		for row := range edited {
			key := reconcile.KeyOf(before.Row(row))
			if current.Select(key.Matcher()).Len() == 0 {
				return none, changes, fmt.Errorf("%w: %s", reconcile.ErrStaleRow, key)
			}
		}
	}

	res, err := s.dispatcher.DispatchEdits(ctx, sess, before, changes)
	return res, changes, err
}

// Add creates a new order
func (s *Service) Add(ctx context.Context, sess *session.Session, o models.Order) (models.Order, error) {
	return s.dispatcher.AddOrder(ctx, sess, o)
}

// RequestDelete runs the two-step delete for one order
func (s *Service) RequestDelete(ctx context.Context, sess *session.Session, key reconcile.Key, token string) (reconcile.DeleteResult, error) {
	return s.dispatcher.RequestDelete(ctx, sess, key, token)
}

// CancelDelete drops an armed delete confirmation
func (s *Service) CancelDelete(sess *session.Session) {
	s.dispatcher.CancelDelete(sess)
}

// ApplyFilter keeps rows matching section, status and a case-insensitive
// search over booth number and exhibitor name.
func ApplyFilter(t *sheets.Table, f Filter) *sheets.Table {
	section := strings.TrimSpace(f.Section)
	status := strings.TrimSpace(f.Status)
	search := strings.ToLower(strings.TrimSpace(f.Search))

	return t.Select(func(r sheets.Row) bool {
		if section != "" && section != AllSections && r.Value(models.ColSection) != section {
			return false
		}
		if status != "" && status != AllStatuses && !strings.EqualFold(strings.TrimSpace(r.Value(models.ColStatus)), status) {
			return false
		}
		if search != "" {
			booth := strings.ToLower(r.Value(models.ColBooth))
			exhibitor := strings.ToLower(r.Value(models.ColExhibitor))
			if !strings.Contains(booth, search) && !strings.Contains(exhibitor, search) {
				return false
			}
		}
		return true
	})
}
