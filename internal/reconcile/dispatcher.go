package reconcile

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Sguobi-git/Orders-App/internal/models"
	"github.com/Sguobi-git/Orders-App/internal/session"
	"github.com/Sguobi-git/Orders-App/internal/sheets"
	logger "github.com/sirupsen/logrus"
)

// Store is the remote side of order mutations
type Store interface {
	Sections(ctx context.Context) ([]string, error)
	UpdateStatus(ctx context.Context, worksheet string, key Key, status models.OrderStatus) error
	AppendOrder(ctx context.Context, worksheet string, order models.Order) error
	DeleteOrder(ctx context.Context, worksheet string, key Key) error
}

// ValidationError rejects input before any remote call is made
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// RemoteError wraps a failed spreadsheet call. Nothing is retried or rolled back.
type RemoteError struct {
	Op  string
	Key Key
	Err error
}

func (e *RemoteError) Error() string {
	if e.Key == (Key{}) {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Key, e.Err)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// Result reports which changes were written and which were ignored
type Result struct {
	Applied []Change `json:"applied"`
	Skipped []Change `json:"skipped"`
}

// DeleteOutcome tells the caller whether a delete ran or is waiting for confirmation
type DeleteOutcome string

const (
	DeleteArmed     DeleteOutcome = "armed"
	DeleteCompleted DeleteOutcome = "deleted"
)

// DeleteResult is returned by RequestDelete
type DeleteResult struct {
	Outcome DeleteOutcome `json:"outcome"`
	Key     Key           `json:"key"`
	Token   string        `json:"token,omitempty"`
}

// Dispatcher turns table edits, new orders and deletes into store calls
type Dispatcher struct {
	store Store
	now   func() time.Time
}

// NewDispatcher creates a dispatcher over store
func NewDispatcher(store Store) *Dispatcher {
	return &Dispatcher{store: store, now: time.Now}
}

// DispatchEdits writes every Status change as one status update keyed by the
// snapshot row's identity. Edits to any other column are reported as skipped.
// The first remote failure stops the batch; earlier updates stay applied.
func (d *Dispatcher) DispatchEdits(ctx context.Context, sess *session.Session, before *sheets.Table, changes []Change) (Result, error) {
	res := Result{Applied: []Change{}, Skipped: []Change{}}

	var updates []Change
	for _, c := range changes {
		if c.Column != models.ColStatus {
			res.Skipped = append(res.Skipped, c)
			continue
		}
		if c.Row < 0 || c.Row >= before.Len() {
			return res, &ValidationError{Field: models.ColStatus, Message: fmt.Sprintf("row %d is outside the table", c.Row)}
		}
		if strings.TrimSpace(c.New) != "" {
			if _, ok := models.ParseStatus(c.New, models.EditableStatuses); !ok {
				return res, &ValidationError{Field: models.ColStatus, Message: fmt.Sprintf("unknown status %q", c.New)}
			}
		}
		updates = append(updates, c)
	}
	if len(updates) == 0 {
		return res, nil
	}

	sections, err := d.store.Sections(ctx)
	if err != nil {
		return res, &RemoteError{Op: "list sections", Err: err}
	}

	for _, c := range updates {
		key := KeyOf(before.Row(c.Row))
		status, _ := models.ParseStatus(c.New, models.EditableStatuses)
		worksheet := resolveWorksheet(key.Section, sections)

		if err := d.store.UpdateStatus(ctx, worksheet, key, status); err != nil {
			logger.Errorf("❌ status update for %s failed: %v", key, err)
			return res, &RemoteError{Op: "update status", Key: key, Err: err}
		}
		logger.Infof("✏️ %s set %s to %q in %s", sess.Initials, key, status, worksheet)
		res.Applied = append(res.Applied, c)
	}
	return res, nil
}

// AddOrder validates and stamps a new order and appends it to the Orders
// worksheet, which every order listing reads
func (d *Dispatcher) AddOrder(ctx context.Context, sess *session.Session, o models.Order) (models.Order, error) {
	o, err := NormalizeOrder(o)
	if err != nil {
		return o, err
	}

	now := d.now()
	o.Date = now.Format(models.OrderDateLayout)
	o.Hour = now.Format(models.OrderHourLayout)
	o.User = sess.Initials

	key := Key{Booth: o.Booth, Item: o.Item, Color: o.Color, Section: o.Section}
	if err := d.store.AppendOrder(ctx, models.OrdersWorksheet, o); err != nil {
		logger.Errorf("❌ add order %s failed: %v", key, err)
		return o, &RemoteError{Op: "add order", Key: key, Err: err}
	}
	logger.Infof("➕ %s added %s", sess.Initials, key)
	return o, nil
}

// RequestDelete needs two calls for the same row. The first arms a
// confirmation on the session and returns its token; the second, carrying
// that token, deletes. Selecting another row re-arms for that row. The
// confirmation is consumed whether or not the delete succeeds.
func (d *Dispatcher) RequestDelete(ctx context.Context, sess *session.Session, key Key, token string) (DeleteResult, error) {
	if !sess.Confirms(key.String(), token) {
		return DeleteResult{Outcome: DeleteArmed, Key: key, Token: sess.ArmDelete(key.String())}, nil
	}
	sess.ClearDelete()

	sections, err := d.store.Sections(ctx)
	if err != nil {
		return DeleteResult{Key: key}, &RemoteError{Op: "list sections", Key: key, Err: err}
	}
	worksheet := resolveWorksheet(key.Section, sections)
	if err := d.store.DeleteOrder(ctx, worksheet, key); err != nil {
		logger.Errorf("❌ delete %s failed: %v", key, err)
		return DeleteResult{Key: key}, &RemoteError{Op: "delete order", Key: key, Err: err}
	}
	logger.Infof("🗑️ %s deleted %s from %s", sess.Initials, key, worksheet)
	return DeleteResult{Outcome: DeleteCompleted, Key: key}, nil
}

// CancelDelete drops an armed confirmation
func (d *Dispatcher) CancelDelete(sess *session.Session) {
	sess.ClearDelete()
}

// resolveWorksheet picks the section's own worksheet when it exists
func resolveWorksheet(section string, sections []string) string {
	for _, s := range sections {
		if s == section {
			return s
		}
	}
	return models.OrdersWorksheet
}

// IsNotFound reports whether err means the targeted row no longer exists
func IsNotFound(err error) bool {
	return errors.Is(err, sheets.ErrNoMatch)
}
