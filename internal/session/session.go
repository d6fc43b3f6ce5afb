// Package session holds the per-login state: who is acting, which show is
// active and which order delete is waiting for confirmation.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("session not found")

// PendingDelete is an armed delete confirmation for one order row
type PendingDelete struct {
	Key     string    `json:"key"`
	Token   string    `json:"token"`
	ArmedAt time.Time `json:"armedAt"`
}

// Session is the explicit context of one logged-in user
type Session struct {
	ID            string         `json:"id"`
	Email         string         `json:"email"`
	Initials      string         `json:"initials"`
	IsAdmin       bool           `json:"isAdmin"`
	Show          string         `json:"show"`
	PendingDelete *PendingDelete `json:"pendingDelete,omitempty"`
	IssuedAt      int64          `json:"iat"`
	ExpiresAt     int64          `json:"exp"`
}

// New starts a session for an authenticated user
func New(email, initials string, isAdmin bool, show string, ttl time.Duration) *Session {
	now := time.Now()
	return &Session{
		ID:        uuid.New().String(),
		Email:     email,
		Initials:  initials,
		IsAdmin:   isAdmin,
		Show:      show,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(ttl).Unix(),
	}
}

// Expired reports whether the session is past its expiry
func (s *Session) Expired(now time.Time) bool {
	return now.Unix() >= s.ExpiresAt
}

// ArmDelete records a fresh confirmation for key and returns its token
func (s *Session) ArmDelete(key string) string {
	s.PendingDelete = &PendingDelete{
		Key:     key,
		Token:   uuid.New().String(),
		ArmedAt: time.Now(),
	}
	return s.PendingDelete.Token
}

// Confirms reports whether key and token match the armed confirmation
func (s *Session) Confirms(key, token string) bool {
	p := s.PendingDelete
	return p != nil && p.Key == key && token != "" && p.Token == token
}

// ClearDelete drops any armed confirmation
func (s *Session) ClearDelete() {
	s.PendingDelete = nil
}

// Store persists sessions between requests
type Store interface {
	Create(ctx context.Context, s *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
	RevokeAllForUser(ctx context.Context, email string) error
}
