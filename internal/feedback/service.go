// Package feedback records messages left by users and admin replies to them
package feedback

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Sguobi-git/Orders-App/internal/models"
	"github.com/google/uuid"
	logger "github.com/sirupsen/logrus"
)

var (
	ErrEmptyMessage = errors.New("message is required")
	ErrEmptyReply   = errors.New("reply is required")
)

// Service appends to and answers the feedback log
type Service struct {
	store Store
	now   func() time.Time
}

// NewService creates the feedback service
func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

// Submit appends a message
func (s *Service) Submit(ctx context.Context, name, email, message string) (*models.Feedback, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, ErrEmptyMessage
	}
	f := &models.Feedback{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(name),
		Email:     strings.TrimSpace(email),
		Message:   message,
		CreatedAt: s.now().UTC(),
	}
	if err := s.store.Append(ctx, f); err != nil {
		return nil, err
	}
	logger.Infof("💬 Feedback %s from %s", f.ID, f.Email)
	return f, nil
}

// List returns messages oldest first
func (s *Service) List(ctx context.Context) ([]models.Feedback, error) {
	return s.store.List(ctx)
}

// Reply answers a message; a later reply replaces an earlier one
func (s *Service) Reply(ctx context.Context, id, reply, by string) (*models.Feedback, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return nil, ErrEmptyReply
	}
	return s.store.Reply(ctx, id, reply, by, s.now().UTC())
}
