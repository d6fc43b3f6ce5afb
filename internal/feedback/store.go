package feedback

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/Sguobi-git/Orders-App/internal/database"
	"github.com/Sguobi-git/Orders-App/internal/models"
	"gorm.io/gorm"
)

// ErrNotFound is returned when replying to an unknown message
var ErrNotFound = errors.New("feedback message not found")

// Store persists the feedback log
type Store interface {
	Append(ctx context.Context, f *models.Feedback) error
	List(ctx context.Context) ([]models.Feedback, error)
	Reply(ctx context.Context, id, reply, by string, at time.Time) (*models.Feedback, error)
}

// FileStore keeps the log as a JSON array in one file
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates a file-backed store; the file is created on first append
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) read() ([]models.Feedback, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return []models.Feedback{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read feedback file: %w", err)
	}
	out := []models.Feedback{}
	if len(strings.TrimSpace(string(data))) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("parse feedback file: %w", err)
	}
	return out, nil
}

func (s *FileStore) write(all []models.Feedback) error {
	data, err := json.MarshalIndent(all, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write feedback file: %w", err)
	}
	return os.Rename(tmp, s.path)
}

func (s *FileStore) Append(_ context.Context, f *models.Feedback) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	all, err := s.read()
	if err != nil {
		return err
	}
	return s.write(append(all, *f))
}

func (s *FileStore) List(_ context.Context) ([]models.Feedback, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

func (s *FileStore) Reply(_ context.Context, id, reply, by string, at time.Time) (*models.Feedback, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	all, err := s.read()
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].ID == id {
			all[i].Reply = reply
			all[i].RepliedBy = by
			all[i].RepliedAt = &at
			if err := s.write(all); err != nil {
				return nil, err
			}
			f := all[i]
			return &f, nil
		}
	}
	return nil, ErrNotFound
}

// DBStore keeps the log in PostgreSQL
type DBStore struct {
	db *database.DB
}

// NewDBStore migrates the feedback table and returns the store
func NewDBStore(db *database.DB) (*DBStore, error) {
	if err := db.AutoMigrate(&models.Feedback{}); err != nil {
		return nil, fmt.Errorf("migrate feedback: %w", err)
	}
	return &DBStore{db: db}, nil
}

func (s *DBStore) Append(ctx context.Context, f *models.Feedback) error {
	return s.db.WithContext(ctx).Create(f).Error
}

func (s *DBStore) List(ctx context.Context) ([]models.Feedback, error) {
	var out []models.Feedback
	if err := s.db.WithContext(ctx).Order("created_at ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (s *DBStore) Reply(ctx context.Context, id, reply, by string, at time.Time) (*models.Feedback, error) {
	var f models.Feedback
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&f, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		f.Reply = reply
		f.RepliedBy = by
		f.RepliedAt = &at
		return tx.Model(&f).Updates(map[string]interface{}{
			"reply":      reply,
			"replied_by": by,
			"replied_at": at,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return &f, nil
}
