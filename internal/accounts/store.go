package accounts

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/Sguobi-git/Orders-App/internal/models"
)

// Store persists accounts keyed by email
type Store interface {
	Get(email string) (models.Account, bool)
	List() []models.Account
	Put(a models.Account) error
	// PutNew stores a and fails with ErrExists when its email is taken
	PutNew(a models.Account) error
	Delete(email string) error
	Len() int
}

// FileStore keeps accounts in one JSON file mapping email to record.
// The whole file is rewritten on every mutation.
type FileStore struct {
	path     string
	mu       sync.RWMutex
	accounts map[string]models.Account
}

// OpenFileStore loads path, treating a missing file as empty
func OpenFileStore(path string) (*FileStore, error) {
	s := &FileStore{path: path, accounts: map[string]models.Account{}}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read credential file: %w", err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return s, nil
	}
	if err := json.Unmarshal(data, &s.accounts); err != nil {
		return nil, fmt.Errorf("parse credential file: %w", err)
	}
	for email, a := range s.accounts {
		a.Email = email
		s.accounts[email] = a
	}
	return s, nil
}

func (s *FileStore) Get(email string) (models.Account, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.accounts[email]
	return a, ok
}

// List returns accounts sorted by email
func (s *FileStore) List() []models.Account {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Account, 0, len(s.accounts))
	for _, a := range s.accounts {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out
}

func (s *FileStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.accounts)
}

func (s *FileStore) Put(a models.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, had := s.accounts[a.Email]
	s.accounts[a.Email] = a
	if err := s.flush(); err != nil {
		if had {
			s.accounts[a.Email] = prev
		} else {
			delete(s.accounts, a.Email)
		}
		return err
	}
	return nil
}

func (s *FileStore) PutNew(a models.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, had := s.accounts[a.Email]; had {
		return ErrExists
	}
	s.accounts[a.Email] = a
	if err := s.flush(); err != nil {
		delete(s.accounts, a.Email)
		return err
	}
	return nil
}

func (s *FileStore) Delete(email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, had := s.accounts[email]
	if !had {
		return ErrNotFound
	}
	delete(s.accounts, email)
	if err := s.flush(); err != nil {
		s.accounts[email] = prev
		return err
	}
	return nil
}

// flush writes a temp file next to the target and renames it over
func (s *FileStore) flush() error {
	data, err := json.MarshalIndent(s.accounts, "", "  ")
	if err != nil {
		return err
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create credential dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".users-*.json")
	if err != nil {
		return fmt.Errorf("write credential file: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write credential file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write credential file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o600); err != nil {
		return fmt.Errorf("write credential file: %w", err)
	}
	return os.Rename(tmp.Name(), s.path)
}
