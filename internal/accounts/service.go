// Package accounts manages dashboard users restricted to the corporate domain
package accounts

import (
	"context"
	"crypto/rand"
	"errors"
	"math/big"
	"strings"
	"time"

	"github.com/Sguobi-git/Orders-App/internal/models"
	"github.com/Sguobi-git/Orders-App/internal/session"
	"github.com/Sguobi-git/Orders-App/internal/utils"
	logger "github.com/sirupsen/logrus"
)

// MinPasswordLength is the shortest password a user may choose
const MinPasswordLength = 8

// GeneratedPasswordLength is the length of reset and admin-issued passwords
const GeneratedPasswordLength = 10

const passwordAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*"

var (
	ErrInvalidDomain      = errors.New("please use a valid company email address")
	ErrExists             = errors.New("this email is already registered")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters long")
	ErrNotFound           = errors.New("account not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrWrongPassword      = errors.New("current password is incorrect")
	ErrSelfDelete         = errors.New("you cannot delete your own account")
)

// Service implements registration, login and account administration
type Service struct {
	store    Store
	sessions session.Store
	domain   string
	now      func() time.Time
}

// NewService creates the account service for emails ending in @domain
func NewService(store Store, sessions session.Store, domain string) *Service {
	return &Service{
		store:    store,
		sessions: sessions,
		domain:   strings.ToLower(strings.TrimPrefix(domain, "@")),
		now:      time.Now,
	}
}

// Domain returns the corporate email domain
func (s *Service) Domain() string {
	return s.domain
}

func (s *Service) normalize(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !strings.HasSuffix(email, "@"+s.domain) || len(email) == len(s.domain)+1 {
		return "", ErrInvalidDomain
	}
	return email, nil
}

func (s *Service) stamp() string {
	return s.now().Format(models.AccountTimeLayout)
}

// Register creates a non-admin account chosen by the user
func (s *Service) Register(email, password, confirm string) (*models.Account, error) {
	email, err := s.normalize(email)
	if err != nil {
		return nil, err
	}
	if _, ok := s.store.Get(email); ok {
		return nil, ErrExists
	}
	if password != confirm {
		return nil, ErrPasswordMismatch
	}
	if len(password) < MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}
	a := models.Account{
		Email:        email,
		PasswordHash: hash,
		Initials:     Initials(email),
		CreatedAt:    s.stamp(),
	}
	if err := s.store.PutNew(a); err != nil {
		return nil, err
	}
	logger.Infof("👤 Registered %s (%s)", email, a.Initials)
	return &a, nil
}

// Login verifies credentials. Legacy SHA-256 hashes are replaced with bcrypt
// on the first successful login.
func (s *Service) Login(email, password string) (*models.Account, error) {
	email, err := s.normalize(email)
	if err != nil {
		return nil, err
	}
	a, ok := s.store.Get(email)
	if !ok {
		return nil, ErrInvalidCredentials
	}

	if utils.IsLegacyHash(a.PasswordHash) {
		if !utils.CheckLegacyHash(password, a.PasswordHash) {
			return nil, ErrInvalidCredentials
		}
		hash, err := utils.HashPassword(password)
		if err != nil {
			return nil, err
		}
		a.PasswordHash = hash
		if err := s.store.Put(a); err != nil {
			logger.Warnf("⚠️ Could not upgrade password hash for %s: %v", email, err)
		} else {
			logger.Infof("🔐 Upgraded legacy password hash for %s", email)
		}
		return &a, nil
	}

	if !utils.CheckPasswordHash(password, a.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return &a, nil
}

// ResetPassword replaces the password of email with a generated one and returns it
func (s *Service) ResetPassword(ctx context.Context, email string) (string, error) {
	email, err := s.normalize(email)
	if err != nil {
		return "", err
	}
	a, ok := s.store.Get(email)
	if !ok {
		return "", ErrNotFound
	}
	password, err := GeneratePassword(GeneratedPasswordLength)
	if err != nil {
		return "", err
	}
	if err := s.setPassword(a, password); err != nil {
		return "", err
	}
	s.revoke(ctx, email)
	return password, nil
}

// ChangePassword replaces the password of email after checking the current one
func (s *Service) ChangePassword(email, current, next, confirm string) error {
	a, ok := s.store.Get(email)
	if !ok {
		return ErrNotFound
	}
	valid := utils.CheckPasswordHash(current, a.PasswordHash)
	if utils.IsLegacyHash(a.PasswordHash) {
		valid = utils.CheckLegacyHash(current, a.PasswordHash)
	}
	if !valid {
		return ErrWrongPassword
	}
	if next != confirm {
		return ErrPasswordMismatch
	}
	if len(next) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	return s.setPassword(a, next)
}

func (s *Service) setPassword(a models.Account, password string) error {
	hash, err := utils.HashPassword(password)
	if err != nil {
		return err
	}
	a.PasswordHash = hash
	a.LastReset = s.stamp()
	return s.store.Put(a)
}

// CreateUser adds an account with a generated password and returns the password
func (s *Service) CreateUser(email string, isAdmin bool) (*models.Account, string, error) {
	email, err := s.normalize(email)
	if err != nil {
		return nil, "", err
	}
	if _, ok := s.store.Get(email); ok {
		return nil, "", ErrExists
	}
	password, err := GeneratePassword(GeneratedPasswordLength)
	if err != nil {
		return nil, "", err
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, "", err
	}
	a := models.Account{
		Email:        email,
		PasswordHash: hash,
		Initials:     Initials(email),
		IsAdmin:      isAdmin,
		CreatedAt:    s.stamp(),
	}
	if err := s.store.PutNew(a); err != nil {
		return nil, "", err
	}
	logger.Infof("👤 Created %s (admin=%v)", email, isAdmin)
	return &a, password, nil
}

// DeleteUser removes email and ends its sessions. actor may not delete itself.
func (s *Service) DeleteUser(ctx context.Context, actor, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == actor {
		return ErrSelfDelete
	}
	if err := s.store.Delete(email); err != nil {
		return err
	}
	s.revoke(ctx, email)
	logger.Infof("🗑️ Deleted account %s", email)
	return nil
}

func (s *Service) revoke(ctx context.Context, email string) {
	if s.sessions == nil {
		return
	}
	if err := s.sessions.RevokeAllForUser(ctx, email); err != nil {
		logger.Warnf("⚠️ Could not revoke sessions of %s: %v", email, err)
	}
}

// Get returns one account
func (s *Service) Get(email string) (*models.Account, error) {
	a, ok := s.store.Get(email)
	if !ok {
		return nil, ErrNotFound
	}
	return &a, nil
}

// List returns every account without password hashes
func (s *Service) List() []models.AccountView {
	all := s.store.List()
	out := make([]models.AccountView, 0, len(all))
	for _, a := range all {
		out = append(out, a.View())
	}
	return out
}

// EnsureAdmin creates admin@domain when the store is empty. The generated
// password is logged once.
func (s *Service) EnsureAdmin() error {
	if s.store.Len() > 0 {
		return nil
	}
	a, password, err := s.CreateUser("admin@"+s.domain, true)
	if err != nil {
		return err
	}
	logger.Warnf("🔑 No accounts found, created %s with password %s. Change it after first login.", a.Email, password)
	return nil
}

// Initials derives initials from the local part of an email: first.last
// gives FL, otherwise the first two letters uppercased.
func Initials(email string) string {
	prefix := email
	if i := strings.Index(email, "@"); i >= 0 {
		prefix = email[:i]
	}
	if strings.Contains(prefix, ".") {
		parts := strings.Split(prefix, ".")
		first, last := []rune(parts[0]), []rune(parts[len(parts)-1])
		if len(first) > 0 && len(last) > 0 {
			return strings.ToUpper(string(first[:1]) + string(last[:1]))
		}
	}
	letters := []rune(prefix)
	if len(letters) > 2 {
		letters = letters[:2]
	}
	return strings.ToUpper(string(letters))
}

// GeneratePassword returns n characters drawn from letters, digits and !@#$%^&*
func GeneratePassword(n int) (string, error) {
	limit := big.NewInt(int64(len(passwordAlphabet)))
	b := make([]byte, n)
	for i := range b {
		idx, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		b[i] = passwordAlphabet[idx.Int64()]
	}
	return string(b), nil
}
