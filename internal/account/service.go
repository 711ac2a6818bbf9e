// Package account holds the signup and login rules.
package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/crucial707/account-api/internal/models"
	"github.com/crucial707/account-api/internal/password"
	"github.com/crucial707/account-api/internal/repo"
)

// Store persists users. *repo.UserRepo implements it.
type Store interface {
	Create(ctx context.Context, u *models.User) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByLoginID(ctx context.Context, loginID string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByLoginID(ctx context.Context, loginID string) (bool, error)
	Update(ctx context.Context, u *models.User) (*models.User, error)
}

// Hasher hashes and verifies passwords. *password.BcryptHasher implements it.
type Hasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) (bool, error)
}

// DuplicateFieldError is returned by Signup when username or loginId is taken.
type DuplicateFieldError struct {
	Field string
}

func (e *DuplicateFieldError) Error() string {
	switch e.Field {
	case repo.FieldUsername:
		return "username already exists"
	case repo.FieldLoginID:
		return "loginId already exists"
	default:
		return "account already exists"
	}
}

// ErrUserNotFound is returned by operations addressing a user by id.
var ErrUserNotFound = errors.New("user not found")

// ErrPasswordTooLong is returned by Signup when the hasher refuses the
// password because of its length.
var ErrPasswordTooLong = errors.New("password too long")

// dummyPassword is hashed once per Service so failed logins for unknown or
// disabled accounts still pay for one Verify.
const dummyPassword = "account-api:dummy-password"

type Service struct {
	store  Store
	hasher Hasher
	logger *slog.Logger
	now    func() time.Time

	dummyOnce sync.Once
	dummyHash string
}

type Option func(*Service)

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithClock overrides time.Now for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(store Store, hasher Hasher, opts ...Option) *Service {
	s := &Service{
		store:  store,
		hasher: hasher,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Signup creates an enabled user. Username conflicts are reported before
// loginId conflicts. The existence checks only produce friendlier errors;
// the store's unique constraints decide races, and a violation there comes
// back as the same *DuplicateFieldError.
func (s *Service) Signup(ctx context.Context, username, loginID, plaintext string) (*models.User, error) {
	s.logger.InfoContext(ctx, "signup started", "username", username, "login_id", loginID)

	taken, err := s.store.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if taken {
		s.logger.WarnContext(ctx, "signup rejected: username exists", "username", username)
		return nil, &DuplicateFieldError{Field: repo.FieldUsername}
	}

	taken, err = s.store.ExistsByLoginID(ctx, loginID)
	if err != nil {
		return nil, fmt.Errorf("check login id: %w", err)
	}
	if taken {
		s.logger.WarnContext(ctx, "signup rejected: login id exists", "login_id", loginID)
		return nil, &DuplicateFieldError{Field: repo.FieldLoginID}
	}

	hash, err := s.hasher.Hash(plaintext)
	if err != nil {
		if errors.Is(err, password.ErrTooLong) {
			return nil, ErrPasswordTooLong
		}
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.store.Create(ctx, models.NewUser(username, loginID, hash, s.now()))
	if err != nil {
		var uv *repo.UniqueViolationError
		if errors.As(err, &uv) {
			s.logger.WarnContext(ctx, "signup lost unique race", "field", uv.Field, "constraint", uv.Constraint)
			return nil, &DuplicateFieldError{Field: uv.Field}
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.InfoContext(ctx, "signup succeeded", "user_id", user.ID, "username", username, "login_id", loginID)
	return user, nil
}

// Authenticate returns the user when loginID exists, the account is enabled
// and plaintext matches the stored hash. Every other outcome is (nil, false,
// nil) so callers cannot tell the causes apart. err is set only for storage
// or hasher faults. Every failure runs exactly one Verify so the causes also
// take the same time.
func (s *Service) Authenticate(ctx context.Context, loginID, plaintext string) (*models.User, bool, error) {
	user, err := s.store.GetByLoginID(ctx, loginID)
	if errors.Is(err, repo.ErrNotFound) {
		s.verifyDummy(plaintext)
		s.logger.WarnContext(ctx, "login failed: unknown login id", "login_id", loginID)
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load user: %w", err)
	}

	if !user.Enabled {
		s.verifyDummy(plaintext)
		s.logger.WarnContext(ctx, "login failed: account disabled", "login_id", loginID)
		return nil, false, nil
	}

	ok, err := s.hasher.Verify(plaintext, user.PasswordHash)
	if err != nil {
		return nil, false, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		s.logger.WarnContext(ctx, "login failed: wrong password", "login_id", loginID)
		return nil, false, nil
	}

	s.logger.InfoContext(ctx, "login succeeded", "user_id", user.ID, "username", user.Username)
	return user, true, nil
}

func (s *Service) FindByLoginID(ctx context.Context, loginID string) (*models.User, bool, error) {
	return found(s.store.GetByLoginID(ctx, loginID))
}

func (s *Service) FindByUsername(ctx context.Context, username string) (*models.User, bool, error) {
	return found(s.store.GetByUsername(ctx, username))
}

// SetEnabled enables or disables an account and refreshes UpdatedAt.
func (s *Service) SetEnabled(ctx context.Context, id int64, enabled bool) (*models.User, error) {
	user, err := s.store.GetByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}

	user.Enabled = enabled
	user.Touch(s.now())

	user, err = s.store.Update(ctx, user)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	s.logger.InfoContext(ctx, "account state changed", "user_id", id, "enabled", enabled)
	return user, nil
}

// verifyDummy burns one Verify against a hash made with the configured cost.
// The result is discarded.
func (s *Service) verifyDummy(plaintext string) {
	s.dummyOnce.Do(func() {
		hash, err := s.hasher.Hash(dummyPassword)
		if err != nil {
			s.logger.Error("dummy hash failed", "error", err)
			return
		}
		s.dummyHash = hash
	})
	_, _ = s.hasher.Verify(plaintext, s.dummyHash)
}

func found(user *models.User, err error) (*models.User, bool, error) {
	if errors.Is(err, repo.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return user, true, nil
}
