package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/srgjo27/movie_booking/internal/core/domain"
)

type AccountService struct {
	store *Store
	log   *zap.Logger
}

func NewAccountService(store *Store) *AccountService {
	return &AccountService{store: store, log: store.log.Named("accounts")}
}

// Register creates a passwordless standard user. Usernames are case-sensitive.
func (s *AccountService) Register(ctx context.Context, username, email string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", domain.ErrInvalidInput)
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	user := &domain.User{
		Username: username,
		Email:    strings.TrimSpace(email),
		Role:     domain.RoleUser,
	}

	if err := s.store.state.PutUser(user); err != nil {
		return nil, err
	}

	s.log.Info("user registered", zap.String("user", username))

	out := user.Clone()

	return &out, nil
}

// Authenticate checks the password of accounts that carry one (always the
// admin). Passwordless users log in by username alone.
func (s *AccountService) Authenticate(username, password string) (*domain.User, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	user, ok := s.store.state.User(strings.TrimSpace(username))
	if !ok {
		return nil, fmt.Errorf("user %q: %w", username, domain.ErrNotFound)
	}

	if user.IsAdmin() || user.PasswordHash != "" {
		if !VerifyPassword(user.PasswordHash, password) {
			s.log.Warn("failed login", zap.String("user", user.Username))
			return nil, domain.ErrBadCredentials
		}
	}

	out := user.Clone()

	return &out, nil
}

// RequiresPassword reports whether the account needs a password to log in.
func (s *AccountService) RequiresPassword(username string) bool {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	user, ok := s.store.state.User(strings.TrimSpace(username))
	return ok && (user.IsAdmin() || user.PasswordHash != "")
}

func (s *AccountService) Get(username string) (*domain.User, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	user, ok := s.store.state.User(username)
	if !ok {
		return nil, fmt.Errorf("user %q: %w", username, domain.ErrNotFound)
	}

	out := user.Clone()

	return &out, nil
}

func (s *AccountService) CreditPoints(username string, amount int) error {
	if amount < 0 {
		return fmt.Errorf("%w: cannot credit %d points", domain.ErrInvalidInput, amount)
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	user, ok := s.store.state.User(username)
	if !ok {
		return fmt.Errorf("user %q: %w", username, domain.ErrNotFound)
	}

	user.Points += amount

	return nil
}

func (s *AccountService) Balance(username string) (int, error) {
	user, err := s.Get(username)
	if err != nil {
		return 0, err
	}

	return user.Points, nil
}

// History lists the user's booking identifiers in booking order.
func (s *AccountService) History(username string) ([]string, error) {
	user, err := s.Get(username)
	if err != nil {
		return nil, err
	}

	return user.BookingIDs, nil
}

// HashPassword returns bcrypt hash using the given cost.
func HashPassword(plain string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}

	return string(b), nil
}

// VerifyPassword safely compares bcrypt hash and plain password.
func VerifyPassword(hash, plain string) bool {
	if hash == "" {
		return false
	}

	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
