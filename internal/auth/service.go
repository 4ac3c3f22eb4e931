package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/roberrrrrr/App-Activo-Entrena/internal/models"
	"github.com/roberrrrrr/App-Activo-Entrena/internal/store"
)

var (
	// ErrInvalidCredentials covers both unknown usernames and wrong
	// passwords; callers must not be able to tell the two apart.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUsernameTaken is returned when registering an existing username.
	ErrUsernameTaken = errors.New("username already taken")
)

// UserStore defines the persistence operations the service needs.
type UserStore interface {
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	CreateUser(ctx context.Context, username, passwordHash string) (*models.User, error)
}

// Service decides whether a presented username/password pair is valid.
// It is stateless; every call stands on its own.
type Service struct {
	users         UserStore
	lookupTimeout time.Duration
}

func NewService(users UserStore, lookupTimeout time.Duration) *Service {
	if lookupTimeout <= 0 {
		lookupTimeout = 5 * time.Second
	}
	return &Service{users: users, lookupTimeout: lookupTimeout}
}

// Authenticate verifies the pair against the store. It returns
// ErrInvalidCredentials for unknown users and password mismatches alike,
// and passes store faults through so the caller can surface them as a
// server error rather than a rejection.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	// Bound the lookup so a stalled store cannot pin request capacity.
	ctx, cancel := context.WithTimeout(ctx, s.lookupTimeout)
	defer cancel()

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	ok, err := VerifyPassword(user.PasswordHash, password)
	if err != nil {
		return nil, fmt.Errorf("verify password for user %d: %w", user.ID, err)
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}
	return sanitizeUser(user), nil
}

// Register hashes the password and creates the user.
func (s *Service) Register(ctx context.Context, username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, errors.New("username is required")
	}
	if password == "" {
		return nil, errors.New("password is required")
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, s.lookupTimeout)
	defer cancel()

	user, err := s.users.CreateUser(ctx, username, hash)
	if err != nil {
		if errors.Is(err, store.ErrUsernameTaken) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}
	return sanitizeUser(user), nil
}

// sanitizeUser strips the credential before the record leaves the package.
func sanitizeUser(user *models.User) *models.User {
	if user == nil {
		return nil
	}
	return &models.User{
		ID:        user.ID,
		Username:  user.Username,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
