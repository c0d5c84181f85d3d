// Package internaldb implements UserStore using BadgerHold.
// It manages registered accounts keyed by username.
package internaldb

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/timshannon/badgerhold/v4"

	"github.com/foliotrack/foliotrack/internal/common"
	"github.com/foliotrack/foliotrack/internal/models"
)

// ErrUserNotFound is returned when no account exists for a username or email.
var ErrUserNotFound = fmt.Errorf("user not found")

// Store implements interfaces.UserStore using BadgerHold.
type Store struct {
	db     *badgerhold.Store
	logger *common.Logger
}

// NewStore creates a new UserStore backed by BadgerHold.
func NewStore(logger *common.Logger, path string) (*Store, error) {
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create internal db path %s: %w", path, err)
	}
	opts := badgerhold.DefaultOptions
	opts.Dir = path
	opts.ValueDir = path
	opts.Logger = nil
	db, err := badgerhold.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open internal db at %s: %w", path, err)
	}
	logger.Info().Str("path", path).Msg("InternalDB opened")
	return &Store{db: db, logger: logger}, nil
}

func (s *Store) GetUser(_ context.Context, username string) (*models.User, error) {
	var user models.User
	if err := s.db.Get(username, &user); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("%w: '%s'", ErrUserNotFound, username)
		}
		return nil, fmt.Errorf("failed to get user '%s': %w", username, err)
	}
	return &user, nil
}

func (s *Store) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	var users []models.User
	if err := s.db.Find(&users, badgerhold.Where("Email").Eq(email)); err != nil {
		return nil, fmt.Errorf("failed to look up email '%s': %w", email, err)
	}
	if len(users) == 0 {
		return nil, fmt.Errorf("%w: email '%s'", ErrUserNotFound, email)
	}
	return &users[0], nil
}

func (s *Store) SaveUser(_ context.Context, user *models.User) error {
	now := time.Now()
	var existing models.User
	if err := s.db.Get(user.Username, &existing); err == nil {
		user.CreatedAt = existing.CreatedAt
	} else if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.ModifiedAt = now

	if err := s.db.Upsert(user.Username, user); err != nil {
		return fmt.Errorf("failed to save user '%s': %w", user.Username, err)
	}
	s.logger.Debug().Str("username", user.Username).Msg("User saved")
	return nil
}

func (s *Store) DeleteUser(_ context.Context, username string) error {
	if err := s.db.Delete(username, models.User{}); err != nil && err != badgerhold.ErrNotFound {
		return fmt.Errorf("failed to delete user '%s': %w", username, err)
	}
	s.logger.Debug().Str("username", username).Msg("User deleted")
	return nil
}

func (s *Store) ListUsers(_ context.Context) ([]string, error) {
	var users []models.User
	if err := s.db.Find(&users, nil); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	names := make([]string, len(users))
	for i, u := range users {
		names[i] = u.Username
	}
	return names, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
