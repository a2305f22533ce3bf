package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/animes2u/catalog-server/internal/domain"
	"github.com/dgraph-io/badger/v4"
)

var (
	// ErrUserNotFound is returned when a user cannot be found by ID or username.
	ErrUserNotFound = errors.New("user not found")
	// ErrUsernameExists is returned when attempting to create a user with a username that's already in use.
	ErrUsernameExists = errors.New("username already in use")
	// ErrSessionNotFound is returned when a session cannot be found by ID.
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionExpired is returned when attempting to use an expired session.
	ErrSessionExpired = errors.New("session expired")
	// ErrAnimeNotFound is returned when a catalog entry cannot be found by ID.
	ErrAnimeNotFound = errors.New("anime not found")
)

// CreateUser creates a new user account. The store assigns the ID.
func (s *Store) CreateUser(_ context.Context, user *domain.User) error {
	usernameKey := []byte(userByUsernamePrefix + user.Username)

	return s.db.Update(func(txn *badger.Txn) error {
		// Check if username is already in use
		_, err := txn.Get(usernameKey)
		if err == nil {
			return ErrUsernameExists
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("check username exists: %w", err)
		}

		id, err := nextID(txn, userSeqKey)
		if err != nil {
			return err
		}
		user.ID = id

		data, err := json.Marshal(user)
		if err != nil {
			return fmt.Errorf("marshal user: %w", err)
		}

		if err := txn.Set(userKey(id), data); err != nil {
			return err
		}

		// Create username index
		return txn.Set(usernameKey, []byte(strconv.FormatInt(id, 10)))
	})
}

// GetUser retrieves a user by ID.
func (s *Store) GetUser(_ context.Context, id int64) (*domain.User, error) {
	var user domain.User
	if err := s.get(userKey(id), &user); err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	return &user, nil
}

// GetUserByUsername retrieves a user by username. The match is exact and
// case-sensitive.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	usernameKey := []byte(userByUsernamePrefix + username)

	// Look up user ID from username index
	var userID int64
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(usernameKey)
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			id, parseErr := strconv.ParseInt(string(val), 10, 64)
			if parseErr != nil {
				return fmt.Errorf("corrupt username index for %q: %w", username, parseErr)
			}
			userID = id
			return nil
		})
	})

	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("lookup user by username: %w", err)
	}

	return s.GetUser(ctx, userID)
}

// ListUsers returns all users in creation order.
func (s *Store) ListUsers(_ context.Context) ([]*domain.User, error) {
	prefix := []byte(userPrefix)
	var users []*domain.User

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var user domain.User
				if unmarshalErr := json.Unmarshal(val, &user); unmarshalErr != nil {
					// Skip malformed users
					return nil //nolint:nilerr // intentionally skip malformed entries
				}

				users = append(users, &user)
				return nil
			})
			if err != nil {
				return err
			}
		}

		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	return users, nil
}
