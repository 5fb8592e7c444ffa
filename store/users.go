package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/chirp/chirp/models"
)

var (
	ErrNicknameTaken = fmt.Errorf("nickname is already taken: %w", ErrConflict)
	ErrEmailTaken    = fmt.Errorf("email is already registered: %w", ErrConflict)
)

// CheckAvailable reports which identity field, if any, is already in use.
// Nickname is checked first.
func (s *Store) CheckAvailable(ctx context.Context, nickname, email string) error {
	var n int64
	if err := s.conn(ctx).Model(&models.User{}).Where("nickname = ?", nickname).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return ErrNicknameTaken
	}
	if err := s.conn(ctx).Model(&models.User{}).Where("email = ?", email).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return ErrEmailTaken
	}
	return nil
}

// CreateUser inserts u. A unique index violation comes back as ErrConflict.
func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	if err := s.conn(ctx).Create(u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("create user: %w", ErrConflict)
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// UserByID returns the user with id or ErrNotFound.
func (s *Store) UserByID(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	if err := s.conn(ctx).First(&u, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

// UserByEmail returns the user registered with email or ErrNotFound.
func (s *Store) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.conn(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

// UsersByIDs loads users in one query, keyed by id. Unknown ids are absent from the map.
func (s *Store) UsersByIDs(ctx context.Context, ids []uint) (map[uint]models.User, error) {
	out := make(map[uint]models.User, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var users []models.User
	if err := s.conn(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	for _, u := range users {
		out[u.ID] = u
	}
	return out, nil
}

// CountUsers returns the number of registered users.
func (s *Store) CountUsers(ctx context.Context) (int64, error) {
	var n int64
	err := s.conn(ctx).Model(&models.User{}).Count(&n).Error
	return n, err
}
