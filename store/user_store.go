package store

import (
	"context"
	"errors"
	"fmt"

	"homefood-api/apperrors"
	"homefood-api/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateUser stores a new user; the email must be unused
func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	err := s.run(ctx, "user.create", func(ctx context.Context) error {
		return s.db.WithContext(ctx).Create(user).Error
	})
	if err != nil && isDuplicate(err) {
		return fmt.Errorf("email %s already registered: %w", user.Email, apperrors.ErrConflict)
	}
	return err
}

// UserByEmail looks a user up for login
func (s *Store) UserByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := s.run(ctx, "user.by_email", func(ctx context.Context) error {
		return s.db.WithContext(ctx).First(&user, "email = ?", email).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, &apperrors.NotFoundError{Entity: "user", ID: email}
	}
	return user, err
}

// UserByID fetches a user by id
func (s *Store) UserByID(ctx context.Context, id string) (models.User, error) {
	var user models.User
	err := s.run(ctx, "user.by_id", func(ctx context.Context) error {
		return s.db.WithContext(ctx).First(&user, "id = ?", id).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, &apperrors.NotFoundError{Entity: "user", ID: id}
	}
	return user, err
}

// CountUsers reports how many users exist, for first-run admin seeding
func (s *Store) CountUsers(ctx context.Context) (int64, error) {
	var n int64
	err := s.run(ctx, "user.count", func(ctx context.Context) error {
		return s.db.WithContext(ctx).Model(&models.User{}).Count(&n).Error
	})
	return n, err
}
