package store

import (
	"context"
	"fmt"

	"gorm.io/gorm/clause"

	"heavyrent-backend/internal/model"
)

// CreateUser inserts the user. When another writer already inserted the same
// email, the existing row is loaded into user instead.
func (s *gormStore) CreateUser(ctx context.Context, user *model.User) error {
	result := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoNothing: true,
	}).Create(user)
	if result.Error != nil {
		return fmt.Errorf("failed to create user %q: %w", user.Email, result.Error)
	}
	if result.RowsAffected > 0 {
		return nil
	}

	existing, err := s.FindUserByEmail(ctx, user.Email)
	if err != nil {
		return fmt.Errorf("failed to reload user %q after conflict: %w", user.Email, err)
	}
	*user = *existing
	return nil
}

func (s *gormStore) FindUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (s *gormStore) FindUserByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (s *gormStore) ListUsers(ctx context.Context) ([]model.User, error) {
	users := []model.User{}
	if err := s.db.WithContext(ctx).Order("id").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}
