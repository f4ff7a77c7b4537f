package store

import (
	"context"
	"fmt"

	"gorm.io/gorm/clause"

	"heavyrent-backend/internal/model"
)

// CreateRental inserts the rental row only; machine and user must already exist.
func (s *gormStore) CreateRental(ctx context.Context, rental *model.RentalRequest) error {
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(rental).Error; err != nil {
		return fmt.Errorf("failed to create rental for machine %d: %w", rental.MachineID, err)
	}
	return nil
}

// FindRentalByID loads a rental with its machine.
func (s *gormStore) FindRentalByID(ctx context.Context, id uint) (*model.RentalRequest, error) {
	var rental model.RentalRequest
	if err := s.db.WithContext(ctx).Preload("Machine").First(&rental, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &rental, nil
}

// ListRentalsByUser returns the user's rentals with machine and user populated.
func (s *gormStore) ListRentalsByUser(ctx context.Context, userID uint) ([]model.RentalRequest, error) {
	rentals := []model.RentalRequest{}
	err := s.db.WithContext(ctx).
		Preload("Machine").
		Preload("User").
		Where("user_id = ?", userID).
		Order("id").
		Find(&rentals).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list rentals for user %d: %w", userID, err)
	}
	return rentals, nil
}
