package store

import (
	"context"
	"fmt"

	"gorm.io/gorm/clause"

	"heavyrent-backend/internal/model"
)

// CreateMachine inserts the machine row only; the owner must already exist.
func (s *gormStore) CreateMachine(ctx context.Context, machine *model.Machine) error {
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(machine).Error; err != nil {
		return fmt.Errorf("failed to create machine %q: %w", machine.Name, err)
	}
	return nil
}

func (s *gormStore) FindMachineByID(ctx context.Context, id uint) (*model.Machine, error) {
	var machine model.Machine
	if err := s.db.WithContext(ctx).First(&machine, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &machine, nil
}

// ListMachines returns every machine with its owner populated.
func (s *gormStore) ListMachines(ctx context.Context) ([]model.Machine, error) {
	machines := []model.Machine{}
	if err := s.db.WithContext(ctx).Preload("CreatedBy").Order("id").Find(&machines).Error; err != nil {
		return nil, fmt.Errorf("failed to list machines: %w", err)
	}
	return machines, nil
}
