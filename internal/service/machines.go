package service

import (
	"context"

	"heavyrent-backend/internal/auth"
	"heavyrent-backend/internal/model"
	"heavyrent-backend/internal/store"
)

// CreateMachineInput describes a new listing.
type CreateMachineInput struct {
	Name        string
	Description string
	PricePerDay float64
}

// UserLookup resolves a user id.
type UserLookup interface {
	FindByID(ctx context.Context, id uint) (*model.User, error)
}

// Machines lists and creates machines.
type Machines struct {
	store store.MachineStore
	users UserLookup
}

// NewMachines creates the machine service.
func NewMachines(s store.MachineStore, users UserLookup) *Machines {
	return &Machines{store: s, users: users}
}

// Create persists an available machine owned by the caller.
func (m *Machines) Create(ctx context.Context, in CreateMachineInput, caller auth.Identity) (*model.Machine, error) {
	if caller.UserID == 0 {
		return nil, ErrUnauthenticated
	}

	owner, err := m.users.FindByID(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}

	machine := &model.Machine{
		Name:        in.Name,
		Description: in.Description,
		PricePerDay: in.PricePerDay,
		Available:   true,
		CreatedByID: owner.ID,
		CreatedBy:   owner,
	}
	if err := m.store.CreateMachine(ctx, machine); err != nil {
		return nil, err
	}
	return machine, nil
}

// FindAll returns every machine with its owner.
func (m *Machines) FindAll(ctx context.Context) ([]model.Machine, error) {
	return m.store.ListMachines(ctx)
}
