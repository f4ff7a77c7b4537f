package service

import (
	"context"
	"errors"
	"time"

	"heavyrent-backend/internal/auth"
	"heavyrent-backend/internal/model"
	"heavyrent-backend/internal/store"
)

// CreateRentalInput describes a rental request.
type CreateRentalInput struct {
	MachineID uint
	StartDate time.Time
	EndDate   time.Time
}

// Notifier is told about every persisted rental request.
type Notifier interface {
	Dispatch(rentalID uint)
}

// Rentals creates and lists rental requests.
type Rentals struct {
	rentals  store.RentalStore
	machines store.MachineStore
	notifier Notifier
}

// NewRentals creates the rental service. notifier may be nil.
func NewRentals(rentals store.RentalStore, machines store.MachineStore, notifier Notifier) *Rentals {
	return &Rentals{rentals: rentals, machines: machines, notifier: notifier}
}

// Create persists a pending rental of an existing machine for the caller.
func (r *Rentals) Create(ctx context.Context, in CreateRentalInput, caller auth.Identity) (*model.RentalRequest, error) {
	if caller.UserID == 0 {
		return nil, ErrUnauthenticated
	}
	if in.EndDate.Before(in.StartDate) {
		return nil, ErrInvalidDateRange
	}

	machine, err := r.machines.FindMachineByID(ctx, in.MachineID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrMachineNotFound
	}
	if err != nil {
		return nil, err
	}

	rental := &model.RentalRequest{
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
		Status:    model.RentalStatusPending,
		MachineID: machine.ID,
		Machine:   machine,
		UserID:    caller.UserID,
	}
	if err := r.rentals.CreateRental(ctx, rental); err != nil {
		return nil, err
	}

	if r.notifier != nil {
		r.notifier.Dispatch(rental.ID)
	}
	return rental, nil
}

// FindByUser returns the user's rentals with machine and user populated.
func (r *Rentals) FindByUser(ctx context.Context, userID uint) ([]model.RentalRequest, error) {
	if userID == 0 {
		return nil, ErrUnauthenticated
	}
	return r.rentals.ListRentalsByUser(ctx, userID)
}
