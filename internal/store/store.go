package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"heavyrent-backend/internal/model"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("record not found")

// UserStore persists users.
type UserStore interface {
	CreateUser(ctx context.Context, user *model.User) error
	FindUserByEmail(ctx context.Context, email string) (*model.User, error)
	FindUserByID(ctx context.Context, id uint) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
}

// MachineStore persists machines.
type MachineStore interface {
	CreateMachine(ctx context.Context, machine *model.Machine) error
	FindMachineByID(ctx context.Context, id uint) (*model.Machine, error)
	ListMachines(ctx context.Context) ([]model.Machine, error)
}

// RentalStore persists rental requests.
type RentalStore interface {
	CreateRental(ctx context.Context, rental *model.RentalRequest) error
	FindRentalByID(ctx context.Context, id uint) (*model.RentalRequest, error)
	ListRentalsByUser(ctx context.Context, userID uint) ([]model.RentalRequest, error)
}

// SubscriptionStore persists browser push subscriptions.
type SubscriptionStore interface {
	UpsertSubscription(ctx context.Context, sub *model.PushSubscription) error
	DeleteSubscription(ctx context.Context, endpoint string, userID uint) error
	ListSubscriptionsByUser(ctx context.Context, userID uint) ([]model.PushSubscription, error)
}

// Store defines the interface for all database operations.
type Store interface {
	UserStore
	MachineStore
	RentalStore
	SubscriptionStore
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

// notFound maps gorm's sentinel onto ErrNotFound.
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
