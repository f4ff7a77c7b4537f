package service

import (
	"context"
	"sync"

	"heavyrent-backend/internal/auth"
	"heavyrent-backend/internal/model"
)

// mockUserStore is a mock implementation of the store.UserStore interface.
type mockUserStore struct {
	CreateUserFunc      func(ctx context.Context, user *model.User) error
	FindUserByEmailFunc func(ctx context.Context, email string) (*model.User, error)
	FindUserByIDFunc    func(ctx context.Context, id uint) (*model.User, error)
	ListUsersFunc       func(ctx context.Context) ([]model.User, error)
}

func (m *mockUserStore) CreateUser(ctx context.Context, user *model.User) error {
	return m.CreateUserFunc(ctx, user)
}

func (m *mockUserStore) FindUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return m.FindUserByEmailFunc(ctx, email)
}

func (m *mockUserStore) FindUserByID(ctx context.Context, id uint) (*model.User, error) {
	return m.FindUserByIDFunc(ctx, id)
}

func (m *mockUserStore) ListUsers(ctx context.Context) ([]model.User, error) {
	return m.ListUsersFunc(ctx)
}

// mockMachineStore is a mock implementation of the store.MachineStore interface.
type mockMachineStore struct {
	CreateMachineFunc   func(ctx context.Context, machine *model.Machine) error
	FindMachineByIDFunc func(ctx context.Context, id uint) (*model.Machine, error)
	ListMachinesFunc    func(ctx context.Context) ([]model.Machine, error)
}

func (m *mockMachineStore) CreateMachine(ctx context.Context, machine *model.Machine) error {
	return m.CreateMachineFunc(ctx, machine)
}

func (m *mockMachineStore) FindMachineByID(ctx context.Context, id uint) (*model.Machine, error) {
	return m.FindMachineByIDFunc(ctx, id)
}

func (m *mockMachineStore) ListMachines(ctx context.Context) ([]model.Machine, error) {
	return m.ListMachinesFunc(ctx)
}

// mockRentalStore is a mock implementation of the store.RentalStore interface.
type mockRentalStore struct {
	CreateRentalFunc      func(ctx context.Context, rental *model.RentalRequest) error
	FindRentalByIDFunc    func(ctx context.Context, id uint) (*model.RentalRequest, error)
	ListRentalsByUserFunc func(ctx context.Context, userID uint) ([]model.RentalRequest, error)
}

func (m *mockRentalStore) CreateRental(ctx context.Context, rental *model.RentalRequest) error {
	return m.CreateRentalFunc(ctx, rental)
}

func (m *mockRentalStore) FindRentalByID(ctx context.Context, id uint) (*model.RentalRequest, error) {
	return m.FindRentalByIDFunc(ctx, id)
}

func (m *mockRentalStore) ListRentalsByUser(ctx context.Context, userID uint) ([]model.RentalRequest, error) {
	return m.ListRentalsByUserFunc(ctx, userID)
}

type mockUserLookup struct {
	FindByIDFunc func(ctx context.Context, id uint) (*model.User, error)
}

func (m *mockUserLookup) FindByID(ctx context.Context, id uint) (*model.User, error) {
	return m.FindByIDFunc(ctx, id)
}

type mockUserResolver struct {
	FindOrCreateFunc func(ctx context.Context, in CreateUserInput) (*model.User, error)
}

func (m *mockUserResolver) FindOrCreate(ctx context.Context, in CreateUserInput) (*model.User, error) {
	return m.FindOrCreateFunc(ctx, in)
}

type mockSigner struct {
	SignFunc func(id auth.Identity) (string, error)
}

func (m *mockSigner) Sign(id auth.Identity) (string, error) {
	return m.SignFunc(id)
}

type recordingNotifier struct {
	mu  sync.Mutex
	ids []uint
}

func (n *recordingNotifier) Dispatch(rentalID uint) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.ids = append(n.ids, rentalID)
}
