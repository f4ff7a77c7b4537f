package service

import (
	"context"
	"errors"

	"heavyrent-backend/internal/model"
	"heavyrent-backend/internal/store"
)

// CreateUserInput is the profile an identity provider supplies.
type CreateUserInput struct {
	Email string
	Name  string
}

// Users resolves and lists user accounts.
type Users struct {
	store store.UserStore
}

// NewUsers creates the user service.
func NewUsers(s store.UserStore) *Users {
	return &Users{store: s}
}

// FindOrCreate returns the user with in.Email, creating it on first sight.
// An existing user is returned unchanged.
func (u *Users) FindOrCreate(ctx context.Context, in CreateUserInput) (*model.User, error) {
	user, err := u.store.FindUserByEmail(ctx, in.Email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	user = &model.User{Email: in.Email, Name: in.Name}
	if err := u.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// FindByID returns ErrUserNotFound when no user has the id.
func (u *Users) FindByID(ctx context.Context, id uint) (*model.User, error) {
	user, err := u.store.FindUserByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (u *Users) FindAll(ctx context.Context) ([]model.User, error) {
	return u.store.ListUsers(ctx)
}
