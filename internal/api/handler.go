package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"

	"heavyrent-backend/internal/auth"
	"heavyrent-backend/internal/model"
	"heavyrent-backend/internal/mw"
	"heavyrent-backend/internal/service"
	"heavyrent-backend/internal/store"
)

// UserService is the user operations the API exposes.
type UserService interface {
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindAll(ctx context.Context) ([]model.User, error)
}

// AuthService completes OAuth logins.
type AuthService interface {
	ValidateOAuthLogin(ctx context.Context, email, name string) (service.TokenResponse, error)
}

// MachineService is the machine operations the API exposes.
type MachineService interface {
	Create(ctx context.Context, in service.CreateMachineInput, caller auth.Identity) (*model.Machine, error)
	FindAll(ctx context.Context) ([]model.Machine, error)
}

// RentalService is the rental operations the API exposes.
type RentalService interface {
	Create(ctx context.Context, in service.CreateRentalInput, caller auth.Identity) (*model.RentalRequest, error)
	FindByUser(ctx context.Context, userID uint) ([]model.RentalRequest, error)
}

// OAuthProvider is an external identity provider.
type OAuthProvider interface {
	AuthCodeURL(state string) string
	Profile(ctx context.Context, code string) (auth.Profile, error)
}

// StateIssuer hands out and redeems OAuth state values.
type StateIssuer interface {
	Issue() string
	Consume(state string) bool
}

// Deps lists everything the handlers call into.
type Deps struct {
	Users         UserService
	Auth          AuthService
	Machines      MachineService
	Rentals       RentalService
	Subscriptions store.SubscriptionStore
	Provider      OAuthProvider
	States        StateIssuer
	WebPush       *webpush.Options
}

// Handler holds shared dependencies for API handlers.
type Handler struct {
	users    UserService
	auth     AuthService
	machines MachineService
	rentals  RentalService
	subs     store.SubscriptionStore
	provider OAuthProvider
	states   StateIssuer
	webpush  *webpush.Options
}

// NewHandler creates a new API handler.
func NewHandler(d Deps) *Handler {
	return &Handler{
		users:    d.Users,
		auth:     d.Auth,
		machines: d.Machines,
		rentals:  d.Rentals,
		subs:     d.Subscriptions,
		provider: d.Provider,
		states:   d.States,
		webpush:  d.WebPush,
	}
}

// respondError maps service errors onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrUserNotFound), errors.Is(err, service.ErrMachineNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrUnauthenticated):
		status = http.StatusUnauthorized
	case errors.Is(err, service.ErrInvalidDateRange):
		status = http.StatusBadRequest
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}

// caller returns the authenticated identity or aborts with 401.
func caller(c *gin.Context) (auth.Identity, bool) {
	id, ok := mw.IdentityFrom(c)
	if !ok {
		respondError(c, service.ErrUnauthenticated)
	}
	return id, ok
}
