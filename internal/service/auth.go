package service

import (
	"context"

	"heavyrent-backend/internal/auth"
	"heavyrent-backend/internal/model"
)

// TokenResponse is returned by a completed OAuth login. The field name is
// part of the public wire format.
type TokenResponse struct {
	AccessToken string `json:"acces_token"`
}

// UserResolver finds or creates the account behind a login.
type UserResolver interface {
	FindOrCreate(ctx context.Context, in CreateUserInput) (*model.User, error)
}

// TokenSigner mints session tokens.
type TokenSigner interface {
	Sign(id auth.Identity) (string, error)
}

// Auth turns a verified provider profile into a session token.
type Auth struct {
	users  UserResolver
	tokens TokenSigner
}

// NewAuth creates the login service.
func NewAuth(users UserResolver, tokens TokenSigner) *Auth {
	return &Auth{users: users, tokens: tokens}
}

// ValidateOAuthLogin resolves the user for email and signs {email, sub}.
// Persistence and signing errors are returned unchanged.
func (a *Auth) ValidateOAuthLogin(ctx context.Context, email, name string) (TokenResponse, error) {
	user, err := a.users.FindOrCreate(ctx, CreateUserInput{Email: email, Name: name})
	if err != nil {
		return TokenResponse{}, err
	}

	token, err := a.tokens.Sign(auth.Identity{UserID: user.ID, Email: user.Email})
	if err != nil {
		return TokenResponse{}, err
	}
	return TokenResponse{AccessToken: token}, nil
}
