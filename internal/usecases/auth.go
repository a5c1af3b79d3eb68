// Package usecases contains the application operations that combine
// repository calls.
package usecases

import (
	"context"
	"time"

	"github.com/finanzas-app/backend/internal/models"
	"github.com/finanzas-app/backend/internal/repositories"
)

// AuthResult is the result of a successful login or registration.
type AuthResult struct {
	User      models.User
	Token     string
	ExpiresAt time.Time
}

// newAuthResult converts the session of the auth collaborator.
func newAuthResult(session models.AuthSession) AuthResult {
	return AuthResult{
		User:      UserFromIdentity(session.Identity),
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt.UTC(),
	}
}

// UserFromIdentity returns the User for an identity. A missing full name
// is an empty name.
func UserFromIdentity(identity models.Identity) models.User {
	var name string
	if identity.FullName != nil {
		name = *identity.FullName
	}

	return models.User{
		ID:        identity.ID,
		Name:      name,
		Email:     identity.Email,
		CreatedAt: identity.CreatedAt.UTC(),
	}
}

type LoginUser struct {
	Auth repositories.AuthRepository
}

func (u LoginUser) Execute(ctx context.Context, email, password string) (AuthResult, error) {
	session, err := u.Auth.SignIn(ctx, email, password)
	if err != nil {
		return AuthResult{}, err
	}

	return newAuthResult(session), nil
}

type RegisterUser struct {
	Auth repositories.AuthRepository
}

func (u RegisterUser) Execute(ctx context.Context, name, email, password string) (AuthResult, error) {
	session, err := u.Auth.SignUp(ctx, name, email, password)
	if err != nil {
		return AuthResult{}, err
	}

	return newAuthResult(session), nil
}

type LogoutUser struct {
	Auth repositories.AuthRepository
}

func (u LogoutUser) Execute(ctx context.Context, token string) error {
	return u.Auth.SignOut(ctx, token)
}
