// Package repositories contains the data access contracts of the
// application and their gorm implementations.
package repositories

import (
	"context"

	"github.com/finanzas-app/backend/internal/models"
	"github.com/google/uuid"
)

// TransactionRepository manages the transactions of users.
type TransactionRepository interface {
	Create(ctx context.Context, create models.TransactionCreate) (models.Transaction, error)

	// GetAll returns the transactions of the user matching the filter,
	// newest first.
	GetAll(ctx context.Context, userID uuid.UUID, filter models.TransactionFilter) ([]models.Transaction, error)

	// Count returns the number of transactions matching the filter. Offset
	// and Limit are ignored.
	Count(ctx context.Context, userID uuid.UUID, filter models.TransactionFilter) (int64, error)

	// GetByID returns nil and no error if the transaction does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*models.Transaction, error)
	Update(ctx context.Context, id uuid.UUID, update models.TransactionUpdate) (models.Transaction, error)

	// Delete succeeds for transactions that do not exist.
	Delete(ctx context.Context, id uuid.UUID) error
	GetMonthlySummary(ctx context.Context, userID uuid.UUID, month, year int) (models.MonthlySummary, error)
}

// CategoryRepository manages the categories of users.
type CategoryRepository interface {
	Create(ctx context.Context, create models.CategoryCreate) (models.Category, error)
	GetAll(ctx context.Context, userID uuid.UUID, filter models.CategoryFilter) ([]models.Category, error)
	Count(ctx context.Context, userID uuid.UUID, filter models.CategoryFilter) (int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	GetByName(ctx context.Context, userID uuid.UUID, name string) (*models.Category, error)
	Update(ctx context.Context, id uuid.UUID, update models.CategoryUpdate) (models.Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// AuthRepository is the contract of the auth collaborator.
type AuthRepository interface {
	SignUp(ctx context.Context, name, email, password string) (models.AuthSession, error)
	SignIn(ctx context.Context, email, password string) (models.AuthSession, error)
	SignOut(ctx context.Context, token string) error

	// CurrentUser returns nil and no error if there is no
	// valid session for the token.
	CurrentUser(ctx context.Context, token string) (*models.Identity, error)

	// Subscribe returns a channel of session events and a function
	// to cancel the subscription.
	Subscribe() (<-chan models.SessionEvent, func())
}
