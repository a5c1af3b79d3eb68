package models

import (
	"strings"

	"github.com/finanzas-app/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// swagger:enum TransactionType
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// Valid reports if the type is one of the known transaction types.
func (t TransactionType) Valid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

// Transaction is a single income or expense of a user.
//
// The amount is never negative, the direction of the money flow
// is defined by the Type.
type Transaction struct {
	DefaultModel
	TransactionCreate
}

// TransactionCreate contains all fields needed to create a transaction.
type TransactionCreate struct {
	UserID      uuid.UUID       `json:"userId" gorm:"index:idx_transaction_user_date,priority:1" example:"8a3b6c1e-4f0d-4a5e-9c53-5b0e1f1f8e21"` // ID of the user owning the transaction
	Type        TransactionType `json:"type" example:"expense"`                                                                                  // Type of the transaction
	Amount      decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)" example:"25.5" minimum:"0"`                                             // The amount, always positive
	Description string          `json:"description" example:"Groceries" default:""`                                                              // A description
	Category    string          `json:"category" gorm:"index" example:"Comida"`                                                                  // Name of the category
	Date        types.Date      `json:"date" gorm:"index:idx_transaction_user_date,priority:2" example:"2024-03-15" swaggertype:"string"`        // Date the transaction happened
}

// Validate checks that all required fields are set and valid.
func (t TransactionCreate) Validate() error {
	if t.UserID == uuid.Nil {
		return ErrUserIDMissing
	}

	if !t.Type.Valid() {
		return ErrTransactionTypeInvalid
	}

	if t.Amount.IsNegative() {
		return ErrAmountNegative
	}

	if strings.TrimSpace(t.Category) == "" {
		return ErrCategoryNameMissing
	}

	if t.Date.IsZero() {
		return ErrDateMissing
	}

	return nil
}

// TransactionUpdate contains the fields that can be updated on a transaction.
// Only fields that are not nil are updated.
type TransactionUpdate struct {
	Type        *TransactionType `json:"type" example:"income"`
	Amount      *decimal.Decimal `json:"amount" example:"99.99"`
	Description *string          `json:"description" example:"Salary"`
	Category    *string          `json:"category" example:"Sueldo"`
	Date        *types.Date      `json:"date" example:"2024-03-31" swaggertype:"string"`
}

// Validate checks the fields that are set.
func (u TransactionUpdate) Validate() error {
	if u.Type != nil && !u.Type.Valid() {
		return ErrTransactionTypeInvalid
	}

	if u.Amount != nil && u.Amount.IsNegative() {
		return ErrAmountNegative
	}

	if u.Category != nil && strings.TrimSpace(*u.Category) == "" {
		return ErrCategoryNameMissing
	}

	if u.Date != nil && u.Date.IsZero() {
		return ErrDateMissing
	}

	return nil
}

// Apply sets all fields of the update on the transaction.
func (u TransactionUpdate) Apply(t *Transaction) {
	if u.Type != nil {
		t.Type = *u.Type
	}

	if u.Amount != nil {
		t.Amount = *u.Amount
	}

	if u.Description != nil {
		t.Description = *u.Description
	}

	if u.Category != nil {
		t.Category = *u.Category
	}

	if u.Date != nil {
		t.Date = *u.Date
	}
}

// TransactionFilter narrows down the transactions returned by a listing.
//
// Zero values are not used for filtering. A Limit of 0 or less
// returns all matching transactions.
type TransactionFilter struct {
	Type      TransactionType
	Category  string
	StartDate types.Date
	EndDate   types.Date
	Search    string
	Offset    uint
	Limit     int
}

// BeforeSave trims whitespace from string fields and
// makes sure the date does not carry a time of day.
func (t *Transaction) BeforeSave(_ *gorm.DB) (err error) {
	t.Description = strings.TrimSpace(t.Description)
	t.Category = strings.TrimSpace(t.Category)
	t.Date = types.DateOf(t.Date.Time())
	return nil
}
