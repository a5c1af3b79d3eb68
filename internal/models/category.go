package models

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Defaults for the optional display fields of a category.
const (
	DefaultCategoryIcon  = "🍔"
	DefaultCategoryColor = "primary"
)

// Category groups transactions of one type for a user.
type Category struct {
	DefaultModel
	CategoryCreate
}

type CategoryCreate struct {
	UserID uuid.UUID       `json:"userId" gorm:"uniqueIndex:idx_category_user_name" example:"8a3b6c1e-4f0d-4a5e-9c53-5b0e1f1f8e21"` // ID of the user owning the category
	Name   string          `json:"name" gorm:"uniqueIndex:idx_category_user_name" example:"Comida"`                                 // Name of the category, unique per user
	Icon   string          `json:"icon" example:"🍔" default:"🍔"`                                                                    // Icon shown for the category
	Color  string          `json:"color" example:"primary" default:"primary"`                                                       // Palette token for the category
	Type   TransactionType `json:"type" example:"expense"`                                                                          // Type of the transactions in this category
}

// Validate checks that all required fields are set and valid.
func (c CategoryCreate) Validate() error {
	if c.UserID == uuid.Nil {
		return ErrUserIDMissing
	}

	if strings.TrimSpace(c.Name) == "" {
		return ErrCategoryNameMissing
	}

	if !c.Type.Valid() {
		return ErrTransactionTypeInvalid
	}

	return nil
}

// CategoryUpdate contains the fields that can be updated on a category.
// Only fields that are not nil are updated.
type CategoryUpdate struct {
	Name  *string          `json:"name" example:"Supermercado"`
	Icon  *string          `json:"icon" example:"🛒"`
	Color *string          `json:"color" example:"success"`
	Type  *TransactionType `json:"type" example:"expense"`
}

func (u CategoryUpdate) Validate() error {
	if u.Name != nil && strings.TrimSpace(*u.Name) == "" {
		return ErrCategoryNameMissing
	}

	if u.Type != nil && !u.Type.Valid() {
		return ErrTransactionTypeInvalid
	}

	return nil
}

// Apply sets all fields of the update on the category.
func (u CategoryUpdate) Apply(c *Category) {
	if u.Name != nil {
		c.Name = *u.Name
	}

	if u.Icon != nil {
		c.Icon = *u.Icon
	}

	if u.Color != nil {
		c.Color = *u.Color
	}

	if u.Type != nil {
		c.Type = *u.Type
	}
}

// CategoryFilter narrows down the categories returned by a listing.
type CategoryFilter struct {
	Type   TransactionType
	Offset uint
	Limit  int
}

// BeforeSave trims whitespace from string fields and sets the
// defaults for icon and color.
func (c *Category) BeforeSave(_ *gorm.DB) (err error) {
	c.Name = strings.TrimSpace(c.Name)
	c.Icon = strings.TrimSpace(c.Icon)
	c.Color = strings.TrimSpace(c.Color)

	if c.Icon == "" {
		c.Icon = DefaultCategoryIcon
	}

	if c.Color == "" {
		c.Color = DefaultCategoryColor
	}

	return nil
}
