package models

import (
	"errors"
	"fmt"
)

// Error classes. Every error returned by the repositories and use cases
// wraps exactly one of these so that callers can use errors.Is.
var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")
	ErrValidation       = errors.New("invalid input")
	ErrPersistence      = errors.New("the data could not be saved")
	ErrAuth             = errors.New("authentication failed")
)

var (
	ErrUserIDMissing          = fmt.Errorf("%w: the user ID must be set", ErrValidation)
	ErrTransactionTypeInvalid = fmt.Errorf("%w: the type must be one of 'income' or 'expense'", ErrValidation)
	ErrAmountNegative         = fmt.Errorf("%w: the amount must not be negative", ErrValidation)
	ErrCategoryNameMissing    = fmt.Errorf("%w: the category must be set", ErrValidation)
	ErrDateMissing            = fmt.Errorf("%w: the date must be set", ErrValidation)
	ErrCategoryNameNotUnique  = fmt.Errorf("%w: the category name must be unique", ErrValidation)
	ErrMonthInvalid           = fmt.Errorf("%w: the month must be between 1 and 12", ErrValidation)
	ErrDateRangeInvalid       = fmt.Errorf("%w: the start date must not be after the end date", ErrValidation)
)

var (
	ErrInvalidCredentials = fmt.Errorf("%w: invalid login credentials", ErrAuth)
	ErrEmailInUse         = fmt.Errorf("%w: a user with this email address is already registered", ErrAuth)
	ErrCredentialsMissing = fmt.Errorf("%w: email and password are required", ErrAuth)
	ErrSessionMissing     = fmt.Errorf("%w: auth session missing", ErrAuth)
	ErrTokenInvalid       = fmt.Errorf("%w: the session token is invalid", ErrAuth)
)

// ErrCategoryUnknown is returned when a transaction references a category
// name the user does not have.
func ErrCategoryUnknown(name string) error {
	return fmt.Errorf("%w: there is no category named '%s'", ErrValidation, name)
}
