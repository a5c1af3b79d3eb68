package repositories

import (
	"errors"
	"fmt"

	"github.com/finanzas-app/backend/internal/models"
)

// classified lists the error classes that are passed on unchanged.
var classified = []error{
	models.ErrGeneral,
	models.ErrResourceNotFound,
	models.ErrValidation,
	models.ErrAuth,
	models.ErrPersistence,
}

// writeError wraps errors of write operations that have not been
// classified by the database callbacks into ErrPersistence.
func writeError(err error) error {
	if err == nil {
		return nil
	}

	for _, c := range classified {
		if errors.Is(err, c) {
			return err
		}
	}

	return fmt.Errorf("%w: %w", models.ErrPersistence, err)
}

// readError passes on classified errors and wraps all others
// into ErrGeneral.
func readError(err error) error {
	if err == nil {
		return nil
	}

	for _, c := range classified {
		if errors.Is(err, c) {
			return err
		}
	}

	return fmt.Errorf("%w: %w", models.ErrGeneral, err)
}
