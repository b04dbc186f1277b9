// Package repository provides data access layer implementations for the application.
package repository

import (
	"errors"
	"fmt"

	"blogapi/internal/database"
	"blogapi/internal/models"

	"gorm.io/gorm"
)

// wrapWriteError tags store constraint violations with models.ErrIntegrityViolation
// so services can tell them apart from infrastructure failures.
func wrapWriteError(err error) error {
	if err == nil {
		return nil
	}
	if database.IsIntegrityViolation(err) {
		return fmt.Errorf("%w: %w", models.ErrIntegrityViolation, err)
	}
	return err
}

// notFoundAsNil turns gorm.ErrRecordNotFound into a nil error.
func notFoundAsNil(err error) (bool, error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
