// Package service provides application business logic for authors and posts.
package service

import (
	"errors"

	"blogapi/internal/database"
	"blogapi/internal/models"
)

// mapStoreError converts a failed transaction into an AppError. AppErrors
// raised inside the transaction pass through unchanged; constraint
// violations become BadRequest with badRequestMsg; anything else is internal.
// Violations reported at commit never pass through a repository, so the raw
// driver error is checked as well.
func mapStoreError(err error, badRequestMsg string) error {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	if errors.Is(err, models.ErrIntegrityViolation) || database.IsIntegrityViolation(err) {
		return models.NewBadRequestError(badRequestMsg, err)
	}
	return models.NewInternalError(err)
}
