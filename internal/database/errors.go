package database

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// IsIntegrityViolation reports whether err is a write rejected by a store
// constraint: unique, foreign key, not null or check.
func IsIntegrityViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}

	// SQLSTATE class 23 is "integrity constraint violation"
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return strings.HasPrefix(pgErr.Code, "23")
	}

	// sqlite: "UNIQUE constraint failed", "FOREIGN KEY constraint failed", ...
	return strings.Contains(err.Error(), "constraint failed")
}
