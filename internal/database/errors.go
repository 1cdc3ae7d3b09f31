package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/siptrack/siptrack/backend/go-services/internal/apperrors"
)

// TranslateError maps driver errors onto the application error taxonomy so
// repositories never leak SQLSTATE codes to their callers.
func TranslateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("%w: %s", apperrors.ErrDuplicateKey, pgErr.ConstraintName)
		case "23503": // foreign_key_violation
			return fmt.Errorf("%w: %s", apperrors.ErrForeignKey, pgErr.ConstraintName)
		}
	}
	return fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
}
