package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrForeignKey = errors.New("foreign key violation")
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// wrapDBErr maps driver errors to repository errors and wraps them with op.
func wrapDBErr(op string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	var pge *pgconn.PgError
	if errors.As(err, &pge) {
		switch pge.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%s: %w: %s", op, ErrConflict, pge.ConstraintName)
		case pgForeignKeyViolation:
			return fmt.Errorf("%s: %w: %s", op, ErrForeignKey, pge.ConstraintName)
		}
	}

	return fmt.Errorf("%s: %w", op, err)
}

func isConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}
