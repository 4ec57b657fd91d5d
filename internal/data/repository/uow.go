package repository

import (
	"context"

	"planetarium-booking/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// AfterCommit runs once the transaction has been committed.
type AfterCommit func(ctx context.Context)

type UnitOfWork interface {
	// Do runs fn in one transaction with repositories bound to it. fn's
	// error rolls everything back and skips the registered hooks.
	Do(ctx context.Context, fn func(ctx context.Context, tx *Repository, after func(AfterCommit)) error) error
}

type unitOfWork struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewUnitOfWork(db database.PgxIface, log *zap.Logger) UnitOfWork {
	return &unitOfWork{db: db, log: log}
}

func (u *unitOfWork) Do(ctx context.Context, fn func(ctx context.Context, tx *Repository, after func(AfterCommit)) error) error {
	var hooks []AfterCommit

	err := database.RunInTx(ctx, u.db, func(ctx context.Context, tx pgx.Tx) error {
		return fn(ctx, newRepository(tx, u.log), func(h AfterCommit) {
			hooks = append(hooks, h)
		})
	})
	if err != nil {
		return err
	}

	for _, h := range hooks {
		h(ctx)
	}

	return nil
}
