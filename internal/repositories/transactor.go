package repositories

import (
	"context"
	"fmt"

	"hospitality_backend/pkg/utils"

	"github.com/jmoiron/sqlx"
)

// Transactor runs a unit of work inside a single database transaction.
type Transactor interface {
	// WithinTransaction commits when fn returns nil and rolls back otherwise.
	WithinTransaction(ctx context.Context, fn func(exec SQLExecutor) error) error
	// Reader returns a non-transactional executor for plain reads.
	Reader() SQLExecutor
}

type sqlxTransactor struct {
	db *sqlx.DB
}

// NewTransactor creates a Transactor backed by db.
func NewTransactor(db *sqlx.DB) Transactor {
	return &sqlxTransactor{db: db}
}

func (t *sqlxTransactor) Reader() SQLExecutor {
	return t.db
}

func (t *sqlxTransactor) WithinTransaction(ctx context.Context, fn func(exec SQLExecutor) error) error {
	tx, err := t.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: beginning transaction: %v", ErrDatabaseError, err)
	}
	defer tx.Rollback() // no-op after a successful commit

	if err := fn(tx); err != nil {
		utils.LogDebug(ctx, "transaction rolled back", map[string]interface{}{"reason": err.Error()})
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: committing transaction: %v", ErrDatabaseError, err)
	}
	return nil
}
