package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/slotswap_bot/internal/repository/base"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgTxManager открывает serializable-транзакции в PostgreSQL
type PgTxManager struct {
	pool *pgxpool.Pool
}

func NewPgTxManager(pool *pgxpool.Pool) *PgTxManager {
	return &PgTxManager{pool: pool}
}

// WithinTx выполняет fn в serializable-транзакции. Конфликты сериализации
// не повторяются, а возвращаются как apperr.Conflict.
func (m *PgTxManager) WithinTx(ctx context.Context, fn func(ctx context.Context, repos *Repositories) error) error {
	tx, err := m.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(ctx, NewRepositories(tx)); err != nil {
		return base.TranslateError(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", base.TranslateError(err))
	}

	return nil
}
