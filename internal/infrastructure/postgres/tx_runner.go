package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/acruxgo/banos-forum-backend/internal/domain/access"
	"github.com/acruxgo/banos-forum-backend/internal/domain/repository"
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunLifecycle inicia una transacción y entrega el repositorio de ciclo de vida del recurso atado a la tx.
func (r *TxRunner) RunLifecycle(ctx context.Context, resource access.Resource, fn func(repo repository.LifecycleRepository) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		repo, err := NewLifecycleRepository(tx, resource)
		if err != nil {
			return err
		}
		return fn(repo)
	})
}

// RunLedger inicia una transacción con los repos de turnos y ventas (cierre de turno).
func (r *TxRunner) RunLedger(ctx context.Context, fn func(
	shifts repository.ShiftRepository,
	sales repository.SaleRepository,
) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewShiftRepository(tx), NewSaleRepository(tx))
	})
}

// run hace Commit si fn termina sin error y Rollback en cualquier otro caso.
func (r *TxRunner) run(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return translate("begin transaction", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return translate("commit transaction", err)
	}
	return nil
}
