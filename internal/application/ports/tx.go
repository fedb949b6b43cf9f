// Package ports contratos que la capa de aplicación necesita de la infraestructura.
package ports

import (
	"context"
	"time"

	"github.com/acruxgo/banos-forum-backend/internal/domain/access"
	"github.com/acruxgo/banos-forum-backend/internal/domain/repository"
)

// LifecycleTxRunner ejecuta fn en una transacción con el repositorio de ciclo de vida del recurso.
type LifecycleTxRunner interface {
	RunLifecycle(ctx context.Context, resource access.Resource, fn func(repo repository.LifecycleRepository) error) error
}

// LedgerTxRunner ejecuta fn en una transacción con los repositorios de turnos y ventas.
type LedgerTxRunner interface {
	RunLedger(ctx context.Context, fn func(shifts repository.ShiftRepository, sales repository.SaleRepository) error) error
}

// RevocationStore tokens revocados por logout hasta su expiración.
type RevocationStore interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}
