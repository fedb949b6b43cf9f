package repository

import (
	"context"

	"github.com/acruxgo/banos-forum-backend/internal/domain/access"
	"github.com/acruxgo/banos-forum-backend/internal/domain/entity"
)

// ShiftFilter filtros de listado de turnos.
type ShiftFilter struct {
	Status    string
	AccountID string
	Page      int
	Limit     int
}

// ShiftRepository define el puerto de persistencia para Shift (DIP).
type ShiftRepository interface {
	// Create falla con ErrShiftAlreadyOpen si la restricción de un turno abierto por cuenta lo rechaza.
	Create(ctx context.Context, shift *entity.Shift) error
	GetByID(ctx context.Context, scope access.Scope, id string) (*entity.Shift, error)
	// LockByID igual que GetByID pero con SELECT ... FOR UPDATE (usar dentro de una tx).
	LockByID(ctx context.Context, scope access.Scope, id string) (*entity.Shift, error)
	GetOpenByAccount(ctx context.Context, scope access.Scope, accountID string) (*entity.Shift, error)
	// Close persiste el cierre en un solo UPDATE condicionado a status='open'.
	Close(ctx context.Context, scope access.Scope, shift *entity.Shift) error
	List(ctx context.Context, scope access.Scope, filter ShiftFilter) ([]*entity.Shift, int, error)
}

// SaleRepository define el puerto de persistencia del diario de ventas.
type SaleRepository interface {
	// Create falla con ErrShiftNotActive si el turno no está abierto en el mismo negocio.
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, scope access.Scope, id string) (*entity.Sale, error)
	ListByShift(ctx context.Context, scope access.Scope, shiftID string) ([]*entity.Sale, error)
	UpdateStatus(ctx context.Context, scope access.Scope, id, status string) error
}
