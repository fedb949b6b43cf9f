package shift

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/acruxgo/banos-forum-backend/internal/application/dto"
	"github.com/acruxgo/banos-forum-backend/internal/application/ports"
	"github.com/acruxgo/banos-forum-backend/internal/domain"
	"github.com/acruxgo/banos-forum-backend/internal/domain/access"
	"github.com/acruxgo/banos-forum-backend/internal/domain/entity"
	"github.com/acruxgo/banos-forum-backend/internal/domain/ledger"
	"github.com/acruxgo/banos-forum-backend/internal/domain/repository"
	"github.com/acruxgo/banos-forum-backend/pkg/logger"
)

// Journal diario de ventas: solo acepta ventas sobre turnos abiertos del negocio de quien llama.
type Journal struct {
	shifts   repository.ShiftRepository
	sales    repository.SaleRepository
	products repository.ProductRepository
	tx       ports.LedgerTxRunner
	log      *logger.Logger
	now      func() time.Time
}

// NewJournal construye el diario.
func NewJournal(
	shifts repository.ShiftRepository,
	sales repository.SaleRepository,
	products repository.ProductRepository,
	tx ports.LedgerTxRunner,
	log *logger.Logger,
) *Journal {
	return &Journal{shifts: shifts, sales: sales, products: products, tx: tx, log: log, now: time.Now}
}

// Record registra una venta. Sin ShiftID se usa el turno abierto de quien llama.
func (j *Journal) Record(ctx context.Context, scope access.Scope, p access.Principal, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	tenantID, ok := scope.TenantID()
	if !ok {
		return nil, domain.ErrForbidden
	}
	if in.Quantity < 1 {
		return nil, domain.NewValidationError("quantity", "debe ser al menos 1")
	}
	if in.PaymentMethod != entity.PaymentCash && in.PaymentMethod != entity.PaymentCard {
		return nil, domain.NewValidationError("paymentMethod", "método de pago desconocido")
	}

	s, err := j.activeShift(ctx, scope, p, in.ShiftID)
	if err != nil {
		return nil, err
	}

	product, err := j.products.GetByID(ctx, scope, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil || product.IsDeleted() {
		return nil, domain.ErrNotFound
	}
	if !product.IsActive {
		return nil, domain.NewValidationError("productId", "el producto está inactivo")
	}

	sale := &entity.Sale{
		ID:            uuid.NewString(),
		TenantID:      tenantID,
		ShiftID:       s.ID,
		AccountID:     p.AccountID,
		ProductID:     product.ID,
		Quantity:      in.Quantity,
		UnitPrice:     product.Price,
		Total:         ledger.LineTotal(in.Quantity, product.Price),
		PaymentMethod: in.PaymentMethod,
		Status:        entity.SaleCompleted,
		CreatedAt:     j.now().UTC(),
	}
	// El insert vuelve a exigir el turno abierto: un cierre concurrente gana o espera.
	if err := j.sales.Create(ctx, sale); err != nil {
		return nil, err
	}
	return dto.ToSaleResponse(sale), nil
}

func (j *Journal) activeShift(ctx context.Context, scope access.Scope, p access.Principal, shiftID string) (*entity.Shift, error) {
	var (
		s   *entity.Shift
		err error
	)
	if shiftID == "" {
		s, err = j.shifts.GetOpenByAccount(ctx, scope, p.AccountID)
	} else {
		s, err = j.shifts.GetByID(ctx, scope, shiftID)
	}
	if err != nil {
		return nil, err
	}
	if s == nil || !s.IsOpen() {
		return nil, domain.ErrShiftNotActive
	}
	if p.Role == entity.RoleCashier && s.AccountID != p.AccountID {
		return nil, domain.ErrForbidden
	}
	return s, nil
}

// ListByShift ventas de un turno del scope.
func (j *Journal) ListByShift(ctx context.Context, scope access.Scope, p access.Principal, shiftID string) ([]dto.SaleResponse, error) {
	s, err := j.shifts.GetByID(ctx, scope, shiftID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrShiftNotFound
	}
	if p.Role == entity.RoleCashier && s.AccountID != p.AccountID {
		return nil, domain.ErrForbidden
	}
	list, err := j.sales.ListByShift(ctx, scope, s.ID)
	if err != nil {
		return nil, err
	}
	return dto.MapSlice(list, dto.ToSaleResponse), nil
}

// Void anula una venta completada mientras su turno sigue abierto. El turno se bloquea
// para que la anulación no se cruce con el cierre.
func (j *Journal) Void(ctx context.Context, scope access.Scope, saleID string) (*dto.SaleResponse, error) {
	var voided *entity.Sale
	err := j.tx.RunLedger(ctx, func(shifts repository.ShiftRepository, sales repository.SaleRepository) error {
		sale, err := sales.GetByID(ctx, scope, saleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrNotFound
		}
		if sale.Status != entity.SaleCompleted {
			return domain.NewValidationError("status", "solo se anulan ventas completadas")
		}
		s, err := shifts.LockByID(ctx, scope, sale.ShiftID)
		if err != nil {
			return err
		}
		if s == nil || !s.IsOpen() {
			return domain.ErrShiftNotOpen
		}
		if err := sales.UpdateStatus(ctx, scope, sale.ID, entity.SaleVoided); err != nil {
			return err
		}
		sale.Status = entity.SaleVoided
		voided = sale
		return nil
	})
	if err != nil {
		return nil, err
	}
	j.log.Info().Str("sale_id", voided.ID).Str("shift_id", voided.ShiftID).Msg("venta anulada")
	return dto.ToSaleResponse(voided), nil
}
