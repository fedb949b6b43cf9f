package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un turno. Closed es terminal.
const (
	ShiftOpen   = "open"
	ShiftClosed = "closed"
)

// Shift turno de caja de una cuenta: se abre con un fondo inicial y se cierra con el conteo del cajón.
type Shift struct {
	ID           string
	TenantID     string
	AccountID    string
	Status       string // open, closed
	OpeningCash  decimal.Decimal
	ClosingCash  *decimal.Decimal // solo al cerrar
	CashSales    *decimal.Decimal // solo al cerrar
	ExpectedCash *decimal.Decimal // solo al cerrar
	Variance     *decimal.Decimal // solo al cerrar; nunca nil si Status=closed
	OpenedAt     time.Time
	ClosedAt     *time.Time
}

// IsOpen informa si el turno admite ventas.
func (s *Shift) IsOpen() bool { return s.Status == ShiftOpen }
