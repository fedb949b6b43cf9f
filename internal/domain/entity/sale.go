package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago.
const (
	PaymentCash = "cash"
	PaymentCard = "card"
)

// Estados de venta. Solo el estado cambia después de creada (uso de reportes).
const (
	SaleCompleted = "completed"
	SaleVoided    = "voided"
)

// Sale transacción completada, inmutable salvo Status. Pertenece a un turno abierto al momento de crearla.
type Sale struct {
	ID            string
	TenantID      string
	ShiftID       string
	AccountID     string
	ProductID     string
	Quantity      int
	UnitPrice     decimal.Decimal
	Total         decimal.Decimal
	PaymentMethod string // cash, card
	Status        string // completed, voided
	CreatedAt     time.Time
}
