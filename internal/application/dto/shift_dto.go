package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OpenShiftRequest apertura de turno. AccountID vacío abre el turno de quien llama.
type OpenShiftRequest struct {
	AccountID   string           `json:"accountId" validate:"omitempty,uuid"`
	OpeningCash *decimal.Decimal `json:"openingCash" validate:"required"`
}

// CloseShiftRequest conteo del cajón al cerrar.
type CloseShiftRequest struct {
	ClosingCash *decimal.Decimal `json:"closingCash" validate:"required"`
}

// ShiftListQuery filtros del listado de turnos.
type ShiftListQuery struct {
	Status    string `query:"status" validate:"omitempty,oneof=open closed"`
	AccountID string `query:"account_id" validate:"omitempty,uuid"`
	Page      int    `query:"page" validate:"omitempty,min=1"`
	Limit     int    `query:"limit" validate:"omitempty,min=1,max=100"`
	TenantID  string `query:"tenant_id" validate:"omitempty,uuid"`
}

// ShiftResponse salida de un turno. Los montos de cierre son nil mientras está abierto.
type ShiftResponse struct {
	ID           string           `json:"id"`
	TenantID     string           `json:"tenantId"`
	AccountID    string           `json:"accountId"`
	Status       string           `json:"status"`
	OpeningCash  decimal.Decimal  `json:"openingCash"`
	ClosingCash  *decimal.Decimal `json:"closingCash"`
	CashSales    *decimal.Decimal `json:"cashSales"`
	ExpectedCash *decimal.Decimal `json:"expectedCash"`
	Variance     *decimal.Decimal `json:"variance"`
	OpenedAt     time.Time        `json:"openedAt"`
	ClosedAt     *time.Time       `json:"closedAt"`
}

// ReconciliationResponse arqueo del cierre; Status es exact, surplus o shortage.
type ReconciliationResponse struct {
	OpeningCash  decimal.Decimal `json:"openingCash"`
	CashSales    decimal.Decimal `json:"cashSales"`
	ExpectedCash decimal.Decimal `json:"expectedCash"`
	ClosingCash  decimal.Decimal `json:"closingCash"`
	Variance     decimal.Decimal `json:"variance"`
	Status       string          `json:"status"`
}

// CloseShiftResponse turno cerrado con su arqueo.
type CloseShiftResponse struct {
	Shift          ShiftResponse          `json:"shift"`
	Reconciliation ReconciliationResponse `json:"reconciliation"`
}

// ShiftTotals totales por método de pago de las ventas completadas.
type ShiftTotals struct {
	CashSales   decimal.Decimal `json:"cashSales"`
	CardSales   decimal.Decimal `json:"cardSales"`
	SalesCount  int             `json:"salesCount"`
	VoidedCount int             `json:"voidedCount"`
}

// ShiftDetailResponse turno con sus totales.
type ShiftDetailResponse struct {
	ShiftResponse
	Totals ShiftTotals `json:"totals"`
}

// CreateSaleRequest registro de una venta. ShiftID vacío usa el turno abierto de quien llama.
type CreateSaleRequest struct {
	ShiftID       string `json:"shiftId" validate:"omitempty,uuid"`
	ProductID     string `json:"productId" validate:"required,uuid"`
	Quantity      int    `json:"quantity" validate:"required,min=1,max=10000"`
	PaymentMethod string `json:"paymentMethod" validate:"required,oneof=cash card"`
}

// SaleResponse salida de una venta.
type SaleResponse struct {
	ID            string          `json:"id"`
	TenantID      string          `json:"tenantId"`
	ShiftID       string          `json:"shiftId"`
	AccountID     string          `json:"accountId"`
	ProductID     string          `json:"productId"`
	Quantity      int             `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unitPrice"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod string          `json:"paymentMethod"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"createdAt"`
}
