package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/acruxgo/banos-forum-backend/internal/domain/entity"
)

// MoneyPlaces precisión de la unidad menor de la moneda (centavos).
const MoneyPlaces int32 = 2

// Clasificación derivada de la diferencia de caja; nunca se persiste.
const (
	StatusExact    = "exact"
	StatusSurplus  = "surplus"
	StatusShortage = "shortage"
)

// Reconciliation resultado del arqueo al cerrar un turno (servicio de dominio).
//
//	ExpectedCash = OpeningCash + CashSales
//	Variance     = ClosingCash - ExpectedCash
type Reconciliation struct {
	OpeningCash  decimal.Decimal
	CashSales    decimal.Decimal
	ExpectedCash decimal.Decimal
	ClosingCash  decimal.Decimal
	Variance     decimal.Decimal
}

// Round redondea a la unidad menor de la moneda.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyPlaces)
}

// CashSales suma el total de las ventas en efectivo completadas.
// Redondea después de cada acumulación, no solo al final, para cuadrar con el libro.
func CashSales(sales []*entity.Sale) decimal.Decimal {
	sum := decimal.Zero
	for _, s := range sales {
		if s == nil || s.PaymentMethod != entity.PaymentCash || s.Status != entity.SaleCompleted {
			continue
		}
		sum = Round(sum.Add(s.Total))
	}
	return sum
}

// Reconcile calcula el arqueo a partir del fondo inicial, las ventas y el conteo final.
func Reconcile(openingCash decimal.Decimal, sales []*entity.Sale, closingCash decimal.Decimal) Reconciliation {
	opening := Round(openingCash)
	closing := Round(closingCash)
	cash := CashSales(sales)
	expected := Round(opening.Add(cash))
	return Reconciliation{
		OpeningCash:  opening,
		CashSales:    cash,
		ExpectedCash: expected,
		ClosingCash:  closing,
		Variance:     Round(closing.Sub(expected)),
	}
}

// Status clasifica la diferencia: exact, surplus o shortage.
func (r Reconciliation) Status() string {
	return Classify(r.Variance)
}

// Classify clasifica una diferencia de caja.
func Classify(variance decimal.Decimal) string {
	switch variance.Sign() {
	case 0:
		return StatusExact
	case 1:
		return StatusSurplus
	default:
		return StatusShortage
	}
}

// LineTotal total de una línea de venta: cantidad * precio unitario, redondeado.
func LineTotal(quantity int, unitPrice decimal.Decimal) decimal.Decimal {
	return Round(unitPrice.Mul(decimal.NewFromInt(int64(quantity))))
}
