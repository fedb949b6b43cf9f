package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un artículo del catálogo que se vende en caja.
type Product struct {
	ID          string
	TenantID    string
	CategoryID  *string // nil = sin categoría
	Name        string
	NameKey     string // nombre normalizado; único por negocio entre no eliminados
	SKU         string // opcional; si existe también es único por negocio
	SKUKey      string // SKU normalizado; vacío si no hay SKU
	Description string
	Price       decimal.Decimal // precio de venta unitario
	Lifecycle
	CreatedAt time.Time
	UpdatedAt time.Time
}
