package entity

import "time"

// Category agrupa productos del catálogo de un negocio.
type Category struct {
	ID          string
	TenantID    string
	Name        string
	NameKey     string // nombre normalizado; único por negocio entre no eliminados
	Description string
	Lifecycle
	CreatedAt time.Time
	UpdatedAt time.Time
}
