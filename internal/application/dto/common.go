package dto

import (
	"strconv"

	"github.com/acruxgo/banos-forum-backend/internal/domain"
	"github.com/acruxgo/banos-forum-backend/internal/domain/repository"
)

// Envelope cuerpo de toda respuesta HTTP.
type Envelope struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message,omitempty"`
	Data       any         `json:"data,omitempty"`
	Error      *ErrorBody  `json:"error,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// ErrorBody detalle de error. Field y Count solo cuando aplican.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
	Count   *int   `json:"count,omitempty"`
}

// Pagination metadatos de página en listados.
type Pagination struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

// NewPagination calcula el total de páginas.
func NewPagination(total, page, limit int) Pagination {
	pages := 0
	if limit > 0 {
		pages = (total + limit - 1) / limit
	}
	return Pagination{Total: total, Page: page, Limit: limit, TotalPages: pages}
}

// Page resultado paginado de un caso de uso.
type Page[T any] struct {
	Items      []T
	Pagination Pagination
}

// ListQuery parámetros comunes de listado (query string).
type ListQuery struct {
	Search      string `query:"search" validate:"omitempty,max=100"`
	Active      string `query:"active" validate:"omitempty,oneof=true false"`
	ShowDeleted string `query:"show_deleted" validate:"omitempty,oneof=false only true"`
	Page        int    `query:"page" validate:"omitempty,min=1"`
	Limit       int    `query:"limit" validate:"omitempty,min=1,max=100"`
	TenantID    string `query:"tenant_id" validate:"omitempty,uuid"`
}

// Filter traduce la query al filtro de repositorio.
func (q ListQuery) Filter() (repository.ListFilter, error) {
	visibility, err := repository.ParseVisibility(q.ShowDeleted)
	if err != nil {
		return repository.ListFilter{}, err
	}
	f := repository.ListFilter{
		Search:     q.Search,
		Visibility: visibility,
		Page:       q.Page,
		Limit:      q.Limit,
	}
	if q.Active != "" {
		active, err := strconv.ParseBool(q.Active)
		if err != nil {
			return repository.ListFilter{}, domain.NewValidationError("active", "debe ser true o false")
		}
		f.Active = &active
	}
	f.Normalize()
	return f, nil
}
