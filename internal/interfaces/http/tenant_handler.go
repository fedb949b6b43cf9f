package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/acruxgo/banos-forum-backend/internal/application/dto"
)

// TenantHandler administración de negocios (operadores).
type TenantHandler struct {
	uc tenantService
}

// NewTenantHandler construye el handler.
func NewTenantHandler(uc tenantService) *TenantHandler {
	return &TenantHandler{uc: uc}
}

// Create godoc
// @Summary      Crear negocio
// @Tags         tenants
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTenantRequest  true  "Datos del negocio"
// @Success      201   {object}  dto.Envelope{data=dto.TenantResponse}
// @Failure      400   {object}  dto.Envelope
// @Failure      409   {object}  dto.Envelope
// @Router       /api/tenants [post]
func (h *TenantHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTenantRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusCreated, out)
}

// List godoc
// @Summary      Listar negocios
// @Tags         tenants
// @Security     Bearer
// @Produce      json
// @Param        search  query  string  false  "Búsqueda por nombre o slug"
// @Param        active  query  bool    false  "Filtrar por estado"
// @Param        page    query  int     false  "Página"  default(1)
// @Param        limit   query  int     false  "Límite"  default(20)
// @Success      200     {object}  dto.Envelope{data=[]dto.TenantResponse}
// @Router       /api/tenants [get]
func (h *TenantHandler) List(c *fiber.Ctx) error {
	var q dto.ListQuery
	if err := parseQuery(c, &q); err != nil {
		return err
	}
	filter, err := q.Filter()
	if err != nil {
		return err
	}
	out, err := h.uc.List(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return respondPage(c, out)
}

// GetByID godoc
// @Summary      Obtener negocio
// @Tags         tenants
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del negocio"
// @Success      200  {object}  dto.Envelope{data=dto.TenantResponse}
// @Failure      404  {object}  dto.Envelope
// @Router       /api/tenants/{id} [get]
func (h *TenantHandler) GetByID(c *fiber.Ctx) error {
	id, err := validateID(c)
	if err != nil {
		return err
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, out)
}

// Update godoc
// @Summary      Actualizar negocio
// @Tags         tenants
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID del negocio"
// @Param        body  body  dto.UpdateTenantRequest  true  "Cambios"
// @Success      200   {object}  dto.Envelope{data=dto.TenantResponse}
// @Failure      404   {object}  dto.Envelope
// @Failure      409   {object}  dto.Envelope
// @Router       /api/tenants/{id} [put]
func (h *TenantHandler) Update(c *fiber.Ctx) error {
	id, err := validateID(c)
	if err != nil {
		return err
	}
	var in dto.UpdateTenantRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, out)
}

// ToggleActive godoc
// @Summary      Activar o desactivar negocio
// @Tags         tenants
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del negocio"
// @Success      200  {object}  dto.Envelope{data=dto.TenantResponse}
// @Router       /api/tenants/{id}/toggle-active [patch]
func (h *TenantHandler) ToggleActive(c *fiber.Ctx) error {
	id, err := validateID(c)
	if err != nil {
		return err
	}
	out, err := h.uc.ToggleActive(c.UserContext(), id)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, out)
}
