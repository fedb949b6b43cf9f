package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/acruxgo/banos-forum-backend/internal/application/dto"
)

// AccountHandler cuentas del personal del negocio.
type AccountHandler struct {
	uc accountService
}

// NewAccountHandler construye el handler.
func NewAccountHandler(uc accountService) *AccountHandler {
	return &AccountHandler{uc: uc}
}

// Create godoc
// @Summary      Crear cuenta
// @Description  Un operador debe indicar tenantId.
// @Tags         accounts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAccountRequest  true  "Datos de la cuenta"
// @Success      201   {object}  dto.Envelope{data=dto.AccountResponse}
// @Failure      400   {object}  dto.Envelope
// @Failure      409   {object}  dto.Envelope
// @Router       /api/accounts [post]
func (h *AccountHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateAccountRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), GetScope(c), in)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusCreated, out)
}

// List godoc
// @Summary      Listar cuentas
// @Tags         accounts
// @Security     Bearer
// @Produce      json
// @Param        search        query  string  false  "Nombre o email"
// @Param        active        query  bool    false  "Filtrar por estado"
// @Param        show_deleted  query  string  false  "false | only | true"
// @Param        page          query  int     false  "Página"  default(1)
// @Param        limit         query  int     false  "Límite"  default(20)
// @Param        tenant_id     query  string  false  "Solo operadores"
// @Success      200           {object}  dto.Envelope{data=[]dto.AccountResponse}
// @Router       /api/accounts [get]
func (h *AccountHandler) List(c *fiber.Ctx) error {
	var q dto.ListQuery
	if err := parseQuery(c, &q); err != nil {
		return err
	}
	filter, err := q.Filter()
	if err != nil {
		return err
	}
	out, err := h.uc.List(c.UserContext(), GetScope(c), filter)
	if err != nil {
		return err
	}
	return respondPage(c, out)
}

// GetByID godoc
// @Summary      Obtener cuenta
// @Tags         accounts
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la cuenta"
// @Success      200  {object}  dto.Envelope{data=dto.AccountResponse}
// @Failure      404  {object}  dto.Envelope
// @Router       /api/accounts/{id} [get]
func (h *AccountHandler) GetByID(c *fiber.Ctx) error {
	id, err := validateID(c)
	if err != nil {
		return err
	}
	out, err := h.uc.GetByID(c.UserContext(), GetScope(c), id)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, out)
}

// Update godoc
// @Summary      Actualizar cuenta
// @Tags         accounts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID de la cuenta"
// @Param        body  body  dto.UpdateAccountRequest  true  "Cambios"
// @Success      200   {object}  dto.Envelope{data=dto.AccountResponse}
// @Failure      400   {object}  dto.Envelope
// @Failure      409   {object}  dto.Envelope
// @Router       /api/accounts/{id} [put]
func (h *AccountHandler) Update(c *fiber.Ctx) error {
	id, err := validateID(c)
	if err != nil {
		return err
	}
	var in dto.UpdateAccountRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), GetScope(c), id, in)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, out)
}

// Delete godoc
// @Summary      Eliminar cuenta (soft delete)
// @Tags         accounts
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la cuenta"
// @Success      200  {object}  dto.Envelope
// @Failure      400  {object}  dto.Envelope  "DEPENDENCY_EXISTS, SELF_ACTION, ALREADY_DELETED"
// @Router       /api/accounts/{id} [delete]
func (h *AccountHandler) Delete(c *fiber.Ctx) error {
	id, err := validateID(c)
	if err != nil {
		return err
	}
	p, _ := GetPrincipal(c)
	if err := h.uc.Delete(c.UserContext(), GetScope(c), p, id); err != nil {
		return err
	}
	return respondMessage(c, "cuenta eliminada")
}

// Restore godoc
// @Summary      Restaurar cuenta
// @Tags         accounts
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la cuenta"
// @Success      200  {object}  dto.Envelope{data=dto.AccountResponse}
// @Failure      409  {object}  dto.Envelope
// @Router       /api/accounts/{id}/restore [patch]
func (h *AccountHandler) Restore(c *fiber.Ctx) error {
	id, err := validateID(c)
	if err != nil {
		return err
	}
	out, err := h.uc.Restore(c.UserContext(), GetScope(c), id)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, out)
}

// ToggleActive godoc
// @Summary      Activar o desactivar cuenta
// @Tags         accounts
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la cuenta"
// @Success      200  {object}  dto.Envelope{data=dto.AccountResponse}
// @Router       /api/accounts/{id}/toggle-active [patch]
func (h *AccountHandler) ToggleActive(c *fiber.Ctx) error {
	id, err := validateID(c)
	if err != nil {
		return err
	}
	p, _ := GetPrincipal(c)
	out, err := h.uc.ToggleActive(c.UserContext(), GetScope(c), p, id)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, out)
}
