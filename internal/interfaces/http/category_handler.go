package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/acruxgo/banos-forum-backend/internal/application/dto"
)

// CategoryHandler catálogo de categorías.
type CategoryHandler struct {
	uc categoryService
}

// NewCategoryHandler construye el handler.
func NewCategoryHandler(uc categoryService) *CategoryHandler {
	return &CategoryHandler{uc: uc}
}

// Create godoc
// @Summary      Crear categoría
// @Tags         categories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCategoryRequest  true  "Datos de la categoría"
// @Success      201   {object}  dto.Envelope{data=dto.CategoryResponse}
// @Failure      409   {object}  dto.Envelope
// @Router       /api/categories [post]
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCategoryRequest
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
// @Summary      Listar categorías
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Param        search        query  string  false  "Nombre"
// @Param        active        query  bool    false  "Filtrar por estado"
// @Param        show_deleted  query  string  false  "false | only | true"
// @Param        page          query  int     false  "Página"  default(1)
// @Param        limit         query  int     false  "Límite"  default(20)
// @Success      200           {object}  dto.Envelope{data=[]dto.CategoryResponse}
// @Router       /api/categories [get]
func (h *CategoryHandler) List(c *fiber.Ctx) error {
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
// @Summary      Obtener categoría
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la categoría"
// @Success      200  {object}  dto.Envelope{data=dto.CategoryResponse}
// @Failure      404  {object}  dto.Envelope
// @Router       /api/categories/{id} [get]
func (h *CategoryHandler) GetByID(c *fiber.Ctx) error {
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
// @Summary      Actualizar categoría
// @Tags         categories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID de la categoría"
// @Param        body  body  dto.UpdateCategoryRequest  true  "Cambios"
// @Success      200   {object}  dto.Envelope{data=dto.CategoryResponse}
// @Failure      409   {object}  dto.Envelope
// @Router       /api/categories/{id} [put]
func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	id, err := validateID(c)
	if err != nil {
		return err
	}
	var in dto.UpdateCategoryRequest
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
// @Summary      Eliminar categoría (soft delete)
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la categoría"
// @Success      200  {object}  dto.Envelope
// @Failure      400  {object}  dto.Envelope  "DEPENDENCY_EXISTS con count"
// @Router       /api/categories/{id} [delete]
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	id, err := validateID(c)
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.UserContext(), GetScope(c), id); err != nil {
		return err
	}
	return respondMessage(c, "categoría eliminada")
}

// Restore godoc
// @Summary      Restaurar categoría
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la categoría"
// @Success      200  {object}  dto.Envelope{data=dto.CategoryResponse}
// @Router       /api/categories/{id}/restore [patch]
func (h *CategoryHandler) Restore(c *fiber.Ctx) error {
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
// @Summary      Activar o desactivar categoría
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la categoría"
// @Success      200  {object}  dto.Envelope{data=dto.CategoryResponse}
// @Router       /api/categories/{id}/toggle-active [patch]
func (h *CategoryHandler) ToggleActive(c *fiber.Ctx) error {
	id, err := validateID(c)
	if err != nil {
		return err
	}
	out, err := h.uc.ToggleActive(c.UserContext(), GetScope(c), id)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, out)
}
