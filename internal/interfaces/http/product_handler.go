package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/acruxgo/banos-forum-backend/internal/application/dto"
	"github.com/acruxgo/banos-forum-backend/internal/domain"
	"github.com/acruxgo/banos-forum-backend/internal/domain/repository"
)

// ProductHandler maneja las peticiones HTTP para Product.
type ProductHandler struct {
	uc productService
}

// NewProductHandler construye el handler.
func NewProductHandler(uc productService) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// Create godoc
// @Summary      Crear producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.Envelope{data=dto.ProductResponse}
// @Failure      400   {object}  dto.Envelope
// @Failure      409   {object}  dto.Envelope
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
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
// @Summary      Listar productos
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        search        query  string  false  "Nombre o SKU"
// @Param        category_id   query  string  false  "Categoría"
// @Param        active        query  bool    false  "Filtrar por estado"
// @Param        show_deleted  query  string  false  "false | only | true"
// @Param        page          query  int     false  "Página"  default(1)
// @Param        limit         query  int     false  "Límite"  default(20)
// @Success      200           {object}  dto.Envelope{data=[]dto.ProductResponse}
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	var q dto.ListQuery
	if err := parseQuery(c, &q); err != nil {
		return err
	}
	filter, err := q.Filter()
	if err != nil {
		return err
	}
	categoryID := c.Query("category_id")
	if err := validate.Var(categoryID, "omitempty,uuid"); err != nil {
		return domain.NewValidationError("category_id", "debe ser un uuid")
	}
	out, err := h.uc.List(c.UserContext(), GetScope(c), repository.ProductFilter{ListFilter: filter, CategoryID: categoryID})
	if err != nil {
		return err
	}
	return respondPage(c, out)
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.Envelope{data=dto.ProductResponse}
// @Failure      404  {object}  dto.Envelope
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
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
// @Summary      Actualizar producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID del producto"
// @Param        body  body  dto.UpdateProductRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.Envelope{data=dto.ProductResponse}
// @Failure      400   {object}  dto.Envelope
// @Failure      404   {object}  dto.Envelope
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, err := validateID(c)
	if err != nil {
		return err
	}
	var in dto.UpdateProductRequest
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
// @Summary      Eliminar producto (soft delete)
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.Envelope
// @Failure      400  {object}  dto.Envelope  "DEPENDENCY_EXISTS con count"
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, err := validateID(c)
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.UserContext(), GetScope(c), id); err != nil {
		return err
	}
	return respondMessage(c, "producto eliminado")
}

// Restore godoc
// @Summary      Restaurar producto
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.Envelope{data=dto.ProductResponse}
// @Router       /api/products/{id}/restore [patch]
func (h *ProductHandler) Restore(c *fiber.Ctx) error {
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
// @Summary      Activar o desactivar producto
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.Envelope{data=dto.ProductResponse}
// @Router       /api/products/{id}/toggle-active [patch]
func (h *ProductHandler) ToggleActive(c *fiber.Ctx) error {
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
