package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/acruxgo/banos-forum-backend/internal/application/dto"
)

// SaleHandler registro y anulación de ventas.
type SaleHandler struct {
	uc saleService
}

// NewSaleHandler construye el handler.
func NewSaleHandler(uc saleService) *SaleHandler {
	return &SaleHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar venta
// @Description  Sin shiftId se usa el turno abierto de quien llama.
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSaleRequest  true  "Venta"
// @Success      201   {object}  dto.Envelope{data=dto.SaleResponse}
// @Failure      400   {object}  dto.Envelope  "SHIFT_NOT_ACTIVE"
// @Router       /api/sales [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	p, _ := GetPrincipal(c)
	out, err := h.uc.Record(c.UserContext(), GetScope(c), p, in)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusCreated, out)
}

// Void godoc
// @Summary      Anular venta
// @Description  Solo ventas completadas de un turno abierto.
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {object}  dto.Envelope{data=dto.SaleResponse}
// @Failure      400  {object}  dto.Envelope  "SHIFT_NOT_OPEN"
// @Router       /api/sales/{id}/void [patch]
func (h *SaleHandler) Void(c *fiber.Ctx) error {
	id, err := validateID(c)
	if err != nil {
		return err
	}
	out, err := h.uc.Void(c.UserContext(), GetScope(c), id)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, out)
}
