package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/acruxgo/banos-forum-backend/internal/application/dto"
	"github.com/acruxgo/banos-forum-backend/internal/domain/repository"
)

// ShiftHandler apertura, cierre y consulta de turnos de caja.
type ShiftHandler struct {
	ledger shiftService
	sales  saleService
}

// NewShiftHandler construye el handler.
func NewShiftHandler(ledger shiftService, sales saleService) *ShiftHandler {
	return &ShiftHandler{ledger: ledger, sales: sales}
}

// Start godoc
// @Summary      Abrir turno
// @Description  Sin accountId abre el turno de quien llama. Un cajero solo abre el suyo.
// @Tags         shifts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.OpenShiftRequest  true  "accountId, openingCash"
// @Success      201   {object}  dto.Envelope{data=dto.ShiftResponse}
// @Failure      400   {object}  dto.Envelope  "SHIFT_ALREADY_OPEN, INVALID_AMOUNT"
// @Failure      404   {object}  dto.Envelope
// @Router       /api/shifts/start [post]
func (h *ShiftHandler) Start(c *fiber.Ctx) error {
	var in dto.OpenShiftRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	p, _ := GetPrincipal(c)
	out, err := h.ledger.Open(c.UserContext(), GetScope(c), p, in)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusCreated, out)
}

// Close godoc
// @Summary      Cerrar turno con arqueo
// @Tags         shifts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del turno"
// @Param        body  body  dto.CloseShiftRequest  true  "closingCash"
// @Success      200   {object}  dto.Envelope{data=dto.CloseShiftResponse}
// @Failure      400   {object}  dto.Envelope  "SHIFT_NOT_OPEN, INVALID_AMOUNT"
// @Failure      404   {object}  dto.Envelope
// @Router       /api/shifts/{id}/close [put]
func (h *ShiftHandler) Close(c *fiber.Ctx) error {
	id, err := validateID(c)
	if err != nil {
		return err
	}
	var in dto.CloseShiftRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	p, _ := GetPrincipal(c)
	out, err := h.ledger.Close(c.UserContext(), GetScope(c), p, id, in)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, out)
}

// Current godoc
// @Summary      Turno abierto de quien llama
// @Tags         shifts
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.Envelope{data=dto.ShiftResponse}
// @Failure      404  {object}  dto.Envelope
// @Router       /api/shifts/current [get]
func (h *ShiftHandler) Current(c *fiber.Ctx) error {
	p, _ := GetPrincipal(c)
	out, err := h.ledger.Current(c.UserContext(), GetScope(c), p)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, out)
}

// GetByID godoc
// @Summary      Detalle de turno con totales
// @Tags         shifts
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del turno"
// @Success      200  {object}  dto.Envelope{data=dto.ShiftDetailResponse}
// @Failure      404  {object}  dto.Envelope
// @Router       /api/shifts/{id} [get]
func (h *ShiftHandler) GetByID(c *fiber.Ctx) error {
	id, err := validateID(c)
	if err != nil {
		return err
	}
	p, _ := GetPrincipal(c)
	out, err := h.ledger.Get(c.UserContext(), GetScope(c), p, id)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, out)
}

// List godoc
// @Summary      Listar turnos
// @Description  Un cajero solo ve sus turnos.
// @Tags         shifts
// @Security     Bearer
// @Produce      json
// @Param        status      query  string  false  "open | closed"
// @Param        account_id  query  string  false  "Cuenta"
// @Param        page        query  int     false  "Página"  default(1)
// @Param        limit       query  int     false  "Límite"  default(20)
// @Param        tenant_id   query  string  false  "Solo operadores"
// @Success      200         {object}  dto.Envelope{data=[]dto.ShiftResponse}
// @Router       /api/shifts [get]
func (h *ShiftHandler) List(c *fiber.Ctx) error {
	var q dto.ShiftListQuery
	if err := parseQuery(c, &q); err != nil {
		return err
	}
	p, _ := GetPrincipal(c)
	out, err := h.ledger.List(c.UserContext(), GetScope(c), p, repository.ShiftFilter{
		Status: q.Status, AccountID: q.AccountID, Page: q.Page, Limit: q.Limit,
	})
	if err != nil {
		return err
	}
	return respondPage(c, out)
}

// Sales godoc
// @Summary      Ventas de un turno
// @Tags         shifts
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del turno"
// @Success      200  {object}  dto.Envelope{data=[]dto.SaleResponse}
// @Failure      404  {object}  dto.Envelope
// @Router       /api/shifts/{id}/sales [get]
func (h *ShiftHandler) Sales(c *fiber.Ctx) error {
	id, err := validateID(c)
	if err != nil {
		return err
	}
	p, _ := GetPrincipal(c)
	out, err := h.sales.ListByShift(c.UserContext(), GetScope(c), p, id)
	if err != nil {
		return err
	}
	if out == nil {
		out = []dto.SaleResponse{}
	}
	return respond(c, fiber.StatusOK, out)
}
