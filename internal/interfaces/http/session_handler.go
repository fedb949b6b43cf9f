package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/acruxgo/banos-forum-backend/internal/application/dto"
)

// SessionHandler login, logout y sesión actual.
type SessionHandler struct {
	uc sessionService
}

// NewSessionHandler construye el handler de sesiones.
func NewSessionHandler(uc sessionService) *SessionHandler {
	return &SessionHandler{uc: uc}
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "identifier, secret, tenant (slug opcional)"
// @Success      200   {object}  dto.Envelope{data=dto.LoginResponse}
// @Failure      401   {object}  dto.Envelope
// @Failure      403   {object}  dto.Envelope
// @Router       /api/sessions [post]
func (h *SessionHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, out)
}

// Logout godoc
// @Summary      Cerrar sesión (revoca el token)
// @Tags         sessions
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.Envelope
// @Failure      401  {object}  dto.Envelope
// @Router       /api/sessions [delete]
func (h *SessionHandler) Logout(c *fiber.Ctx) error {
	if err := h.uc.Logout(c.UserContext(), GetClaims(c)); err != nil {
		return err
	}
	return respondMessage(c, "sesión cerrada")
}

// Me godoc
// @Summary      Sesión actual
// @Tags         sessions
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.Envelope{data=dto.SessionResponse}
// @Failure      401  {object}  dto.Envelope
// @Router       /api/sessions/me [get]
func (h *SessionHandler) Me(c *fiber.Ctx) error {
	p, ok := GetPrincipal(c)
	if !ok {
		return errMissingToken
	}
	out, err := h.uc.Me(c.UserContext(), p)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, out)
}
