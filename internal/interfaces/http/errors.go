package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/acruxgo/banos-forum-backend/internal/application/dto"
	"github.com/acruxgo/banos-forum-backend/internal/domain"
	"github.com/acruxgo/banos-forum-backend/pkg/logger"
)

// Errores propios del transporte (token).
var (
	errMissingToken = errors.New("token requerido")
	errInvalidToken = errors.New("token inválido o expirado")
	errTokenRevoked = errors.New("la sesión fue cerrada")
)

type errorMapping struct {
	err    error
	status int
	code   string
}

// errorTable el orden importa: se usa la primera coincidencia con errors.Is.
var errorTable = []errorMapping{
	{domain.ErrStoreUnavailable, fiber.StatusInternalServerError, "STORE_UNAVAILABLE"},

	{errMissingToken, fiber.StatusUnauthorized, "MISSING_TOKEN"},
	{errInvalidToken, fiber.StatusUnauthorized, "INVALID_TOKEN"},
	{errTokenRevoked, fiber.StatusUnauthorized, "TOKEN_REVOKED"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},

	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
	{domain.ErrTenantMissing, fiber.StatusForbidden, "TENANT_MISSING"},
	{domain.ErrTenantInactive, fiber.StatusForbidden, "TENANT_INACTIVE"},
	{domain.ErrTenantNotFound, fiber.StatusForbidden, "TENANT_NOT_FOUND"},
	{domain.ErrAccountInactive, fiber.StatusForbidden, "ACCOUNT_INACTIVE"},

	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrShiftNotFound, fiber.StatusNotFound, "NOT_FOUND"},

	{domain.ErrConflictWithDeleted, fiber.StatusConflict, "CONFLICT_WITH_DELETED"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT"},

	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrInvalidAmount, fiber.StatusBadRequest, "INVALID_AMOUNT"},
	{domain.ErrAlreadyDeleted, fiber.StatusBadRequest, "ALREADY_DELETED"},
	{domain.ErrNotDeleted, fiber.StatusBadRequest, "NOT_DELETED"},
	{domain.ErrEntityDeleted, fiber.StatusBadRequest, "ENTITY_DELETED"},
	{domain.ErrDependencyExists, fiber.StatusBadRequest, "DEPENDENCY_EXISTS"},
	{domain.ErrShiftAlreadyOpen, fiber.StatusBadRequest, "SHIFT_ALREADY_OPEN"},
	{domain.ErrShiftNotOpen, fiber.StatusBadRequest, "SHIFT_NOT_OPEN"},
	{domain.ErrShiftNotActive, fiber.StatusBadRequest, "SHIFT_NOT_ACTIVE"},
	{domain.ErrSelfAction, fiber.StatusBadRequest, "SELF_ACTION"},
}

// mapError traduce un error a status y cuerpo. Lo desconocido es INTERNAL.
func mapError(err error) (int, *dto.ErrorBody) {
	for _, m := range errorTable {
		if !errors.Is(err, m.err) {
			continue
		}
		body := &dto.ErrorBody{Code: m.code, Message: m.err.Error()}
		var validation *domain.ValidationError
		if errors.As(err, &validation) {
			body.Message, body.Field = validation.Message, validation.Field
		}
		var conflict *domain.ConflictError
		if errors.As(err, &conflict) {
			body.Field = conflict.Field
		}
		if n, ok := domain.DependencyCount(err); ok {
			body.Count = &n
		}
		return m.status, body
	}

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code := "INTERNAL"
		switch fe.Code {
		case fiber.StatusNotFound:
			code = "NOT_FOUND"
		case fiber.StatusMethodNotAllowed:
			code = "METHOD_NOT_ALLOWED"
		case fiber.StatusTooManyRequests:
			code = "RATE_LIMITED"
		case fiber.StatusRequestEntityTooLarge:
			code = "PAYLOAD_TOO_LARGE"
		default:
			if fe.Code < fiber.StatusInternalServerError {
				code = "VALIDATION"
			}
		}
		return fe.Code, &dto.ErrorBody{Code: code, Message: fe.Message}
	}
	return fiber.StatusInternalServerError, &dto.ErrorBody{Code: "INTERNAL", Message: "error interno"}
}

// ErrorHandler manejador de errores de la app: toda respuesta no 2xx lleva success=false.
// Los 5xx se registran con el error original.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status, body := mapError(err)
		if status >= fiber.StatusInternalServerError {
			log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).
				Str("request_id", requestID(c)).Msg("error no controlado")
		}
		return c.Status(status).JSON(dto.Envelope{Success: false, Error: body})
	}
}
