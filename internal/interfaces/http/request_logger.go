package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/acruxgo/banos-forum-backend/pkg/logger"
)

// httpObserver registra duración y status por ruta (lo implementa *metrics.Metrics).
type httpObserver interface {
	ObserveHTTP(method, path string, status int, elapsed time.Duration)
}

// RequestLogger registra cada petición y sus métricas. Resuelve el error de la cadena
// con el ErrorHandler de la app para conocer el status final.
func RequestLogger(log *logger.Logger, observer httpObserver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		if chainErr := c.Next(); chainErr != nil {
			if err := c.App().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		elapsed := time.Since(start)
		status := c.Response().StatusCode()
		route := c.Route().Path
		if observer != nil {
			observer.ObserveHTTP(c.Method(), route, status, elapsed)
		}

		var ev *zerolog.Event
		switch {
		case status >= fiber.StatusInternalServerError:
			ev = log.Error()
		case status >= fiber.StatusBadRequest:
			ev = log.Warn()
		default:
			ev = log.Info()
		}
		if p, ok := GetPrincipal(c); ok {
			ev = ev.Str("account_id", p.AccountID).Str("tenant_id", p.TenantID)
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Str("route", route).
			Int("status", status).
			Dur("latency", elapsed).
			Str("request_id", requestID(c)).
			Msg("request")
		return nil
	}
}
