package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/acruxgo/banos-forum-backend/internal/application/dto"
)

func respond(c *fiber.Ctx, status int, data any) error {
	return c.Status(status).JSON(dto.Envelope{Success: true, Data: data})
}

func respondMessage(c *fiber.Ctx, message string) error {
	return c.JSON(dto.Envelope{Success: true, Message: message})
}

// respondPage lista paginada; una página vacía se serializa como [].
func respondPage[T any](c *fiber.Ctx, page *dto.Page[T]) error {
	items := page.Items
	if items == nil {
		items = []T{}
	}
	p := page.Pagination
	return c.JSON(dto.Envelope{Success: true, Data: items, Pagination: &p})
}
