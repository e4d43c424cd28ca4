package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"orderapi/internal/service"
)

// ListOrders returns extracted orders with limit & offset.
func ListOrders(svc service.OrderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, offset, ok := pagination(c)
		if !ok {
			return nil
		}

		res, err := svc.List(c.UserContext(), limit, offset)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(res)
	}
}

// ExportOrders returns the bare order payloads without record identifiers.
func ExportOrders(svc service.OrderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, offset, ok := pagination(c)
		if !ok {
			return nil
		}

		list, err := svc.Export(c.UserContext(), limit, offset)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(list)
	}
}

// GetOrder returns a single extracted order by ID.
func GetOrder(svc service.OrderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := pathID(c)
		if !ok {
			return nil
		}
		rec, err := svc.Get(c.UserContext(), id)
		if err != nil {
			if errors.Is(err, service.ErrOrderNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "order not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(rec)
	}
}

// OrderByDocument returns the order extracted from the given document.
func OrderByDocument(svc service.OrderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := pathID(c)
		if !ok {
			return nil
		}
		rec, err := svc.GetByDocument(c.UserContext(), id)
		if err != nil {
			if errors.Is(err, service.ErrOrderNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "order not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(rec)
	}
}

// DeleteOrder removes an extracted order. The source document is untouched.
func DeleteOrder(svc service.OrderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := pathID(c)
		if !ok {
			return nil
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			if errors.Is(err, service.ErrOrderNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "order not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// OrderPreview renders the order's source document as HTML.
func OrderPreview(svc service.OrderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := pathID(c)
		if !ok {
			return nil
		}
		html, err := svc.PreviewHTML(c.UserContext(), id)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrOrderNotFound), errors.Is(err, service.ErrNotFound):
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "order not found")
			default:
				return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
			}
		}
		c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
		return c.Send(html)
	}
}
