package expense

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nhanban-huy/nhan-ban-photo-print/internal/delivery/middleware"
	expuc "github.com/nhanban-huy/nhan-ban-photo-print/internal/usecase/expense"
)

type Handler struct {
	uc *expuc.Usecase
}

func New(uc *expuc.Usecase) *Handler {
	return &Handler{uc: uc}
}

func (h *Handler) Create(c *fiber.Ctx) error {
	var in expuc.CreateInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid body"})
	}
	in.EmployeeID = middleware.EmployeeID(c)

	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		if err == expuc.ErrInvalidInput {
			return c.Status(400).JSON(fiber.Map{"error": "Vui lòng nhập số tiền và tên mặt hàng"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "internal error"})
	}
	return c.Status(201).JSON(out)
}

func (h *Handler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context())
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "internal error"})
	}
	return c.JSON(fiber.Map{"items": out})
}
