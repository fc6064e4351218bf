package inventory

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	invuc "github.com/nhanban-huy/nhan-ban-photo-print/internal/usecase/inventory"
)

type Handler struct {
	uc *invuc.Usecase
}

func New(uc *invuc.Usecase) *Handler {
	return &Handler{uc: uc}
}

// List doubles as catalog search: ?q= filters by name substring.
func (h *Handler) List(c *fiber.Ctx) error {
	out, err := h.uc.Search(c.Context(), c.Query("q"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "internal error"})
	}
	return c.JSON(fiber.Map{"items": out})
}

func (h *Handler) Get(c *fiber.Ctx) error {
	out, err := h.uc.FindByID(c.Context(), c.Params("id"))
	if err != nil {
		return mapErr(c, err)
	}
	if out == nil {
		return c.Status(404).JSON(fiber.Map{"error": "product not found"})
	}
	return c.JSON(out)
}

func (h *Handler) Create(c *fiber.Ctx) error {
	var in invuc.CreateInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid body"})
	}

	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return mapErr(c, err)
	}
	return c.Status(201).JSON(out)
}

type stockInRequest struct {
	Quantity int `json:"quantity"`
}

func (h *Handler) StockIn(c *fiber.Ctx) error {
	var req stockInRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid body"})
	}

	out, err := h.uc.StockIn(c.Context(), c.Params("id"), req.Quantity)
	if err != nil {
		return mapErr(c, err)
	}
	return c.JSON(out)
}

func mapErr(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, invuc.ErrInvalidInput):
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, invuc.ErrNotFound):
		return c.Status(404).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(500).JSON(fiber.Map{"error": "internal error"})
	}
}
