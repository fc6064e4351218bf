package order

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/nhanban-huy/nhan-ban-photo-print/internal/delivery/middleware"
	"github.com/nhanban-huy/nhan-ban-photo-print/internal/invoice"
	orderuc "github.com/nhanban-huy/nhan-ban-photo-print/internal/usecase/order"
	"github.com/nhanban-huy/nhan-ban-photo-print/internal/vietqr"
)

type Handler struct {
	uc *orderuc.Usecase
	qr *vietqr.Builder
}

func New(uc *orderuc.Usecase, qr *vietqr.Builder) *Handler {
	return &Handler{uc: uc, qr: qr}
}

func (h *Handler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), middleware.EmployeeID(c), middleware.IsAdmin(c))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "internal error"})
	}
	return c.JSON(fiber.Map{"items": out})
}

func (h *Handler) Get(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return mapErr(c, err)
	}
	return c.JSON(out)
}

func (h *Handler) UpdatePaymentStatus(c *fiber.Ctx) error {
	var in orderuc.UpdateStatusInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid body"})
	}

	out, err := h.uc.UpdatePaymentStatus(c.Context(), c.Params("id"), in)
	if err != nil {
		return mapErr(c, err)
	}
	return c.JSON(out)
}

func (h *Handler) UpdatePaymentMethod(c *fiber.Ctx) error {
	var in orderuc.UpdateMethodInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid body"})
	}

	out, err := h.uc.UpdatePaymentMethod(c.Context(), c.Params("id"), in)
	if err != nil {
		return mapErr(c, err)
	}
	return c.JSON(out)
}

func (h *Handler) UpdateWorkStatus(c *fiber.Ctx) error {
	var in orderuc.UpdateStatusInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid body"})
	}

	out, err := h.uc.UpdateWorkStatus(c.Context(), c.Params("id"), in)
	if err != nil {
		return mapErr(c, err)
	}
	return c.JSON(out)
}

// Invoice renders the printable invoice with the settlement QR. The
// transfer description is the order code so payments reconcile by eye.
func (h *Handler) Invoice(c *fiber.Ctx) error {
	o, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return mapErr(c, err)
	}

	type lineView struct {
		STT       int
		Service   string
		Quantity  int
		UnitPrice string
		Note      string
		LineTotal string
	}

	lines := make([]lineView, 0, len(o.Items))
	for _, it := range o.Items {
		lines = append(lines, lineView{
			STT:       it.STT,
			Service:   it.Service,
			Quantity:  it.Quantity,
			UnitPrice: invoice.FormatVND(it.UnitPrice),
			Note:      it.Note,
			LineTotal: invoice.FormatVND(int64(it.Quantity) * it.UnitPrice),
		})
	}

	return c.Render("invoice", fiber.Map{
		"Order":        o,
		"Lines":        lines,
		"SubTotal":     invoice.FormatVND(o.SubTotal),
		"VAT":          invoice.FormatVND(o.VAT),
		"Total":        invoice.FormatVND(o.Total),
		"TotalInWords": invoice.AmountInWords(o.Total),
		"QRImageURL":   h.qr.ImageURL(o.Total, o.ID),
		"CreatedAt":    o.CreatedAt.Format("02/01/2006 15:04"),
	})
}

func mapErr(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, orderuc.ErrInvalidInput), errors.Is(err, orderuc.ErrInvalidStatus):
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, orderuc.ErrNotFound):
		return c.Status(404).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(500).JSON(fiber.Map{"error": "internal error"})
	}
}
