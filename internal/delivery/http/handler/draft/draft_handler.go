// Package draft exposes the order-authoring session: row mutation from
// the three input modalities and the final commit.
package draft

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/nhanban-huy/nhan-ban-photo-print/internal/delivery/middleware"
	draftuc "github.com/nhanban-huy/nhan-ban-photo-print/internal/usecase/draft"
	interpretuc "github.com/nhanban-huy/nhan-ban-photo-print/internal/usecase/interpret"
	invuc "github.com/nhanban-huy/nhan-ban-photo-print/internal/usecase/inventory"
	orderuc "github.com/nhanban-huy/nhan-ban-photo-print/internal/usecase/order"
)

// PresetSource supplies the quick-pick catalog, both for direct
// selection and as interpretation context.
type PresetSource interface {
	List(ctx context.Context) ([]draftuc.Preset, error)
}

type Handler struct {
	sessions  *draftuc.Sessions
	inventory *invuc.Usecase
	interpret *interpretuc.Usecase
	orders    *orderuc.Usecase
	presets   PresetSource
}

func New(
	sessions *draftuc.Sessions,
	inventory *invuc.Usecase,
	interpret *interpretuc.Usecase,
	orders *orderuc.Usecase,
	presets PresetSource,
) *Handler {
	return &Handler{
		sessions:  sessions,
		inventory: inventory,
		interpret: interpret,
		orders:    orders,
		presets:   presets,
	}
}

func (h *Handler) Create(c *fiber.Ctx) error {
	id, d := h.sessions.Create()
	return c.Status(201).JSON(fiber.Map{"id": id, "rows": d.Rows()})
}

func (h *Handler) Get(c *fiber.Ctx) error {
	d, err := h.sessions.Get(c.Params("id"))
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "draft not found"})
	}
	return c.JSON(fiber.Map{"id": c.Params("id"), "rows": d.Rows()})
}

func (h *Handler) AddRow(c *fiber.Ctx) error {
	d, err := h.sessions.Get(c.Params("id"))
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "draft not found"})
	}
	row := d.AddFreeRow()
	return c.Status(201).JSON(fiber.Map{"row": row, "rows": d.Rows()})
}

func (h *Handler) PatchRow(c *fiber.Ctx) error {
	d, err := h.sessions.Get(c.Params("id"))
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "draft not found"})
	}

	var patch draftuc.RowPatch
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid body"})
	}

	row, err := d.UpdateRow(c.Params("rowID"), patch)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "row not found"})
	}
	return c.JSON(fiber.Map{"row": row, "rows": d.Rows()})
}

func (h *Handler) DeleteRow(c *fiber.Ctx) error {
	d, err := h.sessions.Get(c.Params("id"))
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "draft not found"})
	}

	if err := d.RemoveRow(c.Params("rowID")); err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "row not found"})
	}
	return c.JSON(fiber.Map{"rows": d.Rows()})
}

type catalogRequest struct {
	ProductID string `json:"productId"`
}

func (h *Handler) ApplyCatalog(c *fiber.Ctx) error {
	d, err := h.sessions.Get(c.Params("id"))
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "draft not found"})
	}

	var req catalogRequest
	if err := c.BodyParser(&req); err != nil || req.ProductID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "invalid body"})
	}

	p, err := h.inventory.FindByID(c.Context(), req.ProductID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "internal error"})
	}
	if p == nil {
		return c.Status(404).JSON(fiber.Map{"error": "product not found"})
	}

	row, err := d.ApplyCatalogSelection(draftuc.CatalogProduct{
		ID:        p.ID,
		Type:      p.Type,
		Name:      p.Name,
		SalePrice: p.SalePrice,
		Stock:     p.Stock,
		Image:     p.Image,
	})
	if err != nil {
		if errors.Is(err, draftuc.ErrOutOfStock) {
			return c.Status(409).JSON(fiber.Map{"error": "Sản phẩm này đã hết hàng!"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "internal error"})
	}
	return c.JSON(fiber.Map{"row": row, "rows": d.Rows()})
}

type presetRequest struct {
	PresetID string `json:"presetId"`
}

func (h *Handler) ApplyPreset(c *fiber.Ctx) error {
	d, err := h.sessions.Get(c.Params("id"))
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "draft not found"})
	}

	var req presetRequest
	if err := c.BodyParser(&req); err != nil || req.PresetID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "invalid body"})
	}

	presets, err := h.presets.List(c.Context())
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "internal error"})
	}
	for _, p := range presets {
		if p.ID == req.PresetID {
			row := d.ApplyPreset(p)
			return c.JSON(fiber.Map{"row": row, "rows": d.Rows()})
		}
	}
	return c.Status(404).JSON(fiber.Map{"error": "preset not found"})
}

type interpretRequest struct {
	Text string `json:"text"`
}

// Interpret runs the transcript (or pasted message) through the
// interpretation adapter and merges the result. "No items" is an
// advisory, never an error: the draft is returned unchanged.
func (h *Handler) Interpret(c *fiber.Ctx) error {
	d, err := h.sessions.Get(c.Params("id"))
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "draft not found"})
	}

	var req interpretRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid body"})
	}

	presets, err := h.presets.List(c.Context())
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "internal error"})
	}
	catalog := make([]interpretuc.CatalogEntry, 0, len(presets))
	for _, p := range presets {
		catalog = append(catalog, interpretuc.CatalogEntry{Name: p.Name, DefaultPrice: p.DefaultPrice})
	}

	items, err := h.interpret.Interpret(c.Context(), req.Text, catalog)
	if err != nil {
		if errors.Is(err, interpretuc.ErrInvalidInput) {
			return c.Status(400).JSON(fiber.Map{"error": "text is required"})
		}
		// Fail-soft: existing rows untouched.
		return c.JSON(fiber.Map{
			"ok":       false,
			"advisory": "AI không nhận diện được đơn hàng. Vui lòng thử nói rõ số lượng và tên dịch vụ.",
			"rows":     d.Rows(),
		})
	}

	d.ApplyInterpreted(items)
	return c.JSON(fiber.Map{"ok": true, "rows": d.Rows()})
}

type commitRequest struct {
	Customer orderuc.Customer `json:"customer"`
	HasVat   bool             `json:"hasVat"`
}

func (h *Handler) Commit(c *fiber.Ctx) error {
	id := c.Params("id")
	d, err := h.sessions.Get(id)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "draft not found"})
	}

	var req commitRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid body"})
	}

	rows := d.Rows()
	items := make([]orderuc.Item, 0, len(rows))
	for _, r := range rows {
		items = append(items, orderuc.Item{
			ID:        r.ID,
			Service:   r.Service,
			Quantity:  r.Quantity,
			UnitPrice: r.UnitPrice,
			Note:      r.Note,
			ProductID: r.ProductID,
			Image:     r.Image,
		})
	}

	o, err := h.orders.Commit(c.Context(), orderuc.CommitInput{
		Items:      items,
		HasVat:     req.HasVat,
		Customer:   req.Customer,
		EmployeeID: middleware.EmployeeID(c),
	})
	if err != nil {
		return mapCommitErr(c, err)
	}

	// The authoring session is done; its draft is discarded.
	h.sessions.Discard(id)
	return c.Status(201).JSON(o)
}

func mapCommitErr(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, orderuc.ErrNoItems),
		errors.Is(err, orderuc.ErrCustomerRequired),
		errors.Is(err, orderuc.ErrVATFieldsRequired):
		return c.Status(422).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, orderuc.ErrInsufficientStock):
		return c.Status(409).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(500).JSON(fiber.Map{"error": "internal error"})
	}
}
