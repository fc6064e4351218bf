package upload

import (
	"errors"
	"io"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"

	"github.com/nhanban-huy/nhan-ban-photo-print/internal/client/cloudinary"
)

type Handler struct {
	uploader *cloudinary.Uploader
}

func New(uploader *cloudinary.Uploader) *Handler {
	return &Handler{uploader: uploader}
}

// Handle proxies a product photo to the image host. Failure is an
// advisory: the caller leaves the row's image unset and moves on.
func (h *Handler) Handle(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "file is required"})
	}
	if fh.Size > cloudinary.MaxImageBytes {
		return c.Status(413).JSON(fiber.Map{"error": "Ảnh vượt quá 2MB"})
	}

	f, err := fh.Open()
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "unreadable file"})
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "unreadable file"})
	}

	url, err := h.uploader.Upload(c.Context(), fh.Filename, data)
	if err != nil {
		if errors.Is(err, cloudinary.ErrTooLarge) {
			return c.Status(413).JSON(fiber.Map{"error": "Ảnh vượt quá 2MB"})
		}
		log.WithError(err).Warn("image upload failed")
		return c.Status(502).JSON(fiber.Map{"error": "Upload ảnh thất bại"})
	}

	return c.JSON(fiber.Map{"url": url})
}
