package auth

import (
	"github.com/gofiber/fiber/v2"

	authuc "github.com/nhanban-huy/nhan-ban-photo-print/internal/usecase/auth"
)

type LoginHandler struct {
	uc *authuc.LoginUsecase
}

func NewLoginHandler(uc *authuc.LoginUsecase) *LoginHandler {
	return &LoginHandler{uc: uc}
}

type loginRequest struct {
	Username string `json:"username"`
	Pin      string `json:"pin"`
}

func (h *LoginHandler) Handle(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid body"})
	}

	out, err := h.uc.Execute(c.Context(), req.Username, req.Pin)
	if err != nil {
		if err == authuc.ErrInvalidCredentials {
			return c.Status(401).JSON(fiber.Map{"error": "Sai tên đăng nhập hoặc mật khẩu"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "internal error"})
	}

	return c.JSON(out)
}
