package app

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/template/html/v2"

	"github.com/nhanban-huy/nhan-ban-photo-print/internal/config"
	"github.com/nhanban-huy/nhan-ban-photo-print/internal/db"
	httpdelivery "github.com/nhanban-huy/nhan-ban-photo-print/internal/delivery/http"
	"github.com/nhanban-huy/nhan-ban-photo-print/internal/repository/postgres/docstore"
)

func Run() error {
	cfg := config.Load()

	pool, err := db.NewPool(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()

	if err := docstore.New(pool).EnsureSchema(context.Background()); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}

	engine := html.New("./views", ".html")
	app := fiber.New(fiber.Config{
		AppName: "nhan-ban-photo-print",
		Views:   engine,
	})

	app.Use(recover.New())
	app.Use(logger.New())

	httpdelivery.RegisterRoutes(app, cfg, pool)

	return app.Listen(":" + cfg.Port)
}
