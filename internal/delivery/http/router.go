package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"github.com/nhanban-huy/nhan-ban-photo-print/internal/client/cloudinary"
	"github.com/nhanban-huy/nhan-ban-photo-print/internal/client/gemini"
	"github.com/nhanban-huy/nhan-ban-photo-print/internal/config"
	authhandler "github.com/nhanban-huy/nhan-ban-photo-print/internal/delivery/http/handler/auth"
	drafthandler "github.com/nhanban-huy/nhan-ban-photo-print/internal/delivery/http/handler/draft"
	expensehandler "github.com/nhanban-huy/nhan-ban-photo-print/internal/delivery/http/handler/expense"
	invhandler "github.com/nhanban-huy/nhan-ban-photo-print/internal/delivery/http/handler/inventory"
	orderhandler "github.com/nhanban-huy/nhan-ban-photo-print/internal/delivery/http/handler/order"
	uploadhandler "github.com/nhanban-huy/nhan-ban-photo-print/internal/delivery/http/handler/upload"
	"github.com/nhanban-huy/nhan-ban-photo-print/internal/delivery/middleware"
	"github.com/nhanban-huy/nhan-ban-photo-print/internal/repository/postgres/docstore"
	expenserepo "github.com/nhanban-huy/nhan-ban-photo-print/internal/repository/postgres/expense"
	invrepo "github.com/nhanban-huy/nhan-ban-photo-print/internal/repository/postgres/inventory"
	orderrepo "github.com/nhanban-huy/nhan-ban-photo-print/internal/repository/postgres/order"
	presetrepo "github.com/nhanban-huy/nhan-ban-photo-print/internal/repository/postgres/preset"
	redisrepo "github.com/nhanban-huy/nhan-ban-photo-print/internal/repository/redis"
	authuc "github.com/nhanban-huy/nhan-ban-photo-print/internal/usecase/auth"
	draftuc "github.com/nhanban-huy/nhan-ban-photo-print/internal/usecase/draft"
	expuc "github.com/nhanban-huy/nhan-ban-photo-print/internal/usecase/expense"
	interpretuc "github.com/nhanban-huy/nhan-ban-photo-print/internal/usecase/interpret"
	invuc "github.com/nhanban-huy/nhan-ban-photo-print/internal/usecase/inventory"
	orderuc "github.com/nhanban-huy/nhan-ban-photo-print/internal/usecase/order"
	"github.com/nhanban-huy/nhan-ban-photo-print/internal/vietqr"
)

func RegisterRoutes(app *fiber.App, cfg config.Config, db *pgxpool.Pool) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")

	docs := docstore.New(db)

	// Auth wiring: static roster, no user management.
	roster, err := authuc.ParseRoster(cfg.StaffRoster)
	if err != nil {
		log.WithError(err).Fatal("invalid STAFF_ROSTER")
	}
	loginUC := authuc.NewLoginUsecase(roster, cfg.JWTSecret, cfg.JWTExpiresMinutes)
	api.Post("/login", authhandler.NewLoginHandler(loginUC).Handle)

	// Protected shop group
	shop := api.Group("", middleware.RequireStaffJWT(middleware.JWTConfig{
		Secret: cfg.JWTSecret,
	}))

	// Inventory wiring, with the optional redis stock mirror.
	var stockCache invuc.StockCache
	if cfg.RedisAddr != "" {
		client := goredis.NewClient(&goredis.Options{Addr: cfg.RedisAddr})
		stockCache = redisrepo.NewStockCache(client)
	}
	inventoryUC := invuc.New(invrepo.NewRepo(docs), stockCache)
	invH := invhandler.New(inventoryUC)

	// Orders wiring
	orderUC := orderuc.New(orderrepo.NewRepo(docs), &ledgerAdapter{inv: inventoryUC})
	orderH := orderhandler.New(orderUC, vietqr.NewBuilder(cfg.Bank))

	// Draft authoring wiring
	sessions := draftuc.NewSessions()
	interpretUC := interpretuc.New(gemini.New(cfg.GeminiAPIURL, cfg.GeminiAPIKey))
	presets := presetrepo.NewRepo(docs)
	draftH := drafthandler.New(sessions, inventoryUC, interpretUC, orderUC, presets)

	// Expenses wiring
	expenseH := expensehandler.New(expuc.New(expenserepo.NewRepo(docs)))

	// Upload wiring
	uploadH := uploadhandler.New(cloudinary.New(cfg.CloudinaryCloud, cfg.CloudinaryPreset))

	// Preset catalog
	shop.Get("/presets", func(c *fiber.Ctx) error {
		out, err := presets.List(c.Context())
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "internal error"})
		}
		return c.JSON(fiber.Map{"items": out})
	})

	// Inventory routes
	shop.Get("/inventory", invH.List)
	shop.Get("/inventory/:id", invH.Get)
	shop.Post("/inventory", invH.Create)
	shop.Post("/inventory/:id/stock-in", invH.StockIn)

	// Draft authoring routes
	shop.Post("/drafts", draftH.Create)
	shop.Get("/drafts/:id", draftH.Get)
	shop.Post("/drafts/:id/rows", draftH.AddRow)
	shop.Patch("/drafts/:id/rows/:rowID", draftH.PatchRow)
	shop.Delete("/drafts/:id/rows/:rowID", draftH.DeleteRow)
	shop.Post("/drafts/:id/catalog", draftH.ApplyCatalog)
	shop.Post("/drafts/:id/preset", draftH.ApplyPreset)
	shop.Post("/drafts/:id/interpret", draftH.Interpret)
	shop.Post("/drafts/:id/commit", draftH.Commit)

	// Order routes
	shop.Get("/orders", orderH.List)
	shop.Get("/orders/:id", orderH.Get)
	shop.Patch("/orders/:id/payment-status", orderH.UpdatePaymentStatus)
	shop.Patch("/orders/:id/payment-method", orderH.UpdatePaymentMethod)
	shop.Patch("/orders/:id/work-status", orderH.UpdateWorkStatus)
	shop.Get("/orders/:id/invoice", orderH.Invoice)

	// Expense routes
	shop.Get("/expenses", expenseH.List)
	shop.Post("/expenses", expenseH.Create)

	// Upload route
	shop.Post("/uploads", uploadH.Handle)
}

// ledgerAdapter exposes the inventory usecase as the commit engine's
// ledger port.
type ledgerAdapter struct {
	inv *invuc.Usecase
}

func (a *ledgerAdapter) FindByID(ctx context.Context, id string) (*orderuc.LedgerProduct, error) {
	p, err := a.inv.FindByID(ctx, id)
	if err != nil || p == nil {
		return nil, err
	}
	return &orderuc.LedgerProduct{ID: p.ID, Name: p.Name, Stock: p.Stock}, nil
}

func (a *ledgerAdapter) DecrementStock(ctx context.Context, id string, amount int) error {
	return a.inv.DecrementStock(ctx, id, amount)
}
