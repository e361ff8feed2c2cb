package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-pos-backend/internal/cache"
	"go-pos-backend/internal/config"
	"go-pos-backend/internal/handler"
	"go-pos-backend/internal/middleware"
	"go-pos-backend/internal/model"
	"go-pos-backend/internal/repository"
	"go-pos-backend/internal/service"
	"go-pos-backend/internal/upload"
	"go-pos-backend/internal/ws"
	"go-pos-backend/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}
	cfg := config.Load()

	// 2. Setup Database
	db := database.ConnectDB(cfg.DatabaseURL)
	// Auto Migrate (use a dedicated migration tool in production)
	db.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Product{},
		&model.Transaction{},
		&model.TransactionItem{},
		&model.Notification{},
		&model.Settings{},
	)

	// 3. Seed default admin user
	seedAdmin(db, cfg.AdminPassword)

	// 4. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 5. Stats cache: Redis when configured, otherwise a no-op
	var statsCache cache.StatsCache = cache.NoopStatsCache{}
	if cfg.RedisAddr != "" {
		redisCache := cache.NewRedisStatsCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisCache.Ping(pingCtx); err != nil {
			log.Printf("Warning: Redis unreachable at %s, live stats uncached: %v", cfg.RedisAddr, err)
		} else {
			statsCache = redisCache
			defer redisCache.Close()
		}
		cancel()
	}

	// 6. Upload store
	uploads, err := upload.NewStore(cfg.UploadDir)
	if err != nil {
		log.Fatalf("Failed to prepare upload dir %s: %v", cfg.UploadDir, err)
	}

	// 7. Dependency Injection (Wiring Layers)
	secret := []byte(cfg.JWTSecret)

	userRepo := repository.NewUserRepo(db)
	categoryRepo := repository.NewCategoryRepo(db)
	productRepo := repository.NewProductRepo(db)
	txRepo := repository.NewTransactionRepo(db)
	notificationRepo := repository.NewNotificationRepo(db)
	settingsRepo := repository.NewSettingsRepo(db)

	authService := service.NewAuthService(userRepo, secret)
	userService := service.NewUserService(userRepo)
	catalogService := service.NewCatalogService(categoryRepo, productRepo, uploads, wsHub)
	saleService := service.NewSaleService(db, txRepo, productRepo, notificationRepo, statsCache, wsHub, cfg.EnforceStock)
	statsService := service.NewStatsService(txRepo, productRepo, userRepo, categoryRepo, statsCache)
	settingsService := service.NewSettingsService(settingsRepo)
	notificationService := service.NewNotificationService(notificationRepo, wsHub)

	authHandler := handler.NewAuthHandler(authService)
	cashierHandler := handler.NewCashierHandler(userService)
	categoryHandler := handler.NewCategoryHandler(catalogService)
	productHandler := handler.NewProductHandler(catalogService, uploads)
	dashboardHandler := handler.NewDashboardHandler(statsService)
	settingsHandler := handler.NewSettingsHandler(settingsService, uploads)
	notificationHandler := handler.NewNotificationHandler(notificationService)
	posHandler := handler.NewPOSHandler(catalogService, saleService, statsService)

	// 8. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName:   "POS Backend v1.0",
		BodyLimit: 4 * 1024 * 1024,
	})

	app.Use(logger.New())
	app.Use(recover.New())
	app.Use(cors.New())

	// 9. Routes
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Post("/login", authHandler.Login)
	app.Get("/logout", middleware.RequireAuth(secret, userRepo), authHandler.Logout)

	// Admin routes
	admin := app.Group("/admin", middleware.RequireAuth(secret, userRepo), middleware.RequireRole(model.RoleAdmin))
	admin.Get("/dashboard", dashboardHandler.Admin)

	admin.Get("/categories", categoryHandler.List)
	admin.Post("/categories", categoryHandler.Create)
	admin.Get("/categories/:id", categoryHandler.Get)
	admin.Put("/categories/:id", categoryHandler.Update)
	admin.Delete("/categories/:id", categoryHandler.Delete)

	admin.Get("/cashiers", cashierHandler.List)
	admin.Post("/cashiers", cashierHandler.Create)
	admin.Get("/cashiers/:id", cashierHandler.Get)
	admin.Put("/cashiers/:id", cashierHandler.Update)
	admin.Delete("/cashiers/:id", cashierHandler.Delete)

	admin.Get("/inventory", productHandler.Inventory)
	admin.Post("/products", productHandler.Create)
	admin.Get("/products/:id", productHandler.Get)
	admin.Put("/products/:id", productHandler.Update)
	admin.Delete("/products/:id", productHandler.Delete)

	admin.Get("/sales", dashboardHandler.Sales)
	admin.Get("/sales/filter", dashboardHandler.SalesFiltered)
	admin.Get("/reports", dashboardHandler.Report)

	admin.Get("/settings", settingsHandler.Get)
	admin.Post("/settings/store", settingsHandler.UpdateStore)
	admin.Post("/settings/tax", settingsHandler.UpdateTax)
	admin.Post("/settings/notifications", settingsHandler.UpdateNotifications)
	admin.Post("/settings/theme", settingsHandler.UpdateTheme)
	admin.Post("/settings/password", authHandler.ChangePassword)

	admin.Get("/notifications", notificationHandler.List)
	admin.Post("/notifications", notificationHandler.Create)
	admin.Post("/notifications/:id/read", notificationHandler.MarkRead)
	admin.Post("/notifications/mark-all-read", notificationHandler.MarkAllRead)
	admin.Post("/notifications/clear", notificationHandler.Clear)

	// Cashier routes
	cashier := app.Group("/cashier", middleware.RequireAuth(secret, userRepo), middleware.RequireRole(model.RoleCashier))
	cashier.Get("/sales", dashboardHandler.Cashier)
	cashier.Get("/pos", posHandler.Products)
	cashier.Post("/pos/complete", posHandler.CompleteSale)
	cashier.Get("/stats/live", posHandler.LiveStats)
	cashier.Get("/transactions", posHandler.Transactions)
	cashier.Post("/change-password", authHandler.ChangePassword)

	cashier.Get("/notifications", notificationHandler.List)
	cashier.Post("/notifications", notificationHandler.Create)
	cashier.Post("/notifications/:id/read", notificationHandler.MarkRead)
	cashier.Post("/notifications/mark-all-read", notificationHandler.MarkAllRead)
	cashier.Post("/notifications/clear", notificationHandler.Clear)

	// Static uploads
	app.Static(uploads.PublicPrefix(), uploads.Root())

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 10. Graceful Shutdown
	go func() {
		if err := app.Listen(cfg.Address()); err != nil {
			log.Panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}

// seedAdmin creates the default admin account on first boot so the store
// is never locked out.
func seedAdmin(db *gorm.DB, password string) {
	userRepo := repository.NewUserRepo(db)

	if _, err := userRepo.FindByUsername("admin"); err == nil {
		return
	}

	admin := &model.User{
		Name:     "Administrator",
		Username: "admin",
		Role:     model.RoleAdmin,
		IsActive: true,
	}
	admin.CreatedBy = "system"
	admin.UpdatedBy = "system"

	if err := admin.SetPassword(password); err != nil {
		log.Printf("Warning: Failed to hash admin password: %v", err)
		return
	}

	if err := userRepo.Create(admin); err != nil {
		log.Printf("Warning: Failed to create admin user: %v", err)
		return
	}
	log.Println("Admin user created: admin (change the password after first login)")
}
