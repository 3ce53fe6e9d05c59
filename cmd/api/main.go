package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/narendrababuts/AutoShopPro/internal/handler"
	"github.com/narendrababuts/AutoShopPro/internal/middleware"
	"github.com/narendrababuts/AutoShopPro/internal/model"
	"github.com/narendrababuts/AutoShopPro/internal/repository"
	"github.com/narendrababuts/AutoShopPro/internal/service"
	"github.com/narendrababuts/AutoShopPro/internal/ws"
	"github.com/narendrababuts/AutoShopPro/pkg/database"
	"github.com/narendrababuts/AutoShopPro/pkg/jwt"
	"github.com/narendrababuts/AutoShopPro/pkg/storage"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Warn(".env file not found")
	}
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	// 2. Setup Database
	db := database.ConnectDB()
	db.AutoMigrate(
		&model.Garage{},
		&model.User{},
		&model.JobCard{},
		&model.JobPhoto{},
		&model.InventoryItem{},
		&model.Transaction{},
		&model.Staff{},
		&model.Attendance{},
		&model.Setting{},
	)

	// 3. Seed default garage and admin user
	seedGarageAndAdmin(db)

	// 4. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 5. Dependency Injection (Wiring Layers)
	jobCardRepo := repository.NewJobCardRepo(db)
	inventoryRepo := repository.NewInventoryRepo(db)
	accountRepo := repository.NewAccountRepo(db)
	staffRepo := repository.NewStaffRepo(db)
	attendanceRepo := repository.NewAttendanceRepo(db)
	settingRepo := repository.NewSettingRepo(db)
	photoRepo := repository.NewPhotoRepo(db)
	userRepo := repository.NewUserRepo(db)

	photoStore := storage.NewLocalStore(os.Getenv("STORAGE_DIR"))

	invService := service.NewInventoryService(inventoryRepo, wsHub)
	jobCardService := service.NewJobCardService(jobCardRepo, photoRepo, staffRepo, invService, photoStore, wsHub)
	dashService := service.NewDashboardService(jobCardRepo, service.DashboardConfigFromEnv())
	accService := service.NewAccountsService(accountRepo, wsHub)
	attService := service.NewAttendanceService(attendanceRepo, settingRepo)
	promoService := service.NewPromotionsService(jobCardRepo)
	authService := service.NewAuthService(userRepo)

	jobCardHandler := handler.NewJobCardHandler(jobCardService)
	invHandler := handler.NewInventoryHandler(invService)
	dashHandler := handler.NewDashboardHandler(dashService)
	accHandler := handler.NewAccountsHandler(accService)
	attHandler := handler.NewAttendanceHandler(attService)
	promoHandler := handler.NewPromotionsHandler(promoService)
	authHandler := handler.NewAuthHandler(authService)
	settingsHandler := handler.NewSettingsHandler(settingRepo)
	staffHandler := handler.NewStaffHandler(staffRepo)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName:   "AutoShopPro v1.0",
		BodyLimit: 20 * 1024 * 1024, // staged photos travel inline
	})

	// Middleware
	app.Use(logger.New())
	app.Use(recover.New())
	app.Use(cors.New())

	// 7. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/validate-token", authHandler.ValidateToken)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireAuth(userRepo))

	// Dashboard
	protected.Get("/dashboard/metrics", dashHandler.GetMetrics)
	protected.Get("/dashboard/recent-jobs", dashHandler.RecentJobCards)
	protected.Get("/dashboard/inventory-alerts", invHandler.LowStock)

	// Job Cards
	protected.Get("/job-cards/completed", jobCardHandler.ListCompleted)
	protected.Get("/job-cards/staff-options", jobCardHandler.StaffOptions)
	protected.Get("/job-cards/:id", jobCardHandler.Get)
	protected.Get("/job-cards/:id/photos", jobCardHandler.Photos)
	protected.Post("/job-cards", jobCardHandler.Create)
	protected.Put("/job-cards/:id", jobCardHandler.Update)

	// Inventory
	protected.Get("/inventory", invHandler.List)
	protected.Post("/inventory", invHandler.Create)
	protected.Put("/inventory/:id", invHandler.Update)
	protected.Delete("/inventory/:id", invHandler.Delete)

	// Accounts
	protected.Get("/accounts", accHandler.List)
	protected.Get("/accounts/summary", accHandler.Summary)
	protected.Post("/accounts", accHandler.Create)
	protected.Put("/accounts/:id", accHandler.Update)
	protected.Delete("/accounts/:id", accHandler.Delete)

	// Staff & Attendance
	protected.Get("/staff", staffHandler.List)
	protected.Post("/staff", staffHandler.Create)
	protected.Get("/attendance", attHandler.Recent)
	protected.Post("/attendance/clock-in", attHandler.ClockIn)
	protected.Post("/attendance/clock-out/:staffId", attHandler.ClockOut)
	protected.Get("/biometric/devices", attHandler.Devices)
	protected.Put("/biometric/devices", attHandler.SaveDevices)

	// Promotions
	protected.Get("/promotions/offers", promoHandler.Offers)
	protected.Get("/promotions/customers", promoHandler.Customers)

	// Settings
	protected.Get("/settings/:key", settingsHandler.Get)
	protected.Put("/settings/:key", settingsHandler.Upsert)

	// WebSocket Route. The token comes in as a query param because browsers
	// cannot set headers on upgrade requests.
	app.Use("/ws", func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return c.SendStatus(fiber.StatusUpgradeRequired)
		}
		claims, err := jwt.ValidateToken(c.Query("token"))
		if err != nil {
			return c.SendStatus(fiber.StatusUnauthorized)
		}
		c.Locals("garage_id", claims.GarageID)
		return c.Next()
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		garageID, _ := c.Locals("garage_id").(uuid.UUID)
		client := &ws.Client{Conn: c, GarageID: garageID}
		wsHub.Register <- client
		defer func() { wsHub.Unregister <- client }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 8. Graceful Shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Info("Server exited")
}

// seedGarageAndAdmin creates a default garage and admin user if none exist
func seedGarageAndAdmin(db *gorm.DB) {
	userRepo := repository.NewUserRepo(db)

	if _, err := userRepo.FindByEmail("admin@example.com"); err == nil {
		return
	}

	garage := &model.Garage{Name: "Default Garage"}
	garage.CreatedBy = "system"
	garage.UpdatedBy = "system"
	if err := db.Create(garage).Error; err != nil {
		log.WithError(err).Warn("Failed to seed default garage")
		return
	}

	admin := &model.User{
		GarageID: garage.ID,
		Email:    "admin@example.com",
		FullName: "Garage Administrator",
		IsActive: true,
	}
	admin.CreatedBy = "system"
	admin.UpdatedBy = "system"

	if err := admin.SetPassword("admin123"); err != nil {
		log.WithError(err).Warn("Failed to hash admin password")
		return
	}
	if err := userRepo.Create(admin); err != nil {
		log.WithError(err).Warn("Failed to create admin user")
		return
	}
	log.Info("Admin user created: admin@example.com / admin123")
}
