package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/tablemate/waiterd/config"
	"github.com/tablemate/waiterd/database"
	"github.com/tablemate/waiterd/events"
	"github.com/tablemate/waiterd/models"
	"github.com/tablemate/waiterd/router"
	"github.com/tablemate/waiterd/services"
	"github.com/tablemate/waiterd/utils"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading: %v", err)
	}

	utils.InitLogger()
}

func main() {
	cfg := config.Load()

	if cfg.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Open(cfg)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}

	autoMigrate(db)

	if err := database.Seed(db); err != nil {
		utils.ErrorLogger.Fatalf("Failed to seed database: %v", err)
	}

	orderSvc := services.NewOrderService(db)
	archived, err := orderSvc.FinalizePreviousOrders()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to finalize previous orders: %v", err)
	}
	utils.InfoLogger.Printf("Archived %d order item(s) from previous sessions", archived)

	hub := events.NewHub()

	statusMonitor := services.NewStatusMonitor(orderSvc, cfg.StatusRefreshInterval)
	statusMonitor.Start()
	defer statusMonitor.Stop()

	eventMonitor := services.NewEventMonitor(db, hub, cfg.EventPollInterval)
	eventMonitor.Start()
	defer eventMonitor.Stop()

	r := router.SetupRouter(db, cfg, hub)

	utils.InfoLogger.Printf("Listening on port %s", cfg.HTTPPort)
	if err := r.Run(":" + cfg.HTTPPort); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}

func autoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.MenuCategory{},
		&models.Offering{},
		&models.Ingredient{},
		&models.Attribute{},
		&models.OfferingIngredient{},
		&models.OrderItem{},
		&models.OrderItemModification{},
		&models.FAQ{},
		&models.OrderEvent{},
	)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")
}
