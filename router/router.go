package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/tablemate/waiterd/agent"
	"github.com/tablemate/waiterd/config"
	"github.com/tablemate/waiterd/controllers"
	"github.com/tablemate/waiterd/events"
	"github.com/tablemate/waiterd/middlewares"
	"github.com/tablemate/waiterd/services"
	"github.com/tablemate/waiterd/tools"
)

func SetupRouter(db *gorm.DB, cfg *config.Config, hub *events.Hub) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	catalogSvc := services.NewCatalogService(db)
	orderSvc := services.NewOrderService(db)
	receiptSvc := services.NewReceiptService(db, orderSvc)
	faqSvc := services.NewFAQService(db)

	dispatcher := tools.NewDispatcher(catalogSvc, orderSvc, receiptSvc, faqSvc)
	assistant := agent.New(cfg, dispatcher)

	catalogCtrl := controllers.NewCatalogController(catalogSvc)
	orderCtrl := controllers.NewOrderController(orderSvc)
	receiptCtrl := controllers.NewReceiptController(receiptSvc)
	faqCtrl := controllers.NewFAQController(faqSvc)
	chatCtrl := controllers.NewChatController(assistant)
	eventCtrl := controllers.NewEventController(hub)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Catalog
	r.GET("/categories", catalogCtrl.GetCategories)
	r.GET("/menu", catalogCtrl.GetMenu)
	r.GET("/menu/allergens", catalogCtrl.GetAllergens)

	// FAQ
	r.GET("/faq", faqCtrl.GetKeys)
	r.GET("/faq/:key", faqCtrl.GetValue)

	// Ledger mutations share one per-IP limiter
	limiter := middlewares.NewRateLimiter(60, 60)
	orders := r.Group("/")
	orders.Use(limiter.RateLimit())
	{
		orders.POST("/orders", orderCtrl.PlaceOrder)
		orders.POST("/order-items/:item_id/cancel", orderCtrl.CancelOrderItem)
		orders.PATCH("/order-items/:item_id/quantity", orderCtrl.UpdateOrderItemQuantity)
		orders.POST("/orders/:order_id/payment", receiptCtrl.ProcessPayment)
	}

	r.GET("/orders/:order_id/receipt", receiptCtrl.GetReceipt)

	// Assistant chat, rate-limited as a whole
	chat := r.Group("/chat")
	chat.Use(middlewares.ChatRateLimiter(30))
	{
		chat.POST("", chatCtrl.Chat)
	}

	// Order event feed
	r.GET("/events/ws", eventCtrl.Feed)

	return r
}
