// Package server is the HTTP surface of the POS: one gin engine serving the
// captain terminal, the kitchen display, the waiter app and the admin
// screens, each behind its own role gate.
package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"restaurant-pos/internal/catalog"
	"restaurant-pos/internal/common/logger"
	"restaurant-pos/internal/domain"
	"restaurant-pos/internal/kitchen"
	"restaurant-pos/internal/notify"
	"restaurant-pos/internal/orderbook"
	"restaurant-pos/internal/repository"
	"restaurant-pos/internal/waiter"
)

type Deps struct {
	Catalog       *catalog.Service
	Orders        *orderbook.Store
	Kitchen       *kitchen.Store
	Notifications *notify.Store
	Waiters       *waiter.Ledger
	History       repository.Orders
	MasterDB      *gorm.DB

	JWTSecret string
	TokenTTL  time.Duration
	Log       *logger.Logger
}

func New(d Deps) *gin.Engine {
	if d.Log == nil {
		d.Log = logger.New("api-server")
	}
	r := gin.New()
	r.Use(gin.Recovery(), CORS())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.POST("/auth/login", d.login)

	auth := api.Group("", AuthRequired(d.JWTSecret))

	// shared reads for any logged-in terminal
	auth.GET("/menu", d.listMenu)
	auth.GET("/recommendations", d.timeRecommendations)
	auth.GET("/orders/:id/timeline", d.orderTimeline)

	captain := auth.Group("", RoleRequired(domain.RoleCaptain))
	{
		captain.POST("/orders", d.createOrder)
		captain.GET("/orders", d.listOrders)
		captain.GET("/orders/:id", d.getOrder)
		captain.PATCH("/orders/:id/status", d.updateOrderStatus)
		captain.POST("/orders/:id/items", d.addOrderItem)
		captain.PATCH("/orders/:id/items/:itemId", d.patchOrderItem)
		captain.DELETE("/orders/:id/items/:itemId", d.removeOrderItem)
		captain.PATCH("/orders/:id/items/:itemId/delivery-time", d.updateDeliveryTime)
		captain.PATCH("/orders/:id/notes", d.updateNotes)
		captain.PATCH("/orders/:id/customer-notes", d.updateCustomerNotes)
		captain.PATCH("/orders/:id/preference", d.updatePreference)
		captain.PATCH("/orders/:id/delay", d.updateDelay)
		captain.PATCH("/orders/:id/payment", d.updatePayment)
		captain.POST("/orders/:id/split", d.splitPayment)
		captain.POST("/orders/:id/feedback", d.addFeedback)
		captain.GET("/orders/:id/suggestions", d.orderSuggestions)
		captain.GET("/orders/:id/combos", d.orderCombos)
	}

	kds := auth.Group("/kitchen", RoleRequired(domain.RoleKitchen))
	{
		kds.GET("/sections", d.listSections)
		kds.POST("/sections", d.addSection)
		kds.PATCH("/sections/:id/status", d.setSectionStatus)
		kds.GET("/sections/:id/orders", d.sectionOrders)
		kds.GET("/orders", d.kitchenOrders)
		kds.GET("/completed", d.kitchenCompleted)
		kds.PATCH("/orders/:id/status", d.kitchenOrderStatus)
		kds.PATCH("/orders/:id/items/:itemId/status", d.kitchenItemStatus)
		kds.POST("/orders/:id/dispatch", d.dispatchOrder)
		kds.GET("/batches", d.listBatches)
		kds.POST("/batches", d.createBatch)
		kds.PATCH("/batches/:id/status", d.setBatchStatus)
		kds.GET("/analytics", d.kitchenAnalytics)
	}

	floor := auth.Group("/waiter", RoleRequired(domain.RoleWaiter))
	{
		floor.GET("/notifications", d.listNotifications)
		floor.DELETE("/notifications", d.clearNotifications)
		floor.PATCH("/notifications/:id/read", d.markNotificationRead)
		floor.PATCH("/notifications/:id/accept", d.acceptNotification)
		floor.PATCH("/notifications/:id/assign", d.assignNotification)
		floor.PATCH("/notifications/:id/delivery-time", d.notificationDeliveryTime)
		floor.PATCH("/notifications/:id/complete", d.completeNotification)
		floor.GET("/ready", d.readyOrders)
		floor.GET("/assigned", d.assignedOrders)
		floor.POST("/orders/:id/assign", d.assignOrder)
		floor.POST("/orders/:id/complete", d.completeOrder)
		floor.GET("/waiters/:id/orders", d.waiterOrders)
		floor.GET("/waiters/:id/analytics", d.waiterAnalytics)
		floor.GET("/tables/:id/orders", d.tableOrders)
		floor.GET("/tables/:id/turnover", d.tableTurnover)
	}

	admin := auth.Group("/admin", RoleRequired(domain.RoleAdmin))
	{
		admin.POST("/menu", d.addMenuItem)
		admin.POST("/menu/import", d.importMenuCSV)
		admin.GET("/users", d.listUsers)
		admin.POST("/users", d.createUser)
		admin.GET("/tables", d.listTables)
		admin.POST("/tables", d.addTable)
		admin.PATCH("/tables/:id/status", d.setTableStatus)
		admin.POST("/tables/:id/waiter", d.assignWaiterToTable)
		admin.GET("/waiters", d.listWaiters)
		admin.POST("/waiters", d.addWaiter)
		admin.PATCH("/waiters/:id/status", d.setWaiterStatus)
		admin.POST("/waiters/:id/tables", d.assignTables)
		admin.GET("/analytics", d.adminAnalytics)
	}

	return r
}
