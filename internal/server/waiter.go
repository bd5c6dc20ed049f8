package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"restaurant-pos/internal/domain"
)

// Waiter app handlers: the notification feed and the ready/assigned order
// pools.

func (d Deps) listNotifications(c *gin.Context) {
	if c.Query("include_read") == "true" {
		c.JSON(http.StatusOK, d.Notifications.All())
		return
	}
	c.JSON(http.StatusOK, d.Notifications.Active())
}

func (d Deps) clearNotifications(c *gin.Context) {
	d.Notifications.Clear()
	c.Status(http.StatusNoContent)
}

func (d Deps) markNotificationRead(c *gin.Context) {
	d.notificationUpdate(c, d.Notifications.MarkRead(c.Param("id")))
}

func (d Deps) acceptNotification(c *gin.Context) {
	d.notificationUpdate(c, d.Notifications.MarkAccepted(c.Param("id")))
}

func (d Deps) assignNotification(c *gin.Context) {
	var req domain.AssignOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	d.notificationUpdate(c, d.Notifications.AssignToWaiter(c.Param("id"), req.WaiterID))
}

func (d Deps) notificationDeliveryTime(c *gin.Context) {
	var req domain.DeliveryTimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	d.notificationUpdate(c, d.Notifications.UpdateEstimatedDelivery(c.Param("id"), req.Time))
}

func (d Deps) completeNotification(c *gin.Context) {
	d.notificationUpdate(c, d.Notifications.Complete(c.Param("id")))
}

func (d Deps) notificationUpdate(c *gin.Context, ok bool) {
	if !ok {
		fail(c, http.StatusNotFound, "Not Found", "notification not found")
		return
	}
	c.Status(http.StatusNoContent)
}

func (d Deps) readyOrders(c *gin.Context) {
	c.JSON(http.StatusOK, d.Waiters.ReadyOrders())
}

func (d Deps) assignedOrders(c *gin.Context) {
	c.JSON(http.StatusOK, d.Waiters.AssignedOrders())
}

func (d Deps) assignOrder(c *gin.Context) {
	var req domain.AssignOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := d.Waiters.AssignOrder(c.Param("id"), req.WaiterID); err != nil {
		renderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (d Deps) completeOrder(c *gin.Context) {
	orderID := c.Param("id")
	if err := d.Waiters.CompleteOrder(orderID); err != nil {
		renderError(c, err)
		return
	}
	if d.History != nil {
		if err := d.History.AppendStatus(c.Request.Context(), orderID, domain.OrderCompleted, "waiter-app"); err != nil {
			d.Log.Error("status_log_failed", err, map[string]any{"order_id": orderID})
		}
	}
	c.Status(http.StatusNoContent)
}

func (d Deps) waiterOrders(c *gin.Context) {
	c.JSON(http.StatusOK, d.Waiters.WaiterOrders(c.Param("id")))
}

func (d Deps) waiterAnalytics(c *gin.Context) {
	id := c.Param("id")
	c.JSON(http.StatusOK, gin.H{
		"efficiency":         d.Waiters.Efficiency(id),
		"average_order_time": d.Waiters.AverageOrderTime(id),
	})
}

func (d Deps) tableOrders(c *gin.Context) {
	tableID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, d.Waiters.TableOrders(tableID))
}

func (d Deps) tableTurnover(c *gin.Context) {
	tableID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"turnover": d.Waiters.TableTurnoverRate(tableID)})
}
