package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"restaurant-pos/internal/domain"
)

// Kitchen display handlers: station queues, item/order lifecycle, batches and
// the KDS analytics widgets.

func (d Deps) listSections(c *gin.Context) {
	c.JSON(http.StatusOK, d.Kitchen.Sections())
}

func (d Deps) addSection(c *gin.Context) {
	var req domain.AddSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	sec := domain.KitchenSection{ID: req.ID, Name: req.Name, Cuisine: req.Cuisine, Status: "active"}
	d.Kitchen.AddSection(sec)
	c.JSON(http.StatusCreated, sec)
}

func (d Deps) setSectionStatus(c *gin.Context) {
	var req domain.SectionStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := d.Kitchen.SetSectionStatus(c.Param("id"), req.Status); err != nil {
		renderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (d Deps) sectionOrders(c *gin.Context) {
	c.JSON(http.StatusOK, d.Kitchen.SectionOrders(c.Param("id")))
}

func (d Deps) kitchenOrders(c *gin.Context) {
	c.JSON(http.StatusOK, d.Kitchen.ActiveOrders())
}

func (d Deps) kitchenCompleted(c *gin.Context) {
	c.JSON(http.StatusOK, d.Kitchen.CompletedOrders())
}

func (d Deps) kitchenOrderStatus(c *gin.Context) {
	var req domain.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := d.Kitchen.UpdateOrderStatus(c.Param("id"), req.Status); err != nil {
		renderError(c, err)
		return
	}
	if d.History != nil {
		if err := d.History.AppendStatus(c.Request.Context(), c.Param("id"), req.Status, "kitchen-display"); err != nil {
			d.Log.Error("status_log_failed", err, map[string]any{"order_id": c.Param("id")})
		}
	}
	c.Status(http.StatusNoContent)
}

func (d Deps) kitchenItemStatus(c *gin.Context) {
	var req domain.UpdateItemStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := d.Kitchen.UpdateItemStatus(c.Param("id"), c.Param("itemId"), req.Status); err != nil {
		renderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (d Deps) dispatchOrder(c *gin.Context) {
	orderID := c.Param("id")
	if err := d.Kitchen.MarkOrderDispatched(orderID); err != nil {
		renderError(c, err)
		return
	}
	if d.History != nil {
		if err := d.History.AppendStatus(c.Request.Context(), orderID, domain.OrderServed, "kitchen-display"); err != nil {
			d.Log.Error("status_log_failed", err, map[string]any{"order_id": orderID})
		}
	}
	c.Status(http.StatusNoContent)
}

func (d Deps) listBatches(c *gin.Context) {
	c.JSON(http.StatusOK, d.Kitchen.Batches())
}

func (d Deps) createBatch(c *gin.Context) {
	var req domain.CreateBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusCreated, d.Kitchen.CreateBatch(req.Items))
}

func (d Deps) setBatchStatus(c *gin.Context) {
	var req domain.BatchStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := d.Kitchen.UpdateBatchStatus(c.Param("id"), req.Status); err != nil {
		renderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (d Deps) kitchenAnalytics(c *gin.Context) {
	out := gin.H{
		"efficiency":     d.Kitchen.Efficiency(),
		"pending_orders": d.Kitchen.PendingOrdersCount(),
	}
	if cat := c.Query("category"); cat != "" {
		out["average_preparation_time"] = d.Kitchen.AveragePreparationTime(cat)
	}
	c.JSON(http.StatusOK, out)
}
