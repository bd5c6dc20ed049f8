package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"restaurant-pos/internal/catalog"
	"restaurant-pos/internal/domain"
)

// Captain terminal handlers: order lifecycle, line items and the attachments
// a captain edits from the floor.

func (d Deps) createOrder(c *gin.Context) {
	var req domain.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	o := d.Orders.Create(req.TableID, req.WaiterID)
	if d.Waiters != nil {
		if err := d.Waiters.MarkTableOccupied(req.TableID); err != nil {
			// unknown tables are allowed at order time; walk-ins get seated
			// before the masters catch up
			d.Log.Debug("table_status_skipped", map[string]any{"table_id": req.TableID, "reason": err.Error()})
		}
	}
	c.JSON(http.StatusCreated, domain.CreateOrderResponse{OrderID: o.ID, Status: o.Status})
}

func (d Deps) listOrders(c *gin.Context) {
	c.JSON(http.StatusOK, d.Orders.List())
}

func (d Deps) getOrder(c *gin.Context) {
	o, err := d.Orders.Get(c.Param("id"))
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

func (d Deps) updateOrderStatus(c *gin.Context) {
	var req domain.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	o, err := d.Orders.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

func (d Deps) addOrderItem(c *gin.Context) {
	var req domain.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	item, err := d.Catalog.Get(req.MenuItemID)
	if err != nil {
		renderError(c, err)
		return
	}
	o, err := d.Orders.AddItem(c.Param("id"), item)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

func (d Deps) patchOrderItem(c *gin.Context) {
	var patch domain.ItemPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, err)
		return
	}
	if err := d.Orders.UpdateItem(c.Param("id"), c.Param("itemId"), patch); err != nil {
		renderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (d Deps) removeOrderItem(c *gin.Context) {
	if err := d.Orders.RemoveItem(c.Param("id"), c.Param("itemId")); err != nil {
		renderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (d Deps) updateDeliveryTime(c *gin.Context) {
	var req domain.DeliveryTimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := d.Orders.UpdateDeliveryTime(c.Param("id"), c.Param("itemId"), req.Time); err != nil {
		renderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (d Deps) updateNotes(c *gin.Context) {
	d.notesHandler(c, d.Orders.UpdateNotes)
}

func (d Deps) updateCustomerNotes(c *gin.Context) {
	d.notesHandler(c, d.Orders.UpdateCustomerNotes)
}

func (d Deps) notesHandler(c *gin.Context, apply func(orderID, notes string) error) {
	var req domain.NotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := apply(c.Param("id"), req.Notes); err != nil {
		renderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (d Deps) updatePreference(c *gin.Context) {
	var req domain.PreferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := d.Orders.UpdatePreference(c.Param("id"), req.Preference); err != nil {
		renderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (d Deps) updateDelay(c *gin.Context) {
	var req domain.DelayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := d.Orders.UpdateDelayInfo(c.Param("id"), req.Reason); err != nil {
		renderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (d Deps) updatePayment(c *gin.Context) {
	var req domain.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := d.Orders.UpdatePaymentStatus(c.Param("id"), req.Status, req.Method); err != nil {
		renderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (d Deps) splitPayment(c *gin.Context) {
	var req domain.SplitPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	shares, err := d.Orders.SplitPayment(c.Param("id"), req.SplitCount)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"split_details": shares})
}

func (d Deps) addFeedback(c *gin.Context) {
	var req domain.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := d.Orders.AddFeedback(c.Param("id"), req.Rating, req.Comment); err != nil {
		renderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (d Deps) orderSuggestions(c *gin.Context) {
	o, err := d.Orders.Get(c.Param("id"))
	if err != nil {
		renderError(c, err)
		return
	}
	items, err := d.Catalog.Suggestions(o.Items)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (d Deps) orderCombos(c *gin.Context) {
	o, err := d.Orders.Get(c.Param("id"))
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, d.Catalog.RecommendedCombos(o.Total()))
}

func (d Deps) listMenu(c *gin.Context) {
	items, err := d.Catalog.List()
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (d Deps) timeRecommendations(c *gin.Context) {
	hour := time.Now().Hour()
	if h := c.Query("hour"); h != "" {
		if v, err := strconv.Atoi(h); err == nil {
			hour = v
		}
	}
	c.JSON(http.StatusOK, catalog.TimeBasedRecommendations(hour))
}

func (d Deps) orderTimeline(c *gin.Context) {
	if d.History == nil {
		c.JSON(http.StatusOK, []any{})
		return
	}
	limit, offset := 50, 0
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 {
		limit = v
	}
	if v, err := strconv.Atoi(c.Query("offset")); err == nil && v >= 0 {
		offset = v
	}
	events, err := d.History.Timeline(c.Request.Context(), c.Param("id"), limit, offset)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}
