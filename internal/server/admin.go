package server

import (
	"io"
	"net/http"
	"sort"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"restaurant-pos/internal/domain"
)

// Admin handlers: menu masters, user accounts, tables, waiters and the
// restaurant-wide analytics view.

func (d Deps) addMenuItem(c *gin.Context) {
	var req domain.AddMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	item, err := d.Catalog.AddCustomItem(req)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// importMenuCSV accepts either a multipart upload under "file" or the raw
// CSV as the request body.
func (d Deps) importMenuCSV(c *gin.Context) {
	var src io.Reader = c.Request.Body
	if fh, err := c.FormFile("file"); err == nil {
		f, err := fh.Open()
		if err != nil {
			renderError(c, err)
			return
		}
		defer f.Close()
		src = f
	}
	items, err := d.Catalog.ImportCSV(src)
	if err != nil {
		badRequest(c, err)
		return
	}
	d.Log.Info("menu_imported", map[string]any{"count": len(items)})
	c.JSON(http.StatusOK, gin.H{"imported": len(items), "items": items})
}

func (d Deps) listUsers(c *gin.Context) {
	var users []domain.User
	if err := d.MasterDB.Order("email").Find(&users).Error; err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (d Deps) createUser(c *gin.Context) {
	var req domain.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		renderError(c, err)
		return
	}
	user := domain.User{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         req.Role,
	}
	if err := d.MasterDB.Create(&user).Error; err != nil {
		fail(c, http.StatusConflict, "Conflict", "email already registered")
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (d Deps) listTables(c *gin.Context) {
	tables, err := d.Waiters.Tables()
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, tables)
}

func (d Deps) addTable(c *gin.Context) {
	var req domain.AddTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	t := domain.Table{Number: req.Number, Capacity: req.Capacity, Status: domain.TableAvailable}
	created, err := d.Waiters.AddTable(t)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (d Deps) setTableStatus(c *gin.Context) {
	tableID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		badRequest(c, err)
		return
	}
	var req domain.TableStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := d.Waiters.UpdateTableStatus(tableID, req.Status); err != nil {
		renderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (d Deps) assignWaiterToTable(c *gin.Context) {
	tableID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		badRequest(c, err)
		return
	}
	var req domain.AssignOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := d.Waiters.AssignWaiterToTable(tableID, req.WaiterID); err != nil {
		renderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (d Deps) listWaiters(c *gin.Context) {
	waiters, err := d.Waiters.Waiters()
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, waiters)
}

func (d Deps) addWaiter(c *gin.Context) {
	var req domain.AddWaiterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	w := domain.Waiter{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Status:       domain.WaiterActive,
		CurrentShift: req.Shift,
	}
	if err := d.Waiters.AddWaiter(w); err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, w)
}

func (d Deps) setWaiterStatus(c *gin.Context) {
	var req domain.WaiterStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := d.Waiters.UpdateWaiterStatus(c.Param("id"), req.Status); err != nil {
		renderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (d Deps) assignTables(c *gin.Context) {
	var req domain.AssignTablesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := d.Waiters.AssignTables(c.Param("id"), req.TableIDs); err != nil {
		renderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// adminAnalytics aggregates across the kitchen collections: top sellers by
// dispatched quantity and the completion rate of admitted orders.
func (d Deps) adminAnalytics(c *gin.Context) {
	completed := d.Kitchen.CompletedOrders()
	active := d.Kitchen.ActiveOrders()

	counts := make(map[string]int)
	var revenue float64
	for _, o := range completed {
		revenue += o.Total()
		for _, it := range o.Items {
			counts[it.Name] += it.Quantity
		}
	}
	type popularItem struct {
		Name     string `json:"name"`
		Quantity int    `json:"quantity"`
	}
	popular := make([]popularItem, 0, len(counts))
	for name, qty := range counts {
		popular = append(popular, popularItem{Name: name, Quantity: qty})
	}
	sort.Slice(popular, func(i, j int) bool {
		if popular[i].Quantity != popular[j].Quantity {
			return popular[i].Quantity > popular[j].Quantity
		}
		return popular[i].Name < popular[j].Name
	})
	if len(popular) > 5 {
		popular = popular[:5]
	}

	completionRate := 100.0
	if total := len(completed) + len(active); total > 0 {
		completionRate = float64(len(completed)) / float64(total) * 100
	}

	c.JSON(http.StatusOK, gin.H{
		"popular_items":      popular,
		"completion_rate":    completionRate,
		"total_revenue":      revenue,
		"kitchen_efficiency": d.Kitchen.Efficiency(),
		"pending_orders":     d.Kitchen.PendingOrdersCount(),
	})
}
