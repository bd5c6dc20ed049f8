package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"restaurant-pos/internal/catalog"
	"restaurant-pos/internal/connections/masterdb"
	"restaurant-pos/internal/domain"
	"restaurant-pos/internal/kitchen"
	"restaurant-pos/internal/notify"
	"restaurant-pos/internal/orderbook"
	"restaurant-pos/internal/repository"
	"restaurant-pos/internal/waiter"
)

const testSecret = "test-secret"

func testEngine(t *testing.T) (*gin.Engine, Deps) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	masters, err := masterdb.Open(":memory:")
	if err != nil {
		t.Fatalf("open masters db: %v", err)
	}
	for _, role := range []domain.Role{domain.RoleCaptain, domain.RoleKitchen, domain.RoleWaiter, domain.RoleAdmin} {
		hash, _ := bcrypt.GenerateFromPassword([]byte("pass-"+string(role)), bcrypt.MinCost)
		user := domain.User{
			ID:           string(role) + "-1",
			Name:         string(role),
			Email:        string(role) + "@pos.test",
			PasswordHash: string(hash),
			Role:         role,
		}
		if err := masters.Create(&user).Error; err != nil {
			t.Fatalf("seed user: %v", err)
		}
	}

	menu := catalog.New(masters)
	if err := menu.Seed(); err != nil {
		t.Fatalf("seed menu: %v", err)
	}

	notifications := notify.NewStore()
	ledger := waiter.NewLedger(masters)
	relay := notify.NewRelay(nil, nil, notifications, ledger)
	kds := kitchen.NewStore(relay)
	history := repository.NewMemory()
	orders := orderbook.NewStore(kds, history, relay, nil)

	deps := Deps{
		Catalog:       menu,
		Orders:        orders,
		Kitchen:       kds,
		Notifications: notifications,
		Waiters:       ledger,
		History:       history,
		MasterDB:      masters,
		JWTSecret:     testSecret,
		TokenTTL:      time.Hour,
	}
	return New(deps), deps
}

func doJSON(t *testing.T, engine *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, engine *gin.Engine, role domain.Role) string {
	t.Helper()
	w := doJSON(t, engine, http.MethodPost, "/api/auth/login", "", domain.LoginRequest{
		Email:    string(role) + "@pos.test",
		Password: "pass-" + string(role),
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login as %s: status %d body %s", role, w.Code, w.Body.String())
	}
	var resp domain.LoginResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode login: %v", err)
	}
	return resp.Token
}

func TestLogin_RejectsBadCredentials(t *testing.T) {
	engine, _ := testEngine(t)

	w := doJSON(t, engine, http.MethodPost, "/api/auth/login", "", domain.LoginRequest{
		Email: "captain@pos.test", Password: "wrong",
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	w = doJSON(t, engine, http.MethodPost, "/api/auth/login", "", domain.LoginRequest{
		Email: "nobody@pos.test", Password: "x",
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for unknown user, got %d", w.Code)
	}
}

func TestAuth_MissingAndInvalidTokens(t *testing.T) {
	engine, _ := testEngine(t)

	if w := doJSON(t, engine, http.MethodGet, "/api/menu", "", nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", w.Code)
	}
	if w := doJSON(t, engine, http.MethodGet, "/api/menu", "garbage", nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with bad token, got %d", w.Code)
	}
}

func TestRoleGates(t *testing.T) {
	engine, _ := testEngine(t)
	captain := login(t, engine, domain.RoleCaptain)
	kitchenTok := login(t, engine, domain.RoleKitchen)
	admin := login(t, engine, domain.RoleAdmin)

	// kitchen cannot open orders
	w := doJSON(t, engine, http.MethodPost, "/api/orders", kitchenTok, domain.CreateOrderRequest{TableID: 1})
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for kitchen on captain route, got %d", w.Code)
	}
	// captain cannot reach admin masters
	w = doJSON(t, engine, http.MethodGet, "/api/admin/users", captain, nil)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for captain on admin route, got %d", w.Code)
	}
	// admin passes every gate
	w = doJSON(t, engine, http.MethodPost, "/api/orders", admin, domain.CreateOrderRequest{TableID: 1})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected admin to pass captain gate, got %d", w.Code)
	}
}

func TestOrderFlow_ConfirmDispatchNotify(t *testing.T) {
	engine, deps := testEngine(t)
	captain := login(t, engine, domain.RoleCaptain)
	kitchenTok := login(t, engine, domain.RoleKitchen)
	waiterTok := login(t, engine, domain.RoleWaiter)

	// captain opens an order and adds a menu item
	w := doJSON(t, engine, http.MethodPost, "/api/orders", captain, domain.CreateOrderRequest{TableID: 4})
	if w.Code != http.StatusCreated {
		t.Fatalf("create order: %d %s", w.Code, w.Body.String())
	}
	var created domain.CreateOrderResponse
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode create: %v", err)
	}

	menu, err := deps.Catalog.List()
	if err != nil || len(menu) == 0 {
		t.Fatalf("menu unavailable: %v", err)
	}
	w = doJSON(t, engine, http.MethodPost, "/api/orders/"+created.OrderID+"/items", captain,
		domain.AddItemRequest{MenuItemID: menu[0].ID})
	if w.Code != http.StatusOK {
		t.Fatalf("add item: %d %s", w.Code, w.Body.String())
	}

	// confirming admits the order to the kitchen
	w = doJSON(t, engine, http.MethodPatch, "/api/orders/"+created.OrderID+"/status", captain,
		domain.UpdateStatusRequest{Status: domain.OrderConfirmed})
	if w.Code != http.StatusOK {
		t.Fatalf("confirm: %d %s", w.Code, w.Body.String())
	}
	w = doJSON(t, engine, http.MethodGet, "/api/kitchen/orders", kitchenTok, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("kitchen orders: %d", w.Code)
	}
	var active []domain.Order
	if err := json.Unmarshal(w.Body.Bytes(), &active); err != nil {
		t.Fatalf("decode kitchen orders: %v", err)
	}
	if len(active) != 1 || active[0].ID != created.OrderID {
		t.Fatalf("order not admitted: %+v", active)
	}

	// full dispatch fires the ready notification into the waiter feed
	w = doJSON(t, engine, http.MethodPost, "/api/kitchen/orders/"+created.OrderID+"/dispatch", kitchenTok, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("dispatch: %d %s", w.Code, w.Body.String())
	}
	w = doJSON(t, engine, http.MethodGet, "/api/waiter/notifications", waiterTok, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("notifications: %d", w.Code)
	}
	var feed []domain.Notification
	if err := json.Unmarshal(w.Body.Bytes(), &feed); err != nil {
		t.Fatalf("decode notifications: %v", err)
	}
	if len(feed) != 1 || feed[0].OrderID != created.OrderID || feed[0].Type != domain.NotifyReady {
		t.Fatalf("unexpected feed: %+v", feed)
	}

	// the ready pool got the same order; a waiter picks it up and closes it
	w = doJSON(t, engine, http.MethodPost, "/api/waiter/orders/"+created.OrderID+"/assign", waiterTok,
		domain.AssignOrderRequest{WaiterID: "waiter-1"})
	if w.Code != http.StatusNoContent {
		t.Fatalf("assign: %d %s", w.Code, w.Body.String())
	}
	w = doJSON(t, engine, http.MethodPost, "/api/waiter/orders/"+created.OrderID+"/complete", waiterTok, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("complete: %d %s", w.Code, w.Body.String())
	}

	// the timeline recorded confirm and the kitchen/waiter transitions
	w = doJSON(t, engine, http.MethodGet, "/api/orders/"+created.OrderID+"/timeline", captain, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("timeline: %d", w.Code)
	}
	var events []repository.StatusEvent
	if err := json.Unmarshal(w.Body.Bytes(), &events); err != nil {
		t.Fatalf("decode timeline: %v", err)
	}
	if len(events) < 3 {
		t.Fatalf("expected confirm+served+completed events, got %+v", events)
	}
	if events[0].Status != domain.OrderConfirmed {
		t.Fatalf("first event should be the confirmation, got %s", events[0].Status)
	}
}

func TestProblemJSON_NotFoundShape(t *testing.T) {
	engine, _ := testEngine(t)
	captain := login(t, engine, domain.RoleCaptain)

	w := doJSON(t, engine, http.MethodGet, "/api/orders/ghost", captain, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	var p struct {
		Type   string `json:"type"`
		Title  string `json:"title"`
		Status int    `json:"status"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &p); err != nil {
		t.Fatalf("decode problem: %v", err)
	}
	if p.Type != "about:blank" || p.Status != http.StatusNotFound {
		t.Fatalf("unexpected problem body: %s", w.Body.String())
	}
}

func TestEmptyOrderConfirm_Unprocessable(t *testing.T) {
	engine, _ := testEngine(t)
	captain := login(t, engine, domain.RoleCaptain)

	w := doJSON(t, engine, http.MethodPost, "/api/orders", captain, domain.CreateOrderRequest{TableID: 2})
	var created domain.CreateOrderResponse
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode create: %v", err)
	}
	w = doJSON(t, engine, http.MethodPatch, fmt.Sprintf("/api/orders/%s/status", created.OrderID), captain,
		domain.UpdateStatusRequest{Status: domain.OrderConfirmed})
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d %s", w.Code, w.Body.String())
	}
}
