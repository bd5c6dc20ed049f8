package domain

import "time"

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string `json:"token"`
	Role  Role   `json:"role"`
	Name  string `json:"name"`
}

type CreateOrderRequest struct {
	TableID  int    `json:"table_id" binding:"required"`
	WaiterID string `json:"waiter_id"`
}

type CreateOrderResponse struct {
	OrderID     string      `json:"order_id"`
	OrderNumber string      `json:"order_number,omitempty"`
	Status      OrderStatus `json:"status"`
}

type AddItemRequest struct {
	MenuItemID string `json:"menu_item_id" binding:"required"`
}

type UpdateStatusRequest struct {
	Status OrderStatus `json:"status" binding:"required"`
}

type UpdateItemStatusRequest struct {
	Status ItemStatus `json:"status" binding:"required"`
}

// ItemPatch is a partial update of one line item. Nil fields are left
// untouched. Quantity is applied as-is: the store deliberately does not
// clamp it (callers own that rule).
type ItemPatch struct {
	Quantity *int        `json:"quantity,omitempty"`
	Notes    *string     `json:"notes,omitempty"`
	Status   *ItemStatus `json:"status,omitempty"`
}

type NotesRequest struct {
	Notes string `json:"notes" binding:"required"`
}

type PreferenceRequest struct {
	Preference Preference `json:"preference" binding:"required,oneof=together as-ready"`
}

type PaymentRequest struct {
	Status string `json:"status" binding:"required,oneof=pending completed"`
	Method string `json:"method"`
}

type SplitPaymentRequest struct {
	SplitCount int `json:"split_count" binding:"required,min=2"`
}

type FeedbackRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

type AddMenuItemRequest struct {
	Name            string  `json:"name" binding:"required"`
	Price           float64 `json:"price" binding:"required,gt=0"`
	Category        string  `json:"category" binding:"required"`
	Section         string  `json:"section"`
	PreparationTime int     `json:"preparation_time"`
	Description     string  `json:"description"`
}

type DelayRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type DeliveryTimeRequest struct {
	Time time.Time `json:"time" binding:"required"`
}

type AddSectionRequest struct {
	ID      string `json:"id" binding:"required"`
	Name    string `json:"name" binding:"required"`
	Cuisine string `json:"cuisine"`
}

type SectionStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active inactive"`
}

type CreateBatchRequest struct {
	Items []OrderItem `json:"items" binding:"required,min=2"`
}

type BatchStatusRequest struct {
	Status BatchStatus `json:"status" binding:"required,oneof=pending in-progress completed"`
}

type CreateUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     Role   `json:"role" binding:"required,oneof=captain kitchen waiter admin"`
}

type AddTableRequest struct {
	Number   int `json:"number" binding:"required"`
	Capacity int `json:"capacity" binding:"required"`
}

type AddWaiterRequest struct {
	Name  string `json:"name" binding:"required"`
	Shift string `json:"shift"`
}

type TableStatusRequest struct {
	Status TableStatus `json:"status" binding:"required,oneof=available occupied reserved"`
}

type WaiterStatusRequest struct {
	Status WaiterStatus `json:"status" binding:"required,oneof=active inactive break"`
}

type AssignOrderRequest struct {
	WaiterID string `json:"waiter_id" binding:"required"`
}

type AssignTablesRequest struct {
	TableIDs []int `json:"table_ids" binding:"required"`
}
