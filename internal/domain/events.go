package domain

import "time"

// OrderConfirmedMessage goes to the orders_topic exchange when a captain
// confirms an order and it is admitted to the kitchen.
type OrderConfirmedMessage struct {
	OrderID     string      `json:"order_id"`
	OrderNumber string      `json:"order_number"`
	TableID     int         `json:"table_id"`
	WaiterID    string      `json:"waiter_id,omitempty"`
	Items       []OrderItem `json:"items"`
	TotalAmount float64     `json:"total_amount"`
	Preference  Preference  `json:"order_preference,omitempty"`
	ConfirmedAt time.Time   `json:"confirmed_at"`
}

// OrderReadyMessage fans out on notifications_fanout once every item of an
// order is dispatched. Items and total are a frozen snapshot: later mutations
// of the order do not retroactively change the message.
type OrderReadyMessage struct {
	NotificationID   string      `json:"notification_id"`
	OrderID          string      `json:"order_id"`
	TableID          int         `json:"table_id"`
	Message          string      `json:"message"`
	AssignedWaiterID string      `json:"assigned_waiter_id,omitempty"`
	Items            []OrderItem `json:"items"`
	TotalAmount      float64     `json:"total_amount"`
	DispatchedAt     time.Time   `json:"dispatched_at"`
}

// StatusChangedMessage mirrors the kitchen worker status feed: one event per
// order-level transition, appended to the order timeline.
type StatusChangedMessage struct {
	OrderID   string      `json:"order_id"`
	OldStatus OrderStatus `json:"old_status"`
	NewStatus OrderStatus `json:"new_status"`
	ChangedBy string      `json:"changed_by"`
	Timestamp time.Time   `json:"timestamp"`
}
