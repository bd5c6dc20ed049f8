package domain

import "time"

// MenuItem is catalog reference data. Rows are append-only: admin custom
// items and CSV imports add entries, nothing mutates them afterwards.
type MenuItem struct {
	ID              string  `json:"id" gorm:"primaryKey"`
	Name            string  `json:"name" gorm:"not null"`
	Price           float64 `json:"price" gorm:"not null"`
	Category        string  `json:"category" gorm:"not null"`
	Section         string  `json:"section"`
	PreparationTime int     `json:"preparation_time"` // minutes
	Description     string  `json:"description"`
	Cuisine         string  `json:"cuisine,omitempty"`
	IsCustom        bool    `json:"is_custom" gorm:"default:false"`

	// CSV import extras (positional columns 3..6 of the bulk format)
	SubCategory     string  `json:"sub_category,omitempty"`
	Tax             float64 `json:"tax,omitempty"`
	PackagingCharge float64 `json:"packaging_charge,omitempty"`
	ProductCost     float64 `json:"product_cost,omitempty"`
}

// OrderItem is owned by exactly one Order. Price is snapshotted at add time
// and does not follow later catalog edits.
type OrderItem struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Quantity        int        `json:"quantity"`
	Price           float64    `json:"price"`
	Category        string     `json:"category"`
	Section         string     `json:"section,omitempty"`
	PreparationTime int        `json:"preparation_time"`
	Status          ItemStatus `json:"status"`
	Notes           string     `json:"notes,omitempty"`
	Priority        string     `json:"priority,omitempty"`
	BatchID         string     `json:"batch_id,omitempty"`

	StartCookingTime *time.Time `json:"start_cooking_time,omitempty"`
	CompletionTime   *time.Time `json:"completion_time,omitempty"`
	ExpectedDelivery *time.Time `json:"expected_delivery_time,omitempty"`
}

type Order struct {
	ID              string      `json:"id"`
	OrderNumber     string      `json:"order_number,omitempty"`
	TableID         int         `json:"table_id"`
	WaiterID        string      `json:"waiter_id,omitempty"`
	Items           []OrderItem `json:"items"`
	Status          OrderStatus `json:"status"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
	TotalAmount     float64     `json:"total_amount"`
	Notes           string      `json:"notes,omitempty"`
	CustomerNotes   string      `json:"customer_notes,omitempty"`
	OrderPreference Preference  `json:"order_preference,omitempty"`
	DelayReason     string      `json:"delay_reason,omitempty"`

	PaymentStatus string       `json:"payment_status,omitempty"` // pending | completed
	PaymentMethod string       `json:"payment_method,omitempty"`
	SplitPayment  bool         `json:"split_payment,omitempty"`
	SplitDetails  []SplitShare `json:"split_details,omitempty"`

	Feedback *Feedback `json:"feedback,omitempty"`
}

// Total recomputes the bill from the line items.
func (o *Order) Total() float64 {
	sum := 0.0
	for _, it := range o.Items {
		sum += it.Price * float64(it.Quantity)
	}
	return sum
}

type SplitShare struct {
	ID     string  `json:"id"`
	Amount float64 `json:"amount"`
	Status string  `json:"status"`
}

type Feedback struct {
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// KitchenSection is a station. Its order queue is a projection over the
// canonical kitchen orders, not independent state.
type KitchenSection struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Cuisine string `json:"cuisine"`
	Status  string `json:"status"` // active | inactive
}

type Batch struct {
	ID                 string      `json:"id"`
	Items              []OrderItem `json:"items"`
	StartTime          time.Time   `json:"start_time"`
	ExpectedCompletion time.Time   `json:"expected_completion_time"`
	Status             BatchStatus `json:"status"`
	Priority           string      `json:"priority"`
}

// OrderSnapshot is a deep copy of an order's billable contents, frozen at
// notification time.
type OrderSnapshot struct {
	Items       []OrderItem `json:"items"`
	TotalAmount float64     `json:"total_amount"`
}

type Notification struct {
	ID                string           `json:"id"`
	OrderID           string           `json:"order_id"`
	TableID           int              `json:"table_id"`
	Message           string           `json:"message"`
	Type              NotificationType `json:"type"`
	Timestamp         time.Time        `json:"timestamp"`
	IsRead            bool             `json:"is_read"`
	IsAccepted        bool             `json:"is_accepted"`
	AssignedWaiterID  string           `json:"assigned_waiter_id,omitempty"`
	OrderDetails      *OrderSnapshot   `json:"order_details,omitempty"`
	EstimatedDelivery *time.Time       `json:"estimated_delivery_time,omitempty"`
	CompletionTime    *time.Time       `json:"completion_time,omitempty"`
}

type NotificationType string

const (
	NotifyReady     NotificationType = "ready"
	NotifyDelayed   NotificationType = "delayed"
	NotifyCancelled NotificationType = "cancelled"
)

type Waiter struct {
	ID             string       `json:"id" gorm:"primaryKey"`
	Name           string       `json:"name" gorm:"not null"`
	Status         WaiterStatus `json:"status"`
	AssignedTables []int        `json:"assigned_tables" gorm:"serializer:json"`
	CurrentShift   string       `json:"current_shift"`
}

type WaiterStatus string

const (
	WaiterActive   WaiterStatus = "active"
	WaiterInactive WaiterStatus = "inactive"
	WaiterOnBreak  WaiterStatus = "break"
)

type Table struct {
	ID       int         `json:"id" gorm:"primaryKey"`
	Number   int         `json:"number"`
	Capacity int         `json:"capacity"`
	Status   TableStatus `json:"status"`
	WaiterID string      `json:"waiter_id,omitempty"`
}

type TableStatus string

const (
	TableAvailable TableStatus = "available"
	TableOccupied  TableStatus = "occupied"
	TableReserved  TableStatus = "reserved"
)

// User is a POS login (captain terminal, kitchen display, waiter app, admin).
type User struct {
	ID           string `json:"id" gorm:"primaryKey"`
	Name         string `json:"name" gorm:"not null"`
	Email        string `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string `json:"-" gorm:"not null"`
	Role         Role   `json:"role" gorm:"not null"`
}

type Role string

const (
	RoleCaptain Role = "captain"
	RoleKitchen Role = "kitchen"
	RoleWaiter  Role = "waiter"
	RoleAdmin   Role = "admin"
)

type ComboOffer struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Description      string  `json:"description"`
	MinimumBillValue float64 `json:"minimum_bill_value"`
}
