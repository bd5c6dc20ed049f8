package domain

// OrderStatus covers both the captain-side lifecycle
// (pending -> confirmed -> completed, pending -> rejected) and the
// kitchen-side terminal state served. "served" means every item was
// dispatched; it is distinct from item-level "dispatched".
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderConfirmed OrderStatus = "confirmed"
	OrderRejected  OrderStatus = "rejected"
	OrderReady     OrderStatus = "ready"
	OrderServed    OrderStatus = "served"
	OrderCompleted OrderStatus = "completed"
)

type ItemStatus string

const (
	ItemPending    ItemStatus = "pending"
	ItemPreparing  ItemStatus = "preparing"
	ItemReady      ItemStatus = "ready"
	ItemDispatched ItemStatus = "dispatched"
)

type BatchStatus string

const (
	BatchPending    BatchStatus = "pending"
	BatchInProgress BatchStatus = "in-progress"
	BatchCompleted  BatchStatus = "completed"
)

// Preference controls whether the table wants the whole order delivered at
// once or each item as it comes off the pass.
type Preference string

const (
	PrefTogether Preference = "together"
	PrefAsReady  Preference = "as-ready"
)
