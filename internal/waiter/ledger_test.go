package waiter

import (
	"testing"
	"time"

	"restaurant-pos/internal/connections/masterdb"
	"restaurant-pos/internal/domain"
)

func testLedger(t *testing.T) *Ledger {
	t.Helper()
	db, err := masterdb.Open(":memory:")
	if err != nil {
		t.Fatalf("open masters db: %v", err)
	}
	return NewLedger(db)
}

func readyOrder(id string, tableID int) domain.Order {
	return domain.Order{
		ID:        id,
		TableID:   tableID,
		Items:     []domain.OrderItem{{ID: "i1", Name: "Espresso", Quantity: 1, Price: 120}},
		Status:    domain.OrderReady,
		CreatedAt: time.Now().UTC(),
	}
}

func TestWaiterMasters_CRUDAndStatus(t *testing.T) {
	l := testLedger(t)
	if err := l.AddWaiter(domain.Waiter{ID: "w1", Name: "Asha"}); err != nil {
		t.Fatalf("add waiter: %v", err)
	}
	waiters, err := l.Waiters()
	if err != nil {
		t.Fatalf("list waiters: %v", err)
	}
	if len(waiters) != 1 || waiters[0].Status != domain.WaiterActive {
		t.Fatalf("unexpected waiters: %+v", waiters)
	}

	if err := l.UpdateWaiterStatus("w1", domain.WaiterOnBreak); err != nil {
		t.Fatalf("update status: %v", err)
	}
	if err := l.UpdateWaiterStatus("ghost", domain.WaiterActive); err != ErrWaiterNotFound {
		t.Fatalf("expected ErrWaiterNotFound, got %v", err)
	}
}

func TestAssignTables_StampsWaiterOnTables(t *testing.T) {
	l := testLedger(t)
	if err := l.AddWaiter(domain.Waiter{ID: "w1", Name: "Asha"}); err != nil {
		t.Fatalf("add waiter: %v", err)
	}
	for n := 1; n <= 2; n++ {
		if _, err := l.AddTable(domain.Table{ID: n, Number: n, Capacity: 4}); err != nil {
			t.Fatalf("add table: %v", err)
		}
	}
	if err := l.AssignTables("w1", []int{1, 2}); err != nil {
		t.Fatalf("assign tables: %v", err)
	}
	tables, err := l.Tables()
	if err != nil {
		t.Fatalf("list tables: %v", err)
	}
	for _, tb := range tables {
		if tb.WaiterID != "w1" {
			t.Fatalf("table %d not stamped: %+v", tb.ID, tb)
		}
	}
	waiters, _ := l.Waiters()
	if len(waiters[0].AssignedTables) != 2 {
		t.Fatalf("assigned tables not recorded: %+v", waiters[0])
	}
}

func TestAssignWaiterToTable_AppendsWithoutDuplicates(t *testing.T) {
	l := testLedger(t)
	if err := l.AddWaiter(domain.Waiter{ID: "w1", Name: "Asha"}); err != nil {
		t.Fatalf("add waiter: %v", err)
	}
	if _, err := l.AddTable(domain.Table{ID: 1, Number: 1, Capacity: 4}); err != nil {
		t.Fatalf("add table: %v", err)
	}
	if err := l.AssignWaiterToTable(1, "w1"); err != nil {
		t.Fatalf("assign: %v", err)
	}
	if err := l.AssignWaiterToTable(1, "w1"); err != nil {
		t.Fatalf("repeat assign: %v", err)
	}
	waiters, _ := l.Waiters()
	if len(waiters[0].AssignedTables) != 1 {
		t.Fatalf("duplicate table assignment: %+v", waiters[0].AssignedTables)
	}
	if err := l.AssignWaiterToTable(99, "w1"); err != ErrTableNotFound {
		t.Fatalf("expected ErrTableNotFound, got %v", err)
	}
}

func TestAddTable_ReturnsGeneratedID(t *testing.T) {
	l := testLedger(t)
	created, err := l.AddTable(domain.Table{Number: 7, Capacity: 2})
	if err != nil {
		t.Fatalf("add table: %v", err)
	}
	if created.ID == 0 {
		t.Fatalf("generated id not returned: %+v", created)
	}
	if created.Status != domain.TableAvailable {
		t.Fatalf("expected available default, got %s", created.Status)
	}
}

func TestTableStatus_Lifecycle(t *testing.T) {
	l := testLedger(t)
	if _, err := l.AddTable(domain.Table{ID: 1, Number: 1, Capacity: 4}); err != nil {
		t.Fatalf("add table: %v", err)
	}
	if err := l.MarkTableOccupied(1); err != nil {
		t.Fatalf("occupy: %v", err)
	}
	tables, _ := l.Tables()
	if tables[0].Status != domain.TableOccupied {
		t.Fatalf("expected occupied, got %s", tables[0].Status)
	}
	if err := l.UpdateTableStatus(99, domain.TableAvailable); err != ErrTableNotFound {
		t.Fatalf("expected ErrTableNotFound, got %v", err)
	}
}

func TestReadyPool_AssignAndComplete(t *testing.T) {
	l := testLedger(t)
	l.AddReadyOrder(readyOrder("o1", 4))
	l.AddReadyOrder(readyOrder("o1", 4)) // redelivery is dropped
	if got := len(l.ReadyOrders()); got != 1 {
		t.Fatalf("expected 1 ready order, got %d", got)
	}

	if err := l.AssignOrder("o1", "w1"); err != nil {
		t.Fatalf("assign: %v", err)
	}
	if len(l.ReadyOrders()) != 0 {
		t.Fatalf("order still in ready pool after assignment")
	}
	assigned := l.AssignedOrders()
	if len(assigned) != 1 || assigned[0].WaiterID != "w1" {
		t.Fatalf("unexpected assigned pool: %+v", assigned)
	}
	if got := l.WaiterOrders("w1"); len(got) != 1 {
		t.Fatalf("waiter orders: %+v", got)
	}
	if got := l.TableOrders(4); len(got) != 1 {
		t.Fatalf("table orders: %+v", got)
	}

	if err := l.CompleteOrder("o1"); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if len(l.AssignedOrders()) != 0 {
		t.Fatalf("order still assigned after completion")
	}
	if err := l.CompleteOrder("o1"); err != ErrOrderNotFound {
		t.Fatalf("expected ErrOrderNotFound on repeat complete, got %v", err)
	}
	if err := l.AssignOrder("ghost", "w1"); err != ErrOrderNotFound {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestReadyNotification_BuildsOrderFromSnapshot(t *testing.T) {
	l := testLedger(t)
	l.ReadyNotification(domain.Notification{
		ID:      "n1",
		OrderID: "o1",
		TableID: 4,
		Type:    domain.NotifyReady,
		OrderDetails: &domain.OrderSnapshot{
			Items:       []domain.OrderItem{{ID: "i1", Name: "Espresso", Quantity: 2, Price: 120}},
			TotalAmount: 240,
		},
	})
	ready := l.ReadyOrders()
	if len(ready) != 1 {
		t.Fatalf("expected 1 ready order, got %d", len(ready))
	}
	if ready[0].TotalAmount != 240 || len(ready[0].Items) != 1 {
		t.Fatalf("snapshot not carried over: %+v", ready[0])
	}

	// notifications without a snapshot or of another type are ignored
	l.ReadyNotification(domain.Notification{ID: "n2", OrderID: "o2", Type: domain.NotifyReady})
	l.ReadyNotification(domain.Notification{ID: "n3", OrderID: "o3", Type: domain.NotifyDelayed,
		OrderDetails: &domain.OrderSnapshot{}})
	if got := len(l.ReadyOrders()); got != 1 {
		t.Fatalf("expected ignored notifications, got %d ready orders", got)
	}
}

func TestAnalytics_EfficiencyAverageAndTurnover(t *testing.T) {
	l := testLedger(t)
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return base }

	o1 := readyOrder("o1", 4)
	o1.CreatedAt = base.Add(-30 * time.Minute)
	o2 := readyOrder("o2", 4)
	o2.CreatedAt = base.Add(-10 * time.Minute)
	l.AddReadyOrder(o1)
	l.AddReadyOrder(o2)

	if err := l.AssignOrder("o1", "w1"); err != nil {
		t.Fatalf("assign: %v", err)
	}
	if err := l.AssignOrder("o2", "w1"); err != nil {
		t.Fatalf("assign: %v", err)
	}
	if err := l.CompleteOrder("o1"); err != nil {
		t.Fatalf("complete: %v", err)
	}

	if got := l.Efficiency("w1"); got != 50 {
		t.Fatalf("expected 50%% efficiency, got %v", got)
	}
	if got := l.Efficiency("unknown"); got != 100 {
		t.Fatalf("waiter without orders scores 100, got %v", got)
	}
	if got := l.AverageOrderTime("w1"); got != 30 {
		t.Fatalf("expected 30 minute average, got %v", got)
	}
	if got := l.TableTurnoverRate(4); got != 2 {
		t.Fatalf("expected turnover 2, got %v", got)
	}
	if got := l.TableTurnoverRate(9); got != 0 {
		t.Fatalf("expected turnover 0, got %v", got)
	}
}
