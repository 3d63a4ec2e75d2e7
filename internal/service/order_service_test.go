package service

import (
	"errors"
	"testing"

	"github.com/shopworks/storefront/internal/config"
	"github.com/shopworks/storefront/internal/constants"
	"github.com/shopworks/storefront/internal/models"
	"github.com/shopworks/storefront/internal/queue"
	"github.com/shopworks/storefront/internal/repository"

	"gorm.io/gorm"
)

func newOrderTestService(t *testing.T, name string) (*OrderService, *gorm.DB) {
	t.Helper()
	db := newServiceTestDB(t, name)
	queueClient, err := queue.NewClient(&config.QueueConfig{Enabled: false})
	if err != nil {
		t.Fatalf("new queue client failed: %v", err)
	}
	svc := NewOrderService(repository.NewOrderRepository(db), repository.NewProductRepository(db), queueClient)
	return svc, db
}

func createTestOrder(t *testing.T, db *gorm.DB, userID uint, status string, items []models.OrderItem) *models.Order {
	t.Helper()
	order := &models.Order{
		OrderNo:       generateOrderNo(),
		UserID:        userID,
		Status:        status,
		PaymentMethod: constants.PaymentMethodCashOnDelivery,
		PaymentStatus: constants.PaymentStatusPending,
		TotalAmount:   mustMoney(t, "100.00"),
	}
	if err := db.Create(order).Error; err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	for idx := range items {
		items[idx].OrderID = order.ID
	}
	if len(items) > 0 {
		if err := db.Create(&items).Error; err != nil {
			t.Fatalf("create order items failed: %v", err)
		}
	}
	return order
}

func TestOrderCancelRestoresStock(t *testing.T) {
	svc, db := newOrderTestService(t, "order_cancel_stock")
	user := createTestUser(t, db, "cancel@test.local")
	product := createTestProduct(t, db, "可取消商品", "40.00", 3)
	order := createTestOrder(t, db, user.ID, constants.OrderStatusPending, []models.OrderItem{
		{ProductID: product.ID, ProductName: product.Name, UnitPrice: product.Price, Quantity: 2, TotalPrice: mustMoney(t, "80.00")},
	})

	cancelled, err := svc.Cancel(order.ID, user.ID)
	if err != nil {
		t.Fatalf("Cancel error: %v", err)
	}
	if cancelled.Status != constants.OrderStatusCancelled {
		t.Fatalf("expected cancelled status, got %s", cancelled.Status)
	}
	if cancelled.CancelledAt == nil {
		t.Fatalf("expected cancelled_at set")
	}

	var after models.Product
	if err := db.First(&after, product.ID).Error; err != nil {
		t.Fatalf("load product failed: %v", err)
	}
	if after.Stock != 5 {
		t.Fatalf("expected stock restored to 5, got %d", after.Stock)
	}
}

func TestOrderCancelOnlyPending(t *testing.T) {
	svc, db := newOrderTestService(t, "order_cancel_paid")
	user := createTestUser(t, db, "cancel-paid@test.local")
	order := createTestOrder(t, db, user.ID, constants.OrderStatusPaid, nil)

	if _, err := svc.Cancel(order.ID, user.ID); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("expected ErrOrderStatusInvalid, got %v", err)
	}
}

func TestOrderCancelOtherUser(t *testing.T) {
	svc, db := newOrderTestService(t, "order_cancel_other")
	owner := createTestUser(t, db, "order-owner@test.local")
	other := createTestUser(t, db, "order-other@test.local")
	order := createTestOrder(t, db, owner.ID, constants.OrderStatusPending, nil)

	if _, err := svc.Cancel(order.ID, other.ID); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestOrderStatusTransitions(t *testing.T) {
	svc, db := newOrderTestService(t, "order_transitions")
	user := createTestUser(t, db, "transitions@test.local")
	order := createTestOrder(t, db, user.ID, constants.OrderStatusPending, nil)

	updated, err := svc.UpdateStatus(order.ID, constants.OrderStatusPaid)
	if err != nil {
		t.Fatalf("transition to paid error: %v", err)
	}
	if updated.PaymentStatus != constants.PaymentStatusPaid || updated.PaidAt == nil {
		t.Fatalf("expected payment marked paid, got %+v", updated)
	}

	if _, err := svc.UpdateStatus(order.ID, constants.OrderStatusDelivered); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("expected paid->delivered rejected, got %v", err)
	}

	if _, err := svc.UpdateStatus(order.ID, constants.OrderStatusShipped); err != nil {
		t.Fatalf("transition to shipped error: %v", err)
	}
	if _, err := svc.UpdateStatus(order.ID, constants.OrderStatusCancelled); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("expected shipped->cancelled rejected, got %v", err)
	}
	final, err := svc.UpdateStatus(order.ID, constants.OrderStatusDelivered)
	if err != nil {
		t.Fatalf("transition to delivered error: %v", err)
	}
	if final.Status != constants.OrderStatusDelivered {
		t.Fatalf("expected delivered, got %s", final.Status)
	}
	if _, err := svc.UpdateStatus(order.ID, constants.OrderStatusPending); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("expected delivered terminal, got %v", err)
	}
}

func TestOrderAdminCancelPaidRestoresStock(t *testing.T) {
	svc, db := newOrderTestService(t, "order_admin_cancel")
	user := createTestUser(t, db, "admin-cancel@test.local")
	product := createTestProduct(t, db, "退款商品", "70.00", 1)
	order := createTestOrder(t, db, user.ID, constants.OrderStatusPaid, []models.OrderItem{
		{ProductID: product.ID, ProductName: product.Name, UnitPrice: product.Price, Quantity: 1, TotalPrice: mustMoney(t, "70.00")},
	})

	cancelled, err := svc.UpdateStatus(order.ID, constants.OrderStatusCancelled)
	if err != nil {
		t.Fatalf("cancel paid order error: %v", err)
	}
	if cancelled.Status != constants.OrderStatusCancelled {
		t.Fatalf("expected cancelled, got %s", cancelled.Status)
	}
	var after models.Product
	if err := db.First(&after, product.ID).Error; err != nil {
		t.Fatalf("load product failed: %v", err)
	}
	if after.Stock != 2 {
		t.Fatalf("expected stock restored to 2, got %d", after.Stock)
	}
}

func TestOrderListByUserScoped(t *testing.T) {
	svc, db := newOrderTestService(t, "order_list_scoped")
	alice := createTestUser(t, db, "alice@test.local")
	bob := createTestUser(t, db, "bob@test.local")
	createTestOrder(t, db, alice.ID, constants.OrderStatusPending, nil)
	createTestOrder(t, db, alice.ID, constants.OrderStatusPaid, nil)
	createTestOrder(t, db, bob.ID, constants.OrderStatusPending, nil)

	orders, total, err := svc.ListByUser(alice.ID, repository.OrderListFilter{Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("ListByUser error: %v", err)
	}
	if total != 2 || len(orders) != 2 {
		t.Fatalf("expected 2 orders for alice, got total=%d len=%d", total, len(orders))
	}
	for _, order := range orders {
		if order.UserID != alice.ID {
			t.Fatalf("leaked order from user %d", order.UserID)
		}
	}
}
