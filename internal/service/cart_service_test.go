package service

import (
	"errors"
	"testing"

	"github.com/shopworks/storefront/internal/models"
	"github.com/shopworks/storefront/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func newCartTestService(t *testing.T, name string) (*CartService, *gorm.DB) {
	t.Helper()
	db := newServiceTestDB(t, name)
	cartRepo := repository.NewCartRepository(db)
	productRepo := repository.NewProductRepository(db)
	return NewCartService(cartRepo, productRepo), db
}

func createTestProduct(t *testing.T, db *gorm.DB, name, price string, stock int) *models.Product {
	t.Helper()
	amount, err := models.NewMoneyFromString(price)
	if err != nil {
		t.Fatalf("parse price failed: %v", err)
	}
	product := &models.Product{
		Name:     name,
		Price:    amount,
		Stock:    stock,
		IsActive: true,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func createTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := &models.User{
		Name:         "tester",
		Email:        email,
		PasswordHash: "x",
		Status:       "active",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	return user
}

func TestCartAddItemSnapshotsPrice(t *testing.T) {
	svc, db := newCartTestService(t, "cart_add_snapshot")
	user := createTestUser(t, db, "snapshot@test.local")
	product := createTestProduct(t, db, "键盘", "199.00", 10)

	view, err := svc.AddItem(user.ID, product.ID, 2)
	if err != nil {
		t.Fatalf("AddItem error: %v", err)
	}
	if len(view.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(view.Items))
	}
	if view.Items[0].Price.String() != "199.00" {
		t.Fatalf("expected snapshot price 199.00, got %s", view.Items[0].Price.String())
	}

	// 改价后购物车里仍是加入时的快照价
	if err := db.Model(&models.Product{}).Where("id = ?", product.ID).
		Update("price", "299.00").Error; err != nil {
		t.Fatalf("update price failed: %v", err)
	}
	view, err = svc.GetCart(user.ID)
	if err != nil {
		t.Fatalf("GetCart error: %v", err)
	}
	if view.Items[0].Price.String() != "199.00" {
		t.Fatalf("expected snapshot price unchanged, got %s", view.Items[0].Price.String())
	}
	if view.Subtotal.String() != "398.00" {
		t.Fatalf("expected subtotal 398.00, got %s", view.Subtotal.String())
	}
}

func TestCartAddItemMergesQuantity(t *testing.T) {
	svc, db := newCartTestService(t, "cart_add_merge")
	user := createTestUser(t, db, "merge-qty@test.local")
	product := createTestProduct(t, db, "鼠标", "99.00", 5)

	if _, err := svc.AddItem(user.ID, product.ID, 2); err != nil {
		t.Fatalf("first AddItem error: %v", err)
	}
	view, err := svc.AddItem(user.ID, product.ID, 3)
	if err != nil {
		t.Fatalf("second AddItem error: %v", err)
	}
	if len(view.Items) != 1 || view.Items[0].Quantity != 5 {
		t.Fatalf("expected merged quantity 5, got %+v", view.Items)
	}

	_, err = svc.AddItem(user.ID, product.ID, 1)
	if !errors.Is(err, ErrOutOfStock) {
		t.Fatalf("expected ErrOutOfStock, got %v", err)
	}
	var stockErr *OutOfStockError
	if !errors.As(err, &stockErr) || stockErr.ProductID != product.ID {
		t.Fatalf("expected OutOfStockError for product %d, got %v", product.ID, err)
	}
}

func TestCartAddItemRejectsInactiveProduct(t *testing.T) {
	svc, db := newCartTestService(t, "cart_add_inactive")
	user := createTestUser(t, db, "inactive@test.local")
	product := createTestProduct(t, db, "下架商品", "10.00", 10)
	if err := db.Model(&models.Product{}).Where("id = ?", product.ID).
		Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate product failed: %v", err)
	}

	if _, err := svc.AddItem(user.ID, product.ID, 1); !errors.Is(err, ErrProductNotAvailable) {
		t.Fatalf("expected ErrProductNotAvailable, got %v", err)
	}
}

func TestCartSetItemQuantity(t *testing.T) {
	svc, db := newCartTestService(t, "cart_set_qty")
	user := createTestUser(t, db, "set-qty@test.local")
	product := createTestProduct(t, db, "显示器", "1500.00", 3)

	view, err := svc.AddItem(user.ID, product.ID, 1)
	if err != nil {
		t.Fatalf("AddItem error: %v", err)
	}
	itemID := view.Items[0].ItemID

	view, err = svc.SetItemQuantity(user.ID, itemID, 3)
	if err != nil {
		t.Fatalf("SetItemQuantity error: %v", err)
	}
	if view.Items[0].Quantity != 3 {
		t.Fatalf("expected quantity 3, got %d", view.Items[0].Quantity)
	}

	if _, err := svc.SetItemQuantity(user.ID, itemID, 4); !errors.Is(err, ErrOutOfStock) {
		t.Fatalf("expected ErrOutOfStock, got %v", err)
	}

	// 数量 0 等价于移除
	view, err = svc.SetItemQuantity(user.ID, itemID, 0)
	if err != nil {
		t.Fatalf("SetItemQuantity(0) error: %v", err)
	}
	if len(view.Items) != 0 {
		t.Fatalf("expected empty cart, got %d items", len(view.Items))
	}
}

func TestCartRemoveItemOtherUser(t *testing.T) {
	svc, db := newCartTestService(t, "cart_remove_other")
	owner := createTestUser(t, db, "owner@test.local")
	other := createTestUser(t, db, "other@test.local")
	product := createTestProduct(t, db, "耳机", "399.00", 10)

	view, err := svc.AddItem(owner.ID, product.ID, 1)
	if err != nil {
		t.Fatalf("AddItem error: %v", err)
	}

	if _, err := svc.RemoveItem(other.ID, view.Items[0].ItemID); !errors.Is(err, ErrCartItemNotFound) {
		t.Fatalf("expected ErrCartItemNotFound, got %v", err)
	}
}

func TestCartClear(t *testing.T) {
	svc, db := newCartTestService(t, "cart_clear")
	user := createTestUser(t, db, "clear@test.local")
	p1 := createTestProduct(t, db, "商品A", "10.00", 10)
	p2 := createTestProduct(t, db, "商品B", "20.00", 10)

	if _, err := svc.AddItem(user.ID, p1.ID, 1); err != nil {
		t.Fatalf("AddItem error: %v", err)
	}
	if _, err := svc.AddItem(user.ID, p2.ID, 2); err != nil {
		t.Fatalf("AddItem error: %v", err)
	}
	if err := svc.Clear(user.ID); err != nil {
		t.Fatalf("Clear error: %v", err)
	}
	view, err := svc.GetCart(user.ID)
	if err != nil {
		t.Fatalf("GetCart error: %v", err)
	}
	if len(view.Items) != 0 {
		t.Fatalf("expected empty cart, got %d items", len(view.Items))
	}
	if !view.Subtotal.Equal(decimal.Zero) {
		t.Fatalf("expected zero subtotal, got %s", view.Subtotal.String())
	}
}
