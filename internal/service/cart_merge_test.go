package service

import (
	"encoding/json"
	"testing"
)

func TestGuestCartItemUnmarshalLooseTypes(t *testing.T) {
	var items []GuestCartItem
	payload := `[
		{"product_id": 1, "quantity": 2},
		{"product_id": "2", "quantity": "3"},
		{"product_id": 3},
		{"product_id": "abc", "quantity": 1},
		{"product_id": 4, "quantity": "xyz"}
	]`
	if err := json.Unmarshal([]byte(payload), &items); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if len(items) != 5 {
		t.Fatalf("expected 5 entries, got %d", len(items))
	}
	if items[0].ProductID != 1 || items[0].Quantity != 2 {
		t.Fatalf("unexpected entry 0: %+v", items[0])
	}
	if items[1].ProductID != 2 || items[1].Quantity != 3 {
		t.Fatalf("unexpected entry 1: %+v", items[1])
	}
	if items[2].ProductID != 3 || items[2].Quantity != 1 {
		t.Fatalf("expected absent quantity to default to 1, got %+v", items[2])
	}
	if items[3].ProductID != 0 {
		t.Fatalf("expected invalid product id to be 0, got %+v", items[3])
	}
	if items[4].Quantity != 0 {
		t.Fatalf("expected invalid quantity to be 0, got %+v", items[4])
	}
}

func TestCartMergeClampsToStock(t *testing.T) {
	svc, db := newCartTestService(t, "cart_merge_clamp")
	user := createTestUser(t, db, "merge-clamp@test.local")
	product := createTestProduct(t, db, "限量商品", "50.00", 5)

	if _, err := svc.AddItem(user.ID, product.ID, 3); err != nil {
		t.Fatalf("AddItem error: %v", err)
	}

	view, err := svc.Merge(user.ID, []GuestCartItem{
		{ProductID: product.ID, Quantity: 100},
	})
	if err != nil {
		t.Fatalf("Merge error: %v", err)
	}
	if len(view.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(view.Items))
	}
	if view.Items[0].Quantity != 5 {
		t.Fatalf("expected quantity clamped to stock 5, got %d", view.Items[0].Quantity)
	}
}

func TestCartMergeSkipsInvalidEntries(t *testing.T) {
	svc, db := newCartTestService(t, "cart_merge_skip")
	user := createTestUser(t, db, "merge-skip@test.local")
	active := createTestProduct(t, db, "在售商品", "30.00", 10)
	inactive := createTestProduct(t, db, "下架商品", "30.00", 10)
	if err := db.Model(inactive).Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate product failed: %v", err)
	}
	soldOut := createTestProduct(t, db, "售罄商品", "30.00", 0)

	view, err := svc.Merge(user.ID, []GuestCartItem{
		{ProductID: 0, Quantity: 1},
		{ProductID: active.ID, Quantity: 2},
		{ProductID: inactive.ID, Quantity: 1},
		{ProductID: soldOut.ID, Quantity: 1},
		{ProductID: 99999, Quantity: 1},
		{ProductID: active.ID, Quantity: -1},
	})
	if err != nil {
		t.Fatalf("Merge error: %v", err)
	}
	if len(view.Items) != 1 {
		t.Fatalf("expected only active product merged, got %d items", len(view.Items))
	}
	if view.Items[0].ProductID != active.ID || view.Items[0].Quantity != 2 {
		t.Fatalf("unexpected merged item: %+v", view.Items[0])
	}
}

func TestCartMergeKeepsExistingSnapshot(t *testing.T) {
	svc, db := newCartTestService(t, "cart_merge_snapshot")
	user := createTestUser(t, db, "merge-snapshot@test.local")
	product := createTestProduct(t, db, "快照商品", "80.00", 20)

	if _, err := svc.AddItem(user.ID, product.ID, 1); err != nil {
		t.Fatalf("AddItem error: %v", err)
	}
	if err := db.Model(product).Update("price", "120.00").Error; err != nil {
		t.Fatalf("update price failed: %v", err)
	}

	view, err := svc.Merge(user.ID, []GuestCartItem{
		{ProductID: product.ID, Quantity: 2},
	})
	if err != nil {
		t.Fatalf("Merge error: %v", err)
	}
	if view.Items[0].Quantity != 3 {
		t.Fatalf("expected combined quantity 3, got %d", view.Items[0].Quantity)
	}
	if view.Items[0].Price.String() != "80.00" {
		t.Fatalf("expected original snapshot 80.00, got %s", view.Items[0].Price.String())
	}
}
