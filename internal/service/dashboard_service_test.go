package service

import (
	"testing"

	"github.com/shopworks/storefront/internal/constants"
	"github.com/shopworks/storefront/internal/models"
	"github.com/shopworks/storefront/internal/repository"
)

func TestDashboardOverview(t *testing.T) {
	db := newServiceTestDB(t, "dashboard_overview")
	svc := NewDashboardService(repository.NewDashboardRepository(db))

	user := createTestUser(t, db, "metrics@test.local")
	createTestProduct(t, db, "商品1", "10.00", 5)
	createTestProduct(t, db, "商品2", "20.00", 5)

	createTestOrder(t, db, user.ID, constants.OrderStatusPending, nil)
	paid := createTestOrder(t, db, user.ID, constants.OrderStatusPaid, nil)
	if err := db.Model(paid).Updates(map[string]interface{}{
		"payment_status": constants.PaymentStatusPaid,
		"total_amount":   "150.00",
	}).Error; err != nil {
		t.Fatalf("mark order paid failed: %v", err)
	}

	for i := 0; i < 3; i++ {
		view := &models.PageView{UserID: &user.ID, PageURL: "/products", IPAddress: "127.0.0.1"}
		if err := db.Create(view).Error; err != nil {
			t.Fatalf("create page view failed: %v", err)
		}
	}
	if err := db.Create(&models.PageView{PageURL: "/", IPAddress: "127.0.0.1"}).Error; err != nil {
		t.Fatalf("create page view failed: %v", err)
	}

	overview, err := svc.Overview()
	if err != nil {
		t.Fatalf("Overview error: %v", err)
	}
	if overview.UserCount != 1 {
		t.Fatalf("expected 1 user, got %d", overview.UserCount)
	}
	if overview.ProductCount != 2 {
		t.Fatalf("expected 2 products, got %d", overview.ProductCount)
	}
	if overview.OrderCount != 2 || overview.PendingOrders != 1 || overview.PaidOrders != 1 {
		t.Fatalf("unexpected order counts: %+v", overview)
	}
	if overview.TotalSales.String() != "150.00" {
		t.Fatalf("expected sales 150.00, got %s", overview.TotalSales.String())
	}
	if overview.PageViews7d != 4 {
		t.Fatalf("expected 4 page views, got %d", overview.PageViews7d)
	}
	if len(overview.TopPages7d) == 0 || overview.TopPages7d[0].PageURL != "/products" || overview.TopPages7d[0].Views != 3 {
		t.Fatalf("unexpected top pages: %+v", overview.TopPages7d)
	}
}
