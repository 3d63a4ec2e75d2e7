package service

import (
	"errors"
	"testing"
	"time"

	"github.com/shopworks/storefront/internal/constants"
	"github.com/shopworks/storefront/internal/models"
	"github.com/shopworks/storefront/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func createTestPromotion(t *testing.T, db *gorm.DB, code, promoType, value string, startsAt, endsAt *time.Time, active bool) *models.Promotion {
	t.Helper()
	amount, err := models.NewMoneyFromString(value)
	if err != nil {
		t.Fatalf("parse value failed: %v", err)
	}
	promotion := &models.Promotion{
		Code:     code,
		Type:     promoType,
		Value:    amount,
		StartsAt: startsAt,
		EndsAt:   endsAt,
		IsActive: active,
	}
	if err := db.Create(promotion).Error; err != nil {
		t.Fatalf("create promotion failed: %v", err)
	}
	return promotion
}

func TestPromotionResolve(t *testing.T) {
	db := newServiceTestDB(t, "promotion_resolve")
	svc := NewPromotionService(repository.NewPromotionRepository(db))
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	createTestPromotion(t, db, "SAVE10", constants.PromotionTypePercent, "10", &past, &future, true)
	createTestPromotion(t, db, "EXPIRED", constants.PromotionTypeFixed, "5", &past, &past, true)
	createTestPromotion(t, db, "NOTYET", constants.PromotionTypeFixed, "5", &future, nil, true)
	createTestPromotion(t, db, "OFF", constants.PromotionTypeFixed, "5", nil, nil, false)
	createTestPromotion(t, db, "OPEN", constants.PromotionTypeFixed, "5", nil, nil, true)

	if _, err := svc.Resolve("SAVE10", now); err != nil {
		t.Fatalf("expected SAVE10 resolvable, got %v", err)
	}
	// 时间窗口为空表示长期有效
	if _, err := svc.Resolve("OPEN", now); err != nil {
		t.Fatalf("expected OPEN resolvable, got %v", err)
	}
	for _, code := range []string{"EXPIRED", "NOTYET", "OFF", "MISSING", " ", ""} {
		if _, err := svc.Resolve(code, now); !errors.Is(err, ErrPromotionNotFound) {
			t.Fatalf("expected ErrPromotionNotFound for %q, got %v", code, err)
		}
	}
}

func TestComputeDiscountPercent(t *testing.T) {
	promotion := &models.Promotion{
		Type:  constants.PromotionTypePercent,
		Value: mustMoney(t, "10"),
	}
	got := ComputeDiscount(promotion, decimal.RequireFromString("200"))
	if !got.Equal(decimal.RequireFromString("20")) {
		t.Fatalf("expected discount 20, got %s", got.String())
	}
}

func TestComputeDiscountFixedExceedsTotal(t *testing.T) {
	// 固定金额保持原值，由结算侧把应付金额归零
	promotion := &models.Promotion{
		Type:  constants.PromotionTypeFixed,
		Value: mustMoney(t, "50"),
	}
	got := ComputeDiscount(promotion, decimal.RequireFromString("30"))
	if !got.Equal(decimal.RequireFromString("50")) {
		t.Fatalf("expected discount 50, got %s", got.String())
	}
}

func TestComputeDiscountEdgeCases(t *testing.T) {
	if got := ComputeDiscount(nil, decimal.RequireFromString("100")); !got.Equal(decimal.Zero) {
		t.Fatalf("expected zero discount for nil promotion, got %s", got.String())
	}
	unknown := &models.Promotion{Type: "mystery", Value: mustMoney(t, "10")}
	if got := ComputeDiscount(unknown, decimal.RequireFromString("100")); !got.Equal(decimal.Zero) {
		t.Fatalf("expected zero discount for unknown type, got %s", got.String())
	}
	percent := &models.Promotion{Type: constants.PromotionTypePercent, Value: mustMoney(t, "10")}
	if got := ComputeDiscount(percent, decimal.Zero); !got.Equal(decimal.Zero) {
		t.Fatalf("expected zero discount for zero total, got %s", got.String())
	}
}

func TestComputeDiscountPercentRounding(t *testing.T) {
	promotion := &models.Promotion{
		Type:  constants.PromotionTypePercent,
		Value: mustMoney(t, "15"),
	}
	got := ComputeDiscount(promotion, decimal.RequireFromString("19.99"))
	if !got.Equal(decimal.RequireFromString("3.00")) {
		t.Fatalf("expected discount 3.00, got %s", got.String())
	}
}

func mustMoney(t *testing.T, value string) models.Money {
	t.Helper()
	amount, err := models.NewMoneyFromString(value)
	if err != nil {
		t.Fatalf("parse money failed: %v", err)
	}
	return amount
}
