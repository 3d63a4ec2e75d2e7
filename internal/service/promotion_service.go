package service

import (
	"strings"
	"time"

	"github.com/shopworks/storefront/internal/constants"
	"github.com/shopworks/storefront/internal/models"
	"github.com/shopworks/storefront/internal/repository"

	"github.com/shopspring/decimal"
)

// PromotionService 优惠码服务
type PromotionService struct {
	promotionRepo repository.PromotionRepository
}

// NewPromotionService 创建优惠码服务
func NewPromotionService(promotionRepo repository.PromotionRepository) *PromotionService {
	return &PromotionService{promotionRepo: promotionRepo}
}

// Lookup 按优惠码查找活动，不校验生效窗口
func (s *PromotionService) Lookup(code string) (*models.Promotion, error) {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return nil, ErrPromotionNotFound
	}
	promotion, err := s.promotionRepo.GetByCode(trimmed)
	if err != nil {
		return nil, err
	}
	if promotion == nil {
		return nil, ErrPromotionNotFound
	}
	return promotion, nil
}

// Resolve 按优惠码查找当前可用的活动
func (s *PromotionService) Resolve(code string, now time.Time) (*models.Promotion, error) {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return nil, ErrPromotionNotFound
	}
	promotion, err := s.promotionRepo.GetByCode(trimmed)
	if err != nil {
		return nil, err
	}
	if promotion == nil || !promotion.IsRunning(now) {
		return nil, ErrPromotionNotFound
	}
	return promotion, nil
}

// ComputeDiscount 计算折扣金额。固定金额不截断到订单金额，
// 扣减后为负时由调用方把应付金额归零。
func ComputeDiscount(promotion *models.Promotion, total decimal.Decimal) decimal.Decimal {
	if promotion == nil || total.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	var discount decimal.Decimal
	switch promotion.Type {
	case constants.PromotionTypePercent:
		discount = promotion.Value.Div(decimal.NewFromInt(100)).Mul(total).Round(2)
	case constants.PromotionTypeFixed:
		discount = promotion.Value.Decimal
	default:
		return decimal.Zero
	}
	if discount.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	return discount
}
