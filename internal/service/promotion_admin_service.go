package service

import (
	"strings"
	"time"

	"github.com/shopworks/storefront/internal/constants"
	"github.com/shopworks/storefront/internal/models"
	"github.com/shopworks/storefront/internal/repository"
)

// PromotionAdminService 优惠码管理服务
type PromotionAdminService struct {
	promotionRepo repository.PromotionRepository
}

// NewPromotionAdminService 创建优惠码管理服务
func NewPromotionAdminService(promotionRepo repository.PromotionRepository) *PromotionAdminService {
	return &PromotionAdminService{promotionRepo: promotionRepo}
}

// PromotionInput 优惠码写入参数
type PromotionInput struct {
	Code     string
	Type     string
	Value    models.Money
	StartsAt *time.Time
	EndsAt   *time.Time
	IsActive bool
}

// List 优惠码列表
func (s *PromotionAdminService) List(filter repository.PromotionListFilter) ([]models.Promotion, int64, error) {
	return s.promotionRepo.List(filter)
}

// Get 优惠码详情
func (s *PromotionAdminService) Get(promotionID uint) (*models.Promotion, error) {
	promotion, err := s.promotionRepo.GetByID(promotionID)
	if err != nil {
		return nil, err
	}
	if promotion == nil {
		return nil, ErrPromotionNotFound
	}
	return promotion, nil
}

// Create 新建优惠码
func (s *PromotionAdminService) Create(input PromotionInput) (*models.Promotion, error) {
	code := strings.TrimSpace(input.Code)
	if code == "" {
		return nil, ErrPromotionInvalid
	}
	if !isPromotionTypeValid(input.Type) {
		return nil, ErrPromotionInvalid
	}
	exist, err := s.promotionRepo.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if exist != nil {
		return nil, ErrPromotionExists
	}
	promotion := &models.Promotion{
		Code:     code,
		Type:     input.Type,
		Value:    input.Value,
		StartsAt: input.StartsAt,
		EndsAt:   input.EndsAt,
		IsActive: input.IsActive,
	}
	if err := s.promotionRepo.Create(promotion); err != nil {
		return nil, err
	}
	return promotion, nil
}

// Update 更新优惠码
func (s *PromotionAdminService) Update(promotionID uint, input PromotionInput) (*models.Promotion, error) {
	promotion, err := s.Get(promotionID)
	if err != nil {
		return nil, err
	}
	code := strings.TrimSpace(input.Code)
	if code != "" && code != promotion.Code {
		exist, err := s.promotionRepo.GetByCode(code)
		if err != nil {
			return nil, err
		}
		if exist != nil && exist.ID != promotion.ID {
			return nil, ErrPromotionExists
		}
		promotion.Code = code
	}
	if input.Type != "" {
		if !isPromotionTypeValid(input.Type) {
			return nil, ErrPromotionInvalid
		}
		promotion.Type = input.Type
	}
	promotion.Value = input.Value
	promotion.StartsAt = input.StartsAt
	promotion.EndsAt = input.EndsAt
	promotion.IsActive = input.IsActive
	if err := s.promotionRepo.Update(promotion); err != nil {
		return nil, err
	}
	return promotion, nil
}

// Delete 删除优惠码
func (s *PromotionAdminService) Delete(promotionID uint) error {
	promotion, err := s.Get(promotionID)
	if err != nil {
		return err
	}
	return s.promotionRepo.Delete(promotion.ID)
}

func isPromotionTypeValid(promotionType string) bool {
	return promotionType == constants.PromotionTypeFixed || promotionType == constants.PromotionTypePercent
}
