package repository

import (
	"errors"

	"github.com/shopworks/storefront/internal/models"

	"gorm.io/gorm"
)

// PromotionRepository 折扣码数据访问接口
type PromotionRepository interface {
	GetByID(id uint) (*models.Promotion, error)
	GetByCode(code string) (*models.Promotion, error)
	Create(promotion *models.Promotion) error
	Update(promotion *models.Promotion) error
	Delete(id uint) error
	List(filter PromotionListFilter) ([]models.Promotion, int64, error)
	WithTx(tx *gorm.DB) *GormPromotionRepository
}

// GormPromotionRepository GORM 实现
type GormPromotionRepository struct {
	db *gorm.DB
}

// NewPromotionRepository 创建折扣码仓库
func NewPromotionRepository(db *gorm.DB) *GormPromotionRepository {
	return &GormPromotionRepository{db: db}
}

// WithTx 绑定事务
func (r *GormPromotionRepository) WithTx(tx *gorm.DB) *GormPromotionRepository {
	if tx == nil {
		return r
	}
	return &GormPromotionRepository{db: tx}
}

// GetByID 根据 ID 获取折扣码
func (r *GormPromotionRepository) GetByID(id uint) (*models.Promotion, error) {
	var promotion models.Promotion
	if err := r.db.First(&promotion, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &promotion, nil
}

// GetByCode 根据 code 获取折扣码
func (r *GormPromotionRepository) GetByCode(code string) (*models.Promotion, error) {
	var promotion models.Promotion
	if err := r.db.Where("code = ?", code).First(&promotion).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &promotion, nil
}

// Create 创建折扣码
func (r *GormPromotionRepository) Create(promotion *models.Promotion) error {
	return r.db.Create(promotion).Error
}

// Update 更新折扣码
func (r *GormPromotionRepository) Update(promotion *models.Promotion) error {
	return r.db.Save(promotion).Error
}

// Delete 删除折扣码
func (r *GormPromotionRepository) Delete(id uint) error {
	return r.db.Delete(&models.Promotion{}, id).Error
}

// List 获取折扣码列表
func (r *GormPromotionRepository) List(filter PromotionListFilter) ([]models.Promotion, int64, error) {
	var promotions []models.Promotion
	query := r.db.Model(&models.Promotion{})

	if filter.Code != "" {
		query = query.Where("code = ?", filter.Code)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if err := query.Order("id DESC").Find(&promotions).Error; err != nil {
		return nil, 0, err
	}
	return promotions, total, nil
}
