package repository

import (
	"github.com/shopworks/storefront/internal/models"

	"gorm.io/gorm"
)

// PageViewRepository 页面访问记录数据访问接口
type PageViewRepository interface {
	Create(view *models.PageView) error
	List(filter PageViewListFilter) ([]models.PageView, int64, error)
}

// GormPageViewRepository GORM 实现
type GormPageViewRepository struct {
	db *gorm.DB
}

// NewPageViewRepository 创建页面访问记录仓库
func NewPageViewRepository(db *gorm.DB) *GormPageViewRepository {
	return &GormPageViewRepository{db: db}
}

// Create 写入访问记录
func (r *GormPageViewRepository) Create(view *models.PageView) error {
	return r.db.Create(view).Error
}

// List 查询访问记录
func (r *GormPageViewRepository) List(filter PageViewListFilter) ([]models.PageView, int64, error) {
	query := r.db.Model(&models.PageView{})

	if filter.UserID != 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.PageURL != "" {
		query = query.Where("page_url = ?", filter.PageURL)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at <= ?", *filter.CreatedTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var views []models.PageView
	if err := query.Order("id DESC").Find(&views).Error; err != nil {
		return nil, 0, err
	}
	return views, total, nil
}
