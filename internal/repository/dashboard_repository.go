package repository

import (
	"time"

	"github.com/shopworks/storefront/internal/constants"
	"github.com/shopworks/storefront/internal/models"

	"gorm.io/gorm"
)

// DashboardRepository 仪表盘聚合查询接口
type DashboardRepository interface {
	CountUsers() (int64, error)
	CountProducts() (int64, error)
	CountOrders() (int64, error)
	CountOrdersByStatus(status string) (int64, error)
	SumPaidSales() (models.Money, error)
	CountPageViewsSince(since time.Time) (int64, error)
	TopPagesSince(since time.Time, limit int) ([]PageViewStat, error)
}

// PageViewStat 页面访问聚合
type PageViewStat struct {
	PageURL string `json:"page_url"`
	Views   int64  `json:"views"`
}

// GormDashboardRepository GORM 实现
type GormDashboardRepository struct {
	db *gorm.DB
}

// NewDashboardRepository 创建仪表盘仓库
func NewDashboardRepository(db *gorm.DB) *GormDashboardRepository {
	return &GormDashboardRepository{db: db}
}

// CountUsers 用户总数
func (r *GormDashboardRepository) CountUsers() (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Count(&count).Error
	return count, err
}

// CountProducts 商品总数
func (r *GormDashboardRepository) CountProducts() (int64, error) {
	var count int64
	err := r.db.Model(&models.Product{}).Count(&count).Error
	return count, err
}

// CountOrders 订单总数
func (r *GormDashboardRepository) CountOrders() (int64, error) {
	var count int64
	err := r.db.Model(&models.Order{}).Count(&count).Error
	return count, err
}

// CountOrdersByStatus 按状态统计订单数
func (r *GormDashboardRepository) CountOrdersByStatus(status string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Order{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

// SumPaidSales 已支付订单销售额合计
func (r *GormDashboardRepository) SumPaidSales() (models.Money, error) {
	var total models.Money
	row := r.db.Model(&models.Order{}).
		Where("payment_status = ?", constants.PaymentStatusPaid).
		Select("COALESCE(SUM(total_amount), 0)").Row()
	if err := row.Scan(&total); err != nil {
		return models.Money{}, err
	}
	return total, nil
}

// CountPageViewsSince 统计时间段内页面访问量
func (r *GormDashboardRepository) CountPageViewsSince(since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.PageView{}).Where("created_at >= ?", since).Count(&count).Error
	return count, err
}

// TopPagesSince 访问量最高的页面
func (r *GormDashboardRepository) TopPagesSince(since time.Time, limit int) ([]PageViewStat, error) {
	if limit <= 0 {
		limit = 10
	}
	var stats []PageViewStat
	err := r.db.Model(&models.PageView{}).
		Select("page_url, COUNT(*) AS views").
		Where("created_at >= ?", since).
		Group("page_url").
		Order("views DESC").
		Limit(limit).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return stats, nil
}
